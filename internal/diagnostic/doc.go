// Package diagnostic collects structured errors, warnings and notes about
// constructor bindings, as reported by bindings-file validation and by the
// ctor-binder check command.
package diagnostic
