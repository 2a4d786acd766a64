// Package mapping provides the YAML bindings file: a declarative way to mark
// the constructor each type is built with and to name its parameters, kept
// outside the Go code.
//
// # Schema Overview
//
//	version: "1"
//	bindings:
//	  - type: "*store.AnnotatedUser"      # optional cross-check
//	    constructor: store.NewAnnotatedUser
//	    names: [first-name, last-name]
//	  - type: "*store.InferredUser"
//	    constructor: store.NewInferredUser
//	    infer: true
//
// A binding carries either an explicit ordered name list or the infer
// marker, never both. A single name may be written as a plain string.
//
// Constructors are referenced by their qualified name ("store.NewOrder") or
// by their full runtime name ("ctor-binder/store.NewOrder").
package mapping
