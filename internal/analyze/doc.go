// Package analyze reads constructor parameter names from Go source.
//
// Compiled Go binaries do not retain parameter names, so the names are
// recovered by loading the declaring package with golang.org/x/tools/go/packages
// and reading the *types.Signature of the function. This only works where the
// module source and the go toolchain are available at run time.
//
// Key types:
//   - FuncID: package import path + function name
//   - ParamResolver: loads packages on demand and caches parameter names
package analyze
