package common

import (
	"net/url"
	"path"
	"strings"
)

// UnknownStr is the text rendered for enum values without a name.
const UnknownStr = "unknown"

// SplitFuncName splits a runtime function name such as
// "example.com/m/store.NewOrder" into its package path and the remaining
// identifier. Dots in the last path element are escaped by the runtime as
// "%2e" and are unescaped here.
func SplitFuncName(full string) (pkgPath, name string) {
	slash := strings.LastIndexByte(full, '/')

	dot := strings.IndexByte(full[slash+1:], '.')
	if dot < 0 {
		return "", full
	}

	dot += slash + 1
	pkgPath, name = full[:dot], full[dot+1:]

	if unescaped, err := url.PathUnescape(pkgPath); err == nil {
		pkgPath = unescaped
	}

	return pkgPath, name
}

// StripTypeArgs removes the "[...]" suffix the runtime appends to the names
// of generic function instantiations.
func StripTypeArgs(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}

	return name
}

// IsTopLevelFunc reports whether name, as returned by SplitFuncName, denotes a
// package-level function rather than a closure, method or method value.
func IsTopLevelFunc(name string) bool {
	return name != "" && !strings.ContainsAny(name, ".()-")
}

// QualifiedFuncName renders a runtime function name the way it is written in
// source, e.g. "store.NewOrder". The package is named by the last element of
// its import path.
func QualifiedFuncName(full string) string {
	pkgPath, name := SplitFuncName(full)
	if pkgPath == "" {
		return StripTypeArgs(name)
	}

	return path.Base(pkgPath) + "." + StripTypeArgs(name)
}
