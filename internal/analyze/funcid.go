package analyze

import (
	"fmt"

	"ctor-binder/internal/common"
)

const mainPkg = "main"

// FuncID identifies a package-level function.
type FuncID struct {
	PkgPath string // e.g., "ctor-binder/store"
	Name    string // e.g., "NewOrder"
}

// ParseFuncID turns a runtime function name, as reported by
// runtime.FuncForPC, into a FuncID. Closures, methods and method values are
// rejected with ErrNotTopLevel. The runtime names functions of a command
// "main.F" whatever its import path, so those fail with ErrMainPackage.
func ParseFuncID(runtimeName string) (FuncID, error) {
	pkgPath, name := common.SplitFuncName(runtimeName)
	name = common.StripTypeArgs(name)

	if pkgPath == "" || !common.IsTopLevelFunc(name) {
		return FuncID{}, fmt.Errorf("%w: %s", ErrNotTopLevel, runtimeName)
	}

	if pkgPath == mainPkg {
		return FuncID{}, fmt.Errorf("%w: %s", ErrMainPackage, runtimeName)
	}

	return FuncID{PkgPath: pkgPath, Name: name}, nil
}

// String returns a human-readable representation of the FuncID.
func (f FuncID) String() string {
	if f.PkgPath == "" {
		return f.Name
	}

	return f.PkgPath + "." + f.Name
}
