package analyze

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/tools/go/packages"

	"ctor-binder/internal/suggest"
)

var (
	ErrFuncNotFound  = errors.New("function not found")
	ErrNotTopLevel   = errors.New("not a package-level function")
	ErrUnnamedParams = errors.New("function has unnamed parameters")
	ErrMainPackage   = errors.New("package main cannot be loaded by import path")
)

// LoadMode specifies what information to load from packages.
// Syntax is requested so that signatures are type-checked from source,
// which keeps blank and missing parameter names as written.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// ParamResolver looks up parameter names of package-level functions. Each
// package is loaded at most once and every answer is cached, so a resolver
// is cheap to query repeatedly. It is safe for concurrent use.
type ParamResolver struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	pkgs  map[string]*types.Package
	names map[FuncID][]string
	loads int
}

// NewParamResolver creates a resolver that runs the package loader in dir.
// An empty dir means the current working directory.
func NewParamResolver(dir string, logger *slog.Logger) *ParamResolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &ParamResolver{
		dir:    dir,
		logger: logger,
		pkgs:   make(map[string]*types.Package),
		names:  make(map[FuncID][]string),
	}
}

// ParamNames returns the declared parameter names of the function with the
// given runtime name, e.g. "ctor-binder/store.NewInferredUser".
func (r *ParamResolver) ParamNames(runtimeName string) ([]string, error) {
	id, err := ParseFuncID(runtimeName)
	if err != nil {
		return nil, err
	}

	return r.Lookup(id)
}

// Lookup returns the declared parameter names of the function id.
func (r *ParamResolver) Lookup(id FuncID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if names, ok := r.names[id]; ok {
		return slices.Clone(names), nil
	}

	sig, err := r.signature(id)
	if err != nil {
		return nil, err
	}

	params := sig.Params()
	names := make([]string, params.Len())
	for i := range names {
		name := params.At(i).Name()
		if name == "" || name == "_" {
			return nil, fmt.Errorf("%w: %s parameter %d", ErrUnnamedParams, id, i)
		}

		names[i] = name
	}

	r.names[id] = names
	r.logger.Debug("parameter names resolved", "func", id.String(), "names", names)

	return slices.Clone(names), nil
}

// Signature describes a function as declared in source.
type Signature struct {
	// NumParams is the number of declared parameters.
	NumParams int
	// Result is the first result type written the way reflect prints it,
	// e.g. "*store.Order". Empty for functions without results.
	Result string
	// Variadic reports whether the last parameter is variadic.
	Variadic bool
}

// Describe returns the declared shape of the function id. Unlike Lookup it
// does not require parameter names.
func (r *ParamResolver) Describe(id FuncID) (Signature, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sig, err := r.signature(id)
	if err != nil {
		return Signature{}, err
	}

	out := Signature{
		NumParams: sig.Params().Len(),
		Variadic:  sig.Variadic(),
	}

	if sig.Results().Len() > 0 {
		out.Result = types.TypeString(sig.Results().At(0).Type(), func(p *types.Package) string {
			return p.Name()
		})
	}

	return out, nil
}

func (r *ParamResolver) signature(id FuncID) (*types.Signature, error) {
	pkg, err := r.load(id.PkgPath)
	if err != nil {
		return nil, err
	}

	fn, ok := pkg.Scope().Lookup(id.Name).(*types.Func)
	if !ok {
		if near, found := suggest.Closest(id.Name, funcs(pkg)); found {
			return nil, fmt.Errorf("%w: %s (did you mean %s?)", ErrFuncNotFound, id, near)
		}
		return nil, fmt.Errorf("%w: %s", ErrFuncNotFound, id)
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Recv() != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotTopLevel, id)
	}

	return sig, nil
}

// Funcs returns the exported package-level functions of pkgPath in
// lexical order.
func (r *ParamResolver) Funcs(pkgPath string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pkg, err := r.load(pkgPath)
	if err != nil {
		return nil, err
	}

	return funcs(pkg), nil
}

func funcs(pkg *types.Package) []string {
	var out []string
	for _, name := range pkg.Scope().Names() {
		if _, ok := pkg.Scope().Lookup(name).(*types.Func); ok && token.IsExported(name) {
			out = append(out, name)
		}
	}

	return out
}

// Loads reports how many times the package loader was invoked.
func (r *ParamResolver) Loads() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loads
}

func (r *ParamResolver) load(pkgPath string) (*types.Package, error) {
	if pkgPath == mainPkg {
		return nil, ErrMainPackage
	}

	if pkg, ok := r.pkgs[pkgPath]; ok {
		return pkg, nil
	}

	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  r.dir,
	}

	r.loads++
	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %s: %w", pkgPath, err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package %s errors: %w", pkgPath, errors.Join(errs...))
	}

	if len(pkgs) != 1 || pkgs[0].Types == nil {
		return nil, fmt.Errorf("package %s: no type information", pkgPath)
	}

	r.logger.Debug("package loaded", "pkg", pkgPath)
	r.pkgs[pkgPath] = pkgs[0].Types

	return pkgs[0].Types, nil
}
