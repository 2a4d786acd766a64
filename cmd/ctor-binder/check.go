package main

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"ctor-binder/internal/analyze"
	"ctor-binder/internal/diagnostic"
	"ctor-binder/internal/mapping"
)

func runCheck(e *env, args []string) error {
	var bindingsPath string
	var packages []string

	fs := subcommand(e, "check", "--bindings <file> [--package <import path>]...")
	fs.StringVarP(&bindingsPath, "bindings", "b", "", "YAML bindings file to check")
	fs.StringSliceVarP(&packages, "package", "p", nil, "import path of a package referenced by its short name")

	if ok, err := parse(fs, args); !ok {
		return err
	}

	if bindingsPath == "" {
		return errors.New("check: --bindings is required")
	}

	bf, err := mapping.LoadFile(bindingsPath)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	diags := mapping.Validate(bf)
	if diags.IsValid() {
		checker := &sourceChecker{
			resolver: analyze.NewParamResolver(e.dir, e.logger),
			packages: aliases(packages),
		}
		diags.Merge(checker.check(bf))
	}

	for _, d := range diags.All() {
		fmt.Fprintf(e.stdout, "%s: %s\n", d.Severity, d)
	}

	if !diags.IsValid() {
		fmt.Fprintf(e.stdout, "%d error(s)\n", len(diags.Errors))
		return errFailed
	}

	fmt.Fprintf(e.stdout, "%d binding(s) ok\n", len(bf.Bindings))
	return nil
}

// aliases maps package short names to import paths.
func aliases(importPaths []string) map[string]string {
	out := make(map[string]string, len(importPaths))
	for _, p := range importPaths {
		out[path.Base(p)] = p
	}

	return out
}

type sourceChecker struct {
	resolver *analyze.ParamResolver
	packages map[string]string
}

func (c *sourceChecker) check(bf *mapping.BindingsFile) diagnostic.Diagnostics {
	var res diagnostic.Diagnostics

	for i := range bf.Bindings {
		b := &bf.Bindings[i]
		field := fmt.Sprintf("bindings[%d]", i)

		id, ok := c.funcID(b)
		if !ok {
			res.AddError("unknown_package",
				fmt.Sprintf("package %q is not listed with --package", b.PkgAlias()), b.Label(), field+".constructor")
			continue
		}

		sig, err := c.resolver.Describe(id)
		if err != nil {
			res.AddError("constructor_not_found", err.Error(), b.Label(), field+".constructor")
			continue
		}

		if b.Type != "" && sig.Result != b.Type {
			res.AddError("type_mismatch",
				fmt.Sprintf("constructor builds %s, not %s", sig.Result, b.Type), b.Label(), field+".type")
		}

		if b.Infer {
			names, err := c.resolver.Lookup(id)
			if err != nil {
				res.AddError("inference_unsupported", err.Error(), b.Label(), field+".infer")
				continue
			}
			res.AddInfo("inferred_names", "names: "+strings.Join(names, ", "), b.Label(), field)
			continue
		}

		if len(b.Names) != sig.NumParams {
			res.AddError("binding_plan_mismatch",
				fmt.Sprintf("%d names for %d parameters", len(b.Names), sig.NumParams), b.Label(), field+".names")
		}
	}

	return res
}

// funcID resolves the constructor reference of b to an import path.
func (c *sourceChecker) funcID(b *mapping.Binding) (analyze.FuncID, bool) {
	pkg := b.PkgAlias()
	name := strings.TrimPrefix(b.Constructor, pkg+".")

	if !strings.Contains(pkg, "/") {
		full, ok := c.packages[pkg]
		if !ok {
			return analyze.FuncID{}, false
		}
		pkg = full
	}

	return analyze.FuncID{PkgPath: pkg, Name: name}, true
}
