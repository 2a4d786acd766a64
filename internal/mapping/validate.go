package mapping

import (
	"fmt"

	"ctor-binder/internal/diagnostic"
)

// Validate checks the structure of a bindings file. It does not look at Go
// code; see the ctor-binder check command for that.
func Validate(bf *BindingsFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if bf == nil {
		res.AddError("bindings_is_nil", "bindings file is nil", "", "")
		return res
	}

	if bf.Version != CurrentVersion {
		res.AddError("unsupported_version",
			fmt.Sprintf("unsupported version %q, want %q", bf.Version, CurrentVersion), "", "version")
	}

	if len(bf.Bindings) == 0 {
		res.AddWarning("no_bindings", "bindings file declares no bindings", "", "bindings")
	}

	seen := map[string]int{}

	for i := range bf.Bindings {
		b := &bf.Bindings[i]
		field := fmt.Sprintf("bindings[%d]", i)
		label := b.Label()

		if b.Constructor == "" {
			res.AddError("missing_constructor", "constructor is required", label, field)
			continue
		}

		if first, ok := seen[b.Constructor]; ok {
			res.AddError("duplicate_constructor",
				fmt.Sprintf("constructor already bound by bindings[%d]", first), label, field)
			continue
		}
		seen[b.Constructor] = i

		if b.PkgAlias() == "" {
			res.AddError("unqualified_constructor",
				"constructor must be qualified with its package, e.g. store.NewOrder", label, field+".constructor")
		}

		if b.Type == "" {
			res.AddInfo("missing_type", "type is not cross-checked", label, field+".type")
		}

		validateNames(res, b, field)
	}

	return res
}

func validateNames(res *diagnostic.Diagnostics, b *Binding, field string) {
	label := b.Label()

	switch {
	case b.Infer && len(b.Names) > 0:
		res.AddError("names_with_infer", "names and infer are mutually exclusive", label, field)
		return

	case !b.Infer && len(b.Names) == 0:
		res.AddError("missing_names", "either names or infer: true is required", label, field)
		return

	case b.Infer:
		res.AddInfo("names_inferred", "parameter names are read from source", label, field)
		return
	}

	positions := map[string]int{}
	for j, name := range b.Names {
		nameField := fmt.Sprintf("%s.names[%d]", field, j)

		if name == "" {
			res.AddError("empty_name", "name is empty", label, nameField)
			continue
		}

		if first, ok := positions[name]; ok {
			res.AddWarning("duplicate_name",
				fmt.Sprintf("name %q repeats names[%d]; only the first position is bound", name, first), label, nameField)
			continue
		}
		positions[name] = j
	}
}
