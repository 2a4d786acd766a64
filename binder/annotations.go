package binder

import (
	"errors"
	"fmt"

	"ctor-binder/internal/mapping"
)

var ErrInvalidBindings = errors.New("binder: invalid bindings file")

// LoadAnnotations annotates constructors of c as described by a YAML
// bindings file. Every referenced constructor must already be declared in
// c. When a binding names its type, it must equal the constructor's target
// type as printed by reflect.
func LoadAnnotations(c *Catalog, data []byte) error {
	bf, err := mapping.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBindings, err)
	}

	return applyBindings(c, bf)
}

// LoadAnnotationsFile is LoadAnnotations reading from path.
func LoadAnnotationsFile(c *Catalog, path string) error {
	bf, err := mapping.LoadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBindings, err)
	}

	return applyBindings(c, bf)
}

func applyBindings(c *Catalog, bf *mapping.BindingsFile) error {
	if diags := mapping.Validate(bf); !diags.IsValid() {
		return fmt.Errorf("%w: %w", ErrInvalidBindings, diags.Error())
	}

	var errs []error
	for i := range bf.Bindings {
		b := &bf.Bindings[i]

		ctor, err := c.Lookup(b.Constructor)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if b.Type != "" && b.Type != ctor.Target().String() {
			errs = append(errs, fmt.Errorf("%w: %s builds %s, not %s",
				ErrInvalidBindings, b.Constructor, ctor.Target(), b.Type))
			continue
		}

		if _, err := c.AnnotateFunc(b.Constructor, Annotation{Names: b.Names, Infer: b.Infer}); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
