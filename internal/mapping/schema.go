package mapping

import (
	"errors"
	"strings"
)

// CurrentVersion is the only bindings file version understood.
const CurrentVersion = "1"

// BindingsFile represents the root of a YAML bindings file.
type BindingsFile struct {
	// Version of the bindings file format.
	Version string `yaml:"version"`
	// Bindings is the list of constructor bindings.
	Bindings []Binding `yaml:"bindings"`
}

// Binding marks one constructor.
type Binding struct {
	// Type is the Go type the constructor builds, as printed by
	// reflect.Type.String (e.g., "*store.Order"). Optional.
	Type string `yaml:"type,omitempty"`
	// Constructor is the function name (e.g., "store.NewOrder").
	Constructor string `yaml:"constructor"`
	// Names are the node names bound to the parameters, in order.
	Names StringArray `yaml:"names,omitempty,flow"`
	// Infer requests the names to be read from the constructor source.
	Infer bool `yaml:"infer,omitempty"`
}

// Label returns a short identifier of the binding for diagnostics.
func (b *Binding) Label() string {
	if b.Constructor != "" {
		return b.Constructor
	}

	return b.Type
}

// PkgAlias returns the package part of the constructor name, e.g. "store"
// for "store.NewOrder" and "ctor-binder/store" for the runtime form.
func (b *Binding) PkgAlias() string {
	i := strings.LastIndexByte(b.Constructor, '.')
	if i < 0 {
		return ""
	}

	return b.Constructor[:i]
}

// StringArray is a string slice that can be unmarshaled from a single string or a list.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringArray) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = []string{single}
		return nil
	}

	var multi []string
	if err := unmarshal(&multi); err == nil {
		*s = multi
		return nil
	}

	return errors.New("expected string or list of strings")
}
