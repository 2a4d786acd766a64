package binder

import (
	"reflect"

	"ctor-binder/document"
)

// UnmarshalContext is supplied by the engine that owns the adapters.
// RequiredType is the type the current node is read as; ConvertAnother
// converts the node under the reader cursor into a value of type t.
type UnmarshalContext interface {
	RequiredType() reflect.Type
	ConvertAnother(t reflect.Type) (any, error)
}

// MarshalContext writes a nested value through the owning engine.
type MarshalContext interface {
	ConvertAnother(v any) error
}

// Marshaller writes an instance as a document.
type Marshaller interface {
	Marshal(v any, w document.Writer, ctx MarshalContext) error
}

// MarshallerFunc adapts a function to Marshaller.
type MarshallerFunc func(v any, w document.Writer, ctx MarshalContext) error

func (f MarshallerFunc) Marshal(v any, w document.Writer, ctx MarshalContext) error {
	return f(v, w, ctx)
}

// TypeAdapter converts between documents and values of the types it accepts.
type TypeAdapter interface {
	Marshaller
	CanAdapt(t reflect.Type) bool
	Unmarshal(r document.Reader, ctx UnmarshalContext) (any, error)
}

// Registry receives adapters. Engines look adapters up by exact type.
type Registry interface {
	Register(a TypeAdapter)
}

var _ TypeAdapter = (*Adapter)(nil)

// Install builds every resolver and registers the adapters with reg. Nothing
// is registered when any resolver fails.
func Install(reg Registry, resolvers ...*Resolver) error {
	adapters := make([]*Adapter, 0, len(resolvers))
	for _, r := range resolvers {
		a, err := r.Build()
		if err != nil {
			return err
		}
		adapters = append(adapters, a)
	}

	for _, a := range adapters {
		reg.Register(a)
	}

	return nil
}
