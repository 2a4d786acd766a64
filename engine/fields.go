package engine

import (
	"fmt"
	"reflect"
	"unsafe"

	"ctor-binder/binder"
	"ctor-binder/document"
)

// FieldMarshaller writes a struct, or a pointer to one, as one child node per
// field, named after the field. Unexported fields are written too. Nil
// pointers, interfaces, maps and slices are left out.
//
// It is the default writer for structs and can be handed to
// binder.Resolver.WithMarshaller.
type FieldMarshaller struct{}

var _ binder.Marshaller = FieldMarshaller{}

func (FieldMarshaller) Marshal(v any, w document.Writer, ctx binder.MarshalContext) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is not a struct", ErrInvalidValue, rv.Type())
	}

	// unexported fields are only readable through an addressable copy
	cp := reflect.New(rv.Type()).Elem()
	cp.Set(rv)

	t := cp.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}

		fv := cp.Field(i)
		if !sf.IsExported() {
			fv = reflect.NewAt(sf.Type, unsafe.Pointer(fv.UnsafeAddr())).Elem()
		}

		if omitted(fv) {
			continue
		}

		w.StartNode(sf.Name)
		err := ctx.ConvertAnother(fv.Interface())
		w.EndNode()

		if err != nil {
			return fmt.Errorf("field %s.%s: %w", t, sf.Name, err)
		}
	}

	return nil
}

func omitted(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// structAdapter writes any struct with FieldMarshaller and reads structs by
// setting their exported fields. Types with unexported state need a
// constructor adapter instead.
type structAdapter struct {
	FieldMarshaller
}

func (structAdapter) CanAdapt(t reflect.Type) bool { return t.Kind() == reflect.Struct }

func (structAdapter) Unmarshal(r document.Reader, ctx binder.UnmarshalContext) (any, error) {
	t := ctx.RequiredType()
	out := reflect.New(t).Elem()

	for r.HasMoreChildren() {
		r.MoveDown()

		sf, ok := t.FieldByName(r.NodeName())
		if !ok || !sf.IsExported() || len(sf.Index) != 1 {
			r.MoveUp()
			continue
		}

		v, err := ctx.ConvertAnother(sf.Type)
		r.MoveUp()
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", t, sf.Name, err)
		}

		fv, err := valueOf(v, sf.Type)
		if err != nil {
			return nil, err
		}

		out.Field(sf.Index[0]).Set(fv)
	}

	return out.Interface(), nil
}
