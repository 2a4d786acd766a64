package engine

import (
	"fmt"
	"reflect"

	"ctor-binder/document"
)

// Decode parses data in format f and unmarshals it by root alias.
func (e *Engine) Decode(f document.Format, data []byte) (any, error) {
	n, err := document.Parse(f, data)
	if err != nil {
		return nil, err
	}

	return e.Unmarshal(document.NewReader(n))
}

// Encode marshals v and renders it in format f.
func (e *Engine) Encode(f document.Format, v any) ([]byte, error) {
	w := document.NewTreeWriter()
	if err := e.Marshal(v, w); err != nil {
		return nil, err
	}

	return document.Encode(f, w.Root())
}

// FromXML decodes an XML document held in a string.
func (e *Engine) FromXML(xml string) (any, error) {
	return e.Decode(document.FormatXML, []byte(xml))
}

// ToXML renders v as XML indented with two spaces.
func (e *Engine) ToXML(v any) (string, error) {
	out, err := e.Encode(document.FormatXML, v)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// DecodeAs parses data in format f as a T, whatever the root node is named.
func DecodeAs[T any](e *Engine, f document.Format, data []byte) (T, error) {
	var zero T

	n, err := document.Parse(f, data)
	if err != nil {
		return zero, err
	}

	v, err := e.UnmarshalAs(document.NewReader(n), reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}

	if v == nil {
		return zero, nil
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: got %T, want %s", ErrInvalidValue, v, reflect.TypeFor[T]())
	}

	return out, nil
}
