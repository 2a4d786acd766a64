package engine

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // zones named by calendar documents

	"ctor-binder/binder"
	"ctor-binder/document"
	"ctor-binder/primitive"
)

var timeType = reflect.TypeFor[time.Time]()

// scalarAdapter handles every type classified by primitive except time.Time.
type scalarAdapter struct{}

func (scalarAdapter) CanAdapt(t reflect.Type) bool {
	k := primitive.FromReflectType(t)
	return k != 0 && k != primitive.KindTime
}

func (scalarAdapter) Unmarshal(r document.Reader, ctx binder.UnmarshalContext) (any, error) {
	return parseScalar(r, ctx.RequiredType())
}

func (scalarAdapter) Marshal(v any, w document.Writer, _ binder.MarshalContext) error {
	return formatScalar(v, w)
}

// timeAdapter reads time.Time from RFC 3339 text or from a calendar node:
//
//	<date><time>1352913901530</time><timezone>America/Sao_Paulo</timezone></date>
//
// and always writes RFC 3339 text.
type timeAdapter struct{}

func (timeAdapter) CanAdapt(t reflect.Type) bool { return t == timeType }

func (timeAdapter) Unmarshal(r document.Reader, _ binder.UnmarshalContext) (any, error) {
	if !r.HasMoreChildren() {
		return parseScalar(r, timeType)
	}

	var (
		millis  string
		zone    string
		hasTime bool
	)

	for r.HasMoreChildren() {
		r.MoveDown()
		switch r.NodeName() {
		case "time":
			millis, hasTime = r.Value(), true
		case "timezone":
			zone = strings.TrimSpace(r.Value())
		}
		r.MoveUp()
	}

	if !hasTime {
		return nil, fmt.Errorf("%w: calendar without time", ErrInvalidValue)
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(millis), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: calendar time %q: %w", ErrInvalidValue, millis, err)
	}

	loc := time.UTC
	if zone != "" {
		if loc, err = time.LoadLocation(zone); err != nil {
			return nil, fmt.Errorf("%w: calendar timezone %q: %w", ErrInvalidValue, zone, err)
		}
	}

	return time.UnixMilli(ms).In(loc), nil
}

func (timeAdapter) Marshal(v any, w document.Writer, _ binder.MarshalContext) error {
	return formatScalar(v, w)
}

func parseScalar(r document.Reader, t reflect.Type) (any, error) {
	v, err := primitive.Parse(t, r.Value())
	if err != nil {
		return nil, fmt.Errorf("%w: node %q: %w", ErrInvalidValue, r.NodeName(), err)
	}

	return v.Interface(), nil
}

func formatScalar(v any, w document.Writer) error {
	text, err := primitive.Format(reflect.ValueOf(v))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	w.SetValue(text)
	return nil
}

// sliceAdapter reads every child as an element and writes each element under
// the name of its type.
type sliceAdapter struct {
	e *Engine
}

func (sliceAdapter) CanAdapt(t reflect.Type) bool { return t.Kind() == reflect.Slice }

func (sliceAdapter) Unmarshal(r document.Reader, ctx binder.UnmarshalContext) (any, error) {
	t := ctx.RequiredType()
	out := reflect.MakeSlice(t, 0, 0)

	for r.HasMoreChildren() {
		r.MoveDown()
		v, err := ctx.ConvertAnother(t.Elem())
		r.MoveUp()

		if err != nil {
			return nil, err
		}

		elem, err := valueOf(v, t.Elem())
		if err != nil {
			return nil, err
		}

		out = reflect.Append(out, elem)
	}

	return out.Interface(), nil
}

func (a sliceAdapter) Marshal(v any, w document.Writer, ctx binder.MarshalContext) error {
	rv := reflect.ValueOf(v)
	for i := range rv.Len() {
		elem := rv.Index(i)

		w.StartNode(a.e.nameFor(elem.Type()))
		err := ctx.ConvertAnother(elem.Interface())
		w.EndNode()

		if err != nil {
			return err
		}
	}

	return nil
}

// pointerAdapter reads the pointed-to type from the same node.
type pointerAdapter struct{}

func (pointerAdapter) CanAdapt(t reflect.Type) bool { return t.Kind() == reflect.Pointer }

func (pointerAdapter) Unmarshal(_ document.Reader, ctx binder.UnmarshalContext) (any, error) {
	t := ctx.RequiredType()

	v, err := ctx.ConvertAnother(t.Elem())
	if err != nil {
		return nil, err
	}

	elem, err := valueOf(v, t.Elem())
	if err != nil {
		return nil, err
	}

	p := reflect.New(t.Elem())
	p.Elem().Set(elem)

	return p.Interface(), nil
}

func (pointerAdapter) Marshal(v any, _ document.Writer, ctx binder.MarshalContext) error {
	rv := reflect.ValueOf(v)
	if rv.IsNil() {
		return nil
	}

	return ctx.ConvertAnother(rv.Elem().Interface())
}

// valueOf turns a converted value into a value of type t; nil is the zero
// value.
func valueOf(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrInvalidValue, rv.Type(), t)
	}

	return rv, nil
}
