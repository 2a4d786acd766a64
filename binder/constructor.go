package binder

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"ctor-binder/internal/common"
)

var (
	ErrNotAFunction    = errors.New("provided constructor is not a function")
	ErrNotAConstructor = errors.New("provided function is not a recognizable constructor")
)

var errorType = reflect.TypeFor[error]()

// Constructor is a parsed constructor function.
type Constructor struct {
	fn       reflect.Value
	target   reflect.Type
	params   []reflect.Type
	name     string
	hasErr   bool
	variadic bool
}

// ParseConstructor inspects the provided function and returns a Constructor
// if it is a valid constructor function.
//
// Supports signatures:
//   - func(p1, ..., pn) T
//   - func(p1, ..., pn) (T, error)
//
// The last parameter may be variadic; the document then supplies the whole
// slice.
func ParseConstructor(fn any) (Constructor, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return Constructor{}, ErrNotAFunction
	}

	fnType := fnVal.Type()

	var hasErr bool
	switch fnType.NumOut() {
	default:
		return Constructor{}, ErrNotAConstructor

	case 1:

	case 2:
		if fnType.Out(1) != errorType {
			return Constructor{}, ErrNotAConstructor
		}
		hasErr = true
	}

	target := fnType.Out(0)
	if target == errorType {
		return Constructor{}, ErrNotAConstructor
	}

	params := make([]reflect.Type, fnType.NumIn())
	for i := range params {
		params[i] = fnType.In(i)
	}

	return Constructor{
		fn:       fnVal,
		target:   target,
		params:   params,
		name:     runtime.FuncForPC(fnVal.Pointer()).Name(),
		hasErr:   hasErr,
		variadic: fnType.IsVariadic(),
	}, nil
}

// Target returns the type the constructor builds.
func (c Constructor) Target() reflect.Type { return c.target }

// Params returns the parameter types in declaration order.
func (c Constructor) Params() []reflect.Type { return slices.Clone(c.params) }

// NumParams returns the number of declared parameters.
func (c Constructor) NumParams() int { return len(c.params) }

// Name returns the runtime name of the function, e.g.
// "ctor-binder/store.NewOrder".
func (c Constructor) Name() string { return c.name }

// QualifiedName returns the name as written in source, e.g. "store.NewOrder".
func (c Constructor) QualifiedName() string { return common.QualifiedFuncName(c.name) }

func (c Constructor) String() string {
	params := make([]string, len(c.params))
	for i, p := range c.params {
		params[i] = p.String()
	}

	if c.variadic {
		last := len(params) - 1
		params[last] = "..." + c.params[last].Elem().String()
	}

	out := c.target.String()
	if c.hasErr {
		out = "(" + out + ", error)"
	}

	return fmt.Sprintf("%s(%s) %s", c.QualifiedName(), strings.Join(params, ", "), out)
}

// matches reports whether the parameter list equals types exactly, in order.
func (c Constructor) matches(types []reflect.Type) bool {
	return slices.Equal(c.params, types)
}

func (c Constructor) same(other Constructor) bool {
	return c.fn.Pointer() == other.fn.Pointer() && c.fn.Type() == other.fn.Type()
}

// call invokes the constructor. Panics raised by the constructor body and
// errors it returns are both reported as err.
func (c Constructor) call(args []reflect.Value) (out reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("constructor panicked: %w", e)
			} else {
				err = fmt.Errorf("constructor panicked: %v", r)
			}
		}
	}()

	var results []reflect.Value
	if c.variadic {
		results = c.fn.CallSlice(args)
	} else {
		results = c.fn.Call(args)
	}

	if c.hasErr && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}

	return results[0], nil
}
