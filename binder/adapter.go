package binder

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/davecgh/go-spew/spew"

	"ctor-binder/document"
)

var dumper = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// slot holds one constructor argument while a document is read.
type slot struct {
	value    reflect.Value
	provided bool
}

func (s slot) or(t reflect.Type) reflect.Value {
	if s.provided {
		return s.value
	}

	return reflect.Zero(t)
}

// Adapter reads documents into instances of its target type by calling the
// planned constructor. It holds no per-call state and is safe for concurrent
// use.
type Adapter struct {
	plan       *Plan
	marshaller Marshaller
	logger     *slog.Logger
}

// Plan returns the plan the adapter was built from.
func (a *Adapter) Plan() *Plan { return a.plan }

// CanAdapt reports whether t is exactly the target type.
func (a *Adapter) CanAdapt(t reflect.Type) bool {
	return t == a.plan.Target()
}

// Unmarshal reads the children of the current node. A child whose name is
// bound in the plan is converted to the parameter type by ctx; other
// children are skipped. When a name repeats, the last child wins. Parameters
// without a child receive the zero value of their type.
func (a *Adapter) Unmarshal(r document.Reader, ctx UnmarshalContext) (any, error) {
	target := a.plan.Target()
	params := a.plan.ctor.params
	slots := make([]slot, len(params))

	for r.HasMoreChildren() {
		r.MoveDown()

		name := r.NodeName()
		pos, ok := a.plan.Position(name)
		if !ok {
			if a.logger.Enabled(context.Background(), slog.LevelDebug) {
				attrs := []any{"type", target.String(), "node", name}
				if near, found := a.plan.Closest(name); found {
					attrs = append(attrs, "closest", near)
				}
				a.logger.Debug("skipping unbound node", attrs...)
			}
			r.MoveUp()
			continue
		}

		v, err := ctx.ConvertAnother(params[pos])
		r.MoveUp()
		if err != nil {
			return nil, fmt.Errorf("binder: node %q of %s: %w", name, target, err)
		}

		value, err := argument(v, params[pos])
		if err != nil {
			return nil, newError(ConversionFailed, target, fmt.Sprintf("node %q", name), err)
		}

		slots[pos] = slot{value: value, provided: true}
	}

	args := make([]reflect.Value, len(slots))
	for i, s := range slots {
		args[i] = s.or(params[i])
	}

	if a.logger.Enabled(context.Background(), slog.LevelDebug) {
		a.logger.Debug("invoking constructor",
			"constructor", a.plan.ctor.QualifiedName(),
			"args", dumper.Sdump(interfaces(args)...),
		)
	}

	out, err := a.plan.ctor.call(args)
	if err != nil {
		return nil, newError(ConversionFailed, target, a.plan.ctor.QualifiedName(), err)
	}

	return out.Interface(), nil
}

// Marshal forwards to the delegate marshaller unchanged.
func (a *Adapter) Marshal(v any, w document.Writer, ctx MarshalContext) error {
	if a.marshaller == nil {
		return newError(MarshallingUnsupported, a.plan.Target(), "no delegate marshaller", nil)
	}

	return a.marshaller.Marshal(v, w, ctx)
}

// argument turns a converted value into a call argument of type t. A nil
// value stands for the zero value.
func argument(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("value of type %s is not assignable to %s", rv.Type(), t)
	}

	return rv, nil
}

func interfaces(values []reflect.Value) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if v.CanInterface() {
			out[i] = v.Interface()
		}
	}

	return out
}
