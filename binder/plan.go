package binder

import (
	"reflect"
	"slices"

	"ctor-binder/internal/suggest"
)

// Plan pairs a constructor with the node name feeding each parameter. It is
// immutable once built.
type Plan struct {
	ctor     Constructor
	names    []string
	position map[string]int
}

func newPlan(ctor Constructor, names []string) *Plan {
	position := make(map[string]int, len(names))
	for i, name := range names {
		// first index wins for duplicate names
		if _, ok := position[name]; !ok {
			position[name] = i
		}
	}

	return &Plan{
		ctor:     ctor,
		names:    slices.Clone(names),
		position: position,
	}
}

// Target returns the type the plan builds.
func (p *Plan) Target() reflect.Type { return p.ctor.target }

// Constructor returns the constructor the plan calls.
func (p *Plan) Constructor() Constructor { return p.ctor }

// Names returns the node names in parameter order.
func (p *Plan) Names() []string { return slices.Clone(p.names) }

// Position returns the parameter index bound to the node name.
func (p *Plan) Position(name string) (int, bool) {
	i, ok := p.position[name]
	return i, ok
}

// Closest returns the bound name most similar to an unbound node name.
func (p *Plan) Closest(name string) (string, bool) {
	return suggest.Closest(name, p.names)
}
