// Package warehouse holds constructor shapes that fail or that cannot be bound
// unambiguously.
package warehouse

import (
	"errors"
	"fmt"
)

var ErrEmptyLabel = errors.New("crate label is empty")

// Crate refuses to be built without a label.
type Crate struct {
	label string
}

func NewCrate(label string) (*Crate, error) {
	if label == "" {
		return nil, ErrEmptyLabel
	}

	return &Crate{label: label}, nil
}

func (c *Crate) Label() string { return c.label }

// Pallet panics on a negative weight.
type Pallet struct {
	weight int
}

func NewPallet(weight int) Pallet {
	if weight < 0 {
		panic(fmt.Sprintf("negative pallet weight %d", weight))
	}

	return Pallet{weight: weight}
}

func (p Pallet) Weight() int { return p.weight }

// Shelf has two constructors that both ask for name inference.
type Shelf struct {
	code     string
	row, col int
}

func NewShelf(code string) *Shelf {
	return &Shelf{code: code}
}

func NewShelfAt(row, col int) *Shelf {
	return &Shelf{row: row, col: col}
}

func (s *Shelf) Code() string { return s.code }

// Bin has a constructor without parameter names.
type Bin struct {
	zone string
	size int
}

func NewBin(string, int) *Bin {
	return &Bin{}
}

func NewBlankBin(zone string, _ int) *Bin {
	return &Bin{zone: zone}
}

// Rack takes any number of labels.
type Rack struct {
	name   string
	labels []string
}

func NewRack(name string, labels ...string) *Rack {
	return &Rack{name: name, labels: labels}
}

func (r *Rack) Name() string     { return r.name }
func (r *Rack) Labels() []string { return r.labels }

// Pair is a generic value holder.
type Pair[T any] struct {
	left, right T
}

func NewPair[T any](left, right T) Pair[T] {
	return Pair[T]{left: left, right: right}
}

func (p Pair[T]) Left() T  { return p.left }
func (p Pair[T]) Right() T { return p.right }
