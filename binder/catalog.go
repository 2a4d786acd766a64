package binder

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/ygrebnov/errorc"
)

var (
	ErrInvalidAnnotation  = errors.New("binder: annotation carries both names and the inference marker")
	ErrAlreadyDeclared    = errors.New("binder: constructor already declared")
	ErrUndeclared         = errors.New("binder: constructor not declared")
	ErrAmbiguousFuncName  = errors.New("binder: function name matches several constructors")
	ErrTooManyAnnotations = errors.New("binder: at most one annotation per constructor")
)

// Structured fields attached to catalog errors.
const (
	ErrorFieldConstructor = "binder.constructor"
	ErrorFieldCandidates  = "binder.candidates"
)

// Annotation marks the constructor a Resolver picks by default. With Names
// set it also fixes the binding plan; otherwise the names are left to
// inference.
type Annotation struct {
	Names []string
	Infer bool
}

// Names returns an annotation with an explicit ordered name list.
func Names(names ...string) Annotation {
	return Annotation{Names: slices.Clone(names)}
}

// InferNames returns the marker annotation that requests name inference.
func InferNames() Annotation {
	return Annotation{Infer: true}
}

func (a Annotation) validate() error {
	if a.Infer && len(a.Names) > 0 {
		return ErrInvalidAnnotation
	}

	return nil
}

type entry struct {
	ctor Constructor
	ann  *Annotation
}

// annotated is a constructor together with a copy of its annotation.
type annotated struct {
	ctor Constructor
	ann  Annotation
}

// Catalog files constructors under the type they build. It stands in for the
// constructor list and annotations a type would carry in languages with
// runtime metadata. A Catalog is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]*entry
	all    []*entry
}

// DefaultCatalog is used by resolvers created without UsingCatalog.
var DefaultCatalog = NewCatalog()

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byType: make(map[reflect.Type][]*entry)}
}

// Declare parses fn with ParseConstructor and files it under its target type.
// Constructors of a type keep their declaration order.
func (c *Catalog) Declare(fn any, ann ...Annotation) error {
	ctor, err := ParseConstructor(fn)
	if err != nil {
		return err
	}

	if len(ann) > 1 {
		return errorc.With(ErrTooManyAnnotations, errorc.String(ErrorFieldConstructor, ctor.QualifiedName()))
	}

	e := &entry{ctor: ctor}
	if len(ann) == 1 {
		if err := ann[0].validate(); err != nil {
			return fmt.Errorf("%w: %s", err, ctor.QualifiedName())
		}
		a := Annotation{Names: slices.Clone(ann[0].Names), Infer: ann[0].Infer}
		e.ann = &a
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, other := range c.byType[ctor.target] {
		if other.ctor.same(ctor) {
			return errorc.With(ErrAlreadyDeclared, errorc.String(ErrorFieldConstructor, ctor.QualifiedName()))
		}
	}

	c.byType[ctor.target] = append(c.byType[ctor.target], e)
	c.all = append(c.all, e)

	return nil
}

// Annotate attaches ann to the already declared constructor fn, replacing any
// previous annotation.
func (c *Catalog) Annotate(fn any, ann Annotation) error {
	ctor, err := ParseConstructor(fn)
	if err != nil {
		return err
	}

	if err := ann.validate(); err != nil {
		return fmt.Errorf("%w: %s", err, ctor.QualifiedName())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.byType[ctor.target] {
		if e.ctor.same(ctor) {
			e.ann = &Annotation{Names: slices.Clone(ann.Names), Infer: ann.Infer}
			return nil
		}
	}

	return errorc.With(ErrUndeclared, errorc.String(ErrorFieldConstructor, ctor.QualifiedName()))
}

// AnnotateFunc is Annotate by function name. The name is either the runtime
// name ("ctor-binder/store.NewOrder") or the qualified name ("store.NewOrder").
// It returns the annotated constructor.
func (c *Catalog) AnnotateFunc(name string, ann Annotation) (Constructor, error) {
	if err := ann.validate(); err != nil {
		return Constructor{}, fmt.Errorf("%w: %s", err, name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.locate(name)
	if err != nil {
		return Constructor{}, err
	}

	e.ann = &Annotation{Names: slices.Clone(ann.Names), Infer: ann.Infer}
	return e.ctor, nil
}

// Lookup finds a declared constructor by runtime or qualified name.
func (c *Catalog) Lookup(name string) (Constructor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, err := c.locate(name)
	if err != nil {
		return Constructor{}, err
	}

	return e.ctor, nil
}

func (c *Catalog) locate(name string) (*entry, error) {
	var found []*entry
	for _, e := range c.all {
		if e.ctor.Name() == name || e.ctor.QualifiedName() == name {
			found = append(found, e)
		}
	}

	switch len(found) {
	case 0:
		return nil, errorc.With(ErrUndeclared, errorc.String(ErrorFieldConstructor, name))
	case 1:
		return found[0], nil
	default:
		candidates := make([]string, len(found))
		for i, e := range found {
			candidates[i] = e.ctor.Name()
		}
		return nil, errorc.With(ErrAmbiguousFuncName,
			errorc.String(ErrorFieldConstructor, name),
			errorc.String(ErrorFieldCandidates, strings.Join(candidates, ", ")),
		)
	}
}

// Constructors returns the constructors declared for t, in declaration order.
func (c *Catalog) Constructors(t reflect.Type) []Constructor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := c.byType[t]
	out := make([]Constructor, len(entries))
	for i, e := range entries {
		out[i] = e.ctor
	}

	return out
}

// Annotation returns the annotation attached to the constructor fn, if any.
func (c *Catalog) Annotation(fn any) (Annotation, bool) {
	ctor, err := ParseConstructor(fn)
	if err != nil {
		return Annotation{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.byType[ctor.target] {
		if e.ctor.same(ctor) && e.ann != nil {
			return Annotation{Names: slices.Clone(e.ann.Names), Infer: e.ann.Infer}, true
		}
	}

	return Annotation{}, false
}

func (c *Catalog) annotated(t reflect.Type) []annotated {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []annotated
	for _, e := range c.byType[t] {
		if e.ann != nil {
			out = append(out, annotated{
				ctor: e.ctor,
				ann:  Annotation{Names: slices.Clone(e.ann.Names), Infer: e.ann.Infer},
			})
		}
	}

	return out
}
