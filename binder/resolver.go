package binder

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"ctor-binder/internal/common"
)

type settings struct {
	catalog  *Catalog
	inferrer NameInferrer
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*settings)

// UsingCatalog makes the resolver look constructors up in c instead of
// DefaultCatalog.
func UsingCatalog(c *Catalog) Option {
	return func(s *settings) { s.catalog = c }
}

// UsingInferrer replaces SourceInferrer for WithNameInference.
func UsingInferrer(i NameInferrer) Option {
	return func(s *settings) { s.inferrer = i }
}

// UsingLogger sets the logger handed to the resolver and its adapter.
func UsingLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// Resolver collects the choices that make up a binding plan. Methods chain;
// the first failure sticks and is returned by Build.
type Resolver struct {
	target reflect.Type
	settings

	ctor       *Constructor
	names      []string
	marshaller Marshaller

	marked    *annotated
	ambiguous []annotated

	err error
}

// For starts resolving a plan for t. The catalog is scanned right away: a
// single annotated constructor becomes the selected constructor, and its
// explicit names, if any, become the plan.
func For(t reflect.Type, opts ...Option) *Resolver {
	r := &Resolver{target: t}
	for _, opt := range opts {
		opt(&r.settings)
	}

	if r.catalog == nil {
		r.catalog = DefaultCatalog
	}
	if r.inferrer == nil {
		r.inferrer = SourceInferrer()
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}

	if t == nil {
		r.err = newError(ConstructorNotFound, nil, "nil target type", nil)
		return r
	}

	marked := r.catalog.annotated(t)
	switch {
	case common.IsSingle(marked):
		r.marked = &marked[0]
		ctor := marked[0].ctor
		r.ctor = &ctor
		if len(marked[0].ann.Names) > 0 {
			r.names = slices.Clone(marked[0].ann.Names)
		}
		r.logger.Debug("annotated constructor found", "type", t.String(), "constructor", ctor.QualifiedName())

	case common.IsMultiple(marked):
		r.ambiguous = marked
	}

	return r
}

// ForType is For with the target type given as a type argument.
func ForType[T any](opts ...Option) *Resolver {
	return For(reflect.TypeFor[T](), opts...)
}

// WithConstructor selects the catalog constructor of the target type whose
// parameter types equal paramTypes, in order. It overrides an annotated
// constructor picked up by For.
func (r *Resolver) WithConstructor(paramTypes ...reflect.Type) *Resolver {
	if r.err != nil {
		return r
	}

	for _, ctor := range r.catalog.Constructors(r.target) {
		if ctor.matches(paramTypes) {
			r.ctor = &ctor
			return r
		}
	}

	r.err = newError(ConstructorNotFound, r.target, "no constructor takes ("+typeList(paramTypes)+")", nil)
	return r
}

// WithNames sets the node names paired positionally with the constructor
// parameters.
func (r *Resolver) WithNames(names ...string) *Resolver {
	if r.err != nil {
		return r
	}

	r.names = slices.Clone(names)
	return r
}

// WithNameInference selects the annotated constructor and asks the inferrer
// for its parameter names.
func (r *Resolver) WithNameInference() *Resolver {
	if r.err != nil {
		return r
	}

	if len(r.ambiguous) > 0 {
		r.err = r.ambiguousError()
		return r
	}

	if r.marked == nil {
		r.err = newError(NoAnnotatedConstructor, r.target, "", nil)
		return r
	}

	ctor := r.marked.ctor
	names, err := r.inferrer.NamesFor(ctor)
	if err != nil {
		r.err = newError(NameInferenceUnsupported, r.target, ctor.QualifiedName(), err)
		return r
	}

	r.logger.Debug("parameter names inferred", "constructor", ctor.QualifiedName(), "names", names)
	r.ctor = &ctor
	r.names = slices.Clone(names)

	return r
}

// WithMarshaller sets the delegate used by Adapter.Marshal. Without one the
// adapter cannot write documents.
func (r *Resolver) WithMarshaller(m Marshaller) *Resolver {
	if r.err != nil {
		return r
	}

	r.marshaller = m
	return r
}

// Build checks the collected choices and returns the adapter.
func (r *Resolver) Build() (*Adapter, error) {
	if r.err != nil {
		return nil, r.err
	}

	if r.ctor == nil {
		if len(r.ambiguous) > 0 {
			return nil, r.ambiguousError()
		}

		return nil, newError(NoConstructorSelected, r.target, "", nil)
	}

	if len(r.names) != r.ctor.NumParams() {
		return nil, newError(BindingPlanMismatch, r.target,
			fmt.Sprintf("%d names for %d parameters of %s", len(r.names), r.ctor.NumParams(), r.ctor.QualifiedName()), nil)
	}

	plan := newPlan(*r.ctor, r.names)
	r.logger.Debug("binding plan resolved",
		"type", r.target.String(),
		"constructor", r.ctor.QualifiedName(),
		"names", plan.names,
	)

	return &Adapter{
		plan:       plan,
		marshaller: r.marshaller,
		logger:     r.logger,
	}, nil
}

// MustBuild is like Build but panics on error.
func (r *Resolver) MustBuild() *Adapter {
	a, err := r.Build()
	if err != nil {
		panic(err)
	}

	return a
}

func (r *Resolver) ambiguousError() *Error {
	names := make([]string, len(r.ambiguous))
	for i, m := range r.ambiguous {
		names[i] = m.ctor.QualifiedName()
	}

	return newError(AmbiguousAnnotation, r.target, "annotated constructors "+strings.Join(names, ", "), nil)
}

func typeList(types []reflect.Type) string {
	out := make([]string, len(types))
	for i, t := range types {
		if t == nil {
			out[i] = "nil"
			continue
		}
		out[i] = t.String()
	}

	return strings.Join(out, ", ")
}
