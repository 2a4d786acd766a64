package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"ctor-binder/binder"
	"ctor-binder/document"
)

var (
	ErrNoAdapter    = errors.New("engine: no adapter for type")
	ErrUnknownAlias = errors.New("engine: unknown alias")
	ErrInvalidValue = errors.New("engine: invalid value")
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for adapter registration records.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine owns a set of type adapters and the aliases naming root nodes. It
// is safe for concurrent use.
type Engine struct {
	logger *slog.Logger

	mu       sync.RWMutex
	adapters []binder.TypeAdapter
	aliases  map[string]reflect.Type
	names    map[reflect.Type]string
}

var _ binder.Registry = (*Engine)(nil)

// New returns an engine holding the built-in adapters for structs, slices,
// pointers, scalars and time.Time.
func New(opts ...Option) *Engine {
	e := &Engine{
		aliases: make(map[string]reflect.Type),
		names:   make(map[reflect.Type]string),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}

	e.adapters = []binder.TypeAdapter{
		structAdapter{},
		sliceAdapter{e: e},
		pointerAdapter{},
		scalarAdapter{},
		timeAdapter{},
	}

	return e
}

// Alias names the root node of documents holding values of type t. The first
// alias of a type is also used when writing.
func (e *Engine) Alias(name string, t reflect.Type) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.aliases[name] = t
	if _, ok := e.names[t]; !ok {
		e.names[t] = name
	}
}

// Register adds an adapter. It takes priority over every adapter registered
// before it.
func (e *Engine) Register(a binder.TypeAdapter) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.adapters = append(e.adapters, a)
	e.logger.Debug("adapter registered", "adapter", fmt.Sprintf("%T", a))
}

// Lookup returns the most recently registered adapter accepting t.
func (e *Engine) Lookup(t reflect.Type) (binder.TypeAdapter, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for i := len(e.adapters) - 1; i >= 0; i-- {
		if e.adapters[i].CanAdapt(t) {
			return e.adapters[i], true
		}
	}

	return nil, false
}

// Unmarshal reads the document under r, choosing the type by the alias of
// the root node name.
func (e *Engine) Unmarshal(r document.Reader) (any, error) {
	e.mu.RLock()
	t, ok := e.aliases[r.NodeName()]
	e.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlias, r.NodeName())
	}

	return e.UnmarshalAs(r, t)
}

// UnmarshalAs reads the document under r as a value of type t, whatever the
// root node is named.
func (e *Engine) UnmarshalAs(r document.Reader, t reflect.Type) (any, error) {
	return e.convert(r, t)
}

func (e *Engine) convert(r document.Reader, t reflect.Type) (any, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrInvalidValue)
	}

	a, ok := e.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAdapter, t)
	}

	return a.Unmarshal(r, unmarshalContext{e: e, r: r, t: t})
}

// Marshal writes v as a document rooted at the alias of its type.
func (e *Engine) Marshal(v any, w document.Writer) error {
	if v == nil {
		return fmt.Errorf("%w: nil", ErrInvalidValue)
	}

	w.StartNode(e.nameFor(reflect.TypeOf(v)))
	err := e.marshal(v, w)
	w.EndNode()

	return err
}

func (e *Engine) marshal(v any, w document.Writer) error {
	if v == nil {
		return nil
	}

	t := reflect.TypeOf(v)
	a, ok := e.Lookup(t)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoAdapter, t)
	}

	return a.Marshal(v, w, marshalContext{e: e, w: w})
}

// nameFor returns the node name used when writing a value of type t that has
// no field name: the alias of t, or its lowercased type name.
func (e *Engine) nameFor(t reflect.Type) string {
	e.mu.RLock()
	name, ok := e.names[t]
	e.mu.RUnlock()

	if ok {
		return name
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Name() == "" {
		return document.ItemName
	}

	return strings.ToLower(t.Name())
}

type unmarshalContext struct {
	e *Engine
	r document.Reader
	t reflect.Type
}

func (c unmarshalContext) RequiredType() reflect.Type { return c.t }

func (c unmarshalContext) ConvertAnother(t reflect.Type) (any, error) {
	return c.e.convert(c.r, t)
}

type marshalContext struct {
	e *Engine
	w document.Writer
}

func (c marshalContext) ConvertAnother(v any) error {
	return c.e.marshal(v, c.w)
}
