package binder_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ctor-binder/binder"
	"ctor-binder/engine"
	"ctor-binder/store"
	"ctor-binder/warehouse"
)

var (
	stringType   = reflect.TypeFor[string]()
	intType      = reflect.TypeFor[int]()
	productsType = reflect.TypeFor[[]*store.Product]()
	timeType     = reflect.TypeFor[time.Time]()
)

// fixtures returns a catalog holding the store and warehouse constructors,
// with the store annotations applied.
func fixtures(t *testing.T) *binder.Catalog {
	t.Helper()

	c := binder.NewCatalog()
	require.NoError(t, store.DeclareAnnotated(c))
	require.NoError(t, warehouse.Declare(c))

	return c
}

// newEngine returns an engine with aliases for the fixture types.
func newEngine() *engine.Engine {
	e := engine.New()
	e.Alias("order", reflect.TypeFor[*store.Order]())
	e.Alias("product", reflect.TypeFor[*store.Product]())
	e.Alias("user", reflect.TypeFor[*store.User]())
	e.Alias("annotateduser", reflect.TypeFor[*store.AnnotatedUser]())
	e.Alias("inferreduser", reflect.TypeFor[*store.InferredUser]())
	e.Alias("crate", reflect.TypeFor[*warehouse.Crate]())
	e.Alias("pallet", reflect.TypeFor[warehouse.Pallet]())
	e.Alias("rack", reflect.TypeFor[*warehouse.Rack]())

	return e
}
