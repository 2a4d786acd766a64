package binder_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctor-binder/binder"
	"ctor-binder/store"
)

func TestCatalog_Declare(t *testing.T) {
	c := binder.NewCatalog()
	require.NoError(t, store.Declare(c))

	ctors := c.Constructors(reflect.TypeFor[*store.Order]())
	names := make([]string, len(ctors))
	for i, ctor := range ctors {
		names[i] = ctor.QualifiedName()
	}

	assert.Equal(t, []string{
		"store.NewOrder",
		"store.NewDatedOrder",
		"store.NewOrderOf",
		"store.NewOrderID",
	}, names, "declaration order is kept")

	assert.Empty(t, c.Constructors(reflect.TypeFor[store.Order]()), "types match exactly")

	err := c.Declare(store.NewOrder)
	assert.ErrorIs(t, err, binder.ErrAlreadyDeclared)

	err = c.Declare(42)
	assert.ErrorIs(t, err, binder.ErrNotAFunction)
}

func TestCatalog_Annotations(t *testing.T) {
	c := binder.NewCatalog()
	require.NoError(t, c.Declare(store.NewUser))
	require.NoError(t, c.Declare(store.NewAnnotatedUser, binder.Names("first-name", "last-name")))

	ann, ok := c.Annotation(store.NewAnnotatedUser)
	require.True(t, ok)
	assert.Equal(t, binder.Names("first-name", "last-name"), ann)

	_, ok = c.Annotation(store.NewUser)
	assert.False(t, ok)

	require.NoError(t, c.Annotate(store.NewUser, binder.InferNames()))
	ann, ok = c.Annotation(store.NewUser)
	require.True(t, ok)
	assert.True(t, ann.Infer)

	err := c.Annotate(store.NewProduct, binder.InferNames())
	assert.ErrorIs(t, err, binder.ErrUndeclared)

	err = c.Annotate(store.NewUser, binder.Annotation{Names: []string{"name"}, Infer: true})
	assert.ErrorIs(t, err, binder.ErrInvalidAnnotation)

	err = c.Declare(store.NewProduct, binder.InferNames(), binder.Names("name"))
	assert.ErrorIs(t, err, binder.ErrTooManyAnnotations)
}

func TestCatalog_AnnotationIsCopied(t *testing.T) {
	c := binder.NewCatalog()
	names := []string{"first-name", "last-name"}
	require.NoError(t, c.Declare(store.NewAnnotatedUser, binder.Annotation{Names: names}))

	names[0] = "changed"

	ann, ok := c.Annotation(store.NewAnnotatedUser)
	require.True(t, ok)
	assert.Equal(t, []string{"first-name", "last-name"}, ann.Names)
}

func TestCatalog_AnnotateFunc(t *testing.T) {
	c := binder.NewCatalog()
	require.NoError(t, store.Declare(c))

	ctor, err := c.AnnotateFunc("store.NewAnnotatedUser", binder.Names("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeFor[*store.AnnotatedUser](), ctor.Target())

	_, err = c.AnnotateFunc("ctor-binder/store.NewInferredUser", binder.InferNames())
	require.NoError(t, err)

	ann, ok := c.Annotation(store.NewInferredUser)
	require.True(t, ok)
	assert.Equal(t, binder.InferNames(), ann)

	_, err = c.AnnotateFunc("store.NewMissing", binder.InferNames())
	assert.ErrorIs(t, err, binder.ErrUndeclared)

	found, err := c.Lookup("store.NewOrderID")
	require.NoError(t, err)
	assert.Equal(t, 1, found.NumParams())
}
