package binder_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctor-binder/binder"
	"ctor-binder/store"
)

func TestLoadAnnotations_SamePlanAsCode(t *testing.T) {
	fromFile := binder.NewCatalog()
	require.NoError(t, store.Declare(fromFile))
	require.NoError(t, binder.LoadAnnotationsFile(fromFile, filepath.Join("testdata", "bindings.yaml")))

	fromCode := fixtures(t)

	a, err := binder.ForType[*store.AnnotatedUser](binder.UsingCatalog(fromFile)).Build()
	require.NoError(t, err)
	b, err := binder.ForType[*store.AnnotatedUser](binder.UsingCatalog(fromCode)).Build()
	require.NoError(t, err)

	assert.Equal(t, b.Plan().Names(), a.Plan().Names())
	assert.Equal(t, b.Plan().Constructor().Name(), a.Plan().Constructor().Name())

	ann, ok := fromFile.Annotation(store.NewInferredUser)
	require.True(t, ok)
	assert.Equal(t, binder.InferNames(), ann)
}

func TestLoadAnnotations_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{
			name: "syntax",
			yaml: "bindings: [",
			err:  binder.ErrInvalidBindings,
		},
		{
			name: "structure",
			yaml: "bindings:\n  - constructor: store.NewUser\n",
			err:  binder.ErrInvalidBindings,
		},
		{
			name: "type mismatch",
			yaml: "bindings:\n  - type: \"store.User\"\n    constructor: store.NewUser\n    names: [name]\n",
			err:  binder.ErrInvalidBindings,
		},
		{
			name: "undeclared",
			yaml: "bindings:\n  - constructor: store.NewCustomer\n    names: [name]\n",
			err:  binder.ErrUndeclared,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := binder.NewCatalog()
			require.NoError(t, store.Declare(c))

			err := binder.LoadAnnotations(c, []byte(tt.yaml))
			assert.ErrorIs(t, err, tt.err)

			_, annotated := c.Annotation(store.NewUser)
			assert.False(t, annotated)
		})
	}
}

func TestLoadAnnotationsFile_Missing(t *testing.T) {
	err := binder.LoadAnnotationsFile(binder.NewCatalog(), filepath.Join("testdata", "missing.yaml"))
	assert.ErrorIs(t, err, binder.ErrInvalidBindings)
}
