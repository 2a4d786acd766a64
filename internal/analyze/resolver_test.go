package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamResolver_ParamNames(t *testing.T) {
	r := NewParamResolver("", nil)

	tests := []struct {
		name string
		fn   string
		want []string
	}{
		{"single param", "ctor-binder/store.NewInferredUser", []string{"strangeArgName"}},
		{"grouped params", "ctor-binder/store.NewAnnotatedUser", []string{"firstName", "lastName"}},
		{"all params", "ctor-binder/store.NewOrder", []string{"id", "products", "date", "buyer"}},
		{"variadic", "ctor-binder/warehouse.NewRack", []string{"name", "labels"}},
		{"generic instantiation", "ctor-binder/warehouse.NewPair[...]", []string{"left", "right"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ParamNames(tt.fn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParamResolver_Errors(t *testing.T) {
	r := NewParamResolver("", nil)

	_, err := r.ParamNames("ctor-binder/store.NewMissing")
	assert.ErrorIs(t, err, ErrFuncNotFound)

	_, err = r.ParamNames("ctor-binder/store.Constructors.func1")
	assert.ErrorIs(t, err, ErrNotTopLevel)

	_, err = r.ParamNames("ctor-binder/store.(*Order).ID-fm")
	assert.ErrorIs(t, err, ErrNotTopLevel)

	_, err = r.ParamNames("ctor-binder/warehouse.NewBin")
	assert.ErrorIs(t, err, ErrUnnamedParams)

	_, err = r.ParamNames("ctor-binder/warehouse.NewBlankBin")
	assert.ErrorIs(t, err, ErrUnnamedParams)

	_, err = r.ParamNames("ctor-binder/warehouse.ErrEmptyLabel")
	assert.ErrorIs(t, err, ErrFuncNotFound)

	_, err = r.ParamNames("ctor-binder/nosuchpkg.NewThing")
	assert.Error(t, err)
}

func TestParamResolver_Caches(t *testing.T) {
	r := NewParamResolver("", nil)

	first, err := r.ParamNames("ctor-binder/store.NewUser")
	require.NoError(t, err)

	_, err = r.ParamNames("ctor-binder/store.NewProduct")
	require.NoError(t, err)

	again, err := r.ParamNames("ctor-binder/store.NewUser")
	require.NoError(t, err)

	assert.Equal(t, []string{"name"}, first)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, r.Loads(), "store must be loaded once")

	first[0] = "mutated"
	again, err = r.ParamNames("ctor-binder/store.NewUser")
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, again)
}

func TestParseFuncID(t *testing.T) {
	id, err := ParseFuncID("ctor-binder/store.NewOrder")
	require.NoError(t, err)
	assert.Equal(t, FuncID{PkgPath: "ctor-binder/store", Name: "NewOrder"}, id)
	assert.Equal(t, "ctor-binder/store.NewOrder", id.String())

	_, err = ParseFuncID("NewOrder")
	assert.ErrorIs(t, err, ErrNotTopLevel)

	_, err = ParseFuncID("main.NewConfig")
	assert.ErrorIs(t, err, ErrMainPackage)

	_, err = ParseFuncID("main.main.func1")
	assert.ErrorIs(t, err, ErrNotTopLevel)
}

func TestParamResolver_MainPackage(t *testing.T) {
	r := NewParamResolver("", nil)

	_, err := r.ParamNames("main.NewConfig")
	assert.ErrorIs(t, err, ErrMainPackage)

	_, err = r.Describe(FuncID{PkgPath: "main", Name: "NewConfig"})
	assert.ErrorIs(t, err, ErrMainPackage)
	assert.Zero(t, r.Loads(), "the loader is never invoked for main")
}

func TestParamResolver_Describe(t *testing.T) {
	r := NewParamResolver("", nil)

	sig, err := r.Describe(FuncID{PkgPath: "ctor-binder/store", Name: "NewOrder"})
	require.NoError(t, err)
	assert.Equal(t, Signature{NumParams: 4, Result: "*store.Order"}, sig)

	sig, err = r.Describe(FuncID{PkgPath: "ctor-binder/warehouse", Name: "NewBin"})
	require.NoError(t, err, "unnamed parameters can still be counted")
	assert.Equal(t, 2, sig.NumParams)

	sig, err = r.Describe(FuncID{PkgPath: "ctor-binder/warehouse", Name: "NewRack"})
	require.NoError(t, err)
	assert.True(t, sig.Variadic)

	sig, err = r.Describe(FuncID{PkgPath: "ctor-binder/warehouse", Name: "NewCrate"})
	require.NoError(t, err)
	assert.Equal(t, "*warehouse.Crate", sig.Result)

	_, err = r.Describe(FuncID{PkgPath: "ctor-binder/warehouse", Name: "Missing"})
	assert.ErrorIs(t, err, ErrFuncNotFound)

	assert.Equal(t, 2, r.Loads(), "one load per package")
}

func TestParamResolver_Funcs(t *testing.T) {
	r := NewParamResolver("", nil)

	names, err := r.Funcs("ctor-binder/store")
	require.NoError(t, err)
	assert.Contains(t, names, "NewOrder")
	assert.Contains(t, names, "Declare")
	assert.NotContains(t, names, "Order", "types are not functions")
	assert.IsIncreasing(t, names)

	_, err = r.Describe(FuncID{PkgPath: "ctor-binder/store", Name: "NewOrdr"})
	require.ErrorIs(t, err, ErrFuncNotFound)
	assert.ErrorContains(t, err, "did you mean NewOrder?")
	assert.Equal(t, 1, r.Loads())
}
