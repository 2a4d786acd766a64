package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFuncName(t *testing.T) {
	tests := []struct {
		full, pkg, name string
	}{
		{"ctor-binder/store.NewOrder", "ctor-binder/store", "NewOrder"},
		{"ctor-binder/store.NewOrder.func1", "ctor-binder/store", "NewOrder.func1"},
		{"ctor-binder/store.(*Order).ID-fm", "ctor-binder/store", "(*Order).ID-fm"},
		{"gopkg.in/yaml%2ev3.Marshal", "gopkg.in/yaml.v3", "Marshal"},
		{"strconv.Itoa", "strconv", "Itoa"},
		{"ctor-binder/warehouse.NewPair[...]", "ctor-binder/warehouse", "NewPair[...]"},
		{"noDots", "", "noDots"},
	}

	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			pkg, name := SplitFuncName(tt.full)
			assert.Equal(t, tt.pkg, pkg)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestIsTopLevelFunc(t *testing.T) {
	assert.True(t, IsTopLevelFunc("NewOrder"))
	assert.False(t, IsTopLevelFunc(""))
	assert.False(t, IsTopLevelFunc("NewOrder.func1"))
	assert.False(t, IsTopLevelFunc("(*Order).ID-fm"))
	assert.False(t, IsTopLevelFunc("Order.ID"))
}

func TestQualifiedFuncName(t *testing.T) {
	assert.Equal(t, "store.NewOrder", QualifiedFuncName("ctor-binder/store.NewOrder"))
	assert.Equal(t, "warehouse.NewPair", QualifiedFuncName("ctor-binder/warehouse.NewPair[...]"))
	assert.Equal(t, "yaml.v3.Marshal", QualifiedFuncName("gopkg.in/yaml%2ev3.Marshal"))
}

func TestCardinality(t *testing.T) {
	assert.False(t, IsSingle([]int(nil)))
	assert.True(t, IsSingle([]int{1}))
	assert.False(t, IsMultiple([]int{1}))
	assert.True(t, IsMultiple([]string{"a", "b", "c"}))
}
