package primitive

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		text string
		want any
	}{
		{"string keeps spaces", reflect.TypeOf(""), " buyer name ", " buyer name "},
		{"named string", reflect.TypeOf(status("")), "open", status("open")},
		{"int", reflect.TypeOf(0), " 666 ", 666},
		{"int8", reflect.TypeOf(int8(0)), "-12", int8(-12)},
		{"uint16", reflect.TypeOf(uint16(0)), "65535", uint16(65535)},
		{"float32", reflect.TypeOf(float32(0)), "1.5", float32(1.5)},
		{"float64", reflect.TypeOf(0.0), "2.25", 2.25},
		{"bool", reflect.TypeOf(false), "true", true},
		{"duration", reflect.TypeOf(time.Duration(0)), "2h45m", 2*time.Hour + 45*time.Minute},
		{"time", reflect.TypeOf(time.Time{}), "2012-11-14T17:25:01.53Z", time.Date(2012, 11, 14, 17, 25, 1, 530000000, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.typ, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(reflect.TypeOf(int8(0)), "300")
	assert.ErrorIs(t, err, ErrInvalidText)

	_, err = Parse(reflect.TypeOf(false), "maybe")
	assert.ErrorIs(t, err, ErrInvalidText)

	_, err = Parse(reflect.TypeOf(struct{}{}), "x")
	assert.ErrorIs(t, err, ErrNotScalar)
}

func TestFormat_RoundTrip(t *testing.T) {
	values := []any{
		"text", status("closed"), 42, int64(-7), uint8(200), float32(0.25), 3.5, false,
		90 * time.Second,
		time.Date(2020, 1, 2, 3, 4, 5, 6, time.UTC),
	}

	for _, v := range values {
		text, err := Format(reflect.ValueOf(v))
		require.NoError(t, err)

		back, err := Parse(reflect.TypeOf(v), text)
		require.NoError(t, err)
		assert.Equal(t, v, back.Interface())
	}

	_, err := Format(reflect.ValueOf([]int{1}))
	assert.ErrorIs(t, err, ErrNotScalar)
}

func TestKindEnum_Bits(t *testing.T) {
	assert.Equal(t, 8, KindInt8.Bits())
	assert.Equal(t, 32, KindFloat32.Bits())
	assert.Equal(t, 64, KindUint64.Bits())
	assert.Panics(t, func() { KindString.Bits() })
}
