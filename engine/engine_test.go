package engine_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctor-binder/binder"
	"ctor-binder/document"
	"ctor-binder/engine"
)

type Point struct {
	X, Y int
}

type Level string

type Shape struct {
	Name    string
	Level   Level
	Points  []Point
	Tags    []string
	Scale   *float64
	Created time.Time
	TTL     time.Duration
	note    string
}

func newShapeEngine() *engine.Engine {
	e := engine.New()
	e.Alias("shape", reflect.TypeFor[Shape]())
	e.Alias("point", reflect.TypeFor[Point]())

	return e
}

func sampleShape() Shape {
	scale := 1.5

	return Shape{
		Name:    "triangle",
		Level:   "top",
		Points:  []Point{{X: 1, Y: 2}, {X: 3, Y: 4}},
		Tags:    []string{"a"},
		Scale:   &scale,
		Created: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		TTL:     time.Minute,
	}
}

func ExampleEngine_ToXML() {
	e := newShapeEngine()

	xml, err := e.ToXML(Shape{
		Name:   "line",
		Points: []Point{{X: 1, Y: 2}},
		TTL:    time.Second,
		note:   "unexported fields are written",
	})
	fmt.Println(err)
	fmt.Println(xml)

	// Output:
	// <nil>
	// <shape>
	//   <Name>line</Name>
	//   <Level></Level>
	//   <Points>
	//     <point>
	//       <X>1</X>
	//       <Y>2</Y>
	//     </point>
	//   </Points>
	//   <Created>0001-01-01T00:00:00Z</Created>
	//   <TTL>1s</TTL>
	//   <note>unexported fields are written</note>
	// </shape>
}

func TestEngine_RoundTrip(t *testing.T) {
	e := newShapeEngine()
	want := sampleShape()

	for _, f := range allFormats {
		t.Run(f.String(), func(t *testing.T) {
			data, err := e.Encode(f, want)
			require.NoError(t, err)

			got, err := e.Decode(f, data)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	xml, err := e.ToXML(want)
	require.NoError(t, err)
	require.Contains(t, xml, "\n  <Name>triangle</Name>\n", "indented output")

	got, err := e.FromXML(xml)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

var allFormats = []document.Format{
	document.FormatXML,
	document.FormatYAML,
	document.FormatJSON,
	document.FormatCBOR,
	document.FormatSnapshot,
}

type Chain struct {
	Value string
	Next  *Chain
}

func chainOf(depth int) *Chain {
	var c *Chain
	for i := range depth {
		c = &Chain{Value: fmt.Sprint(depth - i), Next: c}
	}

	return c
}

func TestEngine_DeepRoundTrip(t *testing.T) {
	e := engine.New()
	e.Alias("chain", reflect.TypeFor[*Chain]())
	want := chainOf(100)

	for _, f := range allFormats {
		t.Run(f.String(), func(t *testing.T) {
			data, err := e.Encode(f, want)
			require.NoError(t, err)

			got, err := e.Decode(f, data)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := e.Encode(document.FormatCBOR, chainOf(document.MaxDepth+1))
	assert.ErrorIs(t, err, document.ErrTooDeep)
}

func TestEngine_UnexportedFieldsAreNotRead(t *testing.T) {
	e := newShapeEngine()

	got, err := e.FromXML("<shape><Name>n</Name><note>ignored</note><Other>x</Other></shape>")
	require.NoError(t, err)
	assert.Equal(t, Shape{Name: "n"}, got)
}

func TestEngine_Scalars(t *testing.T) {
	e := engine.New()

	tests := []struct {
		name string
		text string
		t    reflect.Type
		want any
	}{
		{"int", " 42 ", reflect.TypeFor[int](), 42},
		{"uint8", "255", reflect.TypeFor[uint8](), uint8(255)},
		{"float32", "2.5", reflect.TypeFor[float32](), float32(2.5)},
		{"bool", "true", reflect.TypeFor[bool](), true},
		{"string keeps spaces", " a b ", reflect.TypeFor[string](), " a b "},
		{"named", "top", reflect.TypeFor[Level](), Level("top")},
		{"duration", "1h30m", reflect.TypeFor[time.Duration](), 90 * time.Minute},
		{"time", "2024-03-01T12:00:00Z", reflect.TypeFor[time.Time](), time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := e.UnmarshalAs(document.NewReader(document.Leaf("v", tt.text)), tt.t)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	_, err := e.UnmarshalAs(document.NewReader(document.Leaf("v", "x")), reflect.TypeFor[int]())
	assert.ErrorIs(t, err, engine.ErrInvalidValue)
}

func TestEngine_Calendar(t *testing.T) {
	e := engine.New()
	timeType := reflect.TypeFor[time.Time]()

	calendar := document.Elem("date",
		document.Leaf("time", "1352913901530"),
		document.Leaf("timezone", "America/Sao_Paulo"),
	)

	v, err := e.UnmarshalAs(document.NewReader(calendar), timeType)
	require.NoError(t, err)

	date := v.(time.Time)
	assert.Equal(t, int64(1352913901530), date.UnixMilli())
	assert.Equal(t, "America/Sao_Paulo", date.Location().String())

	v, err = e.UnmarshalAs(document.NewReader(document.Elem("date", document.Leaf("time", "0"))), timeType)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, v.(time.Time).Location())

	bad := []*document.Node{
		document.Elem("date", document.Leaf("timezone", "UTC")),
		document.Elem("date", document.Leaf("time", "soon")),
		document.Elem("date", document.Leaf("time", "1"), document.Leaf("timezone", "Nowhere/Special")),
	}
	for _, n := range bad {
		_, err := e.UnmarshalAs(document.NewReader(n), timeType)
		assert.ErrorIs(t, err, engine.ErrInvalidValue, n.String())
	}
}

func TestEngine_SlicesAndPointers(t *testing.T) {
	e := engine.New()

	n, err := document.ParseYAML([]byte("numbers: [1, 2, 3]\n"))
	require.NoError(t, err)

	v, err := e.UnmarshalAs(document.NewReader(n), reflect.TypeFor[[]int]())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v)

	v, err = e.UnmarshalAs(document.NewReader(document.Elem("empty")), reflect.TypeFor[[]int]())
	require.NoError(t, err)
	assert.Equal(t, []int{}, v)

	v, err = e.UnmarshalAs(document.NewReader(document.Leaf("p", "7")), reflect.TypeFor[**int]())
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 7, **(v.(**int)))
}

func TestEngine_Errors(t *testing.T) {
	e := newShapeEngine()

	_, err := e.FromXML("<circle/>")
	assert.ErrorIs(t, err, engine.ErrUnknownAlias)

	_, err = e.UnmarshalAs(document.NewReader(document.Leaf("m", "")), reflect.TypeFor[map[string]int]())
	assert.ErrorIs(t, err, engine.ErrNoAdapter)

	_, err = e.UnmarshalAs(document.NewReader(document.Leaf("m", "")), nil)
	assert.ErrorIs(t, err, engine.ErrInvalidValue)

	err = e.Marshal(nil, document.NewTreeWriter())
	assert.ErrorIs(t, err, engine.ErrInvalidValue)

	_, err = e.ToXML(map[string]int{"a": 1})
	assert.ErrorIs(t, err, engine.ErrNoAdapter)

	_, err = e.FromXML("<shape><Points><point><X>x</X></point></Points></shape>")
	assert.ErrorIs(t, err, engine.ErrInvalidValue)

	_, err = e.Decode(document.FormatJSON, []byte("{"))
	assert.Error(t, err)
}

// upperAdapter reads and writes strings in upper case.
type upperAdapter struct{}

func (upperAdapter) CanAdapt(t reflect.Type) bool { return t == reflect.TypeFor[string]() }

func (upperAdapter) Unmarshal(r document.Reader, _ binder.UnmarshalContext) (any, error) {
	return "UP:" + r.Value(), nil
}

func (upperAdapter) Marshal(v any, w document.Writer, _ binder.MarshalContext) error {
	w.SetValue("UP:" + v.(string))
	return nil
}

func TestEngine_RegisterTakesPriority(t *testing.T) {
	e := newShapeEngine()

	before, ok := e.Lookup(reflect.TypeFor[string]())
	require.True(t, ok)

	e.Register(upperAdapter{})

	after, ok := e.Lookup(reflect.TypeFor[string]())
	require.True(t, ok)
	assert.NotEqual(t, before, after)
	assert.Equal(t, upperAdapter{}, after)

	got, err := e.FromXML("<shape><Name>n</Name><Level>l</Level></shape>")
	require.NoError(t, err)
	assert.Equal(t, Shape{Name: "UP:n", Level: "l"}, got, "named string types keep the builtin adapter")

	_, ok = e.Lookup(reflect.TypeFor[chan int]())
	assert.False(t, ok)
}

func TestDecodeAs(t *testing.T) {
	e := engine.New()

	p, err := engine.DecodeAs[Point](e, document.FormatJSON, []byte(`{"anything": {"X": 1, "Y": 2}}`))
	require.NoError(t, err)
	assert.Equal(t, Point{X: 1, Y: 2}, p)

	_, err = engine.DecodeAs[Point](e, document.FormatJSON, []byte(`{"p": {"X": "one"}}`))
	assert.ErrorIs(t, err, engine.ErrInvalidValue)

	_, err = engine.DecodeAs[Point](e, document.Format(0), nil)
	assert.ErrorIs(t, err, document.ErrUnknownFormat)
}

func TestFieldMarshaller(t *testing.T) {
	e := newShapeEngine()
	w := document.NewTreeWriter()

	shape := sampleShape()
	shape.Scale = nil
	shape.Tags = nil

	require.NoError(t, e.Marshal(&shape, w))

	root := w.Root()
	require.NotNil(t, root)
	assert.Equal(t, "shape", root.Name)

	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Name", "Level", "Points", "Created", "TTL", "note"}, names)

	err := engine.FieldMarshaller{}.Marshal(42, w, nil)
	assert.ErrorIs(t, err, engine.ErrInvalidValue)

	var nilShape *Shape
	assert.NoError(t, engine.FieldMarshaller{}.Marshal(nilShape, w, nil))
}

func TestEngine_MarshalErrorsArePassedOn(t *testing.T) {
	e := newShapeEngine()
	failure := errors.New("cannot write")

	e.Register(failingAdapter{err: failure})

	_, err := e.ToXML(sampleShape())
	assert.ErrorIs(t, err, failure)
}

type failingAdapter struct {
	err error
}

func (failingAdapter) CanAdapt(t reflect.Type) bool { return t == reflect.TypeFor[time.Duration]() }

func (a failingAdapter) Unmarshal(document.Reader, binder.UnmarshalContext) (any, error) {
	return nil, a.err
}

func (a failingAdapter) Marshal(any, document.Writer, binder.MarshalContext) error { return a.err }
