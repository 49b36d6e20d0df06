package mailer

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	t.Parallel()

	name := "Ann"
	var nilPtr *string

	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "nil", in: nil, want: Null{}},
		{name: "bool", in: true, want: Bool(true)},
		{name: "int", in: 42, want: Number(42)},
		{name: "uint8", in: uint8(7), want: Number(7)},
		{name: "float", in: 1.5, want: Number(1.5)},
		{name: "string", in: "hi", want: String("hi")},
		{name: "value passes through", in: String("x"), want: String("x")},
		{name: "pointer", in: &name, want: String("Ann")},
		{name: "nil pointer", in: nilPtr, want: Null{}},
		{name: "typed slice", in: []string{"a", "b"}, want: Array{String("a"), String("b")}},
		{name: "any slice", in: []any{1, "a", nil}, want: Array{Number(1), String("a"), Null{}}},
		{name: "typed map", in: map[string]int{"n": 1}, want: Object{"n": Number(1)}},
		{
			name: "nested",
			in:   map[string]any{"user": map[string]any{"tags": []string{"x"}}},
			want: Object{"user": Object{"tags": Array{String("x")}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValueOf(tt.in)
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "got %#v", got)
		})
	}
}

func TestValueOf_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
	}{
		{name: "NaN", in: math.NaN()},
		{name: "infinity", in: math.Inf(1)},
		{name: "struct", in: struct{ A int }{1}},
		{name: "int keyed map", in: map[int]string{1: "a"}},
		{name: "nested channel", in: map[string]any{"c": make(chan int)}},
		{name: "func in slice", in: []any{func() {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ValueOf(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, Equal(nil, Null{}))
	assert.True(t, Equal(Array{Number(1), Object{"a": Bool(true)}}, Array{Number(1), Object{"a": Bool(true)}}))
	assert.False(t, Equal(Number(1), String("1")))
	assert.False(t, Equal(Array{Number(1)}, Array{Number(1), Number(2)}))
	assert.False(t, Equal(Object{"a": Null{}}, Object{"b": Null{}}))
	assert.False(t, Equal(Object{"a": Null{}}, Object{}))
}

func TestKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    Value
		kind Kind
		name string
	}{
		{Null{}, KindNull, "null"},
		{Bool(false), KindBool, "bool"},
		{Number(0), KindNumber, "number"},
		{String(""), KindString, "string"},
		{Array{}, KindArray, "array"},
		{Object{}, KindObject, "object"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.v.Kind())
		assert.Equal(t, tt.name, tt.kind.String())
	}
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestObject(t *testing.T) {
	t.Parallel()

	obj := Object{"b": Number(2), "a": String("x"), "c": nil}

	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys())

	v, ok := obj.Get("a")
	assert.True(t, ok)
	assert.Equal(t, String("x"), v)

	v, ok = obj.Get("c")
	assert.True(t, ok)
	assert.Equal(t, Null{}, v)

	v, ok = obj.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, Null{}, v)

	assert.Equal(t, map[string]any{"a": "x", "b": 2.0, "c": nil}, obj.Map())
	assert.Equal(t, map[string]any{}, Object(nil).Map())
}

func TestObject_JSON(t *testing.T) {
	t.Parallel()

	obj := Object{"z": Null{}, "a": Array{Bool(true), Number(1.5), String("s")}}
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":[true,1.5,"s"],"z":null}`, string(data))
}

func TestContextOf(t *testing.T) {
	t.Parallel()

	obj, err := ContextOf(map[string]any{"name": "Ann", "age": 30})
	require.NoError(t, err)
	assert.True(t, Equal(Object{"name": String("Ann"), "age": Number(30)}, obj))

	_, err = ContextOf(map[string]any{"bad": math.NaN()})
	assert.Error(t, err)

	assert.Panics(t, func() { MustContextOf(map[string]any{"bad": math.Inf(-1)}) })
}
