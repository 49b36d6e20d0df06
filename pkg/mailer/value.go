package mailer

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"sort"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds, one per implementation.
const (
	KindNull   Kind = iota // Null
	KindBool               // Bool
	KindNumber             // Number, always a finite float64
	KindString             // String
	KindArray              // Array
	KindObject             // Object
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a JSON-like template context value.
// The set of implementations is closed: Null, Bool, Number, String, Array and Object.
type Value interface {
	Kind() Kind
	native() any
}

// Null is the null value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Number is a numeric value. All numbers are float64, as in JSON.
type Number float64

// String is a string value.
type String string

// Array is an ordered list of values.
type Array []Value

// Object maps string keys to values. Keys are always visited in sorted order,
// so rendering and encoding are deterministic.
type Object map[string]Value

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

func (Null) native() any     { return nil }
func (b Bool) native() any   { return bool(b) }
func (n Number) native() any { return float64(n) }
func (s String) native() any { return string(s) }

func (a Array) native() any {
	out := make([]any, len(a))
	for i, v := range a {
		out[i] = nativeOf(v)
	}
	return out
}

func (o Object) native() any {
	out := make(map[string]any, len(o))
	for k, v := range o {
		out[k] = nativeOf(v)
	}
	return out
}

// MarshalJSON encodes Null as the JSON null literal.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Keys returns the object keys in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value stored under key, or Null when absent.
func (o Object) Get(key string) (Value, bool) {
	v, ok := o[key]
	if !ok || v == nil {
		return Null{}, ok
	}
	return v, true
}

// Map converts the object to plain Go values for template execution.
// A nil object yields an empty map.
func (o Object) Map() map[string]any {
	if o == nil {
		return map[string]any{}
	}
	return o.native().(map[string]any)
}

func nativeOf(v Value) any {
	if v == nil {
		return nil
	}
	return v.native()
}

// Equal reports whether a and b hold the same variant with structurally equal contents.
// A nil Value equals Null.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case Array:
		return slices.EqualFunc(av, b.(Array), Equal)
	case Object:
		bv := b.(Object)
		if len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, ok := bv[k]
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	}
	return false
}

// ValueOf converts a Go value into a Value.
// Supported inputs are nil, bool, integers, floats, strings, Values, and slices
// or string-keyed maps of any of these.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Number(x), nil
	case int8:
		return Number(x), nil
	case int16:
		return Number(x), nil
	case int32:
		return Number(x), nil
	case int64:
		return Number(x), nil
	case uint:
		return Number(x), nil
	case uint8:
		return Number(x), nil
	case uint16:
		return Number(x), nil
	case uint32:
		return Number(x), nil
	case uint64:
		return Number(x), nil
	case float32:
		return ValueOf(float64(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("mailer: unsupported number %v", x)
		}
		return Number(x), nil
	case map[string]any:
		obj := make(Object, len(x))
		for k, item := range x {
			val, err := ValueOf(item)
			if err != nil {
				return nil, fmt.Errorf("mailer: key %q: %w", k, err)
			}
			obj[k] = val
		}
		return obj, nil
	case []any:
		arr := make(Array, len(x))
		for i, item := range x {
			val, err := ValueOf(item)
			if err != nil {
				return nil, fmt.Errorf("mailer: index %d: %w", i, err)
			}
			arr[i] = val
		}
		return arr, nil
	}

	return reflectValueOf(reflect.ValueOf(v))
}

// reflectValueOf handles typed slices and maps such as []string or map[string]int.
func reflectValueOf(rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		arr := make(Array, rv.Len())
		for i := range rv.Len() {
			val, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("mailer: index %d: %w", i, err)
			}
			arr[i] = val
		}
		return arr, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("mailer: unsupported map key type %s", rv.Type().Key())
		}
		obj := make(Object, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			val, err := ValueOf(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("mailer: key %q: %w", k, err)
			}
			obj[k] = val
		}
		return obj, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null{}, nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Invalid:
		return Null{}, nil
	}
	return nil, fmt.Errorf("mailer: unsupported context value of type %s", rv.Type())
}

// ContextOf converts a string-keyed map into a template context.
func ContextOf(m map[string]any) (Object, error) {
	v, err := ValueOf(m)
	if err != nil {
		return nil, err
	}
	return v.(Object), nil
}

// MustContextOf is like ContextOf but panics on error.
func MustContextOf(m map[string]any) Object {
	obj, err := ContextOf(m)
	if err != nil {
		panic(err)
	}
	return obj
}
