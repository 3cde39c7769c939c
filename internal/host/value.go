package host

import (
	"fmt"
	"strconv"
)

// Value is a payload passed across the host boundary. Missing members read
// as null, and conversions of mismatched types return zero values.
type Value interface {
	Get(key string) Value
	Index(i int) Value
	Len() int
	String() string
	Int() int
	Float() float64
	Bool() bool
	IsNull() bool

	// Call invokes a method of the value.
	Call(method string, args ...any) (Value, error)

	// Object returns the underlying host object, if any.
	Object() any
}

// Method is a callable member of a value built with ValueOf.
type Method func(args ...any) any

// ValueOf wraps Go data as a Value. Maps with string keys act as objects,
// slices as arrays, and Method members are callable through Call.
func ValueOf(v any) Value {
	if val, ok := v.(Value); ok {
		return val
	}
	return goValue{v: v}
}

// Null is the null payload.
var Null Value = goValue{}

type goValue struct {
	v any
}

func (g goValue) Get(key string) Value {
	switch m := g.v.(type) {
	case map[string]any:
		return ValueOf(m[key])
	case Options:
		v, _ := m.Get(key)
		return ValueOf(v)
	}
	return Null
}

func (g goValue) Index(i int) Value {
	s, ok := g.v.([]any)
	if !ok || i < 0 || i >= len(s) {
		return Null
	}
	return ValueOf(s[i])
}

func (g goValue) Len() int {
	switch x := g.v.(type) {
	case []any:
		return len(x)
	case map[string]any:
		return len(x)
	case string:
		return len(x)
	}
	return 0
}

func (g goValue) String() string {
	switch x := g.v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(g.v)
}

func (g goValue) Int() int {
	switch x := g.v.(type) {
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return int(x)
	case float32:
		return int(x)
	case float64:
		return int(x)
	case string:
		n, _ := strconv.Atoi(x)
		return n
	}
	return 0
}

func (g goValue) Float() float64 {
	switch x := g.v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int, int32, int64, uint32, uint64:
		return float64(g.Int())
	case string:
		f, _ := strconv.ParseFloat(x, 64)
		return f
	}
	return 0
}

func (g goValue) Bool() bool {
	b, _ := g.v.(bool)
	return b
}

func (g goValue) IsNull() bool {
	return g.v == nil
}

func (g goValue) Call(method string, args ...any) (Value, error) {
	m, ok := g.v.(map[string]any)
	if !ok {
		return Null, fmt.Errorf("%s: %w", method, ErrNotCallable)
	}
	fn, ok := m[method].(Method)
	if !ok {
		return Null, fmt.Errorf("%s: %w", method, ErrNotCallable)
	}
	return ValueOf(fn(args...)), nil
}

func (g goValue) Object() any {
	return g.v
}
