//go:build !js

package host

import (
	"fmt"
	"unsafe"

	"github.com/tidwall/gjson"
)

// nativeValue is a JSON payload from the shell.
type nativeValue struct {
	n   *Native
	res gjson.Result
}

func (n *Native) value(res gjson.Result) Value {
	return nativeValue{n: n, res: res}
}

func (v nativeValue) Get(key string) Value { return v.n.value(v.res.Get(key)) }
func (v nativeValue) Index(i int) Value    { return v.n.value(v.res.Get(fmt.Sprint(i))) }
func (v nativeValue) String() string       { return v.res.String() }
func (v nativeValue) Int() int             { return int(v.res.Int()) }
func (v nativeValue) Float() float64       { return v.res.Float() }
func (v nativeValue) Bool() bool           { return v.res.Bool() }
func (v nativeValue) IsNull() bool         { return v.res.Type == gjson.Null }

func (v nativeValue) Len() int {
	switch {
	case v.res.IsArray():
		return len(v.res.Array())
	case v.res.IsObject():
		return len(v.res.Map())
	case v.res.Type == gjson.String:
		return len(v.res.Str)
	}
	return 0
}

func (v nativeValue) Call(method string, args ...any) (Value, error) {
	obj, ok := v.n.object(v.res)
	if !ok {
		return Null, fmt.Errorf("%s: %w", method, ErrNotCallable)
	}
	res, err := v.n.invoke(obj.id, method, args...)
	if err != nil {
		return Null, err
	}
	return v.n.value(res), nil
}

// Object returns the shell object the payload refers to, or the decoded JSON.
func (v nativeValue) Object() any {
	if obj, ok := v.n.object(v.res); ok {
		return obj
	}
	return v.res.Value()
}

// goString copies a NUL terminated C string.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var length int
	for *(*byte)(unsafe.Pointer(ptr + uintptr(length))) != 0 {
		length++
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), length))
}
