package host

import (
	"sort"
	"strings"
)

// Options is a key/value bag used to configure native objects. Set returns a
// new bag and leaves the receiver untouched, so builders can share it by
// value. Keys with dots nest: "mandatory.maxWidth" sets maxWidth inside the
// "mandatory" object.
//
// Values are strings, bools, numbers, nested maps, or host objects (Func,
// Menu, MenuItem) that the host translates when the native object is built.
type Options struct {
	m map[string]any
}

// NewOptions returns an empty bag.
func NewOptions() Options {
	return Options{m: map[string]any{}}
}

// Set returns a copy of o with key set to value.
func (o Options) Set(key string, value any) Options {
	out := Options{m: cloneMap(o.m)}

	path := strings.Split(key, ".")
	node := out.m
	for _, part := range path[:len(path)-1] {
		child, ok := node[part].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[part] = child
		}
		node = child
	}
	node[path[len(path)-1]] = value

	return out
}

// Get looks up key, following dots into nested objects.
func (o Options) Get(key string) (any, bool) {
	var node any = o.m
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Has reports whether key is set.
func (o Options) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of top-level keys.
func (o Options) Len() int {
	return len(o.m)
}

// Keys returns the top-level keys in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o.m))
	for k := range o.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a deep copy of the bag.
func (o Options) Map() map[string]any {
	return cloneMap(o.m)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		if child, ok := v.(map[string]any); ok {
			v = cloneMap(child)
		}
		out[k] = v
	}
	return out
}
