// Package bundle provides a platform-neutral key/value container used to hand
// route payloads across process and component boundaries.
//
// Values keep their Go type: an int put with PutInt reads back as the same int,
// and nested bundles and lists keep their order and length, including empty
// lists. Getters report false when the key is missing or holds another type.
package bundle

import (
	"slices"
	"sort"
)

// Bundle is a typed key/value container. The zero value is not usable; call New.
// A Bundle is not safe for concurrent mutation.
type Bundle struct {
	values map[string]any
}

// New creates an empty Bundle.
func New() *Bundle {
	return &Bundle{values: make(map[string]any)}
}

func (b *Bundle) PutInt(key string, value int) { b.values[key] = value }

func (b *Bundle) PutInt64(key string, value int64) { b.values[key] = value }

func (b *Bundle) PutFloat64(key string, value float64) { b.values[key] = value }

func (b *Bundle) PutBool(key string, value bool) { b.values[key] = value }

func (b *Bundle) PutString(key string, value string) { b.values[key] = value }

// PutStringList stores a copy of value.
func (b *Bundle) PutStringList(key string, value []string) {
	b.values[key] = cloneList(value)
}

// PutIntList stores a copy of value.
func (b *Bundle) PutIntList(key string, value []int) {
	b.values[key] = cloneList(value)
}

// PutBundle stores a deep copy of value.
func (b *Bundle) PutBundle(key string, value *Bundle) {
	b.values[key] = value.Clone()
}

// PutBundleList stores a deep copy of every bundle in value.
func (b *Bundle) PutBundleList(key string, value []*Bundle) {
	list := make([]*Bundle, len(value))
	for i, v := range value {
		list[i] = v.Clone()
	}
	b.values[key] = list
}

func (b *Bundle) GetInt(key string) (int, bool) { return get[int](b, key) }

func (b *Bundle) GetInt64(key string) (int64, bool) { return get[int64](b, key) }

func (b *Bundle) GetFloat64(key string) (float64, bool) { return get[float64](b, key) }

func (b *Bundle) GetBool(key string) (bool, bool) { return get[bool](b, key) }

func (b *Bundle) GetString(key string) (string, bool) { return get[string](b, key) }

func (b *Bundle) GetStringList(key string) ([]string, bool) {
	v, ok := get[[]string](b, key)
	return cloneList(v), ok
}

func (b *Bundle) GetIntList(key string) ([]int, bool) {
	v, ok := get[[]int](b, key)
	return cloneList(v), ok
}

// GetBundle returns a deep copy of the nested bundle.
func (b *Bundle) GetBundle(key string) (*Bundle, bool) {
	v, ok := get[*Bundle](b, key)
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// GetBundleList returns deep copies of the nested bundles.
func (b *Bundle) GetBundleList(key string) ([]*Bundle, bool) {
	v, ok := get[[]*Bundle](b, key)
	if !ok {
		return nil, false
	}
	list := make([]*Bundle, len(v))
	for i, nested := range v {
		list[i] = nested.Clone()
	}
	return list, true
}

// Contains reports whether key holds a value of any type.
func (b *Bundle) Contains(key string) bool {
	_, ok := b.values[key]
	return ok
}

// Remove deletes key.
func (b *Bundle) Remove(key string) {
	delete(b.values, key)
}

// Keys returns the keys in sorted order.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys.
func (b *Bundle) Len() int {
	return len(b.values)
}

// Clone returns a deep copy. Cloning nil returns an empty bundle.
func (b *Bundle) Clone() *Bundle {
	out := New()
	if b == nil {
		return out
	}
	for k, v := range b.values {
		switch tv := v.(type) {
		case *Bundle:
			out.values[k] = tv.Clone()
		case []*Bundle:
			list := make([]*Bundle, len(tv))
			for i, nested := range tv {
				list[i] = nested.Clone()
			}
			out.values[k] = list
		case []string:
			out.values[k] = cloneList(tv)
		case []int:
			out.values[k] = cloneList(tv)
		default:
			out.values[k] = v
		}
	}
	return out
}

func get[V any](b *Bundle, key string) (V, bool) {
	v, ok := b.values[key].(V)
	return v, ok
}

// cloneList copies list, keeping nil and empty distinct.
func cloneList[V any](list []V) []V {
	if list == nil {
		return nil
	}
	return slices.Clone(list)
}
