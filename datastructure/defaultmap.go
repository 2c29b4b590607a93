package datastructure

import (
	"fmt"
	"iter"
)

// DefaultMap is a map that remembers insertion order and can create missing
// values on demand. The zero value is an empty map without a default.
//
// A DefaultMap is not safe for concurrent use.
type DefaultMap[K comparable, V any] struct {
	factory func() V
	index   map[K]int
	keys    []K
	values  []V
}

// NewDefaultMap returns an empty map. factory may be nil, in which case
// Lookup reports missing keys instead of inserting defaults.
func NewDefaultMap[K comparable, V any](factory func() V) *DefaultMap[K, V] {
	return &DefaultMap[K, V]{factory: factory}
}

// Len returns the number of keys.
func (m *DefaultMap[K, V]) Len() int {
	return len(m.keys)
}

// Get returns the value stored for key and whether it was present. It never
// inserts.
func (m *DefaultMap[K, V]) Get(key K) (V, bool) {
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return m.values[i], true
}

// Set stores value under key. A new key goes to the end of the order; an
// existing key keeps its position.
func (m *DefaultMap[K, V]) Set(key K, value V) {
	if i, ok := m.index[key]; ok {
		m.values[i] = value
		return
	}
	if m.index == nil {
		m.index = make(map[K]int)
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Delete removes key and reports whether it was present.
func (m *DefaultMap[K, V]) Delete(key K) bool {
	i, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.index, key)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.values = append(m.values[:i], m.values[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[m.keys[j]] = j
	}
	return true
}

// Lookup returns the value for key. A missing key is filled with the
// factory's value when the map has one, otherwise ErrMissingKey is returned.
func (m *DefaultMap[K, V]) Lookup(key K) (V, error) {
	if v, ok := m.Get(key); ok {
		return v, nil
	}
	if m.factory == nil {
		var zero V
		return zero, fmt.Errorf("%v: %w", key, ErrMissingKey)
	}
	v := m.factory()
	m.Set(key, v)
	return v, nil
}

// GetOrInsertDefault returns the value for key, storing factory() first when
// the key is missing. It works whether or not the map has its own factory.
func (m *DefaultMap[K, V]) GetOrInsertDefault(key K, factory func() V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	v := factory()
	m.Set(key, v)
	return v
}

// Keys returns the keys in insertion order.
func (m *DefaultMap[K, V]) Keys() []K {
	return append([]K{}, m.keys...)
}

// All iterates over the entries in insertion order.
func (m *DefaultMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.values[i]) {
				return
			}
		}
	}
}

// Clone returns a shallow copy sharing the factory.
func (m *DefaultMap[K, V]) Clone() *DefaultMap[K, V] {
	c := NewDefaultMap[K, V](m.factory)
	for k, v := range m.All() {
		c.Set(k, v)
	}
	return c
}

// String renders the entries in insertion order.
func (m *DefaultMap[K, V]) String() string {
	s := "DefaultMap{"
	for i, k := range m.keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%v: %v", k, m.values[i])
	}
	return s + "}"
}
