package param

import "sort"

type mapEntry[V any] struct {
	key   *Set
	value V
}

// Map is a content-addressed map keyed by parameter sets. Every operation
// computes the key from the current contents of the Set it is given, so a
// Set mutated into an equal state finds the same entry. Put stores a copy of
// the key; later edits to the caller's Set do not move stored entries.
type Map[V any] struct {
	entries map[string]mapEntry[V]
}

// NewMap returns an empty Map.
func NewMap[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]mapEntry[V])}
}

// Put stores value under k, replacing any previous value for an equal Set.
func (m *Map[V]) Put(k *Set, value V) {
	if m.entries == nil {
		m.entries = make(map[string]mapEntry[V])
	}
	m.entries[k.Key()] = mapEntry[V]{key: k.Clone(), value: value}
}

// Get returns the value stored under a Set equal to k.
func (m *Map[V]) Get(k *Set) (V, bool) {
	e, ok := m.entries[k.Key()]
	return e.value, ok
}

// Has reports whether a Set equal to k is present.
func (m *Map[V]) Has(k *Set) bool {
	_, ok := m.entries[k.Key()]
	return ok
}

// Delete removes the entry for k, if any.
func (m *Map[V]) Delete(k *Set) {
	delete(m.entries, k.Key())
}

// Len returns the number of entries.
func (m *Map[V]) Len() int { return len(m.entries) }

// Keys returns copies of the stored keys ordered by their canonical key.
func (m *Map[V]) Keys() []*Set {
	raw := make([]string, 0, len(m.entries))
	for k := range m.entries {
		raw = append(raw, k)
	}
	sort.Strings(raw)
	keys := make([]*Set, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, m.entries[k].key.Clone())
	}
	return keys
}
