package store

// Map is the mapping from GString to Value owned exclusively by one
// shard's Actor. It has no locking of its own -- single-writer access is
// an invariant enforced by construction, not by this type.
type Map struct {
	data map[GString]Value
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{data: make(map[GString]Value)}
}

// Get returns the stored value and whether the key is present.
func (m *Map) Get(key GString) (Value, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Set inserts or overwrites key, returning the previous value if any.
func (m *Map) Set(key GString, v Value) (Value, bool) {
	old, existed := m.data[key]
	m.data[key] = v
	return old, existed
}

// Delete removes key, returning the removed value if any.
func (m *Map) Delete(key GString) (Value, bool) {
	old, existed := m.data[key]
	if existed {
		delete(m.data, key)
	}
	return old, existed
}

// Len reports the number of keys currently stored.
func (m *Map) Len() int {
	return len(m.data)
}
