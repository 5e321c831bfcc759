package main

// boxed is implemented by every entity held in a store
type boxed interface {
	ID() EntityID
	Rect() Rect
}

// store owns one entity collection. Insertion order is not meaningful:
// removal swap-removes the last element into the vacated slot, and removing
// an ID that is no longer present is a no-op.
type store[E boxed] struct {
	items []E
}

// Add appends an entity
func (s *store[E]) Add(e E) {
	s.items = append(s.items, e)
}

// Len returns the number of live entities
func (s *store[E]) Len() int { return len(s.items) }

// At returns the entity at index i
func (s *store[E]) At(i int) E { return s.items[i] }

// All returns the backing slice. Callers must not remove while iterating
// forward; reverse iteration with RemoveAt is safe.
func (s *store[E]) All() []E { return s.items }

// RemoveAt swap-removes the entity at index i
func (s *store[E]) RemoveAt(i int) {
	last := len(s.items) - 1
	s.items[i] = s.items[last]
	var zero E
	s.items[last] = zero
	s.items = s.items[:last]
}

// IndexOf returns the index of the entity with the given ID, or -1
func (s *store[E]) IndexOf(id EntityID) int {
	for i, e := range s.items {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

// RemoveID removes the entity with the given ID if it is still live.
// Returns false (and does nothing) when the ID was already removed.
func (s *store[E]) RemoveID(id EntityID) bool {
	i := s.IndexOf(id)
	if i < 0 {
		return false
	}
	s.RemoveAt(i)
	return true
}

// Clear drops all entities (session reset)
func (s *store[E]) Clear() {
	s.items = s.items[:0]
}
