package avltree

// Set is an ordered set of keys, built directly on Tree with an empty
// struct{} value so a set costs nothing beyond the tree's own node arena.
type Set[K any] struct {
	t *Tree[K, struct{}]
}

// NewSet returns an empty Set ordered by cmp.
func NewSet[K any](cmp func(a, b K) int) *Set[K] {
	return &Set[K]{t: New[K, struct{}](cmp)}
}

// Len reports the number of keys in the set.
func (s *Set[K]) Len() int { return s.t.Len() }

// Add inserts k, returning ErrDuplicateKey if it is already present.
func (s *Set[K]) Add(k K) error {
	_, err := s.t.Add(k, struct{}{})
	return err
}

// Remove deletes k, returning ErrNotFound if it was not present.
func (s *Set[K]) Remove(k K) error { return s.t.Remove(k) }

// Contains reports whether k is in the set.
func (s *Set[K]) Contains(k K) bool { return s.t.ContainsKey(k) }

// Keys yields every key in ascending order.
func (s *Set[K]) Keys() func(func(K) bool) { return s.t.Keys() }
