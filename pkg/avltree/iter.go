package avltree

import "iter"

// Items yields every (key, value) pair in ascending key order.
func (t *Tree[K, V]) Items() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for idx := t.minIdx(); idx != nilIdx; idx = t.next(idx) {
			if !yield(t.nodes[idx].key, t.nodes[idx].val) {
				return
			}
		}
	}
}

// Keys yields every key in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for idx := t.minIdx(); idx != nilIdx; idx = t.next(idx) {
			if !yield(t.nodes[idx].key) {
				return
			}
		}
	}
}

// Values yields every value in ascending key order.
func (t *Tree[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for idx := t.minIdx(); idx != nilIdx; idx = t.next(idx) {
			if !yield(t.nodes[idx].val) {
				return
			}
		}
	}
}

// Nodes yields every Node handle in ascending key order.
func (t *Tree[K, V]) Nodes() iter.Seq[Node[K, V]] {
	return func(yield func(Node[K, V]) bool) {
		for idx := t.minIdx(); idx != nilIdx; idx = t.next(idx) {
			if !yield(Node[K, V]{t, idx}) {
				return
			}
		}
	}
}
