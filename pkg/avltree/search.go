package avltree

// SearchResult is the outcome of a probe: Node is the node the search
// landed on, and Diff is the sign of cmp(key, Node.Key()) — zero on an
// exact match, negative if the probed key is less than Node's key,
// positive if greater. If the tree is empty, Node is invalid and Diff is 0.
type SearchResult[K, V any] struct {
	Node Node[K, V]
	Diff int
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

// Get returns the Node with the given key, or ErrNotFound.
func (t *Tree[K, V]) Get(k K) (Node[K, V], error) {
	r := t.BinarySearch(k)
	if r.Diff != 0 {
		return Node[K, V]{}, ErrNotFound
	}

	return r.Node, nil
}

// ContainsKey reports whether k is present.
func (t *Tree[K, V]) ContainsKey(k K) bool {
	r := t.BinarySearch(k)
	return r.Diff == 0
}

// BinarySearch probes for k from the root. On a miss, Node is the terminal
// node the descent stopped at (the would-be parent of k if it were
// inserted) and Diff carries the direction of the miss.
func (t *Tree[K, V]) BinarySearch(k K) SearchResult[K, V] {
	if t.count == 0 {
		return SearchResult[K, V]{}
	}

	return t.searchFrom(t.root(), k)
}

// searchFrom performs an ordinary top-down probe starting at a known
// non-nil node index.
func (t *Tree[K, V]) searchFrom(start int32, k K) SearchResult[K, V] {
	cur := start
	for {
		d := t.cmp(k, t.nodes[cur].key)
		if d == 0 {
			return SearchResult[K, V]{Node: Node[K, V]{t, cur}, Diff: 0}
		}

		var next int32
		if d < 0 {
			next = t.nodes[cur].left
		} else {
			next = t.nodes[cur].right
		}

		if next == nilIdx {
			return SearchResult[K, V]{Node: Node[K, V]{t, cur}, Diff: sign(d)}
		}

		cur = next
	}
}

// BinarySearchGE returns the smallest-keyed node >= k. On an exact match
// Diff is 0; otherwise Diff is -1 and Node is the true nearest greater
// neighbor. If no such neighbor exists (k exceeds every key), Node is
// invalid and Diff is +1.
func (t *Tree[K, V]) BinarySearchGE(k K) SearchResult[K, V] {
	if t.count == 0 {
		return SearchResult[K, V]{Diff: 1}
	}

	cur := t.root()
	candidate := nilIdx
	for cur != nilIdx {
		d := t.cmp(k, t.nodes[cur].key)
		if d == 0 {
			return SearchResult[K, V]{Node: Node[K, V]{t, cur}, Diff: 0}
		}

		if d < 0 {
			candidate = cur
			cur = t.nodes[cur].left
		} else {
			cur = t.nodes[cur].right
		}
	}

	if candidate == nilIdx {
		return SearchResult[K, V]{Diff: 1}
	}

	return SearchResult[K, V]{Node: Node[K, V]{t, candidate}, Diff: -1}
}

// BinarySearchLE returns the largest-keyed node <= k. On an exact match
// Diff is 0; otherwise Diff is +1 and Node is the true nearest lesser
// neighbor. If no such neighbor exists (k is less than every key), Node is
// invalid and Diff is -1.
func (t *Tree[K, V]) BinarySearchLE(k K) SearchResult[K, V] {
	if t.count == 0 {
		return SearchResult[K, V]{Diff: -1}
	}

	cur := t.root()
	candidate := nilIdx
	for cur != nilIdx {
		d := t.cmp(k, t.nodes[cur].key)
		if d == 0 {
			return SearchResult[K, V]{Node: Node[K, V]{t, cur}, Diff: 0}
		}

		if d > 0 {
			candidate = cur
			cur = t.nodes[cur].right
		} else {
			cur = t.nodes[cur].left
		}
	}

	if candidate == nilIdx {
		return SearchResult[K, V]{Diff: -1}
	}

	return SearchResult[K, V]{Node: Node[K, V]{t, candidate}, Diff: 1}
}

// BinarySearchNearby probes for k starting from hint rather than the root:
// it climbs hint's ancestor chain until it either finds k exactly or
// crosses into the one subtree that could contain it, then descends
// ordinarily from there. Worst case this costs twice a root-to-leaf probe;
// best case — k near hint — it costs proportional to the distance climbed.
//
// hint must currently be a live node of this tree; passing the zero Node
// (or one from another tree) falls back to an ordinary root search.
func (t *Tree[K, V]) BinarySearchNearby(hint Node[K, V], k K) SearchResult[K, V] {
	if t.count == 0 {
		return SearchResult[K, V]{}
	}

	if hint.t != t || hint.idx == nilIdx {
		return t.BinarySearch(k)
	}

	cur := hint.idx
	for {
		dCur := t.cmp(k, t.nodes[cur].key)
		if dCur == 0 {
			return SearchResult[K, V]{Node: Node[K, V]{t, cur}, Diff: 0}
		}

		p := t.nodes[cur].parent
		if p == headerIdx {
			// cur is root: just descend from here using dCur's direction.
			var next int32
			if dCur < 0 {
				next = t.nodes[cur].left
			} else {
				next = t.nodes[cur].right
			}

			if next == nilIdx {
				return SearchResult[K, V]{Node: Node[K, V]{t, cur}, Diff: sign(dCur)}
			}

			return t.searchFrom(next, k)
		}

		dParent := t.cmp(k, t.nodes[p].key)
		if dParent == 0 {
			return SearchResult[K, V]{Node: Node[K, V]{t, p}, Diff: 0}
		}

		curIsLeft := t.nodes[p].left == cur
		crossed := (curIsLeft && dCur > 0 && dParent < 0) || (!curIsLeft && dCur < 0 && dParent > 0)

		if crossed {
			var next int32
			if curIsLeft {
				next = t.nodes[cur].right
			} else {
				next = t.nodes[cur].left
			}

			if next == nilIdx {
				return SearchResult[K, V]{Node: Node[K, V]{t, cur}, Diff: sign(dCur)}
			}

			return t.searchFrom(next, k)
		}

		cur = p
	}
}

// StartsWith returns, in ascending order, every key >= prefix whose bytes
// begin with prefix, using asBytes to project K to the byte slice compared.
// It is the generic byte-prefix scan named by the spec for string-keyed
// trees (ordinal comparison, not locale-aware collation).
func (t *Tree[K, V]) StartsWith(prefix K, asBytes func(K) []byte) func(func(Node[K, V]) bool) {
	return func(yield func(Node[K, V]) bool) {
		if t.count == 0 {
			return
		}

		r := t.BinarySearchGE(prefix)
		if !r.Node.Valid() {
			return
		}

		pb := asBytes(prefix)
		for n := r.Node; n.Valid(); n = n.Next() {
			kb := asBytes(n.Key())
			if len(kb) < len(pb) || string(kb[:len(pb)]) != string(pb) {
				return
			}

			if !yield(n) {
				return
			}
		}
	}
}

// Range yields nodes with lo <= key <= hi (bounds inclusivity controlled by
// incLo/incHi) in ascending order.
func (t *Tree[K, V]) Range(lo, hi K, incLo, incHi bool) func(func(Node[K, V]) bool) {
	return func(yield func(Node[K, V]) bool) {
		if t.count == 0 {
			return
		}

		var start Node[K, V]
		if incLo {
			r := t.BinarySearchGE(lo)
			start = r.Node
		} else {
			r := t.BinarySearchGE(lo)
			if r.Node.Valid() && t.cmp(r.Node.Key(), lo) == 0 {
				start = r.Node.Next()
			} else {
				start = r.Node
			}
		}

		for n := start; n.Valid(); n = n.Next() {
			d := t.cmp(n.Key(), hi)
			if d > 0 || (d == 0 && !incHi) {
				return
			}

			if !yield(n) {
				return
			}
		}
	}
}
