package bptree

import "iter"

// Appender is a short-lived handle for O(1)-amortized ordered bulk
// insertion: it remembers the last Leaf and the current maximum key, so
// each AddOrdered call need not re-probe the outer index.
type Appender[K, V any] struct {
	t      *Tree[K, V]
	last   *Leaf[K, V]
	hasMax bool
	maxKey K
}

// GetAppender returns an Appender positioned at the tree's current end.
func (t *Tree[K, V]) GetAppender() *Appender[K, V] {
	a := &Appender[K, V]{t: t}

	if max, err := t.Maximum(); err == nil {
		a.hasMax = true
		a.maxKey = max
		a.last = t.findLeaf(max)
	}

	return a
}

// AddOrdered appends (k, v). It fails with ErrDuplicateKey if k equals the
// current maximum, or ErrOutOfOrder if k is less than it.
func (a *Appender[K, V]) AddOrdered(k K, v V) error {
	if a.hasMax {
		switch d := a.t.cmp(k, a.maxKey); {
		case d == 0:
			return ErrDuplicateKey
		case d < 0:
			return ErrOutOfOrder
		}
	}

	if a.last == nil || a.last.Len() >= a.t.cap {
		leaf := newLeaf[K, V](a.t.cap)
		leaf.entries = append(leaf.entries, entry[K, V]{key: k, val: v})
		_, _ = a.t.outer.Add(k, leaf)
		a.last = leaf
	} else {
		a.last.entries = append(a.last.entries, entry[K, V]{key: k, val: v})
	}

	a.hasMax = true
	a.maxKey = k
	a.t.count++

	return nil
}

// AddRangeOrdered appends every (key, value) pair of seq, in order,
// stopping at the first error.
func (a *Appender[K, V]) AddRangeOrdered(seq iter.Seq2[K, V]) error {
	for k, v := range seq {
		if err := a.AddOrdered(k, v); err != nil {
			return err
		}
	}

	return nil
}
