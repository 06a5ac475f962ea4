package bptree

import "github.com/flowkit/ordertree/internal/debug"

// checkInvariants walks every Leaf verifying fill bounds and that outer
// keys match each Leaf's first entry. Only ever invoked from behind a
// debug.Enabled guard.
func (t *Tree[K, V]) checkInvariants() {
	n := 0

	for k, leaf := range t.outer.Items() {
		debug.Assert(leaf.Len() >= 1 && leaf.Len() <= t.cap, "leaf fill outside [1, capacity]")
		debug.Assert(t.cmp(k, leaf.firstKey()) == 0, "outer key does not match the leaf's first entry")

		for i := 1; i < leaf.Len(); i++ {
			debug.Assert(t.cmp(leaf.Key(i-1), leaf.Key(i)) < 0, "leaf entries out of order")
		}

		n += leaf.Len()
	}

	debug.Assert(n == t.count, "entry count drifted from the tree's live entries")
}
