package avltree

import "github.com/flowkit/ordertree/internal/debug"

// checkInvariants walks the whole tree asserting the AVL balance and
// in-order ordering invariants. It is only ever invoked from behind a
// debug.Enabled guard, so it costs nothing in a release build.
func (t *Tree[K, V]) checkInvariants() {
	debug.Assert(t.nodes[headerIdx].bal == balHeader, "header sentinel's balance tag was overwritten")

	var prev *K
	var count int

	var walk func(idx int32) int

	walk = func(idx int32) int {
		if idx == nilIdx {
			return 0
		}

		n := &t.nodes[idx]

		lh := walk(n.left)

		if prev != nil {
			debug.Assert(t.cmp(*prev, n.key) < 0, "in-order traversal found an out-of-order key")
		}
		key := n.key
		prev = &key
		count++

		rh := walk(n.right)

		diff := rh - lh
		debug.Assert(diff >= -1 && diff <= 1, "node violates the AVL balance invariant")

		if lh > rh {
			return lh + 1
		}

		return rh + 1
	}

	walk(t.root())

	debug.Assert(count == t.count, "node count drifted from the tree's live entries")
}
