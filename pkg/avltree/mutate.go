package avltree

import "github.com/flowkit/ordertree/internal/debug"

// Add inserts a new (key, value) pair and returns its Node, or
// ErrDuplicateKey if the key is already present.
func (t *Tree[K, V]) Add(k K, v V) (Node[K, V], error) {
	if t.count == 0 {
		idx := t.alloc(node[K, V]{key: k, val: v, parent: headerIdx, left: nilIdx, right: nilIdx, bal: balBalanced})
		t.setRoot(idx)
		t.setMinIdx(idx)
		t.setMaxIdx(idx)
		t.count++

		if debug.Enabled {
			t.checkInvariants()
		}

		return Node[K, V]{t, idx}, nil
	}

	cur := t.root()
	var parent int32
	var diff int

	for {
		diff = t.cmp(k, t.nodes[cur].key)
		if diff == 0 {
			return Node[K, V]{}, ErrDuplicateKey
		}

		parent = cur

		if diff < 0 {
			if t.nodes[cur].left == nilIdx {
				break
			}
			cur = t.nodes[cur].left
		} else {
			if t.nodes[cur].right == nilIdx {
				break
			}
			cur = t.nodes[cur].right
		}
	}

	idx := t.alloc(node[K, V]{key: k, val: v, parent: parent, left: nilIdx, right: nilIdx, bal: balBalanced})

	if diff < 0 {
		t.nodes[parent].left = idx
		if parent == t.minIdx() {
			t.setMinIdx(idx)
		}
	} else {
		t.nodes[parent].right = idx
		if parent == t.maxIdx() {
			t.setMaxIdx(idx)
		}
	}

	t.count++
	t.rebalanceAfterInsert(idx)

	if debug.Enabled {
		t.checkInvariants()
	}

	return Node[K, V]{t, idx}, nil
}

// rebalanceAfterInsert retraces from the freshly inserted leaf child toward
// the root, leaning each ancestor's balance toward the side that grew,
// stopping as soon as a subtree's height is unchanged (an ancestor that was
// leaning the other way simply becomes balanced) or a rotation restores the
// original height.
func (t *Tree[K, V]) rebalanceAfterInsert(child int32) {
	q := t.nodes[child].parent

	for q != headerIdx {
		if t.nodes[q].left == child {
			switch t.nodes[q].bal {
			case balRightHigh:
				t.nodes[q].bal = balBalanced
				return
			case balBalanced:
				t.nodes[q].bal = balLeftHigh
				child = q
				q = t.nodes[q].parent
				continue
			case balLeftHigh:
				t.rebalanceLeft(q)
				return
			}
		} else {
			switch t.nodes[q].bal {
			case balLeftHigh:
				t.nodes[q].bal = balBalanced
				return
			case balBalanced:
				t.nodes[q].bal = balRightHigh
				child = q
				q = t.nodes[q].parent
				continue
			case balRightHigh:
				t.rebalanceRight(q)
				return
			}
		}
	}
}

// rebalanceLeft restores balance at q, which is left-heavy and has just
// become overweight on that side (LL or LR case).
func (t *Tree[K, V]) rebalanceLeft(q int32) {
	l := t.nodes[q].left

	if t.nodes[l].bal == balLeftHigh {
		t.rotateRight(q)
		t.nodes[q].bal = balBalanced
		t.nodes[l].bal = balBalanced

		return
	}

	r := t.nodes[l].right
	rb := t.nodes[r].bal

	t.rotateLeft(l)
	t.rotateRight(q)

	switch rb {
	case balLeftHigh:
		t.nodes[q].bal = balRightHigh
		t.nodes[l].bal = balBalanced
	case balRightHigh:
		t.nodes[q].bal = balBalanced
		t.nodes[l].bal = balLeftHigh
	default:
		t.nodes[q].bal = balBalanced
		t.nodes[l].bal = balBalanced
	}

	t.nodes[r].bal = balBalanced
}

// rebalanceRight is the mirror of rebalanceLeft for the RR/RL case.
func (t *Tree[K, V]) rebalanceRight(q int32) {
	r := t.nodes[q].right

	if t.nodes[r].bal == balRightHigh {
		t.rotateLeft(q)
		t.nodes[q].bal = balBalanced
		t.nodes[r].bal = balBalanced

		return
	}

	l := t.nodes[r].left
	lb := t.nodes[l].bal

	t.rotateRight(r)
	t.rotateLeft(q)

	switch lb {
	case balRightHigh:
		t.nodes[q].bal = balLeftHigh
		t.nodes[r].bal = balBalanced
	case balLeftHigh:
		t.nodes[q].bal = balBalanced
		t.nodes[r].bal = balRightHigh
	default:
		t.nodes[q].bal = balBalanced
		t.nodes[r].bal = balBalanced
	}

	t.nodes[l].bal = balBalanced
}

// rotateRight promotes q's left child to q's position; q becomes its
// right child.
func (t *Tree[K, V]) rotateRight(q int32) {
	l := t.nodes[q].left
	lr := t.nodes[l].right
	p := t.nodes[q].parent

	t.nodes[q].left = lr
	if lr != nilIdx {
		t.nodes[lr].parent = q
	}

	t.nodes[l].right = q
	t.nodes[q].parent = l

	t.replaceChild(p, q, l)
	t.nodes[l].parent = p
}

// rotateLeft promotes q's right child to q's position; q becomes its
// left child.
func (t *Tree[K, V]) rotateLeft(q int32) {
	r := t.nodes[q].right
	rl := t.nodes[r].left
	p := t.nodes[q].parent

	t.nodes[q].right = rl
	if rl != nilIdx {
		t.nodes[rl].parent = q
	}

	t.nodes[r].left = q
	t.nodes[q].parent = r

	t.replaceChild(p, q, r)
	t.nodes[r].parent = p
}

// replaceChild rewires p's reference to oldChild so it points at newChild
// instead; p may be headerIdx, in which case newChild becomes the root.
func (t *Tree[K, V]) replaceChild(p, oldChild, newChild int32) {
	if p == headerIdx {
		t.nodes[headerIdx].parent = newChild
		return
	}

	if t.nodes[p].left == oldChild {
		t.nodes[p].left = newChild
	} else {
		t.nodes[p].right = newChild
	}
}

// Remove deletes the entry with the given key, or returns ErrNotFound.
func (t *Tree[K, V]) Remove(k K) error {
	r := t.BinarySearch(k)
	if r.Diff != 0 {
		return ErrNotFound
	}

	t.removeNode(r.Node.idx)

	if debug.Enabled {
		t.checkInvariants()
	}

	return nil
}

// removeNode unlinks the node at idx. A node with two children is handled by
// splicing its in-order predecessor into idx's structural position by
// re-linking pointers — never by copying the predecessor's key/value into
// idx and deleting the predecessor's slot — so idx is the only index that
// goes away and every surviving entry keeps its original Node handle.
func (t *Tree[K, V]) removeNode(idx int32) {
	if t.nodes[idx].left != nilIdx && t.nodes[idx].right != nilIdx {
		t.spliceOutTwoChildren(idx)
		return
	}

	if idx == t.minIdx() {
		t.setMinIdx(t.next(idx))
	}
	if idx == t.maxIdx() {
		t.setMaxIdx(t.previous(idx))
	}

	child := t.nodes[idx].left
	if child == nilIdx {
		child = t.nodes[idx].right
	}

	p := t.nodes[idx].parent
	wasLeftChild := p != headerIdx && t.nodes[p].left == idx

	t.replaceChild(p, idx, child)
	if child != nilIdx {
		t.nodes[child].parent = p
	}

	t.dealloc(idx)
	t.count--

	if t.count == 0 {
		t.setMinIdx(nilIdx)
		t.setMaxIdx(nilIdx)
		return
	}

	if p != headerIdx {
		t.rebalanceAfterDelete(p, wasLeftChild)
	}
}

// spliceOutTwoChildren removes z (which has both children) by promoting its
// in-order predecessor y — the rightmost node of z's left subtree, which by
// construction has no right child — into z's position. Only pointer and
// balance fields move; y's own index, key, and value are untouched, so a
// Node handle held on y remains valid after z is gone. z can be neither the
// tree's minimum (it has a left child) nor its maximum (it has a right
// child), so the cached min/max indices need no adjustment.
func (t *Tree[K, V]) spliceOutTwoChildren(z int32) {
	y := t.rightmost(t.nodes[z].left)
	yParent := t.nodes[y].parent
	yLeft := t.nodes[y].left

	zParent := t.nodes[z].parent
	zLeft := t.nodes[z].left
	zRight := t.nodes[z].right
	zBal := t.nodes[z].bal

	var splicedParent int32
	var wasLeftChild bool

	if yParent == z {
		splicedParent = y
		wasLeftChild = true
	} else {
		t.nodes[yParent].right = yLeft
		if yLeft != nilIdx {
			t.nodes[yLeft].parent = yParent
		}

		t.nodes[y].left = zLeft
		t.nodes[zLeft].parent = y

		splicedParent = yParent
		wasLeftChild = false
	}

	t.nodes[y].right = zRight
	t.nodes[zRight].parent = y
	t.nodes[y].bal = zBal
	t.nodes[y].parent = zParent
	t.replaceChild(zParent, z, y)

	t.dealloc(z)
	t.count--

	t.rebalanceAfterDelete(splicedParent, wasLeftChild)
}

// rebalanceAfterDelete retraces from the parent of a spliced-out node
// toward the root. Unlike insertion, a rotation here does not always
// restore the original subtree height, so propagation continues past a
// rotation whenever the rotated subtree is still shorter than before.
func (t *Tree[K, V]) rebalanceAfterDelete(p int32, wasLeftChild bool) {
	for p != headerIdx {
		if wasLeftChild {
			switch t.nodes[p].bal {
			case balLeftHigh:
				t.nodes[p].bal = balBalanced
			case balBalanced:
				t.nodes[p].bal = balRightHigh
				return
			case balRightHigh:
				r := t.nodes[p].right
				rb := t.nodes[r].bal

				if rb != balLeftHigh {
					t.rotateLeft(p)
					if rb == balBalanced {
						t.nodes[p].bal = balRightHigh
						t.nodes[r].bal = balLeftHigh
						return
					}
					t.nodes[p].bal = balBalanced
					t.nodes[r].bal = balBalanced
					p = r
				} else {
					l := t.nodes[r].left
					lb := t.nodes[l].bal

					t.rotateRight(r)
					t.rotateLeft(p)

					switch lb {
					case balLeftHigh:
						t.nodes[p].bal = balBalanced
						t.nodes[r].bal = balRightHigh
					case balRightHigh:
						t.nodes[p].bal = balLeftHigh
						t.nodes[r].bal = balBalanced
					default:
						t.nodes[p].bal = balBalanced
						t.nodes[r].bal = balBalanced
					}

					t.nodes[l].bal = balBalanced
					p = l
				}
			}
		} else {
			switch t.nodes[p].bal {
			case balRightHigh:
				t.nodes[p].bal = balBalanced
			case balBalanced:
				t.nodes[p].bal = balLeftHigh
				return
			case balLeftHigh:
				l := t.nodes[p].left
				lb := t.nodes[l].bal

				if lb != balRightHigh {
					t.rotateRight(p)
					if lb == balBalanced {
						t.nodes[p].bal = balLeftHigh
						t.nodes[l].bal = balRightHigh
						return
					}
					t.nodes[p].bal = balBalanced
					t.nodes[l].bal = balBalanced
					p = l
				} else {
					r := t.nodes[l].right
					rb := t.nodes[r].bal

					t.rotateLeft(l)
					t.rotateRight(p)

					switch rb {
					case balRightHigh:
						t.nodes[p].bal = balBalanced
						t.nodes[l].bal = balLeftHigh
					case balLeftHigh:
						t.nodes[p].bal = balRightHigh
						t.nodes[l].bal = balBalanced
					default:
						t.nodes[p].bal = balBalanced
						t.nodes[l].bal = balBalanced
					}

					t.nodes[r].bal = balBalanced
					p = r
				}
			}
		}

		newParent := t.nodes[p].parent
		if newParent == headerIdx {
			return
		}

		wasLeftChild = t.nodes[newParent].left == p
		p = newParent
	}
}
