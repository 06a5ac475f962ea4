package avltree

import (
	"fmt"
	"strings"
)

// String renders an indented pre-order dump of the tree's keys and balance
// tags, for use in test failure output and ad-hoc debugging. Not meant for
// parsing.
func (t *Tree[K, V]) String() string {
	if t.count == 0 {
		return "<empty>"
	}

	var b strings.Builder
	t.writeNode(&b, t.root(), 0)

	return b.String()
}

func (t *Tree[K, V]) writeNode(b *strings.Builder, idx int32, depth int) {
	if idx == nilIdx {
		return
	}

	n := t.nodes[idx]

	fmt.Fprintf(b, "%s%v [%s]\n", strings.Repeat("  ", depth), n.key, balString(n.bal))
	t.writeNode(b, n.left, depth+1)
	t.writeNode(b, n.right, depth+1)
}

func balString(bl bal) string {
	switch bl {
	case balLeftHigh:
		return "L"
	case balRightHigh:
		return "R"
	default:
		return "="
	}
}
