package vmem

import "github.com/flowkit/ordertree/internal/debug"

// checkInvariants walks the free list verifying it is disjoint,
// non-adjacent, and that no free segment ends at Capacity. Only ever
// invoked from behind a debug.Enabled guard.
func (m *Manager) checkInvariants() {
	debug.Assert(m.freeLen+(m.capacity-m.freeLen) == m.capacity, "free + allocated must equal capacity")

	var prevEnd uint64
	havePrev := false
	sum := uint64(0)

	for addr, length := range m.byAddr.Items() {
		if havePrev {
			debug.Assert(addr > prevEnd, "free segments must be disjoint and non-adjacent")
		}

		debug.Assert(addr+length <= m.capacity, "free segment must not extend past capacity")
		debug.Assert(addr+length != m.capacity, "no free segment may end at capacity")

		prevEnd = addr + length
		havePrev = true
		sum += length
	}

	debug.Assert(sum == m.freeLen, "sum of free segment lengths must equal TotalFree")
}
