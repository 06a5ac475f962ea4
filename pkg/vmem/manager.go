// Package vmem implements a free-list allocator for a byte-addressed
// virtual space, built from two indices over the same set of free
// segments: pkg/avltree.Tree keyed by (length, address) for best-fit
// search, and pkg/bptree.Tree keyed by address for boundary probing and
// ordered enumeration.
package vmem

import (
	"fmt"
	"iter"
	"strings"

	"github.com/flowkit/ordertree/internal/debug"
	"github.com/flowkit/ordertree/pkg/avltree"
	"github.com/flowkit/ordertree/pkg/bptree"
	"github.com/flowkit/ordertree/pkg/opt"
	"github.com/flowkit/ordertree/pkg/res"
	"github.com/flowkit/ordertree/pkg/tuple"
)

func cmpU64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Manager is a free-list allocator over [0, Capacity). The zero value is
// not usable; build one with New.
type Manager struct {
	byLen    *avltree.Tree[lenAddrKey, struct{}]
	byAddr   *bptree.Tree[uint64, uint64]
	capacity uint64
	freeLen  uint64
}

// New returns an empty Manager (Capacity 0). itemsPerNode configures the
// ByAddr B+-tree's leaf fan-out; a negative value selects
// bptree.DefaultItemsPerNode.
func New(itemsPerNode int) *Manager {
	byAddr, err := bptree.New[uint64, uint64](cmpU64, itemsPerNode)
	if err != nil {
		byAddr, _ = bptree.New[uint64, uint64](cmpU64, bptree.DefaultItemsPerNode)
	}

	return &Manager{
		byLen:  avltree.New[lenAddrKey, struct{}](cmpLenAddr),
		byAddr: byAddr,
	}
}

// Capacity returns the current size of the address space.
func (m *Manager) Capacity() uint64 { return m.capacity }

// TotalFree returns the number of free bytes.
func (m *Manager) TotalFree() uint64 { return m.freeLen }

// TotalAllocated returns the number of allocated bytes.
func (m *Manager) TotalAllocated() uint64 { return m.capacity - m.freeLen }

func (m *Manager) insertFree(address, length uint64) {
	_, _ = m.byLen.Add(tuple.New2(length, address), struct{}{})
	_, _ = m.byAddr.Add(address, length)
	m.freeLen += length
}

func (m *Manager) removeFree(address, length uint64) {
	_ = m.byLen.Remove(tuple.New2(length, address))
	_ = m.byAddr.Remove(address)
	m.freeLen -= length
}

// absorbFree removes a free segment from both indices without touching
// freeLen: its bytes stay free, just re-homed under a merged entry.
func (m *Manager) absorbFree(address, length uint64) {
	_ = m.byLen.Remove(tuple.New2(length, address))
	_ = m.byAddr.Remove(address)
}

// Alloc reserves length bytes, returning the base address of a best-fit
// free segment, or growing Capacity by length if no free segment is large
// enough.
func (m *Manager) Alloc(length uint64) uint64 {
	r := m.byLen.BinarySearchGE(tuple.New2(length, uint64(0)))
	if !r.Node.Valid() {
		address := m.capacity
		m.capacity += length

		if debug.Enabled {
			m.checkInvariants()
		}

		return address
	}

	flen, faddr := r.Node.Key().V0, r.Node.Key().V1
	m.removeFree(faddr, flen)

	remainder := flen - length
	if remainder > 0 {
		m.insertFree(faddr+length, remainder)
	}

	if debug.Enabled {
		m.checkInvariants()
	}

	return faddr
}

// probe locates address within ByAddr's free list, reporting its
// immediate neighbors on either side.
func (m *Manager) probe(address uint64) (prev, next opt.Option[Segment], found bool) {
	loc := m.byAddr.BinarySearch(address)
	if loc.Found() {
		return opt.None[Segment](), opt.None[Segment](), true
	}

	nextLoc := m.byAddr.BinarySearchGE(address)
	if nextLoc.Found() {
		next = opt.Some(NewSegment(nextLoc.Key(), nextLoc.Value()))

		if prevLoc := m.byAddr.Previous(nextLoc); prevLoc.Found() {
			prev = opt.Some(NewSegment(prevLoc.Key(), prevLoc.Value()))
		}
	} else if maxKey, err := m.byAddr.Maximum(); err == nil {
		length, _ := m.byAddr.Get(maxKey)
		prev = opt.Some(NewSegment(maxKey, length))
	}

	return prev, next, false
}

// Free releases a range the caller asserts was previously allocated and
// not yet freed, merging with adjacent free segments and, if the merged
// range abuts Capacity, shrinking Capacity instead of recording a trailing
// free segment.
func (m *Manager) Free(address, length uint64) res.Result[struct{}] {
	if address+length > m.capacity {
		return res.Err[struct{}](&FreeError{Kind: BadFree, Address: address, Length: length})
	}

	prev, next, double := m.probe(address)
	if double {
		return res.Err[struct{}](&FreeError{Kind: DoubleFree, Address: address, Length: length})
	}

	if prev.IsSome() && address < prev.Unwrap().End() {
		return res.Err[struct{}](&FreeError{Kind: DoubleFree, Address: address, Length: length})
	}

	if next.IsSome() && address+length > next.Unwrap().Address() {
		return res.Err[struct{}](&FreeError{Kind: DoubleFree, Address: address, Length: length})
	}

	newAddr, newLen := address, length
	mergedPrev := false

	if prev.IsSome() && prev.Unwrap().End() == address {
		p := prev.Unwrap()
		_ = m.byLen.Remove(tuple.New2(p.Length(), p.Address()))
		newAddr = p.Address()
		newLen += p.Length()
		mergedPrev = true
	}

	if next.IsSome() && newAddr+newLen == next.Unwrap().Address() {
		n := next.Unwrap()
		m.absorbFree(n.Address(), n.Length())
		newLen += n.Length()
	}

	m.freeLen += length

	if newAddr+newLen == m.capacity {
		m.capacity = newAddr
		m.freeLen -= newLen

		if mergedPrev {
			_ = m.byAddr.Remove(newAddr)
		}

		if debug.Enabled {
			m.checkInvariants()
		}

		return res.Ok(struct{}{})
	}

	_, _ = m.byLen.Add(tuple.New2(newLen, newAddr), struct{}{})

	// newAddr is prev's own address, so its ByAddr entry survives the merge
	// and only its length needs rewriting; otherwise it is a fresh key.
	if mergedPrev {
		_ = m.byAddr.UpdateValue(newAddr, newLen)
	} else {
		_, _ = m.byAddr.Add(newAddr, newLen)
	}

	if debug.Enabled {
		m.checkInvariants()
	}

	return res.Ok(struct{}{})
}

// Clear empties the Manager, invoking onFree once per currently allocated
// segment in ascending address order before resetting Capacity to 0.
func (m *Manager) Clear(onFree func(Segment)) {
	if onFree != nil {
		for s := range m.GetAllocatedMemory() {
			onFree(s)
		}
	}

	m.byLen.Clear()
	m.byAddr.Clear()
	m.capacity = 0
	m.freeLen = 0
}

// Load rebuilds the Manager from a caller-supplied sequence of allocated
// segments in strictly ascending, non-overlapping address order. The gaps
// between them become free segments; Capacity is set to the end of the
// last segment. Returns ErrOutOfOrder if the sequence is not ascending.
func (m *Manager) Load(allocated iter.Seq[Segment]) error {
	m.byLen.Clear()
	m.byAddr.Clear()
	m.capacity = 0
	m.freeLen = 0

	appender := m.byAddr.GetAppender()
	cursor := uint64(0)

	for s := range allocated {
		if s.Address() < cursor {
			return ErrOutOfOrder
		}

		if gap := s.Address() - cursor; gap > 0 {
			_, _ = m.byLen.Add(tuple.New2(gap, cursor), struct{}{})
			if err := appender.AddOrdered(cursor, gap); err != nil {
				return ErrOutOfOrder
			}
			m.freeLen += gap
		}

		cursor = s.End()
	}

	m.capacity = cursor

	return nil
}

// GetAllocatedMemory enumerates the complement of the free list within
// [0, Capacity) in ascending address order.
func (m *Manager) GetAllocatedMemory() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		cursor := uint64(0)

		for addr, length := range m.byAddr.Items() {
			if addr > cursor {
				if !yield(NewSegment(cursor, addr-cursor)) {
					return
				}
			}

			cursor = addr + length
		}

		if cursor < m.capacity {
			yield(NewSegment(cursor, m.capacity-cursor))
		}
	}
}

// GetAvailableMemory enumerates the free list in ascending address order.
func (m *Manager) GetAvailableMemory() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for addr, length := range m.byAddr.Items() {
			if !yield(NewSegment(addr, length)) {
				return
			}
		}
	}
}

// String renders Capacity and the free list in ascending address order, for
// use in test failure output and ad-hoc debugging. Not meant for parsing.
func (m *Manager) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "capacity=%d free=%d allocated=%d\n", m.capacity, m.freeLen, m.TotalAllocated())

	for s := range m.GetAvailableMemory() {
		fmt.Fprintf(&b, "  free   [%d, %d)\n", s.Address(), s.End())
	}

	return b.String()
}
