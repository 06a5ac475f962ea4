package vmem

import "github.com/flowkit/ordertree/pkg/tuple"

// Segment is a contiguous byte range [Address, Address+Length). It embeds
// pkg/tuple's Tuple2 rather than declaring its own pair type, the same
// (address, length) shape the spec names throughout this module.
type Segment struct {
	tuple.Tuple2[uint64, uint64]
}

// NewSegment returns the Segment [address, address+length).
func NewSegment(address, length uint64) Segment {
	return Segment{tuple.New2(address, length)}
}

// Address returns the segment's base address.
func (s Segment) Address() uint64 { return s.V0 }

// Length returns the segment's length in bytes.
func (s Segment) Length() uint64 { return s.V1 }

// End returns the address immediately past the segment.
func (s Segment) End() uint64 { return s.V0 + s.V1 }

// lenAddrKey orders by length first, then address, so that best-fit search
// on ByLen returns the lowest-address segment among equal-length
// candidates.
type lenAddrKey = tuple.Tuple2[uint64, uint64]

func cmpLenAddr(a, b lenAddrKey) int {
	switch {
	case a.V0 < b.V0:
		return -1
	case a.V0 > b.V0:
		return 1
	case a.V1 < b.V1:
		return -1
	case a.V1 > b.V1:
		return 1
	default:
		return 0
	}
}
