package vmem

import "fmt"

// FreeKind distinguishes the two ways Manager.Free can reject a caller's
// claim that a range was previously allocated.
type FreeKind int

const (
	// DoubleFree means the range overlaps memory that is already free.
	DoubleFree FreeKind = iota
	// BadFree means the range extends past Capacity.
	BadFree
)

func (k FreeKind) String() string {
	if k == BadFree {
		return "BadFree"
	}

	return "DoubleFree"
}

// FreeError reports why Manager.Free rejected a range, carrying enough
// structure for a caller to recover the offending range with
// pkg/xerrors.AsA[*FreeError] rather than parsing an error string.
type FreeError struct {
	Kind    FreeKind
	Address uint64
	Length  uint64
}

func (e *FreeError) Error() string {
	return fmt.Sprintf("%s: [%d, %d)", e.Kind, e.Address, e.Address+e.Length)
}

// ErrOutOfOrder is returned by Load when an input segment is not in
// strictly ascending, non-overlapping address order.
var ErrOutOfOrder = fmt.Errorf("vmem: load segments must be strictly ascending and non-overlapping")
