package vec

import (
	"errors"
	"fmt"
)

var (
	// ErrBounds is the cause of every panic caused by an index outside of the live range.
	ErrBounds = errors.New("index out of bounds")
	// ErrUnderflow is panicked when an element is removed from an empty buffer.
	ErrUnderflow = errors.New("underflow")
	// ErrAllocation is the cause of every panic caused by a block that can't be allocated.
	ErrAllocation = errors.New("allocation failure")
)

// BoundsError describes an index that violated the bounds of an operation.
type BoundsError struct {
	Op    string
	Index int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("vec: %s: index %d out of bounds [0:%d]", e.Op, e.Index, e.Len)
}

func (e *BoundsError) Unwrap() error {
	return ErrBounds
}

// AllocationError describes a growth request that couldn't be satisfied.
type AllocationError struct {
	Requested int
	ElemSize  uintptr
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf(
		"vec: can't allocate %d elements of %d bytes",
		e.Requested, e.ElemSize,
	)
}

func (e *AllocationError) Unwrap() error {
	return ErrAllocation
}

func checkIndex(op string, i, n int) {
	if i < 0 || i >= n {
		panic(&BoundsError{Op: op, Index: i, Len: n})
	}
}
