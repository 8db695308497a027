// Package vec provides [Vec], a generic growable array with an explicit and predictable growth
// policy, positional insert and remove, bulk append and sorted insertion.
//
// A Vec is not safe for concurrent use. It has a single owner, and every pointer or slice
// obtained from it ([Vec.Ref], [Vec.Slice], iteration) is valid only until the next structural
// mutation of the same Vec.
//
// Contract violations panic with an error value: out-of-range indexes with a [*BoundsError]
// (wrapping [ErrBounds]), removal from an empty Vec with [ErrUnderflow], and growth that can't be
// allocated with a [*AllocationError] (wrapping [ErrAllocation]). A panic never leaves the Vec
// half-modified.
package vec

import "fmt"

// DefaultCapacity is the capacity of the first block allocated by a growth operation.
const DefaultCapacity = 32

// Vec is a growable array of T. The zero value is an empty Vec ready to use.
type Vec[T any] struct {
	// items is the whole allocated block: len(items) is the capacity.
	items []T
	count int
}

// New returns an empty Vec without an allocated block.
func New[T any]() *Vec[T] {
	return &Vec[T]{}
}

// WithCapacity returns an empty Vec with a block of exactly capacity slots.
func WithCapacity[T any](capacity int) *Vec[T] {
	if capacity < 0 {
		panic("capacity can't be < 0")
	}
	v := &Vec[T]{}
	if capacity > 0 {
		v.realloc(capacity)
	}
	return v
}

// Of returns a Vec holding a copy of items, grown by the bulk append policy.
func Of[T any](items ...T) *Vec[T] {
	v := &Vec[T]{}
	v.PushMany(items...)
	return v
}

// Len returns the number of live elements.
func (v *Vec[T]) Len() int {
	return v.count
}

// Cap returns the number of allocated slots.
func (v *Vec[T]) Cap() int {
	return len(v.items)
}

// IsEmpty reports whether the Vec holds no elements.
func (v *Vec[T]) IsEmpty() bool {
	return v.count == 0
}

// Get returns the element at index i.
func (v *Vec[T]) Get(i int) T {
	checkIndex("get", i, v.count)
	return v.items[i]
}

// Ref returns a pointer to the element at index i. The pointer must not be used after the next
// structural mutation of v, since growth moves the elements to a new block.
func (v *Vec[T]) Ref(i int) *T {
	checkIndex("ref", i, v.count)
	return &v.items[i]
}

// Set replaces the element at index i.
func (v *Vec[T]) Set(i int, value T) {
	checkIndex("set", i, v.count)
	v.items[i] = value
}

// Slice returns the live elements. The slice aliases the block and follows the same validity
// rules as [Vec.Ref].
func (v *Vec[T]) Slice() []T {
	return v.items[:v.count:v.count]
}

// Fit reallocates the block to exactly Len slots. An empty Vec releases its block.
func (v *Vec[T]) Fit() {
	switch {
	case v.count == 0:
		v.Release()
	case v.count < len(v.items):
		v.realloc(v.count)
	}
}

// Reserve makes sure n more elements can be pushed without another allocation. The capacity is
// grown with the same doubling as [Vec.PushMany].
func (v *Vec[T]) Reserve(n int) {
	if n < 0 {
		panic("reserve can't be < 0")
	}
	v.growFor(n)
}

// Truncate drops all elements starting from index n. The capacity is kept.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 || n > v.count {
		panic(&BoundsError{Op: "truncate", Index: n, Len: v.count})
	}
	clear(v.items[n:v.count])
	v.count = n
}

// Clear removes all elements and keeps the block.
func (v *Vec[T]) Clear() {
	clear(v.items[:v.count])
	v.count = 0
}

// Release drops the block and leaves v in the state of a new Vec. Releasing twice is a no-op.
func (v *Vec[T]) Release() {
	v.items = nil
	v.count = 0
}

// Clone returns a deep copy of v with the same capacity.
func (v *Vec[T]) Clone() *Vec[T] {
	c := &Vec[T]{}
	if len(v.items) > 0 {
		c.realloc(len(v.items))
		copy(c.items, v.items[:v.count])
		c.count = v.count
	}
	return c
}

func (v *Vec[T]) String() string {
	return fmt.Sprint(v.Slice())
}
