package vec

import (
	"math"
	"strconv"
	"unsafe"
)

// maxAlloc is the largest block in bytes the runtime agrees to allocate.
const maxAlloc = 1<<min(48, strconv.IntSize-1) - 1

// Push appends value. A full Vec grows to max(DefaultCapacity, 2*Cap).
func (v *Vec[T]) Push(value T) {
	if v.count == len(v.items) {
		v.grow()
	}
	v.items[v.count] = value
	v.count++
}

// Insert puts value at index i, shifting the elements at [i, Len) one slot to the right.
// Inserting at Len is the same as [Vec.Push].
func (v *Vec[T]) Insert(i int, value T) {
	if i < 0 || i > v.count {
		panic(&BoundsError{Op: "insert", Index: i, Len: v.count})
	}
	if v.count == len(v.items) {
		v.grow()
	}
	if i < v.count {
		copy(v.items[i+1:v.count+1], v.items[i:v.count])
	}
	v.items[i] = value
	v.count++
}

// PushFront inserts value at index 0.
func (v *Vec[T]) PushFront(value T) {
	v.Insert(0, value)
}

// PushMany appends items preserving their order. When they don't fit, the capacity is doubled
// (starting from DefaultCapacity) until they do, and the block is reallocated once.
func (v *Vec[T]) PushMany(items ...T) {
	if len(items) == 0 {
		return
	}
	v.growFor(len(items))
	copy(v.items[v.count:], items)
	v.count += len(items)
}

// PushSorted inserts value before the first element e for which cmp(e, value) >= 0, or appends
// it when there's no such element. A Vec sorted ascending by cmp stays sorted, and value lands
// before the elements equal to it.
//
// The position is found by a linear scan, so every call is O(Len).
func (v *Vec[T]) PushSorted(value T, cmp func(a, b T) int) {
	for i := range v.count {
		if cmp(v.items[i], value) >= 0 {
			v.Insert(i, value)
			return
		}
	}
	v.Push(value)
}

// grow makes room for a single element.
func (v *Vec[T]) grow() {
	capacity := DefaultCapacity
	if c := len(v.items); c > math.MaxInt/2 {
		panic(&AllocationError{Requested: math.MaxInt, ElemSize: elemSize[T]()})
	} else if c*2 > capacity {
		capacity = c * 2
	}
	v.realloc(capacity)
}

// growFor makes room for n more elements.
func (v *Vec[T]) growFor(n int) {
	if n > math.MaxInt-v.count {
		panic(&AllocationError{Requested: math.MaxInt, ElemSize: elemSize[T]()})
	}
	need := v.count + n
	if need <= len(v.items) {
		return
	}
	capacity := len(v.items)
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	for capacity < need {
		if capacity > math.MaxInt/2 {
			panic(&AllocationError{Requested: need, ElemSize: elemSize[T]()})
		}
		capacity *= 2
	}
	v.realloc(capacity)
}

// realloc moves the live elements to a new block of exactly capacity slots. The Vec is only
// modified once the new block is ready.
func (v *Vec[T]) realloc(capacity int) {
	size := elemSize[T]()
	if size != 0 && uintptr(capacity) > maxAlloc/size {
		panic(&AllocationError{Requested: capacity, ElemSize: size})
	}
	items := allocate[T](capacity)
	copy(items, v.items[:v.count])
	v.items = items
}

func allocate[T any](n int) (items []T) {
	defer func() {
		if r := recover(); r != nil {
			panic(&AllocationError{Requested: n, ElemSize: elemSize[T]()})
		}
	}()
	return make([]T, n)
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}
