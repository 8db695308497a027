package vec

import "fmt"

// Pop removes and returns the last element. The capacity is kept.
func (v *Vec[T]) Pop() T {
	if v.count == 0 {
		panic(underflow("pop"))
	}
	v.count--
	value := v.items[v.count]
	var zero T
	v.items[v.count] = zero
	return value
}

// Remove removes and returns the element at index i, shifting the elements at (i, Len) one slot
// to the left.
func (v *Vec[T]) Remove(i int) T {
	if v.count == 0 {
		panic(underflow("remove"))
	}
	checkIndex("remove", i, v.count)
	if i == v.count-1 {
		return v.Pop()
	}
	value := v.items[i]
	copy(v.items[i:v.count-1], v.items[i+1:v.count])
	v.count--
	var zero T
	v.items[v.count] = zero
	return value
}

// RemoveFront removes and returns the first element.
func (v *Vec[T]) RemoveFront() T {
	return v.Remove(0)
}

func underflow(op string) error {
	return fmt.Errorf("vec: %s: %w", op, ErrUnderflow)
}
