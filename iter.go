package vec

import "iter"

// All returns a sequence of index/element pairs in storage order.
//
// The sequence reads the Vec while it is consumed: pushing, inserting, removing, fitting or
// releasing during the iteration is not allowed. Assigning through [Vec.Ref] or [Vec.Set] is fine.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range v.count {
			if !yield(i, v.items[i]) {
				return
			}
		}
	}
}

// Values returns a sequence of the elements in storage order. See [Vec.All] for the rules.
func (v *Vec[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range v.count {
			if !yield(v.items[i]) {
				return
			}
		}
	}
}

// Backward returns a sequence of index/element pairs from the last element to the first.
func (v *Vec[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := v.count - 1; i >= 0; i-- {
			if !yield(i, v.items[i]) {
				return
			}
		}
	}
}
