package vec

import "slices"

// Sort sorts the elements in place in ascending order as determined by cmp. The sort is not
// guaranteed to be stable and never reallocates.
func (v *Vec[T]) Sort(cmp func(a, b T) int) {
	slices.SortFunc(v.items[:v.count], cmp)
}

// BinarySearch looks for an element equal to key in a Vec sorted ascending by cmp. The result is
// meaningless if the Vec isn't sorted.
func (v *Vec[T]) BinarySearch(key T, cmp func(a, b T) int) (T, bool) {
	i, ok := v.BinarySearchIndex(key, cmp)
	if !ok {
		var zero T
		return zero, false
	}
	return v.items[i], true
}

// BinarySearchIndex returns the position of key in a Vec sorted ascending by cmp and whether it
// was found. When it wasn't, the position is where key would have to be inserted.
func (v *Vec[T]) BinarySearchIndex(key T, cmp func(a, b T) int) (int, bool) {
	return slices.BinarySearchFunc(v.items[:v.count], key, cmp)
}

// IndexFunc returns the index of the first element satisfying f, or -1.
func (v *Vec[T]) IndexFunc(f func(T) bool) int {
	return slices.IndexFunc(v.items[:v.count], f)
}

// ContainsFunc reports whether some element satisfies f.
func (v *Vec[T]) ContainsFunc(f func(T) bool) bool {
	return v.IndexFunc(f) >= 0
}
