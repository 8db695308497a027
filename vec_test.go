package vec_test

import (
	"slices"
	"testing"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/internal/testing/require"
)

func TestZeroValue(t *testing.T) {
	var v vec.Vec[int]
	require.Equal(t, v.Len(), 0)
	require.Equal(t, v.Cap(), 0)
	require.True(t, v.IsEmpty())

	v.Push(1)
	require.Equal(t, v.Len(), 1)
	require.Equal(t, v.Cap(), vec.DefaultCapacity)
}

func TestWithCapacity(t *testing.T) {
	v := vec.WithCapacity[string](5)
	require.Equal(t, v.Len(), 0)
	require.Equal(t, v.Cap(), 5)

	for i := range 5 {
		v.Push(string(rune('a' + i)))
	}
	require.Equal(t, v.Cap(), 5)

	v.Push("f")
	require.Equal(t, v.Cap(), vec.DefaultCapacity)

	require.Equal(t, vec.WithCapacity[int](0).Cap(), 0)
	require.PanicWithError(t, "capacity can't be < 0", func() {
		vec.WithCapacity[int](-1)
	})
}

func TestGetRefSet(t *testing.T) {
	v := vec.Of(10, 20, 30)
	require.Equal(t, v.Get(0), 10)
	require.Equal(t, v.Get(2), 30)

	*v.Ref(1) = 21
	require.Equal(t, v.Get(1), 21)

	v.Set(2, 31)
	require.Equal(t, v.Slice(), []int{10, 21, 31})

	for _, i := range []int{-1, 3, 100} {
		require.PanicErrorIs(t, vec.ErrBounds, func() { v.Get(i) })
		require.PanicErrorIs(t, vec.ErrBounds, func() { v.Ref(i) })
		require.PanicErrorIs(t, vec.ErrBounds, func() { v.Set(i, 0) })
	}
}

func TestBoundsErrorMessage(t *testing.T) {
	v := vec.Of(1, 2)
	defer func() {
		err, ok := recover().(*vec.BoundsError)
		require.True(t, ok)
		require.Equal(t, err.Op, "get")
		require.Equal(t, err.Index, 2)
		require.Equal(t, err.Len, 2)
		require.Equal(t, err.Error(), "vec: get: index 2 out of bounds [0:2]")
	}()
	v.Get(2)
}

func TestClear(t *testing.T) {
	v := vec.New[int]()
	for i := range 40 {
		v.Push(i)
	}
	capacity := v.Cap()

	v.Clear()
	require.Equal(t, v.Len(), 0)
	require.True(t, v.IsEmpty())
	require.Equal(t, v.Cap(), capacity)
	require.True(t, v.Cap() > 0)

	v.Push(7)
	require.Equal(t, v.Slice(), []int{7})
	require.Equal(t, v.Cap(), capacity)
}

func TestRelease(t *testing.T) {
	v := vec.Of(1, 2, 3)
	v.Release()
	require.Equal(t, v.Len(), 0)
	require.Equal(t, v.Cap(), 0)

	v.Release()
	require.Equal(t, v.Len(), 0)
	require.Equal(t, v.Cap(), 0)
	require.Equal(t, *v, vec.Vec[int]{})

	v.Push(4)
	require.Equal(t, v.Slice(), []int{4})
	require.Equal(t, v.Cap(), vec.DefaultCapacity)
}

func TestFit(t *testing.T) {
	t.Run("Shrinks to count", func(t *testing.T) {
		v := vec.Of(1, 2, 3, 4, 5)
		require.Equal(t, v.Cap(), vec.DefaultCapacity)

		v.Fit()
		require.Equal(t, v.Cap(), 5)
		require.Equal(t, v.Slice(), []int{1, 2, 3, 4, 5})

		v.Fit()
		require.Equal(t, v.Cap(), 5)
	})

	t.Run("Regrows", func(t *testing.T) {
		v := vec.Of(1, 2, 3, 4, 5)
		v.Fit()

		v.Push(6)
		require.Equal(t, v.Cap(), vec.DefaultCapacity)

		v.Fit()
		require.Equal(t, v.Cap(), 6)
		v.PushMany(7, 8, 9, 10, 11, 12, 13)
		require.Equal(t, v.Cap(), 24)
		require.Equal(t, v.Slice(), []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13})
	})

	t.Run("Releases empty", func(t *testing.T) {
		v := vec.WithCapacity[int](10)
		v.Fit()
		require.Equal(t, v.Cap(), 0)
		require.Equal(t, *v, vec.Vec[int]{})

		v = vec.Of(1)
		v.Pop()
		v.Fit()
		require.Equal(t, v.Cap(), 0)
	})
}

func TestReserve(t *testing.T) {
	v := vec.New[int]()
	v.Reserve(0)
	require.Equal(t, v.Cap(), 0)

	v.Reserve(33)
	require.Equal(t, v.Cap(), 64)

	v.Reserve(64)
	require.Equal(t, v.Cap(), 64)

	require.PanicWithError(t, "reserve can't be < 0", func() {
		v.Reserve(-1)
	})
}

func TestTruncate(t *testing.T) {
	v := vec.Of(1, 2, 3, 4)
	v.Truncate(2)
	require.Equal(t, v.Slice(), []int{1, 2})
	require.Equal(t, v.Cap(), vec.DefaultCapacity)

	v.Truncate(2)
	require.Equal(t, v.Len(), 2)

	require.PanicErrorIs(t, vec.ErrBounds, func() { v.Truncate(3) })
	require.PanicErrorIs(t, vec.ErrBounds, func() { v.Truncate(-1) })
}

func TestClone(t *testing.T) {
	v := vec.Of(1, 2, 3)
	c := v.Clone()
	require.Equal(t, c.Slice(), v.Slice())
	require.Equal(t, c.Cap(), v.Cap())

	c.Set(0, 100)
	c.Push(4)
	require.Equal(t, v.Slice(), []int{1, 2, 3})
	require.Equal(t, c.Slice(), []int{100, 2, 3, 4})

	empty := vec.New[int]().Clone()
	require.Equal(t, empty.Cap(), 0)
}

func TestSliceDoesNotLeakCapacity(t *testing.T) {
	v := vec.Of(1, 2)
	s := v.Slice()
	require.Equal(t, cap(s), 2)

	_ = append(s, 3)
	require.Equal(t, v.Len(), 2)
	require.Equal(t, slices.Collect(v.Values()), []int{1, 2})
}

func TestString(t *testing.T) {
	require.Equal(t, vec.Of(1, 2, 3).String(), "[1 2 3]")
}
