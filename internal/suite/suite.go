// Package suite holds the self-check cases of vec and str, runnable by package check.
package suite

import (
	"cmp"
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/codec/json"
	"github.com/teenjuna/vec/codec/zstd"
	"github.com/teenjuna/vec/internal/check"
	"github.com/teenjuna/vec/str"
)

// Config sizes the generated inputs of the cases.
type Config struct {
	// Size is the number of elements used by the push and stress cases.
	Size int
	// Seed of the random inputs.
	Seed uint64
}

func DefaultConfig() Config {
	return Config{
		Size: 10000,
		Seed: 1,
	}
}

// Cases returns the whole suite.
func Cases(cfg Config) []check.Case {
	if cfg.Size < 1 {
		panic("size can't be < 1")
	}
	return []check.Case{
		{Name: "push", Func: func(t *check.T) { testPush(t, cfg) }},
		{Name: "for", Func: func(t *check.T) { testFor(t, cfg) }},
		{Name: "insert", Func: testInsert},
		{Name: "insert_random", Func: func(t *check.T) { testInsertRandom(t, cfg) }},
		{Name: "remove", Func: testRemove},
		{Name: "push_many", Func: testPushMany},
		{Name: "push_sorted", Func: func(t *check.T) { testPushSorted(t, cfg) }},
		{Name: "clear", Func: testClear},
		{Name: "release", Func: testRelease},
		{Name: "fit", Func: testFit},
		{Name: "sort_search", Func: func(t *check.T) { testSortSearch(t, cfg) }},
		{Name: "bounds", Func: testBounds},
		{Name: "string", Func: testString},
		{Name: "string_compare", Func: testStringCompare},
		{Name: "codec", Func: func(t *check.T) { testCodec(t, cfg) }},
	}
}

func testPush(t *check.T, cfg Config) {
	v := vec.New[int]()
	defer v.Release()

	for i := range cfg.Size {
		v.Push(i)
	}

	t.Require(v.Len() == cfg.Size, "count != %d, is %d", cfg.Size, v.Len())
	for i := range cfg.Size {
		t.Require(v.Get(i) == i, "v[%d] != %d, is %d", i, i, v.Get(i))
	}
}

func testFor(t *check.T, cfg Config) {
	v := vec.New[int]()
	defer v.Release()

	for i := range cfg.Size {
		v.Push(i)
	}

	var c int
	for i := range v.All() {
		*v.Ref(i) *= 2
		c++
	}

	t.Require(c == cfg.Size, "for count != %d, is %d", cfg.Size, c)
	for i, x := range v.All() {
		t.Require(x == 2*i, "v[%d] != %d, is %d", i, 2*i, x)
	}
}

func testInsert(t *check.T) {
	v := vec.Of(10, 20)
	v.Insert(1, 99)
	t.Assert(slices.Equal(v.Slice(), []int{10, 99, 20}), "after insert: %v", v)

	v.PushFront(5)
	t.Assert(slices.Equal(v.Slice(), []int{5, 10, 99, 20}), "after push front: %v", v)

	v.Insert(v.Len(), 30)
	t.Assert(slices.Equal(v.Slice(), []int{5, 10, 99, 20, 30}), "after insert at end: %v", v)
}

func testInsertRandom(t *check.T, cfg Config) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	v := vec.New[int]()
	for i := range cfg.Size {
		v.Insert(rng.IntN(v.Len()+1), i)
	}
	t.Require(v.Len() == cfg.Size, "count != %d, is %d", cfg.Size, v.Len())

	v.Sort(cmp.Compare[int])
	for i, x := range v.All() {
		t.Require(x == i, "value %d is missing or duplicated", i)
	}
}

func testRemove(t *check.T) {
	v := vec.Of(0, 1, 2, 3, 4)
	capacity := v.Cap()

	t.Assert(v.Pop() == 4, "pop didn't return 4")
	t.Assert(slices.Equal(v.Slice(), []int{0, 1, 2, 3}), "after pop: %v", v)

	t.Assert(v.RemoveFront() == 0, "remove front didn't return 0")
	t.Assert(slices.Equal(v.Slice(), []int{1, 2, 3}), "after remove front: %v", v)

	t.Assert(v.Remove(1) == 2, "remove didn't return 2")
	t.Assert(slices.Equal(v.Slice(), []int{1, 3}), "after remove: %v", v)

	t.Assert(v.Cap() == capacity, "capacity changed from %d to %d", capacity, v.Cap())
}

func testPushMany(t *check.T) {
	v := vec.Of(1, 2)
	v.PushMany(3, 4, 5, 6, 7)
	t.Assert(v.Len() == 7, "count != 7, is %d", v.Len())
	t.Assert(slices.Equal(v.Slice(), []int{1, 2, 3, 4, 5, 6, 7}), "after push many: %v", v)

	w := vec.New[int]()
	w.PushMany(make([]int, 100)...)
	t.Assert(w.Cap() == 128, "capacity != 128, is %d", w.Cap())
}

func testPushSorted(t *check.T, cfg Config) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1))

	v := vec.New[int]()
	for range min(cfg.Size, 2000) {
		v.PushSorted(rng.IntN(100), cmp.Compare[int])
	}
	t.Assert(slices.IsSorted(v.Slice()), "not sorted")
}

func testClear(t *check.T) {
	v := vec.New[int]()
	for i := range 40 {
		v.Push(i)
	}
	capacity := v.Cap()

	v.Clear()
	t.Assert(v.IsEmpty(), "not empty after clear")
	t.Assert(v.Cap() == capacity, "capacity changed from %d to %d", capacity, v.Cap())
}

func testRelease(t *check.T) {
	v := vec.Of(1, 2, 3)
	v.Release()
	t.Assert(v.Len() == 0 && v.Cap() == 0, "len %d cap %d after release", v.Len(), v.Cap())

	v.Release()
	t.Assert(v.Len() == 0 && v.Cap() == 0, "len %d cap %d after second release", v.Len(), v.Cap())
}

func testFit(t *check.T) {
	v := vec.Of(1, 2, 3, 4, 5)
	v.Fit()
	t.Assert(v.Cap() == 5, "capacity != 5, is %d", v.Cap())

	for i := 6; i <= 40; i++ {
		v.Push(i)
	}
	t.Assert(v.Len() == 40, "count != 40, is %d", v.Len())
	for i, x := range v.All() {
		t.Require(x == i+1, "v[%d] != %d, is %d", i, i+1, x)
	}

	v.Clear()
	v.Fit()
	t.Assert(v.Cap() == 0, "capacity != 0 after fitting empty, is %d", v.Cap())
}

func testSortSearch(t *check.T, cfg Config) {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+2))

	v := vec.New[int]()
	for range cfg.Size {
		v.Push(rng.IntN(cfg.Size) * 2)
	}
	v.Sort(cmp.Compare[int])
	t.Require(slices.IsSorted(v.Slice()), "not sorted")

	x := v.Get(v.Len() / 2)
	found, ok := v.BinarySearch(x, cmp.Compare[int])
	t.Assert(ok && found == x, "%d not found", x)

	_, ok = v.BinarySearch(x+1, cmp.Compare[int])
	t.Assert(!ok, "odd %d found", x+1)
}

func testBounds(t *check.T) {
	v := vec.Of(1, 2, 3)

	t.Assert(errors.Is(catch(func() { v.Insert(4, 0) }), vec.ErrBounds), "insert past count")
	t.Assert(errors.Is(catch(func() { v.Get(3) }), vec.ErrBounds), "get at count")
	t.Assert(errors.Is(catch(func() { v.Remove(3) }), vec.ErrBounds), "remove at count")
	t.Assert(slices.Equal(v.Slice(), []int{1, 2, 3}), "modified by failed calls: %v", v)

	v.Clear()
	t.Assert(errors.Is(catch(func() { v.Pop() }), vec.ErrUnderflow), "pop empty")
	t.Assert(errors.Is(catch(func() { v.RemoveFront() }), vec.ErrUnderflow), "remove empty")
}

func testString(t *check.T) {
	s := str.FromString("hello")
	defer s.Release()

	s.PushString(", ")
	s.PushStr(str.FromString("world"))
	s.Printf(" %d", 42)
	t.Assert(s.String() == "hello, world 42", "got %q", s)

	c := s.Clone()
	c.PushTerminator()
	t.Assert(c.Len() == s.Len()+1, "terminator not pushed")
	t.Assert(s.IndexByte(0) == -1, "terminator leaked into the original")
}

func testStringCompare(t *check.T) {
	a, b := str.FromString("abc"), str.FromString("abd")
	t.Assert(a.Compare(b) < 0, "abc >= abd")
	t.Assert(b.Compare(a) > 0, "abd <= abc")
	t.Assert(a.EqualBytes([]byte("abc")), "abc != abc")
	t.Assert(!a.EqualBytes([]byte("ab")), "abc == ab")
	t.Assert(str.FromString("a\x00b").Compare(str.FromString("a\x00c")) < 0, "embedded zero")
}

func testCodec(t *check.T, cfg Config) {
	codec := zstd.Wrap[int](json.New[int]())

	v := vec.New[int]()
	for i := range cfg.Size {
		v.Push(i)
	}

	data, err := codec.Encode(v.Values())
	t.Require(err == nil, "encode: %v", err)

	w := vec.New[int]()
	err = codec.Decode(data, w.Push)
	t.Require(err == nil, "decode: %v", err)
	t.Assert(slices.Equal(v.Slice(), w.Slice()), "decoded items differ")
}

func catch(f func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err, _ = p.(error)
		}
	}()
	f()
	return nil
}
