package gob_test

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/codec/gob"
	"github.com/teenjuna/vec/internal/testing/require"
)

func TestCodec(t *testing.T) {
	type Item struct {
		ID string
		N1 int
		N2 float64
	}

	buffer := vec.New[Item]()
	codec := gob.New[Item]()

	var items []Item
	for i := range 1000 {
		item := Item{
			ID: strconv.Itoa(i),
			N1: rand.IntN(1000) + 1,
			N2: rand.Float64()*1000 + 1,
		}
		items = append(items, item)
		buffer.Push(item)
	}

	data, err := codec.Encode(buffer.Values())
	require.Nil(t, err)
	require.NotEqual(t, len(data), 0)

	decoded := vec.New[Item]()
	require.Nil(t, codec.Derive().Decode(data, decoded.Push))
	require.Equal(t, decoded.Slice(), items)
}

func TestCodecEmpty(t *testing.T) {
	codec := gob.New[int]()

	data, err := codec.Encode(vec.New[int]().Values())
	require.Nil(t, err)

	decoded := vec.New[int]()
	require.Nil(t, codec.Decode(data, decoded.Push))
	require.True(t, decoded.IsEmpty())
}

func TestCodecCountMismatch(t *testing.T) {
	codec := gob.New[string]()

	data, err := codec.Encode(vec.Of("a", "bb", "ccc").Values())
	require.Nil(t, err)

	decoded := vec.New[string]()
	err = codec.Decode(data[:len(data)-2], decoded.Push)
	require.ErrorIs(t, err, gob.ErrCount)
	require.Equal(t, decoded.Slice(), []string{"a", "bb"})

	err = codec.Decode(append(data, data...), func(string) {})
	require.ErrorIs(t, err, gob.ErrCount)
}

func TestCodecGarbage(t *testing.T) {
	err := gob.New[int]().Decode([]byte("garbage data"), func(int) {})
	require.NotNil(t, err)
}
