package json_test

import (
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/codec/json"
	"github.com/teenjuna/vec/internal/testing/require"
)

func TestCodec(t *testing.T) {
	type Item struct {
		ID string
		N1 int
		N2 float64
	}

	buffer := vec.New[Item]()
	codec := json.New[Item]()

	var items []Item
	for i := range 1000 {
		item := Item{
			ID: strconv.Itoa(i),
			N1: rand.IntN(1000),
			N2: rand.Float64() * 1000,
		}
		items = append(items, item)
		buffer.Push(item)
	}

	data, err := codec.Encode(buffer.Values())
	require.Nil(t, err)
	require.NotEqual(t, len(data), 0)

	buffer.Clear()

	err = codec.Decode(data, buffer.Push)
	require.Nil(t, err)

	bufferItems := slices.Collect(buffer.Values())
	require.Equal(t, bufferItems, items)
}

func TestCodecEmpty(t *testing.T) {
	codec := json.New[int]()

	data, err := codec.Encode(vec.New[int]().Values())
	require.Nil(t, err)
	require.Equal(t, string(data), "[]\n")

	buffer := vec.New[int]()
	require.Nil(t, codec.Decode(data, buffer.Push))
	require.Equal(t, buffer.Len(), 0)
	require.Equal(t, buffer.Cap(), 0)
}

func TestCodecPushSorted(t *testing.T) {
	codec := json.New[int]()

	data, err := codec.Encode(vec.Of(5, 3, 9, 1).Values())
	require.Nil(t, err)

	buffer := vec.New[int]()
	err = codec.Decode(data, func(x int) {
		buffer.PushSorted(x, func(a, b int) int { return a - b })
	})
	require.Nil(t, err)
	require.Equal(t, buffer.Slice(), []int{1, 3, 5, 9})
}
