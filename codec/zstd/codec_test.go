package zstd_test

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	kzstd "github.com/klauspost/compress/zstd"
	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/codec/gob"
	"github.com/teenjuna/vec/codec/json"
	"github.com/teenjuna/vec/codec/zstd"
	"github.com/teenjuna/vec/internal/testing/require"
)

func TestCodec(t *testing.T) {
	type Item struct {
		ID string
		N1 int
		N2 float64
	}

	buffer := vec.New[Item]()
	for i := range 1000 {
		buffer.Push(Item{
			ID: strconv.Itoa(i % 10),
			N1: rand.IntN(10),
			N2: float64(i % 3),
		})
	}
	items := slices.Clone(buffer.Slice())

	inner := json.New[Item]()
	plain, err := inner.Encode(buffer.Values())
	require.Nil(t, err)

	codec := zstd.Wrap[Item](json.New[Item]()).WithLevel(kzstd.SpeedBestCompression)
	data, err := codec.Encode(buffer.Values())
	require.Nil(t, err)
	require.True(t, len(data) < len(plain))

	buffer.Clear()
	require.Nil(t, codec.Decode(data, buffer.Push))
	require.Equal(t, buffer.Slice(), items)

	derived := codec.Derive()
	require.NotEqual(t, derived, codec)

	decoded := vec.New[Item]()
	require.Nil(t, derived.Decode(data, decoded.Push))
	require.Equal(t, decoded.Slice(), items)
}

func TestCodecBytes(t *testing.T) {
	codec := zstd.Wrap[byte](gob.New[byte]())

	input := vec.Of(bytes.Repeat([]byte("vec"), 100)...)
	data, err := codec.Encode(input.Values())
	require.Nil(t, err)

	output := vec.New[byte]()
	require.Nil(t, codec.Decode(data, output.Push))
	require.Equal(t, output.Slice(), input.Slice())
}

func TestCodecCorrupted(t *testing.T) {
	codec := zstd.Wrap[int](json.New[int]())
	err := codec.Decode([]byte("not zstd"), func(int) {})
	require.NotNil(t, err)
}

func TestOptionValidation(t *testing.T) {
	require.PanicWithError(t, "codec can't be nil", func() {
		zstd.Wrap[int](nil)
	})

	require.PanicWithError(t, "level is invalid", func() {
		zstd.Wrap[int](json.New[int]()).WithLevel(kzstd.EncoderLevel(100))
	})
}
