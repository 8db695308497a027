// Package zstd provides a [codec.Codec] that compresses the output of another codec with
// Zstandard.
package zstd

import (
	"fmt"
	"iter"

	"github.com/klauspost/compress/zstd"
	"github.com/teenjuna/vec/codec"
)

// Codec compresses what the inner codec encodes and decompresses before the inner codec decodes.
type Codec[Item any] struct {
	inner   codec.Codec[Item]
	level   zstd.EncoderLevel
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

var _ codec.Codec[any] = (*Codec[any])(nil)

// Wrap returns a Codec compressing the output of inner with the default level.
func Wrap[Item any](inner codec.Codec[Item]) *Codec[Item] {
	if inner == nil {
		panic("codec can't be nil")
	}
	return &Codec[Item]{
		inner: inner,
		level: zstd.SpeedDefault,
	}
}

// WithLevel sets the compression level.
func (c *Codec[Item]) WithLevel(level zstd.EncoderLevel) *Codec[Item] {
	if level < zstd.SpeedFastest || level > zstd.SpeedBestCompression {
		panic("level is invalid")
	}
	c.level = level
	return c
}

func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	data, err := c.inner.Encode(items)
	if err != nil {
		return nil, err
	}

	if c.encoder == nil {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(c.level), zstd.WithEncoderConcurrency(1))
		if err != nil {
			return nil, fmt.Errorf("create encoder: %w", err)
		}
		c.encoder = enc
	}

	return c.encoder.EncodeAll(data, nil), nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	if c.decoder == nil {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return fmt.Errorf("create decoder: %w", err)
		}
		c.decoder = dec
	}

	raw, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}

	return c.inner.Decode(raw, push)
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return Wrap(c.inner.Derive()).WithLevel(c.level)
}
