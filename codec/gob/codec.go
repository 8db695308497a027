// Package gob provides a [codec.Codec] writing items as a gob stream.
package gob

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/teenjuna/vec/codec"
)

// ErrCount is returned by Decode when the stream doesn't hold as many items as its header says.
var ErrCount = errors.New("item count mismatch")

// Codec writes the number of items followed by the items themselves. The count lets Decode tell
// a truncated stream from a complete one.
type Codec[Item any] struct {
	buf bytes.Buffer
}

var _ codec.Codec[int] = (*Codec[int])(nil)

func New[Item any]() *Codec[Item] {
	return &Codec[Item]{}
}

func (c *Codec[Item]) Encode(items iter.Seq[Item]) ([]byte, error) {
	var (
		count int
		body  bytes.Buffer
		enc   = gob.NewEncoder(&body)
	)
	for item := range items {
		if err := enc.Encode(&item); err != nil {
			return nil, fmt.Errorf("encode item %d: %w", count, err)
		}
		count++
	}

	c.buf.Reset()
	if err := gob.NewEncoder(&c.buf).Encode(count); err != nil {
		return nil, fmt.Errorf("encode count: %w", err)
	}
	c.buf.Write(body.Bytes())

	return bytes.Clone(c.buf.Bytes()), nil
}

func (c *Codec[Item]) Decode(data []byte, push func(Item)) error {
	r := bytes.NewReader(data)

	var count int
	if err := gob.NewDecoder(r).Decode(&count); err != nil {
		return fmt.Errorf("decode count: %w", err)
	}
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrCount, count)
	}

	// The count is read with its own decoder, so the items start a fresh stream.
	dec := gob.NewDecoder(r)
	for i := range count {
		var item Item
		err := dec.Decode(&item)
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: got %d of %d", ErrCount, i, count)
		} else if err != nil {
			return fmt.Errorf("decode item %d: %w", i, err)
		}
		push(item)
	}

	if r.Len() > 0 {
		return fmt.Errorf("%w: %d trailing bytes after %d items", ErrCount, r.Len(), count)
	}

	return nil
}

func (c *Codec[Item]) Derive() codec.Codec[Item] {
	return New[Item]()
}
