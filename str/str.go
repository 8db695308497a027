// Package str provides [String], a byte string built on the growable array of package vec.
//
// A String is an arbitrary sequence of bytes: no encoding is assumed and no terminator is kept.
// Zero bytes are ordinary data and only appear when pushed, e.g. by [String.PushTerminator].
package str

import (
	"bytes"
	"fmt"
	"io"

	"github.com/teenjuna/vec"
)

// MaxFormatted is the size of the scratch buffer used by [String.Printf]. Longer output is
// truncated.
const MaxFormatted = 1024

// String is a growable byte string. The zero value is an empty String ready to use.
//
// Like [vec.Vec], a String is not safe for concurrent use.
type String struct {
	buf vec.Vec[byte]
}

// New returns an empty String.
func New() *String {
	return &String{}
}

// FromByte returns a String holding the single byte c.
func FromByte(c byte) *String {
	s := New()
	s.Push(c)
	return s
}

// FromBytes returns a String holding a copy of b.
func FromBytes(b []byte) *String {
	s := New()
	s.PushBytes(b)
	return s
}

// FromString returns a String holding the bytes of x.
func FromString(x string) *String {
	s := New()
	s.PushString(x)
	return s
}

// Push appends the byte c.
func (s *String) Push(c byte) {
	s.buf.Push(c)
}

// PushTerminator appends a zero byte. It's the only way a terminator ends up in a String.
func (s *String) PushTerminator() {
	s.buf.Push(0)
}

// PushBytes appends b.
func (s *String) PushBytes(b []byte) {
	s.buf.PushMany(b...)
}

// PushString appends the bytes of x.
func (s *String) PushString(x string) {
	s.buf.Reserve(len(x))
	for i := range len(x) {
		s.buf.Push(x[i])
	}
}

// PushStr appends the contents of other, which may be s itself.
func (s *String) PushStr(other *String) {
	s.buf.PushMany(other.buf.Slice()...)
}

// Printf appends the text formatted by [fmt.Sprintf]. At most [MaxFormatted] bytes are appended:
// the rest of the output is dropped.
func (s *String) Printf(format string, args ...any) {
	var scratch [MaxFormatted]byte
	out := fmt.Appendf(scratch[:0], format, args...)
	if len(out) > MaxFormatted {
		out = out[:MaxFormatted]
	}
	s.buf.PushMany(out...)
}

// Len returns the number of bytes.
func (s *String) Len() int {
	return s.buf.Len()
}

// Cap returns the number of allocated bytes.
func (s *String) Cap() int {
	return s.buf.Cap()
}

// IsEmpty reports whether s holds no bytes.
func (s *String) IsEmpty() bool {
	return s.buf.IsEmpty()
}

// Bytes returns the contents of s. The slice aliases the String and is valid until the next
// mutation.
func (s *String) Bytes() []byte {
	return s.buf.Slice()
}

// String returns a copy of the contents as a Go string.
func (s *String) String() string {
	return string(s.buf.Slice())
}

// Vec returns the underlying array for positional operations.
func (s *String) Vec() *vec.Vec[byte] {
	return &s.buf
}

// WriteTo writes the contents of s to w.
func (s *String) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.buf.Slice())
	return int64(n), err
}

// Clear drops the contents and keeps the allocated block.
func (s *String) Clear() {
	s.buf.Clear()
}

// Release drops the contents and the allocated block.
func (s *String) Release() {
	s.buf.Release()
}

// Clone returns a deep copy of s.
func (s *String) Clone() *String {
	c := New()
	c.PushStr(s)
	return c
}

// CopyFrom replaces the contents of s with the contents of src.
func (s *String) CopyFrom(src *String) {
	if s == src {
		return
	}
	s.buf.Clear()
	s.buf.PushMany(src.buf.Slice()...)
}

// Compare compares s and other lexicographically byte by byte. The result is 0 if s == other,
// -1 if s < other and +1 if s > other. A prefix is less than the longer string.
func (s *String) Compare(other *String) int {
	return bytes.Compare(s.buf.Slice(), other.buf.Slice())
}

// CompareBytes is like [String.Compare] for a raw byte slice.
func (s *String) CompareBytes(b []byte) int {
	return bytes.Compare(s.buf.Slice(), b)
}

// Equal reports whether s and other hold the same bytes.
func (s *String) Equal(other *String) bool {
	return bytes.Equal(s.buf.Slice(), other.buf.Slice())
}

// EqualBytes reports whether s holds exactly the bytes of b.
func (s *String) EqualBytes(b []byte) bool {
	return bytes.Equal(s.buf.Slice(), b)
}

// IndexByte returns the index of the first c in s, or -1.
func (s *String) IndexByte(c byte) int {
	return bytes.IndexByte(s.buf.Slice(), c)
}

// ContainsByte reports whether c is in s.
func (s *String) ContainsByte(c byte) bool {
	return s.IndexByte(c) >= 0
}
