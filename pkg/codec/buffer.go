// Package codec encodes and decodes fixed-size primitive scalars, GUIDs,
// decimals, strings, and raw byte arrays to and from a growable byte buffer.
//
// Every encoding is little-endian and fixed width for its kind; strings and
// byte arrays are written raw, without a length prefix; a caller that needs
// one writes it itself and passes the byte count back when decoding. Decoding never panics on truncated input: it walks a
// [untrust.Reader] and surfaces [untrust.ErrEndOfInput] instead.
package codec

import "errors"

// ErrInvalidArgument is returned when a caller passes a negative length or
// offset to an encode/decode operation.
var ErrInvalidArgument = errors.New("codec: invalid argument")

// Buffer is a growable byte array with an explicit logical length.
//
// Buffer exists separately from []byte so that Encode* functions can always
// append without the caller needing to pre-size anything; Grow amortizes
// reallocation the same way append does, just under an explicit name so call
// sites read as "make room" rather than relying on append's slice aliasing
// rules.
type Buffer struct {
	data []byte
}

// NewBuffer returns an empty Buffer with no preallocated capacity.
func NewBuffer() *Buffer { return &Buffer{} }

// NewBufferSize returns an empty Buffer with capacity for at least size bytes.
func NewBufferSize(size int) *Buffer {
	if size < 0 {
		size = 0
	}

	return &Buffer{data: make([]byte, 0, size)}
}

// Len returns the logical length of the buffer.
func (b *Buffer) Len() int { return len(b.data) }

// Bytes returns the buffer's contents. The slice aliases the Buffer's
// storage and is invalidated by the next mutating call.
func (b *Buffer) Bytes() []byte { return b.data }

// Reset empties the buffer without releasing its backing array.
func (b *Buffer) Reset() { b.data = b.data[:0] }

// Grow ensures at least n more bytes can be appended without reallocating.
func (b *Buffer) Grow(n int) {
	if n <= 0 {
		return
	}

	if cap(b.data)-len(b.data) >= n {
		return
	}

	grown := make([]byte, len(b.data), 2*(len(b.data)+n))
	copy(grown, b.data)
	b.data = grown
}

// Append writes p to the end of the buffer.
func (b *Buffer) Append(p []byte) {
	b.Grow(len(p))
	b.data = append(b.data, p...)
}

// AppendByte writes a single byte to the end of the buffer.
func (b *Buffer) AppendByte(v byte) {
	b.Grow(1)
	b.data = append(b.data, v)
}
