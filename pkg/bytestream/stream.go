// Package bytestream implements a seekable, randomly addressable byte stream
// backed by a dynamically grown array of fixed-size chunks, suitable as the
// backing store for a virtual memory manager (see pkg/vmem) or any other
// consumer that wants sparse, zero-filled growth past the current logical
// end without materializing the gap.
package bytestream

import (
	"errors"
	"io"
)

// ErrNegativeSeek is returned by Seek when the resulting absolute position
// would be negative. It is the only failure mode this stream has: reads clip
// to length, writes and SetLength grow freely.
var ErrNegativeSeek = errors.New("bytestream: negative seek position")

// DefaultChunkShift selects 2^17 = 131072 bytes per chunk, comfortably above
// a typical large-object allocation threshold so that growing the stream
// allocates few, large chunks rather than many small ones.
const DefaultChunkShift = 17

const minChunks = 8

// Stream is a seekable read/write byte stream over an array of fixed-size
// chunks. A chunk slot may be nil, representing a run of logical zero bytes
// that has never been written; Read synthesizes zeros for it without
// allocating, and Write allocates it lazily on first touch.
//
// The zero value is not ready to use; construct with [New] or [NewShift].
type Stream struct {
	chunks    []*[]byte
	chunkSize int
	shift     uint
	mask      int64

	length   int64
	position int64
}

var (
	_ io.Reader      = (*Stream)(nil)
	_ io.Writer      = (*Stream)(nil)
	_ io.Seeker      = (*Stream)(nil)
	_ io.ReaderAt    = (*Stream)(nil)
	_ io.WriterAt    = (*Stream)(nil)
	_ io.ReadWriteSeeker = (*Stream)(nil)
)

// New returns an empty Stream using [DefaultChunkShift].
func New() *Stream { return NewShift(DefaultChunkShift) }

// NewShift returns an empty Stream whose chunk size is 2^shift bytes.
func NewShift(shift uint) *Stream {
	return &Stream{
		chunkSize: 1 << shift,
		shift:     shift,
		mask:      (1 << shift) - 1,
		chunks:    make([]*[]byte, minChunks),
	}
}

// Len returns the logical length of the stream.
func (s *Stream) Len() int64 { return s.length }

// Position returns the current read/write cursor.
func (s *Stream) Position() int64 { return s.position }

// Capacity returns the number of bytes addressable by the current chunk
// array without it needing to grow.
func (s *Stream) Capacity() int64 { return int64(len(s.chunks)) * int64(s.chunkSize) }

func (s *Stream) chunkIndex(pos int64) int { return int(pos >> s.shift) }
func (s *Stream) chunkOffset(pos int64) int64 { return pos & s.mask }

// Read implements io.Reader, clipping to the logical length.
func (s *Stream) Read(p []byte) (n int, err error) {
	if s.position >= s.length {
		return 0, io.EOF
	}

	n, err = s.readAt(p, s.position)
	s.position += int64(n)

	if n > 0 && err == io.EOF {
		err = nil
	}

	return n, err
}

// ReadAt implements io.ReaderAt without moving the stream's cursor.
func (s *Stream) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeSeek
	}

	if off >= s.length {
		return 0, io.EOF
	}

	return s.readAt(p, off)
}

func (s *Stream) readAt(p []byte, pos int64) (int, error) {
	requested := len(p)

	avail := s.length - pos
	if int64(len(p)) > avail {
		p = p[:avail]
	}

	var n int
	for n < len(p) {
		idx := s.chunkIndex(pos)
		off := s.chunkOffset(pos)
		want := int64(len(p) - n)
		if room := int64(s.chunkSize) - off; want > room {
			want = room
		}

		if idx < len(s.chunks) && s.chunks[idx] != nil {
			copy(p[n:int64(n)+want], (*s.chunks[idx])[off:off+want])
		} else {
			clear(p[n : int64(n)+want])
		}

		n += int(want)
		pos += want
	}

	if n < requested {
		return n, io.EOF
	}

	return n, nil
}

// Write implements io.Writer, growing the logical length and, if necessary,
// the chunk array.
func (s *Stream) Write(p []byte) (n int, err error) {
	n, err = s.WriteAt(p, s.position)
	s.position += int64(n)

	return n, err
}

// WriteAt implements io.WriterAt without moving the stream's cursor.
func (s *Stream) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeSeek
	}

	end := off + int64(len(p))
	s.reserve(end)

	var n int
	pos := off
	for n < len(p) {
		idx := s.chunkIndex(pos)
		o := s.chunkOffset(pos)
		want := int64(len(p) - n)
		if room := int64(s.chunkSize) - o; want > room {
			want = room
		}

		chunk := s.ensureChunk(idx)
		copy((*chunk)[o:o+want], p[n:int64(n)+want])

		n += int(want)
		pos += want
	}

	if end > s.length {
		s.length = end
	}

	return n, nil
}

// ensureChunk lazily allocates chunk idx (zero-filled by make's default) and
// returns it.
func (s *Stream) ensureChunk(idx int) *[]byte {
	if s.chunks[idx] == nil {
		c := make([]byte, s.chunkSize)
		s.chunks[idx] = &c
	}

	return s.chunks[idx]
}

// reserve grows the chunk array, doubling, until it can address byte end-1.
func (s *Stream) reserve(end int64) {
	if end <= 0 {
		return
	}

	need := s.chunkIndex(end-1) + 1
	if need <= len(s.chunks) {
		return
	}

	grown := len(s.chunks)
	for grown < need {
		grown *= 2
	}

	next := make([]*[]byte, grown)
	copy(next, s.chunks)
	s.chunks = next
}

// Seek implements io.Seeker. Only a negative resulting absolute position is
// an error; seeking past the logical end is legal and the gap is zero-filled
// lazily on the next write.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var base int64

	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = s.position
	case io.SeekEnd:
		base = s.length
	default:
		return 0, errors.New("bytestream: invalid whence")
	}

	pos := base + offset
	if pos < 0 {
		return 0, ErrNegativeSeek
	}

	s.position = pos

	return pos, nil
}

// SetLength grows or shrinks the logical length of the stream.
//
// Growing zero-fills the newly reachable range lazily (no chunks are
// allocated by the grow itself). Shrinking releases chunks entirely beyond
// the new length, and halves the chunk array (down to a floor of minChunks)
// while no more than a quarter of its slots are in use.
func (s *Stream) SetLength(n int64) error {
	if n < 0 {
		return ErrNegativeSeek
	}

	if n >= s.length {
		s.length = n
		return nil
	}

	keep := 0
	if n > 0 {
		keep = s.chunkIndex(n-1) + 1
	}

	for i := keep; i < len(s.chunks); i++ {
		s.chunks[i] = nil
	}

	s.length = n
	if s.position > n {
		s.position = n
	}

	s.shrinkChunks(keep)

	return nil
}

func (s *Stream) shrinkChunks(used int) {
	for len(s.chunks) > minChunks && used <= len(s.chunks)/4 {
		half := len(s.chunks) / 2
		if half < minChunks {
			half = minChunks
		}
		if half == len(s.chunks) {
			break
		}

		s.chunks = s.chunks[:half]
	}
}

// ToArray materializes the entire logical contents as a single contiguous
// slice.
func (s *Stream) ToArray() []byte {
	out := make([]byte, s.length)

	_, _ = s.readAt(out, 0)

	return out
}
