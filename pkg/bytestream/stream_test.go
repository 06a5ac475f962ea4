package bytestream_test

import (
	"io"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "github.com/flowkit/ordertree/pkg/bytestream"
)

func TestWriteSeekReadRoundTrip(t *testing.T) {
	Convey("Given a fresh stream", t, func() {
		s := NewShift(4) // 16-byte chunks, to exercise chunk boundaries cheaply

		Convey("Writing then reading from the start returns the same bytes", func() {
			data := make([]byte, 500)
			for i := range data {
				data[i] = byte(i)
			}

			n, err := s.Write(data)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, len(data))
			So(s.Len(), ShouldEqual, int64(len(data)))

			_, err = s.Seek(0, io.SeekStart)
			So(err, ShouldBeNil)

			got := make([]byte, len(data))
			n, err = io.ReadFull(s, got)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, len(data))
			So(got, ShouldResemble, data)
		})
	})
}

func TestPastEndWrite(t *testing.T) {
	Convey("Given a fresh stream", t, func() {
		s := New()

		Convey("Seeking far past the end then writing grows length and zero-fills the gap", func() {
			_, err := s.Seek(1_000_000, io.SeekStart)
			So(err, ShouldBeNil)

			n, err := s.Write([]byte{1, 2, 3})
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)
			So(s.Len(), ShouldEqual, int64(1_000_003))

			gap := make([]byte, 1_000_000)
			gotGap, err := ReadAllAt(s, 0, gap)
			So(err, ShouldBeNil)
			So(gotGap, ShouldEqual, 1_000_000)
			for _, b := range gap {
				So(b, ShouldEqual, 0)
			}

			tail := make([]byte, 3)
			n, err = s.ReadAt(tail, 1_000_000)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 3)
			So(tail, ShouldResemble, []byte{1, 2, 3})
		})
	})
}

func TestSetLengthGrowAndShrink(t *testing.T) {
	Convey("Given a stream with some data written", t, func() {
		s := NewShift(4)
		_, _ = s.Write([]byte{1, 2, 3, 4, 5})

		Convey("Shrinking the length then reading past it returns 0 bytes, io.EOF", func() {
			So(s.SetLength(2), ShouldBeNil)
			So(s.Len(), ShouldEqual, int64(2))

			_, err := s.Seek(0, io.SeekStart)
			So(err, ShouldBeNil)

			buf := make([]byte, 10)
			n, err := s.Read(buf)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)

			n, err = s.Read(buf)
			So(n, ShouldEqual, 0)
			So(err, ShouldEqual, io.EOF)
		})

		Convey("Growing the length exposes zero bytes without writing them", func() {
			So(s.SetLength(100), ShouldBeNil)

			buf := make([]byte, 10)
			n, err := s.ReadAt(buf, 50)
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 10)
			for _, b := range buf {
				So(b, ShouldEqual, 0)
			}
		})
	})
}

func TestNegativeSeekFails(t *testing.T) {
	Convey("Given a fresh stream", t, func() {
		s := New()

		Convey("Seeking to a negative absolute position fails", func() {
			_, err := s.Seek(-1, io.SeekStart)
			So(err, ShouldEqual, ErrNegativeSeek)
		})
	})
}

// ReadAllAt is a small test helper that fills buf completely from offset off,
// tolerating io.EOF only at exactly the end of the stream's content.
func ReadAllAt(s *Stream, off int64, buf []byte) (int, error) {
	n, err := s.ReadAt(buf, off)
	if err == io.EOF && n == len(buf) {
		err = nil
	}

	return n, err
}
