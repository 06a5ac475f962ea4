package codec

import (
	"math"

	"github.com/flowkit/ordertree/pkg/untrust"
)

// DecodeUint8 reads a 1-byte little-endian uint8 from r.
func DecodeUint8(r *untrust.Reader) (uint8, error) { return r.ReadByte() }

// DecodeUint16 reads a 2-byte little-endian uint16 from r.
func DecodeUint16(r *untrust.Reader) (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}

	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// DecodeUint32 reads a 4-byte little-endian uint32 from r.
func DecodeUint32(r *untrust.Reader) (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// DecodeUint64 reads an 8-byte little-endian uint64 from r.
func DecodeUint64(r *untrust.Reader) (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}

	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v, nil
}

// DecodeInt8 reads a 1-byte little-endian int8 from r.
func DecodeInt8(r *untrust.Reader) (int8, error) {
	v, err := DecodeUint8(r)
	return int8(v), err
}

// DecodeInt16 reads a 2-byte little-endian int16 from r.
func DecodeInt16(r *untrust.Reader) (int16, error) {
	v, err := DecodeUint16(r)
	return int16(v), err
}

// DecodeInt32 reads a 4-byte little-endian int32 from r.
func DecodeInt32(r *untrust.Reader) (int32, error) {
	v, err := DecodeUint32(r)
	return int32(v), err
}

// DecodeInt64 reads an 8-byte little-endian int64 from r.
func DecodeInt64(r *untrust.Reader) (int64, error) {
	v, err := DecodeUint64(r)
	return int64(v), err
}

// DecodeFloat32 reads a 4-byte IEEE-754 little-endian float32 from r.
func DecodeFloat32(r *untrust.Reader) (float32, error) {
	v, err := DecodeUint32(r)
	return math.Float32frombits(v), err
}

// DecodeFloat64 reads an 8-byte IEEE-754 little-endian float64 from r.
func DecodeFloat64(r *untrust.Reader) (float64, error) {
	v, err := DecodeUint64(r)
	return math.Float64frombits(v), err
}

// DecodeBool reads a single byte and reports it as a bool (nonzero is true).
func DecodeBool(r *untrust.Reader) (bool, error) {
	v, err := r.ReadByte()
	return v != 0, err
}

// DecodeGUID reads the 16 raw bytes of a GUID.
func DecodeGUID(r *untrust.Reader) (GUID, error) {
	b, err := r.ReadBytes(16)
	if err != nil {
		return GUID{}, err
	}

	var g GUID
	copy(g[:], b)

	return g, nil
}

// DecodeDecimal reads the 16-byte Lo/Mid/Hi/Flags encoding of a Decimal.
func DecodeDecimal(r *untrust.Reader) (Decimal, error) {
	lo, err := DecodeUint32(r)
	if err != nil {
		return Decimal{}, err
	}

	mid, err := DecodeUint32(r)
	if err != nil {
		return Decimal{}, err
	}

	hi, err := DecodeUint32(r)
	if err != nil {
		return Decimal{}, err
	}

	flags, err := DecodeUint32(r)
	if err != nil {
		return Decimal{}, err
	}

	return Decimal{Lo: lo, Mid: mid, Hi: hi, Flags: flags}, nil
}

// DecodeString reads n raw bytes from r and returns them as a UTF-8 string.
func DecodeString(r *untrust.Reader, n int) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(b.AsSliceLessSafe()), nil
}

// DecodeBytes reads n raw bytes from r.
func DecodeBytes(r *untrust.Reader, n int) ([]byte, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}

	return b.Clone().AsSliceLessSafe(), nil
}

// DecodeAt is the offset/length entry point named by the spec:
// decode(bytes, offset, length) -> value. It validates offset and length
// before touching data, then decodes a single value of the given kind
// starting at offset. For KindString/KindBytes, length is the number of
// payload bytes to read; for fixed-width kinds, length must equal
// kind.Size() (or be omitted by passing kind.Size()).
func DecodeAt(data []byte, offset, length int, kind Kind) (any, error) {
	if offset < 0 || length < 0 {
		return nil, ErrInvalidArgument
	}

	if offset > len(data) || offset+length > len(data) {
		return nil, untrust.ErrEndOfInput
	}

	r := untrust.NewReader(untrust.Input(data[offset:]))

	switch kind {
	case KindUint8:
		return DecodeUint8(r)
	case KindUint16:
		return DecodeUint16(r)
	case KindUint32:
		return DecodeUint32(r)
	case KindUint64:
		return DecodeUint64(r)
	case KindInt8:
		return DecodeInt8(r)
	case KindInt16:
		return DecodeInt16(r)
	case KindInt32:
		return DecodeInt32(r)
	case KindInt64:
		return DecodeInt64(r)
	case KindFloat32:
		return DecodeFloat32(r)
	case KindFloat64:
		return DecodeFloat64(r)
	case KindBool:
		return DecodeBool(r)
	case KindGUID:
		return DecodeGUID(r)
	case KindDecimal:
		return DecodeDecimal(r)
	case KindDateTime:
		return DecodeInt64(r)
	case KindDuration:
		return DecodeInt64(r)
	case KindString:
		return DecodeString(r, length)
	case KindBytes:
		return DecodeBytes(r, length)
	default:
		panic("codec: unsupported kind for DecodeAt")
	}
}
