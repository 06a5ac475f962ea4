package codec

import "math"

// EncodeUint8 appends the 1-byte little-endian encoding of v.
func EncodeUint8(buf *Buffer, v uint8) { buf.AppendByte(v) }

// EncodeUint16 appends the 2-byte little-endian encoding of v.
func EncodeUint16(buf *Buffer, v uint16) {
	buf.Append([]byte{byte(v), byte(v >> 8)})
}

// EncodeUint32 appends the 4-byte little-endian encoding of v.
func EncodeUint32(buf *Buffer, v uint32) {
	buf.Append([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// EncodeUint64 appends the 8-byte little-endian encoding of v.
func EncodeUint64(buf *Buffer, v uint64) {
	buf.Append([]byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	})
}

// EncodeInt8 appends the 1-byte little-endian encoding of v.
func EncodeInt8(buf *Buffer, v int8) { EncodeUint8(buf, uint8(v)) }

// EncodeInt16 appends the 2-byte little-endian encoding of v.
func EncodeInt16(buf *Buffer, v int16) { EncodeUint16(buf, uint16(v)) }

// EncodeInt32 appends the 4-byte little-endian encoding of v.
func EncodeInt32(buf *Buffer, v int32) { EncodeUint32(buf, uint32(v)) }

// EncodeInt64 appends the 8-byte little-endian encoding of v.
func EncodeInt64(buf *Buffer, v int64) { EncodeUint64(buf, uint64(v)) }

// EncodeFloat32 appends the 4-byte IEEE-754 little-endian encoding of v.
func EncodeFloat32(buf *Buffer, v float32) { EncodeUint32(buf, math.Float32bits(v)) }

// EncodeFloat64 appends the 8-byte IEEE-754 little-endian encoding of v.
func EncodeFloat64(buf *Buffer, v float64) { EncodeUint64(buf, math.Float64bits(v)) }

// EncodeBool appends a single byte, 1 for true and 0 for false.
func EncodeBool(buf *Buffer, v bool) {
	if v {
		buf.AppendByte(1)
	} else {
		buf.AppendByte(0)
	}
}

// EncodeGUID appends the 16 raw bytes of v.
func EncodeGUID(buf *Buffer, v GUID) { buf.Append(v[:]) }

// EncodeDecimal appends the 16-byte Lo/Mid/Hi/Flags encoding of v.
func EncodeDecimal(buf *Buffer, v Decimal) {
	EncodeUint32(buf, v.Lo)
	EncodeUint32(buf, v.Mid)
	EncodeUint32(buf, v.Hi)
	EncodeUint32(buf, v.Flags)
}

// EncodeString appends the raw UTF-8 bytes of s, without a length prefix.
func EncodeString(buf *Buffer, s string) { buf.Append([]byte(s)) }

// EncodeBytes appends the raw contents of b, without a length prefix.
func EncodeBytes(buf *Buffer, b []byte) { buf.Append(b) }
