package codec

// Kind enumerates the closed set of primitive element kinds the codec
// supports. It exists so that type-erased callers (debug dumps, generic
// container diagnostics) can dispatch on a fixed tag instead of reflecting
// over a Go type. DecodeAt handles every Kind (DateTime and Duration decode
// as int64). EncodeValue dispatches on the Go type of its argument instead
// and has no case for time.Time or time.Duration values, so it covers every
// Kind except DateTime and Duration.
type Kind uint8

const (
	KindUint8 Kind = iota
	KindUint16
	KindUint32
	KindUint64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindBool
	KindGUID
	KindDecimal
	KindDateTime
	KindDuration
	KindString
	KindBytes
)

// Size returns the fixed encoded size in bytes for fixed-width kinds, and -1
// for the variable-width String/Bytes kinds.
func (k Kind) Size() int {
	switch k {
	case KindUint8, KindInt8, KindBool:
		return 1
	case KindUint16, KindInt16:
		return 2
	case KindUint32, KindInt32, KindFloat32:
		return 4
	case KindUint64, KindInt64, KindFloat64, KindDateTime, KindDuration:
		return 8
	case KindGUID, KindDecimal:
		return 16
	default:
		return -1
	}
}

func (k Kind) String() string {
	switch k {
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindGUID:
		return "guid"
	case KindDecimal:
		return "decimal"
	case KindDateTime:
		return "datetime"
	case KindDuration:
		return "duration"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// EncodeValue appends the fixed encoding of v to buf, dispatching on v's
// concrete type. It panics if v is not one of the kinds this package
// supports; the panic is a programmer error (an unregistered Go type), not a
// data error, so it is not surfaced as an error return.
func EncodeValue(buf *Buffer, v any) {
	switch x := v.(type) {
	case uint8:
		EncodeUint8(buf, x)
	case uint16:
		EncodeUint16(buf, x)
	case uint32:
		EncodeUint32(buf, x)
	case uint64:
		EncodeUint64(buf, x)
	case int8:
		EncodeInt8(buf, x)
	case int16:
		EncodeInt16(buf, x)
	case int32:
		EncodeInt32(buf, x)
	case int64:
		EncodeInt64(buf, x)
	case float32:
		EncodeFloat32(buf, x)
	case float64:
		EncodeFloat64(buf, x)
	case bool:
		EncodeBool(buf, x)
	case GUID:
		EncodeGUID(buf, x)
	case Decimal:
		EncodeDecimal(buf, x)
	case string:
		EncodeString(buf, x)
	case []byte:
		EncodeBytes(buf, x)
	default:
		panic("codec: unsupported value type for EncodeValue")
	}
}
