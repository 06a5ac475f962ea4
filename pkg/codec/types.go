package codec

import "fmt"

// GUID is a 16-byte globally unique identifier, encoded and decoded as raw
// bytes with no byte-order shuffling (unlike the historical Windows GUID
// wire format, which mixes little- and big-endian fields).
type GUID [16]byte

func (g GUID) String() string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", g[0:4], g[4:6], g[6:8], g[8:10], g[10:16])
}

// Decimal is a fixed-point 16-byte decimal, modeled on the four-field layout
// (96-bit mantissa split into Lo/Mid/Hi plus a Flags word carrying sign and
// scale) used by every runtime that needs an exact base-10 scalar wider than
// a float. This package only encodes/decodes the bit pattern; it is not a
// decimal arithmetic library (see spec Non-goals).
type Decimal struct {
	Lo, Mid, Hi uint32
	Flags       uint32
}

// Scale returns the number of digits after the decimal point, encoded in
// bits 16-23 of Flags.
func (d Decimal) Scale() uint8 { return uint8(d.Flags >> 16) }

// Negative returns true if the sign bit (bit 31 of Flags) is set.
func (d Decimal) Negative() bool { return d.Flags&0x8000_0000 != 0 }
