package codec

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// Uint128 is an unsigned 128-bit integer stored as two 64-bit halves.
//
// The wire format writes the low half first, little-endian, which matches
// the layout used throughout the protocol for amounts and supplies. The
// arithmetic here is only what amount parsing and formatting need: add,
// multiply and divide by a small uint64, and comparison. Arbitrary-precision
// libraries are deliberately avoided.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// U128From64 widens a uint64 to a Uint128.
func U128From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// IsZero reports whether v == 0.
func (v Uint128) IsZero() bool {
	return v.Lo == 0 && v.Hi == 0
}

// Cmp returns -1, 0 or 1 depending on whether v is less than, equal to,
// or greater than o.
func (v Uint128) Cmp(o Uint128) int {
	switch {
	case v.Hi != o.Hi:
		if v.Hi < o.Hi {
			return -1
		}
		return 1
	case v.Lo != o.Lo:
		if v.Lo < o.Lo {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Add64 returns v + x and whether the addition overflowed 128 bits.
func (v Uint128) Add64(x uint64) (Uint128, bool) {
	lo, carry := bits.Add64(v.Lo, x, 0)
	hi, carry := bits.Add64(v.Hi, 0, carry)
	return Uint128{Lo: lo, Hi: hi}, carry != 0
}

// Add returns v + o and whether the addition overflowed 128 bits.
func (v Uint128) Add(o Uint128) (Uint128, bool) {
	lo, carry := bits.Add64(v.Lo, o.Lo, 0)
	hi, carry := bits.Add64(v.Hi, o.Hi, carry)
	return Uint128{Lo: lo, Hi: hi}, carry != 0
}

// Mul64 returns v * m and whether the product overflowed 128 bits.
func (v Uint128) Mul64(m uint64) (Uint128, bool) {
	hi1, lo := bits.Mul64(v.Lo, m)
	hi2, lo2 := bits.Mul64(v.Hi, m)
	if hi2 != 0 {
		return Uint128{}, true
	}
	hi, carry := bits.Add64(lo2, hi1, 0)
	return Uint128{Lo: lo, Hi: hi}, carry != 0
}

// Div64 returns the quotient v / d and the remainder v % d.
// d must be non-zero; a zero divisor panics like native integer division.
func (v Uint128) Div64(d uint64) (Uint128, uint64) {
	qHi := v.Hi / d
	rHi := v.Hi % d
	qLo, rem := bits.Div64(rHi, v.Lo, d)
	return Uint128{Lo: qLo, Hi: qHi}, rem
}

// Bytes returns the 16-byte little-endian wire encoding: low half first.
func (v Uint128) Bytes() [16]byte {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], v.Lo)
	binary.LittleEndian.PutUint64(out[8:16], v.Hi)
	return out
}

// U128FromBytes decodes the 16-byte little-endian wire encoding.
func U128FromBytes(b [16]byte) Uint128 {
	return Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:8]),
		Hi: binary.LittleEndian.Uint64(b[8:16]),
	}
}

// String renders v in decimal.
func (v Uint128) String() string {
	if v.IsZero() {
		return "0"
	}
	// 2^128-1 has 39 decimal digits.
	var digits [39]byte
	i := len(digits)
	for !v.IsZero() {
		var rem uint64
		v, rem = v.Div64(10)
		i--
		digits[i] = byte('0' + rem)
	}
	return string(digits[i:])
}

// ParseUint128 parses a non-negative decimal integer string.
func ParseUint128(s string) (Uint128, error) {
	if s == "" {
		return Uint128{}, fmt.Errorf("empty integer string")
	}
	var v Uint128
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return Uint128{}, fmt.Errorf("invalid decimal digit %q", c)
		}
		var over bool
		v, over = v.Mul64(10)
		if over {
			return Uint128{}, fmt.Errorf("integer %q overflows 128 bits", s)
		}
		v, over = v.Add64(uint64(c - '0'))
		if over {
			return Uint128{}, fmt.Errorf("integer %q overflows 128 bits", s)
		}
	}
	return v, nil
}
