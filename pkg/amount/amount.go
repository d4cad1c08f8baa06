// Package amount converts between human-readable decimal strings and raw
// 128-bit amounts in the asset's smallest unit.
//
// Every form and display surface goes through these two functions, so they
// are the single place where decimal precision is decided. Parsing truncates
// excess fractional digits rather than rounding: "1.2345" at 3 decimals
// yields 1234, not 1235. Formatting produces the canonical shortest form
// (no trailing zeros, no trailing decimal point), and satisfies
// Parse(Format(x)) == x for every representable x.
package amount

import (
	"fmt"
	"strings"

	"github.com/meridian-labs/meridian-sdk/pkg/codec"
)

// DefaultDecimals is the protocol's native asset precision.
const DefaultDecimals = 12

// MaxDecimals bounds the decimals value so 10^decimals fits in a uint64.
const MaxDecimals = 19

// pow10 returns 10^n for n <= MaxDecimals.
func pow10(n uint8) (uint64, error) {
	if n > MaxDecimals {
		return 0, fmt.Errorf("decimals %d exceeds maximum %d", n, MaxDecimals)
	}
	p := uint64(1)
	for i := uint8(0); i < n; i++ {
		p *= 10
	}
	return p, nil
}

// Parse converts a decimal string to a raw amount in the smallest unit.
//
// Accepted forms: "123", "1.5", "0.000001", ".5". Fractional digits beyond
// the decimals precision are truncated. Negative values, empty strings,
// multiple decimal points, non-digit characters and 128-bit overflow are
// all rejected.
func Parse(s string, decimals uint8) (codec.Uint128, error) {
	scale, err := pow10(decimals)
	if err != nil {
		return codec.Uint128{}, err
	}

	if s == "" || s == "." {
		return codec.Uint128{}, fmt.Errorf("empty amount string")
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return codec.Uint128{}, fmt.Errorf("amount %q has multiple decimal points", s)
		}
	}

	// Integer part, scaled to the smallest unit.
	var value codec.Uint128
	for _, c := range []byte(intPart) {
		if c < '0' || c > '9' {
			return codec.Uint128{}, fmt.Errorf("amount %q contains invalid character %q", s, c)
		}
		var over bool
		value, over = value.Mul64(10)
		if over {
			return codec.Uint128{}, fmt.Errorf("amount %q overflows 128 bits", s)
		}
		value, over = value.Add64(uint64(c - '0'))
		if over {
			return codec.Uint128{}, fmt.Errorf("amount %q overflows 128 bits", s)
		}
	}
	value, over := value.Mul64(scale)
	if over {
		return codec.Uint128{}, fmt.Errorf("amount %q overflows 128 bits", s)
	}

	// Fractional part: validate every supplied character, then truncate
	// beyond precision and right-pad to precision. Truncation only ever
	// drops digits; garbage past the precision still fails.
	for _, c := range []byte(fracPart) {
		if c < '0' || c > '9' {
			return codec.Uint128{}, fmt.Errorf("amount %q contains invalid character %q", s, c)
		}
	}
	if len(fracPart) > int(decimals) {
		fracPart = fracPart[:decimals]
	}
	var frac uint64
	for _, c := range []byte(fracPart) {
		frac = frac*10 + uint64(c-'0')
	}
	for i := len(fracPart); i < int(decimals); i++ {
		frac *= 10
	}

	value, over = value.Add64(frac)
	if over {
		return codec.Uint128{}, fmt.Errorf("amount %q overflows 128 bits", s)
	}
	return value, nil
}

// Format converts a raw amount in the smallest unit to its canonical
// decimal string. Decimals beyond MaxDecimals are rejected, same as Parse;
// token definitions arriving off the wire can carry any uint8 there.
func Format(v codec.Uint128, decimals uint8) (string, error) {
	scale, err := pow10(decimals)
	if err != nil {
		return "", err
	}
	if decimals == 0 {
		return v.String(), nil
	}

	whole, rem := v.Div64(scale)
	if rem == 0 {
		return whole.String(), nil
	}

	frac := fmt.Sprintf("%0*d", decimals, rem)
	frac = strings.TrimRight(frac, "0")
	return whole.String() + "." + frac, nil
}
