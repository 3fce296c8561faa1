package jetton

import (
	"fmt"
	"math/big"
	"strings"
)

// Fixed-point limits.
const (
	// MaxDecimals bounds the decimals argument of the conversions.
	MaxDecimals = 255

	// TONDecimals is the precision of native TON amounts.
	TONDecimals = 9
)

// ToFixedPoint converts a decimal string to an integer count of base units,
// scaling by 10^decimals. One leading '-' is accepted. A fractional part with
// more than decimals digits is rejected rather than rounded.
func ToFixedPoint(s string, decimals int) (*big.Int, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return nil, fmt.Errorf("%w: decimals %d out of range", ErrInvalidNumber, decimals)
	}

	digits := s
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	if digits == "" || digits == "." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	whole, frac, _ := strings.Cut(digits, ".")
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidNumber, s, decimals)
	}

	v, ok := new(big.Int).SetString(whole+frac+strings.Repeat("0", decimals-len(frac)), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if negative {
		v.Neg(v)
	}
	return v, nil
}

// FromFixedPoint formats base units as a decimal string with trailing
// fractional zeros trimmed.
func FromFixedPoint(v *big.Int, decimals int) (string, error) {
	if decimals < 0 || decimals > MaxDecimals {
		return "", fmt.Errorf("%w: decimals %d out of range", ErrInvalidNumber, decimals)
	}
	if v == nil {
		v = new(big.Int)
	}

	digits := new(big.Int).Abs(v).String()
	if pad := decimals + 1 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	whole := digits[:len(digits)-decimals]
	frac := strings.TrimRight(digits[len(digits)-decimals:], "0")

	out := whole
	if frac != "" {
		out += "." + frac
	}
	if v.Sign() < 0 {
		out = "-" + out
	}
	return out, nil
}

// ToNano converts a TON amount to nanotons.
func ToNano(s string) (*big.Int, error) {
	return ToFixedPoint(s, TONDecimals)
}

// FromNano formats nanotons as a TON amount.
func FromNano(v *big.Int) string {
	s, _ := FromFixedPoint(v, TONDecimals)
	return s
}

// MustToNano is like ToNano but panics on error.
func MustToNano(s string) *big.Int {
	v, err := ToNano(s)
	if err != nil {
		panic(err)
	}
	return v
}

// isDigits reports whether s holds only ASCII digits. Empty is allowed.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
