// Package money converts decimal amounts to integer cents and back.
//
// All arithmetic in settleup happens on Cents. Decimal text is only parsed at the
// boundary, using shopspring/decimal so that values like "0.1" and "12.345" round
// exactly rather than through binary floating point.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in hundredths of the currency unit.
type Cents int64

var (
	ErrInvalidDecimal = errors.New("invalid decimal amount")
	ErrOutOfRange     = errors.New("amount out of range")
)

// maxAbs bounds a single parsed amount. Sums of many amounts can still exceed
// int64; use Add when accumulating.
var maxAbs = decimal.New(1, 15)

// Limits on decimal text. Rescaling a decimal costs time proportional to its
// exponent, so values like "1e-9999999" are rejected before any arithmetic.
const (
	maxTextLen  = 64
	maxExponent = 30
)

var hundred = decimal.NewFromInt(100)

// Parse converts decimal text ("12.34", "12", "1e2", "-0.005") to cents,
// rounding half away from zero on the third fractional digit.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidDecimal
	}
	if len(s) > maxTextLen {
		return 0, ErrOutOfRange
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	return FromDecimal(d)
}

// FromDecimal rounds d to cents.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return 0, ErrOutOfRange
	}
	if d.Abs().GreaterThanOrEqual(maxAbs) {
		return 0, ErrOutOfRange
	}
	return Cents(d.Round(2).Mul(hundred).IntPart()), nil
}

// Decimal returns the amount as a two-place decimal.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats the amount with exactly two fractional digits.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// MarshalJSON emits a JSON number with exactly two fractional digits.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Min returns the smaller of a and b.
func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// Add returns a+b, or ErrOutOfRange if the result does not fit in Cents.
func Add(a, b Cents) (Cents, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, ErrOutOfRange
	}
	return sum, nil
}

// SplitEvenly divides total into n parts that differ by at most one cent and sum
// to total. Leftover cents go to the first parts.
func SplitEvenly(total Cents, n int) ([]Cents, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of parts must be positive, got %d", n)
	}
	if total < 0 {
		return nil, fmt.Errorf("cannot split negative amount %s", total)
	}

	base := total / Cents(n)
	remainder := total - base*Cents(n)

	parts := make([]Cents, n)
	for i := range parts {
		parts[i] = base
		if Cents(i) < remainder {
			parts[i]++
		}
	}
	return parts, nil
}
