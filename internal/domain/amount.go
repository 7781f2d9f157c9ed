package domain

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places an Amount carries.
const AmountScale = 4

var amountFactor = decimal.New(1, AmountScale)

// maxAmountDigits is the number of integer digits in the largest Amount.
const maxAmountDigits = 16

// Amount is a non-negative fixed-point quantity counted in ten-thousandths of a unit.
type Amount uint64

// ParseAmount converts decimal text into an Amount. Digits past the fourth
// decimal place are truncated and negative values clamp to zero.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("ParseAmount: %q: %w", s, ErrInvalidAmount)
	}
	if d.IsNegative() || d.IsZero() {
		return 0, nil
	}

	// Bound the magnitude before scaling so an extreme exponent cannot
	// force a huge rescale. magnitude is the power of ten just above d.
	magnitude := int64(d.Exponent()) + int64(d.NumDigits())
	if magnitude > maxAmountDigits {
		return 0, fmt.Errorf("ParseAmount: %q: %w", s, ErrAmountOverflow)
	}
	if magnitude <= -AmountScale {
		return 0, nil
	}

	units := d.Mul(amountFactor).Truncate(0).BigInt()
	if !units.IsUint64() {
		return 0, fmt.Errorf("ParseAmount: %q: %w", s, ErrAmountOverflow)
	}
	return Amount(units.Uint64()), nil
}

func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -AmountScale)
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(AmountScale)
}

// Add returns a+b, or a and false if the sum does not fit.
func (a Amount) Add(b Amount) (Amount, bool) {
	if b > Amount(math.MaxUint64)-a {
		return a, false
	}
	return a + b, true
}

// Sub returns a-b, or a and false if b exceeds a.
func (a Amount) Sub(b Amount) (Amount, bool) {
	if b > a {
		return a, false
	}
	return a - b, true
}
