package money

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrNegativeAmount = errors.New("money amount cannot be negative")
	ErrDivisionByZero = errors.New("division by zero")
)

// Money is a non-negative currency amount with exactly two fractional
// digits. Every constructor and arithmetic result is rounded half away
// from zero at the cent, so repeated division and percentage math can
// never accumulate sub-cent drift.
type Money struct {
	amount decimal.Decimal
}

// New creates a Money from a decimal, rounding to two fractional digits.
// Returns ErrNegativeAmount when the rounded amount is below zero.
func New(amount decimal.Decimal) (Money, error) {
	rounded := amount.Round(2)
	if rounded.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: rounded}, nil
}

// NewFromFloat creates a Money from a float64 amount.
func NewFromFloat(amount float64) (Money, error) {
	return New(decimal.NewFromFloat(amount))
}

// NewFromString creates a Money from a decimal string like "199.90".
func NewFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", amount, err)
	}
	return New(d)
}

// Zero returns a Money of 0.00.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Add returns m + other, re-rounded through New.
func (m Money) Add(other Money) (Money, error) {
	return New(m.amount.Add(other.amount))
}

// Subtract returns m - other. A result below zero is an error; callers
// that can legitimately go negative must check before subtracting.
func (m Money) Subtract(other Money) (Money, error) {
	return New(m.amount.Sub(other.amount))
}

// Multiply returns m scaled by factor, re-rounded through New.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	return New(m.amount.Mul(factor))
}

// Divide splits m by an integer divisor, rounding the quotient half away
// from zero at the cent. Returns ErrDivisionByZero when divisor is 0.
func (m Money) Divide(divisor int64) (Money, error) {
	if divisor == 0 {
		return Money{}, ErrDivisionByZero
	}
	return New(m.amount.DivRound(decimal.NewFromInt(divisor), 2))
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Equal reports whether the rounded amounts are equal.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is exactly 0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is strictly above 0.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal returns the underlying rounded decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64. Safe for display and JSON:
// two fractional digits always fit a float64 exactly enough.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String formats the amount with two fractional digits, e.g. "100.00".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(2)), nil
}

// UnmarshalJSON decodes a JSON number (or quoted decimal string) and
// applies the same rounding and non-negative check as New.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := New(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer so Money can be written to NUMERIC columns.
func (m Money) Value() (driver.Value, error) {
	return m.amount.StringFixed(2), nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	parsed, err := New(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
