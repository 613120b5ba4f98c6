// Package money provides exact monetary arithmetic for quote pricing.
// NEVER use float64 for money calculations.
package money

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money represents a USD amount with full precision. Intermediate pricing
// arithmetic stays in Money; rounding to whole dollars happens once, at the
// end of the pipeline, via RoundDollars.
type Money struct {
	amount decimal.Decimal
}

// FromInt creates Money from whole dollars
func FromInt(dollars int64) Money {
	return Money{amount: decimal.NewFromInt(dollars)}
}

// FromString creates Money from a decimal string
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: d}, nil
}

// FromDecimal creates Money from a decimal
func FromDecimal(d decimal.Decimal) Money {
	return Money{amount: d}
}

// Zero creates zero money
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Decimal returns the underlying decimal amount
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Add adds two amounts
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub subtracts an amount
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt multiplies by an integer count
func (m Money) MulInt(n int64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(n))}
}

// Mul multiplies by a scalar
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// Cmp compares two amounts: -1 if m < other, 0 if equal, 1 if m > other
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// LessThan reports whether m < other
func (m Money) LessThan(other Money) bool {
	return m.amount.Cmp(other.amount) < 0
}

// GreaterThan reports whether m > other
func (m Money) GreaterThan(other Money) bool {
	return m.amount.Cmp(other.amount) > 0
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive returns true if the amount is strictly positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// RoundDollars rounds half away from zero to whole dollars
func (m Money) RoundDollars() int64 {
	return m.amount.Round(0).IntPart()
}

// String returns the raw decimal string (full precision)
func (m Money) String() string {
	return m.amount.String()
}

// StringFixed returns the amount with two decimal places
func (m Money) StringFixed() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON encodes the amount as a JSON number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}

// UnmarshalJSON decodes a JSON number or numeric string
func (m *Money) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.amount = d
		return nil
	}

	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d, err := decimal.NewFromString(raw.String())
	if err != nil {
		return err
	}
	m.amount = d
	return nil
}
