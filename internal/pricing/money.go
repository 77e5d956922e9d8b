package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a sterling amount held as an exact decimal. Values built through
// this package are rounded to pence.
type Money struct {
	d decimal.Decimal
}

// Zero is £0.00.
var Zero = Money{d: decimal.Zero}

// NewMoney rounds d to pence.
func NewMoney(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

// MoneyFromFloat converts a float price, rounding to pence.
func MoneyFromFloat(f float64) Money {
	return NewMoney(decimal.NewFromFloat(f))
}

// ParseMoney parses a decimal string such as "19.52". A leading "£" is accepted.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "£"))
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return NewMoney(d), nil
}

// MustMoney is ParseMoney for constants. It panics on malformed input.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal exposes the underlying value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Float64 returns the amount as a float for config and file encoding.
func (m Money) Float64() float64 {
	return m.d.InexactFloat64()
}

// Mul returns the cost of qty units at price m.
func (m Money) Mul(qty int) Money {
	return NewMoney(m.d.Mul(decimal.NewFromInt(int64(qty))))
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return NewMoney(m.d.Add(o.d))
}

// IsZero reports whether the amount is £0.00.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// Equal compares amounts by value.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// String formats with exactly two decimal places, e.g. "12.30".
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// Pound formats with the currency symbol, e.g. "£12.30".
func (m Money) Pound() string {
	return "£" + m.String()
}

// MarshalJSON writes the amount as a JSON number with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
