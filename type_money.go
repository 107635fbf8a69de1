package subwise

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a currency. Amounts in different currencies never mix.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in currency.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: strings.ToUpper(currency)}
}

// KnownCurrency reports whether code is an ISO 4217 currency code.
func KnownCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// String returns the amount formatted with the currency symbol and fraction digits, for instance
// "$1,234.50". Unknown currencies fall back to "1234.50 XYZ".
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return m.value.StringFixed(2) + " " + m.cur
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString returns the formatted amount with an explicit sign. 0 is represented as "-".
func (m Money) SignedString() string {
	switch {
	case m.value.IsZero():
		return "-"
	case m.value.IsPositive():
		return "+" + m.String()
	default:
		return m.String()
	}
}

func (m Money) Currency() string       { return m.cur }
func (m Money) Value() decimal.Decimal { return m.value }
func (m Money) IsZero() bool           { return m.value.IsZero() }
func (m Money) IsNegative() bool       { return m.value.IsNegative() }
func (m Money) Equal(n Money) bool     { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Neg() Money             { return Money{value: m.value.Neg(), cur: m.cur} }
