// Package core provides money parsing and handling utilities.
//
// Amounts are kept as signed integer cents so that sums are exact; decimal
// parsing goes through shopspring/decimal and display formatting through
// Rhymond/go-money.
package core

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used for display when none is configured.
const DefaultCurrency = money.BRL

// Money is a signed amount in cents.
type Money struct {
	Cents int64 `json:"cents"`
}

// MaxAmountCents bounds a single amount at 100 billion major units. Sums of
// up to 900k such amounts stay within int64, so totals never wrap.
const MaxAmountCents int64 = 1e13

var maxCents = decimal.NewFromInt(MaxAmountCents)

// ParseAmount converts user input into a positive amount in cents.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, ignores a
// leading sign (the magnitude is what counts) and rounds half away from zero
// to the cent. Values that round to zero cents or exceed MaxAmountCents are
// rejected.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234
//	ParseAmount("12,345") -> 1235
//	ParseAmount("-400")   -> 40000
//	ParseAmount("0.004")  -> ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Abs().Shift(2).Round(0)
	if cents.IsZero() || cents.GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

func (m Money) Add(n Money) Money { return Money{Cents: m.Cents + n.Cents} }
func (m Money) Neg() Money        { return Money{Cents: -m.Cents} }
func (m Money) IsZero() bool      { return m.Cents == 0 }
func (m Money) IsPositive() bool  { return m.Cents > 0 }
func (m Money) IsNegative() bool  { return m.Cents < 0 }

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return m.Neg()
	}
	return m
}

// Units returns the value in major units for charting. Use Cents for any
// arithmetic.
func (m Money) Units() float64 {
	return decimal.New(m.Cents, -2).InexactFloat64()
}

// Format renders m in the given ISO currency, e.g. "R$10,00" for BRL.
func (m Money) Format(currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return money.New(m.Cents, currency).Display()
}

// KnownCurrency reports whether code is an ISO currency go-money can format.
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
