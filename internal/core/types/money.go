// Package types provides the engine's value types: monetary amounts,
// fixed-point quantities, and the composite "amount/unit" price tag that
// intake channels use as a wire format.
package types

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// Prefer NewMoneyFromString for exact values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// ParseCurrency extracts a monetary amount from a display string such as
// "₱1,500,000" or " 12.50 ". Currency symbols, spaces, and thousands
// separators are stripped before parsing.
//
// Unparseable, empty, or garbage input yields Zero, never an error. This
// fail-to-zero policy keeps downstream aggregation total-safe and is relied
// on by the aggregator and the ledgers; do not tighten it.
func ParseCurrency(raw string) Money {
	cleaned := stripNonNumeric(raw)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// stripNonNumeric keeps digits and decimal points only. Thousands separators,
// currency symbols, and whitespace all fall away; a minus sign is dropped too,
// matching the intake channels which never encode negative amounts.
func stripNonNumeric(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// amountPrinter renders en-US grouping ("1,500,000.00").
var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders a monetary amount with exactly two decimal places and
// locale thousands separators. Inverse of ParseCurrency at the display boundary.
func FormatAmount(m Money) string {
	f, _ := m.Round(2).Float64()
	return amountPrinter.Sprintf("%.2f", f)
}
