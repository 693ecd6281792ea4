package types

import (
	"context"
	"strings"

	"junkshop/internal/core/apperror"
)

// Unit is the measurement unit an item is goaled, priced, and logged in.
// All logs for one item name share a single unit.
type Unit string

const (
	UnitKg    Unit = "kg"
	UnitPiece Unit = "piece"
	UnitCase  Unit = "case"
)

// Valid reports whether the unit is one of the enumerated values.
func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitPiece, UnitCase:
		return true
	}
	return false
}

// ValidateUnit returns a structured error for an unknown unit.
func ValidateUnit(ctx context.Context, u Unit) error {
	if !u.Valid() {
		return apperror.NewValidation("invalid unit").
			WithDetail("field", "unit").
			WithDetail("value", string(u))
	}
	return nil
}

// PriceTag is the typed form of the composite "amount/unit" wire format used
// by the price catalog ("12.00/kg", "₱1,500.00/piece"). The string form lives
// only at the serialization boundary; everything downstream works with this
// record.
type PriceTag struct {
	Amount Money `json:"amount"`
	Unit   Unit  `json:"unit"`
}

// ParseComposite decodes a composite price string. The raw value is split on
// the first "/", both sides trimmed, and currency symbols plus thousands
// separators stripped from the amount side. A missing or garbage amount
// decodes to zero (same fail-to-zero policy as ParseCurrency); a missing
// separator yields an empty unit.
func ParseComposite(raw string) PriceTag {
	amountPart, unitPart, _ := strings.Cut(raw, "/")
	return PriceTag{
		Amount: ParseCurrency(strings.TrimSpace(amountPart)),
		Unit:   Unit(strings.TrimSpace(unitPart)),
	}
}

// String re-encodes the tag in wire form, two decimals, no currency symbol.
func (p PriceTag) String() string {
	if p.Unit == "" {
		return p.Amount.StringFixed(2)
	}
	return p.Amount.StringFixed(2) + "/" + string(p.Unit)
}

// Format renders the tag for display: "1,500.00 / kg".
func (p PriceTag) Format() string {
	if p.Unit == "" {
		return FormatAmount(p.Amount)
	}
	return FormatAmount(p.Amount) + " / " + string(p.Unit)
}
