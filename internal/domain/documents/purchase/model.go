// Package purchase provides the drop-off intake document: a seller brings
// material to a branch and operators record the bought lines. Bought material
// is not processed material; the processed register is fed separately once
// items actually go through processing.
package purchase

import (
	"context"
	"strings"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/entity"
	"junkshop/internal/core/id"
	"junkshop/internal/core/types"
)

// Dropoff is the intake document header plus its purchased lines.
type Dropoff struct {
	entity.Document

	// Seller identity and contact details, captured per visit
	Seller  string `db:"seller" json:"seller"`
	Contact string `db:"contact" json:"contact"`
	Address string `db:"address" json:"address"`
	City    string `db:"city" json:"city"`

	// Lines purchased during this drop-off
	Lines []Line `db:"-" json:"lines"`
}

// Line is one purchased item row. Price, Total and Commission are snapshots
// taken when the line is added; later catalog edits do not change them.
type Line struct {
	// LineID identifies the row independently of the document
	LineID id.ID `db:"id" json:"id"`

	// DropoffID links back to the owning document
	DropoffID id.ID `db:"dropoff_id" json:"dropoffId"`

	// LineNo is the 1-based position within the document
	LineNo int `db:"line_no" json:"lineNo"`

	// Type and Item come from the goal catalog selection
	Type string `db:"type" json:"type"`
	Item string `db:"item" json:"item"`

	// Price per unit at the moment the line was added
	Price types.Money `db:"price" json:"price"`

	// Unit the quantity is measured in
	Unit types.Unit `db:"unit" json:"unit"`

	// Quantity bought
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Total = Price × Quantity, snapshotted
	Total types.Money `db:"total" json:"total"`

	// Commission is the total collector commission for the line
	// (per-unit rate × quantity). Nil means the rate was never captured,
	// which is distinct from a captured zero rate.
	Commission *types.Money `db:"commission" json:"commission,omitempty"`

	// Confirmed marks the line as checked by the operator
	Confirmed bool `db:"confirmed" json:"confirmed"`
}

// New creates an empty drop-off for an organization branch.
func New(organizationID, branch string) *Dropoff {
	doc := entity.NewDocument(organizationID)
	doc.Branch = branch
	return &Dropoff{Document: doc}
}

// LineInput carries the operator's selection for a new line. Price, unit and
// commission rate come from the selected catalog entry.
type LineInput struct {
	Type           string
	Item           string
	Price          types.Money
	Unit           types.Unit
	Quantity       types.Quantity
	CommissionRate *types.Money
	Confirmed      bool
}

// AddLine validates the input, snapshots the derived amounts and appends the
// line. The document keeps its lines in entry order.
func (d *Dropoff) AddLine(in LineInput) (*Line, error) {
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Item) == "" {
		return nil, apperror.NewValidationCode(
			apperror.CodeMissingSelection,
			"select a type and an item before adding the line",
		)
	}

	if !in.Quantity.IsPositive() {
		return nil, apperror.NewValidationCode(
			apperror.CodeNonPositiveQuantity,
			"quantity must be greater than zero",
		).WithDetail("item", in.Item)
	}

	line := Line{
		LineID:    id.New(),
		DropoffID: d.ID,
		LineNo:    len(d.Lines) + 1,
		Type:      strings.TrimSpace(in.Type),
		Item:      strings.TrimSpace(in.Item),
		Price:     in.Price,
		Unit:      in.Unit,
		Quantity:  in.Quantity,
		Total:     in.Price.Mul(in.Quantity.Money()),
		Confirmed: in.Confirmed,
	}

	if in.CommissionRate != nil {
		total := in.CommissionRate.Mul(in.Quantity.Money())
		line.Commission = &total
	}

	d.Lines = append(d.Lines, line)
	return &d.Lines[len(d.Lines)-1], nil
}

// RemoveLine deletes a line by its ID and renumbers the remainder.
func (d *Dropoff) RemoveLine(lineID id.ID) bool {
	for i, l := range d.Lines {
		if l.LineID == lineID {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			for j := range d.Lines {
				d.Lines[j].LineNo = j + 1
			}
			return true
		}
	}
	return false
}

// GrandTotal sums line totals.
func (d *Dropoff) GrandTotal() types.Money {
	total := types.Zero()
	for _, l := range d.Lines {
		total = total.Add(l.Total)
	}
	return total
}

// ValidateHeader checks the seller block and the organization scope.
// Whitespace-only values count as blank.
func (d *Dropoff) ValidateHeader(ctx context.Context) error {
	fields := []struct {
		name  string
		value string
	}{
		{"organizationId", d.OrganizationID},
		{"seller", d.Seller},
		{"contact", d.Contact},
		{"address", d.Address},
		{"city", d.City},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperror.NewValidationCode(
				apperror.CodeIncompleteHeader,
				"fill in the drop-off details before saving",
			).WithDetail("field", f.name)
		}
	}
	return d.Document.Validate(ctx)
}

// ValidateLines checks that at least one complete line exists. A commission
// of zero is valid; an absent commission is not.
func (d *Dropoff) ValidateLines(ctx context.Context) error {
	if len(d.Lines) == 0 {
		return apperror.NewValidationCode(
			apperror.CodeEmptyLineSet,
			"add at least one line before saving",
		)
	}

	for _, l := range d.Lines {
		if err := l.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l Line) validate() error {
	incomplete := func(field string) error {
		return apperror.NewValidationCode(
			apperror.CodeIncompleteLine,
			"line is missing required values",
		).WithDetail("lineId", l.LineID.String()).WithDetail("field", field)
	}

	switch {
	case strings.TrimSpace(l.Type) == "":
		return incomplete("type")
	case strings.TrimSpace(l.Item) == "":
		return incomplete("item")
	case !l.Unit.Valid():
		return incomplete("unit")
	case !l.Quantity.IsPositive():
		return incomplete("quantity")
	case !l.Price.IsPositive():
		return incomplete("price")
	case !l.Total.IsPositive():
		return incomplete("total")
	case l.Commission == nil:
		return incomplete("commission")
	}
	return nil
}

// Validate implements entity.Validatable: header plus lines.
func (d *Dropoff) Validate(ctx context.Context) error {
	if err := d.ValidateHeader(ctx); err != nil {
		return err
	}
	return d.ValidateLines(ctx)
}
