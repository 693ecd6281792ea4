// Package shipment provides the outbound shipment document: bought material
// leaves a branch toward a buyer, travels, and is weighed again on arrival.
// The weigh-in/weigh-out pair drives the capital, revenue and margin figures.
package shipment

import (
	"context"
	"strings"
	"time"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/entity"
	"junkshop/internal/core/id"
	"junkshop/internal/core/types"
)

// Shipment is the outbound document header plus its shipped lines.
type Shipment struct {
	entity.Document

	// Buyer receiving the load
	Buyer string `db:"buyer" json:"buyer"`

	// Destination the load travels to
	Destination string `db:"destination" json:"destination"`

	// Departure is when the truck left the branch
	Departure time.Time `db:"departure" json:"departure"`

	// Arrival is set when the load reaches the buyer. Nil while en route.
	Arrival *time.Time `db:"arrival" json:"arrival,omitempty"`

	// Status is the lifecycle state (see status.go)
	Status Status `db:"status" json:"status"`

	// CapitalSnapshot is the capital figure written when the shipment was
	// created. Display figures are always recomputed from lines; this is a
	// historical hint only.
	CapitalSnapshot types.Money `db:"capital_snapshot" json:"capitalSnapshot"`

	// Lines shipped in this load
	Lines []ShippedLine `db:"-" json:"lines"`
}

// ShippedLine is one item row on a shipment. InQuantity is the weigh-in at
// departure; OutQuantity is the weigh-out at arrival and stays nil until the
// buyer's scale reading is recorded.
type ShippedLine struct {
	LineID     id.ID `db:"id" json:"id"`
	ShipmentID id.ID `db:"shipment_id" json:"shipmentId"`
	LineNo     int   `db:"line_no" json:"lineNo"`

	Item string     `db:"item" json:"item"`
	Unit types.Unit `db:"unit" json:"unit"`

	// Price per unit agreed with the buyer
	Price types.Money `db:"price" json:"price"`

	// InQuantity loaded at departure
	InQuantity types.Quantity `db:"in_quantity" json:"inQuantity"`

	// OutQuantity received at arrival; nil means not yet weighed out
	OutQuantity *types.Quantity `db:"out_quantity" json:"outQuantity,omitempty"`
}

// New creates an en-route shipment for an organization branch.
func New(organizationID, branch string) *Shipment {
	doc := entity.NewDocument(organizationID)
	doc.Branch = branch
	return &Shipment{
		Document: doc,
		Status:   StatusOngoing,
	}
}

// LineInput carries one row for AddLine.
type LineInput struct {
	Item       string
	Unit       types.Unit
	Price      types.Money
	InQuantity types.Quantity
}

// AddLine validates and appends a line.
func (s *Shipment) AddLine(in LineInput) (*ShippedLine, error) {
	if strings.TrimSpace(in.Item) == "" {
		return nil, apperror.NewValidationCode(
			apperror.CodeMissingSelection,
			"select an item before adding the line",
		)
	}
	if !in.InQuantity.IsPositive() {
		return nil, apperror.NewValidationCode(
			apperror.CodeNonPositiveQuantity,
			"loaded quantity must be greater than zero",
		).WithDetail("item", in.Item)
	}

	line := ShippedLine{
		LineID:     id.New(),
		ShipmentID: s.ID,
		LineNo:     len(s.Lines) + 1,
		Item:       strings.TrimSpace(in.Item),
		Unit:       in.Unit,
		Price:      in.Price,
		InQuantity: in.InQuantity,
	}
	s.Lines = append(s.Lines, line)
	return &s.Lines[len(s.Lines)-1], nil
}

// MissingOutLines returns ids of lines still waiting for a weigh-out.
func (s *Shipment) MissingOutLines() []string {
	var missing []string
	for _, l := range s.Lines {
		if l.OutQuantity == nil {
			missing = append(missing, l.LineID.String())
		}
	}
	return missing
}

// Deliverable reports whether the shipment can move to DONE: arrival
// recorded and every line weighed out.
func (s *Shipment) Deliverable() bool {
	return s.Arrival != nil && len(s.MissingOutLines()) == 0
}

// Validate implements entity.Validatable.
func (s *Shipment) Validate(ctx context.Context) error {
	if err := s.Document.Validate(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(s.Buyer) == "" {
		return apperror.NewValidationCode(
			apperror.CodeIncompleteHeader,
			"buyer is required",
		).WithDetail("field", "buyer")
	}
	if strings.TrimSpace(s.Destination) == "" {
		return apperror.NewValidationCode(
			apperror.CodeIncompleteHeader,
			"destination is required",
		).WithDetail("field", "destination")
	}
	if s.Departure.IsZero() {
		return apperror.NewValidationCode(
			apperror.CodeIncompleteHeader,
			"departure is required",
		).WithDetail("field", "departure")
	}
	if !s.Status.Valid() {
		return apperror.NewValidation("unknown status").
			WithDetail("status", string(s.Status))
	}

	if len(s.Lines) == 0 {
		return apperror.NewValidationCode(
			apperror.CodeEmptyLineSet,
			"add at least one line before saving",
		)
	}
	for _, l := range s.Lines {
		if err := l.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (l ShippedLine) validate() error {
	incomplete := func(field string) error {
		return apperror.NewValidationCode(
			apperror.CodeIncompleteLine,
			"line is missing required values",
		).WithDetail("lineId", l.LineID.String()).WithDetail("field", field)
	}

	switch {
	case strings.TrimSpace(l.Item) == "":
		return incomplete("item")
	case !l.Unit.Valid():
		return incomplete("unit")
	case !l.InQuantity.IsPositive():
		return incomplete("inQuantity")
	case l.Price.IsNegative():
		return incomplete("price")
	case l.OutQuantity != nil && *l.OutQuantity < 0:
		return incomplete("outQuantity")
	}
	return nil
}
