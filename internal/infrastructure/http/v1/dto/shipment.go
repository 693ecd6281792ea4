package dto

import (
	"time"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/id"
	"junkshop/internal/core/types"
	"junkshop/internal/domain/documents/shipment"
)

// --- Request DTOs ---

// CreateShipmentRequest is the request body for creating a shipment.
type CreateShipmentRequest struct {
	Buyer       string              `json:"buyer" binding:"required"`
	Destination string              `json:"destination" binding:"required"`
	Departure   time.Time           `json:"departure" binding:"required"`
	Branch      string              `json:"branch" binding:"required"`
	Comment     string              `json:"comment"`
	Lines       []ShipmentLineInput `json:"lines" binding:"required,min=1,dive"`
}

// ShipmentLineInput is one line loaded onto the truck.
type ShipmentLineInput struct {
	Item       string  `json:"item" binding:"required"`
	Unit       string  `json:"unit" binding:"required"`
	Price      float64 `json:"price"`
	InQuantity float64 `json:"inQuantity"`
}

// ToEntity builds the document and adds every line.
func (r *CreateShipmentRequest) ToEntity(organizationID string) (*shipment.Shipment, error) {
	sh := shipment.New(organizationID, r.Branch)
	sh.Buyer = r.Buyer
	sh.Destination = r.Destination
	sh.Departure = r.Departure.UTC()
	sh.Comment = r.Comment

	for _, in := range r.Lines {
		_, err := sh.AddLine(shipment.LineInput{
			Item:       in.Item,
			Unit:       types.Unit(in.Unit),
			Price:      types.NewMoney(in.Price),
			InQuantity: types.NewQuantityFromFloat64(in.InQuantity),
		})
		if err != nil {
			return nil, err
		}
	}
	return sh, nil
}

// TransitionRequest asks for a status change.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// CompleteShipmentRequest carries the arrival data for completion.
type CompleteShipmentRequest struct {
	Arrival       time.Time          `json:"arrival" binding:"required"`
	OutQuantities map[string]float64 `json:"outQuantities" binding:"required"`
}

// ToInput converts the request, parsing line ids.
func (r *CompleteShipmentRequest) ToInput() (shipment.CompletionInput, error) {
	outs := make(map[id.ID]types.Quantity, len(r.OutQuantities))
	for raw, v := range r.OutQuantities {
		lineID, err := id.Parse(raw)
		if err != nil {
			return shipment.CompletionInput{}, apperror.NewValidation("invalid line id").
				WithDetail("lineId", raw)
		}
		outs[lineID] = types.NewQuantityFromFloat64(v)
	}
	return shipment.CompletionInput{
		Arrival:       r.Arrival,
		OutQuantities: outs,
	}, nil
}

// --- Response DTOs ---

// ShipmentResponse is the response body for a shipment document.
type ShipmentResponse struct {
	ID          string                 `json:"id"`
	Date        string                 `json:"date"`
	Buyer       string                 `json:"buyer"`
	Destination string                 `json:"destination"`
	Departure   string                 `json:"departure"`
	Arrival     *string                `json:"arrival,omitempty"`
	Status      string                 `json:"status"`
	Branch      string                 `json:"branch"`
	Comment     string                 `json:"comment,omitempty"`
	Summary     SummaryResponse        `json:"summary"`
	Lines       []ShipmentLineResponse `json:"lines,omitempty"`
	Version     int                    `json:"version"`
}

// SummaryResponse is the money view of a shipment.
type SummaryResponse struct {
	Capital string `json:"capital"`
	Revenue string `json:"revenue"`
	Margin  string `json:"margin"`
}

// ShipmentLineResponse is one shipped line with its per-line figures.
type ShipmentLineResponse struct {
	ID          string  `json:"id"`
	LineNo      int     `json:"lineNo"`
	Item        string  `json:"item"`
	Unit        string  `json:"unit"`
	Price       string  `json:"price"`
	InQuantity  string  `json:"inQuantity"`
	OutQuantity *string `json:"outQuantity,omitempty"`
	Capital     string  `json:"capital"`
	Profit      *string `json:"profit,omitempty"`
}

// FromSummary converts a summary to its response form.
func FromSummary(s shipment.Summary) SummaryResponse {
	return SummaryResponse{
		Capital: s.CapitalDisplay(),
		Revenue: s.RevenueDisplay(),
		Margin:  s.MarginDisplay(),
	}
}

// FromShipment converts a document and its recomputed summary to the
// response form.
func FromShipment(sh *shipment.Shipment) ShipmentResponse {
	resp := ShipmentResponse{
		ID:          sh.ID.String(),
		Date:        sh.Date.Format(time.RFC3339),
		Buyer:       sh.Buyer,
		Destination: sh.Destination,
		Departure:   sh.Departure.Format(time.RFC3339),
		Status:      string(sh.Status),
		Branch:      sh.Branch,
		Comment:     sh.Comment,
		Summary:     FromSummary(shipment.Summarize(sh.Lines)),
		Version:     sh.Version,
	}
	if sh.Arrival != nil {
		s := sh.Arrival.Format(time.RFC3339)
		resp.Arrival = &s
	}
	for _, l := range sh.Lines {
		line := ShipmentLineResponse{
			ID:         l.LineID.String(),
			LineNo:     l.LineNo,
			Item:       l.Item,
			Unit:       string(l.Unit),
			Price:      types.FormatAmount(l.Price),
			InQuantity: l.InQuantity.Display(),
			Capital:    types.FormatAmount(l.Price.Mul(l.InQuantity.Money())),
		}
		if l.OutQuantity != nil {
			out := l.OutQuantity.Display()
			line.OutQuantity = &out
			profit := types.FormatAmount(l.Price.Mul(l.OutQuantity.Money()).Sub(l.Price.Mul(l.InQuantity.Money())))
			line.Profit = &profit
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}

// TransitionRecordResponse is one entry of a shipment's status history.
type TransitionRecordResponse struct {
	From       string `json:"from"`
	To         string `json:"to"`
	OperatorID string `json:"operatorId,omitempty"`
	Note       string `json:"note,omitempty"`
	OccurredAt string `json:"occurredAt"`
}

// FromTransitionRecord converts an audit trail entry to the response form.
func FromTransitionRecord(rec shipment.TransitionRecord) TransitionRecordResponse {
	return TransitionRecordResponse{
		From:       string(rec.From),
		To:         string(rec.To),
		OperatorID: rec.OperatorID,
		Note:       rec.Note,
		OccurredAt: rec.OccurredAt.Format(time.RFC3339),
	}
}
