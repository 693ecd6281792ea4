package dto

import (
	"junkshop/internal/core/types"
	"junkshop/internal/domain/documents/purchase"
)

// --- Request DTOs ---

// CommitDropoffRequest is the request body for committing a drop-off.
type CommitDropoffRequest struct {
	Seller  string             `json:"seller" binding:"required"`
	Contact string             `json:"contact" binding:"required"`
	Address string             `json:"address" binding:"required"`
	City    string             `json:"city" binding:"required"`
	Branch  string             `json:"branch" binding:"required"`
	Comment string             `json:"comment"`
	Lines   []DropoffLineInput `json:"lines" binding:"required,min=1,dive"`
}

// DropoffLineInput is one purchased line. Price arrives in the composite
// wire form; the per-unit commission is optional and distinct from zero.
type DropoffLineInput struct {
	Type           string   `json:"type" binding:"required"`
	Item           string   `json:"item" binding:"required"`
	Price          string   `json:"price" binding:"required"`
	Quantity       float64  `json:"quantity"`
	CommissionRate *float64 `json:"commissionRate"`
	Confirmed      bool     `json:"confirmed"`
}

// ToEntity builds the document and adds every line, returning the first
// line error encountered.
func (r *CommitDropoffRequest) ToEntity(organizationID string) (*purchase.Dropoff, error) {
	d := purchase.New(organizationID, r.Branch)
	d.Seller = r.Seller
	d.Contact = r.Contact
	d.Address = r.Address
	d.City = r.City
	d.Comment = r.Comment

	for _, in := range r.Lines {
		tag := types.ParseComposite(in.Price)

		var rate *types.Money
		if in.CommissionRate != nil {
			m := types.NewMoney(*in.CommissionRate)
			rate = &m
		}

		_, err := d.AddLine(purchase.LineInput{
			Type:           in.Type,
			Item:           in.Item,
			Price:          tag.Amount,
			Unit:           tag.Unit,
			Quantity:       types.NewQuantityFromFloat64(in.Quantity),
			CommissionRate: rate,
			Confirmed:      in.Confirmed,
		})
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

// --- Response DTOs ---

// DropoffResponse is the response body for a drop-off document.
type DropoffResponse struct {
	ID         string                `json:"id"`
	Date       string                `json:"date"`
	Seller     string                `json:"seller"`
	Contact    string                `json:"contact"`
	Address    string                `json:"address"`
	City       string                `json:"city"`
	Branch     string                `json:"branch"`
	Comment    string                `json:"comment,omitempty"`
	GrandTotal string                `json:"grandTotal"`
	Lines      []DropoffLineResponse `json:"lines,omitempty"`
	Version    int                   `json:"version"`
}

// DropoffLineResponse is one purchased line in a response.
type DropoffLineResponse struct {
	ID         string  `json:"id"`
	LineNo     int     `json:"lineNo"`
	Type       string  `json:"type"`
	Item       string  `json:"item"`
	Price      string  `json:"price"`
	Unit       string  `json:"unit"`
	Quantity   string  `json:"quantity"`
	Total      string  `json:"total"`
	Commission *string `json:"commission,omitempty"`
	Confirmed  bool    `json:"confirmed"`
}

// FromDropoff converts a document to its response form.
func FromDropoff(d *purchase.Dropoff) DropoffResponse {
	resp := DropoffResponse{
		ID:         d.ID.String(),
		Date:       d.Date.Format("2006-01-02T15:04:05Z07:00"),
		Seller:     d.Seller,
		Contact:    d.Contact,
		Address:    d.Address,
		City:       d.City,
		Branch:     d.Branch,
		Comment:    d.Comment,
		GrandTotal: types.FormatAmount(d.GrandTotal()),
		Version:    d.Version,
	}
	for _, l := range d.Lines {
		line := DropoffLineResponse{
			ID:        l.LineID.String(),
			LineNo:    l.LineNo,
			Type:      l.Type,
			Item:      l.Item,
			Price:     types.FormatAmount(l.Price),
			Unit:      string(l.Unit),
			Quantity:  l.Quantity.Display(),
			Total:     types.FormatAmount(l.Total),
			Confirmed: l.Confirmed,
		}
		if l.Commission != nil {
			s := types.FormatAmount(*l.Commission)
			line.Commission = &s
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}
