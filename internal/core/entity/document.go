package entity

import (
	"context"
	"time"

	"junkshop/internal/core/apperror"
)

// Document is the base type for business transactions (purchase intakes,
// shipments). Documents own line items persisted alongside the header.
type Document struct {
	BaseDocument

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// OrganizationID is the owning organization (required)
	OrganizationID string `db:"organization_id" json:"organizationId"`

	// Branch is the physical location under the organization (optional for
	// documents that are organization-wide)
	Branch string `db:"branch" json:"branch,omitempty"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument(organizationID string) Document {
	return Document{
		BaseDocument:   NewBaseDocument(),
		Date:           time.Now().UTC(),
		OrganizationID: organizationID,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.OrganizationID == "" {
		return apperror.NewValidation("organization is required").
			WithDetail("field", "organizationId")
	}
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}
