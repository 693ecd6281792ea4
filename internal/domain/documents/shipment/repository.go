package shipment

import (
	"context"
	"time"

	"junkshop/internal/core/id"
	"junkshop/internal/core/types"
	"junkshop/internal/domain"
)

// Repository persists shipment documents. Line weigh-outs are updated
// individually so a failed line does not take the others down with it.
type Repository interface {
	// CreateHeader inserts the document header.
	CreateHeader(ctx context.Context, s *Shipment) error

	// SaveLines inserts the document's lines.
	SaveLines(ctx context.Context, shipmentID id.ID, lines []ShippedLine) error

	// GetByID loads a header with its lines, ordered by line number.
	GetByID(ctx context.Context, shipmentID id.ID) (*Shipment, error)

	// List retrieves headers (without lines) with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Shipment], error)

	// UpdateHeader writes status, arrival and audit fields with optimistic
	// locking.
	UpdateHeader(ctx context.Context, s *Shipment) error

	// UpdateLineOut writes one line's weigh-out quantity. Rewriting the
	// same value is a no-op, which keeps completion retries safe.
	UpdateLineOut(ctx context.Context, lineID id.ID, out types.Quantity) error
}

// TransitionRecord is one entry in the shipment status audit trail.
type TransitionRecord struct {
	ShipmentID id.ID     `json:"shipmentId"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
	OperatorID string    `json:"operatorId,omitempty"`
	Note       string    `json:"note,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// TransitionRecorder appends status changes to the audit trail. Recording is
// best-effort: a recorder failure must not undo the transition itself.
type TransitionRecorder interface {
	RecordTransition(ctx context.Context, rec TransitionRecord) error
}
