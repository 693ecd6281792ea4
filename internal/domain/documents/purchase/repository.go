package purchase

import (
	"context"

	"junkshop/internal/core/id"
	"junkshop/internal/domain"
)

// Repository persists drop-off documents. Header and lines live in separate
// tables; the service sequences the writes inside one transaction.
type Repository interface {
	// CreateHeader inserts the document header.
	CreateHeader(ctx context.Context, d *Dropoff) error

	// SaveLines inserts the document's lines.
	SaveLines(ctx context.Context, dropoffID id.ID, lines []Line) error

	// GetByID loads a header with its lines, ordered by line number.
	GetByID(ctx context.Context, dropoffID id.ID) (*Dropoff, error)

	// List retrieves headers (without lines) with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Dropoff], error)
}
