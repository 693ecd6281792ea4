package processed

import (
	"context"
	"time"
)

// Repository defines persistence for the processed-items register.
type Repository interface {
	// Insert appends records. Records are immutable once written.
	Insert(ctx context.Context, logs []Log) error

	// ListByOrganization returns all records for an organization, newest first.
	ListByOrganization(ctx context.Context, organizationID string) ([]Log, error)

	// ListByKey returns records matching an aggregation key.
	ListByKey(ctx context.Context, key Key) ([]Log, error)

	// ListSince returns records recorded at or after the given time,
	// used by the changefeed worker to bound re-aggregation reads.
	ListSince(ctx context.Context, organizationID string, since time.Time) ([]Log, error)
}
