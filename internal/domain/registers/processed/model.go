// Package processed provides the processed-items accumulation register.
// Rows are immutable facts: created by intake, read by the aggregator,
// never mutated.
package processed

import (
	"context"
	"strings"
	"time"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/id"
	"junkshop/internal/core/types"
)

// Log is a single processed-item record.
//
// Quantity is stored in its raw wire form. Intake channels do not agree on
// encoding (numbers, numeric strings, occasionally garbage), so decoding is
// deferred to aggregation time where bad values coerce to zero.
type Log struct {
	// LineID is unique identifier for this record (UUIDv7)
	LineID id.ID `db:"line_id" json:"lineId"`

	// Item is the item name. Matching is case-insensitive because upstream
	// intake does not normalize casing consistently.
	Item string `db:"item" json:"item"`

	// Branch and OrganizationID are enumerated, controlled values; matching
	// is exact.
	Branch         string `db:"branch" json:"branch"`
	OrganizationID string `db:"organization_id" json:"organizationId"`

	// Quantity in the raw wire encoding, interpreted via the matching item
	// goal's unit.
	Quantity string `db:"quantity" json:"quantity"`

	// RecordedAt is when the record was created
	RecordedAt time.Time `db:"recorded_at" json:"recordedAt"`
}

// NewLog creates a processed-item record.
func NewLog(item, branch, organizationID, quantity string) Log {
	return Log{
		LineID:         id.New(),
		Item:           item,
		Branch:         branch,
		OrganizationID: organizationID,
		Quantity:       quantity,
		RecordedAt:     time.Now().UTC(),
	}
}

// Validate checks record invariants before insert.
func (l *Log) Validate(ctx context.Context) error {
	if strings.TrimSpace(l.Item) == "" {
		return apperror.NewValidation("item is required").
			WithDetail("field", "item")
	}
	if strings.TrimSpace(l.Branch) == "" {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branch")
	}
	if l.OrganizationID == "" {
		return apperror.NewValidation("organization is required").
			WithDetail("field", "organizationId")
	}
	return nil
}

// Key identifies one aggregation bucket: an item within a branch within an
// organization.
type Key struct {
	Item           string
	Branch         string
	OrganizationID string
}

// Matches reports whether a log record belongs to this bucket.
// Item comparison folds case; branch and organization must match exactly.
func (k Key) Matches(l Log) bool {
	return strings.EqualFold(l.Item, k.Item) &&
		l.Branch == k.Branch &&
		l.OrganizationID == k.OrganizationID
}

// Total is a running processed sum for one key.
type Total struct {
	Key      Key            `json:"-"`
	Quantity types.Quantity `json:"quantity"`
}

// Display renders the sum with two decimals and thousands separators.
func (t Total) Display() string {
	return t.Quantity.Display()
}

// Aggregate sums every log matching the key. Unparseable quantities coerce to
// zero; no record is ever excluded and no input makes this fail. The function
// is pure over its inputs and safe to re-run on every change notification.
func Aggregate(logs []Log, key Key) Total {
	var sum types.Quantity
	for _, l := range logs {
		if !key.Matches(l) {
			continue
		}
		sum = sum.Add(types.ParseQuantityLenient(l.Quantity))
	}
	return Total{Key: key, Quantity: sum}
}
