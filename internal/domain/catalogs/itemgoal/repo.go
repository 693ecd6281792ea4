package itemgoal

import (
	"context"

	"junkshop/internal/domain"
)

// Repository defines the interface for ItemGoal persistence.
type Repository interface {
	domain.CatalogRepository[*ItemGoal]

	// GetByKey retrieves the goal for (item, branch, organization).
	// Item name matching is case-insensitive.
	GetByKey(ctx context.Context, item, branch, organizationID string) (*ItemGoal, error)

	// UnitForItem returns the unit already in use for an item name within an
	// organization, across all branches. Empty string when no goal exists yet.
	UnitForItem(ctx context.Context, item, organizationID string) (string, error)
}
