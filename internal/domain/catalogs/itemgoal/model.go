// Package itemgoal provides the item goal catalog. A goal sets the target
// quantity for an item within a branch, the unit it is tracked in, and the
// buying price used to pre-fill purchase lines.
package itemgoal

import (
	"context"
	"strings"

	"junkshop/internal/core/apperror"
	"junkshop/internal/core/entity"
	"junkshop/internal/core/types"
)

// ItemGoal represents a goal row. (item name, branch, organization) is unique;
// the unit is immutable once any goal for the same item name exists, because
// every processed log for that item is interpreted through it.
type ItemGoal struct {
	entity.Catalog

	// Type groups items on the inventory board ("Metal", "Plastic", ...)
	Type string `db:"type" json:"type"`

	// Branch the goal applies to
	Branch string `db:"branch" json:"branch"`

	// Unit the item is goaled, priced and logged in
	Unit types.Unit `db:"unit" json:"unit"`

	// Price per unit (decoded from the catalog's composite wire form)
	Price types.Money `db:"price" json:"price"`

	// Commission per unit paid to the collector
	Commission types.Money `db:"commission" json:"commission"`

	// GoalQuantity is the target against which processed quantity is tracked
	GoalQuantity types.Quantity `db:"goal_quantity" json:"goalQuantity"`

	// ImageRef points at the item's picture in external storage
	ImageRef string `db:"image_ref" json:"imageRef,omitempty"`
}

// New creates a goal with required fields. Item name doubles as catalog name.
func New(item, branch, organizationID string, unit types.Unit) *ItemGoal {
	return &ItemGoal{
		Catalog: entity.NewCatalog(item, organizationID),
		Branch:  branch,
		Unit:    unit,
	}
}

// Item returns the item name this goal tracks.
func (g *ItemGoal) Item() string {
	return g.Name
}

// PriceTag returns the composite price form for the serialization boundary.
func (g *ItemGoal) PriceTag() types.PriceTag {
	return types.PriceTag{Amount: g.Price, Unit: g.Unit}
}

// Validate implements entity.Validatable.
func (g *ItemGoal) Validate(ctx context.Context) error {
	if err := g.Catalog.Validate(ctx); err != nil {
		return err
	}

	if strings.TrimSpace(g.Branch) == "" {
		return apperror.NewValidation("branch is required").
			WithDetail("field", "branch")
	}

	if err := types.ValidateUnit(ctx, g.Unit); err != nil {
		return err
	}

	if g.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}

	if !g.GoalQuantity.IsPositive() {
		return apperror.NewValidation("goal quantity must be positive").
			WithDetail("field", "goalQuantity")
	}

	return nil
}
