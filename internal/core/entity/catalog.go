package entity

import (
	"context"

	"junkshop/internal/core/apperror"
)

// Catalog is the base type for reference data (item goals, price catalog rows).
// Catalogs are admin-edited and never auto-deleted.
type Catalog struct {
	BaseEntity

	// Name is the display name (for item catalogs this is the item name)
	Name string `db:"name" json:"name"`

	// OrganizationID is the owning organization
	OrganizationID string `db:"organization_id" json:"organizationId"`
}

// NewCatalog creates a new Catalog with generated ID.
func NewCatalog(name, organizationID string) Catalog {
	return Catalog{
		BaseEntity:     NewBaseEntity(),
		Name:           name,
		OrganizationID: organizationID,
	}
}

// Validate implements Validatable interface.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if c.OrganizationID == "" {
		return apperror.NewValidation("organization is required").
			WithDetail("field", "organizationId")
	}
	return nil
}
