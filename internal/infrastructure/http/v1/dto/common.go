// Package dto defines request and response bodies for the v1 HTTP API.
package dto

import (
	"junkshop/internal/domain"
)

// IDResponse returns a created entity's id.
type IDResponse struct {
	ID string `json:"id"`
}

// SuccessResponse is a generic success acknowledgement.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ListQuery carries common list parameters.
type ListQuery struct {
	Search         string `form:"search"`
	Branch         string `form:"branch"`
	IncludeDeleted bool   `form:"includeDeleted"`
	OrderBy        string `form:"orderBy"`
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
}

// ToFilter converts query parameters into a domain filter scoped to the
// request's organization.
func (q ListQuery) ToFilter(organizationID string) domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = q.Search
	f.Branch = q.Branch
	f.IncludeDeleted = q.IncludeDeleted
	f.OrganizationID = organizationID
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		f.Limit = q.Limit
	}
	if q.Offset > 0 {
		f.Offset = q.Offset
	}
	return f
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}
