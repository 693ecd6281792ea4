// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// Scope carries the organization and branch a request operates on.
// It is passed explicitly into every engine call; the engine never reads
// ambient session state.
type Scope struct {
	OrganizationID string
	Branch         string
	OperatorID     string
}

type scopeKey struct{}

// WithScope adds Scope to context.
func WithScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, scope)
}

// GetScope returns Scope from context, or nil.
func GetScope(ctx context.Context) *Scope {
	if v, ok := ctx.Value(scopeKey{}).(*Scope); ok {
		return v
	}
	return nil
}

// GetOrganizationID returns organization ID from context or empty string.
func GetOrganizationID(ctx context.Context) string {
	if s := GetScope(ctx); s != nil {
		return s.OrganizationID
	}
	return ""
}

// GetOperatorID returns the acting operator's ID or empty string.
func GetOperatorID(ctx context.Context) string {
	if s := GetScope(ctx); s != nil {
		return s.OperatorID
	}
	return ""
}
