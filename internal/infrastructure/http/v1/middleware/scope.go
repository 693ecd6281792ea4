package middleware

import (
	"github.com/gin-gonic/gin"

	"junkshop/internal/core/apperror"
	appctx "junkshop/internal/core/context"
)

const (
	HeaderOrganization = "X-Organization-ID"
	HeaderBranch       = "X-Branch"
	HeaderOperator     = "X-Operator-ID"
)

// Scope extracts the organization, branch and operator a request operates
// on and makes them available to the engine as explicit context values.
// The organization header is mandatory; everything downstream is scoped by
// it.
func Scope() gin.HandlerFunc {
	return func(c *gin.Context) {
		organizationID := c.GetHeader(HeaderOrganization)
		if organizationID == "" {
			_ = c.Error(apperror.NewValidation("organization header is required").
				WithDetail("header", HeaderOrganization))
			c.Abort()
			return
		}

		scope := &appctx.Scope{
			OrganizationID: organizationID,
			Branch:         c.GetHeader(HeaderBranch),
			OperatorID:     c.GetHeader(HeaderOperator),
		}

		ctx := appctx.WithScope(c.Request.Context(), scope)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
