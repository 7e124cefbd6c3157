package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
)

// TenantMiddleware resolves the company_id path parameter against the
// authenticated user's memberships and attaches the resulting actor to the
// request context. A user with no active membership in the requested company
// gets a 404, the same answer as for a company that does not exist.
func TenantMiddleware(companySvc portssvc.CompanySvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		companyID := c.Param("company_id")
		if companyID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
			return
		}

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("Tenant middleware reached without authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		actor, err := companySvc.ResolveActor(c.Request.Context(), userID, companyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Company not found"})
				return
			}
			logger.Error("Failed to resolve actor", "error", err, "company_id", companyID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Request = c.Request.WithContext(withActor(c.Request.Context(), actor))
		c.Next()
	}
}
