package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obeng-labs/agencyledger/internal/apperrors"
	"github.com/obeng-labs/agencyledger/internal/core/domain"
	"github.com/obeng-labs/agencyledger/internal/middleware"
)

// errorResponse is the uniform error body. Code is stable so clients can
// branch on it without parsing the message.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError maps service-layer sentinel errors onto HTTP statuses and
// stable machine-readable codes. Unexpected errors log and return a bare 500.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: "Resource not found", Code: "NOT_FOUND"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, errorResponse{Error: err.Error(), Code: "FORBIDDEN"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Code: "DUPLICATE"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error(), Code: "INVALID_STATE"})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "INSUFFICIENT_BALANCE"})
	case errors.Is(err, apperrors.ErrPlanRestricted):
		c.JSON(http.StatusPaymentRequired, errorResponse{Error: err.Error(), Code: "PLAN_RESTRICTED"})
	case errors.Is(err, apperrors.ErrReferenceGeneration):
		logger.Error("Reference generation exhausted", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Could not assign a transaction reference", Code: "REFERENCE_GENERATION_FAILED"})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error", Code: "INTERNAL"})
	}
}

// mustActor pulls the tenant-resolved actor from the request context. The
// tenant middleware guarantees it; a miss here is a routing bug.
func mustActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor missing from request context")
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized", Code: "UNAUTHORIZED"})
		return domain.Actor{}, false
	}
	return actor, true
}
