package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// respondError maps the service error taxonomy onto HTTP statuses in one
// place so every handler reports failures identically.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPeriodClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "PERIOD_CLOSED"})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnbalanced):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// identity extracts the tenant and actor placed on the context by the
// identity middleware, along with the request logger.
func identity(c *gin.Context) (ctx context.Context, tenantID, actorID string, logger *slog.Logger, ok bool) {
	ctx = c.Request.Context()
	logger = middleware.GetLoggerFromCtx(ctx)

	tenantID, okT := middleware.GetTenantIDFromContext(c)
	actorID, okA := middleware.GetActorIDFromContext(c)
	if !okT || !okA {
		logger.Error("Tenant or actor missing from context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return ctx, "", "", logger, false
	}
	return ctx, tenantID, actorID, logger, true
}
