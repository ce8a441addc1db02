package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Every business route requires the tenant/actor identity headers
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	registerAccountRoutes(v1, services.Account)
	registerTransactionSetRoutes(v1, services.TransactionSet, services.Posting)
	registerLedgerRoutes(v1, services.Posting)
	registerPaymentRoutes(v1, services.Payment)
	registerDocumentRoutes(v1, services.Document)
	registerInventoryRoutes(v1, services.Inventory)
	registerPeriodRoutes(v1, services.Period)
	registerReportingRoutes(v1, services.Reporting)
}
