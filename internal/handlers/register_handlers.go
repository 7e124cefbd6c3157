package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/events"
	"github.com/obeng-labs/agencyledger/internal/middleware"
	"github.com/obeng-labs/agencyledger/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	broadcaster *events.Broadcaster,
) {
	registerCustomValidators()

	// Health check and metrics are public
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services, broadcaster)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	broadcaster *events.Broadcaster,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// All tenant-scoped routes live under the company path and go through
	// TenantMiddleware, which resolves the caller's membership and role.
	company := v1.Group("/companies/:company_id", middleware.TenantMiddleware(services.Company))

	registerTransactionRoutes(company, services.Transaction)
	registerBalanceRoutes(company, services.Balance)
	registerExpenseRoutes(company, services.Expense)
	registerClosingRoutes(company, services.Closing)
	registerReportingRoutes(company, services.Reporting)
	registerEventRoutes(company, broadcaster)
}
