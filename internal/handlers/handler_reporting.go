package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
)

// reportingHandler serves the owner dashboard.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

// registerReportingRoutes mounts the dashboard route on the company group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	rg.GET("/reports/dashboard", h.dashboard)
}

func (h *reportingHandler) dashboard(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	resp, err := h.reportingService.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
