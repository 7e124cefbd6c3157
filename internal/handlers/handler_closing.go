package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
	"github.com/obeng-labs/agencyledger/internal/middleware"
)

// closingHandler handles HTTP requests for daily closings.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

func newClosingHandler(closingService portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{closingService: closingService}
}

// registerClosingRoutes mounts the closing routes on the company group.
func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingService)

	closings := rg.Group("/closings")
	{
		closings.POST("", h.create)
		closings.GET("", h.list)
		closings.GET("/:closing_id", h.get)
		closings.PATCH("/:closing_id", h.update)
	}
}

func (h *closingHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind closing request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format", Code: "VALIDATION_ERROR"})
		return
	}

	closing, err := h.closingService.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClosingResponse(closing))
}

func (h *closingHandler) list(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var params dto.ListClosingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid query parameters", Code: "VALIDATION_ERROR"})
		return
	}

	closings, err := h.closingService.List(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"closings": dto.ToClosingResponses(closings)})
}

func (h *closingHandler) get(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	closing, err := h.closingService.Get(c.Request.Context(), actor, c.Param("closing_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClosingResponse(closing))
}

func (h *closingHandler) update(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.UpdateClosingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind closing update request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format", Code: "VALIDATION_ERROR"})
		return
	}

	closing, err := h.closingService.Update(c.Request.Context(), actor, c.Param("closing_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClosingResponse(closing))
}
