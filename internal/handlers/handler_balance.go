package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
	"github.com/obeng-labs/agencyledger/internal/middleware"
)

// balanceHandler handles HTTP requests for provider float balances.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: balanceService}
}

// registerBalanceRoutes mounts the balance routes on the company group.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.GET("", h.listBalances)
		balances.PUT("", h.setBalance)
		balances.POST("/initialize", h.initializeBalances)
		balances.POST("/adjust", h.adjustBalance)
	}
}

func (h *balanceHandler) setBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind set balance request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format", Code: "VALIDATION_ERROR"})
		return
	}

	balance, err := h.balanceService.SetBalance(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

func (h *balanceHandler) initializeBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.InitializeBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind initialize balances request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format", Code: "VALIDATION_ERROR"})
		return
	}

	balances, err := h.balanceService.InitializeBalances(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": dto.ToBalanceResponses(balances)})
}

func (h *balanceHandler) adjustBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind adjust balance request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format", Code: "VALIDATION_ERROR"})
		return
	}

	balance, err := h.balanceService.AdjustBalance(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

func (h *balanceHandler) listBalances(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var params dto.ListBalancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid query parameters", Code: "VALIDATION_ERROR"})
		return
	}

	balances, err := h.balanceService.ListBalances(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": dto.ToBalanceResponses(balances)})
}
