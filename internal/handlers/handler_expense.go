package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/obeng-labs/agencyledger/internal/core/ports/services"
	"github.com/obeng-labs/agencyledger/internal/dto"
	"github.com/obeng-labs/agencyledger/internal/middleware"
)

// expenseHandler handles HTTP requests for expense requests.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(expenseService portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: expenseService}
}

// registerExpenseRoutes mounts the expense routes on the company group.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.submit)
		expenses.GET("", h.list)
		expenses.POST("/:expense_id/decision", h.decide)
		expenses.POST("/:expense_id/pay", h.markPaid)
	}
}

func (h *expenseHandler) submit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind expense request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format", Code: "VALIDATION_ERROR"})
		return
	}

	expense, err := h.expenseService.Submit(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) list(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	expenses, err := h.expenseService.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": dto.ToExpenseResponses(expenses)})
}

func (h *expenseHandler) decide(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req dto.ExpenseDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind expense decision request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request format", Code: "VALIDATION_ERROR"})
		return
	}

	expense, err := h.expenseService.Decide(c.Request.Context(), actor, c.Param("expense_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

func (h *expenseHandler) markPaid(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.MarkPaid(c.Request.Context(), actor, c.Param("expense_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
