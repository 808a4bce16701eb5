package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/services"
)

// BudgetHandler handles budget month, week, and expense endpoints.
type BudgetHandler struct {
	budgetService services.BudgetServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

type upsertMonthRequest struct {
	Month       string          `json:"month" binding:"required"`
	TotalBudget decimal.Decimal `json:"totalBudget" binding:"required"`
}

type updateMonthRequest struct {
	TotalBudget decimal.Decimal `json:"totalBudget" binding:"required"`
}

type createExpenseRequest struct {
	MonthID     uint            `json:"monthId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,max=255"`
	Category    string          `json:"category" binding:"omitempty,max=100"`
	Currency    models.Currency `json:"currency" binding:"omitempty,currency"`
	Date        *time.Time      `json:"date"`
}

type updateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required,max=255"`
	Category    string          `json:"category" binding:"omitempty,max=100"`
	Currency    models.Currency `json:"currency" binding:"omitempty,currency"`
}

// parseMonth accepts either a year-month ("2024-03") or a full date.
func parseMonth(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01", "2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month format, expected YYYY-MM")
}

// GetMonths godoc
//
//	@Summary		List budget months
//	@Description	Returns every month the user has, plus the selected month (created with a zero budget if missing)
//	@Tags			budget
//	@Produce		json
//	@Param			month	query		int	false	"Zero-based month index for the current year"
//	@Success		200		{object}	services.MonthOverview
//	@Failure		401		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/months [get]
func (h *BudgetHandler) GetMonths(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var monthIndex *int
	if raw := c.Query("month"); raw != "" {
		idx, err := strconv.Atoi(raw)
		if err != nil || idx < 0 || idx > 11 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 0 and 11"))
			return
		}
		monthIndex = &idx
	}

	overview, err := h.budgetService.GetMonths(userID, monthIndex)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// UpsertMonth godoc
//
//	@Summary		Create or update a budget month
//	@Description	Creates the month with generated weekly sub-budgets, or updates the total of an existing month
//	@Tags			budget
//	@Accept			json
//	@Produce		json
//	@Param			request	body		upsertMonthRequest	true	"Month and total budget"
//	@Success		200		{object}	services.MonthResult
//	@Success		201		{object}	services.MonthResult
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/month [post]
func (h *BudgetHandler) UpsertMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req upsertMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.budgetService.UpsertMonth(userID, month, req.TotalBudget)
	if err != nil {
		respondWithError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// UpdateMonth godoc
//
//	@Summary		Update a budget month's total
//	@Description	Sets a new total budget and recomputes the remaining balance from recorded expenses
//	@Tags			budget
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Month ID"
//	@Param			request	body		updateMonthRequest	true	"New total budget"
//	@Success		200		{object}	models.BudgetMonth
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/month/{id} [put]
func (h *BudgetHandler) UpdateMonth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req updateMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	month, err := h.budgetService.UpdateMonth(userID, monthID, req.TotalBudget)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, month)
}

// GetWeeks godoc
//
//	@Summary		List a month's weekly sub-budgets
//	@Tags			budget
//	@Produce		json
//	@Param			monthId	path		int	true	"Month ID"
//	@Success		200		{array}		models.BudgetWeek
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/weeks/{monthId} [get]
func (h *BudgetHandler) GetWeeks(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthID, err := parsePathID(c, "monthId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	weeks, err := h.budgetService.GetWeeks(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, weeks)
}

// GetExpenses godoc
//
//	@Summary		List a month's expenses
//	@Tags			budget
//	@Produce		json
//	@Param			monthId	path		int	true	"Month ID"
//	@Success		200		{array}		models.BudgetExpense
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/expenses/{monthId} [get]
func (h *BudgetHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthID, err := parsePathID(c, "monthId")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.budgetService.GetExpenses(userID, monthID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// CreateExpense godoc
//
//	@Summary		Record an expense
//	@Description	Creates the expense and decrements the month's remaining budget, and the matching week's when a date is given
//	@Tags			budget
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createExpenseRequest	true	"Expense details"
//	@Success		201		{object}	models.BudgetExpense
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/expenses [post]
func (h *BudgetHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.budgetService.CreateExpense(userID, req.MonthID, req.Amount, req.Description, req.Category, req.Currency, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense godoc
//
//	@Summary		Edit an expense
//	@Description	Updates the expense and adjusts the month's remaining budget by the amount difference
//	@Tags			budget
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Expense ID"
//	@Param			request	body		updateExpenseRequest	true	"New expense details"
//	@Success		200		{object}	models.BudgetExpense
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/expenses/{id} [put]
func (h *BudgetHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req updateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.budgetService.UpdateExpense(userID, expenseID, req.Amount, req.Description, req.Category, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense godoc
//
//	@Summary		Delete an expense
//	@Description	Removes the expense and restores its amount to the month's remaining budget
//	@Tags			budget
//	@Produce		json
//	@Param			id	path		int	true	"Expense ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/expenses/{id} [delete]
func (h *BudgetHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted"})
}
