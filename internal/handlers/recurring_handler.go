package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/services"
)

// RecurringHandler handles recurring expense endpoints.
type RecurringHandler struct {
	recurringService services.RecurringServicer
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringService services.RecurringServicer) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

type createRecurringRequest struct {
	Name            string               `json:"name" binding:"required,max=100"`
	Description     string               `json:"description" binding:"omitempty,max=255"`
	Amount          decimal.Decimal      `json:"amount" binding:"required"`
	Frequency       models.Frequency     `json:"frequency" binding:"omitempty,frequency"`
	DueDay          *int                 `json:"dueDay" binding:"omitempty,min=1,max=31"`
	Category        string               `json:"category" binding:"omitempty,max=100"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method"`
	AutoApply       bool                 `json:"autoApply"`
	AlertDaysBefore *int                 `json:"alertDaysBefore" binding:"omitempty,min=0,max=60"`
}

type updateRecurringRequest struct {
	Name            string                `json:"name" binding:"omitempty,max=100"`
	Description     *string               `json:"description" binding:"omitempty,max=255"`
	Amount          *decimal.Decimal      `json:"amount"`
	Frequency       *models.Frequency     `json:"frequency" binding:"omitempty,frequency"`
	DueDay          *int                  `json:"dueDay" binding:"omitempty,min=1,max=31"`
	Category        *string               `json:"category" binding:"omitempty,max=100"`
	PaymentMethod   *models.PaymentMethod `json:"paymentMethod" binding:"omitempty,payment_method"`
	AutoApply       *bool                 `json:"autoApply"`
	AlertDaysBefore *int                  `json:"alertDaysBefore" binding:"omitempty,min=0,max=60"`
	Active          *bool                 `json:"active"`
}

type markPaidRequest struct {
	DueDate    *time.Time       `json:"dueDate"`
	AmountPaid *decimal.Decimal `json:"amountPaid"`
	Note       string           `json:"note" binding:"omitempty,max=255"`
}

// CreateRecurring godoc
//
//	@Summary		Create a recurring expense
//	@Tags			recurring
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createRecurringRequest	true	"Recurring expense details"
//	@Success		201		{object}	models.RecurringExpense
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/recurring [post]
func (h *RecurringHandler) CreateRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req createRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.CreateRecurring(userID, services.CreateRecurringInput{
		Name:            req.Name,
		Description:     req.Description,
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		DueDay:          req.DueDay,
		Category:        req.Category,
		PaymentMethod:   req.PaymentMethod,
		AutoApply:       req.AutoApply,
		AlertDaysBefore: req.AlertDaysBefore,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recurring)
}

// GetRecurring godoc
//
//	@Summary		List active recurring expenses
//	@Tags			recurring
//	@Produce		json
//	@Success		200	{array}		models.RecurringExpense
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/recurring [get]
func (h *RecurringHandler) GetRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.GetActiveRecurring(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recurring)
}

// GetRecurringByID godoc
//
//	@Summary		Get a recurring expense with its payment history
//	@Tags			recurring
//	@Produce		json
//	@Param			id	path		int	true	"Recurring expense ID"
//	@Success		200	{object}	models.RecurringExpense
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/recurring/{id} [get]
func (h *RecurringHandler) GetRecurringByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.GetRecurringByID(userID, recurringID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recurring)
}

// UpdateRecurring godoc
//
//	@Summary		Update a recurring expense
//	@Tags			recurring
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Recurring expense ID"
//	@Param			request	body		updateRecurringRequest	true	"Fields to update"
//	@Success		200		{object}	models.RecurringExpense
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/recurring/{id} [put]
func (h *RecurringHandler) UpdateRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req updateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	recurring, err := h.recurringService.UpdateRecurring(userID, recurringID, services.UpdateRecurringInput{
		Name:            req.Name,
		Description:     req.Description,
		Amount:          req.Amount,
		Frequency:       req.Frequency,
		DueDay:          req.DueDay,
		Category:        req.Category,
		PaymentMethod:   req.PaymentMethod,
		AutoApply:       req.AutoApply,
		AlertDaysBefore: req.AlertDaysBefore,
		Active:          req.Active,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recurring)
}

// DeactivateRecurring godoc
//
//	@Summary		Deactivate a recurring expense
//	@Description	Marks the recurring expense inactive, preserving its payment history
//	@Tags			recurring
//	@Produce		json
//	@Param			id	path		int	true	"Recurring expense ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/recurring/{id} [delete]
func (h *RecurringHandler) DeactivateRecurring(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.recurringService.DeactivateRecurring(userID, recurringID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Recurring expense deactivated"})
}

// MarkPaid godoc
//
//	@Summary		Record a payment for a recurring expense
//	@Description	Appends a paid log entry and advances the next due date by one period
//	@Tags			recurring
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Recurring expense ID"
//	@Param			request	body		markPaidRequest	false	"Payment details"
//	@Success		201		{object}	services.PaymentResult
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/recurring/{id}/pay [post]
func (h *RecurringHandler) MarkPaid(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurringID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req markPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
	}

	result, err := h.recurringService.MarkPaid(userID, recurringID, req.DueDate, req.AmountPaid, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetUpcoming godoc
//
//	@Summary		List upcoming recurring expenses
//	@Description	Returns active recurring expenses due within the next seven days, including overdue ones
//	@Tags			recurring
//	@Produce		json
//	@Success		200	{array}		models.RecurringExpense
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/recurring/upcoming/list [get]
func (h *RecurringHandler) GetUpcoming(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recurring, err := h.recurringService.GetUpcoming(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recurring)
}
