package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kamra/internal/errors"
	"kamra/internal/services"
)

// SavingHandler handles savings goal endpoints.
type SavingHandler struct {
	savingService services.SavingServicer
}

// NewSavingHandler creates a new SavingHandler.
func NewSavingHandler(savingService services.SavingServicer) *SavingHandler {
	return &SavingHandler{savingService: savingService}
}

type createSavingRequest struct {
	Name         string           `json:"name" binding:"required,max=100"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
}

type addSavingLogRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Note   string          `json:"note" binding:"omitempty,max=255"`
}

// CreateSaving godoc
//
//	@Summary		Create a savings goal
//	@Tags			savings
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createSavingRequest	true	"Savings goal details"
//	@Success		201		{object}	models.Saving
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/savings [post]
func (h *SavingHandler) CreateSaving(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req createSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	saving, err := h.savingService.CreateSaving(userID, req.Name, req.TargetAmount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saving)
}

// GetSavings godoc
//
//	@Summary		List active savings goals with their contribution logs
//	@Tags			savings
//	@Produce		json
//	@Success		200	{array}		models.Saving
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/savings [get]
func (h *SavingHandler) GetSavings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	savings, err := h.savingService.GetActiveSavings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, savings)
}

// AddSavingLog godoc
//
//	@Summary		Record a contribution to a savings goal
//	@Tags			savings
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Savings goal ID"
//	@Param			request	body		addSavingLogRequest	true	"Contribution details"
//	@Success		201		{object}	models.SavingLog
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/savings/{id}/logs [post]
func (h *SavingHandler) AddSavingLog(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	savingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req addSavingLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	log, err := h.savingService.AddSavingLog(userID, savingID, req.Amount, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, log)
}

// DeactivateSaving godoc
//
//	@Summary		Deactivate a savings goal
//	@Tags			savings
//	@Produce		json
//	@Param			id	path		int	true	"Savings goal ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/budget/savings/{id} [delete]
func (h *SavingHandler) DeactivateSaving(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	savingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.savingService.DeactivateSaving(userID, savingID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Savings goal deactivated"})
}
