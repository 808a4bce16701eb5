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

// DiaryHandler handles meal diary endpoints: meal types, diary days, and
// meal entries.
type DiaryHandler struct {
	diaryService services.DiaryServicer
}

// NewDiaryHandler creates a new DiaryHandler.
func NewDiaryHandler(diaryService services.DiaryServicer) *DiaryHandler {
	return &DiaryHandler{diaryService: diaryService}
}

type createMealTypeRequest struct {
	Name       string `json:"name" binding:"required,max=50"`
	OrderIndex int    `json:"orderIndex" binding:"omitempty,min=1"`
}

type updateMealTypeRequest struct {
	Name       string `json:"name" binding:"omitempty,max=50"`
	OrderIndex *int   `json:"orderIndex" binding:"omitempty,min=1"`
}

type addEntryRequest struct {
	Date          string              `json:"date" binding:"required"`
	MealTypeID    uint                `json:"mealTypeId" binding:"required"`
	FoodID        uint                `json:"foodId" binding:"required"`
	QuantityValue decimal.Decimal     `json:"quantityValue" binding:"required"`
	QuantityUnit  models.QuantityUnit `json:"quantityUnit" binding:"required,quantity_unit"`
	Note          string              `json:"note" binding:"omitempty,max=255"`
}

type updateEntryRequest struct {
	QuantityValue *decimal.Decimal     `json:"quantityValue"`
	QuantityUnit  *models.QuantityUnit `json:"quantityUnit" binding:"omitempty,quantity_unit"`
	Note          *string              `json:"note" binding:"omitempty,max=255"`
}

// parseDate parses a YYYY-MM-DD date parameter.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid date format, expected YYYY-MM-DD")
	}
	return t, nil
}

// GetMealTypes godoc
//
//	@Summary		List meal types
//	@Description	Returns the built-in meal types plus the user's custom ones, ordered for display
//	@Tags			diary
//	@Produce		json
//	@Success		200	{array}		models.MealType
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/meals/types [get]
func (h *DiaryHandler) GetMealTypes(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mealTypes, err := h.diaryService.GetMealTypes(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, mealTypes)
}

// CreateMealType godoc
//
//	@Summary		Create a custom meal type
//	@Tags			diary
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createMealTypeRequest	true	"Meal type details"
//	@Success		201		{object}	models.MealType
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/meals/types [post]
func (h *DiaryHandler) CreateMealType(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req createMealTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	mealType, err := h.diaryService.CreateMealType(userID, req.Name, req.OrderIndex)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mealType)
}

// UpdateMealType godoc
//
//	@Summary		Update a custom meal type
//	@Tags			diary
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Meal type ID"
//	@Param			request	body		updateMealTypeRequest	true	"Fields to update"
//	@Success		200		{object}	models.MealType
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/meals/types/{id} [put]
func (h *DiaryHandler) UpdateMealType(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mealTypeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req updateMealTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	mealType, err := h.diaryService.UpdateMealType(userID, mealTypeID, req.Name, req.OrderIndex)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, mealType)
}

// DeleteMealType godoc
//
//	@Summary		Delete a custom meal type
//	@Description	Built-in meal types cannot be deleted
//	@Tags			diary
//	@Produce		json
//	@Param			id	path		int	true	"Meal type ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/meals/types/{id} [delete]
func (h *DiaryHandler) DeleteMealType(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	mealTypeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.diaryService.DeleteMealType(userID, mealTypeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Meal type deleted"})
}

// GetDiaryDay godoc
//
//	@Summary		Get a diary day with its entries
//	@Description	Creates an empty diary day on first access
//	@Tags			diary
//	@Produce		json
//	@Param			date	path		string	true	"Date (YYYY-MM-DD)"
//	@Success		200		{object}	models.DiaryDay
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/diary/{date} [get]
func (h *DiaryHandler) GetDiaryDay(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	date, err := parseDate(c.Param("date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	day, err := h.diaryService.GetDiaryDay(userID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, day)
}

// AddEntry godoc
//
//	@Summary		Add a meal entry
//	@Description	Records a food eaten at a meal on a given day, creating the diary day if needed
//	@Tags			diary
//	@Accept			json
//	@Produce		json
//	@Param			request	body		addEntryRequest	true	"Entry details"
//	@Success		201		{object}	models.MealEntry
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/diary/entries [post]
func (h *DiaryHandler) AddEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req addEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entry, err := h.diaryService.AddEntry(userID, date, req.MealTypeID, req.FoodID, req.QuantityValue, req.QuantityUnit, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateEntry godoc
//
//	@Summary		Edit a meal entry
//	@Tags			diary
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Entry ID"
//	@Param			request	body		updateEntryRequest	true	"Fields to update"
//	@Success		200		{object}	models.MealEntry
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/diary/entries/{id} [put]
func (h *DiaryHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.diaryService.UpdateEntry(userID, entryID, req.QuantityValue, req.QuantityUnit, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry godoc
//
//	@Summary		Delete a meal entry
//	@Tags			diary
//	@Produce		json
//	@Param			id	path		int	true	"Entry ID"
//	@Success		200	{object}	MessageResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/diary/entries/{id} [delete]
func (h *DiaryHandler) DeleteEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.diaryService.DeleteEntry(userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Entry deleted"})
}
