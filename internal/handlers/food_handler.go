package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/pagination"
	"kamra/internal/services"
)

// FoodHandler handles food and nutrient reference data endpoints.
type FoodHandler struct {
	foodService services.FoodServicer
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(foodService services.FoodServicer) *FoodHandler {
	return &FoodHandler{foodService: foodService}
}

type foodRequest struct {
	Name             string              `json:"name" binding:"required,max=200"`
	Brand            string              `json:"brand" binding:"omitempty,max=100"`
	Category         string              `json:"category" binding:"omitempty,max=100"`
	ServingSizeValue *decimal.Decimal    `json:"servingSizeValue"`
	ServingSizeUnit  *models.ServingUnit `json:"servingSizeUnit" binding:"omitempty,serving_unit"`
	DensityGPerML    *decimal.Decimal    `json:"densityGPerMl"`
}

type setNutrientsRequest struct {
	Nutrients []services.NutrientAmount `json:"nutrients" binding:"required,dive"`
}

type addConversionRequest struct {
	FoodID   *uint               `json:"foodId"`
	FromUnit models.QuantityUnit `json:"fromUnit" binding:"required,quantity_unit"`
	ToUnit   models.QuantityUnit `json:"toUnit" binding:"required,quantity_unit"`
	Factor   decimal.Decimal     `json:"factor" binding:"required"`
}

type setAliasRequest struct {
	Alias      string   `json:"alias" binding:"omitempty,max=100"`
	IsFavorite bool     `json:"isFavorite"`
	Tags       []string `json:"tags" binding:"omitempty,dive,max=50"`
}

// CreateFood godoc
//
//	@Summary		Create a user-defined food
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foodRequest	true	"Food details"
//	@Success		201		{object}	models.Food
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods [post]
func (h *FoodHandler) CreateFood(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	food, err := h.foodService.CreateFood(userID, services.CreateFoodInput{
		Name:             req.Name,
		Brand:            req.Brand,
		Category:         req.Category,
		ServingSizeValue: req.ServingSizeValue,
		ServingSizeUnit:  req.ServingSizeUnit,
		DensityGPerML:    req.DensityGPerML,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, food)
}

// SearchFoods godoc
//
//	@Summary		Search foods by name or brand
//	@Tags			foods
//	@Produce		json
//	@Param			q		query		string	false	"Search query"
//	@Param			source	query		string	false	"Source filter (user, internal, external)"
//	@Param			page	query		int		false	"Page number"
//	@Param			page_size	query	int		false	"Page size"
//	@Success		200		{object}	pagination.PageResponse[models.Food]
//	@Failure		401		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods [get]
func (h *FoodHandler) SearchFoods(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var source *models.FoodSource
	if raw := c.Query("source"); raw != "" {
		s := models.FoodSource(raw)
		if s != models.FoodSourceUser && s != models.FoodSourceInternal && s != models.FoodSourceExternal {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid source"))
			return
		}
		source = &s
	}

	result, err := h.foodService.SearchFoods(c.Query("q"), source, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFood godoc
//
//	@Summary		Get a food with its nutrients and conversions
//	@Tags			foods
//	@Produce		json
//	@Param			id	path		int	true	"Food ID"
//	@Success		200	{object}	models.Food
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods/{id} [get]
func (h *FoodHandler) GetFood(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	foodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	food, err := h.foodService.GetFoodByID(foodID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}

// UpdateFood godoc
//
//	@Summary		Update a user-defined food
//	@Description	Only foods created by the requesting user can be updated
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int			true	"Food ID"
//	@Param			request	body		foodRequest	true	"New food details"
//	@Success		200		{object}	models.Food
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods/{id} [put]
func (h *FoodHandler) UpdateFood(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	foodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	food, err := h.foodService.UpdateFood(userID, foodID, services.CreateFoodInput{
		Name:             req.Name,
		Brand:            req.Brand,
		Category:         req.Category,
		ServingSizeValue: req.ServingSizeValue,
		ServingSizeUnit:  req.ServingSizeUnit,
		DensityGPerML:    req.DensityGPerML,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, food)
}

// SetFoodNutrients godoc
//
//	@Summary		Replace a food's nutrient amounts
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Food ID"
//	@Param			request	body		setNutrientsRequest	true	"Nutrient amounts per 100g"
//	@Success		200		{array}		models.FoodNutrient
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods/{id}/nutrients [put]
func (h *FoodHandler) SetFoodNutrients(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	foodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req setNutrientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	nutrients, err := h.foodService.SetFoodNutrients(foodID, req.Nutrients)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, nutrients)
}

// ListNutrients godoc
//
//	@Summary		List the nutrient catalogue
//	@Tags			foods
//	@Produce		json
//	@Success		200	{array}		models.Nutrient
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/nutrients [get]
func (h *FoodHandler) ListNutrients(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	nutrients, err := h.foodService.ListNutrients()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, nutrients)
}

// AddConversion godoc
//
//	@Summary		Add a unit conversion
//	@Description	Adds a global conversion, or a food-specific one when foodId is set
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Param			request	body		addConversionRequest	true	"Conversion details"
//	@Success		201		{object}	models.UnitConversion
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods/conversions [post]
func (h *FoodHandler) AddConversion(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req addConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	conversion, err := h.foodService.AddConversion(req.FoodID, req.FromUnit, req.ToUnit, req.Factor)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversion)
}

// GetConversions godoc
//
//	@Summary		List conversions applicable to a food
//	@Description	Returns the food's own conversions plus the global ones
//	@Tags			foods
//	@Produce		json
//	@Param			id	path		int	true	"Food ID"
//	@Success		200	{array}		models.UnitConversion
//	@Failure		404	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods/{id}/conversions [get]
func (h *FoodHandler) GetConversions(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	foodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	conversions, err := h.foodService.GetConversions(foodID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversions)
}

// SetAlias godoc
//
//	@Summary		Set a personal alias or favorite flag for a food
//	@Tags			foods
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Food ID"
//	@Param			request	body		setAliasRequest	true	"Alias details"
//	@Success		200		{object}	models.UserFoodAlias
//	@Failure		404		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods/{id}/alias [put]
func (h *FoodHandler) SetAlias(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	foodID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req setAliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	alias, err := h.foodService.SetAlias(userID, foodID, req.Alias, req.IsFavorite, req.Tags)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, alias)
}

// GetFavorites godoc
//
//	@Summary		List the user's favorite foods
//	@Tags			foods
//	@Produce		json
//	@Success		200	{array}		models.UserFoodAlias
//	@Failure		401	{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/foods/favorites [get]
func (h *FoodHandler) GetFavorites(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	favorites, err := h.foodService.GetFavorites(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}
