package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/pagination"
)

// foodService handles the food/nutrient reference data.
type foodService struct {
	db *gorm.DB
}

// NewFoodService creates a new FoodServicer.
func NewFoodService(db *gorm.DB) FoodServicer {
	return &foodService{db: db}
}

// CreateFood creates a user-sourced food record.
func (s *foodService) CreateFood(userID string, input CreateFoodInput) (*models.Food, error) {
	if input.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}

	food := models.Food{
		Source:           models.FoodSourceUser,
		Name:             input.Name,
		Brand:            input.Brand,
		Category:         input.Category,
		ServingSizeValue: input.ServingSizeValue,
		ServingSizeUnit:  input.ServingSizeUnit,
		DensityGPerML:    input.DensityGPerML,
		CreatedByUserID:  &userID,
	}
	if err := s.db.Create(&food).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &food, nil
}

// SearchFoods returns a paginated food list filtered by a name/brand
// substring and an optional source.
func (s *foodService) SearchFoods(query string, source *models.FoodSource, page pagination.PageRequest) (*pagination.PageResponse[models.Food], error) {
	page.Defaults()

	base := s.db.Model(&models.Food{})
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", pattern, pattern)
	}
	if source != nil {
		base = base.Where("source = ?", *source)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, wrapErr(err)
	}

	var foods []models.Food
	if err := base.Order("name ASC").Scopes(pagination.Paginate(page)).Find(&foods).Error; err != nil {
		return nil, wrapErr(err)
	}

	result := pagination.NewPageResponse(foods, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetFoodByID returns a food with its nutrients and unit conversions.
func (s *foodService) GetFoodByID(foodID uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.Preload("Nutrients.Nutrient").Preload("Conversions").
		Where("id = ?", foodID).First(&food).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFoodNotFound
		}
		return nil, wrapErr(err)
	}
	return &food, nil
}

// UpdateFood updates a user food. Only the creator may edit; curated
// and external foods are read-only.
func (s *foodService) UpdateFood(userID string, foodID uint, input CreateFoodInput) (*models.Food, error) {
	var food models.Food
	if err := s.db.Where("id = ? AND source = ? AND created_by_user_id = ?", foodID, models.FoodSourceUser, userID).
		First(&food).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFoodNotFound
		}
		return nil, wrapErr(err)
	}

	updates := make(map[string]interface{})
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Brand != "" {
		updates["brand"] = input.Brand
	}
	if input.Category != "" {
		updates["category"] = input.Category
	}
	if input.ServingSizeValue != nil {
		updates["serving_size_value"] = *input.ServingSizeValue
	}
	if input.ServingSizeUnit != nil {
		updates["serving_size_unit"] = *input.ServingSizeUnit
	}
	if input.DensityGPerML != nil {
		updates["density_g_per_ml"] = *input.DensityGPerML
	}

	if len(updates) > 0 {
		if err := s.db.Model(&food).Updates(updates).Error; err != nil {
			return nil, wrapErr(err)
		}
	}

	return &food, nil
}

// SetFoodNutrients replaces a food's per-100g nutrient amounts.
func (s *foodService) SetFoodNutrients(foodID uint, amounts []NutrientAmount) ([]models.FoodNutrient, error) {
	var rows []models.FoodNutrient
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var food models.Food
		if err := tx.Where("id = ?", foodID).First(&food).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrFoodNotFound
			}
			return err
		}

		for _, a := range amounts {
			var count int64
			if err := tx.Model(&models.Nutrient{}).Where("id = ?", a.NutrientID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return apperrors.ErrNutrientNotFound
			}
		}

		if err := tx.Where("food_id = ?", food.ID).Delete(&models.FoodNutrient{}).Error; err != nil {
			return err
		}

		for _, a := range amounts {
			row := models.FoodNutrient{
				FoodID:        food.ID,
				NutrientID:    a.NutrientID,
				AmountPer100g: a.AmountPer100g,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return rows, nil
}

// ListNutrients returns the nutrient catalog ordered by code.
func (s *foodService) ListNutrients() ([]models.Nutrient, error) {
	var nutrients []models.Nutrient
	if err := s.db.Order("code ASC").Find(&nutrients).Error; err != nil {
		return nil, wrapErr(err)
	}
	return nutrients, nil
}

// AddConversion registers a unit conversion factor, optionally scoped
// to a single food.
func (s *foodService) AddConversion(foodID *uint, from, to models.QuantityUnit, factor decimal.Decimal) (*models.UnitConversion, error) {
	if factor.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "factor must be positive")
	}
	if foodID != nil {
		var count int64
		if err := s.db.Model(&models.Food{}).Where("id = ?", *foodID).Count(&count).Error; err != nil {
			return nil, wrapErr(err)
		}
		if count == 0 {
			return nil, apperrors.ErrFoodNotFound
		}
	}

	conversion := models.UnitConversion{
		FromUnit: from,
		ToUnit:   to,
		Factor:   factor,
		FoodID:   foodID,
	}
	if err := s.db.Create(&conversion).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &conversion, nil
}

// GetConversions returns a food's conversions together with the global
// (food-independent) ones.
func (s *foodService) GetConversions(foodID uint) ([]models.UnitConversion, error) {
	var conversions []models.UnitConversion
	if err := s.db.Where("food_id = ? OR food_id IS NULL", foodID).
		Order("id ASC").Find(&conversions).Error; err != nil {
		return nil, wrapErr(err)
	}
	return conversions, nil
}

// SetAlias creates or updates the user's alias record for a food.
func (s *foodService) SetAlias(userID string, foodID uint, alias string, isFavorite bool, tags []string) (*models.UserFoodAlias, error) {
	var count int64
	if err := s.db.Model(&models.Food{}).Where("id = ?", foodID).Count(&count).Error; err != nil {
		return nil, wrapErr(err)
	}
	if count == 0 {
		return nil, apperrors.ErrFoodNotFound
	}

	var record models.UserFoodAlias
	err := s.db.Where("user_id = ? AND food_id = ?", userID, foodID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.UserFoodAlias{
			UserID:     userID,
			FoodID:     foodID,
			Alias:      alias,
			IsFavorite: isFavorite,
			Tags:       tags,
		}
		if err := s.db.Create(&record).Error; err != nil {
			return nil, wrapErr(err)
		}
		return &record, nil
	} else if err != nil {
		return nil, wrapErr(err)
	}

	record.Alias = alias
	record.IsFavorite = isFavorite
	record.Tags = tags
	if err := s.db.Save(&record).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &record, nil
}

// GetFavorites lists the user's favorite foods.
func (s *foodService) GetFavorites(userID string) ([]models.UserFoodAlias, error) {
	var favorites []models.UserFoodAlias
	if err := s.db.Where("user_id = ? AND is_favorite = ?", userID, true).
		Preload("Food").Find(&favorites).Error; err != nil {
		return nil, wrapErr(err)
	}
	return favorites, nil
}
