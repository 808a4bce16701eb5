package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
)

// defaultMealTypes are seeded once and visible to every user.
var defaultMealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snack"}

// diaryService handles meal types, diary days, and meal entries.
type diaryService struct {
	db *gorm.DB
}

// NewDiaryService creates a new DiaryServicer.
func NewDiaryService(db *gorm.DB) DiaryServicer {
	return &diaryService{db: db}
}

// SeedDefaultMealTypes inserts the built-in meal types when missing.
// Called once at startup.
func SeedDefaultMealTypes(db *gorm.DB) error {
	for i, name := range defaultMealTypes {
		var count int64
		if err := db.Model(&models.MealType{}).
			Where("user_id IS NULL AND name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			mt := models.MealType{Name: name, OrderIndex: i + 1, IsDefault: true}
			if err := db.Create(&mt).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// GetMealTypes lists the built-in meal types together with the user's
// own, in display order.
func (s *diaryService) GetMealTypes(userID string) ([]models.MealType, error) {
	var mealTypes []models.MealType
	if err := s.db.Where("user_id IS NULL OR user_id = ?", userID).
		Order("order_index ASC, id ASC").Find(&mealTypes).Error; err != nil {
		return nil, wrapErr(err)
	}
	return mealTypes, nil
}

// CreateMealType creates a user-owned meal type.
func (s *diaryService) CreateMealType(userID, name string, orderIndex int) (*models.MealType, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if orderIndex <= 0 {
		orderIndex = 1
	}

	mealType := models.MealType{
		UserID:     &userID,
		Name:       name,
		OrderIndex: orderIndex,
	}
	if err := s.db.Create(&mealType).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &mealType, nil
}

// UpdateMealType renames or reorders a user-owned meal type. Built-in
// types cannot be edited.
func (s *diaryService) UpdateMealType(userID string, mealTypeID uint, name string, orderIndex *int) (*models.MealType, error) {
	var mealType models.MealType
	if err := s.db.Where("id = ? AND user_id = ?", mealTypeID, userID).First(&mealType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMealTypeNotFound
		}
		return nil, wrapErr(err)
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if orderIndex != nil {
		updates["order_index"] = *orderIndex
	}

	if len(updates) > 0 {
		if err := s.db.Model(&mealType).Updates(updates).Error; err != nil {
			return nil, wrapErr(err)
		}
	}

	return &mealType, nil
}

// DeleteMealType removes a user-owned meal type.
func (s *diaryService) DeleteMealType(userID string, mealTypeID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", mealTypeID, userID).Delete(&models.MealType{})
	if result.Error != nil {
		return wrapErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrMealTypeNotFound
	}
	return nil
}

// GetDiaryDay returns the user's diary for a date, creating an empty
// day when none exists. Entries are returned with their meal type and
// food preloaded.
func (s *diaryService) GetDiaryDay(userID string, date time.Time) (*models.DiaryDay, error) {
	day, err := s.getOrCreateDay(s.db, userID, date)
	if err != nil {
		return nil, wrapErr(err)
	}

	var full models.DiaryDay
	if err := s.db.Preload("Entries.MealType").Preload("Entries.Food").
		Where("id = ?", day.ID).First(&full).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &full, nil
}

func (s *diaryService) getOrCreateDay(tx *gorm.DB, userID string, date time.Time) (*models.DiaryDay, error) {
	day := dayStart(date)

	var record models.DiaryDay
	err := tx.Where("user_id = ? AND date = ?", userID, day).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.DiaryDay{UserID: userID, Date: day}
		if err := tx.Create(&record).Error; err != nil {
			return nil, err
		}
		return &record, nil
	} else if err != nil {
		return nil, err
	}
	return &record, nil
}

// AddEntry appends a meal entry to the user's diary for a date,
// creating the diary day on demand.
func (s *diaryService) AddEntry(userID string, date time.Time, mealTypeID, foodID uint, quantity decimal.Decimal, unit models.QuantityUnit, note string) (*models.MealEntry, error) {
	var entry models.MealEntry
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var mealTypeCount int64
		if err := tx.Model(&models.MealType{}).
			Where("id = ? AND (user_id IS NULL OR user_id = ?)", mealTypeID, userID).
			Count(&mealTypeCount).Error; err != nil {
			return err
		}
		if mealTypeCount == 0 {
			return apperrors.ErrMealTypeNotFound
		}

		var foodCount int64
		if err := tx.Model(&models.Food{}).Where("id = ?", foodID).Count(&foodCount).Error; err != nil {
			return err
		}
		if foodCount == 0 {
			return apperrors.ErrFoodNotFound
		}

		day, err := s.getOrCreateDay(tx, userID, date)
		if err != nil {
			return err
		}

		entry = models.MealEntry{
			DiaryDayID:      day.ID,
			MealTypeID:      mealTypeID,
			FoodID:          foodID,
			QuantityValue:   quantity,
			QuantityUnit:    unit,
			Note:            note,
			CreatedByUserID: userID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &entry, nil
}

// getOwnedEntry loads an entry and verifies the diary day belongs to
// the user.
func (s *diaryService) getOwnedEntry(entryID uint, userID string) (*models.MealEntry, error) {
	var entry models.MealEntry
	if err := s.db.Where("id = ?", entryID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMealEntryNotFound
		}
		return nil, wrapErr(err)
	}

	var day models.DiaryDay
	if err := s.db.Where("id = ? AND user_id = ?", entry.DiaryDayID, userID).First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMealEntryNotFound
		}
		return nil, wrapErr(err)
	}

	return &entry, nil
}

// UpdateEntry changes an entry's quantity, unit, or note.
func (s *diaryService) UpdateEntry(userID string, entryID uint, quantity *decimal.Decimal, unit *models.QuantityUnit, note *string) (*models.MealEntry, error) {
	entry, err := s.getOwnedEntry(entryID, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if quantity != nil {
		updates["quantity_value"] = *quantity
	}
	if unit != nil {
		updates["quantity_unit"] = *unit
	}
	if note != nil {
		updates["note"] = *note
	}

	if len(updates) > 0 {
		if err := s.db.Model(entry).Updates(updates).Error; err != nil {
			return nil, wrapErr(err)
		}
	}

	return entry, nil
}

// DeleteEntry removes a meal entry.
func (s *diaryService) DeleteEntry(userID string, entryID uint) error {
	entry, err := s.getOwnedEntry(entryID, userID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(entry).Error; err != nil {
		return wrapErr(err)
	}
	return nil
}
