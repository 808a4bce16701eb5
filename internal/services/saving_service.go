package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
)

// savingService handles savings goals and their contribution logs.
type savingService struct {
	db *gorm.DB
}

// NewSavingService creates a new SavingServicer.
func NewSavingService(db *gorm.DB) SavingServicer {
	return &savingService{db: db}
}

// CreateSaving creates a savings goal with an optional target amount.
func (s *savingService) CreateSaving(userID, name string, targetAmount *decimal.Decimal) (*models.Saving, error) {
	saving := models.Saving{
		UserID:       userID,
		Name:         name,
		TargetAmount: targetAmount,
		Active:       true,
	}
	if err := s.db.Create(&saving).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &saving, nil
}

// GetActiveSavings lists the user's active savings goals with their logs.
func (s *savingService) GetActiveSavings(userID string) ([]models.Saving, error) {
	var savings []models.Saving
	if err := s.db.Where("user_id = ? AND active = ?", userID, true).
		Preload("Logs", "active = ?", true).Order("created_at ASC").Find(&savings).Error; err != nil {
		return nil, wrapErr(err)
	}
	return savings, nil
}

// getSavingByID returns a saving goal owned by the user.
func (s *savingService) getSavingByID(userID string, savingID uint) (*models.Saving, error) {
	var saving models.Saving
	if err := s.db.Where("id = ? AND user_id = ?", savingID, userID).First(&saving).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSavingNotFound
		}
		return nil, wrapErr(err)
	}
	return &saving, nil
}

// AddSavingLog records a contribution toward a goal. A negative amount
// records a withdrawal.
func (s *savingService) AddSavingLog(userID string, savingID uint, amount decimal.Decimal, note string) (*models.SavingLog, error) {
	saving, err := s.getSavingByID(userID, savingID)
	if err != nil {
		return nil, err
	}

	log := models.SavingLog{
		SavingID:        saving.ID,
		Amount:          amount,
		Note:            note,
		CreatedByUserID: userID,
		Active:          true,
	}
	if err := s.db.Create(&log).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &log, nil
}

// DeactivateSaving soft-deletes a savings goal; its logs persist.
func (s *savingService) DeactivateSaving(userID string, savingID uint) error {
	saving, err := s.getSavingByID(userID, savingID)
	if err != nil {
		return err
	}

	if err := s.db.Model(saving).Update("active", false).Error; err != nil {
		return wrapErr(err)
	}
	return nil
}
