package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
)

// recurringService handles recurring expenses and their payment logs.
type recurringService struct {
	db *gorm.DB
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB) RecurringServicer {
	return &recurringService{db: db}
}

// CreateRecurring creates a recurring expense. When a due day is given,
// the initial next due date is that day in the current month; otherwise
// it stays unset until the first payment.
func (s *recurringService) CreateRecurring(userID string, input CreateRecurringInput) (*models.RecurringExpense, error) {
	recurring := models.RecurringExpense{
		UserID:        userID,
		Name:          input.Name,
		Description:   input.Description,
		Amount:        input.Amount,
		Frequency:     input.Frequency,
		DueDay:        input.DueDay,
		Category:      input.Category,
		PaymentMethod: input.PaymentMethod,
		AutoApply:     input.AutoApply,
		Active:        true,
	}
	if recurring.Frequency == "" {
		recurring.Frequency = models.FrequencyMonthly
	}
	if recurring.PaymentMethod == "" {
		recurring.PaymentMethod = models.PaymentMethodTransfer
	}
	if input.AlertDaysBefore != nil {
		recurring.AlertDaysBefore = *input.AlertDaysBefore
	} else {
		recurring.AlertDaysBefore = 3
	}

	if input.DueDay != nil {
		now := time.Now()
		due := time.Date(now.Year(), now.Month(), *input.DueDay, 0, 0, 0, 0, time.UTC)
		recurring.NextDueDate = &due
	}

	if err := s.db.Create(&recurring).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &recurring, nil
}

// GetActiveRecurring lists the user's active recurring expenses with
// their payment logs, soonest due first.
func (s *recurringService) GetActiveRecurring(userID string) ([]models.RecurringExpense, error) {
	var recurring []models.RecurringExpense
	if err := s.db.Where("user_id = ? AND active = ?", userID, true).
		Preload("Logs").Order("next_due_date ASC").Find(&recurring).Error; err != nil {
		return nil, wrapErr(err)
	}
	return recurring, nil
}

// GetRecurringByID returns one recurring expense with its logs.
func (s *recurringService) GetRecurringByID(userID string, recurringID uint) (*models.RecurringExpense, error) {
	var recurring models.RecurringExpense
	if err := s.db.Where("id = ? AND user_id = ?", recurringID, userID).
		Preload("Logs").First(&recurring).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecurringNotFound
		}
		return nil, wrapErr(err)
	}
	return &recurring, nil
}

// UpdateRecurring updates a recurring expense's fields. Nil fields are
// left unchanged. Setting Active applies the soft-delete/restore.
func (s *recurringService) UpdateRecurring(userID string, recurringID uint, input UpdateRecurringInput) (*models.RecurringExpense, error) {
	recurring, err := s.GetRecurringByID(userID, recurringID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Amount != nil {
		updates["amount"] = *input.Amount
	}
	if input.Frequency != nil {
		updates["frequency"] = *input.Frequency
	}
	if input.DueDay != nil {
		updates["due_day"] = *input.DueDay
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.PaymentMethod != nil {
		updates["payment_method"] = *input.PaymentMethod
	}
	if input.AutoApply != nil {
		updates["auto_apply"] = *input.AutoApply
	}
	if input.AlertDaysBefore != nil {
		updates["alert_days_before"] = *input.AlertDaysBefore
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if len(updates) > 0 {
		if err := s.db.Model(recurring).Updates(updates).Error; err != nil {
			return nil, wrapErr(err)
		}
	}

	return recurring, nil
}

// DeactivateRecurring soft-deletes a recurring expense. The row and its
// logs persist; only the active flag flips.
func (s *recurringService) DeactivateRecurring(userID string, recurringID uint) error {
	recurring, err := s.GetRecurringByID(userID, recurringID)
	if err != nil {
		return err
	}

	if err := s.db.Model(recurring).Update("active", false).Error; err != nil {
		return wrapErr(err)
	}
	return nil
}

// MarkPaid appends a PAID log for the recurring expense and advances
// its next due date by exactly one period of its frequency, measured
// from the stored next due date (or now when unset). Paying an overdue
// expense therefore never catches up multiple periods at once.
func (s *recurringService) MarkPaid(userID string, recurringID uint, dueDate *time.Time, amountPaid *decimal.Decimal, note string) (*PaymentResult, error) {
	var result PaymentResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recurring models.RecurringExpense
		if err := tx.Where("id = ? AND user_id = ?", recurringID, userID).First(&recurring).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrRecurringNotFound
			}
			return err
		}

		now := time.Now()
		logDue := now
		if dueDate != nil {
			logDue = *dueDate
		}
		paid := recurring.Amount
		if amountPaid != nil {
			paid = *amountPaid
		}

		log := models.RecurringLog{
			RecurringID:    recurring.ID,
			DueDate:        logDue,
			Status:         models.LogStatusPaid,
			PaidAt:         &now,
			Note:           note,
			AmountPaid:     &paid,
			VerifiedByUser: true,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		current := now
		if recurring.NextDueDate != nil {
			current = *recurring.NextDueDate
		}
		var next time.Time
		switch recurring.Frequency {
		case models.FrequencyWeekly:
			next = current.AddDate(0, 0, 7)
		case models.FrequencyYearly:
			next = current.AddDate(1, 0, 0)
		default:
			next = current.AddDate(0, 1, 0)
		}
		recurring.NextDueDate = &next
		if err := tx.Save(&recurring).Error; err != nil {
			return err
		}

		result = PaymentResult{Log: &log, Recurring: &recurring}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &result, nil
}

// GetUpcoming lists active recurring expenses due within the next 7
// days, soonest first. There is no lower bound, so overdue items are
// included.
func (s *recurringService) GetUpcoming(userID string) ([]models.RecurringExpense, error) {
	now := time.Now()
	horizon := time.Date(now.Year(), now.Month(), now.Day()+7, 0, 0, 0, 0, time.UTC)

	var upcoming []models.RecurringExpense
	if err := s.db.Where("user_id = ? AND active = ? AND next_due_date <= ?", userID, true, horizon).
		Order("next_due_date ASC").Find(&upcoming).Error; err != nil {
		return nil, wrapErr(err)
	}
	return upcoming, nil
}
