package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
)

// budgetService handles the budget ledger: months, weekly sub-budgets,
// and expense mutations. Every mutation that touches a derived balance
// runs inside a single database transaction so the expense row and the
// month/week balance rows commit or roll back together.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// monthStart returns midnight UTC on the first day of t's month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthEnd returns midnight UTC on the last day of t's month.
func monthEnd(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 1, -1)
}

// dayStart truncates t to midnight UTC.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sumExpenses totals the expense amounts of a month.
func sumExpenses(tx *gorm.DB, monthID uint, userID string) (decimal.Decimal, error) {
	var expenses []models.BudgetExpense
	if err := tx.Where("budget_month_id = ? AND user_id = ?", monthID, userID).Find(&expenses).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total, nil
}

// wrapErr passes AppErrors through untouched and hides everything else
// behind a generic internal error.
func wrapErr(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// GetMonths lists every budget month of the user and resolves the
// currently selected month, creating it with a zero budget when it does
// not exist yet. monthIndex is the zero-based calendar month within the
// current year; nil means the current month.
func (s *budgetService) GetMonths(userID string, monthIndex *int) (*MonthOverview, error) {
	now := time.Now()
	idx := int(now.Month()) - 1
	if monthIndex != nil {
		idx = *monthIndex
	}
	if idx < 0 || idx > 11 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 0 and 11")
	}

	firstDay := time.Date(now.Year(), time.Month(idx+1), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)

	var current models.BudgetMonth
	err := s.db.Where("user_id = ? AND month BETWEEN ? AND ?", userID, firstDay, lastDay).First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		current = models.BudgetMonth{
			UserID:          userID,
			Month:           firstDay,
			TotalBudget:     decimal.Zero,
			RemainingBudget: decimal.Zero,
		}
		if err := s.db.Create(&current).Error; err != nil {
			return nil, wrapErr(err)
		}
	} else if err != nil {
		return nil, wrapErr(err)
	}

	var allMonths []models.BudgetMonth
	if err := s.db.Where("user_id = ?", userID).Order("month ASC").Find(&allMonths).Error; err != nil {
		return nil, wrapErr(err)
	}

	return &MonthOverview{AllMonths: allMonths, CurrentMonth: current}, nil
}

// UpsertMonth creates or updates a budget month.
//
// Update: the total budget is replaced and the remaining budget is
// recomputed from the sum of the month's expenses. Weeks are never
// regenerated on update.
//
// Create: the month starts with remaining = total and the calendar
// month is partitioned into ceil(days/7) weekly windows of 7 days, the
// last clipped to the month's final day. The weekly budget is an equal
// split of the total; the shorter final window gets the same amount. A
// zero or negative total is accepted and produces zero/negative weekly
// budgets.
func (s *budgetService) UpsertMonth(userID string, month time.Time, totalBudget decimal.Decimal) (*MonthResult, error) {
	start := monthStart(month)

	var result MonthResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.BudgetMonth
		err := tx.Where("user_id = ? AND month = ?", userID, start).First(&existing).Error
		if err == nil {
			totalSpent, err := sumExpenses(tx, existing.ID, userID)
			if err != nil {
				return err
			}
			existing.TotalBudget = totalBudget
			existing.RemainingBudget = totalBudget.Sub(totalSpent)
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = MonthResult{Month: &existing, Created: false}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		newMonth := models.BudgetMonth{
			UserID:          userID,
			Month:           start,
			TotalBudget:     totalBudget,
			RemainingBudget: totalBudget,
		}
		if err := tx.Create(&newMonth).Error; err != nil {
			return err
		}

		end := monthEnd(month)
		daysInMonth := end.Day()
		numberOfWeeks := (daysInMonth + 6) / 7
		weeklyBudget := totalBudget.DivRound(decimal.NewFromInt(int64(numberOfWeeks)), 2)

		weeks := make([]models.BudgetWeek, 0, numberOfWeeks)
		for i := 0; i < numberOfWeeks; i++ {
			startDate := start.AddDate(0, 0, 7*i)
			if startDate.After(end) {
				break
			}
			endDate := startDate.AddDate(0, 0, 6)
			if endDate.After(end) {
				endDate = end
			}

			week := models.BudgetWeek{
				BudgetMonthID:         newMonth.ID,
				WeekNumber:            i + 1,
				StartDate:             startDate,
				EndDate:               endDate,
				WeeklyBudget:          weeklyBudget,
				RemainingWeeklyBudget: weeklyBudget,
			}
			if err := tx.Create(&week).Error; err != nil {
				return err
			}
			weeks = append(weeks, week)
		}

		result = MonthResult{Month: &newMonth, Weeks: weeks, Created: true}
		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &result, nil
}

// UpdateMonth replaces a month's total budget and recomputes the
// remaining budget from the expense sum.
func (s *budgetService) UpdateMonth(userID string, monthID uint, totalBudget decimal.Decimal) (*models.BudgetMonth, error) {
	var month models.BudgetMonth
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", monthID, userID).First(&month).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrMonthNotFound
			}
			return err
		}

		totalSpent, err := sumExpenses(tx, month.ID, userID)
		if err != nil {
			return err
		}

		month.TotalBudget = totalBudget
		month.RemainingBudget = totalBudget.Sub(totalSpent)
		return tx.Save(&month).Error
	})
	if err != nil {
		return nil, wrapErr(err)
	}
	return &month, nil
}

// GetWeeks returns the weekly sub-budgets of a month in week order.
func (s *budgetService) GetWeeks(userID string, monthID uint) ([]models.BudgetWeek, error) {
	var month models.BudgetMonth
	if err := s.db.Where("id = ? AND user_id = ?", monthID, userID).First(&month).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMonthNotFound
		}
		return nil, wrapErr(err)
	}

	var weeks []models.BudgetWeek
	if err := s.db.Where("budget_month_id = ?", month.ID).Order("week_number ASC").Find(&weeks).Error; err != nil {
		return nil, wrapErr(err)
	}
	return weeks, nil
}

// GetExpenses returns a month's expenses, newest first.
func (s *budgetService) GetExpenses(userID string, monthID uint) ([]models.BudgetExpense, error) {
	var expenses []models.BudgetExpense
	if err := s.db.Where("budget_month_id = ? AND user_id = ?", monthID, userID).
		Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, wrapErr(err)
	}
	return expenses, nil
}

// CreateExpense inserts an expense and decrements the owning month's
// remaining budget. When a date is supplied, the week whose window
// contains it also has its remaining balance decremented; a date
// outside every generated window leaves week balances untouched.
func (s *budgetService) CreateExpense(userID string, monthID uint, amount decimal.Decimal, description, category string, currency models.Currency, date *time.Time) (*models.BudgetExpense, error) {
	if currency == "" {
		currency = models.CurrencyHUF
	}

	var expense models.BudgetExpense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var month models.BudgetMonth
		if err := tx.Where("id = ? AND user_id = ?", monthID, userID).First(&month).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrMonthNotFound
			}
			return err
		}

		expense = models.BudgetExpense{
			BudgetMonthID: month.ID,
			UserID:        userID,
			Description:   description,
			Amount:        amount,
			Category:      category,
			Currency:      currency,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}

		month.RemainingBudget = month.RemainingBudget.Sub(amount)
		if err := tx.Save(&month).Error; err != nil {
			return err
		}

		if date != nil {
			day := dayStart(*date)
			var week models.BudgetWeek
			err := tx.Where("budget_month_id = ? AND start_date <= ? AND end_date >= ?", month.ID, day, day).
				First(&week).Error
			if err == nil {
				week.RemainingWeeklyBudget = week.RemainingWeeklyBudget.Sub(amount)
				if err := tx.Save(&week).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &expense, nil
}

// UpdateExpense replaces an expense's fields and adjusts the month's
// remaining budget by the amount delta.
//
// Week balances are left untouched here: an expense is matched to a
// week only at creation time and the match is not stored, so edits
// cannot be attributed back to a week. This is a known asymmetry with
// CreateExpense, kept deliberately.
func (s *budgetService) UpdateExpense(userID string, expenseID uint, amount decimal.Decimal, description, category string, currency models.Currency) (*models.BudgetExpense, error) {
	var expense models.BudgetExpense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrExpenseNotFound
			}
			return err
		}

		var month models.BudgetMonth
		if err := tx.Where("id = ?", expense.BudgetMonthID).First(&month).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrMonthNotFound
			}
			return err
		}

		diff := amount.Sub(expense.Amount)
		month.RemainingBudget = month.RemainingBudget.Sub(diff)
		if err := tx.Save(&month).Error; err != nil {
			return err
		}

		expense.Description = description
		expense.Amount = amount
		expense.Category = category
		if currency != "" {
			expense.Currency = currency
		}
		return tx.Save(&expense).Error
	})
	if err != nil {
		return nil, wrapErr(err)
	}

	return &expense, nil
}

// DeleteExpense destroys an expense and restores its amount to the
// month's remaining budget. Week balances are not restored, mirroring
// UpdateExpense.
func (s *budgetService) DeleteExpense(userID string, expenseID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.BudgetExpense
		if err := tx.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrExpenseNotFound
			}
			return err
		}

		var month models.BudgetMonth
		if err := tx.Where("id = ?", expense.BudgetMonthID).First(&month).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrMonthNotFound
			}
			return err
		}

		month.RemainingBudget = month.RemainingBudget.Add(expense.Amount)
		if err := tx.Save(&month).Error; err != nil {
			return err
		}

		return tx.Delete(&expense).Error
	})
	if err != nil {
		return wrapErr(err)
	}
	return nil
}
