package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kamra/internal/models"
)

var fixtureCounter atomic.Int64

// nextID returns a unique suffix for fixture names within a test run.
func nextID() int64 {
	return fixtureCounter.Add(1)
}

// CreateTestUser creates a user with a unique email and a known password
// ("password123").
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	user := &models.User{
		Email:       fmt.Sprintf("user%d@example.com", nextID()),
		Password:    string(hash),
		DisplayName: "Test User",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestMonth creates a budget month with the given total, remaining
// set equal to the total, and no weeks.
func CreateTestMonth(t *testing.T, db *gorm.DB, userID string, month time.Time, total decimal.Decimal) *models.BudgetMonth {
	t.Helper()

	m := &models.BudgetMonth{
		UserID:          userID,
		Month:           time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC),
		TotalBudget:     total,
		RemainingBudget: total,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test month: %v", err)
	}
	return m
}

// CreateTestExpense creates an expense row without touching any derived
// balances.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, monthID uint, amount decimal.Decimal) *models.BudgetExpense {
	t.Helper()

	e := &models.BudgetExpense{
		BudgetMonthID: monthID,
		UserID:        userID,
		Description:   fmt.Sprintf("expense %d", nextID()),
		Amount:        amount,
		Currency:      models.CurrencyHUF,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return e
}

// CreateTestRecurring creates an active monthly recurring expense with
// the given next due date.
func CreateTestRecurring(t *testing.T, db *gorm.DB, userID string, nextDue *time.Time) *models.RecurringExpense {
	t.Helper()

	r := &models.RecurringExpense{
		UserID:      userID,
		Name:        fmt.Sprintf("recurring %d", nextID()),
		Amount:      decimal.NewFromInt(5000),
		Frequency:   models.FrequencyMonthly,
		NextDueDate: nextDue,
		Active:      true,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to create test recurring expense: %v", err)
	}
	return r
}

// CreateTestFood creates a user-sourced food with a unique name.
func CreateTestFood(t *testing.T, db *gorm.DB, userID string) *models.Food {
	t.Helper()

	f := &models.Food{
		Source:          models.FoodSourceUser,
		Name:            fmt.Sprintf("food %d", nextID()),
		CreatedByUserID: &userID,
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("failed to create test food: %v", err)
	}
	return f
}

// CreateTestNutrient creates a nutrient with a unique code.
func CreateTestNutrient(t *testing.T, db *gorm.DB) *models.Nutrient {
	t.Helper()

	n := &models.Nutrient{
		Code: fmt.Sprintf("nutrient_%d", nextID()),
		Name: "Test Nutrient",
		Unit: "g",
	}
	if err := db.Create(n).Error; err != nil {
		t.Fatalf("failed to create test nutrient: %v", err)
	}
	return n
}

// CreateTestMealType creates a custom meal type owned by the given user.
func CreateTestMealType(t *testing.T, db *gorm.DB, userID string) *models.MealType {
	t.Helper()

	mt := &models.MealType{
		UserID:     &userID,
		Name:       fmt.Sprintf("meal %d", nextID()),
		OrderIndex: 10,
	}
	if err := db.Create(mt).Error; err != nil {
		t.Fatalf("failed to create test meal type: %v", err)
	}
	return mt
}

// CreateTestSaving creates an active savings goal.
func CreateTestSaving(t *testing.T, db *gorm.DB, userID string) *models.Saving {
	t.Helper()

	s := &models.Saving{
		UserID: userID,
		Name:   fmt.Sprintf("saving %d", nextID()),
		Active: true,
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("failed to create test saving: %v", err)
	}
	return s
}
