package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the currency of an expense
type Currency string

const (
	CurrencyHUF Currency = "HUF"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// BudgetMonth is one user's budget for one calendar month.
// RemainingBudget is a derived balance: TotalBudget minus the sum of
// the month's expense amounts, maintained incrementally on expense
// mutations and recomputed from the expense sum on month updates.
type BudgetMonth struct {
	Base
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Month           time.Time       `gorm:"not null" json:"month"`
	TotalBudget     decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"total_budget"`
	RemainingBudget decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"remaining_budget"`

	// Relationships
	Weeks    []BudgetWeek    `gorm:"foreignKey:BudgetMonthID" json:"weeks,omitempty"`
	Expenses []BudgetExpense `gorm:"foreignKey:BudgetMonthID" json:"expenses,omitempty"`
}

// BudgetWeek is a 7-day window of a budget month. Windows are generated
// once at month creation, cover the month contiguously without overlap,
// and the last window is clipped to the month's final day.
type BudgetWeek struct {
	Base
	BudgetMonthID         uint            `gorm:"not null;index" json:"budget_month_id"`
	WeekNumber            int             `gorm:"not null" json:"week_number"`
	StartDate             time.Time       `gorm:"not null" json:"start_date"`
	EndDate               time.Time       `gorm:"not null" json:"end_date"`
	WeeklyBudget          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"weekly_budget"`
	RemainingWeeklyBudget decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"remaining_weekly_budget"`
}

// BudgetExpense is a single expense inside a budget month. An expense is
// matched to a week only at creation time, from the date supplied in the
// request; no week foreign key is stored.
type BudgetExpense struct {
	Base
	BudgetMonthID uint            `gorm:"not null;index" json:"budget_month_id"`
	UserID        string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Category      string          `json:"category,omitempty"`
	Currency      Currency        `gorm:"default:'HUF'" json:"currency"`
}
