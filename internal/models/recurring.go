package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is how often a recurring expense is due
type Frequency string

const (
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

// PaymentMethod is how a recurring expense is usually paid
type PaymentMethod string

const (
	PaymentMethodTransfer  PaymentMethod = "TRANSFER"
	PaymentMethodCash      PaymentMethod = "CASH"
	PaymentMethodCard      PaymentMethod = "CARD"
	PaymentMethodAutomatic PaymentMethod = "AUTOMATIC"
	PaymentMethodOther     PaymentMethod = "OTHER"
)

// LogStatus is the state of one occurrence of a recurring expense
type LogStatus string

const (
	LogStatusPending LogStatus = "PENDING"
	LogStatusPaid    LogStatus = "PAID"
	LogStatusSkipped LogStatus = "SKIPPED"
	LogStatusFailed  LogStatus = "FAILED"
)

// RecurringExpense is a bill due every week, month, or year.
// NextDueDate only ever moves forward: marking the expense paid
// advances it by exactly one period. Deleting a recurring expense sets
// Active to false; the row and its logs persist.
type RecurringExpense struct {
	Base
	UserID                 string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                   string          `gorm:"not null" json:"name"`
	Description            string          `json:"description,omitempty"`
	Amount                 decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Frequency              Frequency       `gorm:"not null;default:'MONTHLY'" json:"frequency"`
	DueDay                 *int            `json:"due_day,omitempty"`
	AutoApply              bool            `gorm:"default:false" json:"auto_apply"`
	NextDueDate            *time.Time      `json:"next_due_date,omitempty"`
	Active                 bool            `gorm:"default:true" json:"active"`
	Category               string          `json:"category,omitempty"`
	PaymentMethod          PaymentMethod   `gorm:"default:'TRANSFER'" json:"payment_method"`
	AlertDaysBefore        int             `gorm:"default:3" json:"alert_days_before"`
	LastGeneratedExpenseID *uint           `json:"last_generated_expense_id,omitempty"`

	// Relationships
	Logs []RecurringLog `gorm:"foreignKey:RecurringID" json:"logs,omitempty"`
}

// RecurringLog is an append-only payment history entry for a recurring
// expense. One log is created per mark-as-paid action.
type RecurringLog struct {
	Base
	RecurringID    uint             `gorm:"not null;index" json:"recurring_id"`
	DueDate        time.Time        `gorm:"not null" json:"due_date"`
	Status         LogStatus        `gorm:"default:'PENDING'" json:"status"`
	PaidAt         *time.Time       `json:"paid_at,omitempty"`
	Note           string           `json:"note,omitempty"`
	AutoGenerated  bool             `gorm:"default:false" json:"auto_generated"`
	VerifiedByUser bool             `gorm:"default:false" json:"verified_by_user"`
	AmountPaid     *decimal.Decimal `gorm:"type:numeric(10,2)" json:"amount_paid,omitempty"`
}
