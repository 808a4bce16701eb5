package models

import "github.com/shopspring/decimal"

// Saving is a named savings goal with an optional target amount.
type Saving struct {
	Base
	UserID       string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string           `gorm:"not null" json:"name"`
	TargetAmount *decimal.Decimal `gorm:"type:numeric(10,2)" json:"target_amount,omitempty"`
	Active       bool             `gorm:"default:true" json:"active"`

	// Relationships
	Logs []SavingLog `gorm:"foreignKey:SavingID" json:"logs,omitempty"`
}

// SavingLog records one contribution (or withdrawal, with a negative
// amount) toward a savings goal.
type SavingLog struct {
	Base
	SavingID        uint            `gorm:"not null;index" json:"saving_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Note            string          `json:"note,omitempty"`
	CreatedByUserID string          `gorm:"type:uuid;not null" json:"created_by_user_id"`
	Active          bool            `gorm:"default:true" json:"active"`
}
