package models

import (
	"time"

	"kamra/internal/uuid"

	"gorm.io/gorm"
)

// MassUnit is a default mass unit preference
type MassUnit string

const (
	MassUnitGram     MassUnit = "g"
	MassUnitKilogram MassUnit = "kg"
)

// VolumeUnit is a default volume unit preference
type VolumeUnit string

const (
	VolumeUnitMilliliter VolumeUnit = "ml"
	VolumeUnitLiter      VolumeUnit = "l"
)

// User represents the user model in the database
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	Password          string     `gorm:"not null" json:"-"`
	DisplayName       string     `json:"display_name"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	Timezone          string     `gorm:"default:'Europe/Budapest'" json:"timezone"`
	DefaultUnitMass   MassUnit   `gorm:"default:'g'" json:"default_unit_mass"`
	DefaultUnitVolume VolumeUnit `gorm:"default:'ml'" json:"default_unit_volume"`

	// Relationships
	Shares       []Share            `gorm:"foreignKey:OwnerUserID" json:"shares,omitempty"`
	MealTypes    []MealType         `gorm:"foreignKey:UserID" json:"meal_types,omitempty"`
	DiaryDays    []DiaryDay         `gorm:"foreignKey:UserID" json:"diary_days,omitempty"`
	BudgetMonths []BudgetMonth      `gorm:"foreignKey:UserID" json:"budget_months,omitempty"`
	Recurring    []RecurringExpense `gorm:"foreignKey:UserID" json:"recurring,omitempty"`
	Savings      []Saving           `gorm:"foreignKey:UserID" json:"savings,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new users
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New()
	}
	return nil
}
