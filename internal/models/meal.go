package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuantityUnit is the unit of a meal entry quantity
type QuantityUnit string

const (
	QuantityUnitGram       QuantityUnit = "g"
	QuantityUnitKilogram   QuantityUnit = "kg"
	QuantityUnitMilliliter QuantityUnit = "ml"
	QuantityUnitLiter      QuantityUnit = "l"
	QuantityUnitPiece      QuantityUnit = "piece"
)

// MealType is a named slot in the daily meal taxonomy (breakfast, lunch, ...).
// Rows with a nil UserID are the built-in defaults.
type MealType struct {
	Base
	UserID     *string `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name       string  `gorm:"not null" json:"name"`
	OrderIndex int     `gorm:"default:1" json:"order_index"`
	IsDefault  bool    `gorm:"default:false" json:"is_default"`
}

// DiaryDay groups the meal entries of one user for one calendar date.
type DiaryDay struct {
	Base
	UserID string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Date   time.Time `gorm:"not null" json:"date"`

	// Relationships
	Entries []MealEntry `gorm:"foreignKey:DiaryDayID" json:"entries,omitempty"`
}

// MealEntry is a single food eaten on a diary day.
type MealEntry struct {
	Base
	DiaryDayID      uint            `gorm:"not null;index" json:"diary_day_id"`
	MealTypeID      uint            `gorm:"not null" json:"meal_type_id"`
	FoodID          uint            `gorm:"not null" json:"food_id"`
	QuantityValue   decimal.Decimal `gorm:"type:numeric(10,3);not null" json:"quantity_value"`
	QuantityUnit    QuantityUnit    `gorm:"not null" json:"quantity_unit"`
	Note            string          `json:"note"`
	CreatedByUserID string          `gorm:"type:uuid;not null" json:"created_by_user_id"`

	// Relationships
	MealType MealType `gorm:"foreignKey:MealTypeID" json:"meal_type,omitempty"`
	Food     Food     `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}
