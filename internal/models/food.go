package models

import "github.com/shopspring/decimal"

// FoodSource indicates where a food record originated
type FoodSource string

const (
	FoodSourceUser     FoodSource = "user"
	FoodSourceInternal FoodSource = "internal"
	FoodSourceExternal FoodSource = "external"
)

// ServingUnit is the unit of a food's serving size
type ServingUnit string

const (
	ServingUnitGram       ServingUnit = "g"
	ServingUnitMilliliter ServingUnit = "ml"
	ServingUnitPiece      ServingUnit = "piece"
)

// Food is a reference food record, either curated or user-created.
type Food struct {
	Base
	Source           FoodSource       `gorm:"not null" json:"source"`
	ExternalSource   string           `json:"external_source,omitempty"`
	ExternalID       string           `json:"external_id,omitempty"`
	Name             string           `gorm:"not null;index" json:"name"`
	Brand            string           `json:"brand,omitempty"`
	Category         string           `json:"category,omitempty"`
	ServingSizeValue *decimal.Decimal `gorm:"type:numeric(10,3)" json:"serving_size_value,omitempty"`
	ServingSizeUnit  *ServingUnit     `json:"serving_size_unit,omitempty"`
	DensityGPerML    *decimal.Decimal `gorm:"type:numeric(10,5)" json:"density_g_per_ml,omitempty"`
	CreatedByUserID  *string          `gorm:"type:uuid" json:"created_by_user_id,omitempty"`
	IsVerified       bool             `gorm:"default:true" json:"is_verified"`

	// Relationships
	Nutrients   []FoodNutrient   `gorm:"foreignKey:FoodID" json:"nutrients,omitempty"`
	Conversions []UnitConversion `gorm:"foreignKey:FoodID" json:"conversions,omitempty"`
}

// Nutrient is a catalog entry (e.g. "ENERC_KCAL", "Energy", "kcal").
type Nutrient struct {
	Base
	Code string `gorm:"uniqueIndex;not null" json:"code"`
	Name string `gorm:"not null" json:"name"`
	Unit string `gorm:"not null" json:"unit"`
}

// FoodNutrient is a nutrient amount per 100g of a food.
type FoodNutrient struct {
	Base
	FoodID        uint            `gorm:"not null;index" json:"food_id"`
	NutrientID    uint            `gorm:"not null" json:"nutrient_id"`
	AmountPer100g decimal.Decimal `gorm:"type:numeric(10,4);not null" json:"amount_per_100g"`

	// Relationships
	Nutrient Nutrient `gorm:"foreignKey:NutrientID" json:"nutrient,omitempty"`
}

// UnitConversion converts between quantity units, optionally scoped to
// a single food (e.g. 1 piece of this bread = 45 g).
type UnitConversion struct {
	Base
	FromUnit QuantityUnit    `gorm:"not null" json:"from_unit"`
	ToUnit   QuantityUnit    `gorm:"not null" json:"to_unit"`
	Factor   decimal.Decimal `gorm:"type:numeric(12,6);not null" json:"factor"`
	FoodID   *uint           `gorm:"index" json:"food_id,omitempty"`
}

// UserFoodAlias stores a user's personal name, favorite flag, and tags
// for a food.
type UserFoodAlias struct {
	Base
	UserID     string   `gorm:"type:uuid;not null;index" json:"user_id"`
	FoodID     uint     `gorm:"not null" json:"food_id"`
	Alias      string   `json:"alias,omitempty"`
	IsFavorite bool     `gorm:"default:false" json:"is_favorite"`
	Tags       []string `gorm:"serializer:json" json:"tags,omitempty"`

	// Relationships
	Food Food `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}
