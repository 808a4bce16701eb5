// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("frequency", validateFrequency)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("quantity_unit", validateQuantityUnit)
		_ = v.RegisterValidation("serving_unit", validateServingUnit)
		_ = v.RegisterValidation("food_source", validateFoodSource)
		_ = v.RegisterValidation("share_scope", validateShareScope)
		_ = v.RegisterValidation("share_scope_type", validateShareScopeType)
	}
}

func validateCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "HUF", "EUR", "USD":
		return true
	}
	return false
}

func validateFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "WEEKLY", "MONTHLY", "YEARLY":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "TRANSFER", "CASH", "CARD", "AUTOMATIC", "OTHER":
		return true
	}
	return false
}

func validateQuantityUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "g", "kg", "ml", "l", "piece":
		return true
	}
	return false
}

func validateServingUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "g", "ml", "piece":
		return true
	}
	return false
}

func validateFoodSource(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "user", "internal", "external":
		return true
	}
	return false
}

func validateShareScope(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "view", "edit":
		return true
	}
	return false
}

func validateShareScopeType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "meal", "budget":
		return true
	}
	return false
}
