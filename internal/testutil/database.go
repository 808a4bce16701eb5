// Package testutil provides shared helpers for setting up test databases
// and fixtures across service and integration tests.
package testutil

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"kamra/internal/models"
)

// allModels lists every model that gets migrated in test databases.
var allModels = []interface{}{
	&models.User{},
	&models.Share{},
	&models.MealType{},
	&models.DiaryDay{},
	&models.MealEntry{},
	&models.Food{},
	&models.Nutrient{},
	&models.FoodNutrient{},
	&models.UnitConversion{},
	&models.UserFoodAlias{},
	&models.BudgetMonth{},
	&models.BudgetWeek{},
	&models.BudgetExpense{},
	&models.RecurringExpense{},
	&models.RecurringLog{},
	&models.Saving{},
	&models.SavingLog{},
}

// SetupTestDB creates an in-memory SQLite database with all models
// migrated. Each call returns an isolated database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache memory database keeps all pooled connections
	// on the same store while staying isolated between tests.
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", nextID())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the underlying connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying sql.DB: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close test database: %v", err)
	}
}
