package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/testutil"
)

func TestSeedDefaultMealTypes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.AssertNoError(t, SeedDefaultMealTypes(db))
	// Seeding twice must not duplicate.
	testutil.AssertNoError(t, SeedDefaultMealTypes(db))

	var count int64
	db.Model(&models.MealType{}).Where("user_id IS NULL").Count(&count)
	if count != 4 {
		t.Errorf("expected 4 built-in meal types, got %d", count)
	}
}

func TestGetMealTypes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.AssertNoError(t, SeedDefaultMealTypes(db))
	svc := NewDiaryService(db)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)

	_, err := svc.CreateMealType(user.ID, "Second Breakfast", 5)
	testutil.AssertNoError(t, err)
	_, err = svc.CreateMealType(other.ID, "Elevenses", 5)
	testutil.AssertNoError(t, err)

	mealTypes, err := svc.GetMealTypes(user.ID)
	testutil.AssertNoError(t, err)

	// Built-ins plus the user's own, never another user's.
	if len(mealTypes) != 5 {
		t.Fatalf("expected 5 meal types, got %d", len(mealTypes))
	}
	if mealTypes[0].Name != "Breakfast" {
		t.Errorf("expected Breakfast first, got %s", mealTypes[0].Name)
	}
	if mealTypes[4].Name != "Second Breakfast" {
		t.Errorf("expected custom type last, got %s", mealTypes[4].Name)
	}
}

func TestDeleteMealType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.AssertNoError(t, SeedDefaultMealTypes(db))
	svc := NewDiaryService(db)
	user := testutil.CreateTestUser(t, db)

	custom := testutil.CreateTestMealType(t, db, user.ID)
	testutil.AssertNoError(t, svc.DeleteMealType(user.ID, custom.ID))

	t.Run("built-in types are protected", func(t *testing.T) {
		var builtin models.MealType
		testutil.AssertNoError(t, db.Where("user_id IS NULL").First(&builtin).Error)

		err := svc.DeleteMealType(user.ID, builtin.ID)
		testutil.AssertAppError(t, err, apperrors.ErrMealTypeNotFound)
	})
}

func TestGetDiaryDay_CreatesOnDemand(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewDiaryService(db)
	user := testutil.CreateTestUser(t, db)

	date := time.Date(2024, time.May, 12, 18, 45, 0, 0, time.UTC)
	day, err := svc.GetDiaryDay(user.ID, date)
	testutil.AssertNoError(t, err)

	if !day.Date.Equal(time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected date truncated to midnight, got %v", day.Date)
	}
	if len(day.Entries) != 0 {
		t.Errorf("expected empty day, got %d entries", len(day.Entries))
	}

	// The same date resolves to the same day.
	again, err := svc.GetDiaryDay(user.ID, date.Add(3*time.Hour))
	testutil.AssertNoError(t, err)
	if again.ID != day.ID {
		t.Error("expected the existing day to be reused")
	}
}

func TestAddEntry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.AssertNoError(t, SeedDefaultMealTypes(db))
	svc := NewDiaryService(db)
	user := testutil.CreateTestUser(t, db)
	food := testutil.CreateTestFood(t, db, user.ID)

	var breakfast models.MealType
	testutil.AssertNoError(t, db.Where("user_id IS NULL AND name = ?", "Breakfast").First(&breakfast).Error)

	date := time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)
	entry, err := svc.AddEntry(user.ID, date, breakfast.ID, food.ID, decimal.NewFromInt(150), models.QuantityUnitGram, "with butter")
	testutil.AssertNoError(t, err)

	if entry.CreatedByUserID != user.ID {
		t.Errorf("expected entry author %s, got %s", user.ID, entry.CreatedByUserID)
	}

	day, err := svc.GetDiaryDay(user.ID, date)
	testutil.AssertNoError(t, err)
	if len(day.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(day.Entries))
	}
	if day.Entries[0].Food.ID != food.ID {
		t.Error("expected the food to be preloaded")
	}

	t.Run("unknown meal type", func(t *testing.T) {
		_, err := svc.AddEntry(user.ID, date, 9999, food.ID, decimal.NewFromInt(1), models.QuantityUnitGram, "")
		testutil.AssertAppError(t, err, apperrors.ErrMealTypeNotFound)
	})

	t.Run("another user's custom meal type", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		custom := testutil.CreateTestMealType(t, db, other.ID)
		_, err := svc.AddEntry(user.ID, date, custom.ID, food.ID, decimal.NewFromInt(1), models.QuantityUnitGram, "")
		testutil.AssertAppError(t, err, apperrors.ErrMealTypeNotFound)
	})

	t.Run("unknown food", func(t *testing.T) {
		_, err := svc.AddEntry(user.ID, date, breakfast.ID, 9999, decimal.NewFromInt(1), models.QuantityUnitGram, "")
		testutil.AssertAppError(t, err, apperrors.ErrFoodNotFound)
	})
}

func TestUpdateAndDeleteEntry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	testutil.AssertNoError(t, SeedDefaultMealTypes(db))
	svc := NewDiaryService(db)
	user := testutil.CreateTestUser(t, db)
	food := testutil.CreateTestFood(t, db, user.ID)

	var lunch models.MealType
	testutil.AssertNoError(t, db.Where("user_id IS NULL AND name = ?", "Lunch").First(&lunch).Error)

	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	entry, err := svc.AddEntry(user.ID, date, lunch.ID, food.ID, decimal.NewFromInt(200), models.QuantityUnitGram, "")
	testutil.AssertNoError(t, err)

	quantity := decimal.NewFromInt(250)
	updated, err := svc.UpdateEntry(user.ID, entry.ID, &quantity, nil, nil)
	testutil.AssertNoError(t, err)

	var stored models.MealEntry
	testutil.AssertNoError(t, db.First(&stored, updated.ID).Error)
	if !stored.QuantityValue.Equal(quantity) {
		t.Errorf("expected quantity 250, got %s", stored.QuantityValue)
	}

	t.Run("other user cannot edit", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		_, err := svc.UpdateEntry(other.ID, entry.ID, &quantity, nil, nil)
		testutil.AssertAppError(t, err, apperrors.ErrMealEntryNotFound)
	})

	testutil.AssertNoError(t, svc.DeleteEntry(user.ID, entry.ID))

	var count int64
	db.Model(&models.MealEntry{}).Where("id = ?", entry.ID).Count(&count)
	if count != 0 {
		t.Error("expected entry to be deleted")
	}
}
