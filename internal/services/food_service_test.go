package services

import (
	"testing"

	"github.com/shopspring/decimal"

	apperrors "kamra/internal/errors"
	"kamra/internal/models"
	"kamra/internal/pagination"
	"kamra/internal/testutil"
)

func TestCreateFood(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFoodService(db)
	user := testutil.CreateTestUser(t, db)

	serving := decimal.NewFromInt(30)
	unit := models.ServingUnitGram
	food, err := svc.CreateFood(user.ID, CreateFoodInput{
		Name:             "Rolled Oats",
		Brand:            "Acme",
		ServingSizeValue: &serving,
		ServingSizeUnit:  &unit,
	})
	testutil.AssertNoError(t, err)

	if food.Source != models.FoodSourceUser {
		t.Errorf("expected user source, got %s", food.Source)
	}
	if food.CreatedByUserID == nil || *food.CreatedByUserID != user.ID {
		t.Error("expected creator to be recorded")
	}

	t.Run("missing name", func(t *testing.T) {
		_, err := svc.CreateFood(user.ID, CreateFoodInput{})
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}

func TestSearchFoods(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFoodService(db)
	user := testutil.CreateTestUser(t, db)

	for _, name := range []string{"Apple", "Apple Juice", "Banana"} {
		_, err := svc.CreateFood(user.ID, CreateFoodInput{Name: name})
		testutil.AssertNoError(t, err)
	}

	result, err := svc.SearchFoods("apple", nil, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 2 {
		t.Errorf("expected 2 matches, got %d", result.TotalItems)
	}
	if len(result.Data) != 2 || result.Data[0].Name != "Apple" {
		t.Errorf("expected name-ordered results, got %+v", result.Data)
	}

	t.Run("source filter", func(t *testing.T) {
		internal := models.FoodSourceInternal
		result, err := svc.SearchFoods("", &internal, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 0 {
			t.Errorf("expected no curated foods, got %d", result.TotalItems)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := svc.SearchFoods("", nil, pagination.PageRequest{Page: 2, PageSize: 2})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 {
			t.Errorf("expected 1 item on page 2, got %d", len(result.Data))
		}
	})
}

func TestUpdateFood_OwnershipRules(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFoodService(db)
	user := testutil.CreateTestUser(t, db)
	food := testutil.CreateTestFood(t, db, user.ID)

	updated, err := svc.UpdateFood(user.ID, food.ID, CreateFoodInput{Name: "Renamed"})
	testutil.AssertNoError(t, err)
	_ = updated

	var stored models.Food
	testutil.AssertNoError(t, db.First(&stored, food.ID).Error)
	if stored.Name != "Renamed" {
		t.Errorf("expected renamed food, got %s", stored.Name)
	}

	t.Run("another user's food", func(t *testing.T) {
		other := testutil.CreateTestUser(t, db)
		_, err := svc.UpdateFood(other.ID, food.ID, CreateFoodInput{Name: "Hijack"})
		testutil.AssertAppError(t, err, apperrors.ErrFoodNotFound)
	})

	t.Run("curated food is read-only", func(t *testing.T) {
		curated := models.Food{Source: models.FoodSourceInternal, Name: "Reference Apple"}
		testutil.AssertNoError(t, db.Create(&curated).Error)

		_, err := svc.UpdateFood(user.ID, curated.ID, CreateFoodInput{Name: "Nope"})
		testutil.AssertAppError(t, err, apperrors.ErrFoodNotFound)
	})
}

func TestSetFoodNutrients(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFoodService(db)
	user := testutil.CreateTestUser(t, db)
	food := testutil.CreateTestFood(t, db, user.ID)
	protein := testutil.CreateTestNutrient(t, db)
	carbs := testutil.CreateTestNutrient(t, db)

	rows, err := svc.SetFoodNutrients(food.ID, []NutrientAmount{
		{NutrientID: protein.ID, AmountPer100g: decimal.NewFromFloat(13.5)},
		{NutrientID: carbs.ID, AmountPer100g: decimal.NewFromFloat(60.2)},
	})
	testutil.AssertNoError(t, err)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// A second call replaces, never appends.
	rows, err = svc.SetFoodNutrients(food.ID, []NutrientAmount{
		{NutrientID: protein.ID, AmountPer100g: decimal.NewFromFloat(14.0)},
	})
	testutil.AssertNoError(t, err)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after replacement, got %d", len(rows))
	}

	var count int64
	db.Model(&models.FoodNutrient{}).Where("food_id = ?", food.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 stored nutrient row, got %d", count)
	}

	t.Run("unknown nutrient rolls back", func(t *testing.T) {
		_, err := svc.SetFoodNutrients(food.ID, []NutrientAmount{
			{NutrientID: 9999, AmountPer100g: decimal.NewFromInt(1)},
		})
		testutil.AssertAppError(t, err, apperrors.ErrNutrientNotFound)

		db.Model(&models.FoodNutrient{}).Where("food_id = ?", food.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected nutrients unchanged after rollback, got %d", count)
		}
	})
}

func TestConversions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFoodService(db)
	user := testutil.CreateTestUser(t, db)
	food := testutil.CreateTestFood(t, db, user.ID)

	_, err := svc.AddConversion(nil, models.QuantityUnitKilogram, models.QuantityUnitGram, decimal.NewFromInt(1000))
	testutil.AssertNoError(t, err)

	foodID := food.ID
	_, err = svc.AddConversion(&foodID, models.QuantityUnitPiece, models.QuantityUnitGram, decimal.NewFromInt(182))
	testutil.AssertNoError(t, err)

	// Food conversions include the global ones.
	conversions, err := svc.GetConversions(food.ID)
	testutil.AssertNoError(t, err)
	if len(conversions) != 2 {
		t.Errorf("expected 2 conversions, got %d", len(conversions))
	}

	t.Run("non-positive factor", func(t *testing.T) {
		_, err := svc.AddConversion(nil, models.QuantityUnitGram, models.QuantityUnitKilogram, decimal.Zero)
		testutil.AssertAppError(t, err, apperrors.ErrInvalidInput)
	})
}

func TestAliasAndFavorites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewFoodService(db)
	user := testutil.CreateTestUser(t, db)
	food := testutil.CreateTestFood(t, db, user.ID)

	alias, err := svc.SetAlias(user.ID, food.ID, "my oats", true, []string{"breakfast"})
	testutil.AssertNoError(t, err)
	if alias.Alias != "my oats" {
		t.Errorf("expected alias set, got %s", alias.Alias)
	}

	// Upsert: a second call updates the same record.
	alias2, err := svc.SetAlias(user.ID, food.ID, "my oats", false, nil)
	testutil.AssertNoError(t, err)
	if alias2.ID != alias.ID {
		t.Error("expected the existing alias record to be updated")
	}

	favorites, err := svc.GetFavorites(user.ID)
	testutil.AssertNoError(t, err)
	if len(favorites) != 0 {
		t.Errorf("expected no favorites after unfavoriting, got %d", len(favorites))
	}

	_, err = svc.SetAlias(user.ID, food.ID, "my oats", true, nil)
	testutil.AssertNoError(t, err)

	favorites, err = svc.GetFavorites(user.ID)
	testutil.AssertNoError(t, err)
	if len(favorites) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(favorites))
	}
	if favorites[0].Food.ID != food.ID {
		t.Error("expected the food to be preloaded")
	}
}
