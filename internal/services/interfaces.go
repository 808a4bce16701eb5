package services

import (
	"time"

	"github.com/shopspring/decimal"

	"kamra/internal/models"
	"kamra/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	UpdateProfile(userID, displayName, timezone string, unitMass *models.MassUnit, unitVolume *models.VolumeUnit) (*models.User, error)
}

// MonthOverview is the response of the month listing: every month the
// user has, plus the (possibly just created) currently selected month.
type MonthOverview struct {
	AllMonths    []models.BudgetMonth `json:"all_months"`
	CurrentMonth models.BudgetMonth   `json:"current_month"`
}

// MonthResult is the response of a month upsert. Weeks is only
// populated when the month was created, never on update.
type MonthResult struct {
	Month   *models.BudgetMonth `json:"month"`
	Weeks   []models.BudgetWeek `json:"weeks,omitempty"`
	Created bool                `json:"created"`
}

// BudgetServicer defines the contract for the budget ledger: months,
// their weekly sub-budgets, and expense mutations with derived-balance
// maintenance.
type BudgetServicer interface {
	GetMonths(userID string, monthIndex *int) (*MonthOverview, error)
	UpsertMonth(userID string, month time.Time, totalBudget decimal.Decimal) (*MonthResult, error)
	UpdateMonth(userID string, monthID uint, totalBudget decimal.Decimal) (*models.BudgetMonth, error)
	GetWeeks(userID string, monthID uint) ([]models.BudgetWeek, error)
	GetExpenses(userID string, monthID uint) ([]models.BudgetExpense, error)
	CreateExpense(userID string, monthID uint, amount decimal.Decimal, description, category string, currency models.Currency, date *time.Time) (*models.BudgetExpense, error)
	UpdateExpense(userID string, expenseID uint, amount decimal.Decimal, description, category string, currency models.Currency) (*models.BudgetExpense, error)
	DeleteExpense(userID string, expenseID uint) error
}

// CreateRecurringInput holds the fields for creating a recurring expense.
type CreateRecurringInput struct {
	Name            string
	Description     string
	Amount          decimal.Decimal
	Frequency       models.Frequency
	DueDay          *int
	Category        string
	PaymentMethod   models.PaymentMethod
	AutoApply       bool
	AlertDaysBefore *int
}

// UpdateRecurringInput holds the optional fields for updating a
// recurring expense. Nil fields are left unchanged.
type UpdateRecurringInput struct {
	Name            string
	Description     *string
	Amount          *decimal.Decimal
	Frequency       *models.Frequency
	DueDay          *int
	Category        *string
	PaymentMethod   *models.PaymentMethod
	AutoApply       *bool
	AlertDaysBefore *int
	Active          *bool
}

// PaymentResult is returned by MarkPaid: the appended log together with
// the recurring expense carrying its advanced due date.
type PaymentResult struct {
	Log       *models.RecurringLog     `json:"log"`
	Recurring *models.RecurringExpense `json:"recurring"`
}

// RecurringServicer defines the contract for recurring expenses and
// their payment logs.
type RecurringServicer interface {
	CreateRecurring(userID string, input CreateRecurringInput) (*models.RecurringExpense, error)
	GetActiveRecurring(userID string) ([]models.RecurringExpense, error)
	GetRecurringByID(userID string, recurringID uint) (*models.RecurringExpense, error)
	UpdateRecurring(userID string, recurringID uint, input UpdateRecurringInput) (*models.RecurringExpense, error)
	DeactivateRecurring(userID string, recurringID uint) error
	MarkPaid(userID string, recurringID uint, dueDate *time.Time, amountPaid *decimal.Decimal, note string) (*PaymentResult, error)
	GetUpcoming(userID string) ([]models.RecurringExpense, error)
}

// SavingServicer defines the contract for savings goals and their
// contribution logs.
type SavingServicer interface {
	CreateSaving(userID, name string, targetAmount *decimal.Decimal) (*models.Saving, error)
	GetActiveSavings(userID string) ([]models.Saving, error)
	AddSavingLog(userID string, savingID uint, amount decimal.Decimal, note string) (*models.SavingLog, error)
	DeactivateSaving(userID string, savingID uint) error
}

// CreateFoodInput holds the fields for creating a food record.
type CreateFoodInput struct {
	Name             string
	Brand            string
	Category         string
	ServingSizeValue *decimal.Decimal
	ServingSizeUnit  *models.ServingUnit
	DensityGPerML    *decimal.Decimal
}

// NutrientAmount pairs a nutrient with its per-100g amount for a food.
type NutrientAmount struct {
	NutrientID    uint            `json:"nutrient_id"`
	AmountPer100g decimal.Decimal `json:"amount_per_100g"`
}

// FoodServicer defines the contract for the food/nutrient reference data.
type FoodServicer interface {
	CreateFood(userID string, input CreateFoodInput) (*models.Food, error)
	SearchFoods(query string, source *models.FoodSource, page pagination.PageRequest) (*pagination.PageResponse[models.Food], error)
	GetFoodByID(foodID uint) (*models.Food, error)
	UpdateFood(userID string, foodID uint, input CreateFoodInput) (*models.Food, error)
	SetFoodNutrients(foodID uint, amounts []NutrientAmount) ([]models.FoodNutrient, error)
	ListNutrients() ([]models.Nutrient, error)
	AddConversion(foodID *uint, from, to models.QuantityUnit, factor decimal.Decimal) (*models.UnitConversion, error)
	GetConversions(foodID uint) ([]models.UnitConversion, error)
	SetAlias(userID string, foodID uint, alias string, isFavorite bool, tags []string) (*models.UserFoodAlias, error)
	GetFavorites(userID string) ([]models.UserFoodAlias, error)
}

// DiaryServicer defines the contract for the meal diary: meal types,
// diary days, and meal entries.
type DiaryServicer interface {
	GetMealTypes(userID string) ([]models.MealType, error)
	CreateMealType(userID, name string, orderIndex int) (*models.MealType, error)
	UpdateMealType(userID string, mealTypeID uint, name string, orderIndex *int) (*models.MealType, error)
	DeleteMealType(userID string, mealTypeID uint) error
	GetDiaryDay(userID string, date time.Time) (*models.DiaryDay, error)
	AddEntry(userID string, date time.Time, mealTypeID, foodID uint, quantity decimal.Decimal, unit models.QuantityUnit, note string) (*models.MealEntry, error)
	UpdateEntry(userID string, entryID uint, quantity *decimal.Decimal, unit *models.QuantityUnit, note *string) (*models.MealEntry, error)
	DeleteEntry(userID string, entryID uint) error
}

// ShareList separates the shares a user granted from those received.
type ShareList struct {
	Granted  []models.Share `json:"granted"`
	Received []models.Share `json:"received"`
}

// ShareServicer defines the contract for per-user data sharing grants.
type ShareServicer interface {
	CreateShare(ownerID, targetEmail string, scope models.ShareScope, scopeType models.ShareScopeType, label string) (*models.Share, error)
	GetShares(userID string) (*ShareList, error)
	DeleteShare(ownerID string, shareID uint) error
}
