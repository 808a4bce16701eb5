package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kamra/internal/handlers"
	"kamra/internal/logger"
	"kamra/internal/middleware"
	"kamra/internal/services"
	"kamra/internal/testutil"
	"kamra/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated
// in-memory SQLite database.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	if err := services.SeedDefaultMealTypes(db); err != nil {
		t.Fatalf("failed to seed meal types: %v", err)
	}

	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db)
	recurringService := services.NewRecurringService(db)
	savingService := services.NewSavingService(db)
	foodService := services.NewFoodService(db)
	diaryService := services.NewDiaryService(db)
	shareService := services.NewShareService(db)

	authHandler := handlers.NewAuthHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	savingHandler := handlers.NewSavingHandler(savingService)
	foodHandler := handlers.NewFoodHandler(foodService)
	diaryHandler := handlers.NewDiaryHandler(diaryService)
	shareHandler := handlers.NewShareHandler(shareService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/profile", authHandler.GetProfile)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)

	budget := protected.Group("/budget")
	budget.GET("/months", budgetHandler.GetMonths)
	budget.POST("/month", budgetHandler.UpsertMonth)
	budget.PUT("/month/:id", budgetHandler.UpdateMonth)
	budget.GET("/weeks/:monthId", budgetHandler.GetWeeks)
	budget.GET("/expenses/:monthId", budgetHandler.GetExpenses)
	budget.POST("/expenses", budgetHandler.CreateExpense)
	budget.PUT("/expenses/:id", budgetHandler.UpdateExpense)
	budget.DELETE("/expenses/:id", budgetHandler.DeleteExpense)

	recurring := budget.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.GET("/upcoming/list", recurringHandler.GetUpcoming)
	recurring.GET("/:id", recurringHandler.GetRecurringByID)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeactivateRecurring)
	recurring.POST("/:id/pay", recurringHandler.MarkPaid)

	savings := budget.Group("/savings")
	savings.POST("", savingHandler.CreateSaving)
	savings.GET("", savingHandler.GetSavings)
	savings.POST("/:id/logs", savingHandler.AddSavingLog)
	savings.DELETE("/:id", savingHandler.DeactivateSaving)

	foods := protected.Group("/foods")
	foods.POST("", foodHandler.CreateFood)
	foods.GET("", foodHandler.SearchFoods)
	foods.GET("/favorites", foodHandler.GetFavorites)
	foods.POST("/conversions", foodHandler.AddConversion)
	foods.GET("/:id", foodHandler.GetFood)
	foods.PUT("/:id", foodHandler.UpdateFood)
	foods.PUT("/:id/nutrients", foodHandler.SetFoodNutrients)
	foods.GET("/:id/conversions", foodHandler.GetConversions)
	foods.PUT("/:id/alias", foodHandler.SetAlias)

	protected.GET("/nutrients", foodHandler.ListNutrients)

	meals := protected.Group("/meals")
	meals.GET("/types", diaryHandler.GetMealTypes)
	meals.POST("/types", diaryHandler.CreateMealType)
	meals.PUT("/types/:id", diaryHandler.UpdateMealType)
	meals.DELETE("/types/:id", diaryHandler.DeleteMealType)

	diary := protected.Group("/diary")
	diary.POST("/entries", diaryHandler.AddEntry)
	diary.PUT("/entries/:id", diaryHandler.UpdateEntry)
	diary.DELETE("/entries/:id", diaryHandler.DeleteEntry)
	diary.GET("/:date", diaryHandler.GetDiaryDay)

	shares := protected.Group("/shares")
	shares.POST("", shareHandler.CreateShare)
	shares.GET("", shareHandler.GetShares)
	shares.DELETE("/:id", shareHandler.DeleteShare)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"displayName":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}
