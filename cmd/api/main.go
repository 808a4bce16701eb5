package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kamra/internal/config"
	"kamra/internal/database"
	"kamra/internal/handlers"
	"kamra/internal/logger"
	"kamra/internal/middleware"
	"kamra/internal/services"
	"kamra/internal/validator"

	_ "kamra/internal/docs" // Import swagger docs
)

// @title           Kamra API
// @version         1.0
// @description     Kamra is a household backend for tracking meals, foods and nutrients, monthly budgets, and recurring expenses.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	db := dbManager.DB()
	if err := services.SeedDefaultMealTypes(db); err != nil {
		return fmt.Errorf("failed to seed meal types: %w", err)
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
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/profile", authHandler.GetProfile)
	protected.PUT("/auth/profile", authHandler.UpdateProfile)

	// Budget routes
	budget := protected.Group("/budget")
	budget.GET("/months", budgetHandler.GetMonths)
	budget.POST("/month", budgetHandler.UpsertMonth)
	budget.PUT("/month/:id", budgetHandler.UpdateMonth)
	budget.GET("/weeks/:monthId", budgetHandler.GetWeeks)
	budget.GET("/expenses/:monthId", budgetHandler.GetExpenses)
	budget.POST("/expenses", budgetHandler.CreateExpense)
	budget.PUT("/expenses/:id", budgetHandler.UpdateExpense)
	budget.DELETE("/expenses/:id", budgetHandler.DeleteExpense)

	// Recurring expense routes
	recurring := budget.Group("/recurring")
	recurring.POST("", recurringHandler.CreateRecurring)
	recurring.GET("", recurringHandler.GetRecurring)
	recurring.GET("/upcoming/list", recurringHandler.GetUpcoming)
	recurring.GET("/:id", recurringHandler.GetRecurringByID)
	recurring.PUT("/:id", recurringHandler.UpdateRecurring)
	recurring.DELETE("/:id", recurringHandler.DeactivateRecurring)
	recurring.POST("/:id/pay", recurringHandler.MarkPaid)

	// Savings routes
	savings := budget.Group("/savings")
	savings.POST("", savingHandler.CreateSaving)
	savings.GET("", savingHandler.GetSavings)
	savings.POST("/:id/logs", savingHandler.AddSavingLog)
	savings.DELETE("/:id", savingHandler.DeactivateSaving)

	// Food routes
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

	// Meal type routes
	meals := protected.Group("/meals")
	meals.GET("/types", diaryHandler.GetMealTypes)
	meals.POST("/types", diaryHandler.CreateMealType)
	meals.PUT("/types/:id", diaryHandler.UpdateMealType)
	meals.DELETE("/types/:id", diaryHandler.DeleteMealType)

	// Diary routes
	diary := protected.Group("/diary")
	diary.POST("/entries", diaryHandler.AddEntry)
	diary.PUT("/entries/:id", diaryHandler.UpdateEntry)
	diary.DELETE("/entries/:id", diaryHandler.DeleteEntry)
	diary.GET("/:date", diaryHandler.GetDiaryDay)

	// Share routes
	shares := protected.Group("/shares")
	shares.POST("", shareHandler.CreateShare)
	shares.GET("", shareHandler.GetShares)
	shares.DELETE("/:id", shareHandler.DeleteShare)

	log.Infof("Starting Kamra backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
