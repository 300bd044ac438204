package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"moneyflow/internal/config"
	"moneyflow/internal/database"
	"moneyflow/internal/handlers"
	"moneyflow/internal/logger"
	"moneyflow/internal/middleware"
	"moneyflow/internal/services"
	"moneyflow/internal/validator"

	_ "moneyflow/internal/docs" // Import swagger docs
)

// @title           MoneyFlow API
// @version         1.0
// @description     MoneyFlow is a personal finance API for tracking income and expenses, setting monthly budgets per category, and receiving alerts when spending approaches or exceeds those budgets.
// @termsOfService  http://swagger.io/terms/

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

	validator.Register()

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

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	alertService := services.NewAlertService(db)
	transactionService := services.NewTransactionService(db, alertService)
	budgetService := services.NewBudgetService(db, alertService)
	dashboardService := services.NewDashboardService(db, budgetService, alertService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	alertHandler := handlers.NewAlertHandler(alertService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
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

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/with-count", categoryHandler.GetCategoriesWithCount)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/summary", transactionHandler.GetPeriodSummary)
	transactions.GET("/by-category", transactionHandler.GetExpensesByCategory)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/status", budgetHandler.GetMonthlyStatuses)
	budgets.POST("/check", budgetHandler.CheckBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/status", budgetHandler.GetBudgetStatus)

	// Alert routes
	alerts := protected.Group("/alerts")
	alerts.GET("", alertHandler.GetAlerts)
	alerts.GET("/unread-count", alertHandler.GetUnreadCount)
	alerts.PATCH("/read", alertHandler.MarkMultipleAsRead)
	alerts.PATCH("/read-all", alertHandler.MarkAllAsRead)
	alerts.POST("/clean", alertHandler.CleanOldAlerts)
	alerts.GET("/:id", alertHandler.GetAlert)
	alerts.PATCH("/:id/read", alertHandler.MarkAsRead)
	alerts.DELETE("/:id", alertHandler.DeleteAlert)

	// Dashboard routes
	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetMonthlySummary)
	dashboard.GET("/comparison", dashboardHandler.GetMonthlyComparison)
	dashboard.GET("/yearly", dashboardHandler.GetYearlyOverview)

	log.Infof("Starting MoneyFlow backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
