package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"moneyflow/internal/handlers"
	"moneyflow/internal/logger"
	"moneyflow/internal/middleware"
	"moneyflow/internal/models"
	"moneyflow/internal/services"
	"moneyflow/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
		&models.Alert{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	alertService := services.NewAlertService(db)
	transactionService := services.NewTransactionService(db, alertService)
	budgetService := services.NewBudgetService(db, alertService)
	dashboardService := services.NewDashboardService(db, budgetService, alertService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	alertHandler := handlers.NewAlertHandler(alertService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/with-count", categoryHandler.GetCategoriesWithCount)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/summary", transactionHandler.GetPeriodSummary)
	transactions.GET("/by-category", transactionHandler.GetExpensesByCategory)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/status", budgetHandler.GetMonthlyStatuses)
	budgets.POST("/check", budgetHandler.CheckBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/status", budgetHandler.GetBudgetStatus)

	alerts := protected.Group("/alerts")
	alerts.GET("", alertHandler.GetAlerts)
	alerts.GET("/unread-count", alertHandler.GetUnreadCount)
	alerts.PATCH("/read", alertHandler.MarkMultipleAsRead)
	alerts.PATCH("/read-all", alertHandler.MarkAllAsRead)
	alerts.POST("/clean", alertHandler.CleanOldAlerts)
	alerts.GET("/:id", alertHandler.GetAlert)
	alerts.PATCH("/:id/read", alertHandler.MarkAsRead)
	alerts.DELETE("/:id", alertHandler.DeleteAlert)

	dashboard := protected.Group("/dashboard")
	dashboard.GET("/summary", dashboardHandler.GetMonthlySummary)
	dashboard.GET("/comparison", dashboardHandler.GetMonthlyComparison)
	dashboard.GET("/yearly", dashboardHandler.GetYearlyOverview)

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

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["access_token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["access_token"].(string), result["refresh_token"].(string)
}

// createCategory creates a category and returns its ID.
func (app *testApp) createCategory(t *testing.T, token, name, categoryType string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"type":%q}`, name, categoryType)
	rec := app.request("POST", "/api/v1/categories", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category failed: %d %s", rec.Code, rec.Body.String())
	}
	category := parseJSON(t, rec)["category"].(map[string]interface{})
	return category["id"].(float64)
}

// createTransaction records a transaction dated today and returns its ID.
func (app *testApp) createTransaction(t *testing.T, token string, categoryID float64, txType, amount, date string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"category_id":%.0f,"type":%q,"amount":%q,"description":"Integration test","date":%q,"payment_method":"PIX"}`,
		categoryID, txType, amount, date)
	rec := app.request("POST", "/api/v1/transactions", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction failed: %d %s", rec.Code, rec.Body.String())
	}
	transaction := parseJSON(t, rec)["transaction"].(map[string]interface{})
	return transaction["id"].(float64)
}
