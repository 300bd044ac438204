package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// getAlerts fetches all alerts for the user.
func getAlerts(t *testing.T, app *testApp, token string) []interface{} {
	t.Helper()
	rec := app.request("GET", "/api/v1/alerts", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing alerts, got %d: %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["alerts"].([]interface{})
}

// getBudgetStatus fetches the status row for one budget.
func getBudgetStatus(t *testing.T, app *testApp, token string, budgetID float64) map[string]interface{} {
	t.Helper()
	rec := app.request("GET", fmt.Sprintf("/api/v1/budgets/%.0f/status", budgetID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching budget status, got %d: %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["status"].(map[string]interface{})
}

func TestBudgetAlertFlow_ThresholdCrossing(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "thresholds@test.com", "password123")

	catID := app.createCategory(t, token, "Groceries", "EXPENSE")

	now := time.Now()
	today := now.Format("2006-01-02")

	// Budget of 1000 for the current month
	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":%d,"year":%d,"amount":"1000"}`,
			catID, int(now.Month()), now.Year()), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating budget, got %d: %s", rec.Code, rec.Body.String())
	}
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	// Step 1: spend 500 (50%), no alert yet
	app.createTransaction(t, token, catID, "EXPENSE", "500", today)
	if alerts := getAlerts(t, app, token); len(alerts) != 0 {
		t.Fatalf("expected no alerts at 50%% usage, got %d", len(alerts))
	}
	status := getBudgetStatus(t, app, token, budgetID)
	if status["percentage_used"] != "50" {
		t.Errorf("expected percentage_used 50, got %v", status["percentage_used"])
	}
	if status["status"] != "WITHIN_BUDGET" {
		t.Errorf("expected WITHIN_BUDGET, got %v", status["status"])
	}

	// Step 2: spend 350 more (85%), crosses the 80%% warning threshold
	app.createTransaction(t, token, catID, "EXPENSE", "350", today)
	alerts := getAlerts(t, app, token)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert at 85%% usage, got %d", len(alerts))
	}
	warning := alerts[0].(map[string]interface{})
	if warning["level"] != "WARNING" {
		t.Errorf("expected WARNING level, got %v", warning["level"])
	}
	if warning["type"] != "BUDGET_WARNING" {
		t.Errorf("expected BUDGET_WARNING type, got %v", warning["type"])
	}
	status = getBudgetStatus(t, app, token, budgetID)
	if status["status"] != "NEAR_LIMIT" {
		t.Errorf("expected NEAR_LIMIT, got %v", status["status"])
	}

	// Step 3: spend 200 more (105%), crosses the 100%% threshold. The warning
	// is retired and replaced by a single critical alert.
	app.createTransaction(t, token, catID, "EXPENSE", "200", today)
	alerts = getAlerts(t, app, token)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 active alert after exceeding, got %d", len(alerts))
	}
	critical := alerts[0].(map[string]interface{})
	if critical["level"] != "CRITICAL" {
		t.Errorf("expected CRITICAL level, got %v", critical["level"])
	}
	if critical["type"] != "BUDGET_EXCEEDED" {
		t.Errorf("expected BUDGET_EXCEEDED type, got %v", critical["type"])
	}
	status = getBudgetStatus(t, app, token, budgetID)
	if status["status"] != "EXCEEDED" {
		t.Errorf("expected EXCEEDED, got %v", status["status"])
	}
	if status["percentage_used"] != "105" {
		t.Errorf("expected percentage_used 105, got %v", status["percentage_used"])
	}

	// Step 4: further spending while already exceeded is idempotent
	app.createTransaction(t, token, catID, "EXPENSE", "50", today)
	if alerts = getAlerts(t, app, token); len(alerts) != 1 {
		t.Fatalf("expected still 1 alert after further spending, got %d", len(alerts))
	}

	// Unread count reflects the single active alert
	rec = app.request("GET", "/api/v1/alerts/unread-count", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if count := parseJSON(t, rec)["unread_count"].(float64); count != 1 {
		t.Errorf("expected unread count 1, got %.0f", count)
	}

	// Mark it read
	alertID := critical["id"].(float64)
	rec = app.request("PATCH", fmt.Sprintf("/api/v1/alerts/%.0f/read", alertID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 marking alert read, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/alerts/unread-count", "", token)
	if count := parseJSON(t, rec)["unread_count"].(float64); count != 0 {
		t.Errorf("expected unread count 0 after marking read, got %.0f", count)
	}
}

func TestBudgetAlertFlow_RaisingBudgetRetiresAlert(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "raise@test.com", "password123")

	catID := app.createCategory(t, token, "Dining", "EXPENSE")
	now := time.Now()
	today := now.Format("2006-01-02")

	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":%d,"year":%d,"amount":"100"}`,
			catID, int(now.Month()), now.Year()), token)
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	// Spend 90 (90%), a warning fires
	app.createTransaction(t, token, catID, "EXPENSE", "90", today)
	if alerts := getAlerts(t, app, token); len(alerts) != 1 {
		t.Fatalf("expected 1 warning alert, got %d", len(alerts))
	}

	// Raise the budget to 200; usage drops to 45%% and the alert retires
	rec = app.request("PUT", fmt.Sprintf("/api/v1/budgets/%.0f", budgetID),
		`{"amount":"200"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating budget, got %d: %s", rec.Code, rec.Body.String())
	}
	if alerts := getAlerts(t, app, token); len(alerts) != 0 {
		t.Fatalf("expected alert retired after raising budget, got %d alerts", len(alerts))
	}

	status := getBudgetStatus(t, app, token, budgetID)
	if status["status"] != "WITHIN_BUDGET" {
		t.Errorf("expected WITHIN_BUDGET after raise, got %v", status["status"])
	}
}

func TestBudgetAlertFlow_DeletingTransactionRetiresAlert(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "retire@test.com", "password123")

	catID := app.createCategory(t, token, "Transport", "EXPENSE")
	now := time.Now()
	today := now.Format("2006-01-02")

	app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":%d,"year":%d,"amount":"100"}`,
			catID, int(now.Month()), now.Year()), token)

	txID := app.createTransaction(t, token, catID, "EXPENSE", "120", today)
	if alerts := getAlerts(t, app, token); len(alerts) != 1 {
		t.Fatalf("expected 1 critical alert, got %d", len(alerts))
	}

	// Deleting the transaction drops spending back to zero
	rec := app.request("DELETE", fmt.Sprintf("/api/v1/transactions/%.0f", txID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting transaction, got %d: %s", rec.Code, rec.Body.String())
	}
	if alerts := getAlerts(t, app, token); len(alerts) != 0 {
		t.Fatalf("expected alert retired after deleting transaction, got %d alerts", len(alerts))
	}
}

func TestBudgetAlertFlow_AlertSurvivesBudgetDeletion(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "history@test.com", "password123")

	catID := app.createCategory(t, token, "Shopping", "EXPENSE")
	now := time.Now()
	today := now.Format("2006-01-02")

	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":%d,"year":%d,"amount":"50"}`,
			catID, int(now.Month()), now.Year()), token)
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	app.createTransaction(t, token, catID, "EXPENSE", "60", today)
	if alerts := getAlerts(t, app, token); len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}

	// Deleting the budget keeps the alert as history
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/budgets/%.0f", budgetID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting budget, got %d: %s", rec.Code, rec.Body.String())
	}
	alerts := getAlerts(t, app, token)
	if len(alerts) != 1 {
		t.Fatalf("expected alert to survive budget deletion, got %d alerts", len(alerts))
	}
}

func TestBudgetAlertFlow_CheckBudgets(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "check@test.com", "password123")

	now := time.Now()
	today := now.Format("2006-01-02")

	// Two budgeted categories, one of them over the warning threshold
	groceriesID := app.createCategory(t, token, "Groceries", "EXPENSE")
	rentID := app.createCategory(t, token, "Rent", "EXPENSE")
	for _, catID := range []float64{groceriesID, rentID} {
		rec := app.request("POST", "/api/v1/budgets",
			fmt.Sprintf(`{"category_id":%.0f,"month":%d,"year":%d,"amount":"1000"}`,
				catID, int(now.Month()), now.Year()), token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 creating budget, got %d: %s", rec.Code, rec.Body.String())
		}
	}
	app.createTransaction(t, token, groceriesID, "EXPENSE", "900", today)

	rec := app.request("POST", "/api/v1/budgets/check", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on check, got %d: %s", rec.Code, rec.Body.String())
	}
	// Only the groceries budget (90%) is at or above the warning threshold
	if evaluated := parseJSON(t, rec)["evaluated"].(float64); evaluated != 1 {
		t.Errorf("expected 1 budget at or above threshold, got %.0f", evaluated)
	}

	alerts := getAlerts(t, app, token)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert after sweep, got %d", len(alerts))
	}
	if alerts[0].(map[string]interface{})["level"] != "WARNING" {
		t.Errorf("expected WARNING, got %v", alerts[0].(map[string]interface{})["level"])
	}

	// Monthly statuses cover both budgets
	rec = app.request("GET", "/api/v1/budgets/status", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	statuses := parseJSON(t, rec)["statuses"].([]interface{})
	if len(statuses) != 2 {
		t.Errorf("expected 2 status rows, got %d", len(statuses))
	}
}
