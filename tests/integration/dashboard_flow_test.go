package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestDashboardFlow_MonthlySummary(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "dash@test.com", "password123")

	salaryID := app.createCategory(t, token, "Salary", "INCOME")
	rentID := app.createCategory(t, token, "Rent", "EXPENSE")

	now := time.Now()
	today := now.Format("2006-01-02")
	app.createTransaction(t, token, salaryID, "INCOME", "5000", today)
	app.createTransaction(t, token, rentID, "EXPENSE", "3000", today)

	// Budget on rent so the summary carries a budget status row
	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":%d,"year":%d,"amount":"4000"}`,
			rentID, int(now.Month()), now.Year()), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating budget, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/dashboard/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["total_income"] != "5000" {
		t.Errorf("expected total_income 5000, got %v", summary["total_income"])
	}
	if summary["total_expense"] != "3000" {
		t.Errorf("expected total_expense 3000, got %v", summary["total_expense"])
	}
	if summary["balance"] != "2000" {
		t.Errorf("expected balance 2000, got %v", summary["balance"])
	}
	if summary["savings_rate"] != "40" {
		t.Errorf("expected savings_rate 40, got %v", summary["savings_rate"])
	}

	budgetRows := summary["budget_status"].([]interface{})
	if len(budgetRows) != 1 {
		t.Fatalf("expected 1 budget status row, got %d", len(budgetRows))
	}
	row := budgetRows[0].(map[string]interface{})
	if row["category_name"] != "Rent" {
		t.Errorf("expected Rent status row, got %v", row["category_name"])
	}
	if row["percentage_used"] != "75" {
		t.Errorf("expected 75%% used, got %v", row["percentage_used"])
	}

	expenseRows := summary["expenses_by_category"].([]interface{})
	if len(expenseRows) != 1 {
		t.Fatalf("expected 1 expense category row, got %d", len(expenseRows))
	}

	recent := summary["recent_transactions"].([]interface{})
	if len(recent) != 2 {
		t.Errorf("expected 2 recent transactions, got %d", len(recent))
	}
}

func TestDashboardFlow_MonthlyComparison(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "compare@test.com", "password123")

	salaryID := app.createCategory(t, token, "Salary", "INCOME")
	foodID := app.createCategory(t, token, "Food", "EXPENSE")

	now := time.Now()
	today := now.Format("2006-01-02")
	// Middle of the previous month, avoids day-of-month rollover
	prevMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 14)
	prev := prevMonth.Format("2006-01-02")

	// Previous month: 4000 in, 1000 out
	app.createTransaction(t, token, salaryID, "INCOME", "4000", prev)
	app.createTransaction(t, token, foodID, "EXPENSE", "1000", prev)
	// Current month: 5000 in, 2000 out
	app.createTransaction(t, token, salaryID, "INCOME", "5000", today)
	app.createTransaction(t, token, foodID, "EXPENSE", "2000", today)

	rec := app.request("GET", "/api/v1/dashboard/comparison", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	comparison := parseJSON(t, rec)["comparison"].(map[string]interface{})

	current := comparison["current_month"].(map[string]interface{})
	if current["income"] != "5000" {
		t.Errorf("expected current income 5000, got %v", current["income"])
	}
	previous := comparison["previous_month"].(map[string]interface{})
	if previous["income"] != "4000" {
		t.Errorf("expected previous income 4000, got %v", previous["income"])
	}

	incomeVar := comparison["income_variation"].(map[string]interface{})
	if incomeVar["absolute"] != "1000" {
		t.Errorf("expected income variation absolute 1000, got %v", incomeVar["absolute"])
	}
	if incomeVar["percentage"] != "25" {
		t.Errorf("expected income variation 25%%, got %v", incomeVar["percentage"])
	}

	expenseVar := comparison["expense_variation"].(map[string]interface{})
	if expenseVar["percentage"] != "100" {
		t.Errorf("expected expense variation 100%%, got %v", expenseVar["percentage"])
	}
}

func TestDashboardFlow_YearlyOverview(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "yearly@test.com", "password123")

	salaryID := app.createCategory(t, token, "Salary", "INCOME")
	foodID := app.createCategory(t, token, "Food", "EXPENSE")

	// A full past year keeps the month series at 12 entries
	year := time.Now().Year() - 1
	// Spread activity over three months of the year
	for i, month := range []time.Month{time.January, time.February, time.March} {
		date := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		income := fmt.Sprintf("%d", 3000+i*1000)
		app.createTransaction(t, token, salaryID, "INCOME", income, date)
		app.createTransaction(t, token, foodID, "EXPENSE", "1000", date)
	}

	rec := app.request("GET", fmt.Sprintf("/api/v1/dashboard/yearly?year=%d", year), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	overview := parseJSON(t, rec)["overview"].(map[string]interface{})
	if overview["year"].(float64) != float64(year) {
		t.Errorf("expected year %d, got %v", year, overview["year"])
	}
	if overview["total_income"] != "12000" {
		t.Errorf("expected total_income 12000, got %v", overview["total_income"])
	}
	if overview["total_expense"] != "3000" {
		t.Errorf("expected total_expense 3000, got %v", overview["total_expense"])
	}

	monthly := overview["monthly_data"].([]interface{})
	if len(monthly) != 12 {
		t.Fatalf("expected 12 monthly rows, got %d", len(monthly))
	}
	march := monthly[2].(map[string]interface{})
	if march["income"] != "5000" {
		t.Errorf("expected March income 5000, got %v", march["income"])
	}

	// Best month is March (5000 - 1000 = 4000 balance)
	best := overview["best_month"].(map[string]interface{})
	if best["month"].(float64) != 3 {
		t.Errorf("expected best month March, got %v", best["month"])
	}

	incomeTrend := overview["income_trend"].(map[string]interface{})
	if incomeTrend["direction"] != "INCREASING" {
		t.Errorf("expected INCREASING income trend, got %v", incomeTrend["direction"])
	}
}
