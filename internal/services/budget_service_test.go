package services

import (
	"testing"

	"moneyflow/internal/models"
	"moneyflow/internal/money"
	"moneyflow/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		budget, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("1500.50"))
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		testutil.AssertDecimalEqual(t, budget.Amount, "1500.50")
		if budget.Month != 3 || budget.Year != 2025 {
			t.Errorf("expected period 3/2025, got %d/%d", budget.Month, budget.Year)
		}
		if budget.Category.ID != cat.ID {
			t.Error("expected category to be attached")
		}
	})

	t.Run("duplicate_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("1000"))
		testutil.AssertNoError(t, err)

		_, err = svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("2000"))
		testutil.AssertAppError(t, err, "BUDGET_ALREADY_EXISTS")
	})

	t.Run("recreate_after_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		first, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("1000"))
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteBudget(user.ID, first.ID))

		// The soft-deleted budget no longer blocks the period.
		_, err = svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("2000"))
		testutil.AssertNoError(t, err)
	})

	t.Run("income_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeIncome)

		_, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("1000"))
		testutil.AssertAppError(t, err, "INVALID_CATEGORY_TYPE")
	})

	t.Run("invalid_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user.ID, cat.ID, 13, 2025, d("1000"))
		testutil.AssertAppError(t, err, "INVALID_MONTH")

		_, err = svc.CreateBudget(user.ID, cat.ID, 0, 2025, d("1000"))
		testutil.AssertAppError(t, err, "INVALID_MONTH")
	})

	t.Run("invalid_year", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user.ID, cat.ID, 3, 1999, d("1000"))
		testutil.AssertAppError(t, err, "INVALID_YEAR")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("0"))
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("wrong_user_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user2.ID, models.CategoryTypeExpense)

		_, err := svc.CreateBudget(user1.ID, cat.ID, 3, 2025, d("1000"))
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("existing_spend_triggers_alert_immediately", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alerts := NewAlertService(db)
		svc := NewBudgetService(db, alerts)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("900"), day(2025, 3, 10))

		_, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("1000"))
		testutil.AssertNoError(t, err)

		active, err := alerts.ListAlerts(user.ID, nil)
		testutil.AssertNoError(t, err)
		if len(active) != 1 || active[0].Level != models.AlertLevelWarning {
			t.Fatalf("expected an immediate WARNING, got %v", active)
		}
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, 3, 2025, d("1000"))

		updated, err := svc.UpdateBudget(user.ID, budget.ID, d("2000"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, updated.Amount, "2000")

		fetched, err := svc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, fetched.Amount, "2000")
	})

	t.Run("lowering_ceiling_escalates_alert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alerts := NewAlertService(db)
		svc := NewBudgetService(db, alerts)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("850"), day(2025, 3, 10))

		budget, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("1000"))
		testutil.AssertNoError(t, err)

		// 850/1000 = 85% -> WARNING. Lowering the ceiling to 800 makes the
		// same spend 106.25% -> CRITICAL.
		_, err = svc.UpdateBudget(user.ID, budget.ID, d("800"))
		testutil.AssertNoError(t, err)

		active, err := alerts.ListAlerts(user.ID, nil)
		testutil.AssertNoError(t, err)
		if len(active) != 1 || active[0].Level != models.AlertLevelCritical {
			t.Fatalf("expected a CRITICAL after lowering the ceiling, got %v", active)
		}
	})

	t.Run("raising_ceiling_retires_alert", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alerts := NewAlertService(db)
		svc := NewBudgetService(db, alerts)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("850"), day(2025, 3, 10))

		budget, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("1000"))
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateBudget(user.ID, budget.ID, d("2000"))
		testutil.AssertNoError(t, err)

		active, err := alerts.ListAlerts(user.ID, nil)
		testutil.AssertNoError(t, err)
		if len(active) != 0 {
			t.Fatalf("expected alerts to be retired, got %v", active)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateBudget(user.ID, 9999, d("1000"))
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, 3, 2025, d("1000"))

		testutil.AssertNoError(t, svc.DeleteBudget(user.ID, budget.ID))

		_, err := svc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

		var count int64
		db.Unscoped().Model(&models.Budget{}).Where("id = ?", budget.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected soft-deleted record to exist, count=%d", count)
		}
	})

	t.Run("alerts_survive_budget_deletion", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		alerts := NewAlertService(db)
		svc := NewBudgetService(db, alerts)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("850"), day(2025, 3, 10))
		budget, err := svc.CreateBudget(user.ID, cat.ID, 3, 2025, d("1000"))
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteBudget(user.ID, budget.ID))

		active, err := alerts.ListAlerts(user.ID, nil)
		testutil.AssertNoError(t, err)
		if len(active) != 1 {
			t.Fatalf("expected the alert to survive, got %d", len(active))
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user1.ID, cat.ID, 3, 2025, d("1000"))

		err := svc.DeleteBudget(user2.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestGetBudgetStatus(t *testing.T) {
	t.Run("no_spending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, 3, 2025, d("1000"))

		status, err := svc.GetBudgetStatus(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, status.SpentAmount, "0")
		testutil.AssertDecimalEqual(t, status.RemainingAmount, "1000")
		testutil.AssertDecimalEqual(t, status.PercentageUsed, "0")
		if status.Status != money.UsageWithinBudget {
			t.Errorf("expected WITHIN_BUDGET, got %s", status.Status)
		}
	})

	t.Run("partial_spending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, 3, 2025, d("1000"))

		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("300"), day(2025, 3, 5))
		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("550"), day(2025, 3, 20))

		status, err := svc.GetBudgetStatus(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, status.SpentAmount, "850")
		testutil.AssertDecimalEqual(t, status.RemainingAmount, "150")
		testutil.AssertDecimalEqual(t, status.PercentageUsed, "85")
		if status.Status != money.UsageNearLimit {
			t.Errorf("expected NEAR_LIMIT, got %s", status.Status)
		}
		if status.TransactionCount != 2 {
			t.Errorf("expected 2 transactions, got %d", status.TransactionCount)
		}
	})

	t.Run("over_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, 3, 2025, d("1000"))

		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("1500"), day(2025, 3, 5))

		status, err := svc.GetBudgetStatus(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, status.RemainingAmount, "-500")
		testutil.AssertDecimalEqual(t, status.PercentageUsed, "150")
		if status.Status != money.UsageExceeded {
			t.Errorf("expected EXCEEDED, got %s", status.Status)
		}
	})

	t.Run("ignores_other_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, 3, 2025, d("1000"))

		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("999"), day(2025, 2, 28))
		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("999"), day(2025, 4, 1))

		status, err := svc.GetBudgetStatus(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, status.SpentAmount, "0")
	})

	t.Run("ignores_deleted_transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewAlertService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, 3, 2025, d("1000"))

		tx := testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, d("600"), day(2025, 3, 5))
		if err := db.Delete(tx).Error; err != nil {
			t.Fatalf("failed to delete transaction: %v", err)
		}

		status, err := svc.GetBudgetStatus(user.ID, budget.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, status.SpentAmount, "0")
	})
}

func TestGetMonthlyBudgetStatuses(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db, NewAlertService(db))
	user := testutil.CreateTestUser(t, db)
	cat1 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	cat2 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	testutil.CreateTestBudget(t, db, user.ID, cat1.ID, 3, 2025, d("1000"))
	testutil.CreateTestBudget(t, db, user.ID, cat2.ID, 3, 2025, d("500"))
	testutil.CreateTestBudget(t, db, user.ID, cat1.ID, 4, 2025, d("1000"))

	// cat1 at 10%, cat2 at 90%; rows come back most-consumed first even
	// though cat1's budget was created first.
	testutil.CreateTestTransaction(t, db, user.ID, cat1.ID, models.TransactionTypeExpense, d("100"), day(2025, 3, 5))
	testutil.CreateTestTransaction(t, db, user.ID, cat2.ID, models.TransactionTypeExpense, d("450"), day(2025, 3, 6))

	rows, err := svc.GetMonthlyBudgetStatuses(user.ID, 3, 2025)
	testutil.AssertNoError(t, err)
	if len(rows) != 2 {
		t.Fatalf("expected 2 statuses for March, got %d", len(rows))
	}
	if rows[0].CategoryID != cat2.ID {
		t.Errorf("expected most consumed budget first, got category %d", rows[0].CategoryID)
	}
	testutil.AssertDecimalEqual(t, rows[0].PercentageUsed, "90")
	testutil.AssertDecimalEqual(t, rows[1].PercentageUsed, "10")
}

func TestCheckBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	alerts := NewAlertService(db)
	svc := NewBudgetService(db, alerts)
	user := testutil.CreateTestUser(t, db)
	cat1 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)
	cat2 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryTypeExpense)

	testutil.CreateTestBudget(t, db, user.ID, cat1.ID, 3, 2025, d("1000"))
	testutil.CreateTestBudget(t, db, user.ID, cat2.ID, 3, 2025, d("500"))
	testutil.CreateTestTransaction(t, db, user.ID, cat1.ID, models.TransactionTypeExpense, d("950"), day(2025, 3, 8))

	// Only cat1's budget sits above the warning threshold (95%); cat2 is untouched.
	flagged, err := svc.CheckBudgets(user.ID, 3, 2025)
	testutil.AssertNoError(t, err)
	if flagged != 1 {
		t.Errorf("expected 1 budget at or above threshold, got %d", flagged)
	}

	active, err := alerts.ListAlerts(user.ID, nil)
	testutil.AssertNoError(t, err)
	if len(active) != 1 || active[0].Level != models.AlertLevelWarning {
		t.Fatalf("expected one WARNING from reconciliation, got %v", active)
	}
}
