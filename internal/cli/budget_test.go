package cli

import (
	"strings"
	"testing"

	"wardrobe-budget/internal/cli/output"
)

func TestBudgetCommandJSONLifecycle(t *testing.T) {
	t.Parallel()

	db := newCLITestDB(t)

	createData := assertOK(t, executeCmdJSON(t, db, NewBudgetCmd, []string{
		"create", "--name", "Spring", "--total", "1000", "--auto-allocate",
	}))
	budget := mustMap(t, createData["budget"])
	if budget["name"].(string) != "Spring" {
		t.Fatalf("expected budget name Spring, got %v", budget["name"])
	}
	if int64(budget["total_amount_minor"].(float64)) != 100000 {
		t.Fatalf("expected total 100000, got %v", budget["total_amount_minor"])
	}
	if int(budget["alert_threshold"].(float64)) != 80 {
		t.Fatalf("expected default alert threshold 80, got %v", budget["alert_threshold"])
	}

	categories := mustSlice(t, budget["categories"])
	if len(categories) != 5 {
		t.Fatalf("expected 5 default categories, got %d", len(categories))
	}
	var sum int64
	for _, item := range categories {
		sum += int64(mustMap(t, item)["amount_minor"].(float64))
	}
	if sum != 100000 {
		t.Fatalf("expected allocated amounts to sum to 100000, got %d", sum)
	}

	listData := assertOK(t, executeCmdJSON(t, db, NewBudgetCmd, []string{"list"}))
	if int(listData["count"].(float64)) != 1 {
		t.Fatalf("expected one budget, got %v", listData["count"])
	}

	updateData := assertOK(t, executeCmdJSON(t, db, NewBudgetCmd, []string{"update", "1", "--total", "2000"}))
	updated := mustMap(t, updateData["budget"])
	if int64(updated["total_amount_minor"].(float64)) != 200000 {
		t.Fatalf("expected updated total 200000, got %v", updated["total_amount_minor"])
	}
	firstCategory := mustMap(t, mustSlice(t, updated["categories"])[0])
	if int64(firstCategory["amount_minor"].(float64)) != 50000 {
		t.Fatalf("expected menswear to be reallocated to 50000, got %v", firstCategory["amount_minor"])
	}
	if updated["name"].(string) != "Spring" {
		t.Fatalf("expected name to be kept, got %v", updated["name"])
	}

	deleteData := assertOK(t, executeCmdJSON(t, db, NewBudgetCmd, []string{"delete", "1"}))
	deleted := mustMap(t, deleteData["deleted"])
	if int64(deleted["budget_id"].(float64)) != 1 {
		t.Fatalf("expected deleted budget_id 1, got %v", deleted["budget_id"])
	}

	assertErrorCode(t, executeCmdJSON(t, db, NewBudgetCmd, []string{"show", "1"}), "NOT_FOUND")
}

func TestBudgetCommandExplicitCategories(t *testing.T) {
	t.Parallel()

	db := newCLITestDB(t)

	data := assertOK(t, executeCmdJSON(t, db, NewBudgetCmd, []string{
		"create", "--name", "Shoes only", "--total", "300",
		"--category", "Sneakers=60%", "--category", "Boots=40%",
		"--auto-allocate", "--alert-threshold", "90",
	}))
	budget := mustMap(t, data["budget"])
	categories := mustSlice(t, budget["categories"])
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	sneakers := mustMap(t, categories[0])
	if sneakers["name"].(string) != "Sneakers" || int64(sneakers["amount_minor"].(float64)) != 18000 {
		t.Fatalf("unexpected sneakers category: %v", sneakers)
	}
	if int(budget["alert_threshold"].(float64)) != 90 {
		t.Fatalf("expected alert threshold 90, got %v", budget["alert_threshold"])
	}
}

func TestBudgetCommandUpdateTotalRescalesAmounts(t *testing.T) {
	t.Parallel()

	db := newCLITestDB(t)

	assertOK(t, executeCmdJSON(t, db, NewBudgetCmd, []string{
		"create", "--name", "Thirds", "--total", "1000",
		"--category", "A=333.33", "--category", "B=333.33", "--category", "C=333.34",
		"--auto-allocate",
	}))

	data := assertOK(t, executeCmdJSON(t, db, NewBudgetCmd, []string{"update", "1", "--total", "2000"}))
	budget := mustMap(t, data["budget"])

	want := []int64{66666, 66666, 66668}
	var sum int64
	for i, raw := range mustSlice(t, budget["categories"]) {
		category := mustMap(t, raw)
		amount := int64(category["amount_minor"].(float64))
		if amount != want[i] {
			t.Fatalf("%v: expected %d, got %d", category["name"], want[i], amount)
		}
		sum += amount
	}
	if sum != 200000 {
		t.Fatalf("expected categories to sum to 200000, got %d", sum)
	}
}

func TestBudgetCommandErrors(t *testing.T) {
	t.Parallel()

	db := newCLITestDB(t)

	tests := []struct {
		name  string
		args  []string
		code  string
		field string
	}{
		{name: "missing total", args: []string{"create", "--name", "x"}, code: "INVALID_ARGUMENT", field: "total"},
		{name: "negative total", args: []string{"create", "--name", "x", "--total", "-5"}, code: "INVALID_ARGUMENT", field: "total"},
		{name: "bad id", args: []string{"show", "abc"}, code: "INVALID_ARGUMENT", field: "id"},
		{
			name: "percentages over 100",
			args: []string{"create", "--name", "x", "--total", "100", "--category", "A=70%", "--category", "B=40%"},
			code: "INVALID_ARGUMENT",
		},
		{
			name: "custom period reversed",
			args: []string{"create", "--name", "x", "--total", "100", "--period", "custom", "--start-date", "2024-03-10", "--end-date", "2024-03-01"},
			code: "INVALID_DATE_RANGE",
		},
		{name: "unknown period", args: []string{"create", "--name", "x", "--total", "100", "--period", "daily"}, code: "INVALID_ARGUMENT"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errPayload := assertErrorCode(t, executeCmdJSON(t, db, NewBudgetCmd, tc.args), tc.code)
			if tc.field != "" {
				details := mustMap(t, errPayload["details"])
				if details["field"] != tc.field {
					t.Fatalf("expected field %q, got %v", tc.field, details["field"])
				}
			}
		})
	}
}

func TestBudgetCommandDuplicateNameConflict(t *testing.T) {
	t.Parallel()

	db := newCLITestDB(t)

	assertOK(t, executeCmdJSON(t, db, NewBudgetCmd, []string{"create", "--name", "Autumn", "--total", "100"}))
	assertErrorCode(t, executeCmdJSON(t, db, NewBudgetCmd, []string{"create", "--name", "autumn", "--total", "100"}), "CONFLICT")
}

func TestBudgetCommandHumanOutput(t *testing.T) {
	t.Parallel()

	db := newCLITestDB(t)

	out := executeCmdRaw(t, db, output.FormatHuman, NewBudgetCmd, []string{"create", "--name", "Winter", "--total", "1234.5"})
	if !strings.Contains(out, "[OK] wardrobe-budget") {
		t.Fatalf("expected human status line, got %q", out)
	}
	if !strings.Contains(out, `"total_amount_minor": "1,234.50"`) {
		t.Fatalf("expected formatted total, got %q", out)
	}
}
