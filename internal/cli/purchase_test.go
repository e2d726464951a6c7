package cli

import "testing"

func TestPurchaseCommandJSONLifecycle(t *testing.T) {
	t.Parallel()

	db := newCLITestDB(t)

	addData := assertOK(t, executeCmdJSON(t, db, NewPurchaseCmd, []string{
		"add", "--category", "Shoes", "--amount", "89,99", "--date", "2024-02-15", "--item", "Loafers",
	}))
	purchase := mustMap(t, addData["purchase"])
	if int64(purchase["amount_minor"].(float64)) != 8999 {
		t.Fatalf("expected amount 8999, got %v", purchase["amount_minor"])
	}
	if purchase["purchase_date"].(string) != "2024-02-15" {
		t.Fatalf("expected purchase date 2024-02-15, got %v", purchase["purchase_date"])
	}

	assertOK(t, executeCmdJSON(t, db, NewPurchaseCmd, []string{"add", "--category", "Kidswear", "--amount", "20", "--date", "2024-03-01"}))

	listData := assertOK(t, executeCmdJSON(t, db, NewPurchaseCmd, []string{"list", "--from", "2024-02-01", "--to", "2024-02-29"}))
	if int(listData["count"].(float64)) != 1 || int64(listData["total_minor"].(float64)) != 8999 {
		t.Fatalf("unexpected february listing: %v", listData)
	}

	allData := assertOK(t, executeCmdJSON(t, db, NewPurchaseCmd, []string{"list"}))
	if int(allData["count"].(float64)) != 2 {
		t.Fatalf("expected 2 purchases, got %v", allData["count"])
	}

	deleteData := assertOK(t, executeCmdJSON(t, db, NewPurchaseCmd, []string{"delete", "1"}))
	if int64(mustMap(t, deleteData["deleted"])["purchase_id"].(float64)) != 1 {
		t.Fatalf("unexpected delete payload: %v", deleteData)
	}
	assertErrorCode(t, executeCmdJSON(t, db, NewPurchaseCmd, []string{"delete", "1"}), "NOT_FOUND")
}

func TestPurchaseCommandErrors(t *testing.T) {
	t.Parallel()

	db := newCLITestDB(t)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{name: "missing amount", args: []string{"add", "--category", "Shoes", "--date", "2024-02-15"}, code: "INVALID_ARGUMENT"},
		{name: "too many decimals", args: []string{"add", "--category", "Shoes", "--amount", "1.234", "--date", "2024-02-15"}, code: "INVALID_ARGUMENT"},
		{name: "bad date", args: []string{"add", "--category", "Shoes", "--amount", "1", "--date", "15/02/2024"}, code: "INVALID_ARGUMENT"},
		{name: "half range", args: []string{"list", "--from", "2024-02-01"}, code: "INVALID_ARGUMENT"},
		{name: "reversed range", args: []string{"list", "--from", "2024-02-10", "--to", "2024-02-01"}, code: "INVALID_DATE_RANGE"},
		{name: "bad id", args: []string{"delete", "0"}, code: "INVALID_ARGUMENT"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertErrorCode(t, executeCmdJSON(t, db, NewPurchaseCmd, tc.args), tc.code)
		})
	}
}
