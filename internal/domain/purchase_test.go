package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNormalizePurchaseInput(t *testing.T) {
	t.Parallel()

	record, err := NormalizePurchaseInput(PurchaseInput{
		CategoryName: "  Shoes ",
		AmountCents:  12999,
		PurchaseDate: "2024-02-29",
		ItemName:     " Boots ",
	})
	if err != nil {
		t.Fatalf("normalize purchase: %v", err)
	}
	if record.CategoryName != "Shoes" || record.ItemName != "Boots" {
		t.Fatalf("expected trimmed names, got %+v", record)
	}
	if !record.PurchaseDate.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected purchase date %v", record.PurchaseDate)
	}

	testCases := []struct {
		name  string
		input PurchaseInput
		field string
	}{
		{name: "missing_category", input: PurchaseInput{AmountCents: 1, PurchaseDate: "2024-01-01"}, field: "category"},
		{name: "negative_amount", input: PurchaseInput{CategoryName: "A", AmountCents: -5, PurchaseDate: "2024-01-01"}, field: "amount"},
		{name: "bad_date", input: PurchaseInput{CategoryName: "A", PurchaseDate: "2024-13-01"}, field: "purchase_date"},
		{name: "long_item", input: PurchaseInput{CategoryName: "A", PurchaseDate: "2024-01-01", ItemName: strings.Repeat("x", ItemNameMaxLength+1)}, field: "item_name"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NormalizePurchaseInput(tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if got := ValidationField(err); got != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, got)
			}
		})
	}
}

func TestPurchaseRecordJSON(t *testing.T) {
	t.Parallel()

	payload, err := json.Marshal(PurchaseRecord{
		ID:           7,
		CategoryName: "Shoes",
		AmountCents:  4500,
		PurchaseDate: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("marshal purchase: %v", err)
	}

	want := `{"id":7,"category_name":"Shoes","amount_minor":4500,"purchase_date":"2024-03-09"}`
	if string(payload) != want {
		t.Fatalf("unexpected payload\nwant %s\ngot  %s", want, payload)
	}
}

func TestCategoryHelpers(t *testing.T) {
	t.Parallel()

	if CategoryKey("  KidsWear ") != "kidswear" {
		t.Fatalf("expected case-folded key")
	}
	if _, err := NormalizeCategoryName(strings.Repeat("a", CategoryNameMaxLength+1)); !errors.Is(err, ErrCategoryNameTooLong) {
		t.Fatalf("expected ErrCategoryNameTooLong, got %v", err)
	}

	summary := SpendSummary{ByCategory: []CategorySpend{{Name: "Shoes", SpentCents: 900}}}
	if spent, ok := summary.CategorySpent("shoes"); !ok || spent != 900 {
		t.Fatalf("expected case-insensitive lookup, got %d %v", spent, ok)
	}
	if _, ok := summary.CategorySpent("Hats"); ok {
		t.Fatalf("expected missing category")
	}
}
