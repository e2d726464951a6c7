package service

import (
	"context"
	"errors"
	"testing"

	"wardrobe-budget/internal/domain"
)

func TestNewPurchaseServiceRequiresRepo(t *testing.T) {
	t.Parallel()

	if _, err := NewPurchaseService(nil); err == nil {
		t.Fatalf("expected error for nil repo")
	}
}

func TestPurchaseServiceRecordValidates(t *testing.T) {
	t.Parallel()

	repo := &memoryPurchases{}
	svc, err := NewPurchaseService(repo)
	if err != nil {
		t.Fatalf("new purchase service: %v", err)
	}

	ctx := context.Background()
	record, err := svc.Record(ctx, domain.PurchaseInput{
		CategoryName: " Shoes ",
		AmountCents:  4599,
		PurchaseDate: "2024-02-15",
		ItemName:     "Loafers",
	})
	if err != nil {
		t.Fatalf("record purchase: %v", err)
	}
	if record.CategoryName != "Shoes" || domain.FormatDate(record.PurchaseDate) != "2024-02-15" {
		t.Fatalf("unexpected record: %+v", record)
	}

	tests := []struct {
		name  string
		input domain.PurchaseInput
		want  error
	}{
		{name: "negative amount", input: domain.PurchaseInput{CategoryName: "Shoes", AmountCents: -1, PurchaseDate: "2024-02-15"}, want: domain.ErrNegativeAmount},
		{name: "missing date", input: domain.PurchaseInput{CategoryName: "Shoes", AmountCents: 1}, want: domain.ErrValidation},
		{name: "missing category", input: domain.PurchaseInput{AmountCents: 1, PurchaseDate: "2024-02-15"}, want: domain.ErrCategoryNameRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Record(ctx, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected only the valid purchase to be stored, got %d", len(repo.records))
	}
}

func TestPurchaseServiceListAndDelete(t *testing.T) {
	t.Parallel()

	repo := &memoryPurchases{}
	svc, err := NewPurchaseService(repo)
	if err != nil {
		t.Fatalf("new purchase service: %v", err)
	}

	ctx := context.Background()
	for _, input := range []domain.PurchaseInput{
		{CategoryName: "Shoes", AmountCents: 100, PurchaseDate: "2024-02-01"},
		{CategoryName: "Kidswear", AmountCents: 200, PurchaseDate: "2024-02-02"},
	} {
		if _, err := svc.Record(ctx, input); err != nil {
			t.Fatalf("record purchase: %v", err)
		}
	}

	shoes, err := svc.List(ctx, domain.PurchaseFilter{CategoryName: "  shoes "})
	if err != nil {
		t.Fatalf("list purchases: %v", err)
	}
	if len(shoes) != 1 || shoes[0].AmountCents != 100 {
		t.Fatalf("unexpected filtered purchases: %+v", shoes)
	}

	if _, err := svc.Delete(ctx, 0); !errors.Is(err, domain.ErrInvalidPurchaseID) {
		t.Fatalf("expected ErrInvalidPurchaseID, got %v", err)
	}
	if _, err := svc.Delete(ctx, shoes[0].ID); err != nil {
		t.Fatalf("delete purchase: %v", err)
	}
	if _, err := svc.Delete(ctx, shoes[0].ID); !errors.Is(err, domain.ErrPurchaseNotFound) {
		t.Fatalf("expected ErrPurchaseNotFound, got %v", err)
	}
}
