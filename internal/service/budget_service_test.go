package service

import (
	"context"
	"errors"
	"testing"

	"wardrobe-budget/internal/allocation"
	"wardrobe-budget/internal/domain"

	"github.com/shopspring/decimal"
)

func TestNewBudgetServiceRequiresRepo(t *testing.T) {
	t.Parallel()

	if _, err := NewBudgetService(nil, nil, domain.DefaultAlertThreshold); err == nil {
		t.Fatalf("expected error for nil repo")
	}
	if _, err := NewBudgetService(&budgetRepoStub{}, nil, 101); err == nil {
		t.Fatalf("expected error for out of range default threshold")
	}
}

func TestBudgetServiceCreateAutoAllocatesDefaults(t *testing.T) {
	t.Parallel()

	var received domain.BudgetInput
	svc, err := NewBudgetService(&budgetRepoStub{
		createFn: func(_ context.Context, input domain.BudgetInput) (domain.Budget, error) {
			received = input
			return budgetFromInput(1, input), nil
		},
	}, nil, 75)
	if err != nil {
		t.Fatalf("new budget service: %v", err)
	}

	budget, err := svc.Create(context.Background(), domain.BudgetInput{
		Name:         "  Spring wardrobe ",
		TotalCents:   100000,
		AutoAllocate: true,
	})
	if err != nil {
		t.Fatalf("create budget: %v", err)
	}

	if received.Name != "Spring wardrobe" {
		t.Fatalf("expected trimmed name, got %q", received.Name)
	}
	if received.Period != string(domain.PeriodMonthly) {
		t.Fatalf("expected monthly default period, got %q", received.Period)
	}
	if budget.AlertThreshold != 75 {
		t.Fatalf("expected service default threshold 75, got %d", budget.AlertThreshold)
	}
	if len(received.Categories) != len(allocation.DefaultWeights) {
		t.Fatalf("expected default categories, got %+v", received.Categories)
	}

	var sum int64
	for _, category := range received.Categories {
		sum += category.AmountCents
	}
	if sum != 100000 {
		t.Fatalf("expected allocated amounts to sum to total, got %d", sum)
	}
	if received.Categories[1].Name != "Womenswear" || received.Categories[1].AmountCents != 35000 {
		t.Fatalf("unexpected womenswear allocation: %+v", received.Categories[1])
	}
}

func TestBudgetServiceCreateUsesConfiguredWeights(t *testing.T) {
	t.Parallel()

	table := []allocation.Weight{
		{Name: "Shoes", Percentage: decimal.NewFromInt(60)},
		{Name: "Accessories", Percentage: decimal.NewFromInt(40)},
	}
	svc, err := NewBudgetService(&budgetRepoStub{}, table, domain.DefaultAlertThreshold)
	if err != nil {
		t.Fatalf("new budget service: %v", err)
	}

	budget, err := svc.Create(context.Background(), domain.BudgetInput{Name: "Shoes", TotalCents: 50000, AutoAllocate: true})
	if err != nil {
		t.Fatalf("create budget: %v", err)
	}
	if len(budget.Categories) != 2 || budget.Categories[0].AmountCents != 30000 || budget.Categories[1].AmountCents != 20000 {
		t.Fatalf("unexpected categories: %+v", budget.Categories)
	}
}

func TestBudgetServiceCreateRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	repoCalled := false
	svc, err := NewBudgetService(&budgetRepoStub{
		createFn: func(_ context.Context, input domain.BudgetInput) (domain.Budget, error) {
			repoCalled = true
			return domain.Budget{}, nil
		},
	}, nil, domain.DefaultAlertThreshold)
	if err != nil {
		t.Fatalf("new budget service: %v", err)
	}

	tests := []struct {
		name  string
		input domain.BudgetInput
		want  error
	}{
		{
			name:  "missing name",
			input: domain.BudgetInput{TotalCents: 1000},
			want:  domain.ErrBudgetNameRequired,
		},
		{
			name: "percentages over 100",
			input: domain.BudgetInput{
				Name:       "Over",
				TotalCents: 1000,
				Categories: []domain.BudgetCategory{
					{Name: "Shoes", Percentage: decimal.NewFromInt(70)},
					{Name: "Kidswear", Percentage: decimal.NewFromInt(40)},
				},
			},
			want: domain.ErrPercentageSumExceeded,
		},
		{
			name: "auto allocated amounts that miss the total",
			input: domain.BudgetInput{
				Name:         "Mismatch",
				TotalCents:   100000,
				AutoAllocate: true,
				Categories: []domain.BudgetCategory{
					{Name: "Shoes", AmountCents: 40000},
					{Name: "Kidswear", AmountCents: 40000},
				},
			},
			want: domain.ErrAllocationMismatch,
		},
		{
			name:  "custom period without dates",
			input: domain.BudgetInput{Name: "Custom", TotalCents: 1000, Period: "custom"},
			want:  domain.ErrCustomPeriodRequires,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if repoCalled {
		t.Fatalf("expected repo not to be called for invalid input")
	}
}

func TestBudgetServiceRejectsInvalidIDs(t *testing.T) {
	t.Parallel()

	svc, err := NewBudgetService(&budgetRepoStub{}, nil, domain.DefaultAlertThreshold)
	if err != nil {
		t.Fatalf("new budget service: %v", err)
	}

	ctx := context.Background()
	if _, err := svc.Show(ctx, 0); !errors.Is(err, domain.ErrInvalidBudgetID) {
		t.Fatalf("show: expected ErrInvalidBudgetID, got %v", err)
	}
	if _, err := svc.Update(ctx, -1, domain.BudgetInput{Name: "x"}); !errors.Is(err, domain.ErrInvalidBudgetID) {
		t.Fatalf("update: expected ErrInvalidBudgetID, got %v", err)
	}
	if _, err := svc.Delete(ctx, 0); !errors.Is(err, domain.ErrInvalidBudgetID) {
		t.Fatalf("delete: expected ErrInvalidBudgetID, got %v", err)
	}
}

func TestBudgetServiceShowPropagatesNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewBudgetService(&budgetRepoStub{}, nil, domain.DefaultAlertThreshold)
	if err != nil {
		t.Fatalf("new budget service: %v", err)
	}
	if _, err := svc.Show(context.Background(), 42); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound, got %v", err)
	}
}

func TestBudgetServicePreviewAllocation(t *testing.T) {
	t.Parallel()

	svc, err := NewBudgetService(&budgetRepoStub{}, nil, domain.DefaultAlertThreshold)
	if err != nil {
		t.Fatalf("new budget service: %v", err)
	}

	preview, err := svc.PreviewAllocation(100000, nil)
	if err != nil {
		t.Fatalf("preview default weights: %v", err)
	}
	if len(preview.Lines) != 5 || preview.AllocatedCents != 100000 || preview.UnallocatedCents != 0 {
		t.Fatalf("unexpected default preview: %+v", preview)
	}

	explicit, err := svc.PreviewAllocation(100000, []allocation.Weight{{Name: "Menswear", Percentage: decimal.NewFromInt(30)}})
	if err != nil {
		t.Fatalf("preview explicit weights: %v", err)
	}
	if explicit.Lines[0].AmountCents != 30000 || explicit.UnallocatedCents != 70000 {
		t.Fatalf("unexpected explicit preview: %+v", explicit)
	}
}
