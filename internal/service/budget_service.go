package service

import (
	"context"
	"fmt"

	"wardrobe-budget/internal/allocation"
	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/ports"
)

type BudgetRepository = ports.BudgetRepository

type BudgetService struct {
	repo             BudgetRepository
	weights          []allocation.Weight
	defaultThreshold int
}

// NewBudgetService builds a BudgetService. A nil weights table selects
// allocation.DefaultWeights.
func NewBudgetService(repo BudgetRepository, weights []allocation.Weight, defaultThreshold int) (*BudgetService, error) {
	if repo == nil {
		return nil, fmt.Errorf("budget service: repo is required")
	}
	if err := domain.ValidateAlertThreshold(defaultThreshold); err != nil {
		return nil, fmt.Errorf("budget service: %w", err)
	}
	return &BudgetService{repo: repo, weights: weights, defaultThreshold: defaultThreshold}, nil
}

func (s *BudgetService) Create(ctx context.Context, input domain.BudgetInput) (domain.Budget, error) {
	prepared, err := s.prepare(input)
	if err != nil {
		return domain.Budget{}, err
	}
	return s.repo.Create(ctx, prepared)
}

func (s *BudgetService) Show(ctx context.Context, id int64) (domain.Budget, error) {
	if id <= 0 {
		return domain.Budget{}, domain.NewValidationError("budget_id", domain.ErrInvalidBudgetID)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *BudgetService) List(ctx context.Context) ([]domain.Budget, error) {
	return s.repo.List(ctx)
}

// Update replaces the budget's fields and categories with input.
func (s *BudgetService) Update(ctx context.Context, id int64, input domain.BudgetInput) (domain.Budget, error) {
	if id <= 0 {
		return domain.Budget{}, domain.NewValidationError("budget_id", domain.ErrInvalidBudgetID)
	}
	prepared, err := s.prepare(input)
	if err != nil {
		return domain.Budget{}, err
	}
	return s.repo.Update(ctx, id, prepared)
}

func (s *BudgetService) Delete(ctx context.Context, id int64) (domain.BudgetDeleteResult, error) {
	if id <= 0 {
		return domain.BudgetDeleteResult{}, domain.NewValidationError("budget_id", domain.ErrInvalidBudgetID)
	}
	return s.repo.Delete(ctx, id)
}

// PreviewAllocation splits totalCents across weights without touching the
// store. Empty weights fall back to the service's weight table.
func (s *BudgetService) PreviewAllocation(totalCents int64, weights []allocation.Weight) (allocation.Allocation, error) {
	return PreviewAllocation(totalCents, weights, s.weights)
}

// PreviewAllocation allocates with weights, or with table when weights is
// empty, or with allocation.DefaultWeights when both are empty.
func PreviewAllocation(totalCents int64, weights, table []allocation.Weight) (allocation.Allocation, error) {
	if len(weights) == 0 {
		weights = table
	}
	if len(weights) == 0 {
		weights = allocation.DefaultWeights
	}
	return allocation.Allocate(totalCents, weights)
}

func (s *BudgetService) prepare(input domain.BudgetInput) (domain.BudgetInput, error) {
	if input.AlertThreshold == nil {
		threshold := s.defaultThreshold
		input.AlertThreshold = &threshold
	}

	normalized, err := domain.NormalizeBudgetInput(input)
	if err != nil {
		return domain.BudgetInput{}, err
	}

	filled, err := allocation.FillBudgetInput(normalized, s.weights)
	if err != nil {
		return domain.BudgetInput{}, err
	}

	if err := domain.ValidateBudgetInvariants(filled.TotalCents, filled.Categories, filled.AutoAllocate); err != nil {
		return domain.BudgetInput{}, err
	}
	return filled, nil
}
