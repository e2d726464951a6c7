package service

import (
	"context"
	"fmt"
	"strings"

	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/ports"
)

type PurchaseRepository = ports.PurchaseRepository

type PurchaseService struct {
	repo PurchaseRepository
}

func NewPurchaseService(repo PurchaseRepository) (*PurchaseService, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchase service: repo is required")
	}
	return &PurchaseService{repo: repo}, nil
}

func (s *PurchaseService) Record(ctx context.Context, input domain.PurchaseInput) (domain.PurchaseRecord, error) {
	record, err := domain.NormalizePurchaseInput(input)
	if err != nil {
		return domain.PurchaseRecord{}, err
	}
	return s.repo.Add(ctx, record)
}

func (s *PurchaseService) List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.PurchaseRecord, error) {
	if strings.TrimSpace(filter.CategoryName) != "" {
		name, err := domain.NormalizeCategoryName(filter.CategoryName)
		if err != nil {
			return nil, domain.NewValidationError("category", err)
		}
		filter.CategoryName = name
	}
	return s.repo.List(ctx, filter)
}

func (s *PurchaseService) Delete(ctx context.Context, id int64) (domain.PurchaseDeleteResult, error) {
	if id <= 0 {
		return domain.PurchaseDeleteResult{}, domain.NewValidationError("purchase_id", domain.ErrInvalidPurchaseID)
	}
	return s.repo.Delete(ctx, id)
}
