package ports

import (
	"context"

	"wardrobe-budget/internal/domain"
)

type BudgetRepository interface {
	Create(ctx context.Context, input domain.BudgetInput) (domain.Budget, error)
	GetByID(ctx context.Context, id int64) (domain.Budget, error)
	List(ctx context.Context) ([]domain.Budget, error)
	Update(ctx context.Context, id int64, input domain.BudgetInput) (domain.Budget, error)
	Delete(ctx context.Context, id int64) (domain.BudgetDeleteResult, error)
}

// PurchaseRepository is the wardrobe store's view of purchase records. The
// status path only calls List.
type PurchaseRepository interface {
	Add(ctx context.Context, record domain.PurchaseRecord) (domain.PurchaseRecord, error)
	GetByID(ctx context.Context, id int64) (domain.PurchaseRecord, error)
	List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.PurchaseRecord, error)
	Delete(ctx context.Context, id int64) (domain.PurchaseDeleteResult, error)
}

type PurchaseReader interface {
	List(ctx context.Context, filter domain.PurchaseFilter) ([]domain.PurchaseRecord, error)
}
