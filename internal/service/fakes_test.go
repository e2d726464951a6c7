package service

import (
	"context"
	"errors"
	"sync"

	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/notify"
)

type budgetRepoStub struct {
	createFn func(ctx context.Context, input domain.BudgetInput) (domain.Budget, error)
	getFn    func(ctx context.Context, id int64) (domain.Budget, error)
	listFn   func(ctx context.Context) ([]domain.Budget, error)
	updateFn func(ctx context.Context, id int64, input domain.BudgetInput) (domain.Budget, error)
	deleteFn func(ctx context.Context, id int64) (domain.BudgetDeleteResult, error)
}

func (s *budgetRepoStub) Create(ctx context.Context, input domain.BudgetInput) (domain.Budget, error) {
	if s.createFn == nil {
		return budgetFromInput(1, input), nil
	}
	return s.createFn(ctx, input)
}

func (s *budgetRepoStub) GetByID(ctx context.Context, id int64) (domain.Budget, error) {
	if s.getFn == nil {
		return domain.Budget{}, domain.ErrBudgetNotFound
	}
	return s.getFn(ctx, id)
}

func (s *budgetRepoStub) List(ctx context.Context) ([]domain.Budget, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s *budgetRepoStub) Update(ctx context.Context, id int64, input domain.BudgetInput) (domain.Budget, error) {
	if s.updateFn == nil {
		return budgetFromInput(id, input), nil
	}
	return s.updateFn(ctx, id, input)
}

func (s *budgetRepoStub) Delete(ctx context.Context, id int64) (domain.BudgetDeleteResult, error) {
	if s.deleteFn == nil {
		return domain.BudgetDeleteResult{BudgetID: id}, nil
	}
	return s.deleteFn(ctx, id)
}

func budgetFromInput(id int64, input domain.BudgetInput) domain.Budget {
	threshold := domain.DefaultAlertThreshold
	if input.AlertThreshold != nil {
		threshold = *input.AlertThreshold
	}
	return domain.Budget{
		ID:             id,
		Name:           input.Name,
		TotalCents:     input.TotalCents,
		Period:         domain.PeriodKind(input.Period),
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Categories:     input.Categories,
		AlertThreshold: threshold,
		AutoAllocate:   input.AutoAllocate,
	}
}

// memoryPurchases filters by window and category like the SQLite repo.
type memoryPurchases struct {
	mu      sync.Mutex
	records []domain.PurchaseRecord
	err     error
	calls   int
}

func (m *memoryPurchases) Add(_ context.Context, record domain.PurchaseRecord) (domain.PurchaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record.ID = int64(len(m.records) + 1)
	m.records = append(m.records, record)
	return record, nil
}

func (m *memoryPurchases) GetByID(_ context.Context, id int64) (domain.PurchaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range m.records {
		if record.ID == id {
			return record, nil
		}
	}
	return domain.PurchaseRecord{}, domain.ErrPurchaseNotFound
}

func (m *memoryPurchases) List(_ context.Context, filter domain.PurchaseFilter) ([]domain.PurchaseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	out := make([]domain.PurchaseRecord, 0)
	for _, record := range m.records {
		if filter.Window != nil && !filter.Window.Contains(record.PurchaseDate) {
			continue
		}
		if filter.CategoryName != "" && domain.CategoryKey(filter.CategoryName) != domain.CategoryKey(record.CategoryName) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (m *memoryPurchases) Delete(_ context.Context, id int64) (domain.PurchaseDeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, record := range m.records {
		if record.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return domain.PurchaseDeleteResult{PurchaseID: id}, nil
		}
	}
	return domain.PurchaseDeleteResult{}, domain.ErrPurchaseNotFound
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.AlertEvent
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, event notify.AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

var errStoreDown = errors.New("store down")
