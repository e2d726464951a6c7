package service

import (
	"context"
	"fmt"
	"time"

	"wardrobe-budget/internal/alerting"
	"wardrobe-budget/internal/allocation"
	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/notify"
	"wardrobe-budget/internal/ports"
	"wardrobe-budget/internal/reporting"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	statusTopCategories = 3
	statusAllWorkers    = 4
)

// BudgetStatus is the spend picture of one budget for the window containing
// the reference date.
type BudgetStatus struct {
	Budget          domain.Budget             `json:"budget"`
	Window          domain.PeriodWindow       `json:"window"`
	PreviousWindow  domain.PeriodWindow       `json:"previous_window"`
	Summary         domain.SpendSummary       `json:"summary"`
	PreviousSummary domain.SpendSummary       `json:"previous_summary"`
	Trend           domain.Trend              `json:"trend"`
	TopCategories   []domain.CategorySpend    `json:"top_categories"`
	Variances       []domain.CategoryVariance `json:"variances"`
	Alert           domain.Alert              `json:"alert"`
	CategoryAlerts  []domain.Alert            `json:"category_alerts"`
}

// NotifiableAlerts returns the budget alert, when notifiable, followed by the
// category alerts.
func (s BudgetStatus) NotifiableAlerts() []domain.Alert {
	alerts := make([]domain.Alert, 0, len(s.CategoryAlerts)+1)
	if s.Alert.Severity.ShouldNotify() {
		alerts = append(alerts, s.Alert)
	}
	return append(alerts, s.CategoryAlerts...)
}

type StatusService struct {
	budgets   ports.BudgetRepository
	purchases ports.PurchaseReader
	notifier  notify.Notifier
	logger    *zap.Logger
	now       func() time.Time
}

func NewStatusService(budgets ports.BudgetRepository, purchases ports.PurchaseReader, notifier notify.Notifier, logger *zap.Logger) (*StatusService, error) {
	if budgets == nil {
		return nil, fmt.Errorf("status service: budget repo is required")
	}
	if purchases == nil {
		return nil, fmt.Errorf("status service: purchase reader is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatusService{
		budgets:   budgets,
		purchases: purchases,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func (s *StatusService) Status(ctx context.Context, budgetID int64, reference time.Time) (BudgetStatus, error) {
	if budgetID <= 0 {
		return BudgetStatus{}, domain.NewValidationError("budget_id", domain.ErrInvalidBudgetID)
	}

	budget, err := s.budgets.GetByID(ctx, budgetID)
	if err != nil {
		return BudgetStatus{}, err
	}

	status, err := s.evaluate(ctx, budget, reference)
	if err != nil {
		return BudgetStatus{}, err
	}

	s.dispatch(ctx, status)
	return status, nil
}

// StatusAll evaluates every budget for reference, in budget list order.
func (s *StatusService) StatusAll(ctx context.Context, reference time.Time) ([]BudgetStatus, error) {
	budgets, err := s.budgets.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]BudgetStatus, len(budgets))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(statusAllWorkers)
	for i, budget := range budgets {
		group.Go(func() error {
			status, err := s.evaluate(groupCtx, budget, reference)
			if err != nil {
				return fmt.Errorf("status for budget %d: %w", budget.ID, err)
			}
			statuses[i] = status
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, status := range statuses {
		s.dispatch(ctx, status)
	}
	return statuses, nil
}

func (s *StatusService) evaluate(ctx context.Context, budget domain.Budget, reference time.Time) (BudgetStatus, error) {
	window, err := budget.Window(reference)
	if err != nil {
		return BudgetStatus{}, err
	}
	previousWindow, err := domain.PreviousWindow(budget.Period, window)
	if err != nil {
		return BudgetStatus{}, err
	}

	var current, previous []domain.PurchaseRecord
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		records, err := s.purchases.List(groupCtx, domain.PurchaseFilter{Window: &window})
		if err != nil {
			return fmt.Errorf("list current purchases: %w", err)
		}
		current = records
		return nil
	})
	group.Go(func() error {
		records, err := s.purchases.List(groupCtx, domain.PurchaseFilter{Window: &previousWindow})
		if err != nil {
			return fmt.Errorf("list previous purchases: %w", err)
		}
		previous = records
		return nil
	})
	if err := group.Wait(); err != nil {
		return BudgetStatus{}, err
	}

	reporting.SortRecordsDeterministic(current)
	reporting.SortRecordsDeterministic(previous)

	summary, err := reporting.Aggregate(current, window)
	if err != nil {
		return BudgetStatus{}, err
	}
	previousSummary, err := reporting.Aggregate(previous, previousWindow)
	if err != nil {
		return BudgetStatus{}, err
	}

	variances := allocation.Reconcile(budget.Categories, summary)

	return BudgetStatus{
		Budget:          budget,
		Window:          window,
		PreviousWindow:  previousWindow,
		Summary:         summary,
		PreviousSummary: previousSummary,
		Trend:           reporting.CompareTrend(summary, previousSummary),
		TopCategories:   reporting.TopCategories(summary, statusTopCategories),
		Variances:       variances,
		Alert:           alerting.Evaluate(summary, budget),
		CategoryAlerts:  alerting.EvaluateCategories(variances, budget.AlertThreshold),
	}, nil
}

// dispatch hands notifiable alerts to the notifier. Failures are logged and
// never fail the status query.
func (s *StatusService) dispatch(ctx context.Context, status BudgetStatus) {
	if s.notifier == nil {
		return
	}
	now := s.now()
	for _, alert := range status.NotifiableAlerts() {
		event := notify.NewAlertEvent(status.Budget, status.Window, alert, now)
		if err := s.notifier.Notify(ctx, event); err != nil {
			s.logger.Warn("alert dispatch failed",
				zap.Int64("budget_id", status.Budget.ID),
				zap.String("severity", alert.Severity.String()),
				zap.Error(err),
			)
		}
	}
}
