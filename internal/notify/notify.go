// Package notify dispatches classified budget alerts to external channels.
package notify

import (
	"context"
	"errors"
	"time"

	"wardrobe-budget/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlertEvent is one alert leaving the process.
type AlertEvent struct {
	MessageID    string              `json:"message_id"`
	BudgetID     int64               `json:"budget_id"`
	BudgetName   string              `json:"budget_name"`
	Window       domain.PeriodWindow `json:"window"`
	Alert        domain.Alert        `json:"alert"`
	EmittedAtUTC string              `json:"emitted_at_utc"`
}

func NewAlertEvent(budget domain.Budget, window domain.PeriodWindow, alert domain.Alert, now time.Time) AlertEvent {
	return AlertEvent{
		MessageID:    uuid.NewString(),
		BudgetID:     budget.ID,
		BudgetName:   budget.Name,
		Window:       window,
		Alert:        alert,
		EmittedAtUTC: now.UTC().Format(time.RFC3339Nano),
	}
}

type Notifier interface {
	Notify(ctx context.Context, event AlertEvent) error
}

// LogNotifier writes alerts to a zap logger.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, event AlertEvent) error {
	n.logger.Warn("budget alert",
		zap.String("message_id", event.MessageID),
		zap.Int64("budget_id", event.BudgetID),
		zap.String("budget_name", event.BudgetName),
		zap.String("category", event.Alert.Category),
		zap.String("severity", event.Alert.Severity.String()),
		zap.String("message", event.Alert.Message),
		zap.Int64("amount_minor", event.Alert.AmountCents),
	)
	return nil
}

// Multi fans an event out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, event AlertEvent) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
