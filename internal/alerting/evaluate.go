// Package alerting classifies spend against a budget limit.
package alerting

import (
	"fmt"

	"wardrobe-budget/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	MessageLimitReached = "Budget limit reached."

	usedPercentagePlaces int32 = 1
)

// limitTolerance is the band around a ratio of 1 that counts as "limit reached".
var limitTolerance = decimal.RequireFromString("0.001")

// Evaluate classifies summary against budget using the budget's alert threshold.
func Evaluate(summary domain.SpendSummary, budget domain.Budget) domain.Alert {
	return EvaluateWithThreshold(summary, budget, budget.AlertThreshold)
}

// EvaluateWithThreshold classifies summary against budget with an explicit
// threshold percentage. Identical inputs always produce the identical Alert.
func EvaluateWithThreshold(summary domain.SpendSummary, budget domain.Budget, threshold int) domain.Alert {
	return classify(summary.TotalCents, budget.TotalCents, threshold)
}

// EvaluateCategories classifies every planned category and returns the alerts
// that should reach notification dispatch, in variance order.
func EvaluateCategories(variances []domain.CategoryVariance, threshold int) []domain.Alert {
	alerts := make([]domain.Alert, 0)
	for _, variance := range variances {
		if !variance.Planned {
			continue
		}
		alert := classify(variance.SpentCents, variance.PlannedCents, threshold)
		if !alert.Severity.ShouldNotify() {
			continue
		}
		alert.Category = variance.Name
		alert.Message = fmt.Sprintf("%s: %s", variance.Name, alert.Message)
		alerts = append(alerts, alert)
	}
	return alerts
}

func classify(spentCents, limitCents int64, threshold int) domain.Alert {
	if limitCents == 0 {
		if spentCents > 0 {
			return exceeded(spentCents, decimal.Zero)
		}
		return domain.Alert{Severity: domain.SeverityNone, UsedPercentage: decimal.Zero}
	}

	ratio := decimal.NewFromInt(spentCents).Div(decimal.NewFromInt(limitCents))
	used := domain.RoundHalfUp(ratio.Mul(domain.HundredPercent), usedPercentagePlaces)
	remaining := limitCents - spentCents

	switch {
	case ratio.Sub(decimal.NewFromInt(1)).Abs().LessThanOrEqual(limitTolerance):
		if remaining < 0 {
			remaining = -remaining
		}
		return domain.Alert{
			Severity:       domain.SeverityWarning,
			Message:        MessageLimitReached,
			AmountCents:    remaining,
			UsedPercentage: used,
		}
	case ratio.GreaterThan(decimal.NewFromInt(1)):
		return exceeded(spentCents-limitCents, used)
	case ratio.GreaterThanOrEqual(thresholdRatio(threshold)):
		return domain.Alert{
			Severity:       domain.SeverityApproaching,
			Message:        fmt.Sprintf("%s%% of budget used. %s remaining.", used.String(), domain.FormatCents(remaining)),
			AmountCents:    remaining,
			UsedPercentage: used,
		}
	default:
		return domain.Alert{
			Severity:       domain.SeverityNone,
			AmountCents:    remaining,
			UsedPercentage: used,
		}
	}
}

func exceeded(overageCents int64, used decimal.Decimal) domain.Alert {
	return domain.Alert{
		Severity:       domain.SeverityExceeded,
		Message:        fmt.Sprintf("Budget exceeded by %s.", domain.FormatCents(overageCents)),
		AmountCents:    overageCents,
		UsedPercentage: used,
	}
}

func thresholdRatio(threshold int) decimal.Decimal {
	return decimal.NewFromInt(int64(threshold)).Div(domain.HundredPercent)
}
