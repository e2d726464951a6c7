package allocation

import (
	"wardrobe-budget/internal/domain"

	"github.com/shopspring/decimal"
)

// Reconcile compares planned category amounts against the spend in summary.
// Planned categories come first in budget order, followed by categories that
// saw spend without being planned, in first-seen order.
func Reconcile(categories []domain.BudgetCategory, summary domain.SpendSummary) []domain.CategoryVariance {
	variances := make([]domain.CategoryVariance, 0, len(categories)+len(summary.ByCategory))
	planned := make(map[string]struct{}, len(categories))

	for _, category := range categories {
		planned[domain.CategoryKey(category.Name)] = struct{}{}
		spent, _ := summary.CategorySpent(category.Name)
		variances = append(variances, domain.CategoryVariance{
			Name:           category.Name,
			Planned:        true,
			PlannedCents:   category.AmountCents,
			SpentCents:     spent,
			RemainingCents: category.AmountCents - spent,
			UsedPercentage: AmountToPercentage(spent, category.AmountCents),
		})
	}

	for _, spend := range summary.ByCategory {
		if _, ok := planned[domain.CategoryKey(spend.Name)]; ok {
			continue
		}
		variances = append(variances, domain.CategoryVariance{
			Name:           spend.Name,
			SpentCents:     spend.SpentCents,
			RemainingCents: -spend.SpentCents,
			UsedPercentage: decimal.Zero,
		})
	}
	return variances
}
