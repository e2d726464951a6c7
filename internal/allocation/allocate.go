// Package allocation splits budget totals across categories and reconciles
// planned amounts against actual spend.
package allocation

import (
	"wardrobe-budget/internal/domain"

	"github.com/shopspring/decimal"
)

// Weight is a category share expressed as a percentage of the total.
type Weight struct {
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}

type Line struct {
	Name        string          `json:"name"`
	Percentage  decimal.Decimal `json:"percentage"`
	AmountCents int64           `json:"amount_minor"`
}

type Allocation struct {
	TotalCents       int64  `json:"total_amount_minor"`
	Lines            []Line `json:"lines"`
	AllocatedCents   int64  `json:"allocated_minor"`
	UnallocatedCents int64  `json:"unallocated_minor"`
}

var percentagePlaces int32 = 1

// Allocate derives per-category amounts from weights. Each amount is rounded
// half-up to the cent and the last line absorbs the rounding residual, so the
// lines add up to round(total * sum(weights) / 100), capped at totalCents; with
// weights summing to 100 that is exactly totalCents. A negative residual larger
// than the last line spills onto the lines before it, never below zero.
func Allocate(totalCents int64, weights []Weight) (Allocation, error) {
	if err := domain.ValidateAmountCents("total_amount", totalCents); err != nil {
		return Allocation{}, err
	}

	normalized, sum, err := normalizeWeights(weights)
	if err != nil {
		return Allocation{}, err
	}

	target := domain.RoundHalfUp(domain.ShareOfCents(totalCents, sum), 0).IntPart()
	if target > totalCents {
		target = totalCents
	}

	lines := make([]Line, 0, len(normalized))
	var allocated int64
	for _, weight := range normalized {
		amount := domain.RoundHalfUp(domain.ShareOfCents(totalCents, weight.Percentage), 0).IntPart()
		allocated += amount
		lines = append(lines, Line{Name: weight.Name, Percentage: weight.Percentage, AmountCents: amount})
	}

	absorbResidual(lines, target-allocated)
	allocated = sumLines(lines)

	return Allocation{
		TotalCents:       totalCents,
		Lines:            lines,
		AllocatedCents:   allocated,
		UnallocatedCents: totalCents - allocated,
	}, nil
}

// AmountToPercentage returns amount as a percentage of total rounded to one
// decimal place. A zero total yields 0.
func AmountToPercentage(amountCents, totalCents int64) decimal.Decimal {
	pct, err := domain.Percentage(amountCents, totalCents, percentagePlaces)
	if err != nil {
		return decimal.Zero
	}
	return pct
}

func normalizeWeights(weights []Weight) ([]Weight, decimal.Decimal, error) {
	normalized := make([]Weight, 0, len(weights))
	seen := make(map[string]struct{}, len(weights))
	sum := decimal.Zero

	for _, weight := range weights {
		name, err := domain.NormalizeCategoryName(weight.Name)
		if err != nil {
			return nil, decimal.Zero, domain.NewValidationError("weights.name", err)
		}
		key := domain.CategoryKey(name)
		if _, dup := seen[key]; dup {
			return nil, decimal.Zero, domain.NewValidationError("weights.name", domain.ErrCategoryNameConflict)
		}
		seen[key] = struct{}{}

		if err := domain.ValidatePercentage("weights.percentage", weight.Percentage); err != nil {
			return nil, decimal.Zero, err
		}
		sum = sum.Add(weight.Percentage)
		normalized = append(normalized, Weight{Name: name, Percentage: weight.Percentage})
	}

	if err := domain.ValidatePercentageSum("weights.percentage", sum); err != nil {
		return nil, decimal.Zero, err
	}
	return normalized, sum, nil
}

func absorbResidual(lines []Line, residual int64) {
	if len(lines) == 0 || residual == 0 {
		return
	}
	if residual > 0 {
		lines[len(lines)-1].AmountCents += residual
		return
	}

	for i := len(lines) - 1; i >= 0 && residual < 0; i-- {
		take := -residual
		if take > lines[i].AmountCents {
			take = lines[i].AmountCents
		}
		lines[i].AmountCents -= take
		residual += take
	}
}

func sumLines(lines []Line) int64 {
	var total int64
	for _, line := range lines {
		total += line.AmountCents
	}
	return total
}
