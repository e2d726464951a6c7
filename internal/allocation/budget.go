package allocation

import (
	"wardrobe-budget/internal/domain"

	"github.com/shopspring/decimal"
)

// FillBudgetInput derives category amounts for auto-allocated budgets whose
// categories carry no amounts. Percentages come from the categories when any
// are set, otherwise from table. A budget without categories receives the
// table's categories. Budgets that already carry amounts only get missing
// percentages filled in; the invariants are left for the caller to validate.
func FillBudgetInput(input domain.BudgetInput, table []Weight) (domain.BudgetInput, error) {
	if !input.AutoAllocate {
		return input, nil
	}
	if table == nil {
		table = DefaultWeights
	}

	categories := make([]domain.BudgetCategory, len(input.Categories))
	copy(categories, input.Categories)

	if len(categories) == 0 {
		for _, weight := range table {
			categories = append(categories, domain.BudgetCategory{Name: weight.Name})
		}
	}

	hasAmounts := false
	hasPercentages := false
	for _, category := range categories {
		if category.AmountCents != 0 {
			hasAmounts = true
		}
		if !category.Percentage.IsZero() {
			hasPercentages = true
		}
	}

	if hasAmounts {
		for i := range categories {
			if categories[i].Percentage.IsZero() && categories[i].AmountCents > 0 {
				categories[i].Percentage = AmountToPercentage(categories[i].AmountCents, input.TotalCents)
			}
		}
		input.Categories = categories
		return input, nil
	}

	var weights []Weight
	if hasPercentages {
		weights = make([]Weight, 0, len(categories))
		for _, category := range categories {
			weights = append(weights, Weight{Name: category.Name, Percentage: category.Percentage})
		}
	} else {
		names := make([]string, 0, len(categories))
		for _, category := range categories {
			names = append(names, category.Name)
		}
		weights = WeightsFor(names, nil, table)
	}

	allocation, err := Allocate(input.TotalCents, weights)
	if err != nil {
		return domain.BudgetInput{}, err
	}

	filled := make([]domain.BudgetCategory, 0, len(allocation.Lines))
	for _, line := range allocation.Lines {
		filled = append(filled, domain.BudgetCategory{
			Name:        line.Name,
			AmountCents: line.AmountCents,
			Percentage:  line.Percentage,
		})
	}
	input.Categories = filled
	return input, nil
}

// Rescale moves category amounts from oldTotal to newTotal in proportion to
// their current share. Amounts are rounded half-up to the cent and the
// residual lands on the last category, so a fully allocated budget stays fully
// allocated. Non-zero percentages are kept; missing ones are derived from the
// rescaled amounts.
func Rescale(categories []domain.BudgetCategory, oldTotal, newTotal int64) ([]domain.BudgetCategory, error) {
	if oldTotal <= 0 {
		return nil, domain.NewValidationError("total_amount", domain.ErrDivisionByZero)
	}
	if err := domain.ValidateAmountCents("total_amount", newTotal); err != nil {
		return nil, err
	}

	from := decimal.NewFromInt(oldTotal)
	to := decimal.NewFromInt(newTotal)
	scale := func(cents int64) int64 {
		return domain.RoundHalfUp(decimal.NewFromInt(cents).Mul(to).Div(from), 0).IntPart()
	}

	lines := make([]Line, len(categories))
	var oldSum, allocated int64
	for i, category := range categories {
		oldSum += category.AmountCents
		lines[i] = Line{Name: category.Name, Percentage: category.Percentage, AmountCents: scale(category.AmountCents)}
		allocated += lines[i].AmountCents
	}

	target := scale(oldSum)
	if target > newTotal {
		target = newTotal
	}
	absorbResidual(lines, target-allocated)

	rescaled := make([]domain.BudgetCategory, len(lines))
	for i, line := range lines {
		pct := line.Percentage
		if pct.IsZero() && line.AmountCents > 0 {
			pct = AmountToPercentage(line.AmountCents, newTotal)
		}
		rescaled[i] = domain.BudgetCategory{Name: line.Name, AmountCents: line.AmountCents, Percentage: pct}
	}
	return rescaled, nil
}
