package allocation

import (
	"wardrobe-budget/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultWeights is applied to categories the caller has not weighted.
var DefaultWeights = []Weight{
	{Name: "Menswear", Percentage: decimal.NewFromInt(25)},
	{Name: "Womenswear", Percentage: decimal.NewFromInt(35)},
	{Name: "Kidswear", Percentage: decimal.NewFromInt(15)},
	{Name: "Accessories", Percentage: decimal.NewFromInt(15)},
	{Name: "Shoes", Percentage: decimal.NewFromInt(10)},
}

// DefaultCategoryNames lists the category names of DefaultWeights in order.
func DefaultCategoryNames() []string {
	names := make([]string, 0, len(DefaultWeights))
	for _, weight := range DefaultWeights {
		names = append(names, weight.Name)
	}
	return names
}

// WeightsFor returns explicit when it is non-empty. Otherwise each name is
// looked up in table (DefaultWeights when table is nil); names missing from the
// table get 0%.
func WeightsFor(names []string, explicit []Weight, table []Weight) []Weight {
	if len(explicit) > 0 {
		out := make([]Weight, len(explicit))
		copy(out, explicit)
		return out
	}
	if table == nil {
		table = DefaultWeights
	}

	byKey := make(map[string]decimal.Decimal, len(table))
	for _, weight := range table {
		byKey[domain.CategoryKey(weight.Name)] = weight.Percentage
	}

	out := make([]Weight, 0, len(names))
	for _, name := range names {
		pct, ok := byKey[domain.CategoryKey(name)]
		if !ok {
			pct = decimal.Zero
		}
		out = append(out, Weight{Name: name, Percentage: pct})
	}
	return out
}
