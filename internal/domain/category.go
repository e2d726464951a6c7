package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const CategoryNameMaxLength = 120

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name exceeds maximum length")
	ErrCategoryNameConflict = errors.New("category name already exists")
)

// BudgetCategory is one planned spending bucket of a budget.
type BudgetCategory struct {
	Name        string          `json:"name"`
	AmountCents int64           `json:"amount_minor"`
	Percentage  decimal.Decimal `json:"percentage"`
}

func NormalizeCategoryName(name string) (string, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return "", ErrCategoryNameRequired
	}
	if len(normalized) > CategoryNameMaxLength {
		return "", ErrCategoryNameTooLong
	}
	return normalized, nil
}

// CategoryKey is the comparison key for category names; matching is case-insensitive.
func CategoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeCategories trims names and rejects empty, duplicate, negative or
// out-of-range entries. Order is preserved.
func NormalizeCategories(categories []BudgetCategory) ([]BudgetCategory, error) {
	normalized := make([]BudgetCategory, 0, len(categories))
	seen := make(map[string]struct{}, len(categories))

	for _, category := range categories {
		name, err := NormalizeCategoryName(category.Name)
		if err != nil {
			return nil, NewValidationError("categories.name", err)
		}
		key := CategoryKey(name)
		if _, dup := seen[key]; dup {
			return nil, NewValidationError("categories.name", ErrCategoryNameConflict)
		}
		seen[key] = struct{}{}

		if err := ValidateAmountCents("categories.amount", category.AmountCents); err != nil {
			return nil, err
		}
		if err := ValidatePercentage("categories.percentage", category.Percentage); err != nil {
			return nil, err
		}

		normalized = append(normalized, BudgetCategory{
			Name:        name,
			AmountCents: category.AmountCents,
			Percentage:  category.Percentage,
		})
	}
	return normalized, nil
}
