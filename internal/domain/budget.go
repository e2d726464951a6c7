package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	BudgetNameMaxLength   = 120
	DefaultAlertThreshold = 80
	// AllocationToleranceCents is how far category amounts may drift from the
	// total of an auto-allocated budget.
	AllocationToleranceCents = 1
)

var (
	ErrInvalidBudgetID      = errors.New("invalid budget id")
	ErrBudgetNameRequired   = errors.New("budget name is required")
	ErrBudgetNameTooLong    = errors.New("budget name exceeds maximum length")
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrBudgetNameConflict   = errors.New("budget name already exists")
	ErrCustomPeriodRequires = errors.New("custom period requires start and end dates")
)

type Budget struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	TotalCents     int64            `json:"total_amount_minor"`
	Period         PeriodKind       `json:"period"`
	StartDate      string           `json:"start_date,omitempty"`
	EndDate        string           `json:"end_date,omitempty"`
	Categories     []BudgetCategory `json:"categories"`
	AlertThreshold int              `json:"alert_threshold"`
	AutoAllocate   bool             `json:"auto_allocate"`
	CreatedAtUTC   string           `json:"created_at_utc"`
	UpdatedAtUTC   string           `json:"updated_at_utc"`
}

type BudgetInput struct {
	Name       string
	TotalCents int64
	Period     string
	StartDate  string
	EndDate    string
	Categories []BudgetCategory
	// AlertThreshold falls back to DefaultAlertThreshold when nil.
	AlertThreshold *int
	AutoAllocate   bool
}

type BudgetDeleteResult struct {
	BudgetID     int64  `json:"budget_id"`
	DeletedAtUTC string `json:"deleted_at_utc"`
}

func NormalizeBudgetName(name string) (string, error) {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return "", ErrBudgetNameRequired
	}
	if len(normalized) > BudgetNameMaxLength {
		return "", ErrBudgetNameTooLong
	}
	return normalized, nil
}

func ValidateAlertThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return NewValidationError("alert_threshold", ErrInvalidAlertThreshold)
	}
	return nil
}

// NormalizeBudgetInput trims and validates field-level input. Cross-field
// invariants are checked separately by ValidateBudgetInvariants so callers can
// derive auto-allocated amounts in between.
func NormalizeBudgetInput(input BudgetInput) (BudgetInput, error) {
	name, err := NormalizeBudgetName(input.Name)
	if err != nil {
		return BudgetInput{}, NewValidationError("name", err)
	}

	if err := ValidateAmountCents("total_amount", input.TotalCents); err != nil {
		return BudgetInput{}, err
	}

	period, err := NormalizePeriodKind(input.Period)
	if err != nil {
		return BudgetInput{}, err
	}

	startDate, err := normalizeOptionalDate("start_date", input.StartDate)
	if err != nil {
		return BudgetInput{}, err
	}
	endDate, err := normalizeOptionalDate("end_date", input.EndDate)
	if err != nil {
		return BudgetInput{}, err
	}
	if period == PeriodCustom && (startDate == "" || endDate == "") {
		return BudgetInput{}, NewValidationError("period", ErrCustomPeriodRequires)
	}
	if startDate != "" && endDate != "" && endDate < startDate {
		return BudgetInput{}, NewValidationError("end_date", ErrInvalidDateRange)
	}

	threshold := DefaultAlertThreshold
	if input.AlertThreshold != nil {
		threshold = *input.AlertThreshold
	}
	if err := ValidateAlertThreshold(threshold); err != nil {
		return BudgetInput{}, err
	}

	categories, err := NormalizeCategories(input.Categories)
	if err != nil {
		return BudgetInput{}, err
	}

	return BudgetInput{
		Name:           name,
		TotalCents:     input.TotalCents,
		Period:         string(period),
		StartDate:      startDate,
		EndDate:        endDate,
		Categories:     categories,
		AlertThreshold: &threshold,
		AutoAllocate:   input.AutoAllocate,
	}, nil
}

// ValidateBudgetInvariants checks the percentage sum and, for auto-allocated
// budgets, that category amounts add up to the total.
func ValidateBudgetInvariants(totalCents int64, categories []BudgetCategory, autoAllocate bool) error {
	percentageSum := decimal.Zero
	var amountSum int64
	for _, category := range categories {
		percentageSum = percentageSum.Add(category.Percentage)
		amountSum += category.AmountCents
	}

	if err := ValidatePercentageSum("categories.percentage", percentageSum); err != nil {
		return err
	}

	if autoAllocate {
		diff := amountSum - totalCents
		if diff < 0 {
			diff = -diff
		}
		if diff > AllocationToleranceCents {
			return NewValidationError("categories.amount", ErrAllocationMismatch)
		}
	}
	return nil
}

// Window resolves the budget's period window around reference. Custom budgets
// always use their explicit dates.
func (b Budget) Window(reference time.Time) (PeriodWindow, error) {
	if b.Period == PeriodCustom {
		start, err := ParseDate(b.StartDate)
		if err != nil {
			return PeriodWindow{}, NewValidationError("start_date", err)
		}
		end, err := ParseDate(b.EndDate)
		if err != nil {
			return PeriodWindow{}, NewValidationError("end_date", err)
		}
		return ResolvePeriod(PeriodInput{Kind: PeriodCustom, Start: start, End: end})
	}
	return ResolvePeriod(PeriodInput{Kind: b.Period, Reference: reference})
}

// CategoryNames lists the budget's category names in order.
func (b Budget) CategoryNames() []string {
	names := make([]string, 0, len(b.Categories))
	for _, category := range b.Categories {
		names = append(names, category.Name)
	}
	return names
}

func normalizeOptionalDate(field, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return "", NewValidationError(field, err)
	}
	return FormatDate(parsed), nil
}
