package domain

import "github.com/shopspring/decimal"

var (
	// HundredPercent is the upper bound for a single percentage and for a percentage sum.
	HundredPercent = decimal.NewFromInt(100)
	// PercentageTolerance is the slack allowed when comparing a percentage sum against 100.
	PercentageTolerance = decimal.RequireFromString("0.001")
)

// Percentage returns part/whole*100 rounded half-up to places.
func Percentage(part, whole int64, places int32) (decimal.Decimal, error) {
	if whole == 0 {
		return decimal.Zero, ErrDivisionByZero
	}
	ratio := decimal.NewFromInt(part).Mul(HundredPercent).Div(decimal.NewFromInt(whole))
	return RoundHalfUp(ratio, places), nil
}

// ShareOfCents returns pct percent of totalCents, still in cents and unrounded.
func ShareOfCents(totalCents int64, pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(totalCents).Mul(pct).Div(HundredPercent)
}

func ValidatePercentage(field string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(HundredPercent) {
		return NewValidationError(field, ErrInvalidPercentage)
	}
	return nil
}

// ValidatePercentageSum rejects sums above 100 beyond PercentageTolerance.
func ValidatePercentageSum(field string, sum decimal.Decimal) error {
	if sum.Sub(HundredPercent).GreaterThan(PercentageTolerance) {
		return NewValidationError(field, ErrPercentageSumExceeded)
	}
	return nil
}
