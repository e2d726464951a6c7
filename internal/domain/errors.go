package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every ValidationError.
var ErrValidation = errors.New("validation failed")

var (
	ErrDivisionByZero = errors.New("division by zero")

	ErrNegativeAmount        = errors.New("amount must not be negative")
	ErrInvalidPercentage     = errors.New("percentage must be between 0 and 100")
	ErrPercentageSumExceeded = errors.New("percentages sum to more than 100")
	ErrAllocationMismatch    = errors.New("category amounts do not match total budget")
	ErrInvalidAlertThreshold = errors.New("alert threshold must be between 0 and 100")
	ErrInvalidPeriodKind     = errors.New("invalid period kind")
	ErrInvalidDateRange      = errors.New("end date is before start date")
	ErrDateRequired          = errors.New("date is required")
	ErrInvalidDate           = errors.New("invalid date")
)

// ValidationError reports malformed or inconsistent caller input. It unwraps to
// ErrValidation and to the specific cause.
type ValidationError struct {
	Field string
	Err   error
}

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ErrValidation.Error()
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", ErrValidation, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrValidation, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() []error {
	if e == nil || e.Err == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// ValidationField returns the offending field name when err carries a ValidationError.
func ValidationField(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Field
	}
	return ""
}
