package cli

import (
	"errors"
	"fmt"

	"wardrobe-budget/internal/cli/output"
	"wardrobe-budget/internal/domain"

	"github.com/spf13/cobra"
)

// commandError carries a ready-made envelope error from flag parsing and
// setup code.
type commandError struct {
	Code    string
	Message string
	Details any
}

func (e *commandError) Error() string {
	if e == nil {
		return "command error"
	}
	return e.Message
}

func invalidArgument(message string, details any) *commandError {
	if details == nil {
		details = map[string]any{}
	}
	return &commandError{Code: output.ErrorCodeInvalidArgument, Message: message, Details: details}
}

func rejectPositionalArgs(name string, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return invalidArgument(name+" does not accept positional arguments", map[string]any{"args": args})
}

func outputFormat(opts *RootOptions) string {
	if opts == nil {
		return output.FormatHuman
	}
	return opts.Output
}

func printSuccess(cmd *cobra.Command, opts *RootOptions, data any, warnings []output.WarningPayload) error {
	if cmd == nil {
		return fmt.Errorf("nil command")
	}
	return output.Print(cmd.OutOrStdout(), outputFormat(opts), output.NewSuccessEnvelope(data, warnings))
}

func printError(cmd *cobra.Command, opts *RootOptions, err error) error {
	if cmd == nil {
		return fmt.Errorf("nil command")
	}
	return output.Print(cmd.OutOrStdout(), outputFormat(opts), envelopeFromError(err))
}

func envelopeFromError(err error) output.Envelope {
	if err == nil {
		return output.NewErrorEnvelope(output.ErrorCodeInternal, "unexpected internal failure", map[string]any{}, nil)
	}

	var cliErr *commandError
	if errors.As(err, &cliErr) {
		return output.NewErrorEnvelope(cliErr.Code, cliErr.Message, cliErr.Details, nil)
	}

	details := map[string]any{"reason": err.Error()}
	if field := domain.ValidationField(err); field != "" {
		details["field"] = field
	}
	return output.NewErrorEnvelope(codeFromError(err), messageFromError(err), details, nil)
}

func codeFromError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange):
		return output.ErrorCodeInvalidDateRange
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAmountPrecision),
		errors.Is(err, domain.ErrAmountOverflow),
		errors.Is(err, domain.ErrNegativeAmount):
		return output.ErrorCodeInvalidArgument
	case errors.Is(err, domain.ErrBudgetNotFound),
		errors.Is(err, domain.ErrPurchaseNotFound):
		return output.ErrorCodeNotFound
	case errors.Is(err, domain.ErrBudgetNameConflict):
		return output.ErrorCodeConflict
	default:
		return output.ErrorCodeDBError
	}
}

func messageFromError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "end date must not be before start date"
	case errors.Is(err, domain.ErrPercentageSumExceeded):
		return "category percentages must not sum to more than 100"
	case errors.Is(err, domain.ErrAllocationMismatch):
		return "category amounts must add up to the budget total"
	case errors.Is(err, domain.ErrInvalidPercentage):
		return "percentage must be between 0 and 100"
	case errors.Is(err, domain.ErrInvalidAlertThreshold):
		return "alert threshold must be between 0 and 100"
	case errors.Is(err, domain.ErrCustomPeriodRequires):
		return "custom period requires --start-date and --end-date"
	case errors.Is(err, domain.ErrInvalidPeriodKind):
		return "period must be weekly|monthly|quarterly|yearly|custom"
	case errors.Is(err, domain.ErrNegativeAmount):
		return "amount must not be negative"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "amount must be a valid decimal number"
	case errors.Is(err, domain.ErrInvalidAmountPrecision):
		return "amount has more than 2 decimal places"
	case errors.Is(err, domain.ErrAmountOverflow):
		return "amount is too large"
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrDateRequired):
		return "date must use YYYY-MM-DD"
	case errors.Is(err, domain.ErrCategoryNameConflict):
		return "category names must be unique"
	case errors.Is(err, domain.ErrValidation):
		return err.Error()
	case errors.Is(err, domain.ErrBudgetNotFound):
		return "budget not found"
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return "purchase not found"
	case errors.Is(err, domain.ErrBudgetNameConflict):
		return "budget name already exists"
	default:
		return "database operation failed"
	}
}
