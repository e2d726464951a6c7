package cli

import (
	"strings"
	"time"

	"wardrobe-budget/internal/domain"

	"github.com/spf13/cobra"
)

type periodFlags struct {
	kind      string
	date      string
	startDate string
	endDate   string
}

func NewPeriodCmd(opts *RootOptions) *cobra.Command {
	flags := &periodFlags{}

	cmd := &cobra.Command{
		Use:         "period",
		Short:       "Resolve the period window containing a date",
		Annotations: map[string]string{skipDBAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("period", args); err != nil {
				return printError(cmd, opts, err)
			}

			kind, err := domain.NormalizePeriodKind(flags.kind)
			if err != nil {
				return printError(cmd, opts, err)
			}

			input := domain.PeriodInput{Kind: kind}
			if kind == domain.PeriodCustom {
				if input.Start, err = parseOptionalDate("start_date", flags.startDate); err != nil {
					return printError(cmd, opts, err)
				}
				if input.End, err = parseOptionalDate("end_date", flags.endDate); err != nil {
					return printError(cmd, opts, err)
				}
			} else {
				if input.Reference, err = statusReference(opts, flags.date); err != nil {
					return printError(cmd, opts, err)
				}
			}

			window, err := domain.ResolvePeriod(input)
			if err != nil {
				return printError(cmd, opts, err)
			}
			previous, err := domain.PreviousWindow(kind, window)
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{
				"kind":            kind,
				"window":          window,
				"days":            window.Days(),
				"previous_window": previous,
			}, nil)
		},
	}

	cmd.Flags().StringVar(&flags.kind, "kind", string(domain.PeriodMonthly), "Period: weekly|monthly|quarterly|yearly|custom")
	cmd.Flags().StringVar(&flags.date, "date", "", "Reference date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&flags.startDate, "start-date", "", "Custom period start date")
	cmd.Flags().StringVar(&flags.endDate, "end-date", "", "Custom period end date")

	return cmd
}

// parseOptionalDate returns the zero time for an empty value so the resolver
// reports the missing date itself.
func parseOptionalDate(field, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	parsed, err := domain.ParseDate(raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, err)
	}
	return parsed, nil
}
