package cli

import (
	"strings"
	"time"

	"wardrobe-budget/internal/cli/output"
	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/service"
	sqlitestore "wardrobe-budget/internal/store/sqlite"

	"github.com/spf13/cobra"
)

type statusFlags struct {
	budgetID int64
	date     string
	all      bool
}

func NewStatusCmd(opts *RootOptions) *cobra.Command {
	flags := &statusFlags{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show spend, trend and alerts for the current budget period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("status", args); err != nil {
				return printError(cmd, opts, err)
			}
			if flags.all == cmd.Flags().Changed("budget-id") {
				return printError(cmd, opts, invalidArgument("exactly one of --budget-id or --all is required", map[string]any{"fields": []string{"budget-id", "all"}}))
			}

			reference, err := statusReference(opts, flags.date)
			if err != nil {
				return printError(cmd, opts, err)
			}

			svc, err := newStatusService(opts)
			if err != nil {
				return printError(cmd, opts, err)
			}

			if flags.all {
				statuses, err := svc.StatusAll(cmd.Context(), reference)
				if err != nil {
					return printError(cmd, opts, err)
				}
				return printSuccess(cmd, opts, map[string]any{
					"reference_date": domain.FormatDate(reference),
					"statuses":       statuses,
					"count":          len(statuses),
				}, alertWarnings(statuses...))
			}

			status, err := svc.Status(cmd.Context(), flags.budgetID, reference)
			if err != nil {
				return printError(cmd, opts, err)
			}
			return printSuccess(cmd, opts, map[string]any{
				"reference_date": domain.FormatDate(reference),
				"status":         status,
			}, alertWarnings(status))
		},
	}

	cmd.Flags().Int64Var(&flags.budgetID, "budget-id", 0, "Budget id")
	cmd.Flags().StringVar(&flags.date, "date", "", "Reference date (YYYY-MM-DD), defaults to today in --timezone")
	cmd.Flags().BoolVar(&flags.all, "all", false, "Report every budget")

	return cmd
}

// statusReference resolves the reference date; today is taken in the display
// timezone so late-evening runs land in the local day.
func statusReference(opts *RootOptions, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) != "" {
		reference, err := domain.ParseDate(raw)
		if err != nil {
			return time.Time{}, domain.NewValidationError("date", err)
		}
		return reference, nil
	}

	location := output.DisplayLocation()
	if opts != nil && opts.Timezone != "" {
		if loaded, err := time.LoadLocation(opts.Timezone); err == nil {
			location = loaded
		}
	}
	now := time.Now().In(location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

func alertWarnings(statuses ...service.BudgetStatus) []output.WarningPayload {
	warnings := make([]output.WarningPayload, 0)
	for _, status := range statuses {
		for _, alert := range status.NotifiableAlerts() {
			warnings = append(warnings, output.NewAlertWarning(status.Budget.ID, alert))
		}
	}
	return warnings
}

func newStatusService(opts *RootOptions) (*service.StatusService, error) {
	if opts == nil || opts.db == nil {
		return nil, dbUnavailable()
	}
	return service.NewStatusService(
		sqlitestore.NewBudgetRepo(opts.db),
		sqlitestore.NewPurchaseRepo(opts.db),
		opts.notifier(),
		opts.log(),
	)
}
