package cli

import (
	"strconv"
	"strings"

	"wardrobe-budget/internal/allocation"
	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/service"
	sqlitestore "wardrobe-budget/internal/store/sqlite"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type budgetFlags struct {
	name           string
	total          string
	period         string
	startDate      string
	endDate        string
	categories     []string
	alertThreshold int
	autoAllocate   bool
}

func NewBudgetCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage wardrobe budgets",
	}

	cmd.AddCommand(
		newBudgetCreateCmd(opts),
		newBudgetShowCmd(opts),
		newBudgetListCmd(opts),
		newBudgetUpdateCmd(opts),
		newBudgetDeleteCmd(opts),
	)

	return cmd
}

func newBudgetCreateCmd(opts *RootOptions) *cobra.Command {
	flags := &budgetFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a budget",
		Example: "  wardrobe-budget budget create --name Spring --total 1000 --auto-allocate\n" +
			"  wardrobe-budget budget create --name Shoes --total 300 --category Sneakers=60% --category Boots=40% --auto-allocate",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("budget create", args); err != nil {
				return printError(cmd, opts, err)
			}
			if !cmd.Flags().Changed("total") {
				return printError(cmd, opts, invalidArgument("total is required", map[string]any{"field": "total"}))
			}

			svc, err := newBudgetService(opts)
			if err != nil {
				return printError(cmd, opts, err)
			}

			input, err := buildBudgetInput(cmd, flags, domain.BudgetInput{})
			if err != nil {
				return printError(cmd, opts, err)
			}

			budget, err := svc.Create(cmd.Context(), input)
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{"budget": budget}, nil)
		},
	}

	bindBudgetFlags(cmd, flags)
	return cmd
}

func newBudgetShowCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return printError(cmd, opts, invalidArgument("show requires exactly one argument: <id>", map[string]any{"required_args": []string{"id"}}))
			}

			id, err := parseBudgetID(args[0])
			if err != nil {
				return printError(cmd, opts, err)
			}

			svc, err := newBudgetService(opts)
			if err != nil {
				return printError(cmd, opts, err)
			}

			budget, err := svc.Show(cmd.Context(), id)
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{"budget": budget}, nil)
		},
	}
}

func newBudgetListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("budget list", args); err != nil {
				return printError(cmd, opts, err)
			}

			svc, err := newBudgetService(opts)
			if err != nil {
				return printError(cmd, opts, err)
			}

			budgets, err := svc.List(cmd.Context())
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{
				"budgets": budgets,
				"count":   len(budgets),
			}, nil)
		},
	}
}

func newBudgetUpdateCmd(opts *RootOptions) *cobra.Command {
	flags := &budgetFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a budget; unset flags keep their current values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return printError(cmd, opts, invalidArgument("update requires exactly one argument: <id>", map[string]any{"required_args": []string{"id"}}))
			}

			id, err := parseBudgetID(args[0])
			if err != nil {
				return printError(cmd, opts, err)
			}

			svc, err := newBudgetService(opts)
			if err != nil {
				return printError(cmd, opts, err)
			}

			current, err := svc.Show(cmd.Context(), id)
			if err != nil {
				return printError(cmd, opts, err)
			}

			input, err := buildBudgetInput(cmd, flags, inputFromBudget(current))
			if err != nil {
				return printError(cmd, opts, err)
			}

			budget, err := svc.Update(cmd.Context(), id, input)
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{"budget": budget}, nil)
		},
	}

	bindBudgetFlags(cmd, flags)
	return cmd
}

func newBudgetDeleteCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget and its categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return printError(cmd, opts, invalidArgument("delete requires exactly one argument: <id>", map[string]any{"required_args": []string{"id"}}))
			}

			id, err := parseBudgetID(args[0])
			if err != nil {
				return printError(cmd, opts, err)
			}

			svc, err := newBudgetService(opts)
			if err != nil {
				return printError(cmd, opts, err)
			}

			result, err := svc.Delete(cmd.Context(), id)
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{"deleted": result}, nil)
		},
	}
}

func bindBudgetFlags(cmd *cobra.Command, flags *budgetFlags) {
	cmd.Flags().StringVar(&flags.name, "name", "", "Budget name")
	cmd.Flags().StringVar(&flags.total, "total", "", "Total amount in major units (e.g. 1000.00)")
	cmd.Flags().StringVar(&flags.period, "period", string(domain.PeriodMonthly), "Period: weekly|monthly|quarterly|yearly|custom")
	cmd.Flags().StringVar(&flags.startDate, "start-date", "", "Custom period start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.endDate, "end-date", "", "Custom period end date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&flags.categories, "category", nil, "Category as Name, Name=amount or Name=pct% (repeatable)")
	cmd.Flags().IntVar(&flags.alertThreshold, "alert-threshold", domain.DefaultAlertThreshold, "Percentage of the limit that raises an approaching alert")
	cmd.Flags().BoolVar(&flags.autoAllocate, "auto-allocate", false, "Derive category amounts from percentages or the default weights")
}

// buildBudgetInput overlays the flags the user changed on top of base.
func buildBudgetInput(cmd *cobra.Command, flags *budgetFlags, base domain.BudgetInput) (domain.BudgetInput, error) {
	changed := cmd.Flags().Changed
	input := base

	if changed("name") || base.Name == "" {
		input.Name = flags.name
	}
	if changed("total") {
		cents, err := domain.ParseAmountToCents(flags.total)
		if err != nil {
			return domain.BudgetInput{}, domain.NewValidationError("total", err)
		}
		input.TotalCents = cents
	}
	if changed("period") || base.Period == "" {
		input.Period = flags.period
	}
	if changed("start-date") {
		input.StartDate = flags.startDate
	}
	if changed("end-date") {
		input.EndDate = flags.endDate
	}
	if changed("alert-threshold") {
		threshold := flags.alertThreshold
		input.AlertThreshold = &threshold
	}
	if changed("auto-allocate") {
		input.AutoAllocate = flags.autoAllocate
	}

	if changed("category") {
		categories := make([]domain.BudgetCategory, 0, len(flags.categories))
		for _, raw := range flags.categories {
			category, err := parseCategorySpec(raw)
			if err != nil {
				return domain.BudgetInput{}, err
			}
			categories = append(categories, category)
		}
		input.Categories = categories
	} else if input.AutoAllocate && input.TotalCents != base.TotalCents {
		if base.TotalCents > 0 && categoriesHaveAmounts(input.Categories) {
			categories, err := allocation.Rescale(input.Categories, base.TotalCents, input.TotalCents)
			if err != nil {
				return domain.BudgetInput{}, err
			}
			input.Categories = categories
		} else {
			// Re-derive amounts from the kept percentages for the new total.
			categories := make([]domain.BudgetCategory, len(input.Categories))
			for i, category := range input.Categories {
				categories[i] = domain.BudgetCategory{Name: category.Name, Percentage: category.Percentage}
			}
			input.Categories = categories
		}
	}

	return input, nil
}

func categoriesHaveAmounts(categories []domain.BudgetCategory) bool {
	for _, category := range categories {
		if category.AmountCents != 0 {
			return true
		}
	}
	return false
}

func inputFromBudget(budget domain.Budget) domain.BudgetInput {
	threshold := budget.AlertThreshold
	categories := make([]domain.BudgetCategory, len(budget.Categories))
	copy(categories, budget.Categories)

	return domain.BudgetInput{
		Name:           budget.Name,
		TotalCents:     budget.TotalCents,
		Period:         string(budget.Period),
		StartDate:      budget.StartDate,
		EndDate:        budget.EndDate,
		Categories:     categories,
		AlertThreshold: &threshold,
		AutoAllocate:   budget.AutoAllocate,
	}
}

// parseCategorySpec reads "Name", "Name=250.00" or "Name=30%".
func parseCategorySpec(raw string) (domain.BudgetCategory, error) {
	name, value, found := strings.Cut(raw, "=")
	category := domain.BudgetCategory{Name: strings.TrimSpace(name)}
	if !found {
		return category, nil
	}

	value = strings.TrimSpace(value)
	if pctRaw, ok := strings.CutSuffix(value, "%"); ok {
		pct, err := decimal.NewFromString(strings.TrimSpace(pctRaw))
		if err != nil {
			return domain.BudgetCategory{}, invalidArgument("category percentage must be a number", map[string]any{"field": "category", "value": raw})
		}
		category.Percentage = pct
		return category, nil
	}

	cents, err := domain.ParseAmountToCents(value)
	if err != nil {
		return domain.BudgetCategory{}, domain.NewValidationError("category", err)
	}
	category.AmountCents = cents
	return category, nil
}

func parseBudgetID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalidArgument("budget id must be a positive integer", map[string]any{"field": "id", "value": raw})
	}
	return id, nil
}

func newBudgetService(opts *RootOptions) (*service.BudgetService, error) {
	if opts == nil || opts.db == nil {
		return nil, dbUnavailable()
	}
	return service.NewBudgetService(sqlitestore.NewBudgetRepo(opts.db), opts.cfg.WeightTable(), opts.cfg.Alerts.DefaultThreshold)
}
