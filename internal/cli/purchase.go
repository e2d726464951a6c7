package cli

import (
	"strconv"
	"strings"

	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/service"
	sqlitestore "wardrobe-budget/internal/store/sqlite"

	"github.com/spf13/cobra"
)

type purchaseAddFlags struct {
	category string
	amount   string
	date     string
	item     string
}

type purchaseListFlags struct {
	category string
	fromDate string
	toDate   string
}

func NewPurchaseCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchase",
		Short: "Record and inspect wardrobe purchases",
	}

	cmd.AddCommand(
		newPurchaseAddCmd(opts),
		newPurchaseListCmd(opts),
		newPurchaseDeleteCmd(opts),
	)

	return cmd
}

func newPurchaseAddCmd(opts *RootOptions) *cobra.Command {
	flags := &purchaseAddFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a purchase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("purchase add", args); err != nil {
				return printError(cmd, opts, err)
			}
			if !cmd.Flags().Changed("amount") {
				return printError(cmd, opts, invalidArgument("amount is required", map[string]any{"field": "amount"}))
			}

			cents, err := domain.ParseAmountToCents(flags.amount)
			if err != nil {
				return printError(cmd, opts, domain.NewValidationError("amount", err))
			}

			svc, err := newPurchaseService(opts)
			if err != nil {
				return printError(cmd, opts, err)
			}

			record, err := svc.Record(cmd.Context(), domain.PurchaseInput{
				CategoryName: flags.category,
				AmountCents:  cents,
				PurchaseDate: flags.date,
				ItemName:     flags.item,
			})
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{"purchase": record}, nil)
		},
	}

	cmd.Flags().StringVar(&flags.category, "category", "", "Category name")
	cmd.Flags().StringVar(&flags.amount, "amount", "", "Amount in major units (e.g. 89.99)")
	cmd.Flags().StringVar(&flags.date, "date", "", "Purchase date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.item, "item", "", "Item description")

	return cmd
}

func newPurchaseListCmd(opts *RootOptions) *cobra.Command {
	flags := &purchaseListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List purchases, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("purchase list", args); err != nil {
				return printError(cmd, opts, err)
			}

			filter, err := buildPurchaseFilter(flags)
			if err != nil {
				return printError(cmd, opts, err)
			}

			svc, err := newPurchaseService(opts)
			if err != nil {
				return printError(cmd, opts, err)
			}

			records, err := svc.List(cmd.Context(), filter)
			if err != nil {
				return printError(cmd, opts, err)
			}

			var total int64
			for _, record := range records {
				total += record.AmountCents
			}

			return printSuccess(cmd, opts, map[string]any{
				"purchases":   records,
				"count":       len(records),
				"total_minor": total,
			}, nil)
		},
	}

	cmd.Flags().StringVar(&flags.category, "category", "", "Only purchases in this category")
	cmd.Flags().StringVar(&flags.fromDate, "from", "", "Inclusive start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.toDate, "to", "", "Inclusive end date (YYYY-MM-DD)")

	return cmd
}

func newPurchaseDeleteCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a purchase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return printError(cmd, opts, invalidArgument("delete requires exactly one argument: <id>", map[string]any{"required_args": []string{"id"}}))
			}

			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return printError(cmd, opts, invalidArgument("purchase id must be a positive integer", map[string]any{"field": "id", "value": args[0]}))
			}

			svc, err := newPurchaseService(opts)
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

// buildPurchaseFilter needs both ends of the date range or neither.
func buildPurchaseFilter(flags *purchaseListFlags) (domain.PurchaseFilter, error) {
	filter := domain.PurchaseFilter{CategoryName: flags.category}

	from := strings.TrimSpace(flags.fromDate)
	to := strings.TrimSpace(flags.toDate)
	if from == "" && to == "" {
		return filter, nil
	}
	if from == "" || to == "" {
		return domain.PurchaseFilter{}, invalidArgument("--from and --to must be given together", map[string]any{"fields": []string{"from", "to"}})
	}

	start, err := domain.ParseDate(from)
	if err != nil {
		return domain.PurchaseFilter{}, domain.NewValidationError("from", err)
	}
	end, err := domain.ParseDate(to)
	if err != nil {
		return domain.PurchaseFilter{}, domain.NewValidationError("to", err)
	}

	window, err := domain.NewPeriodWindow(start, end)
	if err != nil {
		return domain.PurchaseFilter{}, err
	}
	filter.Window = &window
	return filter, nil
}

func newPurchaseService(opts *RootOptions) (*service.PurchaseService, error) {
	if opts == nil || opts.db == nil {
		return nil, dbUnavailable()
	}
	return service.NewPurchaseService(sqlitestore.NewPurchaseRepo(opts.db))
}
