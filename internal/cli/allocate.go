package cli

import (
	"strings"

	"wardrobe-budget/internal/allocation"
	"wardrobe-budget/internal/domain"
	"wardrobe-budget/internal/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type allocateFlags struct {
	total   string
	weights []string
}

func NewAllocateCmd(opts *RootOptions) *cobra.Command {
	flags := &allocateFlags{}

	cmd := &cobra.Command{
		Use:         "allocate",
		Short:       "Preview how a total splits across category weights",
		Annotations: map[string]string{skipDBAnnotation: "true"},
		Example:     "  wardrobe-budget allocate --total 1000 --weight Menswear=30 --weight Shoes=70",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rejectPositionalArgs("allocate", args); err != nil {
				return printError(cmd, opts, err)
			}
			if !cmd.Flags().Changed("total") {
				return printError(cmd, opts, invalidArgument("total is required", map[string]any{"field": "total"}))
			}

			totalCents, err := domain.ParseAmountToCents(flags.total)
			if err != nil {
				return printError(cmd, opts, domain.NewValidationError("total", err))
			}

			weights, err := parseWeights(flags.weights)
			if err != nil {
				return printError(cmd, opts, err)
			}
			result, err := service.PreviewAllocation(totalCents, weights, opts.cfg.WeightTable())
			if err != nil {
				return printError(cmd, opts, err)
			}

			return printSuccess(cmd, opts, map[string]any{"allocation": result}, nil)
		},
	}

	cmd.Flags().StringVar(&flags.total, "total", "", "Total amount in major units")
	cmd.Flags().StringArrayVar(&flags.weights, "weight", nil, "Category weight as Name=percentage (repeatable); defaults to the configured table")

	return cmd
}

func parseWeights(raw []string) ([]allocation.Weight, error) {
	weights := make([]allocation.Weight, 0, len(raw))
	for _, item := range raw {
		name, value, found := strings.Cut(item, "=")
		if !found {
			return nil, invalidArgument("weight must use Name=percentage", map[string]any{"field": "weight", "value": item})
		}
		pct, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(value), "%"))
		if err != nil {
			return nil, invalidArgument("weight percentage must be a number", map[string]any{"field": "weight", "value": item})
		}
		weights = append(weights, allocation.Weight{Name: name, Percentage: pct})
	}
	return weights, nil
}
