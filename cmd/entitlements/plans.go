package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/entitlements/pkg/formatters"
)

func newPlansCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Inspect the plan catalog",
	}
	cmd.AddCommand(newPlansValidateCommand(root))
	return cmd
}

func newPlansValidateCommand(root *rootOptions) *cobra.Command {
	var (
		currency string
		locale   string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the plan catalog and list its plans",
		Long: `Load the catalog named by PLANS_FILE, validate every plan and print the
plans with their price and feature tier. Exits non-zero when the catalog is
invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, matcher, err := loadCatalog(cmd.Context(), root.log)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tPRICE\tTIER\tGROUP")
			for _, p := range catalog.All() {
				tier, _ := matcher.Classify(p.Features)
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n",
					p.Code, p.Name, formatters.FormatPrice(p.Price(), currency, locale), tier, p.GroupPlan)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "USD", "currency used to display prices")
	cmd.Flags().StringVar(&locale, "locale", "en-US", "locale used to display prices")
	return cmd
}
