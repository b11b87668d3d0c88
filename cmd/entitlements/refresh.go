package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <subscription-id>",
		Short: "Apply a subscription's plan features to its user now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := newApp(ctx, root.log)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := a.subscription.RefreshFeatures(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user:             %s\n", res.UserID)
			fmt.Fprintf(out, "plan:             %s (%s)\n", res.PlanCode, res.State)
			fmt.Fprintf(out, "tier:             %s\n", res.Tier)
			fmt.Fprintf(out, "professional:     %t\n", res.Professional)
			fmt.Fprintf(out, "ai assist:        %t\n", res.AiAssist)
			fmt.Fprintf(out, "features changed: %t\n", res.FeaturesChanged)
			return nil
		},
	}
}
