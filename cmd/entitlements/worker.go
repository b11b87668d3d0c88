package main

import (
	"github.com/spf13/cobra"
)

func newWorkerCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the background worker until interrupted",
		Long: `Run the queue worker. It applies subscription changes queued by the
webhook command and sends delayed onboarding emails. The worker stops on
SIGINT or SIGTERM after in-flight tasks finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := newApp(ctx, root.log)
			if err != nil {
				return err
			}
			defer cleanup()

			w, err := a.newWorker()
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}
}
