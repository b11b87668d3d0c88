package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/entitlements/pkg/config"
	"github.com/dmitrymomot/entitlements/pkg/environment"
	"github.com/dmitrymomot/entitlements/pkg/logger"
)

type rootOptions struct {
	envFiles []string
	log      *slog.Logger
}

func newRootCommand(version, commit, date string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "entitlements",
		Short: "Subscription entitlements worker and maintenance commands",
		Long: `entitlements keeps user feature bundles in line with their subscriptions.

It runs the background worker that applies payment provider changes and
sends onboarding emails, and offers one-off commands to refresh a
subscription, enroll a user through group SSO and validate the plan catalog.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.envFiles) > 0 {
				if err := config.LoadEnv(opts.envFiles...); err != nil {
					return err
				}
			}
			var (
				logCfg logger.Config
				envCfg environment.Config
			)
			if err := config.Load(&logCfg); err != nil {
				return err
			}
			if err := config.Load(&envCfg); err != nil {
				return err
			}
			opts.log = logger.New(
				logger.WithEnvironment(envCfg.Env, logCfg.Service),
				logger.WithLevelName(logCfg.Level),
				logger.WithOutput(cmd.ErrOrStderr()),
			)
			logger.SetAsDefault(opts.log)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load before reading the environment")

	rootCmd.AddCommand(
		newWorkerCommand(opts),
		newRefreshCommand(opts),
		newEnrollCommand(opts),
		newPlansCommand(opts),
		newWebhookCommand(opts),
	)

	return rootCmd
}
