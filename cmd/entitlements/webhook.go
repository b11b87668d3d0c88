package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/entitlements/pkg/logger"
	"github.com/dmitrymomot/entitlements/pkg/subscription"
)

func newWebhookCommand(root *rootOptions) *cobra.Command {
	var (
		signature string
		file      string
	)

	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Verify a Paddle notification and queue the subscription refresh",
		Long: `Read a Paddle notification body from --file (or stdin), verify it against
--signature and PADDLE_WEBHOOK_SECRET, and queue a refresh of the subscription
it concerns. Notifications about anything other than subscriptions are
acknowledged and ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := newApp(ctx, root.log)
			if err != nil {
				return err
			}
			defer cleanup()

			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			payload, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			parser, err := subscription.NewWebhookParser(a.cfg.Webhook)
			if err != nil {
				return err
			}
			event, err := parser.Parse(ctx, payload, signature)
			if err != nil {
				return err
			}

			task, ok := subscription.TaskForEvent(event)
			if !ok {
				a.log.InfoContext(ctx, "ignoring notification",
					slog.String("event_id", event.ID), slog.String("event_type", event.ProviderEvent))
				return nil
			}
			queued, err := a.enqueuer.Enqueue(ctx, task)
			if err != nil {
				return err
			}
			a.log.InfoContext(ctx, "subscription refresh queued",
				logger.TaskID(queued.ID), logger.SubscriptionID(task.SubscriptionID),
				slog.String("event", string(task.Event)))
			fmt.Fprintln(cmd.OutOrStdout(), queued.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&signature, "signature", "", "value of the Paddle-Signature header")
	cmd.Flags().StringVarP(&file, "file", "f", "", "notification body (default stdin)")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}
