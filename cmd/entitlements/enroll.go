package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/entitlements/pkg/groupsso"
)

func newEnrollCommand(root *rootOptions) *cobra.Command {
	var req groupsso.EnrollRequest

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll a group member into the group's SSO federation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, cleanup, err := newApp(ctx, root.log)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.enroller.EnrollInSubscription(ctx, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enrolled %s in %s\n", req.UserID, groupsso.ProviderID(req.SubscriptionID))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.UserID, "user", "", "user id")
	flags.StringVar(&req.SubscriptionID, "subscription", "", "group subscription id")
	flags.StringVar(&req.ExternalUserID, "external-id", "", "user id asserted by the identity provider")
	flags.StringVar(&req.UserIDAttribute, "attribute", "", "identity provider attribute holding the user id")
	flags.StringVar(&req.AuditLog.InitiatorID, "initiator", "", "id of the user performing the enrollment")
	flags.StringVar(&req.AuditLog.IPAddress, "ip", "", "ip address of the initiator")
	for _, name := range []string{"user", "subscription", "external-id"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
