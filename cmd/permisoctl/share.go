package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/permiso/pkg/sharing"
)

// shareCmd represents the share command
var shareCmd = &cobra.Command{
	Use:   "share <permissions>",
	Short: "Share a resource with users or email addresses",
	Long: `Share a resource with users or email addresses.

The sharer must hold every permission being shared; otherwise the whole
request is rejected and the missing permissions are listed. User targets
get an immediate grant unless --invite is set; email targets always get a
pending invitation.

Example:
  permisoctl share --tenant acme --resource doc-1 --by alice --with bob read,comment
  permisoctl share --tenant acme --resource doc-1 --by alice --email carol@example.com read
  permisoctl share --tenant acme --resource doc-1 --by alice --with bob --invite --expires 168h read`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runShare(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to share: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(shareCmd)
	shareCmd.Flags().StringP("tenant", "t", "", "Tenant id")
	shareCmd.Flags().StringP("resource", "r", "", "Resource id")
	shareCmd.Flags().String("by", "", "Sharing user id")
	shareCmd.Flags().StringSlice("with", nil, "Target user ids")
	shareCmd.Flags().StringSlice("email", nil, "Target email addresses")
	shareCmd.Flags().Bool("invite", false, "Create pending invitations instead of direct grants")
	shareCmd.Flags().String("expires", "", "Expiry as a duration from now (e.g. 168h)")
	shareCmd.Flags().String("message", "", "Message attached to invitations")
	_ = shareCmd.MarkFlagRequired("tenant")
	_ = shareCmd.MarkFlagRequired("resource")
	_ = shareCmd.MarkFlagRequired("by")
}

func runShare(cmd *cobra.Command, permsArg string) error {
	perms, err := parsePermissions(permsArg)
	if err != nil {
		return err
	}

	tenant, _ := cmd.Flags().GetString("tenant")
	resource, _ := cmd.Flags().GetString("resource")
	by, _ := cmd.Flags().GetString("by")
	users, _ := cmd.Flags().GetStringSlice("with")
	emails, _ := cmd.Flags().GetStringSlice("email")
	invite, _ := cmd.Flags().GetBool("invite")
	message, _ := cmd.Flags().GetString("message")

	if len(users) == 0 && len(emails) == 0 {
		return fmt.Errorf("at least one --with or --email target is required")
	}

	var expiresAt *time.Time
	if expires, _ := cmd.Flags().GetString("expires"); expires != "" {
		d, err := time.ParseDuration(expires)
		if err != nil {
			return fmt.Errorf("invalid --expires value: %w", err)
		}
		t := time.Now().UTC().Add(d)
		expiresAt = &t
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}

	targets := make([]sharing.ShareTarget, 0, len(users)+len(emails))
	for _, user := range users {
		targets = append(targets, sharing.ShareTarget{UserID: user})
	}
	for _, email := range emails {
		targets = append(targets, sharing.ShareTarget{Email: email})
	}

	result, err := rt.workflow.ShareWithMany(cmd.Context(), sharing.ShareRequest{
		TenantID:          tenant,
		ResourceID:        resource,
		Targets:           targets,
		Permissions:       perms,
		ExpiresAt:         expiresAt,
		RequireAcceptance: invite,
		Message:           message,
		SharedBy:          by,
	})
	if err != nil {
		return err
	}

	for _, outcome := range result.Outcomes {
		target := outcome.Target.UserID
		if target == "" {
			target = outcome.Target.Email
		}
		switch {
		case outcome.Err != nil:
			var forbidden *sharing.ForbiddenError
			if errors.As(outcome.Err, &forbidden) {
				fmt.Printf("  %s: forbidden, %s cannot grant [%s]\n", target, by, forbidden.Ungrantable)
			} else {
				fmt.Printf("  %s: failed: %v\n", target, outcome.Err)
			}
		case outcome.Outcome.Invitation != nil:
			fmt.Printf("  %s: invitation %s (pending)\n", target, outcome.Outcome.Invitation.ID)
		default:
			fmt.Printf("  %s: granted [%s]\n", target, outcome.Outcome.DirectGrant.Permissions())
		}
	}
	fmt.Printf("Shared %s with %d target(s), %d failed\n", resource, result.Succeeded, result.Failed)

	if result.Failed > 0 {
		os.Exit(1)
	}
	return nil
}
