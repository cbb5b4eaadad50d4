package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// invitationListCmd represents the invitation list command
var invitationListCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "List invitations for a resource",
	Long: `List invitations for a resource, newest first.

Example:
  permisoctl invitation list doc-1`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := listInvitations(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list invitations: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	invitationCmd.AddCommand(invitationListCmd)
}

func listInvitations(cmd *cobra.Command, resourceID string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	invitations, err := rt.invitations.ListForResource(cmd.Context(), resourceID)
	if err != nil {
		return err
	}

	if len(invitations) == 0 {
		fmt.Printf("No invitations for %s\n", resourceID)
		return nil
	}

	fmt.Printf("%-36s %-30s %-10s %-20s %s\n", "ID", "EMAIL", "STATUS", "PERMISSIONS", "EXPIRES")
	for _, inv := range invitations {
		expires := "never"
		if inv.ExpiresAt != nil {
			expires = inv.ExpiresAt.UTC().Format(time.RFC3339)
		}
		fmt.Printf("%-36s %-30s %-10s %-20s %s\n", inv.ID, inv.Email, inv.Status, inv.Permissions(), expires)
	}
	return nil
}
