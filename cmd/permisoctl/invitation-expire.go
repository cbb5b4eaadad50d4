package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// invitationExpireCmd represents the invitation expire command
var invitationExpireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Expire stale pending invitations",
	Long: `Expire stale pending invitations.

Sweeps every pending invitation whose expiry has passed into the expired
state. Intended to run periodically.

Example:
  permisoctl invitation expire`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := expireInvitations(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to expire invitations: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	invitationCmd.AddCommand(invitationExpireCmd)
}

func expireInvitations(cmd *cobra.Command) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	count, err := rt.workflow.ExpireStale(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Expired %d invitation(s)\n", count)
	return nil
}
