package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/permiso/pkg/audit"
)

// revokeCmd represents the revoke command
var revokeCmd = &cobra.Command{
	Use:   "revoke <permissions>",
	Short: "Revoke granted permissions at a scope",
	Long: `Revoke granted permissions at a scope.

Removes the given permissions from the scope's granted set. The record
itself survives, even when emptied, so its expiry metadata is kept.

Example:
  permisoctl revoke --tenant acme --resource doc-1 --user alice share
  permisoctl revoke --tenant acme --user bob read,comment`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRevoke(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to revoke: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(revokeCmd)
	addScopeFlags(revokeCmd)
	revokeCmd.Flags().String("by", "permisoctl", "Revoking principal recorded in the audit trail")
}

func runRevoke(cmd *cobra.Command, permsArg string) error {
	perms, err := parsePermissions(permsArg)
	if err != nil {
		return err
	}
	key, err := scopeFromFlags(cmd)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}

	if err := rt.records.Revoke(cmd.Context(), key, perms); err != nil {
		return err
	}

	revokedBy, _ := cmd.Flags().GetString("by")
	rt.audit.Log(audit.RevokeEvent{
		RevokedBy:   revokedBy,
		Scope:       key.Describe(),
		Permissions: perms,
	})

	fmt.Printf("Revoked [%s] at %s\n", perms, key.Describe())
	return nil
}
