package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/permiso/pkg/audit"
)

// denyCmd represents the deny command
var denyCmd = &cobra.Command{
	Use:   "deny <permissions>",
	Short: "Explicitly deny permissions at a scope",
	Long: `Explicitly deny permissions at a scope.

An explicit denial overrides grants from every other layer, regardless of
specificity. Use "allow" to lift a denial.

Example:
  permisoctl deny --tenant acme export
  permisoctl deny --tenant acme --resource doc-1 --user mallory read,download`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDeny(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to deny: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(denyCmd)
	addScopeFlags(denyCmd)
	denyCmd.Flags().String("by", "permisoctl", "Denying principal recorded on the record")
}

func runDeny(cmd *cobra.Command, permsArg string) error {
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

	deniedBy, _ := cmd.Flags().GetString("by")
	rec, err := rt.records.Deny(cmd.Context(), key, perms, deniedBy)
	if err != nil {
		return err
	}

	rt.audit.Log(audit.GrantEvent{
		GrantedBy:   deniedBy,
		Scope:       key.Describe(),
		Permissions: perms,
		Denial:      true,
	})

	fmt.Printf("Denied [%s] at %s (now denying [%s])\n", perms, key.Describe(), rec.Denied())
	return nil
}
