package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/permiso/pkg/audit"
)

// grantCmd represents the grant command
var grantCmd = &cobra.Command{
	Use:   "grant <permissions>",
	Short: "Grant permissions at a scope",
	Long: `Grant permissions at a scope.

The scope flags identify a single scope level: no flags targets the global
default, --tenant alone the tenant default, --tenant with --user the
tenant-user scope, and so on. Permissions are additive; granting on top of
an existing record unions the sets.

Example:
  permisoctl grant read,comment
  permisoctl grant --tenant acme read
  permisoctl grant --tenant acme --resource doc-1 --user alice read,edit,share
  permisoctl grant --tenant acme --user bob --expires 720h read`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGrant(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to grant: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(grantCmd)
	addScopeFlags(grantCmd)
	grantCmd.Flags().String("expires", "", "Expiry as a duration from now (e.g. 720h)")
	grantCmd.Flags().String("by", "permisoctl", "Granting principal recorded on the record")
}

func runGrant(cmd *cobra.Command, permsArg string) error {
	perms, err := parsePermissions(permsArg)
	if err != nil {
		return err
	}
	key, err := scopeFromFlags(cmd)
	if err != nil {
		return err
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

	grantedBy, _ := cmd.Flags().GetString("by")
	rec, err := rt.records.Upsert(cmd.Context(), key, perms, expiresAt, grantedBy)
	if err != nil {
		return err
	}

	rt.audit.Log(audit.GrantEvent{
		GrantedBy:   grantedBy,
		Scope:       key.Describe(),
		Permissions: perms,
	})

	fmt.Printf("Granted [%s] at %s (now [%s])\n", perms, key.Describe(), rec.Permissions())
	return nil
}
