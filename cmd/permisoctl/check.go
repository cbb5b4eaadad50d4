package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/permiso/pkg/audit"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/resolver"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <permission>",
	Short: "Check whether a user holds a permission",
	Long: `Check whether a user holds a permission.

Resolves the permission across every applicable layer of the hierarchy.
Exits 0 when the permission is granted and 2 when it is not.

With no permission argument, prints the user's full effective set.

Example:
  permisoctl check --tenant acme --resource doc-1 --user alice edit
  permisoctl check --tenant acme --user alice`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		allowed, err := runCheck(cmd, args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to check: %v\n", err)
			os.Exit(1)
		}
		if !allowed {
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addScopeFlags(checkCmd)
	_ = checkCmd.MarkFlagRequired("tenant")
	_ = checkCmd.MarkFlagRequired("user")
}

func requestFromFlags(cmd *cobra.Command) resolver.Request {
	tenant, _ := cmd.Flags().GetString("tenant")
	user, _ := cmd.Flags().GetString("user")
	contentType, _ := cmd.Flags().GetString("content-type")
	resource, _ := cmd.Flags().GetString("resource")
	return resolver.Request{
		UserID:      user,
		TenantID:    tenant,
		ContentType: contentType,
		ResourceID:  resource,
	}
}

func runCheck(cmd *cobra.Command, args []string) (bool, error) {
	rt, err := newRuntime()
	if err != nil {
		return false, err
	}
	req := requestFromFlags(cmd)

	if len(args) == 0 {
		effective, err := rt.resolver.EffectivePermissions(cmd.Context(), req)
		if err != nil {
			return false, err
		}
		fmt.Printf("Effective permissions for %s: [%s]\n", req.UserID, effective)
		return true, nil
	}

	kind, err := permission.KindString(args[0])
	if err != nil {
		return false, err
	}

	result, err := rt.resolver.Explain(cmd.Context(), req, kind)
	if err != nil {
		return false, err
	}

	rt.audit.Log(audit.CheckEvent{
		UserID:     req.UserID,
		TenantID:   req.TenantID,
		ResourceID: req.ResourceID,
		Kind:       kind,
		Allowed:    result.Final.Allowed,
		Source:     result.Final.Source.String(),
	})

	if result.Final.Allowed {
		fmt.Printf("granted (source: %s)\n", result.Final.Source)
	} else if result.Final.ExplicitlyDenied {
		fmt.Printf("denied explicitly (source: %s)\n", result.Final.Source)
	} else {
		fmt.Println("denied (no grant)")
	}
	return result.Final.Allowed, nil
}
