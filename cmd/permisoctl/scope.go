package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

// addScopeFlags registers the flags that identify a scope key.
func addScopeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("tenant", "t", "", "Tenant id")
	cmd.Flags().StringP("user", "u", "", "User id")
	cmd.Flags().StringP("content-type", "c", "", "Content type")
	cmd.Flags().StringP("resource", "r", "", "Resource id")
}

// scopeFromFlags maps the provided flags onto the single scope level they
// identify. The combination determines the level: nothing is the global
// default, tenant alone is the tenant default, adding a user makes it a
// user-specific scope, and so on.
func scopeFromFlags(cmd *cobra.Command) (model.ScopeKey, error) {
	tenant, _ := cmd.Flags().GetString("tenant")
	user, _ := cmd.Flags().GetString("user")
	contentType, _ := cmd.Flags().GetString("content-type")
	resource, _ := cmd.Flags().GetString("resource")

	if contentType != "" && resource != "" {
		return model.ScopeKey{}, fmt.Errorf("--content-type and --resource are mutually exclusive")
	}
	if tenant == "" && (user != "" || contentType != "" || resource != "") {
		return model.ScopeKey{}, fmt.Errorf("--tenant is required with --user, --content-type, or --resource")
	}

	switch {
	case tenant == "":
		return model.GlobalDefaultScope(), nil
	case resource != "" && user != "":
		return model.ResourceUserScope(tenant, resource, user), nil
	case resource != "":
		return model.ResourceDefaultScope(tenant, resource), nil
	case contentType != "" && user != "":
		return model.ContentTypeUserScope(tenant, contentType, user), nil
	case contentType != "":
		return model.ContentTypeDefaultScope(tenant, contentType), nil
	case user != "":
		return model.TenantUserScope(tenant, user), nil
	default:
		return model.TenantDefaultScope(tenant), nil
	}
}

// parsePermissions parses a comma-separated permission list argument.
func parsePermissions(arg string) (permission.Set, error) {
	names := strings.Split(arg, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return permission.ParseSet(names)
}
