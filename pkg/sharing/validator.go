package sharing

import (
	"context"

	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/resolver"
)

// PermissionsResolver is the slice of the resolver the sharing layer needs.
type PermissionsResolver interface {
	HasPermission(ctx context.Context, req resolver.Request, kind permission.Kind) (bool, error)
	EffectivePermissions(ctx context.Context, req resolver.Request) (permission.Set, error)
}

// GrantValidator is the privilege-escalation guard: a user can never hand
// out a permission they do not effectively hold themselves at the same or a
// broader scope. It runs before every share, invite, and bulk update.
type GrantValidator struct {
	resolver PermissionsResolver
}

// NewGrantValidator creates a GrantValidator backed by the resolver.
func NewGrantValidator(r PermissionsResolver) *GrantValidator {
	return &GrantValidator{resolver: r}
}

// CanGrant reports whether granter holds every requested permission, and
// returns the ungrantable remainder when not. An empty request is trivially
// grantable. Resolution errors propagate unchanged (fail closed upstream).
func (v *GrantValidator) CanGrant(ctx context.Context, granterID, tenantID string, requested permission.Set, resourceID string) (bool, permission.Set, error) {
	if requested.IsEmpty() {
		return true, permission.Empty, nil
	}

	effective, err := v.resolver.EffectivePermissions(ctx, resolver.Request{
		UserID:     granterID,
		TenantID:   tenantID,
		ResourceID: resourceID,
	})
	if err != nil {
		return false, permission.Empty, err
	}

	ungrantable := requested.Subtract(effective)
	return ungrantable.IsEmpty(), ungrantable, nil
}
