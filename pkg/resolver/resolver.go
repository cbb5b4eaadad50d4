package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

// ErrResolutionFailed wraps any storage or cancellation error hit while
// deciding. It is never a substitute for "no grant found": callers at an
// authorization boundary treat it as deny (fail closed), but the error is
// always reported, never masked.
var ErrResolutionFailed = errors.New("permission resolution failed")

// SourceNone is the Source reported when no layer granted or denied the
// requested kind.
const SourceNone model.ScopeLevel = -1

// Request describes whose permissions are being resolved and against what.
// ResourceID and ContentType are optional; absent values skip the
// corresponding layers.
type Request struct {
	UserID      string
	TenantID    string
	ResourceID  string
	ContentType string
}

// Resolver answers permission questions by combining all applicable layers
// of the hierarchy. It is stateless and read-only: every call is one fresh
// batched read, so concurrent calls need no coordination.
type Resolver struct {
	records store.RecordsStore
}

// NewResolver creates a Resolver reading from the given store.
func NewResolver(records store.RecordsStore) *Resolver {
	return &Resolver{records: records}
}

// scopesFor enumerates the applicable scope keys, least specific first.
// Layers the request shape cannot address are omitted.
func scopesFor(req Request) []model.ScopeKey {
	keys := []model.ScopeKey{model.GlobalDefaultScope()}
	if req.TenantID == "" {
		return keys
	}

	keys = append(keys, model.TenantDefaultScope(req.TenantID))
	if req.UserID != "" {
		keys = append(keys, model.TenantUserScope(req.TenantID, req.UserID))
	}
	if req.ContentType != "" {
		keys = append(keys, model.ContentTypeDefaultScope(req.TenantID, req.ContentType))
		if req.UserID != "" {
			keys = append(keys, model.ContentTypeUserScope(req.TenantID, req.ContentType, req.UserID))
		}
	}
	if req.ResourceID != "" {
		keys = append(keys, model.ResourceDefaultScope(req.TenantID, req.ResourceID))
		if req.UserID != "" {
			keys = append(keys, model.ResourceUserScope(req.TenantID, req.ResourceID, req.UserID))
		}
	}
	return keys
}

func (r *Resolver) fetch(ctx context.Context, req Request) ([]model.PermissionRecord, []model.ScopeKey, error) {
	keys := scopesFor(req)
	recs, err := r.records.FindValid(ctx, keys)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrResolutionFailed, err)
	}
	return recs, keys, nil
}

// HasPermission decides whether the user holds the kind for the request.
// An explicit denial at any layer outranks every grant; otherwise the kind
// must appear in the union of all valid layers.
func (r *Resolver) HasPermission(ctx context.Context, req Request, kind permission.Kind) (bool, error) {
	recs, _, err := r.fetch(ctx, req)
	if err != nil {
		return false, err
	}

	allowed, _, _ := decide(recs, kind)
	return allowed, nil
}

// EffectivePermissions returns the fully resolved set for the request: the
// union of all valid grants minus the union of all explicit denials.
func (r *Resolver) EffectivePermissions(ctx context.Context, req Request) (permission.Set, error) {
	recs, _, err := r.fetch(ctx, req)
	if err != nil {
		return permission.Empty, err
	}

	var granted, denied permission.Set
	for i := range recs {
		granted = granted.Union(recs[i].Permissions())
		denied = denied.Union(recs[i].Denied())
	}
	return granted.Subtract(denied), nil
}

// decide evaluates one kind over a fixed snapshot of valid records. The
// result is insensitive to record order: denials always win, and source
// attribution picks the most specific contributing level.
func decide(recs []model.PermissionRecord, kind permission.Kind) (allowed bool, explicitlyDenied bool, source model.ScopeLevel) {
	source = SourceNone

	for i := range recs {
		if recs[i].Denied().Has(kind) {
			explicitlyDenied = true
			if recs[i].Level > source {
				source = recs[i].Level
			}
		}
	}
	if explicitlyDenied {
		return false, true, source
	}

	for i := range recs {
		if recs[i].Permissions().Has(kind) {
			allowed = true
			if recs[i].Level > source {
				source = recs[i].Level
			}
		}
	}
	return allowed, false, source
}
