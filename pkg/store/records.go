package store

import (
	"context"
	"time"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

// ScopePattern selects permission records by scope. A nil field matches any
// value; a pointer to the empty string matches records where the column is
// unset (for example the global default's tenant).
type ScopePattern struct {
	Level       *model.ScopeLevel
	TenantID    *string
	UserID      *string
	ContentType *string
	ResourceID  *string
}

// ExactScope builds a pattern matching exactly one scope key.
func ExactScope(key model.ScopeKey) ScopePattern {
	return ScopePattern{
		Level:       &key.Level,
		TenantID:    &key.TenantID,
		UserID:      &key.UserID,
		ContentType: &key.ContentType,
		ResourceID:  &key.ResourceID,
	}
}

// ResourceScopes builds a pattern matching every record on one resource.
func ResourceScopes(tenantID, resourceID string) ScopePattern {
	return ScopePattern{TenantID: &tenantID, ResourceID: &resourceID}
}

// UserScopes builds a pattern matching every user-specific record of one
// user within a tenant.
func UserScopes(tenantID, userID string) ScopePattern {
	return ScopePattern{TenantID: &tenantID, UserID: &userID}
}

// RecordsStore abstracts permission record storage. These operations are the
// only mutation path for records; all writes use optimistic concurrency on
// the version column and surface ErrConcurrentModification on a lost race.
type RecordsStore interface {
	// Upsert adds permissions at the scope key. Grants are additive: an
	// existing live record keeps its old permissions and gains the new ones
	// (union). A soft-deleted record at the key is revived carrying only the
	// new permissions. An empty set fails with ErrEmptyPermissions.
	// expiresAt, when non-nil, replaces the record's expiry.
	Upsert(ctx context.Context, key model.ScopeKey, perms permission.Set, expiresAt *time.Time, grantedBy string) (*model.PermissionRecord, error)

	// Deny adds kinds to the record's explicit-denial set, creating the
	// record if needed. An empty set fails with ErrEmptyPermissions.
	Deny(ctx context.Context, key model.ScopeKey, perms permission.Set, grantedBy string) (*model.PermissionRecord, error)

	// Revoke clears the given kinds from the record's granted set (AND-NOT).
	// A record left with no permissions stays as an empty live row so its
	// expiry metadata survives. Returns ErrRecordNotFound when no live
	// record exists at the key.
	Revoke(ctx context.Context, key model.ScopeKey, perms permission.Set) error

	// AllowAgain clears the given kinds from the record's explicit-denial
	// set. Returns ErrRecordNotFound when no live record exists at the key.
	AllowAgain(ctx context.Context, key model.ScopeKey, perms permission.Set) error

	// SoftDelete marks the record at the key deleted. Returns false when no
	// live record exists.
	SoftDelete(ctx context.Context, key model.ScopeKey) (bool, error)

	// Restore clears the soft-delete marker. Returns false (and no error)
	// when the record exists but is not soft-deleted; callers routinely
	// probe state. Returns ErrRecordNotFound when no record exists at all.
	Restore(ctx context.Context, key model.ScopeKey) (bool, error)

	// FindValid fetches, in a single batched read, the valid records at the
	// given scope keys. Keys without a valid record are simply absent from
	// the result.
	FindValid(ctx context.Context, keys []model.ScopeKey) ([]model.PermissionRecord, error)

	// ListValid returns all valid records matching the pattern.
	ListValid(ctx context.Context, pattern ScopePattern) ([]model.PermissionRecord, error)
}
