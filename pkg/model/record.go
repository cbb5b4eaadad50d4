package model

import (
	"time"

	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

// PermissionRecord is the persisted grant at one scope key. All seven scope
// levels live in one table; the level column plus the scope columns form the
// unique tuple, constrained over live rows only so a soft-deleted record does
// not block a fresh grant at the same scope.
//
// The permission words are stored as signed 64-bit columns and reinterpreted
// on the way in and out; the two-word split of permission.Set is preserved
// verbatim in the schema.
type PermissionRecord struct {
	ID          uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Level       ScopeLevel `gorm:"column:level;uniqueIndex:idx_permission_records_scope,where:deleted_at IS NULL"`
	TenantID    string     `gorm:"column:tenant_id;uniqueIndex:idx_permission_records_scope,where:deleted_at IS NULL"`
	UserID      string     `gorm:"column:user_id;uniqueIndex:idx_permission_records_scope,where:deleted_at IS NULL"`
	ContentType string     `gorm:"column:content_type;uniqueIndex:idx_permission_records_scope,where:deleted_at IS NULL"`
	ResourceID  string     `gorm:"column:resource_id;uniqueIndex:idx_permission_records_scope,where:deleted_at IS NULL"`

	PermissionsLow  int64 `gorm:"column:permissions_low;not null"`
	PermissionsHigh int64 `gorm:"column:permissions_high;not null"`
	DeniedLow       int64 `gorm:"column:denied_low;not null"`
	DeniedHigh      int64 `gorm:"column:denied_high;not null"`

	ExpiresAt *time.Time `gorm:"column:expires_at"`
	DeletedAt *time.Time `gorm:"column:deleted_at"`
	GrantedBy string     `gorm:"column:granted_by"`
	Version   int64      `gorm:"column:version;not null;default:1"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (PermissionRecord) TableName() string {
	return "permission_records"
}

// ScopeKey reconstructs the tagged scope key this record is stored under.
func (r *PermissionRecord) ScopeKey() ScopeKey {
	return ScopeKey{
		Level:       r.Level,
		TenantID:    r.TenantID,
		UserID:      r.UserID,
		ContentType: r.ContentType,
		ResourceID:  r.ResourceID,
	}
}

// Permissions returns the granted set.
func (r *PermissionRecord) Permissions() permission.Set {
	return permission.FromWords(uint64(r.PermissionsLow), uint64(r.PermissionsHigh))
}

// SetPermissions stores the granted set into the two words.
func (r *PermissionRecord) SetPermissions(s permission.Set) {
	low, high := s.Words()
	r.PermissionsLow, r.PermissionsHigh = int64(low), int64(high)
}

// Denied returns the explicitly denied set.
func (r *PermissionRecord) Denied() permission.Set {
	return permission.FromWords(uint64(r.DeniedLow), uint64(r.DeniedHigh))
}

// SetDenied stores the explicitly denied set.
func (r *PermissionRecord) SetDenied(s permission.Set) {
	low, high := s.Words()
	r.DeniedLow, r.DeniedHigh = int64(low), int64(high)
}

// ValidAt reports whether the record participates in resolution at t: not
// soft-deleted, and not expired.
func (r *PermissionRecord) ValidAt(t time.Time) bool {
	if r.DeletedAt != nil {
		return false
	}
	return r.ExpiresAt == nil || r.ExpiresAt.After(t)
}
