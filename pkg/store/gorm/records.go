package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

// Ensure RecordsStore implements store.RecordsStore
var _ store.RecordsStore = (*RecordsStore)(nil)

// RecordsStore implements store.RecordsStore using GORM
type RecordsStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRecordsStore creates a new RecordsStore
func NewRecordsStore(db *gorm.DB) *RecordsStore {
	return &RecordsStore{db: db, now: time.Now}
}

func scopeWhere(key model.ScopeKey) map[string]interface{} {
	return map[string]interface{}{
		"level":        key.Level,
		"tenant_id":    key.TenantID,
		"user_id":      key.UserID,
		"content_type": key.ContentType,
		"resource_id":  key.ResourceID,
	}
}

const validWhere = "deleted_at IS NULL AND (expires_at IS NULL OR expires_at > ?)"

func (s *RecordsStore) findLive(ctx context.Context, key model.ScopeKey) (*model.PermissionRecord, error) {
	var rec model.PermissionRecord
	tx := s.db.WithContext(ctx).
		Where(scopeWhere(key)).
		Where("deleted_at IS NULL").
		First(&rec)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rec, nil
}

// save writes every mutable column guarded by the version the record was
// read at. Zero rows affected means the row moved underneath us.
func (s *RecordsStore) save(ctx context.Context, rec *model.PermissionRecord) error {
	tx := s.db.WithContext(ctx).
		Model(&model.PermissionRecord{}).
		Where("id = ? AND version = ?", rec.ID, rec.Version).
		Updates(map[string]interface{}{
			"permissions_low":  rec.PermissionsLow,
			"permissions_high": rec.PermissionsHigh,
			"denied_low":       rec.DeniedLow,
			"denied_high":      rec.DeniedHigh,
			"expires_at":       rec.ExpiresAt,
			"deleted_at":       rec.DeletedAt,
			"granted_by":       rec.GrantedBy,
			"updated_at":       s.now(),
			"version":          rec.Version + 1,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrConcurrentModification
	}
	rec.Version++
	return nil
}

// Upsert adds permissions at the scope key, creating, extending, or reviving
// the record as needed.
func (s *RecordsStore) Upsert(ctx context.Context, key model.ScopeKey, perms permission.Set, expiresAt *time.Time, grantedBy string) (*model.PermissionRecord, error) {
	if perms.IsEmpty() {
		return nil, store.ErrEmptyPermissions
	}

	rec, err := s.findLive(ctx, key)
	switch {
	case err == nil:
		rec.SetPermissions(rec.Permissions().Union(perms))
		if expiresAt != nil {
			rec.ExpiresAt = expiresAt
		}
		if grantedBy != "" {
			rec.GrantedBy = grantedBy
		}
		if err := s.save(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		// A soft-deleted row at the key is revived rather than duplicated,
		// carrying only the fresh grant. Its old permissions were revoked by
		// the delete.
		if deleted, derr := s.findDeleted(ctx, key); derr == nil {
			deleted.SetPermissions(perms)
			deleted.SetDenied(permission.Empty)
			deleted.ExpiresAt = expiresAt
			deleted.DeletedAt = nil
			deleted.GrantedBy = grantedBy
			if err := s.save(ctx, deleted); err != nil {
				return nil, err
			}
			return deleted, nil
		} else if !errors.Is(derr, gorm.ErrRecordNotFound) {
			return nil, derr
		}
		return s.create(ctx, key, perms, permission.Empty, expiresAt, grantedBy)

	default:
		return nil, err
	}
}

// Deny adds kinds to the explicit-denial set at the scope key.
func (s *RecordsStore) Deny(ctx context.Context, key model.ScopeKey, perms permission.Set, grantedBy string) (*model.PermissionRecord, error) {
	if perms.IsEmpty() {
		return nil, store.ErrEmptyPermissions
	}

	rec, err := s.findLive(ctx, key)
	switch {
	case err == nil:
		rec.SetDenied(rec.Denied().Union(perms))
		if err := s.save(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.create(ctx, key, permission.Empty, perms, nil, grantedBy)
	default:
		return nil, err
	}
}

// Revoke clears kinds from the granted set. The record stays as an empty
// live row when nothing is left, preserving its expiry metadata.
func (s *RecordsStore) Revoke(ctx context.Context, key model.ScopeKey, perms permission.Set) error {
	rec, err := s.findLive(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrRecordNotFound
		}
		return err
	}

	rec.SetPermissions(rec.Permissions().Subtract(perms))
	return s.save(ctx, rec)
}

// AllowAgain clears kinds from the explicit-denial set.
func (s *RecordsStore) AllowAgain(ctx context.Context, key model.ScopeKey, perms permission.Set) error {
	rec, err := s.findLive(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrRecordNotFound
		}
		return err
	}

	rec.SetDenied(rec.Denied().Subtract(perms))
	return s.save(ctx, rec)
}

// SoftDelete marks the live record at the key deleted.
func (s *RecordsStore) SoftDelete(ctx context.Context, key model.ScopeKey) (bool, error) {
	rec, err := s.findLive(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	now := s.now()
	rec.DeletedAt = &now
	if err := s.save(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

// Restore clears the soft-delete marker on the latest deleted record at the
// key. A live record at the key is not restorable and reports false.
func (s *RecordsStore) Restore(ctx context.Context, key model.ScopeKey) (bool, error) {
	if _, err := s.findLive(ctx, key); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	rec, err := s.findDeleted(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, store.ErrRecordNotFound
		}
		return false, err
	}

	rec.DeletedAt = nil
	if err := s.save(ctx, rec); err != nil {
		return false, err
	}
	return true, nil
}

// FindValid fetches the valid records at the given scope keys in one read.
func (s *RecordsStore) FindValid(ctx context.Context, keys []model.ScopeKey) ([]model.PermissionRecord, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	scopes := s.db.Where(scopeWhere(keys[0]))
	for _, key := range keys[1:] {
		scopes = scopes.Or(scopeWhere(key))
	}

	var recs []model.PermissionRecord
	tx := s.db.WithContext(ctx).
		Where(validWhere, s.now()).
		Where(scopes).
		Order("level, id").
		Find(&recs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return recs, nil
}

// ListValid returns all valid records matching the pattern, least specific
// first.
func (s *RecordsStore) ListValid(ctx context.Context, pattern store.ScopePattern) ([]model.PermissionRecord, error) {
	where := map[string]interface{}{}
	if pattern.Level != nil {
		where["level"] = *pattern.Level
	}
	if pattern.TenantID != nil {
		where["tenant_id"] = *pattern.TenantID
	}
	if pattern.UserID != nil {
		where["user_id"] = *pattern.UserID
	}
	if pattern.ContentType != nil {
		where["content_type"] = *pattern.ContentType
	}
	if pattern.ResourceID != nil {
		where["resource_id"] = *pattern.ResourceID
	}

	var recs []model.PermissionRecord
	tx := s.db.WithContext(ctx).
		Where(validWhere, s.now()).
		Where(where).
		Order("level, id").
		Find(&recs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return recs, nil
}

func (s *RecordsStore) findDeleted(ctx context.Context, key model.ScopeKey) (*model.PermissionRecord, error) {
	var rec model.PermissionRecord
	tx := s.db.WithContext(ctx).
		Where(scopeWhere(key)).
		Where("deleted_at IS NOT NULL").
		Order("id desc").
		First(&rec)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rec, nil
}

func (s *RecordsStore) create(ctx context.Context, key model.ScopeKey, perms, denied permission.Set, expiresAt *time.Time, grantedBy string) (*model.PermissionRecord, error) {
	rec := &model.PermissionRecord{
		Level:       key.Level,
		TenantID:    key.TenantID,
		UserID:      key.UserID,
		ContentType: key.ContentType,
		ResourceID:  key.ResourceID,
		ExpiresAt:   expiresAt,
		GrantedBy:   grantedBy,
		Version:     1,
	}
	rec.SetPermissions(perms)
	rec.SetDenied(denied)

	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		// A concurrent insert at the same scope tuple trips the partial
		// unique index; surface it as a retryable conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, store.ErrConcurrentModification
		}
		return nil, err
	}
	return rec, nil
}
