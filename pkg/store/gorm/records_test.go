package gorm

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PermissionRecord{}, &model.ResourceInvitation{}))
	return db
}

func TestUpsertCreatesAndUnions(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))
	ctx := context.Background()
	key := model.TenantUserScope("t1", "u1")

	rec, err := s.Upsert(ctx, key, permission.NewSet(permission.KindRead), nil, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.Version)
	assert.Equal(t, permission.NewSet(permission.KindRead), rec.Permissions())

	// Grants are additive: a second upsert unions into the same row.
	rec, err = s.Upsert(ctx, key, permission.NewSet(permission.KindComment), nil, "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Version)
	assert.Equal(t, permission.NewSet(permission.KindRead, permission.KindComment), rec.Permissions())

	recs, err := s.ListValid(ctx, store.ExactScope(key))
	require.NoError(t, err)
	require.Len(t, recs, 1, "one live record per scope key")
}

func TestUpsertEmptySetRejected(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))

	_, err := s.Upsert(context.Background(), model.GlobalDefaultScope(), permission.Empty, nil, "")
	assert.ErrorIs(t, err, store.ErrEmptyPermissions)
}

func TestRevokeLeavesEmptyLiveRow(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))
	ctx := context.Background()
	key := model.ResourceUserScope("t1", "doc-1", "u1")

	expiry := time.Now().Add(24 * time.Hour).UTC()
	_, err := s.Upsert(ctx, key, permission.NewSet(permission.KindRead, permission.KindEdit), &expiry, "admin")
	require.NoError(t, err)

	require.NoError(t, s.Revoke(ctx, key, permission.NewSet(permission.KindRead, permission.KindEdit)))

	recs, err := s.ListValid(ctx, store.ExactScope(key))
	require.NoError(t, err)
	require.Len(t, recs, 1, "empty record stays live")
	assert.True(t, recs[0].Permissions().IsEmpty())
	require.NotNil(t, recs[0].ExpiresAt, "expiry metadata survives a full revoke")

	// A later grant restores visibility without Restore.
	rec, err := s.Upsert(ctx, key, permission.NewSet(permission.KindRead), nil, "admin")
	require.NoError(t, err)
	assert.Equal(t, permission.NewSet(permission.KindRead), rec.Permissions())
}

func TestRevokeWithoutRecord(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))

	err := s.Revoke(context.Background(), model.TenantUserScope("t1", "ghost"), permission.NewSet(permission.KindRead))
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestDenyAccumulatesAndClears(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))
	ctx := context.Background()
	key := model.ResourceUserScope("t1", "doc-2", "u1")

	rec, err := s.Deny(ctx, key, permission.NewSet(permission.KindEdit), "admin")
	require.NoError(t, err)
	assert.True(t, rec.Permissions().IsEmpty(), "deny-only record grants nothing")
	assert.Equal(t, permission.NewSet(permission.KindEdit), rec.Denied())

	rec, err = s.Deny(ctx, key, permission.NewSet(permission.KindDelete), "admin")
	require.NoError(t, err)
	assert.Equal(t, permission.NewSet(permission.KindEdit, permission.KindDelete), rec.Denied())

	require.NoError(t, s.AllowAgain(ctx, key, permission.NewSet(permission.KindEdit)))
	recs, err := s.ListValid(ctx, store.ExactScope(key))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, permission.NewSet(permission.KindDelete), recs[0].Denied())
}

func TestSoftDeleteAndRestore(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))
	ctx := context.Background()
	key := model.TenantUserScope("t1", "u2")

	_, err := s.Upsert(ctx, key, permission.NewSet(permission.KindRead), nil, "admin")
	require.NoError(t, err)

	deleted, err := s.SoftDelete(ctx, key)
	require.NoError(t, err)
	assert.True(t, deleted)

	recs, err := s.ListValid(ctx, store.ExactScope(key))
	require.NoError(t, err)
	assert.Empty(t, recs, "soft-deleted records never resolve")

	// Deleting again is a probe, not an error.
	deleted, err = s.SoftDelete(ctx, key)
	require.NoError(t, err)
	assert.False(t, deleted)

	restored, err := s.Restore(ctx, key)
	require.NoError(t, err)
	assert.True(t, restored)

	recs, err = s.ListValid(ctx, store.ExactScope(key))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, permission.NewSet(permission.KindRead), recs[0].Permissions())

	// Restoring a live record reports false without an error.
	restored, err = s.Restore(ctx, key)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestRestoreWithoutRecord(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))

	_, err := s.Restore(context.Background(), model.TenantUserScope("t1", "ghost"))
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestUpsertRevivesSoftDeletedRow(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))
	ctx := context.Background()
	key := model.ResourceUserScope("t1", "doc-3", "u1")

	_, err := s.Upsert(ctx, key, permission.NewSet(permission.KindRead, permission.KindEdit), nil, "admin")
	require.NoError(t, err)
	_, err = s.Deny(ctx, key, permission.NewSet(permission.KindDelete), "admin")
	require.NoError(t, err)

	_, err = s.SoftDelete(ctx, key)
	require.NoError(t, err)

	// The revived record carries only the fresh grant; the pre-delete
	// permissions and denials are gone.
	rec, err := s.Upsert(ctx, key, permission.NewSet(permission.KindComment), nil, "owner")
	require.NoError(t, err)
	assert.Equal(t, permission.NewSet(permission.KindComment), rec.Permissions())
	assert.True(t, rec.Denied().IsEmpty())
	assert.Nil(t, rec.DeletedAt)

	recs, err := s.ListValid(ctx, store.ExactScope(key))
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestExpiredRecordsAreInvisible(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))
	ctx := context.Background()
	key := model.TenantDefaultScope("t1")

	expired := time.Now().Add(-time.Hour).UTC()
	_, err := s.Upsert(ctx, key, permission.NewSet(permission.KindRead), &expired, "admin")
	require.NoError(t, err)

	recs, err := s.FindValid(ctx, []model.ScopeKey{key})
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = s.ListValid(ctx, store.ExactScope(key))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestFindValidBatchesScopes(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))
	ctx := context.Background()

	_, err := s.Upsert(ctx, model.GlobalDefaultScope(), permission.NewSet(permission.KindRead), nil, "")
	require.NoError(t, err)
	_, err = s.Upsert(ctx, model.TenantDefaultScope("t1"), permission.NewSet(permission.KindComment), nil, "")
	require.NoError(t, err)
	_, err = s.Upsert(ctx, model.TenantUserScope("t1", "u1"), permission.NewSet(permission.KindEdit), nil, "")
	require.NoError(t, err)
	// Other tenants and users must not leak into the batch.
	_, err = s.Upsert(ctx, model.TenantUserScope("t2", "u1"), permission.NewSet(permission.KindDelete), nil, "")
	require.NoError(t, err)
	_, err = s.Upsert(ctx, model.TenantUserScope("t1", "u2"), permission.NewSet(permission.KindDelete), nil, "")
	require.NoError(t, err)

	keys := []model.ScopeKey{
		model.GlobalDefaultScope(),
		model.TenantDefaultScope("t1"),
		model.TenantUserScope("t1", "u1"),
	}
	recs, err := s.FindValid(ctx, keys)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Ordered least to most specific.
	assert.Equal(t, model.LevelGlobalDefault, recs[0].Level)
	assert.Equal(t, model.LevelTenantDefault, recs[1].Level)
	assert.Equal(t, model.LevelTenantUser, recs[2].Level)
}

func TestFindValidNoKeys(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))

	recs, err := s.FindValid(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSaveDetectsConcurrentModification(t *testing.T) {
	db := newTestDB(t)
	s := NewRecordsStore(db)
	ctx := context.Background()
	key := model.TenantUserScope("t1", "u1")

	rec, err := s.Upsert(ctx, key, permission.NewSet(permission.KindRead), nil, "admin")
	require.NoError(t, err)

	// Another writer bumps the version after our read.
	require.NoError(t, db.Model(&model.PermissionRecord{}).
		Where("id = ?", rec.ID).
		Update("version", rec.Version+1).Error)

	rec.SetPermissions(rec.Permissions().Add(permission.KindEdit))
	assert.ErrorIs(t, s.save(ctx, rec), store.ErrConcurrentModification)
}

func TestStoreHonorsContext(t *testing.T) {
	s := NewRecordsStore(newTestDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.FindValid(ctx, []model.ScopeKey{model.GlobalDefaultScope()})
	assert.Error(t, err)
}
