package policy

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/store"
	storegorm "github.com/doodlesbykumbi/permiso/pkg/store/gorm"
)

func newTestStore(t *testing.T) *storegorm.RecordsStore {
	t.Helper()

	dsn := fmt.Sprintf("file:policy_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PermissionRecord{}))

	return storegorm.NewRecordsStore(db)
}

func mustFind(t *testing.T, records store.RecordsStore, key model.ScopeKey) model.PermissionRecord {
	t.Helper()
	found, err := records.FindValid(context.Background(), []model.ScopeKey{key})
	require.NoError(t, err)
	require.Len(t, found, 1, "expected a record at %s", key.Describe())
	return found[0]
}

func TestLoaderAppliesDocument(t *testing.T) {
	records := newTestStore(t)
	ctx := context.Background()

	result, err := NewLoader(records).LoadFromString(ctx, sampleDocument)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Applied)

	global := mustFind(t, records, model.GlobalDefaultScope())
	assert.Equal(t, permission.NewSet(permission.KindRead), global.Permissions())
	assert.Equal(t, "bootstrap", global.GrantedBy)

	tenant := mustFind(t, records, model.TenantDefaultScope("acme"))
	assert.Equal(t, permission.NewSet(permission.KindRead, permission.KindComment), tenant.Permissions())
	assert.Equal(t, permission.NewSet(permission.KindExport), tenant.Denied())

	report := mustFind(t, records, model.ContentTypeDefaultScope("acme", "report"))
	assert.Equal(t, permission.NewSet(permission.KindDownload), report.Permissions())

	handbook := mustFind(t, records, model.ResourceDefaultScope("acme", "handbook"))
	assert.Equal(t, permission.NewSet(permission.KindRead, permission.KindDownload), handbook.Permissions())
	assert.Equal(t, permission.NewSet(permission.KindDelete), handbook.Denied())
}

func TestLoaderIsIdempotent(t *testing.T) {
	records := newTestStore(t)
	ctx := context.Background()
	loader := NewLoader(records)

	_, err := loader.LoadFromString(ctx, sampleDocument)
	require.NoError(t, err)
	_, err = loader.LoadFromString(ctx, sampleDocument)
	require.NoError(t, err)

	tenant := mustFind(t, records, model.TenantDefaultScope("acme"))
	assert.Equal(t, permission.NewSet(permission.KindRead, permission.KindComment), tenant.Permissions())
	assert.Equal(t, permission.NewSet(permission.KindExport), tenant.Denied())
}

func TestLoaderIsAdditive(t *testing.T) {
	records := newTestStore(t)
	ctx := context.Background()
	loader := NewLoader(records)

	_, err := loader.LoadFromString(ctx, "global:\n  grant: [read]\n")
	require.NoError(t, err)
	_, err = loader.LoadFromString(ctx, "global:\n  grant: [comment]\n")
	require.NoError(t, err)

	global := mustFind(t, records, model.GlobalDefaultScope())
	assert.Equal(t, permission.NewSet(permission.KindRead, permission.KindComment), global.Permissions())
}

func TestLoaderSkipsEmptyDefaults(t *testing.T) {
	records := newTestStore(t)

	result, err := NewLoader(records).LoadFromString(context.Background(), "tenants:\n  - tenant: acme\n")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)

	found, err := records.FindValid(context.Background(), []model.ScopeKey{model.TenantDefaultScope("acme")})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := NewLoader(newTestStore(t)).LoadFile(context.Background(), "/nonexistent/policy.yml")
	assert.Error(t, err)
}
