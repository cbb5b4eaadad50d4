package benchmark

import (
	"context"
	"testing"
	"time"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/resolver"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

// fixedRecords serves a pre-built record snapshot so the benchmarks measure
// resolution itself, not storage.
type fixedRecords struct {
	store.RecordsStore

	recs []model.PermissionRecord
}

func (f *fixedRecords) FindValid(_ context.Context, keys []model.ScopeKey) ([]model.PermissionRecord, error) {
	now := time.Now()
	var out []model.PermissionRecord
	for i := range f.recs {
		if !f.recs[i].ValidAt(now) {
			continue
		}
		for _, key := range keys {
			if f.recs[i].ScopeKey() == key {
				out = append(out, f.recs[i])
				break
			}
		}
	}
	return out, nil
}

func fullHierarchy() *fixedRecords {
	keys := []model.ScopeKey{
		model.GlobalDefaultScope(),
		model.TenantDefaultScope("acme"),
		model.TenantUserScope("acme", "alice"),
		model.ContentTypeDefaultScope("acme", "report"),
		model.ContentTypeUserScope("acme", "report", "alice"),
		model.ResourceDefaultScope("acme", "doc-1"),
		model.ResourceUserScope("acme", "doc-1", "alice"),
	}

	recs := make([]model.PermissionRecord, 0, len(keys))
	for i, key := range keys {
		rec := model.PermissionRecord{
			Level:       key.Level,
			TenantID:    key.TenantID,
			UserID:      key.UserID,
			ContentType: key.ContentType,
			ResourceID:  key.ResourceID,
			Version:     1,
		}
		rec.SetPermissions(permission.NewSet(permission.Kind(i % int(permission.KindManageMembers))))
		recs = append(recs, rec)
	}
	return &fixedRecords{recs: recs}
}

func BenchmarkHasPermission(b *testing.B) {
	res := resolver.NewResolver(fullHierarchy())
	req := resolver.Request{
		UserID:      "alice",
		TenantID:    "acme",
		ContentType: "report",
		ResourceID:  "doc-1",
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = res.HasPermission(ctx, req, permission.KindEdit)
	}
}

func BenchmarkEffectivePermissions(b *testing.B) {
	res := resolver.NewResolver(fullHierarchy())
	req := resolver.Request{
		UserID:      "alice",
		TenantID:    "acme",
		ContentType: "report",
		ResourceID:  "doc-1",
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = res.EffectivePermissions(ctx, req)
	}
}

func BenchmarkSetUnion(b *testing.B) {
	a := permission.NewSet(permission.KindRead, permission.KindComment, permission.KindExport)
	c := permission.NewSet(permission.KindEdit, permission.KindShare, permission.KindManageMembers)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = a.Union(c).Subtract(a).ContainsAll(c)
	}
}
