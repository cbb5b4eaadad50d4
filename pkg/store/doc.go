// Package store provides storage abstractions for permission records and
// resource invitations.
//
// This package defines interfaces for database operations, decoupling the
// resolver and sharing workflow from the specific database implementation
// and enabling testing with mocks. The GORM-backed implementation lives in
// the gorm subpackage.
//
// # Available Stores
//
//   - RecordsStore: permission record mutations and validity-filtered reads
//   - InvitationsStore: invitation lifecycle operations
//
// # Usage
//
//	records := storegorm.NewRecordsStore(db)
//	rec, err := records.Upsert(ctx, model.TenantUserScope("t1", "u1"), perms, nil, "u0")
//	if err != nil {
//	    if errors.Is(err, store.ErrConcurrentModification) {
//	        // Re-read and retry
//	    }
//	}
package store
