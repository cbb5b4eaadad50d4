// Package gorm provides GORM-backed implementations of the store interfaces.
//
// Both stores are safe for concurrent use. Record writes are guarded by the
// version column: a write that finds the row changed since it was read
// returns store.ErrConcurrentModification and the caller re-reads and
// retries. Validity filtering (soft-delete and expiry) happens in SQL so
// expired and deleted rows never leave the database.
package gorm
