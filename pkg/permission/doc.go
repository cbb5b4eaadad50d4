// Package permission defines the closed universe of permission kinds and the
// 128-bit Set bitmask used everywhere a grant or denial is represented.
//
// A Set spans two explicit 64-bit words so it can be persisted as two BIGINT
// columns and combined with plain bitwise arithmetic. Bit indexes are
// assigned by the Kind enumeration and are append-only: a released index is
// never reassigned.
//
//	perms := permission.NewSet(permission.KindRead, permission.KindComment)
//	perms = perms.Union(permission.NewSet(permission.KindEdit))
//	perms.Has(permission.KindRead) // true
package permission
