// Package model defines the database models for Permiso.
//
// This package contains GORM models that map to the permission schema, plus
// the tagged ScopeKey identifying one layer of the permission hierarchy.
//
// # Core Models
//
//   - PermissionRecord: a grant (and optional explicit denial) at one scope
//   - ResourceInvitation: a pending offer of resource permissions
//
// # Database Schema
//
// The database uses PostgreSQL with two tables:
//
//   - permission_records: one row per live scope tuple, holding the granted
//     and denied permission words, expiry, soft-delete marker, and version
//   - resource_invitations: invitation lifecycle records, indexed by
//     (resource_id, email)
package model
