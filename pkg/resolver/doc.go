// Package resolver implements the layered permission decision algorithm.
//
// A decision walks the applicable scope layers from global default down to
// the resource-user record. Grants are additive across layers (the union of
// every valid layer's permissions), while an explicit denial at any layer
// vetoes the kind outright, regardless of grants elsewhere. Expired and
// soft-deleted records never participate.
//
// The three entry points answer different questions:
//
//   - HasPermission: the sole decision entry point for access control
//   - EffectivePermissions: the full resolved set, used by the
//     privilege-escalation guard in sharing
//   - Explain: the per-layer audit trail, for tooling only
//
// Storage failures surface as ErrResolutionFailed so an authorization
// boundary can fail closed without mistaking an outage for "no grant".
package resolver
