// Package sharing implements resource sharing: direct grants, invitations
// with acceptance and expiry, bulk shares, and access removal.
//
// Every mutation runs through the GrantValidator first, which blocks
// privilege escalation: nobody can share a permission they do not
// effectively hold. Validation failures reject the whole request with a
// ForbiddenError listing the missing permissions; a share is never quietly
// narrowed to the grantable subset.
//
// Invitations follow a one-way state machine. Pending is the only state
// that can move, to exactly one of accepted, declined, expired, or revoked.
package sharing
