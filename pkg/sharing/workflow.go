package sharing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/doodlesbykumbi/permiso/pkg/audit"
	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/resolver"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

// grantRetries bounds the read-modify-write retry loop on version conflicts.
const grantRetries = 3

// Workflow implements resource sharing on top of the resolver, the grant
// validator, and the stores. Every dependency is passed in; the workflow
// holds no state of its own beyond them.
type Workflow struct {
	records     store.RecordsStore
	invitations store.InvitationsStore
	resolver    PermissionsResolver
	validator   *GrantValidator
	audit       *audit.Logger
	now         func() time.Time
	newID       func() string
}

// NewWorkflow creates a sharing workflow. auditLogger may be nil to disable
// audit emission.
func NewWorkflow(records store.RecordsStore, invitations store.InvitationsStore, res PermissionsResolver, auditLogger *audit.Logger) *Workflow {
	return &Workflow{
		records:     records,
		invitations: invitations,
		resolver:    res,
		validator:   NewGrantValidator(res),
		audit:       auditLogger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// InviteRequest describes one sharing attempt. Exactly one of TargetUserID
// and Email identifies the target; an email target, or RequireAcceptance,
// produces a pending invitation instead of an immediate grant.
type InviteRequest struct {
	TenantID          string
	ResourceID        string
	TargetUserID      string
	Email             string
	Permissions       permission.Set
	ExpiresAt         *time.Time
	RequireAcceptance bool
	Message           string
	InvitedBy         string
}

// InviteOutcome is either a direct grant or a pending invitation.
type InviteOutcome struct {
	DirectGrant *model.PermissionRecord
	Invitation  *model.ResourceInvitation
}

// Invite validates the grant and either writes the resource-user record
// directly or parks the permissions in a pending invitation. A granter
// missing any requested permission gets a ForbiddenError naming all of
// them; the request is never partially honored.
func (w *Workflow) Invite(ctx context.Context, req InviteRequest) (*InviteOutcome, error) {
	ok, ungrantable, err := w.validator.CanGrant(ctx, req.InvitedBy, req.TenantID, req.Permissions, req.ResourceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		err := &ForbiddenError{GranterID: req.InvitedBy, Ungrantable: ungrantable}
		w.audit.Log(audit.ShareEvent{
			SharedBy:    req.InvitedBy,
			ResourceID:  req.ResourceID,
			Target:      req.target(),
			Permissions: req.Permissions,
			Reason:      err.Error(),
		})
		return nil, err
	}

	if !req.RequireAcceptance && req.TargetUserID != "" {
		key := model.ResourceUserScope(req.TenantID, req.ResourceID, req.TargetUserID)
		rec, err := w.grantWithRetry(ctx, key, req.Permissions, req.ExpiresAt, req.InvitedBy)
		if err != nil {
			return nil, err
		}
		w.audit.Log(audit.ShareEvent{
			SharedBy:    req.InvitedBy,
			ResourceID:  req.ResourceID,
			Target:      req.TargetUserID,
			Permissions: req.Permissions,
			Success:     true,
		})
		return &InviteOutcome{DirectGrant: rec}, nil
	}

	inv := &model.ResourceInvitation{
		ID:         w.newID(),
		TenantID:   req.TenantID,
		ResourceID: req.ResourceID,
		Email:      req.Email,
		InvitedBy:  req.InvitedBy,
		Message:    req.Message,
		InvitedAt:  w.now().UTC(),
		ExpiresAt:  req.ExpiresAt,
		Status:     model.InvitationPending,
		Version:    1,
	}
	inv.SetPermissions(req.Permissions)
	if err := w.invitations.Create(ctx, inv); err != nil {
		return nil, err
	}

	w.audit.Log(audit.InvitationEvent{
		InvitationID: inv.ID,
		ResourceID:   inv.ResourceID,
		Email:        inv.Email,
		Status:       string(inv.Status),
		ActorID:      req.InvitedBy,
	})
	return &InviteOutcome{Invitation: inv}, nil
}

func (r InviteRequest) target() string {
	if r.TargetUserID != "" {
		return r.TargetUserID
	}
	return r.Email
}

// ShareTarget identifies one recipient of a bulk share.
type ShareTarget struct {
	UserID string
	Email  string
}

// ShareRequest fans one permission set out to many targets.
type ShareRequest struct {
	TenantID          string
	ResourceID        string
	Targets           []ShareTarget
	Permissions       permission.Set
	ExpiresAt         *time.Time
	RequireAcceptance bool
	Message           string
	SharedBy          string
}

// TargetOutcome carries the independent result for one target.
type TargetOutcome struct {
	Target  ShareTarget
	Outcome *InviteOutcome
	Err     error
}

// ShareResult aggregates the per-target outcomes of a bulk share.
type ShareResult struct {
	Outcomes  []TargetOutcome
	Succeeded int
	Failed    int
}

// ShareWithMany runs Invite once per target. Outcomes are independent: a
// failed target never rolls back the others.
func (w *Workflow) ShareWithMany(ctx context.Context, req ShareRequest) (*ShareResult, error) {
	result := &ShareResult{Outcomes: make([]TargetOutcome, 0, len(req.Targets))}

	for _, target := range req.Targets {
		outcome, err := w.Invite(ctx, InviteRequest{
			TenantID:          req.TenantID,
			ResourceID:        req.ResourceID,
			TargetUserID:      target.UserID,
			Email:             target.Email,
			Permissions:       req.Permissions,
			ExpiresAt:         req.ExpiresAt,
			RequireAcceptance: req.RequireAcceptance,
			Message:           req.Message,
			InvitedBy:         req.SharedBy,
		})
		result.Outcomes = append(result.Outcomes, TargetOutcome{Target: target, Outcome: outcome, Err: err})
		if err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}
	return result, nil
}

// RemoveAccess revokes the target's entire resource-user grant. The caller
// must currently hold share or edit on the resource. Returns false when the
// target had no record to revoke.
func (w *Workflow) RemoveAccess(ctx context.Context, tenantID, resourceID, targetUserID, byUserID string) (bool, error) {
	req := resolver.Request{UserID: byUserID, TenantID: tenantID, ResourceID: resourceID}
	canShare, err := w.resolver.HasPermission(ctx, req, permission.KindShare)
	if err != nil {
		return false, err
	}
	if !canShare {
		canEdit, err := w.resolver.HasPermission(ctx, req, permission.KindEdit)
		if err != nil {
			return false, err
		}
		if !canEdit {
			return false, ErrNotPermitted
		}
	}

	key := model.ResourceUserScope(tenantID, resourceID, targetUserID)
	if err := w.records.Revoke(ctx, key, permission.All()); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	w.audit.Log(audit.RevokeEvent{
		RevokedBy:   byUserID,
		Scope:       key.Describe(),
		Permissions: permission.All(),
	})
	return true, nil
}

// grantWithRetry re-reads and retries a bounded number of times when the
// grant loses a version race.
func (w *Workflow) grantWithRetry(ctx context.Context, key model.ScopeKey, perms permission.Set, expiresAt *time.Time, grantedBy string) (*model.PermissionRecord, error) {
	var rec *model.PermissionRecord
	var err error
	for attempt := 0; attempt < grantRetries; attempt++ {
		rec, err = w.records.Upsert(ctx, key, perms, expiresAt, grantedBy)
		if !errors.Is(err, store.ErrConcurrentModification) {
			break
		}
	}
	return rec, err
}
