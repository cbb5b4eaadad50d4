package sharing

import (
	"context"

	"github.com/doodlesbykumbi/permiso/pkg/audit"
	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

// Accept moves a pending invitation to accepted and writes the invited
// permissions at the accepting user's resource-user scope. Permission
// records are only written here, never at invitation time.
func (w *Workflow) Accept(ctx context.Context, invitationID, userID string) (*model.PermissionRecord, error) {
	inv, err := w.touch(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	now := w.now().UTC()
	if err := w.invitations.Transition(ctx, inv.ID, model.InvitationPending, model.InvitationAccepted, now); err != nil {
		return nil, err
	}

	key := model.ResourceUserScope(inv.TenantID, inv.ResourceID, userID)
	rec, err := w.grantWithRetry(ctx, key, inv.Permissions(), nil, inv.InvitedBy)
	if err != nil {
		return nil, err
	}

	w.audit.Log(audit.InvitationEvent{
		InvitationID: inv.ID,
		ResourceID:   inv.ResourceID,
		Email:        inv.Email,
		Status:       string(model.InvitationAccepted),
		ActorID:      userID,
	})
	return rec, nil
}

// Decline moves a pending invitation to declined.
func (w *Workflow) Decline(ctx context.Context, invitationID, userID string) error {
	return w.close(ctx, invitationID, model.InvitationDeclined, userID)
}

// RevokeInvitation withdraws a pending invitation before it is answered.
func (w *Workflow) RevokeInvitation(ctx context.Context, invitationID, byUserID string) error {
	return w.close(ctx, invitationID, model.InvitationRevoked, byUserID)
}

// ExpireStale sweeps pending invitations past their expiry into expired.
func (w *Workflow) ExpireStale(ctx context.Context) (int64, error) {
	return w.invitations.ExpireStale(ctx, w.now().UTC())
}

func (w *Workflow) close(ctx context.Context, invitationID string, to model.InvitationStatus, actorID string) error {
	inv, err := w.touch(ctx, invitationID)
	if err != nil {
		return err
	}

	if err := w.invitations.Transition(ctx, inv.ID, model.InvitationPending, to, w.now().UTC()); err != nil {
		return err
	}

	w.audit.Log(audit.InvitationEvent{
		InvitationID: inv.ID,
		ResourceID:   inv.ResourceID,
		Email:        inv.Email,
		Status:       string(to),
		ActorID:      actorID,
	})
	return nil
}

// touch loads an invitation and lazily expires it when its expiry has
// passed, so a stale invitation can never be acted on.
func (w *Workflow) touch(ctx context.Context, invitationID string) (*model.ResourceInvitation, error) {
	inv, err := w.invitations.Get(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if inv.ExpiredBy(w.now()) {
		if err := w.invitations.Transition(ctx, inv.ID, model.InvitationPending, model.InvitationExpired, w.now().UTC()); err != nil && err != store.ErrInvalidTransition {
			return nil, err
		}
		return nil, ErrInvitationExpired
	}
	return inv, nil
}
