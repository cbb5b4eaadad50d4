package store

import (
	"context"
	"time"

	"github.com/doodlesbykumbi/permiso/pkg/model"
)

// InvitationsStore abstracts invitation storage. The state machine (pending
// is the only non-terminal state) is guarded at this layer: Transition
// refuses to move an invitation that is not in the expected state.
type InvitationsStore interface {
	// Create persists a new invitation.
	Create(ctx context.Context, inv *model.ResourceInvitation) error

	// Get returns the invitation by id, or ErrInvitationNotFound.
	Get(ctx context.Context, id string) (*model.ResourceInvitation, error)

	// FindPending returns the pending invitation for (resourceID, email),
	// or ErrInvitationNotFound.
	FindPending(ctx context.Context, resourceID, email string) (*model.ResourceInvitation, error)

	// ListForResource returns all invitations for a resource, newest first.
	ListForResource(ctx context.Context, resourceID string) ([]model.ResourceInvitation, error)

	// Transition moves the invitation from one status to another, recording
	// the response time. Returns ErrInvalidTransition when the invitation is
	// not in the expected from state (including any terminal state), and
	// ErrInvitationNotFound when the id is unknown.
	Transition(ctx context.Context, id string, from, to model.InvitationStatus, respondedAt time.Time) error

	// ExpireStale transitions every pending invitation whose expiry has
	// passed to expired, returning how many were moved.
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}
