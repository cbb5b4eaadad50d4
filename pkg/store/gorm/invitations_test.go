package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

func newInvitation(resourceID, email string, expiresAt *time.Time) *model.ResourceInvitation {
	inv := &model.ResourceInvitation{
		ID:         uuid.NewString(),
		TenantID:   "t1",
		ResourceID: resourceID,
		Email:      email,
		InvitedBy:  "u0",
		InvitedAt:  time.Now().UTC(),
		ExpiresAt:  expiresAt,
		Status:     model.InvitationPending,
		Version:    1,
	}
	inv.SetPermissions(permission.NewSet(permission.KindRead, permission.KindComment))
	return inv
}

func TestInvitationCreateAndGet(t *testing.T) {
	s := NewInvitationsStore(newTestDB(t))
	ctx := context.Background()

	inv := newInvitation("doc-1", "alice@example.com", nil)
	require.NoError(t, s.Create(ctx, inv))

	got, err := s.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.Email, got.Email)
	assert.Equal(t, permission.NewSet(permission.KindRead, permission.KindComment), got.Permissions())

	_, err = s.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrInvitationNotFound)
}

func TestInvitationFindPending(t *testing.T) {
	s := NewInvitationsStore(newTestDB(t))
	ctx := context.Background()

	inv := newInvitation("doc-1", "alice@example.com", nil)
	require.NoError(t, s.Create(ctx, inv))

	got, err := s.FindPending(ctx, "doc-1", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, got.ID)

	_, err = s.FindPending(ctx, "doc-1", "bob@example.com")
	assert.ErrorIs(t, err, store.ErrInvitationNotFound)

	// Accepted invitations are no longer pending.
	require.NoError(t, s.Transition(ctx, inv.ID, model.InvitationPending, model.InvitationAccepted, time.Now()))
	_, err = s.FindPending(ctx, "doc-1", "alice@example.com")
	assert.ErrorIs(t, err, store.ErrInvitationNotFound)
}

func TestInvitationTransitionGuards(t *testing.T) {
	s := NewInvitationsStore(newTestDB(t))
	ctx := context.Background()

	inv := newInvitation("doc-2", "carol@example.com", nil)
	require.NoError(t, s.Create(ctx, inv))

	require.NoError(t, s.Transition(ctx, inv.ID, model.InvitationPending, model.InvitationDeclined, time.Now()))

	// Terminal states admit no further transitions.
	err := s.Transition(ctx, inv.ID, model.InvitationDeclined, model.InvitationAccepted, time.Now())
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
	err = s.Transition(ctx, inv.ID, model.InvitationPending, model.InvitationAccepted, time.Now())
	assert.ErrorIs(t, err, store.ErrInvalidTransition)

	err = s.Transition(ctx, uuid.NewString(), model.InvitationPending, model.InvitationAccepted, time.Now())
	assert.ErrorIs(t, err, store.ErrInvitationNotFound)
}

func TestInvitationExpireStale(t *testing.T) {
	s := NewInvitationsStore(newTestDB(t))
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	stale := newInvitation("doc-3", "old@example.com", &past)
	fresh := newInvitation("doc-3", "new@example.com", &future)
	open := newInvitation("doc-3", "forever@example.com", nil)
	require.NoError(t, s.Create(ctx, stale))
	require.NoError(t, s.Create(ctx, fresh))
	require.NoError(t, s.Create(ctx, open))

	n, err := s.ExpireStale(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := s.Get(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationExpired, got.Status)

	got, err = s.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationPending, got.Status)
}

func TestInvitationListForResource(t *testing.T) {
	s := NewInvitationsStore(newTestDB(t))
	ctx := context.Background()

	a := newInvitation("doc-4", "a@example.com", nil)
	a.InvitedAt = time.Now().Add(-time.Minute).UTC()
	b := newInvitation("doc-4", "b@example.com", nil)
	other := newInvitation("doc-5", "c@example.com", nil)
	require.NoError(t, s.Create(ctx, a))
	require.NoError(t, s.Create(ctx, b))
	require.NoError(t, s.Create(ctx, other))

	invs, err := s.ListForResource(ctx, "doc-4")
	require.NoError(t, err)
	require.Len(t, invs, 2)
	assert.Equal(t, "b@example.com", invs[0].Email, "newest first")
}
