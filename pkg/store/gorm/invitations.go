package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

// Ensure InvitationsStore implements store.InvitationsStore
var _ store.InvitationsStore = (*InvitationsStore)(nil)

// InvitationsStore implements store.InvitationsStore using GORM
type InvitationsStore struct {
	db *gorm.DB
}

// NewInvitationsStore creates a new InvitationsStore
func NewInvitationsStore(db *gorm.DB) *InvitationsStore {
	return &InvitationsStore{db: db}
}

// Create persists a new invitation.
func (s *InvitationsStore) Create(ctx context.Context, inv *model.ResourceInvitation) error {
	return s.db.WithContext(ctx).Create(inv).Error
}

// Get returns the invitation by id.
func (s *InvitationsStore) Get(ctx context.Context, id string) (*model.ResourceInvitation, error) {
	var inv model.ResourceInvitation
	tx := s.db.WithContext(ctx).Where("id = ?", id).First(&inv)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrInvitationNotFound
		}
		return nil, tx.Error
	}
	return &inv, nil
}

// FindPending returns the pending invitation for (resourceID, email).
func (s *InvitationsStore) FindPending(ctx context.Context, resourceID, email string) (*model.ResourceInvitation, error) {
	var inv model.ResourceInvitation
	tx := s.db.WithContext(ctx).
		Where("resource_id = ? AND email = ? AND status = ?", resourceID, email, model.InvitationPending).
		Order("invited_at desc").
		First(&inv)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrInvitationNotFound
		}
		return nil, tx.Error
	}
	return &inv, nil
}

// ListForResource returns all invitations for a resource, newest first.
func (s *InvitationsStore) ListForResource(ctx context.Context, resourceID string) ([]model.ResourceInvitation, error) {
	var invs []model.ResourceInvitation
	tx := s.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("invited_at desc").
		Find(&invs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return invs, nil
}

// Transition moves the invitation between states. The status guard in the
// WHERE clause makes terminal states sticky even under concurrent updates.
func (s *InvitationsStore) Transition(ctx context.Context, id string, from, to model.InvitationStatus, respondedAt time.Time) error {
	if from.Terminal() {
		return store.ErrInvalidTransition
	}

	tx := s.db.WithContext(ctx).
		Model(&model.ResourceInvitation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":       to,
			"responded_at": respondedAt,
			"version":      gorm.Expr("version + 1"),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&model.ResourceInvitation{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return store.ErrInvitationNotFound
		}
		return store.ErrInvalidTransition
	}
	return nil
}

// ExpireStale expires every pending invitation past its expiry.
func (s *InvitationsStore) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	tx := s.db.WithContext(ctx).
		Model(&model.ResourceInvitation{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", model.InvitationPending, now).
		Updates(map[string]interface{}{
			"status":       model.InvitationExpired,
			"responded_at": now,
			"version":      gorm.Expr("version + 1"),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
