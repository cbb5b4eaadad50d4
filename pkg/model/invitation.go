package model

import (
	"time"

	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

// InvitationStatus is the state of a ResourceInvitation. Pending is the only
// non-terminal state; once an invitation leaves it, it never comes back.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
	InvitationExpired  InvitationStatus = "expired"
	InvitationRevoked  InvitationStatus = "revoked"
)

// Terminal reports whether the status admits no further transitions.
func (s InvitationStatus) Terminal() bool {
	return s != InvitationPending
}

// ResourceInvitation is a pending offer of resource permissions to an email
// address. Permission records are only written when the invitation is
// accepted.
type ResourceInvitation struct {
	ID         string `gorm:"column:id;primaryKey"`
	TenantID   string `gorm:"column:tenant_id;not null"`
	ResourceID string `gorm:"column:resource_id;not null;index:idx_resource_invitations_target"`
	Email      string `gorm:"column:email;not null;index:idx_resource_invitations_target"`

	PermissionsLow  int64 `gorm:"column:permissions_low;not null"`
	PermissionsHigh int64 `gorm:"column:permissions_high;not null"`

	InvitedBy   string           `gorm:"column:invited_by;not null"`
	Message     string           `gorm:"column:message"`
	InvitedAt   time.Time        `gorm:"column:invited_at;not null"`
	ExpiresAt   *time.Time       `gorm:"column:expires_at"`
	Status      InvitationStatus `gorm:"column:status;not null"`
	RespondedAt *time.Time       `gorm:"column:responded_at"`
	Version     int64            `gorm:"column:version;not null;default:1"`
}

func (ResourceInvitation) TableName() string {
	return "resource_invitations"
}

// Permissions returns the offered set.
func (i *ResourceInvitation) Permissions() permission.Set {
	return permission.FromWords(uint64(i.PermissionsLow), uint64(i.PermissionsHigh))
}

// SetPermissions stores the offered set.
func (i *ResourceInvitation) SetPermissions(s permission.Set) {
	low, high := s.Words()
	i.PermissionsLow, i.PermissionsHigh = int64(low), int64(high)
}

// ExpiredBy reports whether a still-pending invitation has passed its expiry.
func (i *ResourceInvitation) ExpiredBy(t time.Time) bool {
	return i.Status == InvitationPending && i.ExpiresAt != nil && !i.ExpiresAt.After(t)
}
