package sharing

import (
	"errors"
	"fmt"

	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

var (
	// ErrNotPermitted is returned when the acting user lacks the share or
	// edit permission an operation requires.
	ErrNotPermitted = errors.New("caller does not hold share or edit on the resource")

	// ErrInvitationExpired is returned when acting on an invitation whose
	// expiry has passed.
	ErrInvitationExpired = errors.New("invitation has expired")
)

// ForbiddenError rejects a grant attempt that would escalate privileges. It
// lists exactly which requested permissions the granter does not hold; the
// request is never silently narrowed to the grantable part.
type ForbiddenError struct {
	GranterID   string
	Ungrantable permission.Set
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user %s cannot grant permissions they do not hold: %s", e.GranterID, e.Ungrantable)
}
