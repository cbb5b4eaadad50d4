package audit

import (
	"fmt"

	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

// CheckEvent records one access decision.
type CheckEvent struct {
	UserID     string
	TenantID   string
	ResourceID string
	Kind       permission.Kind
	Allowed    bool
	Source     string
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	verdict := "denied"
	if e.Allowed {
		verdict = "granted"
	}
	msg := fmt.Sprintf("%s was %s %q in tenant %s", e.UserID, verdict, e.Kind, e.TenantID)
	if e.ResourceID != "" {
		msg += " on resource " + e.ResourceID
	}
	return msg
}

func (e CheckEvent) Severity() Severity {
	if e.Allowed {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e CheckEvent) Facility() int {
	return FacilityAuth
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"user":     e.UserID,
			"tenant":   e.TenantID,
			"resource": e.ResourceID,
		},
		SDIDAction: {
			"operation": "check",
			"kind":      e.Kind.String(),
			"result":    boolWord(e.Allowed, "granted", "denied"),
			"source":    e.Source,
		},
	}
}

// GrantEvent records permissions being granted or denied at a scope.
type GrantEvent struct {
	GrantedBy   string
	Scope       string
	Permissions permission.Set
	Denial      bool
}

func (e GrantEvent) MessageID() string {
	if e.Denial {
		return "deny"
	}
	return "grant"
}

func (e GrantEvent) Message() string {
	if e.Denial {
		return fmt.Sprintf("%s explicitly denied [%s] at %s", e.GrantedBy, e.Permissions, e.Scope)
	}
	return fmt.Sprintf("%s granted [%s] at %s", e.GrantedBy, e.Permissions, e.Scope)
}

func (e GrantEvent) Severity() Severity {
	return SeverityNotice
}

func (e GrantEvent) Facility() int {
	return FacilityAuthPriv
}

func (e GrantEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"granted_by": e.GrantedBy,
		},
		SDIDAction: {
			"operation":   e.MessageID(),
			"scope":       e.Scope,
			"permissions": e.Permissions.String(),
		},
	}
}

// RevokeEvent records permissions being removed from a scope.
type RevokeEvent struct {
	RevokedBy   string
	Scope       string
	Permissions permission.Set
}

func (e RevokeEvent) MessageID() string {
	return "revoke"
}

func (e RevokeEvent) Message() string {
	return fmt.Sprintf("%s revoked [%s] at %s", e.RevokedBy, e.Permissions, e.Scope)
}

func (e RevokeEvent) Severity() Severity {
	return SeverityNotice
}

func (e RevokeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RevokeEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDSubject: {
			"revoked_by": e.RevokedBy,
		},
		SDIDAction: {
			"operation":   "revoke",
			"scope":       e.Scope,
			"permissions": e.Permissions.String(),
		},
	}
}

// ShareEvent records a sharing attempt against one target.
type ShareEvent struct {
	SharedBy    string
	ResourceID  string
	Target      string
	Permissions permission.Set
	Success     bool
	Reason      string
}

func (e ShareEvent) MessageID() string {
	return "share"
}

func (e ShareEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s shared resource %s with %s [%s]", e.SharedBy, e.ResourceID, e.Target, e.Permissions)
	}
	msg := fmt.Sprintf("%s failed to share resource %s with %s", e.SharedBy, e.ResourceID, e.Target)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e ShareEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ShareEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ShareEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDShare: {
			"shared_by":   e.SharedBy,
			"resource":    e.ResourceID,
			"target":      e.Target,
			"permissions": e.Permissions.String(),
			"result":      boolWord(e.Success, "ok", "failed"),
		},
	}
}

// InvitationEvent records an invitation lifecycle transition.
type InvitationEvent struct {
	InvitationID string
	ResourceID   string
	Email        string
	Status       string
	ActorID      string
}

func (e InvitationEvent) MessageID() string {
	return "invitation"
}

func (e InvitationEvent) Message() string {
	return fmt.Sprintf("invitation %s for %s on resource %s is now %s", e.InvitationID, e.Email, e.ResourceID, e.Status)
}

func (e InvitationEvent) Severity() Severity {
	return SeverityInfo
}

func (e InvitationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e InvitationEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDShare: {
			"invitation": e.InvitationID,
			"resource":   e.ResourceID,
			"email":      e.Email,
			"status":     e.Status,
			"actor":      e.ActorID,
		},
	}
}

func boolWord(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
