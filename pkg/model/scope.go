package model

import "fmt"

// ScopeLevel identifies one layer of the permission hierarchy. The numeric
// order is the specificity order: higher values are more specific and win
// source attribution during resolution.
type ScopeLevel int

const (
	LevelGlobalDefault ScopeLevel = iota
	LevelTenantDefault
	LevelTenantUser
	LevelContentTypeDefault
	LevelContentTypeUser
	LevelResourceDefault
	LevelResourceUser
)

var levelNames = map[ScopeLevel]string{
	LevelGlobalDefault:      "global-default",
	LevelTenantDefault:      "tenant-default",
	LevelTenantUser:         "tenant-user",
	LevelContentTypeDefault: "content-type-default",
	LevelContentTypeUser:    "content-type-user",
	LevelResourceDefault:    "resource-default",
	LevelResourceUser:       "resource-user",
}

func (l ScopeLevel) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("ScopeLevel(%d)", int(l))
}

// ScopeKey is the tagged scope variant: one type covers all seven layers,
// with the Level discriminator deciding which fields participate. Unused
// fields are empty strings so the tuple can back a uniqueness constraint.
type ScopeKey struct {
	Level       ScopeLevel
	TenantID    string
	UserID      string
	ContentType string
	ResourceID  string
}

// GlobalDefaultScope keys the permissions every principal starts from.
func GlobalDefaultScope() ScopeKey {
	return ScopeKey{Level: LevelGlobalDefault}
}

// TenantDefaultScope keys the tenant-wide defaults.
func TenantDefaultScope(tenantID string) ScopeKey {
	return ScopeKey{Level: LevelTenantDefault, TenantID: tenantID}
}

// TenantUserScope keys one user's grants within a tenant.
func TenantUserScope(tenantID, userID string) ScopeKey {
	return ScopeKey{Level: LevelTenantUser, TenantID: tenantID, UserID: userID}
}

// ContentTypeDefaultScope keys tenant-wide grants for one content type.
func ContentTypeDefaultScope(tenantID, contentType string) ScopeKey {
	return ScopeKey{Level: LevelContentTypeDefault, TenantID: tenantID, ContentType: contentType}
}

// ContentTypeUserScope keys one user's grants for one content type.
func ContentTypeUserScope(tenantID, contentType, userID string) ScopeKey {
	return ScopeKey{
		Level:       LevelContentTypeUser,
		TenantID:    tenantID,
		ContentType: contentType,
		UserID:      userID,
	}
}

// ResourceDefaultScope keys grants every tenant user holds on one resource.
func ResourceDefaultScope(tenantID, resourceID string) ScopeKey {
	return ScopeKey{Level: LevelResourceDefault, TenantID: tenantID, ResourceID: resourceID}
}

// ResourceUserScope keys one user's grants on one resource.
func ResourceUserScope(tenantID, resourceID, userID string) ScopeKey {
	return ScopeKey{
		Level:      LevelResourceUser,
		TenantID:   tenantID,
		ResourceID: resourceID,
		UserID:     userID,
	}
}

// Describe renders the key for explain output and audit messages.
func (k ScopeKey) Describe() string {
	switch k.Level {
	case LevelGlobalDefault:
		return "global default"
	case LevelTenantDefault:
		return fmt.Sprintf("tenant %s default", k.TenantID)
	case LevelTenantUser:
		return fmt.Sprintf("user %s in tenant %s", k.UserID, k.TenantID)
	case LevelContentTypeDefault:
		return fmt.Sprintf("content type %s default in tenant %s", k.ContentType, k.TenantID)
	case LevelContentTypeUser:
		return fmt.Sprintf("user %s on content type %s in tenant %s", k.UserID, k.ContentType, k.TenantID)
	case LevelResourceDefault:
		return fmt.Sprintf("resource %s default in tenant %s", k.ResourceID, k.TenantID)
	case LevelResourceUser:
		return fmt.Sprintf("user %s on resource %s in tenant %s", k.UserID, k.ResourceID, k.TenantID)
	default:
		return fmt.Sprintf("unknown scope %d", int(k.Level))
	}
}
