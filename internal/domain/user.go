package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a back-office operator.
type User struct {
	ID           uuid.UUID
	Username     string
	Name         string
	PasswordHash string
	Role         UserRole
	// Series is the document series stamped on transactions the user creates.
	Series      string
	Permissions []PermissionGrant
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// Permission is a "resource:action" pair, e.g. "orders:advance".
type Permission string

// PermissionAll matches every permission.
const PermissionAll Permission = "*:*"

// Well-known permissions checked on mutating endpoints.
const (
	PermUsersManage        Permission = "users:manage"
	PermCustomersWrite     Permission = "customers:write"
	PermCartCheckout       Permission = "cart:checkout"
	PermApprovalsDecide    Permission = "approvals:decide"
	PermTransactionsWrite  Permission = "transactions:write"
	PermOrdersAdvance      Permission = "orders:advance"
	PermOrdersWrite        Permission = "orders:write"
	PermInventoryWrite     Permission = "inventory:write"
	PermProductsWrite      Permission = "products:write"
	PermSettingsWrite      Permission = "settings:write"
	PermSyncRun            Permission = "sync:run"
	PermReportsRead        Permission = "reports:read"
)

func (p Permission) String() string { return string(p) }

// Parse splits the permission into resource and action.
func (p Permission) Parse() (resource, action string) {
	res, act, ok := strings.Cut(string(p), ":")
	if !ok {
		return "", ""
	}
	return res, act
}

// IsValid reports whether p has a non-empty resource and action.
func (p Permission) IsValid() bool {
	res, act := p.Parse()
	return res != "" && act != ""
}

// Matches reports whether p grants requested. "*:*" matches everything and
// "orders:*" matches every orders action.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionAll || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	return act == "*" && res == reqRes
}

// PermissionGrant is a per-user allow or deny entry.
type PermissionGrant struct {
	ID      Permission `json:"id"`
	Allowed bool       `json:"allowed"`
}

// PermissionSet is the resolved grant list of one user.
type PermissionSet struct {
	Role   UserRole
	Grants []PermissionGrant
}

// Allows evaluates requested against the set. Admin always passes. An
// explicit deny wins over any allow; otherwise role defaults and user grants
// are checked.
func (s PermissionSet) Allows(requested Permission) bool {
	if s.Role.IsAdmin() {
		return true
	}
	allowed := false
	for _, g := range s.Grants {
		if !g.ID.Matches(requested) {
			continue
		}
		if !g.Allowed {
			return false
		}
		allowed = true
	}
	if allowed {
		return true
	}
	for _, p := range RoleDefaults(s.Role) {
		if p.Matches(requested) {
			return true
		}
	}
	return false
}

var roleDefaults = map[UserRole][]Permission{
	UserRoleManager: {
		"customers:*", "cart:*", "approvals:*", "transactions:*", "orders:*",
		"inventory:*", "products:*", "settings:*", "sync:*", "reports:*",
	},
	UserRoleSales: {
		"cart:*", PermTransactionsWrite, PermCustomersWrite, PermOrdersWrite,
	},
	UserRoleWarehouse: {
		PermOrdersAdvance, "inventory:*", PermProductsWrite,
	},
}

// RoleDefaults returns the permissions a role carries without explicit grants.
func RoleDefaults(role UserRole) []Permission {
	if role.IsAdmin() {
		return []Permission{PermissionAll}
	}
	return roleDefaults[role]
}
