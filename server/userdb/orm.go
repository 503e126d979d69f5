package userdb

import (
	"time"
)

// BaseModel is our base class for a GORM model.
// The default GORM Model uses int, but we prefer int64
type BaseModel struct {
	ID int64 `gorm:"primaryKey" json:"id"`
}

// Role is a coarse user category. The set is closed; anything else carries no
// permissions at all.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleTreasurer  Role = "treasurer"
	RoleMember     Role = "member"
)

// Permission is a fine-grained capability flag gating an action or a page.
type Permission string

const (
	PermViewDashboard      Permission = "view_dashboard"
	PermManageAssociations Permission = "manage_associations"
	PermManageMembers      Permission = "manage_members"
	PermManagePayments     Permission = "manage_payments"
	PermManageEvents       Permission = "manage_events"
	PermViewReports        Permission = "view_reports"
	PermManageSettings     Permission = "manage_settings"
	PermManageUsers        Permission = "manage_users"
)

// RolePermissions is the authoritative role -> permission mapping.
// There are no per-user overrides; a user's permission set is always exactly
// the table entry for their role.
var RolePermissions = map[Role][]Permission{
	RoleSuperadmin: {
		PermViewDashboard,
		PermManageAssociations,
		PermManageMembers,
		PermManagePayments,
		PermManageEvents,
		PermViewReports,
		PermManageSettings,
		PermManageUsers,
	},
	RoleAdmin: {
		PermViewDashboard,
		PermManageAssociations,
		PermManageMembers,
		PermManagePayments,
		PermManageEvents,
		PermViewReports,
		PermManageSettings,
	},
	RoleTreasurer: {
		PermViewDashboard,
		PermManagePayments,
		PermManageMembers,
		PermViewReports,
	},
	RoleMember: {
		PermViewDashboard,
	},
}

func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// Permissions returns the full permission set for the role.
// An unrecognized role gets an empty set.
func (r Role) Permissions() []Permission {
	return RolePermissions[r]
}

// HasPermission answers "may this role do p". Unrecognized roles fail closed.
func (r Role) HasPermission(p Permission) bool {
	for _, have := range RolePermissions[r] {
		if have == p {
			return true
		}
	}
	return false
}

type User struct {
	BaseModel
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Password           string     `json:"-"` // bcrypt hash
	Role               Role       `json:"role"`
	EntityType         string     `json:"entityType"` // association type chosen at registration; "" until then
	AssociationID      *int64     `json:"associationId"`
	EmailVerified      bool       `json:"emailVerified"`
	OnboardingComplete bool       `json:"hasCompletedOnboarding"`
	PendingAccess      bool       `json:"pendingAccess"` // requested access to an existing association, not yet approved
	CreatedAt          time.Time  `json:"createdAt"`
	LastLoginAt        *time.Time `json:"lastLoginAt"`
}

func (u *User) HasPermission(p Permission) bool {
	return u.Role.HasPermission(p)
}

type Session struct {
	Key       string `gorm:"primaryKey"` // sha256 of the plaintext token, base64
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TokenPurpose distinguishes the rows of auth_token.
type TokenPurpose string

const (
	TokenVerifyEmail   TokenPurpose = "verify_email"
	TokenPasswordReset TokenPurpose = "password_reset"
)

// AuthToken is a single-use emailed token (email verification, password reset).
type AuthToken struct {
	Key       string `gorm:"primaryKey"`
	UserID    int64
	Purpose   TokenPurpose
	CreatedAt time.Time
	ExpiresAt time.Time
}
