package model

import "time"

// Role is the access level of a user account.
type Role string

const (
	// RoleUser is a regular account.
	RoleUser Role = "user"
	// RoleSuperadmin may manage other accounts.
	RoleSuperadmin Role = "superadmin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSuperadmin
}

// User is an account as returned by the backend.
type User struct {
	CreatedAt *time.Time `json:"created_at,omitempty"`
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      Role       `json:"role"`
}

// IsSuperadmin reports whether the user may open the admin page.
func (u *User) IsSuperadmin() bool {
	return u != nil && u.Role == RoleSuperadmin
}
