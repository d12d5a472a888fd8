package models

import "time"

const (
	RoleSuperAdmin   = "super_admin"
	RoleContentAdmin = "content_admin"
	RoleEventAdmin   = "event_admin"
	RoleUserAdmin    = "user_admin"
)

// ValidRole reports whether r is one of the known administrator roles.
func ValidRole(r string) bool {
	switch r {
	case RoleSuperAdmin, RoleContentAdmin, RoleEventAdmin, RoleUserAdmin:
		return true
	}
	return false
}

type Admin struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`

	Salt     []byte `json:"-"`
	Verifier []byte `json:"-"`
}

// OTP is a one-time password issued by the forgot-password flow.
type OTP struct {
	Email    string
	Code     string
	Expires  time.Time
	Verified bool
}
