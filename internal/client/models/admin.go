package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is an administrator permission level.
type Role string

const (
	RoleSuperAdmin   Role = "super_admin"
	RoleContentAdmin Role = "content_admin"
	RoleEventAdmin   Role = "event_admin"
	RoleUserAdmin    Role = "user_admin"
)

// Roles lists every role in display order.
var Roles = []Role{RoleSuperAdmin, RoleContentAdmin, RoleEventAdmin, RoleUserAdmin}

// ParseRole accepts a role in wire form ("event_admin") or a short form
// ("event").
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range Roles {
		if s == string(r) || s+"_admin" == string(r) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Title renders "event_admin" as "EVENT ADMIN".
func (r Role) Title() string {
	return strings.ToUpper(strings.ReplaceAll(string(r), "_", " "))
}

type Admin struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is what a successful admin login yields.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Admin        Admin
	// Profile is the administrator object exactly as the server sent it.
	Profile json.RawMessage
}

// NewAdmin is the payload for creating an administrator.
type NewAdmin struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type RoleUpdate struct {
	Role Role `json:"role"`
}

type OTPVerification struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type PasswordResetRequest struct {
	Email string `json:"email"`
}

type PasswordReset struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
