package models

type User struct {
	ID             string  `json:"_id"`
	FirstName      string  `json:"firstName,omitempty"`
	LastName       string  `json:"lastName,omitempty"`
	UserName       string  `json:"userName"`
	Email          string  `json:"email,omitempty"`
	ProfilePicture string  `json:"profilePicture,omitempty"`
	Balance        float64 `json:"balance,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

// DisplayName joins first and last name, falling back to the handle.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.UserName
	}
}

// UserUpdate carries profile fields to change; empty fields are not sent.
type UserUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	UserName  string `json:"userName,omitempty"`
	Email     string `json:"email,omitempty"`
}

type Registration struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type UsernameCheck struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// BanAction is the banStatus sent to the moderation endpoint.
type BanAction string

const (
	Ban   BanAction = "ban"
	Unban BanAction = "unban"
)

type BanRequest struct {
	BanStatus BanAction `json:"banStatus"`
	Reason    string    `json:"reason"`
}
