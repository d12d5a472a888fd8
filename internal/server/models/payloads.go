package models

// Request and response bodies of the HTTP API that are not stored as is.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type NewAdmin struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RoleUpdate struct {
	Role string `json:"role"`
}

type OTPVerification struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type PasswordReset struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EventInput struct {
	EventName string  `json:"eventName"`
	Image     string  `json:"image,omitempty"`
	EntryFee  float64 `json:"entryFee"`
	PrizePool float64 `json:"prizePool"`
	EndDate   string  `json:"endDate"`
	EndTime   string  `json:"endTime,omitempty"`
	Rules     string  `json:"rules,omitempty"`
}

type Participant struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	UserName string `json:"userName"`
	Image    string `json:"image,omitempty"`
}

type ParticipantStats struct {
	TotalPosts int `json:"totalPosts"`
	TotalLikes int `json:"totalLikes"`
}

type LeaderboardEntry struct {
	Participant Participant      `json:"participant"`
	Stats       ParticipantStats `json:"stats"`
}

type Leaderboard struct {
	Event       Event              `json:"event"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type PostInput struct {
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
	EventID     string `json:"eventId,omitempty"`
}

type Reporter struct {
	ID       string `json:"_id"`
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// ReportView is a report joined with its post and reporter.
type ReportView struct {
	Report
	Post     Post     `json:"post"`
	Reporter Reporter `json:"reporter"`
}

type ReportDecision struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type Registration struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type UserUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	UserName  string `json:"userName,omitempty"`
	Email     string `json:"email,omitempty"`
}

type BanRequest struct {
	BanStatus string `json:"banStatus"`
	Reason    string `json:"reason"`
}

// TransactionView is a transaction with its user attached.
type TransactionView struct {
	Transaction
	User *User `json:"user,omitempty"`
}
