package model

import "time"

// Roles understood by RequireRole.
const (
	RoleCustomer = "CUSTOMER"
	RoleOwner    = "OWNER"
)

// User is a signed-in identity.  Users are seeded at start-up; there is no
// registration flow.
//
// Fields:
//
//	ID           – stable identifier (e.g. user123).
//	Name         – display name.
//	Email        – unique, lower-cased login.
//	AvatarURL    – profile picture.
//	Role         – CUSTOMER or OWNER.
//	PasswordHash – bcrypt hash of the password.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AvatarURL    string `json:"avatar_url"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// Session is an authenticated sign-in.  Access tokens carry the session ID
// and are rejected once the session is signed out or expired.
//
// Fields:
//
//	ID        – random identifier embedded in the token's sid claim.
//	UserID    – owner of the session.
//	ExpiresAt – end of validity.
//	CreatedAt – sign-in time.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Active reports whether the session can still authenticate requests.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
