package middleware

// identity.go holds the echo context keys set by JWTAuth and the accessors
// handlers and other middleware use to read them back.

import (
	"github.com/labstack/echo/v4"
)

const (
	KeyUserID    = "user_id"
	KeyRole      = "role"
	KeySessionID = "session_id"
)

// UserID returns the authenticated user's ID, or "" for anonymous requests.
func UserID(c echo.Context) string {
	return contextString(c, KeyUserID)
}

// Role returns the authenticated user's role, or "".
func Role(c echo.Context) string {
	return contextString(c, KeyRole)
}

// SessionID returns the sign-in session the access token belongs to.
func SessionID(c echo.Context) string {
	return contextString(c, KeySessionID)
}

// rateSubject identifies the caller for rate limiting: the user when signed
// in, "anon" otherwise.
func rateSubject(c echo.Context) string {
	if id := UserID(c); id != "" {
		return id
	}
	return "anon"
}

func contextString(c echo.Context, key string) string {
	s, _ := c.Get(key).(string)
	return s
}
