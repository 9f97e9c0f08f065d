package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/service"
	"github.com/iliyamo/cinema-seat-booking/internal/utils"
)

// SessionValidator resolves a sign-in session to its user.  The auth service
// implements it; a revoked or expired session returns an error.
type SessionValidator interface {
	ValidateSession(sessionID string) (string, error)
}

// JWTAuth validates the Bearer access token of each request.  A token is
// accepted only when its signature and expiry check out and its session is
// still active.  On success the user ID, role and session ID are stored in
// the echo context (see UserID, Role, SessionID) and the user ID is attached
// to the request's context.Context for the service layer.
func JWTAuth(secret string, sessions SessionValidator) echo.MiddlewareFunc {
	return jwtAuth(secret, sessions, false)
}

// OptionalJWTAuth is JWTAuth for endpoints guests may call too.  A request
// without an Authorization header passes through anonymously; a header that
// is present must still carry a valid token.
func OptionalJWTAuth(secret string, sessions SessionValidator) echo.MiddlewareFunc {
	return jwtAuth(secret, sessions, true)
}

func jwtAuth(secret string, sessions SessionValidator, optional bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if optional && auth == "" {
				return next(c)
			}
			raw, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}

			claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(raw))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			// The token outlives a sign-out unless the session is checked.
			userID, err := sessions.ValidateSession(claims.SessionID)
			if err != nil || userID != claims.UserID {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired or revoked"})
			}

			c.Set(KeyUserID, claims.UserID)
			c.Set(KeyRole, claims.Role)
			c.Set(KeySessionID, claims.SessionID)
			req := c.Request()
			c.SetRequest(req.WithContext(service.ContextWithUserID(req.Context(), claims.UserID)))
			return next(c)
		}
	}
}
