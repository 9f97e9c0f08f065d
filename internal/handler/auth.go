package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// AuthHandler serves sign-in, sign-out and the current user.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ----- DTOs -----

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges email and password for an access token.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInReq
	if err := c.Bind(&req); err != nil { // Parse JSON body
		return badRequest(c, "invalid body")
	}
	res, err := h.Auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// SignOut revokes the session of the presented token.  Further requests with
// the same token are rejected by JWTAuth.
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.Auth.SignOut(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent) // Nothing to return
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.Auth.CurrentUser(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
