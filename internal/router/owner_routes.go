package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/handler"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// RegisterOwner registers box-office operations.  All routes require a valid
// JWT and the OWNER role.
func RegisterOwner(e *echo.Echo, h *handler.AdminHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/v1/admin", auth, middleware.RequireRole(model.RoleOwner))
	g.POST("/upgrade-lottery", h.RunUpgradeLottery) // Run the lottery now
}
