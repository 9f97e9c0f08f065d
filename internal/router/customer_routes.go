package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/handler"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/model"
)

// RegisterCustomer registers the booking and group-pay endpoints.  Writes are
// rate limited.  Bookings and starting a group-pay session need a signed-in
// user of either role; reading a session and paying for one of its seats only
// need the session ID.  Paying accepts an optional token so signed-in payers
// are recorded under their own name.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, gp *handler.GroupPayHandler, auth, optionalAuth, limit echo.MiddlewareFunc) {
	g := e.Group("/v1", auth, middleware.RequireRole(model.RoleCustomer, model.RoleOwner))
	g.POST("/bookings", b.Book, limit)                      // Book seats
	g.GET("/my-tickets", b.MyTickets)                       // Caller's bookings, newest first
	g.POST("/bookings/:id/upgrade-seen", b.MarkUpgradeSeen) // Dismiss the upgrade banner
	g.POST("/group-pay", gp.Initiate, limit)                // Start a split payment

	e.GET("/v1/group-pay/:id", gp.Get) // Polled by every payer
	e.POST("/v1/group-pay/:id/seats/:seat/pay", gp.Pay, optionalAuth, limit)
}
