package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/cinema-seat-booking/internal/handler"
)

// RegisterRoutes registers the operational endpoints: the health check and
// the Prometheus scrape endpoint for the collectors registered on gatherer.
func RegisterRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.GET("/healthz", handler.Health) // Liveness probe
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterAuth registers sign-in under /v1/auth and the endpoints that act
// on the caller's own session.  auth is the JWTAuth middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, auth echo.MiddlewareFunc) {
	g := e.Group("/v1/auth") // Auth routes
	g.POST("/sign-in", a.SignIn)
	g.POST("/sign-out", a.SignOut, auth)

	e.GET("/v1/me", a.Me, auth)
}

// RegisterPublic registers the endpoints guests may call.  Catalog reads go
// through the response cache; seating and group-pay reads do not, because
// they change with every booking.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, s *handler.SeatingHandler, cache echo.MiddlewareFunc) {
	catalog := e.Group("/v1", cache)
	catalog.GET("/locations", b.ListLocations)
	catalog.GET("/locations/:id", b.GetLocation)
	catalog.GET("/coupons", b.ListCoupons)
	catalog.GET("/layouts/:id", b.GetLayout)

	e.GET("/v1/showtimes", b.ListShowtimes) // Generated on first request per day
	e.GET("/v1/showtimes/:id/seating", s.GetSeating)
	e.GET("/v1/showtimes/:id/suggestions", s.Suggest)
	e.POST("/v1/selection/toggle", s.Toggle)
	e.POST("/v1/quotes", s.Quote)
}
