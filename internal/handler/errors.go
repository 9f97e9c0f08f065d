package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/service"
)

// respondError translates a service error into its HTTP status.  Unknown
// errors become a 500 whose cause is kept for the request logger but not
// sent to the client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrSeatConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seats_taken", "message": service.SeatConflictMessage})
	case errors.Is(err, service.ErrSessionInvalid):
		return c.JSON(http.StatusGone, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error").SetInternal(err)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func isNotFound(err error) bool {
	return errors.Is(err, service.ErrNotFound)
}
