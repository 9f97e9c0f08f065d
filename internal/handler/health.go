package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe.  It answers "ok" as long as the process
// serves HTTP; optional backends (Redis, MySQL, RabbitMQ) are not checked.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
