package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-booking/internal/logger"
	"github.com/iliyamo/cinema-seat-booking/internal/metrics"
)

// RequestLogger attaches a request-scoped logger carrying the request ID to
// the request context and logs one line per request once it completes.
func RequestLogger(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			ctx := log.With(req.Context(), "request_id", id)
			c.SetRequest(req.WithContext(ctx))

			err := next(c)
			if err != nil {
				c.Error(err)
			}
			status := c.Response().Status
			switch {
			case status >= http.StatusInternalServerError:
				log.Errorf(ctx, "%s %s -> %d (%s) err=%v", req.Method, req.URL.Path, status, time.Since(start), err)
			case status >= http.StatusBadRequest:
				log.Infof(ctx, "%s %s -> %d (%s)", req.Method, req.URL.Path, status, time.Since(start))
			default:
				log.Debugf(ctx, "%s %s -> %d (%s)", req.Method, req.URL.Path, status, time.Since(start))
			}
			return nil
		}
	}
}

// Metrics records request latency by method, route template and status.
func Metrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			var he *echo.HTTPError
			if err != nil && errors.As(err, &he) {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(c.Request().Method, route, strconv.Itoa(status), time.Since(start).Seconds())
			return err
		}
	}
}
