package middleware

import (
	"time"

	"go-event-api/core/constants"
	"go-event-api/core/logger"
	"go-event-api/core/metric"
	"go-event-api/core/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Middleware bundles the HTTP middlewares shared by all routers.
type Middleware struct{}

func New() *Middleware {
	return &Middleware{}
}

// RequestID attaches a nanoid to each request and echoes it back in the
// X-Request-ID header.
func (m *Middleware) RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = utils.GenerateRequestID()
			}
			c.Set(constants.ContextRequestID, id)
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			return next(c)
		}
	}
}

// RequestLogger logs one line per request and feeds the Prometheus
// request metrics.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			elapsed := time.Since(start)
			status := c.Response().Status
			route := c.Path()

			metric.ObserveRequest(c.Request().Method, route, status, elapsed)

			requestID, _ := c.Get(constants.ContextRequestID).(string)
			logger.Info("request",
				"request_id", requestID,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"elapsed_ms", elapsed.Milliseconds(),
			)
			return nil
		}
	}
}

// Recover converts panics into 500 responses.
func (m *Middleware) Recover() echo.MiddlewareFunc {
	return echomw.Recover()
}
