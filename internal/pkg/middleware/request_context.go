package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/requestcontext"
)

// RequestContextMiddleware tags every request with an id (taken from
// X-Request-ID when the caller sent one) and echoes it back
func RequestContextMiddleware(serviceName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			info := requestcontext.New(req.Header.Get(requestcontext.HeaderRequestID), serviceName)

			c.SetRequest(req.WithContext(requestcontext.WithInfo(req.Context(), info)))
			c.Response().Header().Set(requestcontext.HeaderRequestID, info.RequestID)

			return next(c)
		}
	}
}
