package logger

import (
	"time"

	"github.com/labstack/echo/v4"
)

// ZapEchoMiddleware writes one access log line per request
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// let echo write the response so the logged status is the real one
				c.Error(err)
			}

			req := c.Request()
			path := req.URL.Path
			if raw := req.URL.RawQuery; raw != "" {
				path += "?" + raw
			}

			logger.LogHTTPRequest(req.Context(), HTTPRequestLog{
				Method:   req.Method,
				Path:     path,
				Route:    c.Path(),
				ClientIP: c.RealIP(),
				Status:   c.Response().Status,
				Latency:  time.Since(start),
				Err:      err,
			})
			return nil
		}
	}
}
