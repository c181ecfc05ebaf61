package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// APIKeyHeader carries the shared secret of system callers
const APIKeyHeader = "X-API-Key"

// ValidateAPIKey checks the X-API-Key header against a bcrypt hash. Used on
// routes called by other systems rather than end users.
func ValidateAPIKey(service, keyHash string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.UnauthorizedResponse(c, "API key is required")
			}

			if keyHash == "" || bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(apiKey)) != nil {
				logger.WarnCtx(c.Request().Context(), "Rejected API key",
					logger.String("caller", service),
					logger.String("path", c.Path()),
					logger.String("client_ip", c.RealIP()))
				return utils.UnauthorizedResponse(c, "Invalid API key")
			}

			return next(c)
		}
	}
}
