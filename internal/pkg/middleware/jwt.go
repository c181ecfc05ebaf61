package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/apperror"
	jwtpkg "github.com/piresc/angkut/internal/pkg/jwt"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/pkg/requestcontext"
	"github.com/piresc/angkut/internal/utils"
)

const (
	userIDKey   = "user_id"
	userRoleKey = "user_role"
)

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}
			if claims.UserID == uuid.Nil {
				return utils.UnauthorizedResponse(c, "Invalid token: missing user_id claim")
			}

			switch claims.Role {
			case models.RoleCustomer, models.RoleTrucker, models.RoleAdmin:
			default:
				return utils.UnauthorizedResponse(c, "Invalid token: unknown role")
			}

			c.Set(userIDKey, claims.UserID)
			c.Set(userRoleKey, claims.Role)

			req := c.Request()
			c.SetRequest(req.WithContext(requestcontext.WithActor(req.Context(), claims.UserID.String(), string(claims.Role))))

			return next(c)
		}
	}
}

// ActorFromContext returns the authenticated actor set by JWTAuthMiddleware
func ActorFromContext(c echo.Context) (models.Actor, error) {
	userID, ok := c.Get(userIDKey).(uuid.UUID)
	if !ok {
		return models.Actor{}, apperror.AuthorizationError{Action: "authenticate", Msg: "missing user"}
	}
	role, ok := c.Get(userRoleKey).(models.Role)
	if !ok {
		return models.Actor{}, apperror.AuthorizationError{Action: "authenticate", Msg: "missing role"}
	}
	return models.Actor{UserID: userID, Role: role}, nil
}
