package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/angkut/internal/pkg/jwt"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/pkg/requestcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTConfig = models.JWTConfig{Secret: "middleware-secret", Expiration: 10, Issuer: "angkut-test"}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(next)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestJWTAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	token, _, err := jwtpkg.GenerateToken(userID, models.RoleTrucker, testJWTConfig)
	require.NoError(t, err)

	t.Run("valid token sets actor", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

		var actor models.Actor
		var info *requestcontext.Info
		rec := runMiddleware(t, JWTAuthMiddleware(testJWTConfig), req, func(c echo.Context) error {
			var aerr error
			actor, aerr = ActorFromContext(c)
			require.NoError(t, aerr)
			info, _ = requestcontext.FromContext(c.Request().Context())
			return c.NoContent(http.StatusNoContent)
		})

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, actor.UserID)
		assert.Equal(t, models.RoleTrucker, actor.Role)
		require.NotNil(t, info)
		assert.Equal(t, userID.String(), info.ActorID)
		assert.Equal(t, "trucker", info.ActorRole)
	})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic " + token},
		{name: "garbage token", header: "Bearer not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := runMiddleware(t, JWTAuthMiddleware(testJWTConfig), req, func(c echo.Context) error {
				t.Fatal("next must not be called")
				return nil
			})
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("system role is not accepted from tokens", func(t *testing.T) {
		sysToken, _, err := jwtpkg.GenerateToken(uuid.New(), models.RoleSystem, testJWTConfig)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+sysToken)

		rec := runMiddleware(t, JWTAuthMiddleware(testJWTConfig), req, func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestActorFromContext_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := ActorFromContext(c)
	assert.Error(t, err)
}

func TestValidateAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("gateway-key"), bcrypt.MinCost)
	require.NoError(t, err)
	mw := ValidateAPIKey("payment-gateway", string(hash))

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{name: "valid key", key: "gateway-key", status: http.StatusNoContent},
		{name: "wrong key", key: "other-key", status: http.StatusUnauthorized},
		{name: "missing key", key: "", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/internal", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rec := runMiddleware(t, mw, req, func(c echo.Context) error {
				return c.NoContent(http.StatusNoContent)
			})
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRequestContextMiddleware_PropagatesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")

	rec := runMiddleware(t, RequestContextMiddleware("angkut"), req, func(c echo.Context) error {
		info, ok := requestcontext.FromContext(c.Request().Context())
		require.True(t, ok)
		assert.Equal(t, "req-123", info.RequestID)
		assert.Equal(t, "angkut", info.ServiceName)
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))
}

func TestRequestContextMiddleware_GeneratesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := runMiddleware(t, RequestContextMiddleware("angkut"), req, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
	}{
		{name: "string panic", panicValue: "boom"},
		{name: "error panic", panicValue: errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := runMiddleware(t, PanicRecoveryMiddleware(logger.NewNopLogger()), req, func(c echo.Context) error {
				panic(tt.panicValue)
			})
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Body.String(), `"kind":"internal"`)
		})
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mw := RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: client,
		Resource:    "bookings",
		Limit:       2,
		Period:      time.Minute,
	})
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for i := 0; i < 2; i++ {
		rec := runMiddleware(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), next)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := runMiddleware(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), next)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	t.Run("redis down lets requests through", func(t *testing.T) {
		mr.Close()
		rec := runMiddleware(t, mw, httptest.NewRequest(http.MethodGet, "/", nil), next)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
