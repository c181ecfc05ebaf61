package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/database"
		"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(svc *HealthService) *echo.Echo {
	e := echo.New()
	RegisterHealthEndpoints(e, "angkut", "1.0.0", svc)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPingAndHealth(t *testing.T) {
	e := newEcho(NewHealthService())

	rec := get(e, "/ping")
	require.Equal(t, http.StatusOK, rec.Code)
	var info BuildInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "angkut", info.ServiceName)
	assert.Equal(t, "1.0.0", info.Version)
	assert.NotEmpty(t, info.GoVersion)

	assert.Equal(t, http.StatusOK, get(e, "/health").Code)
}

func TestReady(t *testing.T) {
	t.Run("all dependencies healthy", func(t *testing.T) {
		svc := NewHealthService()
		svc.AddChecker("postgres", CheckerFunc(func(context.Context) error { return nil }))

		rec := get(newEcho(svc), "/ready")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ready")
	})

	t.Run("one dependency failing", func(t *testing.T) {
		svc := NewHealthService()
		svc.AddChecker("postgres", CheckerFunc(func(context.Context) error { return nil }))
		svc.AddChecker("nats", CheckerFunc(func(context.Context) error { return errors.New("down") }))

		rec := get(newEcho(svc), "/ready")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
		assert.Equal(t, "healthy", resp.Dependencies["postgres"].Status)
		assert.Equal(t, "down", resp.Dependencies["nats"].Error)
	})
}

func TestDetailedHealth_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	defer client.Close()

	svc := NewHealthService()
	svc.AddChecker("redis", NewRedisHealthChecker(client))
	svc.AddChecker("mongo", NewMongoHealthChecker(nil))

	rec := get(newEcho(svc), "/health/detailed")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Dependencies["redis"].Status)
	assert.Equal(t, "unhealthy", resp.Dependencies["mongo"].Status)
	assert.Equal(t, "1.0.0", resp.Version)
}
