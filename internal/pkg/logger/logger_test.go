package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/requestcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(t *testing.T) (*ZapLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	zl := &ZapLogger{Logger: zap.New(core)}

	prev := GetGlobalLogger()
	SetGlobalLogger(zl)
	t.Cleanup(func() { SetGlobalLogger(prev) })
	return zl, logs
}

func TestCtxLogging_CarriesRequestAndActor(t *testing.T) {
	_, logs := observed(t)

	ctx := requestcontext.WithInfo(context.Background(), requestcontext.New("req-1", "booking-service"))
	ctx = requestcontext.WithActor(ctx, "user-1", "trucker")
	bookingID := uuid.New()

	InfoCtx(ctx, "Booking confirmed", BookingID(bookingID))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-1", fields["actor_id"])
	assert.Equal(t, "trucker", fields["actor_role"])
	assert.Equal(t, bookingID.String(), fields["booking_id"])
}

func TestCtxLogging_WithoutRequestContext(t *testing.T) {
	_, logs := observed(t)

	WarnCtx(context.Background(), "Notification failed")

	require.Equal(t, 1, logs.Len())
	_, ok := logs.All()[0].ContextMap()["request_id"]
	assert.False(t, ok)
}

func TestZapEchoMiddleware_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler echo.HandlerFunc
		level   zapcore.Level
		status  int64
	}{
		{
			name:    "ok",
			handler: func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			level:   zapcore.InfoLevel,
			status:  http.StatusOK,
		},
		{
			name:    "client error",
			handler: func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound) },
			level:   zapcore.WarnLevel,
			status:  http.StatusNotFound,
		},
		{
			name:    "server error",
			handler: func(c echo.Context) error { return errors.New("boom") },
			level:   zapcore.ErrorLevel,
			status:  http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zl, logs := observed(t)
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/bookings?status=pending", nil)
			c := e.NewContext(req, httptest.NewRecorder())
			c.SetPath("/bookings")

			require.NoError(t, ZapEchoMiddleware(zl)(tt.handler)(c))

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.status, entry.ContextMap()["status"])
			assert.Equal(t, "/bookings", entry.ContextMap()["route"])
			assert.Equal(t, "/bookings?status=pending", entry.ContextMap()["path"])
		})
	}
}
