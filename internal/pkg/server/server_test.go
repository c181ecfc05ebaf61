package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownManager_ReverseOrderAndContinueOnError(t *testing.T) {
	sm := NewShutdownManager(logger.NewNopLogger())
	var order []string

	sm.Register("postgres", func(context.Context) error {
		order = append(order, "postgres")
		return nil
	})
	sm.Register("nats", func(context.Context) error {
		order = append(order, "nats")
		return errors.New("drain failed")
	})
	sm.Register("nsq", func(context.Context) error {
		order = append(order, "nsq")
		return nil
	})

	sm.Shutdown(context.Background())

	assert.Equal(t, []string{"nsq", "nats", "postgres"}, order)

	sm.Shutdown(context.Background())
	assert.Len(t, order, 3)
}

func TestGracefulServer_RunStopsOnContextCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	gs := NewGracefulServer(e, logger.NewNopLogger(), "127.0.0.1:0", time.Second)
	closed := make(chan struct{})
	gs.OnShutdown("probe", func(context.Context) error {
		close(closed)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	select {
	case <-closed:
	default:
		t.Fatal("shutdown hook not called")
	}
}

func TestGracefulServer_RunReturnsListenError(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	gs := NewGracefulServer(e, logger.NewNopLogger(), "invalid-address", time.Second)

	err := gs.Run(context.Background())
	assert.Error(t, err)
}
