package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
)

var errRemote = errors.New("remote down")

func failing(context.Context) error { return errRemote }
func ok(context.Context) error      { return nil }

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	cb := New(cfg, logger.NewNopLogger())
	cb.now = clock.now
	return cb, clock
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(Config{Name: "routing", FailureThreshold: 2, Timeout: time.Minute})

	assert.ErrorIs(t, cb.Execute(context.Background(), failing), errRemote)
	assert.Equal(t, StateClosed, cb.State())
	assert.ErrorIs(t, cb.Execute(context.Background(), failing), errRemote)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.ErrorContains(t, err, "routing")
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb, _ := newTestBreaker(Config{Name: "geocoder", FailureThreshold: 2})

	_ = cb.Execute(context.Background(), failing)
	assert.NoError(t, cb.Execute(context.Background(), ok))
	_ = cb.Execute(context.Background(), failing)

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	var transitions []State
	cb, clock := newTestBreaker(Config{
		Name:             "routing",
		FailureThreshold: 1,
		Timeout:          time.Minute,
		OnStateChange: func(_ string, _ State, to State) {
			transitions = append(transitions, to)
		},
	})

	_ = cb.Execute(context.Background(), failing)
	assert.Equal(t, StateOpen, cb.State())

	clock.advance(59 * time.Second)
	assert.ErrorIs(t, cb.Execute(context.Background(), ok), ErrCircuitBreakerOpen)

	clock.advance(time.Second)
	assert.NoError(t, cb.Execute(context.Background(), ok))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, transitions)
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	cb, clock := newTestBreaker(Config{Name: "payment-gateway", FailureThreshold: 1, Timeout: time.Minute})

	_ = cb.Execute(context.Background(), failing)
	clock.advance(time.Minute)

	assert.ErrorIs(t, cb.Execute(context.Background(), failing), errRemote)
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(context.Background(), ok), ErrCircuitBreakerOpen)
}

func TestCircuitBreaker_SingleProbe(t *testing.T) {
	cb, clock := newTestBreaker(Config{Name: "routing", FailureThreshold: 1, Timeout: time.Minute})

	_ = cb.Execute(context.Background(), failing)
	clock.advance(time.Minute)

	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		assert.ErrorIs(t, cb.Execute(ctx, ok), ErrProbeInFlight)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IgnoresNonFailures(t *testing.T) {
	errClient := errors.New("bad request")
	cb, _ := newTestBreaker(Config{
		Name:             "payment-gateway",
		FailureThreshold: 1,
		IsFailure:        func(err error) bool { return errors.Is(err, errRemote) },
	})

	assert.ErrorIs(t, cb.Execute(context.Background(), func(context.Context) error { return errClient }), errClient)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_CancelledCallsDoNotTrip(t *testing.T) {
	cb, _ := newTestBreaker(Config{Name: "geocoder", FailureThreshold: 1})

	_ = cb.Execute(context.Background(), func(context.Context) error { return context.Canceled })
	assert.Equal(t, StateClosed, cb.State())
}
