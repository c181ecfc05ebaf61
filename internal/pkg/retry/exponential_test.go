package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func fastConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2,
	}
}

func TestExecute_SucceedsAfterTransientFailures(t *testing.T) {
	r := New(fastConfig(), logger.NewNopLogger())

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecute_GivesUpAfterMaxRetries(t *testing.T) {
	r := New(fastConfig(), logger.NewNopLogger())
	boom := errors.New("boom")

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 4, calls)
}

func TestExecute_StopsOnPermanentError(t *testing.T) {
	r := New(fastConfig(), logger.NewNopLogger())
	bad := errors.New("bad request")

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(bad)
	})

	assert.Equal(t, bad, err)
	assert.Equal(t, 1, calls)
}

func TestExecute_RespectsPredicate(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryableFunc = func(err error) bool { return false }
	r := New(cfg, logger.NewNopLogger())

	calls := 0
	_ = r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("nope")
	})

	assert.Equal(t, 1, calls)
}

func TestExecute_CancelledContext(t *testing.T) {
	r := New(fastConfig(), logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Execute(ctx, func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelay_CapsAtMaxDelay(t *testing.T) {
	r := New(Config{BaseDelay: time.Second, MaxDelay: 3 * time.Second, Multiplier: 2}, logger.NewNopLogger())
	err := errors.New("timeout")

	assert.Equal(t, time.Second, r.delay(0, err))
	assert.Equal(t, 2*time.Second, r.delay(1, err))
	assert.Equal(t, 3*time.Second, r.delay(5, err))
}

type throttled struct{ after time.Duration }

func (e throttled) Error() string             { return "throttled" }
func (e throttled) RetryAfter() time.Duration { return e.after }

func TestDelay_FollowsRetryAfterHint(t *testing.T) {
	r := New(Config{BaseDelay: 100 * time.Millisecond, MaxDelay: 5 * time.Second, Multiplier: 2}, logger.NewNopLogger())

	assert.Equal(t, 2*time.Second, r.delay(0, throttled{after: 2 * time.Second}))
	assert.Equal(t, 5*time.Second, r.delay(0, throttled{after: time.Minute}))
	// a hint shorter than the backoff does not shorten it
	assert.Equal(t, 400*time.Millisecond, r.delay(2, throttled{after: time.Millisecond}))
}

func TestExecute_SleepsBetweenAttempts(t *testing.T) {
	r := New(Config{MaxRetries: 2, BaseDelay: time.Second, Multiplier: 2}, logger.NewNopLogger())
	var slept []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	_ = r.Execute(context.Background(), func(ctx context.Context) error { return errors.New("reset") })

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, slept)
}
