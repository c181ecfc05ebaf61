package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/database"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
)

// Unlock releases a held lock
type Unlock func()

// ErrLockTimeout is returned when a lock could not be acquired in time
var ErrLockTimeout = errors.New("timed out waiting for lock")

// RedisLocker is a per-key mutual exclusion lock shared by all instances
type RedisLocker struct {
	redis      *database.RedisClient
	ttl        time.Duration
	retryDelay time.Duration
	maxWait    time.Duration
}

// NewRedisLocker creates a Redis backed locker
func NewRedisLocker(client *database.RedisClient, cfg models.LockConfig) *RedisLocker {
	l := &RedisLocker{
		redis:      client,
		ttl:        cfg.TTL,
		retryDelay: cfg.RetryDelay,
		maxWait:    cfg.MaxWait,
	}
	if l.ttl <= 0 {
		l.ttl = 10 * time.Second
	}
	if l.retryDelay <= 0 {
		l.retryDelay = 50 * time.Millisecond
	}
	if l.maxWait <= 0 {
		l.maxWait = 5 * time.Second
	}
	return l
}

// Lock blocks until key is held, ctx is done or the wait budget is spent.
// The lock expires after the TTL if the holder never unlocks.
func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	token := uuid.New().String()
	deadline := time.Now().Add(l.maxWait)

	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl)
		if err != nil {
			return nil, apperror.DependencyError{Dependency: "lock store", Err: err}
		}
		if ok {
			return func() {
				// release must not depend on the caller's possibly cancelled context
				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				released, err := l.redis.ReleaseIfOwner(ctx, key, token)
				if err != nil {
					logger.Warn("Failed to release lock", logger.String("key", key), logger.Err(err))
				} else if !released {
					logger.Warn("Lock expired before release", logger.String("key", key))
				}
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, apperror.ConflictError{Resource: "lock", Msg: "resource is busy, retry later", Err: ErrLockTimeout}
		}

		timer := time.NewTimer(l.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// LocalLocker serializes work per key inside one process
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*slot)}
}

// Lock blocks until key is held or ctx is done
func (l *LocalLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.release(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, s)
		return nil, ctx.Err()
	}
}

func (l *LocalLocker) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
