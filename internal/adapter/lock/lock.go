// Package lock provides try-locks that keep background jobs from overlapping.
// Redis backs the lock when several server instances share work; a process
// local implementation is used otherwise.
//
// A held lock is extended every third of its TTL until it is released, so a
// job that outlives the TTL keeps its lease. The TTL only bounds how long a
// crashed holder blocks others.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotHeld is returned by a refresh when the lease was lost.
var ErrNotHeld = errors.New("lock: not held")

// ReleaseFunc releases an obtained lock.
type ReleaseFunc func(ctx context.Context) error

// Redis obtains locks through bsm/redislock.
type Redis struct {
	client *redislock.Client
}

// NewRedis creates a Redis-backed locker.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: redislock.New(client)}
}

// TryLock obtains key for ttl without retrying. ok is false when another
// holder owns the key.
func (l *Redis) TryLock(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, bool, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lock: obtain %s: %w", key, err)
	}

	stop := keepAlive(ttl, func(ctx context.Context) error {
		err := lk.Refresh(ctx, ttl, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return ErrNotHeld
		}
		return err
	})
	release := func(ctx context.Context) error {
		stop()
		err := lk.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}
	return release, true, nil
}

// Local is an in-process locker.
type Local struct {
	mu    sync.Mutex
	held  map[string]*lease
	nowFn func() time.Time
}

type lease struct {
	until time.Time
}

// NewLocal creates an in-process locker.
func NewLocal() *Local {
	return &Local{held: make(map[string]*lease), nowFn: time.Now}
}

// TryLock obtains key for ttl without waiting.
func (l *Local) TryLock(_ context.Context, key string, ttl time.Duration) (ReleaseFunc, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if cur, ok := l.held[key]; ok && now.Before(cur.until) {
		return nil, false, nil
	}
	own := &lease{until: now.Add(ttl)}
	l.held[key] = own

	stop := keepAlive(ttl, func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key] != own {
			return ErrNotHeld
		}
		own.until = l.nowFn().Add(ttl)
		return nil
	})
	release := func(context.Context) error {
		stop()
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[key] == own {
			delete(l.held, key)
		}
		return nil
	}
	return release, true, nil
}

// keepAlive calls refresh every ttl/3 until stop is called or a refresh
// fails. stop waits for the loop to exit and may be called more than once.
func keepAlive(ttl time.Duration, refresh func(ctx context.Context) error) (stop func()) {
	every := ttl / 3
	if every < time.Millisecond {
		every = time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if err := refresh(ctx); err != nil {
					return
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
