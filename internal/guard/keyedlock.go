// Package guard serializes schedule mutations per guide.
package guard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/deccantrails/tourbooker/internal/domain"
)

// KeyedLimiter grants at most one concurrent holder per key. Acquisition is
// bounded: a caller that cannot obtain the key within the timeout fails
// with a ConflictError instead of hanging, so it can safely retry.
type KeyedLimiter struct {
	mu      sync.Mutex
	sems    map[string]*semaphore.Weighted
	timeout time.Duration
}

func NewKeyedLimiter(timeout time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		sems:    make(map[string]*semaphore.Weighted),
		timeout: timeout,
	}
}

// Acquire takes the exclusion for key and returns the release func. The
// release func must be called exactly once.
func (l *KeyedLimiter) Acquire(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	sem, ok := l.sems[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.sems[key] = sem
	}
	l.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, &domain.ConflictError{Resource: key}
	}
	return func() { sem.Release(1) }, nil
}
