package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

type lockoutEntry struct {
	failureCount  int
	lastFailureAt time.Time
}

// MemoryLockoutTracker is the default in-process LockoutTracker. A single
// mutex covers the expiry check and the write, so two concurrent requests can
// never both observe an expired entry and drop each other's increment.
type MemoryLockoutTracker struct {
	mu          sync.Mutex
	entries     map[string]*lockoutEntry
	window      time.Duration
	maxAttempts int
	now         func() time.Time
}

func NewMemoryLockoutTracker(maxAttempts int, window time.Duration) *MemoryLockoutTracker {
	return &MemoryLockoutTracker{
		entries:     make(map[string]*lockoutEntry),
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// countLocked returns the live failure count, deleting the entry when the
// window since the last failure has elapsed. Caller must hold mu.
func (t *MemoryLockoutTracker) countLocked(memberNo string) int {
	e, ok := t.entries[memberNo]
	if !ok {
		return 0
	}
	if t.now().Sub(e.lastFailureAt) > t.window {
		delete(t.entries, memberNo)
		return 0
	}
	return e.failureCount
}

func (t *MemoryLockoutTracker) FailureCount(_ context.Context, memberNo string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countLocked(memberNo), nil
}

func (t *MemoryLockoutTracker) RecordFailure(_ context.Context, memberNo string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := t.countLocked(memberNo)
	t.entries[memberNo] = &lockoutEntry{
		failureCount:  count + 1,
		lastFailureAt: t.now(),
	}
	return nil
}

func (t *MemoryLockoutTracker) Clear(_ context.Context, memberNo string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, memberNo)
	return nil
}

func (t *MemoryLockoutTracker) IsLocked(_ context.Context, memberNo string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.countLocked(memberNo) >= t.maxAttempts, nil
}

type limiterEntry struct {
	requestCount int
	windowStart  time.Time
}

// MemoryRecoveryLimiter is the default in-process RecoveryLimiter.
type MemoryRecoveryLimiter struct {
	mu          sync.Mutex
	entries     map[string]*limiterEntry
	window      time.Duration
	maxRequests int
	now         func() time.Time
}

func NewMemoryRecoveryLimiter(maxRequests int, window time.Duration) *MemoryRecoveryLimiter {
	return &MemoryRecoveryLimiter{
		entries:     make(map[string]*limiterEntry),
		window:      window,
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

func (l *MemoryRecoveryLimiter) Status(_ context.Context, memberNo string) (Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[memberNo]
	if !ok || l.now().Sub(e.windowStart) >= l.window {
		return Status{Allowed: true, Remaining: l.maxRequests}, nil
	}

	remaining := l.maxRequests - e.requestCount
	if remaining < 0 {
		remaining = 0
	}
	retryAfter := int(math.Ceil(e.windowStart.Add(l.window).Sub(l.now()).Minutes()))
	return Status{
		Allowed:           remaining > 0,
		Remaining:         remaining,
		RetryAfterMinutes: retryAfter,
	}, nil
}

func (l *MemoryRecoveryLimiter) RecordRequest(_ context.Context, memberNo string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[memberNo]
	if !ok || l.now().Sub(e.windowStart) >= l.window {
		l.entries[memberNo] = &limiterEntry{requestCount: 1, windowStart: l.now()}
		return nil
	}
	e.requestCount++
	return nil
}
