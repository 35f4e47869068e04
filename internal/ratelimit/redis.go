package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

var errRedisUnavailable = errors.New("counter redis unavailable")

const (
	lockoutKeyPrefix  = "lf:"
	recoveryKeyPrefix = "rr:"
)

// RedisLockoutTracker shares lockout counts across instances. Each failure
// refreshes the key TTL, which matches the in-memory semantics: the window is
// anchored on the last failure.
type RedisLockoutTracker struct {
	redis       *redis.Client
	window      time.Duration
	maxAttempts int
}

func NewRedisLockoutTracker(client *redis.Client, maxAttempts int, window time.Duration) *RedisLockoutTracker {
	return &RedisLockoutTracker{
		redis:       client,
		window:      window,
		maxAttempts: maxAttempts,
	}
}

func (t *RedisLockoutTracker) FailureCount(ctx context.Context, memberNo string) (int, error) {
	count, err := t.redis.Get(ctx, lockoutKeyPrefix+memberNo).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	return count, nil
}

func (t *RedisLockoutTracker) RecordFailure(ctx context.Context, memberNo string) error {
	key := lockoutKeyPrefix + memberNo
	if err := t.redis.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	if err := t.redis.Expire(ctx, key, t.window).Err(); err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	return nil
}

func (t *RedisLockoutTracker) Clear(ctx context.Context, memberNo string) error {
	if err := t.redis.Del(ctx, lockoutKeyPrefix+memberNo).Err(); err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	return nil
}

func (t *RedisLockoutTracker) IsLocked(ctx context.Context, memberNo string) (bool, error) {
	count, err := t.FailureCount(ctx, memberNo)
	if err != nil {
		return false, err
	}
	return count >= t.maxAttempts, nil
}

// RedisRecoveryLimiter shares recovery-request counts across instances using
// the fixed-window INCR+EXPIRE pattern: the TTL is set only when the key is
// created, so the window runs from the first request.
type RedisRecoveryLimiter struct {
	redis       *redis.Client
	window      time.Duration
	maxRequests int
}

func NewRedisRecoveryLimiter(client *redis.Client, maxRequests int, window time.Duration) *RedisRecoveryLimiter {
	return &RedisRecoveryLimiter{
		redis:       client,
		window:      window,
		maxRequests: maxRequests,
	}
}

func (l *RedisRecoveryLimiter) Status(ctx context.Context, memberNo string) (Status, error) {
	key := recoveryKeyPrefix + memberNo
	count, err := l.redis.Get(ctx, key).Int()
	if err == redis.Nil {
		return Status{Allowed: true, Remaining: l.maxRequests}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}

	ttl, err := l.redis.TTL(ctx, key).Result()
	if err != nil {
		return Status{}, fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	if ttl <= 0 {
		return Status{Allowed: true, Remaining: l.maxRequests}, nil
	}

	remaining := l.maxRequests - count
	if remaining < 0 {
		remaining = 0
	}
	return Status{
		Allowed:           remaining > 0,
		Remaining:         remaining,
		RetryAfterMinutes: int(math.Ceil(ttl.Minutes())),
	}, nil
}

func (l *RedisRecoveryLimiter) RecordRequest(ctx context.Context, memberNo string) error {
	key := recoveryKeyPrefix + memberNo
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", errRedisUnavailable, err)
		}
	}
	return nil
}
