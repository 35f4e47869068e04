// Package ratelimit holds the process-wide abuse counters: consecutive
// failed-login tracking and recovery-code request throttling, both keyed by
// member number. Entries are advisory and expire lazily on read; nothing is
// persisted across restarts unless the Redis backend is selected.
package ratelimit

import "context"

// LockoutTracker counts consecutive failed login attempts per member number.
// The window is anchored on the most recent failure, so attempts arriving
// steadily inside the window never let the counter reset.
type LockoutTracker interface {
	FailureCount(ctx context.Context, memberNo string) (int, error)
	RecordFailure(ctx context.Context, memberNo string) error
	Clear(ctx context.Context, memberNo string) error
	IsLocked(ctx context.Context, memberNo string) (bool, error)
}

// Status describes the recovery-quota state for a member number.
type Status struct {
	Allowed           bool
	Remaining         int
	RetryAfterMinutes int
}

// RecoveryLimiter caps recovery-code requests per member number within a
// fixed window measured from the first request. The count keeps growing while
// the window is open and only resets when it fully elapses.
type RecoveryLimiter interface {
	Status(ctx context.Context, memberNo string) (Status, error)
	RecordRequest(ctx context.Context, memberNo string) error
}
