package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the auth flows. Messages are user-visible and
// deliberately generic: they never name the member, the table, or the field
// that failed.
var (
	ErrInvalidHandle      = errors.New("invalid member number format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOTPFormat          = errors.New("OTP must be 6 digits")
	ErrAccountLocked      = errors.New("account temporarily locked due to repeated failed attempts")
	ErrNotActivated       = errors.New("account is not activated")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP has expired, please request a new one")
	ErrNoActiveRecovery   = errors.New("no active passcode recovery request")
	ErrPasscodeTooShort   = errors.New("new passcode is too short")
	ErrPasscodeIsPhone    = errors.New("new passcode must not be your phone number")
	ErrPasscodeUnchanged  = errors.New("new passcode must differ from the old one")
	ErrInvalidToken       = errors.New("invalid or expired session token")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)

// InvalidCredentialsError is returned on a failed login. AttemptsRemaining is
// part of the response contract; the message stays generic whether the member
// number exists or not.
type InvalidCredentialsError struct {
	AttemptsRemaining int
}

func (e *InvalidCredentialsError) Error() string {
	return "invalid credentials"
}

// RateLimitedError is returned when the recovery-code quota for a member
// number is exhausted.
type RateLimitedError struct {
	RetryAfterMinutes int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many OTP requests, try again in %d minutes", e.RetryAfterMinutes)
}
