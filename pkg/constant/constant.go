package constant

import "time"

// Contract constants shared with the mobile and web clients. Changing any of
// these changes the externally observable behavior of the service.
const (
	// MaxLoginAttempts is the number of consecutive failed logins after
	// which a member number is locked out.
	MaxLoginAttempts = 7

	// LockoutWindow is measured from the most recent failure, not the
	// first: attempts that keep arriving inside the window never let the
	// counter reset.
	LockoutWindow = 15 * time.Minute

	// OTPLength is the number of digits in a recovery code.
	OTPLength = 6

	// OTPValidity is how long an issued recovery code stays verifiable.
	OTPValidity = 10 * time.Minute

	// OTPMaxRequests caps recovery-code requests per member number within
	// OTPRequestWindow.
	OTPMaxRequests   = 3
	OTPRequestWindow = 60 * time.Minute

	// MinPasscodeLength applies to every new passcode, however it is set.
	MinPasscodeLength = 6

	// TokenValidity is the session token lifetime.
	TokenValidity = 24 * time.Hour

	// TokenIssuer is the fixed iss claim on every session token.
	TokenIssuer = "member-auth-service"
)
