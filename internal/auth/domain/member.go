package domain

import "time"

// Member is one row of the legacy member record store, fetched fresh on every
// request. An empty PasscodeHash means the account was never activated.
type Member struct {
	ID                    string
	MemberNo              string
	FullName              string
	Email                 string
	Phone                 string
	PasscodeHash          string
	RecoveryCodeHash      string
	RecoveryCodeExpiresAt *time.Time
}

// Activated reports whether the member has ever set a passcode.
func (m *Member) Activated() bool {
	return m.PasscodeHash != ""
}

// HasPendingRecovery reports whether a recovery code is currently stored for
// the member, expired or not.
func (m *Member) HasPendingRecovery() bool {
	return m.RecoveryCodeHash != ""
}
