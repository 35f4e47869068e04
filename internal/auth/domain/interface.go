package domain

//go:generate mockgen -destination=../../mocks/mock_member_repository.go -package=mocks github.com/andrianpratama/member-auth-service/internal/auth/domain MemberRepository

import (
	"context"
	"time"
)

type MemberRepository interface {
	// FindByMemberNo returns the first record whose legacy member key
	// matches the member number, or nil when no row matches.
	FindByMemberNo(ctx context.Context, memberNo string) (*Member, error)
	SaveRecoveryCode(ctx context.Context, recordID, codeHash string, expiresAt time.Time) error
	ClearRecoveryCode(ctx context.Context, recordID string) error
	UpdatePasscode(ctx context.Context, recordID, passcodeHash string) error
	// UpdatePasscodeClearRecovery sets the passcode hash and clears the
	// recovery code and its expiry in a single statement.
	UpdatePasscodeClearRecovery(ctx context.Context, recordID, passcodeHash string) error
}
