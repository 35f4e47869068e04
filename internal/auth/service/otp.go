package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/andrianpratama/member-auth-service/internal/auth/domain"
	"github.com/andrianpratama/member-auth-service/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

// OTPResult is the outcome of verifying a candidate recovery code.
type OTPResult int

const (
	OTPValid OTPResult = iota
	OTPInvalid
	OTPExpired
	OTPNonePending
)

// OTPManager generates, hashes, and time-bounds recovery codes. Only the
// bcrypt hash and the expiry are persisted; the plain code exists just long
// enough to be mailed.
type OTPManager struct {
	repo domain.MemberRepository
}

func NewOTPManager(repo domain.MemberRepository) *OTPManager {
	return &OTPManager{repo: repo}
}

// Generate draws each digit uniformly, so leading zeros are as likely as any
// other digit.
func (m *OTPManager) Generate() (string, error) {
	digits := make([]byte, constant.OTPLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// Issue generates a fresh code and persists its hash and expiry against the
// member's record, replacing any pending code. The passcode field is left
// untouched. Callers must not notify the member unless Issue succeeds.
func (m *OTPManager) Issue(ctx context.Context, member *domain.Member) (string, error) {
	code, err := m.Generate()
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(constant.OTPValidity)
	if err := m.repo.SaveRecoveryCode(ctx, member.ID, string(hash), expiresAt); err != nil {
		return "", err
	}

	return code, nil
}

// Verify checks the candidate code against the member's pending recovery
// state. An expired code is cleared on detection, so it can never be replayed:
// the next attempt with the same code sees OTPNonePending.
func (m *OTPManager) Verify(ctx context.Context, member *domain.Member, candidate string) (OTPResult, error) {
	if !member.HasPendingRecovery() {
		return OTPNonePending, nil
	}

	if member.RecoveryCodeExpiresAt == nil || time.Now().After(*member.RecoveryCodeExpiresAt) {
		if err := m.repo.ClearRecoveryCode(ctx, member.ID); err != nil {
			return OTPExpired, err
		}
		return OTPExpired, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(member.RecoveryCodeHash), []byte(candidate)) != nil {
		return OTPInvalid, nil
	}

	return OTPValid, nil
}

func (m *OTPManager) Clear(ctx context.Context, member *domain.Member) error {
	return m.repo.ClearRecoveryCode(ctx, member.ID)
}
