package service

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"github.com/andrianpratama/member-auth-service/internal/auth/domain"
	"github.com/andrianpratama/member-auth-service/internal/auth/dto"
	autherror "github.com/andrianpratama/member-auth-service/internal/errors"
	"github.com/andrianpratama/member-auth-service/internal/mailer"
	"github.com/andrianpratama/member-auth-service/internal/ratelimit"
	"github.com/andrianpratama/member-auth-service/pkg/constant"
	"golang.org/x/crypto/bcrypt"
)

var otpCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// AuthService orchestrates the credential lifecycle flows. Each flow is a
// linear sequence of gates; the first failing gate is terminal for that
// request. Store and mail errors never reach the caller with detail, only as
// ErrServiceUnavailable.
type AuthService struct {
	repo    domain.MemberRepository
	tokens  TokenGenerator
	otp     *OTPManager
	lockout ratelimit.LockoutTracker
	limiter ratelimit.RecoveryLimiter
	mail    mailer.Mailer
}

func NewAuthService(
	repo domain.MemberRepository,
	tokens TokenGenerator,
	otp *OTPManager,
	lockout ratelimit.LockoutTracker,
	limiter ratelimit.RecoveryLimiter,
	mail mailer.Mailer,
) *AuthService {
	return &AuthService{
		repo:    repo,
		tokens:  tokens,
		otp:     otp,
		lockout: lockout,
		limiter: limiter,
		mail:    mail,
	}
}

// Login verifies a member's passcode, gated by the lockout tracker. Failure
// accounting happens even for unknown member numbers, so enumeration and
// brute force cost the same.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	memberNo, err := ParseMemberNo(input.Handle)
	if err != nil {
		return nil, err
	}

	locked, err := s.lockout.IsLocked(ctx, memberNo)
	if err != nil {
		return nil, s.unavailable("lockout check", memberNo, err)
	}
	if locked {
		return nil, autherror.ErrAccountLocked
	}

	member, err := s.repo.FindByMemberNo(ctx, memberNo)
	if err != nil {
		return nil, s.unavailable("member lookup", memberNo, err)
	}
	if member == nil {
		return nil, s.failLogin(ctx, memberNo)
	}

	if !member.Activated() {
		return nil, autherror.ErrNotActivated
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasscodeHash), []byte(input.Passcode)) != nil {
		return nil, s.failLogin(ctx, memberNo)
	}

	if err := s.lockout.Clear(ctx, memberNo); err != nil {
		log.Printf("warn: failed to clear lockout for member %s: %v", memberNo, err)
	}

	token, _, err := s.tokens.Generate(member.ID, memberNo)
	if err != nil {
		return nil, s.unavailable("token generation", memberNo, err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokens.GetTokenExpiry().Seconds()),
		Member: dto.MemberSummary{
			MemberNo: memberNo,
			FullName: member.FullName,
			Email:    member.Email,
		},
	}, nil
}

// failLogin records a failed attempt and returns the generic rejection with
// the attempts-remaining counter, floored at zero.
func (s *AuthService) failLogin(ctx context.Context, memberNo string) error {
	if err := s.lockout.RecordFailure(ctx, memberNo); err != nil {
		log.Printf("warn: failed to record login failure for member %s: %v", memberNo, err)
	}

	count, err := s.lockout.FailureCount(ctx, memberNo)
	if err != nil {
		log.Printf("warn: failed to read failure count for member %s: %v", memberNo, err)
		count = constant.MaxLoginAttempts
	}

	remaining := constant.MaxLoginAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return &autherror.InvalidCredentialsError{AttemptsRemaining: remaining}
}

// ForgotPasscode issues a recovery code and mails it. The response is a
// generic acknowledgement whether or not the member number exists or has a
// contact address. The request is counted against the quota before the
// record is fetched, so unknown and known member numbers cost the same.
func (s *AuthService) ForgotPasscode(ctx context.Context, handle string) error {
	memberNo, err := ParseMemberNo(handle)
	if err != nil {
		return err
	}

	st, err := s.limiter.Status(ctx, memberNo)
	if err != nil {
		return s.unavailable("recovery quota check", memberNo, err)
	}
	if !st.Allowed {
		return &autherror.RateLimitedError{RetryAfterMinutes: st.RetryAfterMinutes}
	}

	if err := s.limiter.RecordRequest(ctx, memberNo); err != nil {
		return s.unavailable("recovery quota update", memberNo, err)
	}

	member, err := s.repo.FindByMemberNo(ctx, memberNo)
	if err != nil {
		return s.unavailable("member lookup", memberNo, err)
	}
	if member == nil || member.Email == "" {
		return nil
	}

	code, err := s.otp.Issue(ctx, member)
	if err != nil {
		return s.unavailable("recovery code issue", memberNo, err)
	}

	if err := s.mail.Send(ctx, member.Email, otpSubject, otpBody(member.FullName, code)); err != nil {
		log.Printf("warn: failed to send recovery code to member %s: %v", memberNo, err)
	}

	return nil
}

// VerifyOTP exchanges a valid recovery code for a new passcode. The passcode
// hash is set and the pending code cleared in one statement.
func (s *AuthService) VerifyOTP(ctx context.Context, input dto.VerifyOTPInput) error {
	memberNo, err := ParseMemberNo(input.Handle)
	if err != nil {
		return err
	}

	if !otpCodePattern.MatchString(input.Code) {
		return autherror.ErrOTPFormat
	}
	if len(input.NewPasscode) < constant.MinPasscodeLength {
		return autherror.ErrPasscodeTooShort
	}

	member, err := s.repo.FindByMemberNo(ctx, memberNo)
	if err != nil {
		return s.unavailable("member lookup", memberNo, err)
	}
	if member == nil {
		return autherror.ErrInvalidOTP
	}

	res, err := s.otp.Verify(ctx, member, input.Code)
	if err != nil {
		return s.unavailable("recovery code verify", memberNo, err)
	}
	switch res {
	case OTPNonePending, OTPInvalid:
		return autherror.ErrInvalidOTP
	case OTPExpired:
		return autherror.ErrOTPExpired
	}

	if member.Phone != "" && input.NewPasscode == member.Phone {
		return autherror.ErrPasscodeIsPhone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPasscode), bcrypt.DefaultCost)
	if err != nil {
		return s.unavailable("passcode hashing", memberNo, err)
	}

	if err := s.repo.UpdatePasscodeClearRecovery(ctx, member.ID, string(hash)); err != nil {
		return s.unavailable("passcode update", memberNo, err)
	}

	if member.Email != "" {
		if err := s.mail.Send(ctx, member.Email, confirmSubject, confirmBody(member.FullName)); err != nil {
			log.Printf("warn: failed to send passcode confirmation to member %s: %v", memberNo, err)
		}
	}

	return nil
}

// ResendOTP replaces a pending recovery code with a fresh one. Unlike
// ForgotPasscode, a member with no pending code gets an explicit rejection
// rather than a silent acknowledgement.
func (s *AuthService) ResendOTP(ctx context.Context, handle string) error {
	memberNo, err := ParseMemberNo(handle)
	if err != nil {
		return err
	}

	st, err := s.limiter.Status(ctx, memberNo)
	if err != nil {
		return s.unavailable("recovery quota check", memberNo, err)
	}
	if !st.Allowed {
		return &autherror.RateLimitedError{RetryAfterMinutes: st.RetryAfterMinutes}
	}

	member, err := s.repo.FindByMemberNo(ctx, memberNo)
	if err != nil {
		return s.unavailable("member lookup", memberNo, err)
	}
	if member == nil || member.Email == "" {
		return nil
	}

	if !member.HasPendingRecovery() {
		return autherror.ErrNoActiveRecovery
	}

	if err := s.limiter.RecordRequest(ctx, memberNo); err != nil {
		return s.unavailable("recovery quota update", memberNo, err)
	}

	code, err := s.otp.Issue(ctx, member)
	if err != nil {
		return s.unavailable("recovery code issue", memberNo, err)
	}

	if err := s.mail.Send(ctx, member.Email, otpSubject, otpBody(member.FullName, code)); err != nil {
		log.Printf("warn: failed to send recovery code to member %s: %v", memberNo, err)
	}

	return nil
}

// ChangePasscode updates the passcode for an authenticated member after
// re-verifying the current one. No lockout or quota coupling here.
func (s *AuthService) ChangePasscode(ctx context.Context, memberNo string, input dto.ChangePasscodeInput) error {
	if len(input.NewPasscode) < constant.MinPasscodeLength {
		return autherror.ErrPasscodeTooShort
	}

	member, err := s.repo.FindByMemberNo(ctx, memberNo)
	if err != nil {
		return s.unavailable("member lookup", memberNo, err)
	}
	if member == nil || !member.Activated() {
		return autherror.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasscodeHash), []byte(input.CurrentPasscode)) != nil {
		return autherror.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPasscode), bcrypt.DefaultCost)
	if err != nil {
		return s.unavailable("passcode hashing", memberNo, err)
	}

	if err := s.repo.UpdatePasscode(ctx, member.ID, string(hash)); err != nil {
		return s.unavailable("passcode update", memberNo, err)
	}

	return nil
}

// ResetPasscode is ChangePasscode plus the weak-secret rules: the new
// passcode must differ from the old one and from the stored phone number.
func (s *AuthService) ResetPasscode(ctx context.Context, memberNo string, input dto.ResetPasscodeInput) error {
	if len(input.NewPasscode) < constant.MinPasscodeLength {
		return autherror.ErrPasscodeTooShort
	}
	if input.OldPasscode == input.NewPasscode {
		return autherror.ErrPasscodeUnchanged
	}

	member, err := s.repo.FindByMemberNo(ctx, memberNo)
	if err != nil {
		return s.unavailable("member lookup", memberNo, err)
	}
	if member == nil || !member.Activated() {
		return autherror.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(member.PasscodeHash), []byte(input.OldPasscode)) != nil {
		return autherror.ErrInvalidCredentials
	}

	if member.Phone != "" && input.NewPasscode == member.Phone {
		return autherror.ErrPasscodeIsPhone
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPasscode), bcrypt.DefaultCost)
	if err != nil {
		return s.unavailable("passcode hashing", memberNo, err)
	}

	if err := s.repo.UpdatePasscode(ctx, member.ID, string(hash)); err != nil {
		return s.unavailable("passcode update", memberNo, err)
	}

	return nil
}

// unavailable logs the underlying error with identifying context and returns
// the generic service error the caller is allowed to see.
func (s *AuthService) unavailable(op, memberNo string, err error) error {
	log.Printf("warn: %s failed for member %s: %v", op, memberNo, err)
	return autherror.ErrServiceUnavailable
}

const (
	otpSubject     = "Your passcode recovery code"
	confirmSubject = "Your passcode has been changed"
)

func otpBody(name, code string) string {
	return fmt.Sprintf("Hello %s,\n\nYour passcode recovery code is %s. It expires in %d minutes.\n\nIf you did not request this, you can ignore this message.",
		name, code, int(constant.OTPValidity.Minutes()))
}

func confirmBody(name string) string {
	return fmt.Sprintf("Hello %s,\n\nYour passcode was changed just now. If this was not you, contact the cooperative office immediately.", name)
}
