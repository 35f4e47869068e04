package handler

import (
	"errors"

	"github.com/andrianpratama/member-auth-service/internal/auth/dto"
	"github.com/andrianpratama/member-auth-service/internal/auth/service"
	autherror "github.com/andrianpratama/member-auth-service/internal/errors"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  *service.AuthService
	tokenService service.TokenGenerator
}

func NewAuthHandler(authService *service.AuthService, tokenService service.TokenGenerator) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	resp, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) ForgotPasscode(c *fiber.Ctx) error {
	var input dto.ForgotPasscodeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.authService.ForgotPasscode(c.Context(), input.Handle); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.RecoveryAck{
		Message: "if the member number exists, a recovery code has been sent",
	})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var input dto.VerifyOTPInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.authService.VerifyOTP(c.Context(), input); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.RecoveryAck{Message: "passcode updated"})
}

func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var input dto.ResendOTPInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.authService.ResendOTP(c.Context(), input.Handle); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.RecoveryAck{
		Message: "if the member number exists, a recovery code has been sent",
	})
}

func (h *AuthHandler) ChangePasscode(c *fiber.Ctx) error {
	var input dto.ChangePasscodeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	memberNo, _ := c.Locals(localMemberNo).(string)
	if err := h.authService.ChangePasscode(c.Context(), memberNo, input); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "passcode updated"})
}

func (h *AuthHandler) ResetPasscode(c *fiber.Ctx) error {
	var input dto.ResetPasscodeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	memberNo, _ := c.Locals(localMemberNo).(string)
	if err := h.authService.ResetPasscode(c.Context(), memberNo, input); err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "passcode updated"})
}

// writeError maps service errors onto HTTP statuses. Store failures reach the
// client only as the generic 503 message.
func writeError(c *fiber.Ctx, err error) error {
	var invalidCreds *autherror.InvalidCredentialsError
	if errors.As(err, &invalidCreds) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":              invalidCreds.Error(),
			"attempts_remaining": invalidCreds.AttemptsRemaining,
		})
	}

	var rateLimited *autherror.RateLimitedError
	if errors.As(err, &rateLimited) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":               rateLimited.Error(),
			"retry_after_minutes": rateLimited.RetryAfterMinutes,
		})
	}

	switch {
	case errors.Is(err, autherror.ErrInvalidHandle),
		errors.Is(err, autherror.ErrOTPFormat),
		errors.Is(err, autherror.ErrPasscodeTooShort),
		errors.Is(err, autherror.ErrPasscodeIsPhone),
		errors.Is(err, autherror.ErrPasscodeUnchanged),
		errors.Is(err, autherror.ErrNoActiveRecovery):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrAccountLocked):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrNotActivated):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, autherror.ErrInvalidOTP),
		errors.Is(err, autherror.ErrOTPExpired),
		errors.Is(err, autherror.ErrInvalidCredentials),
		errors.Is(err, autherror.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": autherror.ErrServiceUnavailable.Error(),
		})
	}
}
