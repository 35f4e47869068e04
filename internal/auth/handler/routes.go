package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	app.Post("/api/v1/login", h.Login)
	app.Post("/api/v1/forgot-passcode", h.ForgotPasscode)
	app.Post("/api/v1/verify-otp", h.VerifyOTP)
	app.Post("/api/v1/resend-otp", h.ResendOTP)

	// Authenticated endpoints
	secured := app.Group("/api/v1", h.RequireAuth)
	secured.Post("/change-passcode", h.ChangePasscode)
	secured.Post("/reset-passcode", h.ResetPasscode)
}
