package handler

import (
	"strings"

	autherror "github.com/andrianpratama/member-auth-service/internal/errors"
	"github.com/gofiber/fiber/v2"
)

const localMemberNo = "memberNo"

// RequireAuth verifies the bearer token and stores the member number from its
// claims in the request locals. Downstream handlers must take the identity
// from there and nowhere else.
func (h *AuthHandler) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": autherror.ErrInvalidToken.Error(),
		})
	}

	claims, err := h.tokenService.VerifyToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": autherror.ErrInvalidToken.Error(),
		})
	}

	c.Locals(localMemberNo, claims.MemberNo)
	return c.Next()
}
