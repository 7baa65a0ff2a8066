package api

import (
	"review-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type TokenHandler struct {
	tokenService service.TokenService
	validate     *validator.Validate
}

func NewTokenHandler(tokenService service.TokenService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
		validate:     validator.New(),
	}
}

type ReissueRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Check reports whether the bearer access token has expired. It never
// fails: a missing or unreadable token is reported as expired.
func (h *TokenHandler) Check(c *fiber.Ctx) error {
	tokenString, _ := bearerToken(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"expired": h.tokenService.IsExpired(tokenString),
	})
}

// Reissue swaps the bearer access token for a new one. The refresh token
// travels in the body.
func (h *TokenHandler) Reissue(c *fiber.Ctx) error {
	callerID, err := GetUserIDFromLocals(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req ReissueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	record, err := h.tokenService.Reissue(c.UserContext(), callerID, accessTokenFromLocals(c), req.RefreshToken)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(record)
}
