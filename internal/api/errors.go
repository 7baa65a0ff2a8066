package api

import (
	"errors"
	"log/slog"

	"review-service/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// writeError maps a service error onto a status code. Only unexpected
// failures are logged.
func writeError(c *fiber.Ctx, err error) error {
	var pgErr *pgconn.PgError

	switch {
	case errors.Is(err, service.ErrTokenNotFound),
		errors.Is(err, service.ErrRefreshTokenExpired),
		errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrTokenOwnerMismatch):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Resource already exists"})
	default:
		slog.ErrorContext(c.UserContext(), "request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
