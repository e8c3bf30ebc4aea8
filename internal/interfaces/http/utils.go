package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/madson-lima/totalfilter-backend/internal/domain"
	"go.uber.org/zap"
)

// respondError maps a domain error to an HTTP response. Validation, not-found
// and dependency errors carry their message to the client; everything else is
// logged and answered with a generic body so store details never leak.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindDependency:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case domain.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case domain.KindConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
