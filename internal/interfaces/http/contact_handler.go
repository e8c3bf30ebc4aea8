package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/madson-lima/totalfilter-backend/internal/application"
	"go.uber.org/zap"
)

type ContactHandler struct {
	service *application.ContactService
	logger  *zap.Logger
}

func NewContactHandler(service *application.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{service: service, logger: logger}
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	type Request struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	msg, err := h.service.Create(c.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	messages, err := h.service.List(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(messages)
}

func (h *ContactHandler) UpdateStatus(c *fiber.Ctx) error {
	type Request struct {
		Status string `json:"status"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.UpdateStatus(c.Context(), c.Params("id"), req.Status); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Status updated"})
}
