package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/madson-lima/totalfilter-backend/internal/application"
	"github.com/madson-lima/totalfilter-backend/internal/domain"
	"go.uber.org/zap"
)

type CarouselHandler struct {
	service *application.CarouselService
	logger  *zap.Logger
}

func NewCarouselHandler(service *application.CarouselService, logger *zap.Logger) *CarouselHandler {
	return &CarouselHandler{service: service, logger: logger}
}

func (h *CarouselHandler) GetImages(c *fiber.Ctx) error {
	items, err := h.service.ListImages(c.Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if items == nil {
		items = []domain.CarouselItem{}
	}
	return c.JSON(items)
}

func (h *CarouselHandler) AddImage(c *fiber.Ctx) error {
	type Request struct {
		ImageURL string `json:"imageUrl"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	item, err := h.service.AddImage(c.Context(), req.ImageURL)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *CarouselHandler) DeleteImage(c *fiber.Ctx) error {
	if err := h.service.DeleteImage(c.Context(), c.Params("id")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Image deleted"})
}

func (h *CarouselHandler) Reorder(c *fiber.Ctx) error {
	type Request struct {
		Order []string `json:"order"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.service.Reorder(c.Context(), req.Order); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Order updated"})
}
