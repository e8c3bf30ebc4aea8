package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	services "github.com/madson-lima/totalfilter-backend/internal/service"
	"go.uber.org/zap"
)

// maxUploadSize caps image uploads at 5 MiB.
const maxUploadSize = 5 * 1024 * 1024

type UploadHandler struct {
	storage *services.StorageService
	logger  *zap.Logger
}

func NewUploadHandler(storage *services.StorageService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{storage: storage, logger: logger}
}

func (h *UploadHandler) HandleUploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No image sent"})
	}

	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only image files are allowed"})
	}
	if fileHeader.Size > maxUploadSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Image exceeds the 5MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
	defer file.Close()

	url, err := h.storage.UploadImage(c.Context(), file, fileHeader)
	if err != nil {
		h.logger.Error("failed to upload file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{"imageUrl": url})
}
