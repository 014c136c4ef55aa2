package handlers

import (
	"github.com/arzan03/newsroom/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UploadHandler serves /uploads.
type UploadHandler struct {
	uploads *services.UploadService
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// UploadImage stores the multipart "file" field and returns its public URL.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	upload, err := h.uploads.UploadImage(
		c.UserContext(),
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		fileHeader.Size,
		file,
	)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(upload)
}
