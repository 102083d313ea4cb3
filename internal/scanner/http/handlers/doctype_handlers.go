package handlers

import (
	"github.com/gofiber/fiber/v3"

	"docscan/internal/scanner/domain/entities"
)

// DocTypes обрабатывает GET /doc-types.
func DocTypes(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		string(entities.CategoryDocument): entities.DocumentTypes,
		string(entities.CategoryImage):    entities.ImageTypes,
	})
}
