package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/http/middleware"
	"docscan/internal/scanner/ports/services"
	"docscan/pkg/logger"
)

// DocumentHandler обслуживает локальную библиотеку сканов.
type DocumentHandler struct {
	library services.LibraryService
}

// NewDocumentHandler создает обработчик библиотеки.
func NewDocumentHandler(library services.LibraryService) *DocumentHandler {
	return &DocumentHandler{library: library}
}

// List обрабатывает GET /documents.
func (h *DocumentHandler) List(c fiber.Ctx) error {
	docs, err := h.library.List(middleware.RequestContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(docs)
}

// Create обрабатывает POST /documents с телом {"images": [...]}.
func (h *DocumentHandler) Create(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	var req dto.AddDocumentRequest
	if err := c.Bind().JSON(&req); err != nil {
		logger.Log(requestCtx).Warn(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return badRequest(c, ErrorInvalidRequest)
	}

	doc, err := h.library.AddFromImages(requestCtx, req.Images)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// Delete обрабатывает DELETE /documents/:id.
func (h *DocumentHandler) Delete(c fiber.Ctx) error {
	if err := h.library.Remove(middleware.RequestContext(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
