package handlers

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/http/middleware"
	"docscan/internal/scanner/ports/services"
	"docscan/pkg/logger"
)

const (
	LogUploadStored = "upload stored in temporary file"

	ErrorMissingFile  = "file is required"
	ErrorInvalidQuery = "invalid query parameter"
	ErrorStoreUpload  = "failed to store upload"
)

// WaitDocumentHandler обслуживает очередь документов на бэкенде.
type WaitDocumentHandler struct {
	docs    services.WaitDocumentService
	tempDir string
}

// NewWaitDocumentHandler создает обработчик. Загрузки временно сохраняются в tempDir.
func NewWaitDocumentHandler(docs services.WaitDocumentService, tempDir string) *WaitDocumentHandler {
	return &WaitDocumentHandler{docs: docs, tempDir: tempDir}
}

// List обрабатывает GET /waitdocs.
func (h *WaitDocumentHandler) List(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)

	opts := dto.WaitDocumentListOptions{
		Search:   c.Query("search"),
		OrderDir: c.Query("order_dir"),
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"start", &opts.Start},
		{"length", &opts.Length},
		{"order_col", &opts.OrderCol},
	}
	for _, p := range ints {
		if raw := c.Query(p.key); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return badRequest(c, ErrorInvalidQuery+": "+p.key)
			}
			*p.dst = v
		}
	}
	if raw := c.Query("aproved"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || (v != 0 && v != 1) {
			return badRequest(c, ErrorInvalidQuery+": aproved")
		}
		opts.Aproved = &v
	}

	list, err := h.docs.List(requestCtx, opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(list)
}

// Create обрабатывает POST /waitdocs (multipart/form-data с файлом в поле file).
func (h *WaitDocumentHandler) Create(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	log := logger.Log(requestCtx)

	payload, err := waitDocumentPayload(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	header, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, ErrorMissingFile)
	}

	dir, err := os.MkdirTemp(h.tempDir, "upload-*")
	if err != nil {
		log.Error(requestCtx, ErrorStoreUpload, zap.Error(err))
		return respondError(c, err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(header.Filename))
	if err := c.SaveFile(header, path); err != nil {
		log.Error(requestCtx, ErrorStoreUpload, zap.Error(err))
		return respondError(c, err)
	}
	log.Debug(requestCtx, LogUploadStored, zap.String("path", path), zap.Int64("size", header.Size))

	created, err := h.docs.Create(requestCtx, payload, path)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func waitDocumentPayload(c fiber.Ctx) (*dto.WaitDocumentPayload, error) {
	payload := &dto.WaitDocumentPayload{
		Tip:      c.FormValue("tip"),
		Subtip:   optionalFormValue(c, "subtip"),
		Note:     optionalFormValue(c, "note"),
		Category: entities.DocCategory(c.FormValue("category")),
	}
	if payload.Tip == "" {
		return nil, entities.ErrUnknownDocType
	}
	if raw := c.FormValue("angajat"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		payload.Angajat = &id
	}
	if raw := c.FormValue("aproved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		payload.Aproved = &v
	}
	return payload, nil
}

// optionalFormValue отличает отсутствующее поле формы от пустого.
func optionalFormValue(c fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
