package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/session"
	"docscan/pkg/logger"
)

const (
	waitDocumentPath   = "/waitdocument/"
	scannedDocsPath    = "/documentescanate/"
	defaultListLength  = 20
	fallbackPDFName    = "document.pdf"
	fallbackImageName  = "imagine.jpg"
	uploadFileField    = "file"
	methodCreateWait   = "CreateWaitDocument"
	methodListWaitDocs = "ListWaitDocuments"

	msgUploadingDocument = "uploading document to wait queue"
	msgDocumentUploaded  = "document uploaded"

	msgErrUpload = "failed to upload document"
	msgErrList   = "failed to list wait documents"

	errCtxValidatingPayload = "validating payload"
	errCtxBuildingForm      = "building form"
	errCtxUploading         = "uploading document"
	errCtxListing           = "listing wait documents"
)

// WaitDocumentUseCase загружает документы в очередь подтверждения и листает ее.
type WaitDocumentUseCase struct {
	client *session.Client
}

// NewWaitDocumentUseCase создает сценарий очереди документов.
func NewWaitDocumentUseCase(client *session.Client) *WaitDocumentUseCase {
	return &WaitDocumentUseCase{client: client}
}

// Create отправляет файл filePath с полями payload. Категория на сервер не передается.
func (w *WaitDocumentUseCase) Create(ctx context.Context, payload *dto.WaitDocumentPayload, filePath string) (map[string]any, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateWait), zap.String("tip", payload.Tip))

	if filePath == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPayload, entities.ErrEmptyFilePath)
	}
	category := payload.Category
	if category == "" {
		c, ok := entities.CategoryOf(payload.Tip)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %q", errCtxValidatingPayload, entities.ErrUnknownDocType, payload.Tip)
		}
		category = c
	} else if _, ok := entities.CategoryOf(payload.Tip); !ok {
		return nil, fmt.Errorf("%s: %w: %q", errCtxValidatingPayload, entities.ErrUnknownDocType, payload.Tip)
	}

	fallback := fallbackImageName
	if category == entities.CategoryDocument {
		fallback = fallbackPDFName
	}
	filename := uploadName(filePath, fallback)

	contentType, body, err := buildMultipart(waitDocumentFields(payload), &formFile{
		field:    uploadFileField,
		filename: filename,
		mimeType: guessMime(filename),
		path:     filePath,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxBuildingForm, err)
	}

	log.Info(ctx, msgUploadingDocument, zap.String("file", filename), zap.String("category", string(category)))

	resp, err := w.client.Request(ctx, http.MethodPost, waitDocumentPath, session.WithBody(contentType, body))
	if err != nil {
		log.Error(ctx, msgErrUpload, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUploading, err)
	}

	var created map[string]any
	if err := session.DecodeJSON(resp, &created); err != nil {
		log.Warn(ctx, msgErrUpload, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUploading, err)
	}

	log.Info(ctx, msgDocumentUploaded)
	return created, nil
}

// List возвращает страницу очереди в формате DataTables.
func (w *WaitDocumentUseCase) List(ctx context.Context, opts dto.WaitDocumentListOptions) (*entities.WaitDocumentList, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListWaitDocs))

	contentType, body, err := buildMultipart(listFields(opts), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxBuildingForm, err)
	}

	resp, err := w.client.Request(ctx, http.MethodPost, scannedDocsPath, session.WithBody(contentType, body))
	if err != nil {
		log.Error(ctx, msgErrList, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}

	var page dto.WaitDocumentListResponse
	if err := session.DecodeJSON(resp, &page); err != nil {
		log.Warn(ctx, msgErrList, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}

	rows := page.Data
	if rows == nil {
		rows = []entities.WaitDocument{}
	}
	for i := range rows {
		rows[i].FileURL = w.MediaURL(rows[i].File)
	}

	return &entities.WaitDocumentList{
		Rows:     rows,
		Total:    numberOrZero(page.RecordsTotal.String()),
		Filtered: numberOrZero(page.RecordsFiltered.String()),
	}, nil
}

// MediaURL возвращает абсолютный URL медиафайла бэкенда.
func (w *WaitDocumentUseCase) MediaURL(pathOrURL string) string {
	return absoluteURL(w.client.BaseURL(), pathOrURL)
}

func waitDocumentFields(p *dto.WaitDocumentPayload) []formField {
	fields := make([]formField, 0, 5)
	if p.Angajat != nil {
		fields = append(fields, formField{"angajat", strconv.FormatInt(*p.Angajat, 10)})
	}
	fields = append(fields, formField{"tip", p.Tip})
	if p.Subtip != nil {
		fields = append(fields, formField{"subtip", *p.Subtip})
	}
	if p.Note != nil {
		fields = append(fields, formField{"note", *p.Note})
	}
	if p.Aproved != nil {
		fields = append(fields, formField{"aproved", strconv.FormatBool(*p.Aproved)})
	}
	return fields
}

func listFields(opts dto.WaitDocumentListOptions) []formField {
	length := opts.Length
	if length <= 0 {
		length = defaultListLength
	}
	dir := strings.ToLower(opts.OrderDir)
	if dir != dto.OrderAsc {
		dir = dto.OrderDesc
	}
	col := opts.OrderCol
	if col < 0 || col >= len(entities.WaitDocumentColumns) {
		col = 0
	}

	fields := make([]formField, 0, len(entities.WaitDocumentColumns)+7)
	for i, c := range entities.WaitDocumentColumns {
		fields = append(fields, formField{fmt.Sprintf("columns[%d][data]", i), c})
	}
	fields = append(fields,
		formField{"start", strconv.Itoa(max(opts.Start, 0))},
		formField{"length", strconv.Itoa(length)},
		formField{"draw", "1"},
	)
	if opts.Search != "" {
		fields = append(fields, formField{"search[value]", opts.Search})
	}
	if opts.Aproved != nil {
		fields = append(fields, formField{"aproved", strconv.Itoa(*opts.Aproved)})
	}
	fields = append(fields,
		formField{"order[0][column]", strconv.Itoa(col)},
		formField{"order[0][dir]", dir},
	)
	return fields
}

func uploadName(path, fallback string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) || !strings.Contains(name, ".") {
		return fallback
	}
	return name
}

func guessMime(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	default:
		return "image/jpeg"
	}
}

func numberOrZero(s string) int {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return int(n)
	}
	return 0
}
