// Package app содержит прикладные сценарии сканера: вход, профиль, сотрудники,
// очередь документов на бэкенде и локальная библиотека сканов.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"regexp"
	"strings"

	"docscan/internal/scanner/resilience"
	"docscan/internal/scanner/session"
)

var absoluteURLPattern = regexp.MustCompile(`(?i)^https?://`)

// absoluteURL делает путь медиафайла абсолютным относительно base.
func absoluteURL(base, pathOrURL string) string {
	if pathOrURL == "" {
		return ""
	}
	if absoluteURLPattern.MatchString(pathOrURL) {
		return pathOrURL
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(pathOrURL, "/")
}

// shouldRetryBackend повторяет сетевые сбои и ответы 5xx. 4xx и отмена не повторяются.
func shouldRetryBackend(err error) bool {
	var apiErr *session.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return !errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded) &&
		!errors.Is(err, resilience.ErrCircuitOpen) &&
		!session.IsSessionError(err)
}

type formField struct {
	name  string
	value string
}

type formFile struct {
	field    string
	filename string
	mimeType string
	path     string
}

// buildMultipart собирает тело multipart/form-data.
func buildMultipart(fields []formField, file *formFile) (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return "", nil, fmt.Errorf("write form field %s: %w", f.name, err)
		}
	}

	if file != nil {
		src, err := os.Open(file.path)
		if err != nil {
			return "", nil, fmt.Errorf("open upload file: %w", err)
		}
		defer src.Close()

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.filename))
		header.Set("Content-Type", file.mimeType)

		part, err := w.CreatePart(header)
		if err != nil {
			return "", nil, fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, src); err != nil {
			return "", nil, fmt.Errorf("copy upload file: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("close multipart body: %w", err)
	}
	return w.FormDataContentType(), buf.Bytes(), nil
}
