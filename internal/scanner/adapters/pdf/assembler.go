// Package pdf собирает PDF из отсканированных страниц.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // регистрирует декодер JPEG для image.DecodeConfig
	_ "image/png"  // регистрирует декодер PNG для image.DecodeConfig
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"docscan/pkg/logger"
)

// ErrNoPages возвращается при сборке без страниц.
var ErrNoPages = errors.New("no pages to assemble")

const (
	LogAssembled = "pdf assembled"

	ErrReadImage   = "failed to read page image"
	ErrUnsupported = "unsupported page image format"
	ErrWritePDF    = "failed to write pdf"
)

// Assembler кладет каждое изображение на отдельную страницу размером с изображение (1px = 1pt).
type Assembler struct{}

// NewAssembler создает Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble собирает imagePaths в destPath.
func (a *Assembler) Assemble(ctx context.Context, imagePaths []string, destPath string) error {
	if len(imagePaths) == 0 {
		return ErrNoPages
	}

	doc := fpdf.NewCustom(&fpdf.InitType{UnitStr: "pt"})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	for _, path := range imagePaths {
		if err := ctx.Err(); err != nil {
			return err
		}

		w, h, kind, err := imageInfo(path)
		if err != nil {
			return err
		}

		doc.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		doc.ImageOptions(path, 0, 0, w, h, false, fpdf.ImageOptions{ImageType: kind}, 0, "")
		if err := doc.Error(); err != nil {
			return fmt.Errorf("%s %s: %w", ErrReadImage, path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("%s: %w", ErrWritePDF, err)
	}
	if err := doc.OutputFileAndClose(destPath); err != nil {
		return fmt.Errorf("%s: %w", ErrWritePDF, err)
	}

	logger.Log(ctx).Debug(ctx, LogAssembled,
		zap.String("path", destPath),
		zap.Int("pages", len(imagePaths)))
	return nil
}

func imageInfo(path string) (float64, float64, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, "", fmt.Errorf("%s %s: %w", ErrReadImage, path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, "", fmt.Errorf("%s %s: %w", ErrReadImage, path, err)
	}

	var kind string
	switch strings.ToLower(format) {
	case "jpeg":
		kind = "JPG"
	case "png":
		kind = "PNG"
	default:
		return 0, 0, "", fmt.Errorf("%s: %s", ErrUnsupported, format)
	}
	return float64(cfg.Width), float64(cfg.Height), kind, nil
}
