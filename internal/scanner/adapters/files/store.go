// Package files раскладывает страницы и PDF библиотеки в каталоге на диске.
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"docscan/pkg/logger"
)

const (
	imagesDir = "images"

	ErrCopyFile   = "failed to copy file"
	ErrRemoveFile = "failed to remove file"
)

// Store - файловое хранилище с корнем root:
// страницы в <root>/images/<id>_<idx>.<ext>, PDF в <root>/scan_<id>.pdf.
type Store struct {
	root string
}

// NewStore создает хранилище.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root возвращает корневой каталог.
func (s *Store) Root() string {
	return s.root
}

// ImagePath возвращает путь страницы.
func (s *Store) ImagePath(id string, idx int, ext string) string {
	return filepath.Join(s.root, imagesDir, id+"_"+strconv.Itoa(idx)+"."+ext)
}

// PDFPath возвращает путь PDF.
func (s *Store) PDFPath(id string) string {
	return filepath.Join(s.root, "scan_"+id+".pdf")
}

// Copy копирует src в dst через временный файл.
func (s *Store) Copy(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		logger.Log(ctx).Error(ctx, ErrCopyFile, zap.String("src", src), zap.String("dst", dst), zap.Error(err))
		return fmt.Errorf("%s %s: %w", ErrCopyFile, src, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".copy-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// Remove удаляет файлы. Отсутствующие файлы пропускаются, остальные ошибки объединяются.
func (s *Store) Remove(ctx context.Context, paths ...string) error {
	var errs []error
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Log(ctx).Warn(ctx, ErrRemoveFile, zap.String("path", p), zap.Error(err))
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", ErrRemoveFile, errors.Join(errs...))
	}
	return nil
}
