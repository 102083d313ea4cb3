package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/ports/repositories"
	"docscan/internal/scanner/ports/services"
	"docscan/pkg/logger"
)

const (
	copyConcurrency = 4

	methodAddDocument    = "AddFromImages"
	methodRemoveDocument = "RemoveDocument"

	msgDocumentCreated = "document created"
	msgDocumentRemoved = "document removed"

	msgErrCleanup = "failed to clean up document files"

	errCtxCopyingPages   = "copying pages"
	errCtxAssemblingPDF  = "assembling pdf"
	errCtxSavingDocument = "saving document"
	errCtxListDocuments  = "listing documents"
	errCtxFindDocument   = "finding document"
	errCtxRemovingFiles  = "removing document files"
	errCtxDeleteDocument = "deleting document"
)

// LibraryUseCase управляет локальной библиотекой сканов.
type LibraryUseCase struct {
	repo  repositories.DocumentRepository
	files services.FileStore
	pdf   services.PDFAssembler
	now   func() time.Time
}

// NewLibraryUseCase создает сценарий библиотеки.
func NewLibraryUseCase(repo repositories.DocumentRepository, files services.FileStore, pdf services.PDFAssembler) *LibraryUseCase {
	return &LibraryUseCase{
		repo:  repo,
		files: files,
		pdf:   pdf,
		now:   time.Now,
	}
}

// List возвращает документы, новые первыми.
func (l *LibraryUseCase) List(ctx context.Context) ([]entities.Document, error) {
	docs, err := l.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListDocuments, err)
	}
	return docs, nil
}

// AddFromImages копирует страницы в библиотеку, собирает из них PDF и добавляет документ в индекс.
// При ошибке уже созданные файлы удаляются.
func (l *LibraryUseCase) AddFromImages(ctx context.Context, imagePaths []string) (*entities.Document, error) {
	if len(imagePaths) == 0 {
		return nil, entities.ErrNoImages
	}

	created := l.now()
	id := ulid.MustNew(ulid.Timestamp(created), ulid.DefaultEntropy()).String()
	log := logger.Log(ctx).With(zap.String("method", methodAddDocument), zap.String("documentID", id))

	pages := make([]string, len(imagePaths))
	for i, src := range imagePaths {
		pages[i] = l.files.ImagePath(id, i, pageExt(src))
	}
	pdfPath := l.files.PDFPath(id)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(copyConcurrency)
	for i, src := range imagePaths {
		g.Go(func() error {
			return l.files.Copy(gctx, src, pages[i])
		})
	}
	if err := g.Wait(); err != nil {
		l.cleanup(ctx, pages...)
		return nil, fmt.Errorf("%s: %w", errCtxCopyingPages, err)
	}

	if err := l.pdf.Assemble(ctx, pages, pdfPath); err != nil {
		l.cleanup(ctx, append(pages, pdfPath)...)
		return nil, fmt.Errorf("%s: %w", errCtxAssemblingPDF, err)
	}

	doc := &entities.Document{
		ID:        id,
		Pages:     pages,
		PDFPath:   pdfPath,
		CreatedAt: created.UTC(),
	}
	if err := l.repo.Save(ctx, doc); err != nil {
		l.cleanup(ctx, append(pages, pdfPath)...)
		return nil, fmt.Errorf("%s: %w", errCtxSavingDocument, err)
	}

	log.Info(ctx, msgDocumentCreated, zap.Int("pages", len(pages)))
	return doc, nil
}

// Remove удаляет файлы документа и запись в индексе.
func (l *LibraryUseCase) Remove(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodRemoveDocument), zap.String("documentID", id))

	doc, err := l.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxFindDocument, err)
	}

	if err := l.files.Remove(ctx, append(append([]string(nil), doc.Pages...), doc.PDFPath)...); err != nil {
		return fmt.Errorf("%s: %w", errCtxRemovingFiles, err)
	}

	if err := l.repo.Delete(ctx, id); err != nil && !errors.Is(err, repositories.ErrDocumentNotFound) {
		return fmt.Errorf("%s: %w", errCtxDeleteDocument, err)
	}

	log.Info(ctx, msgDocumentRemoved)
	return nil
}

func (l *LibraryUseCase) cleanup(ctx context.Context, paths ...string) {
	if err := l.files.Remove(context.WithoutCancel(ctx), paths...); err != nil {
		logger.Log(ctx).Warn(ctx, msgErrCleanup, zap.Error(err))
	}
}

func pageExt(src string) string {
	if strings.HasSuffix(strings.ToLower(src), ".png") {
		return "png"
	}
	return "jpg"
}
