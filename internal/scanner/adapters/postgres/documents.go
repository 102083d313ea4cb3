package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/ports/repositories"
	"docscan/pkg/logger"
)

const (
	ErrListDocuments  = "failed to list documents"
	ErrGetDocument    = "failed to get document"
	ErrSaveDocument   = "failed to save document"
	ErrDeleteDocument = "failed to delete document"
	ErrScanDocument   = "failed to scan document"
)

const (
	listDocumentsSQL = `SELECT id, pages, pdf_path, created_at FROM documents ORDER BY created_at DESC, id DESC`
	getDocumentSQL   = `SELECT id, pages, pdf_path, created_at FROM documents WHERE id = $1`
	saveDocumentSQL  = `INSERT INTO documents (id, pages, pdf_path, created_at) VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET pages = EXCLUDED.pages, pdf_path = EXCLUDED.pdf_path, created_at = EXCLUDED.created_at`
	deleteDocumentSQL = `DELETE FROM documents WHERE id = $1`
)

// DocumentRepository хранит индекс документов в таблице documents.
type DocumentRepository struct {
	pool Pool
}

// NewDocumentRepository создает репозиторий документов.
func NewDocumentRepository(pool Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// List возвращает документы, новые первыми.
func (r *DocumentRepository) List(ctx context.Context) ([]entities.Document, error) {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.List"))

	rows, err := r.pool.Query(ctx, listDocumentsSQL)
	if err != nil {
		log.Error(ctx, ErrListDocuments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListDocuments, err)
	}
	defer rows.Close()

	docs := make([]entities.Document, 0)
	for rows.Next() {
		var doc entities.Document
		if err := rows.Scan(&doc.ID, &doc.Pages, &doc.PDFPath, &doc.CreatedAt); err != nil {
			log.Error(ctx, ErrScanDocument, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanDocument, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListDocuments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListDocuments, err)
	}

	return docs, nil
}

// Get возвращает документ по идентификатору.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*entities.Document, error) {
	var doc entities.Document
	err := r.pool.QueryRow(ctx, getDocumentSQL, id).Scan(&doc.ID, &doc.Pages, &doc.PDFPath, &doc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repositories.ErrDocumentNotFound
	}
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrGetDocument, zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetDocument, err)
	}
	return &doc, nil
}

// Save вставляет или заменяет документ.
func (r *DocumentRepository) Save(ctx context.Context, doc *entities.Document) error {
	if _, err := r.pool.Exec(ctx, saveDocumentSQL, doc.ID, doc.Pages, doc.PDFPath, doc.CreatedAt); err != nil {
		logger.Log(ctx).Error(ctx, ErrSaveDocument, zap.String("id", doc.ID), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSaveDocument, err)
	}
	return nil
}

// Delete удаляет документ.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteDocumentSQL, id)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrDeleteDocument, zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteDocument, err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrDocumentNotFound
	}
	return nil
}
