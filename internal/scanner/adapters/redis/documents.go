package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/ports/repositories"
	"docscan/pkg/logger"
)

// DocumentsKey - ключ индекса документов.
const DocumentsKey = "DOCS_V1"

const maxTxRetries = 5

// Константы для логирования.
const (
	ErrReadDocuments  = "failed to read documents index"
	ErrWriteDocuments = "failed to write documents index"
	ErrTxConflict     = "documents index changed concurrently"
)

// DocumentRepository хранит индекс документов одним JSON массивом, новые первыми.
// Изменения выполняются в транзакции WATCH/MULTI.
type DocumentRepository struct {
	client redis.UniversalClient
}

// NewDocumentRepository создает репозиторий документов.
func NewDocumentRepository(client redis.UniversalClient) *DocumentRepository {
	return &DocumentRepository{client: client}
}

// List возвращает все документы.
func (r *DocumentRepository) List(ctx context.Context) ([]entities.Document, error) {
	docs, err := readDocuments(ctx, r.client)
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrReadDocuments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrReadDocuments, err)
	}
	return docs, nil
}

// Get возвращает документ по идентификатору.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*entities.Document, error) {
	docs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].ID == id {
			return &docs[i], nil
		}
	}
	return nil, repositories.ErrDocumentNotFound
}

// Save добавляет документ в начало индекса, заменяя запись с тем же ID.
func (r *DocumentRepository) Save(ctx context.Context, doc *entities.Document) error {
	return r.update(ctx, func(docs []entities.Document) ([]entities.Document, error) {
		out := make([]entities.Document, 0, len(docs)+1)
		out = append(out, *doc)
		for _, d := range docs {
			if d.ID != doc.ID {
				out = append(out, d)
			}
		}
		return out, nil
	})
}

// Delete удаляет документ из индекса.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.update(ctx, func(docs []entities.Document) ([]entities.Document, error) {
		out := make([]entities.Document, 0, len(docs))
		for _, d := range docs {
			if d.ID != id {
				out = append(out, d)
			}
		}
		if len(out) == len(docs) {
			return nil, repositories.ErrDocumentNotFound
		}
		return out, nil
	})
}

func (r *DocumentRepository) update(ctx context.Context, fn func([]entities.Document) ([]entities.Document, error)) error {
	txf := func(tx *redis.Tx) error {
		docs, err := readDocuments(ctx, tx)
		if err != nil {
			return err
		}
		next, err := fn(docs)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, DocumentsKey, data, 0)
			return nil
		})
		return err
	}

	for range maxTxRetries {
		err := r.client.Watch(ctx, txf, DocumentsKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return err
		}
		if err != nil {
			logger.Log(ctx).Error(ctx, ErrWriteDocuments, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrWriteDocuments, err)
		}
		return nil
	}
	return errors.New(ErrTxConflict)
}

func readDocuments(ctx context.Context, client redis.Cmdable) ([]entities.Document, error) {
	data, err := client.Get(ctx, DocumentsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return []entities.Document{}, nil
	}
	if err != nil {
		return nil, err
	}

	var docs []entities.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decode documents index: %w", err)
	}
	if docs == nil {
		docs = []entities.Document{}
	}
	return docs, nil
}
