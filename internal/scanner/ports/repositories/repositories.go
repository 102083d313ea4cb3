// Package repositories определяет интерфейсы долговременного хранения сканера.
package repositories

import (
	"context"

	"docscan/internal/scanner/domain/entities"
)

// CredentialStore хранит пару токенов между перезапусками процесса.
// Load возвращает nil, nil, если сохраненной сессии нет.
type CredentialStore interface {
	Save(ctx context.Context, pair *entities.TokenPair) error
	Load(ctx context.Context) (*entities.TokenPair, error)
	Clear(ctx context.Context) error
}

// DocumentRepository хранит индекс локальных документов, новые первыми.
type DocumentRepository interface {
	List(ctx context.Context) ([]entities.Document, error)
	Get(ctx context.Context, id string) (*entities.Document, error)
	Save(ctx context.Context, doc *entities.Document) error
	Delete(ctx context.Context, id string) error
}
