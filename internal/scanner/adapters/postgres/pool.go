// Package postgres хранит сессию и индекс документов сканера в PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool - подмножество *pgxpool.Pool, используемое репозиториями.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool Pool
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool Pool) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// CredentialStore возвращает хранилище учетных данных.
func (f *RepositoryFactory) CredentialStore() *CredentialStore {
	return NewCredentialStore(f.pool)
}

// DocumentRepository возвращает репозиторий документов.
func (f *RepositoryFactory) DocumentRepository() *DocumentRepository {
	return NewDocumentRepository(f.pool)
}
