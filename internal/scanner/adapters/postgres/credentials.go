package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"docscan/internal/scanner/domain/entities"
	"docscan/pkg/logger"
)

// CredentialsKey - ключ строки с парой токенов.
const CredentialsKey = "AUTH_TOKENS_V1"

const (
	ErrSaveCredentials  = "failed to save credentials"
	ErrLoadCredentials  = "failed to load credentials"
	ErrClearCredentials = "failed to clear credentials"
)

const (
	upsertCredentialsSQL = `INSERT INTO credentials (key, access_token, refresh_token, access_exp, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (key) DO UPDATE SET access_token = EXCLUDED.access_token,
    refresh_token = EXCLUDED.refresh_token, access_exp = EXCLUDED.access_exp, updated_at = now()`
	selectCredentialsSQL = `SELECT access_token, refresh_token, access_exp FROM credentials WHERE key = $1`
	deleteCredentialsSQL = `DELETE FROM credentials WHERE key = $1`
)

// CredentialStore хранит пару токенов в таблице credentials.
type CredentialStore struct {
	pool Pool
}

// NewCredentialStore создает хранилище учетных данных.
func NewCredentialStore(pool Pool) *CredentialStore {
	return &CredentialStore{pool: pool}
}

// Save записывает пару токенов.
func (s *CredentialStore) Save(ctx context.Context, pair *entities.TokenPair) error {
	if _, err := s.pool.Exec(ctx, upsertCredentialsSQL,
		CredentialsKey, pair.AccessToken, pair.RefreshToken, pair.AccessExp); err != nil {
		logger.Log(ctx).Error(ctx, ErrSaveCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSaveCredentials, err)
	}
	return nil
}

// Load читает пару токенов, nil если сессии нет.
func (s *CredentialStore) Load(ctx context.Context) (*entities.TokenPair, error) {
	var pair entities.TokenPair
	err := s.pool.QueryRow(ctx, selectCredentialsSQL, CredentialsKey).
		Scan(&pair.AccessToken, &pair.RefreshToken, &pair.AccessExp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrLoadCredentials, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrLoadCredentials, err)
	}
	return &pair, nil
}

// Clear удаляет пару токенов.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, deleteCredentialsSQL, CredentialsKey); err != nil {
		logger.Log(ctx).Error(ctx, ErrClearCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrClearCredentials, err)
	}
	return nil
}
