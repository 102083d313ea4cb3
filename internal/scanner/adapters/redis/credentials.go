// Package redis хранит сессию и индекс документов сканера в Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"docscan/internal/scanner/domain/entities"
	"docscan/pkg/logger"
)

// CredentialsKey - ключ пары токенов.
const CredentialsKey = "AUTH_TOKENS_V1"

// Константы для логирования.
const (
	ErrSaveCredentials   = "failed to save credentials to redis"
	ErrLoadCredentials   = "failed to load credentials from redis"
	ErrDecodeCredentials = "failed to decode stored credentials"
	ErrClearCredentials  = "failed to clear credentials in redis"
)

// CredentialStore хранит пару токенов в виде JSON без TTL.
type CredentialStore struct {
	client redis.Cmdable
}

// NewCredentialStore создает хранилище учетных данных.
func NewCredentialStore(client redis.Cmdable) *CredentialStore {
	return &CredentialStore{client: client}
}

// Save записывает пару токенов.
func (s *CredentialStore) Save(ctx context.Context, pair *entities.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrSaveCredentials, err)
	}
	if err := s.client.Set(ctx, CredentialsKey, data, 0).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrSaveCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrSaveCredentials, err)
	}
	return nil
}

// Load читает пару токенов. Поврежденная запись считается отсутствующей.
func (s *CredentialStore) Load(ctx context.Context) (*entities.TokenPair, error) {
	data, err := s.client.Get(ctx, CredentialsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logger.Log(ctx).Error(ctx, ErrLoadCredentials, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrLoadCredentials, err)
	}

	var pair entities.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		logger.Log(ctx).Warn(ctx, ErrDecodeCredentials, zap.Error(err))
		return nil, nil
	}
	return &pair, nil
}

// Clear удаляет пару токенов.
func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, CredentialsKey).Err(); err != nil {
		logger.Log(ctx).Error(ctx, ErrClearCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrClearCredentials, err)
	}
	return nil
}
