// Package session поддерживает действующий bearer токен для всех запросов к бэкенду:
// подставляет токен, обновляет его заранее перед истечением и повторяет запрос
// после 401/403 с однократным обновлением. Одновременные обновления объединяются в одно.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/ports/repositories"
	"docscan/internal/scanner/ports/services"
	"docscan/pkg/logger"
)

// Пути эндпоинтов токенов.
const (
	LoginPath   = "/rest_api/token/"
	RefreshPath = "/rest_api/token/refresh/"
)

// Значения по умолчанию.
const (
	DefaultTimeout       = 15 * time.Second
	DefaultRefreshWindow = 60 * time.Second
)

// Константы для логирования.
const (
	methodInitialize = "Initialize"
	methodRefresh    = "Refresh"

	LogSessionLoaded    = "session loaded from credential store"
	LogSessionSet       = "session replaced"
	LogRefreshStarted   = "token refresh started"
	LogRefreshSucceeded = "token refresh succeeded"
	LogRefreshJoined    = "joined in-flight token refresh"
	LogRefreshReused    = "token already rotated, reusing current token"
	LogSessionEnded     = "session ended, credentials cleared"
	LogRetryAfterAuth   = "retrying request after authentication failure"
	LogDiscardRefresh   = "session replaced during refresh, result discarded"

	ErrorLoadCredentials  = "failed to load credentials"
	ErrorSaveCredentials  = "failed to persist refreshed credentials"
	ErrorClearCredentials = "failed to clear credentials"
	ErrorRefresh          = "token refresh failed"
	ErrorInvalidStored    = "stored credentials are incomplete, ignoring"
)

// Config - параметры клиента сессии.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RefreshWindow time.Duration
}

// Option настраивает Client.
type Option func(*Client)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

type refreshOutcome struct {
	token string
	err   error
}

// Client - HTTP клиент бэкенда с прозрачным обновлением токенов.
// Создается один раз на процесс и передается всем вызывающим.
type Client struct {
	baseURL   string
	timeout   time.Duration
	window    time.Duration
	transport services.Transport
	store     repositories.CredentialStore
	codec     services.TokenCodec
	notifier  *LogoutNotifier
	now       func() time.Time

	mu         sync.Mutex
	current    *entities.TokenPair
	refreshing bool
	waiters    []chan refreshOutcome
}

// NewClient создает клиент сессии без загруженных токенов.
func NewClient(
	cfg Config,
	transport services.Transport,
	store repositories.CredentialStore,
	codec services.TokenCodec,
	notifier *LogoutNotifier,
	opts ...Option,
) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RefreshWindow <= 0 {
		cfg.RefreshWindow = DefaultRefreshWindow
	}
	if notifier == nil {
		notifier = NewLogoutNotifier()
	}

	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   cfg.Timeout,
		window:    cfg.RefreshWindow,
		transport: transport,
		store:     store,
		codec:     codec,
		notifier:  notifier,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает адрес бэкенда без завершающего слэша.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Notifier возвращает уведомитель о завершении сессии.
func (c *Client) Notifier() *LogoutNotifier {
	return c.notifier
}

// Initialize загружает последнюю сохраненную пару токенов. Сетевых вызовов нет.
func (c *Client) Initialize(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodInitialize))

	pair, err := c.store.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrorLoadCredentials, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorLoadCredentials, err)
	}

	if pair != nil && !pair.Valid() {
		log.Warn(ctx, ErrorInvalidStored)
		pair = nil
	}
	if pair != nil && pair.AccessExp == 0 {
		if exp, ok := c.codec.DecodeExpiry(pair.AccessToken); ok {
			pair.AccessExp = exp
		}
	}

	c.mu.Lock()
	c.current = pair
	c.mu.Unlock()

	log.Info(ctx, LogSessionLoaded, zap.Bool("authenticated", pair != nil))
	return nil
}

// SetSession заменяет пару токенов только в памяти. nil завершает сессию в памяти.
func (c *Client) SetSession(pair *entities.TokenPair) {
	c.mu.Lock()
	c.current = pair.Clone()
	c.mu.Unlock()
}

// Session возвращает копию текущей пары токенов или nil.
func (c *Client) Session() *entities.TokenPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Clone()
}

// snapshot возвращает текущий access токен и признак скорого истечения.
func (c *Client) snapshot() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return "", false
	}
	return c.current.AccessToken, c.current.ExpiresWithin(c.now(), c.window)
}

func (c *Client) currentAccessLocked() string {
	if c.current == nil {
		return ""
	}
	return c.current.AccessToken
}
