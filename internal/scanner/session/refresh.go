package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/domain/entities"
	"docscan/pkg/logger"
)

// Refresh принудительно обновляет access токен текущей сессии.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	token, _ := c.snapshot()
	return c.refreshFor(ctx, token)
}

// refreshFor обновляет токен, если observed все еще текущий. Если обновление уже идет,
// вызывающий встает в очередь и получает тот же результат. Если токен сменился,
// пока вызывающий работал со старым, возвращается текущий без сетевого вызова.
func (c *Client) refreshFor(ctx context.Context, observed string) (string, error) {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan refreshOutcome, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		logger.Log(ctx).Debug(ctx, LogRefreshJoined)

		select {
		case out := <-ch:
			return out.token, out.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if current := c.currentAccessLocked(); current != observed {
		c.mu.Unlock()
		if current == "" {
			return "", ErrSessionEnded
		}
		logger.Log(ctx).Debug(ctx, LogRefreshReused)
		return current, nil
	}

	c.refreshing = true
	c.mu.Unlock()

	token, err := c.refresh(ctx)

	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, w := range waiters {
		w <- refreshOutcome{token: token, err: err}
	}
	return token, err
}

// refresh выполняет одно обращение к эндпоинту обновления.
// Работает независимо от отмены ctx вызывающего, ограничено таймаутом клиента.
func (c *Client) refresh(ctx context.Context) (string, error) {
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	log := logger.Log(rctx).With(zap.String("method", methodRefresh))

	c.mu.Lock()
	prev := c.current.Clone()
	c.mu.Unlock()

	if prev == nil || prev.RefreshToken == "" {
		log.Warn(rctx, ErrorRefresh, zap.Error(ErrNoRefreshToken))
		c.endSession(rctx, prev)
		return "", ErrNoRefreshToken
	}

	log.Info(rctx, LogRefreshStarted)

	next, err := c.exchange(rctx, prev.RefreshToken)
	if err != nil {
		log.Error(rctx, ErrorRefresh, zap.Error(err))
		c.endSession(rctx, prev)
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}
	if next.RefreshToken == "" {
		next.RefreshToken = prev.RefreshToken
	}

	c.mu.Lock()
	if c.current == nil || c.current.RefreshToken != prev.RefreshToken {
		current := c.currentAccessLocked()
		c.mu.Unlock()
		log.Warn(rctx, LogDiscardRefresh)
		if current == "" {
			return "", ErrSessionEnded
		}
		return current, nil
	}
	c.current = next.Clone()
	c.mu.Unlock()

	if err := c.store.Save(rctx, next); err != nil {
		log.Error(rctx, ErrorSaveCredentials, zap.Error(err))
	}

	log.Info(rctx, LogRefreshSucceeded, zap.Int64("access_exp", next.AccessExp))
	return next.AccessToken, nil
}

// exchange отправляет refresh токен и разбирает ответ. Токен в заголовок не ставится.
func (c *Client) exchange(ctx context.Context, refreshToken string) (*entities.TokenPair, error) {
	req := &pendingRequest{
		method: http.MethodPost,
		path:   RefreshPath,
		header: make(http.Header),
	}
	WithJSON(dto.RefreshRequest{Refresh: refreshToken})(req)
	if req.err != nil {
		return nil, req.err
	}

	resp, err := c.execute(ctx, req, "")
	if err != nil {
		return nil, err
	}

	var body dto.RefreshResponse
	if err := DecodeJSON(resp, &body); err != nil {
		return nil, err
	}
	if body.Access == "" {
		return nil, ErrMissingAccessToken
	}

	pair := &entities.TokenPair{
		AccessToken:  body.Access,
		RefreshToken: body.Refresh,
	}
	if exp, ok := c.codec.DecodeExpiry(body.Access); ok {
		pair.AccessExp = exp
	}
	return pair, nil
}

// endSession очищает сессию и уведомляет подписчика. Если сессию уже заменили,
// пока шло обновление, ничего не делает.
func (c *Client) endSession(ctx context.Context, prev *entities.TokenPair) {
	c.mu.Lock()
	if !samePair(c.current, prev) {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		logger.Log(ctx).Error(ctx, ErrorClearCredentials, zap.Error(err))
	}

	logger.Log(ctx).Warn(ctx, LogSessionEnded)
	c.notifier.Trigger(ctx)
}

func samePair(a, b *entities.TokenPair) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.AccessToken == b.AccessToken && a.RefreshToken == b.RefreshToken
}

// IsSessionError сообщает, что ошибка вызвана отсутствием или завершением сессии.
func IsSessionError(err error) bool {
	return errors.Is(err, ErrNoRefreshToken) ||
		errors.Is(err, ErrRefreshFailed) ||
		errors.Is(err, ErrSessionEnded)
}
