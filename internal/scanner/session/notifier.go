package session

import (
	"context"
	"sync"
)

// LogoutNotifier сообщает приложению, что сессию восстановить нельзя.
// Подписчик один: повторный OnLogout заменяет предыдущий обработчик.
type LogoutNotifier struct {
	mu sync.RWMutex
	cb func(ctx context.Context)
}

// NewLogoutNotifier создает уведомитель без подписчика.
func NewLogoutNotifier() *LogoutNotifier {
	return &LogoutNotifier{}
}

// OnLogout регистрирует обработчик. nil снимает подписку.
func (n *LogoutNotifier) OnLogout(fn func(ctx context.Context)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cb = fn
}

// Trigger вызывает обработчик, если он зарегистрирован.
func (n *LogoutNotifier) Trigger(ctx context.Context) {
	n.mu.RLock()
	cb := n.cb
	n.mu.RUnlock()

	if cb != nil {
		cb(ctx)
	}
}
