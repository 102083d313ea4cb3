// Package entities содержит доменные сущности сканера документов.
package entities

import "time"

// TokenPair - пара токенов текущей сессии.
// AccessExp хранит срок действия access токена в секундах Unix, 0 означает "неизвестно".
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	AccessExp    int64  `json:"accessExp,omitempty"`
}

// Valid сообщает, заполнены ли оба токена.
func (p *TokenPair) Valid() bool {
	return p != nil && p.AccessToken != "" && p.RefreshToken != ""
}

// ExpiresAt возвращает срок действия access токена, если он известен.
func (p *TokenPair) ExpiresAt() (time.Time, bool) {
	if p == nil || p.AccessExp <= 0 {
		return time.Time{}, false
	}
	return time.Unix(p.AccessExp, 0), true
}

// ExpiresWithin сообщает, истекает ли access токен раньше, чем через window от now.
// Без известного срока действия токен считается действующим.
func (p *TokenPair) ExpiresWithin(now time.Time, window time.Duration) bool {
	exp, ok := p.ExpiresAt()
	if !ok {
		return false
	}
	return exp.Sub(now) < window
}

// Clone возвращает независимую копию пары.
func (p *TokenPair) Clone() *TokenPair {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
