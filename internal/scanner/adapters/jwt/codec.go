// Package jwt читает утверждения access токена бэкенда.
package jwt

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Утверждения токена simplejwt.
const (
	claimExp    = "exp"
	claimUserID = "user_id"
	claimSub    = "sub"
)

// Codec разбирает токен без проверки подписи: ключ знает только бэкенд.
type Codec struct {
	parser *jwt.Parser
}

// NewCodec создает Codec.
func NewCodec() *Codec {
	return &Codec{parser: jwt.NewParser(jwt.WithJSONNumber())}
}

func (c *Codec) claims(token string) (jwt.MapClaims, bool) {
	if token == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := c.parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// DecodeExpiry возвращает exp в секундах Unix.
func (c *Codec) DecodeExpiry(token string) (int64, bool) {
	claims, ok := c.claims(token)
	if !ok {
		return 0, false
	}

	switch v := claims[claimExp].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, i > 0
		}
		f, err := v.Float64()
		if err != nil || f <= 0 || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	case float64:
		return int64(v), v > 0
	default:
		return 0, false
	}
}

// DecodeSubject возвращает user_id, а при его отсутствии sub.
func (c *Codec) DecodeSubject(token string) (string, bool) {
	claims, ok := c.claims(token)
	if !ok {
		return "", false
	}

	for _, key := range []string{claimUserID, claimSub} {
		switch v := claims[key].(type) {
		case json.Number:
			return v.String(), true
		case float64:
			return strconv.FormatInt(int64(v), 10), true
		case string:
			if v != "" {
				return v, true
			}
		}
	}
	return "", false
}
