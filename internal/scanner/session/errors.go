package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"docscan/internal/scanner/ports/services"
)

// Ошибки сессии.
var (
	// ErrNoRefreshToken - обновление невозможно: refresh токена нет.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrRefreshFailed - эндпоинт обновления не выдал новый access токен.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrMissingAccessToken - ответ обновления без поля access.
	ErrMissingAccessToken = errors.New("refresh response missing access token")
	// ErrSessionEnded - сессия была завершена, пока запрос ждал обновления.
	ErrSessionEnded = errors.New("session ended")
)

// APIError - ответ бэкенда с неуспешным статусом.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	const maxBody = 256
	body := e.Body
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, body)
}

// Unauthorized сообщает, что бэкенд отверг учетные данные.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsUnauthorized проверяет, что err содержит APIError со статусом 401/403.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Unauthorized()
}

// CheckStatus превращает ответ со статусом вне 2xx в *APIError.
func CheckStatus(resp *services.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
}

// DecodeJSON проверяет статус ответа и разбирает тело в v.
func DecodeJSON(resp *services.Response, v any) error {
	if err := CheckStatus(resp); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}
