// Package dto содержит объекты передачи данных сканера.
package dto

// LoginRequest - учетные данные пользователя.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse - ответ эндпоинта /rest_api/token/.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest - тело запроса /rest_api/token/refresh/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse - ответ обновления; refresh присутствует только при ротации.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// SessionResponse описывает состояние сессии для локального API.
type SessionResponse struct {
	Authenticated bool  `json:"authenticated"`
	AccessExp     int64 `json:"accessExp,omitempty"`
	User          any   `json:"user,omitempty"`
}
