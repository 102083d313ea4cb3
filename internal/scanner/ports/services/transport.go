// Package services определяет интерфейсы внешних сервисов и прикладных сценариев сканера.
package services

import (
	"context"
	"net/http"
)

// TransportRequest - запрос к бэкенду с абсолютным URL.
type TransportRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response - ответ бэкенда. Любой полученный ответ, включая 4xx/5xx, не является ошибкой транспорта.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport выполняет один HTTP вызов. Ошибка означает, что ответ не получен.
type Transport interface {
	Do(ctx context.Context, req *TransportRequest) (*Response, error)
}
