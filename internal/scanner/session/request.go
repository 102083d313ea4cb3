package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"docscan/internal/scanner/ports/services"
	"docscan/pkg/logger"
)

const tokenNotValidCode = "token_not_valid"

// RequestOption описывает запрос к бэкенду.
type RequestOption func(*pendingRequest)

// pendingRequest - описание запроса, которое можно отправить повторно.
type pendingRequest struct {
	method  string
	path    string
	query   url.Values
	header  http.Header
	body    []byte
	noAuth  bool
	retried bool
	err     error
}

// WithQuery добавляет параметры строки запроса.
func WithQuery(q url.Values) RequestOption {
	return func(r *pendingRequest) {
		if r.query == nil {
			r.query = url.Values{}
		}
		for k, vs := range q {
			for _, v := range vs {
				r.query.Add(k, v)
			}
		}
	}
}

// WithHeader устанавливает заголовок запроса.
func WithHeader(key, value string) RequestOption {
	return func(r *pendingRequest) {
		r.header.Set(key, value)
	}
}

// WithJSON сериализует v в тело запроса.
func WithJSON(v any) RequestOption {
	return func(r *pendingRequest) {
		body, err := json.Marshal(v)
		if err != nil {
			r.err = fmt.Errorf("encode request body: %w", err)
			return
		}
		r.body = body
		r.header.Set("Content-Type", "application/json")
	}
}

// WithBody задает готовое тело запроса, например multipart.
func WithBody(contentType string, body []byte) RequestOption {
	return func(r *pendingRequest) {
		r.body = body
		if contentType != "" {
			r.header.Set("Content-Type", contentType)
		}
	}
}

// WithoutAuth отправляет запрос без токена и без обновления.
func WithoutAuth() RequestOption {
	return func(r *pendingRequest) {
		r.noAuth = true
	}
}

// Request выполняет запрос к бэкенду с подстановкой токена.
// Ответы со статусом вне 2xx возвращаются без ошибки; ошибка означает сбой транспорта,
// отмену контекста или некорректные параметры запроса.
func (c *Client) Request(ctx context.Context, method, path string, opts ...RequestOption) (*services.Response, error) {
	req := &pendingRequest{
		method: method,
		path:   path,
		header: make(http.Header),
	}
	for _, opt := range opts {
		opt(req)
	}
	if req.err != nil {
		return nil, req.err
	}

	if req.noAuth || isRefreshPath(path) {
		return c.execute(ctx, req, "")
	}
	return c.doAuthenticated(ctx, req)
}

func (c *Client) doAuthenticated(ctx context.Context, req *pendingRequest) (*services.Response, error) {
	token, expiring := c.snapshot()
	if expiring {
		fresh, err := c.refreshFor(ctx, token)
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			// Запрос уходит без токена, второго обновления для него не будет.
			req.retried = true
			token, _ = c.snapshot()
		default:
			token = fresh
		}
	}

	resp, err := c.execute(ctx, req, token)
	if err != nil {
		return nil, err
	}
	if req.retried || !isAuthFailure(resp) {
		return resp, nil
	}

	req.retried = true
	fresh, err := c.refreshFor(ctx, token)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return resp, nil
	}

	logger.Log(ctx).Debug(ctx, LogRetryAfterAuth,
		zap.String("method", req.method),
		zap.String("path", req.path),
		zap.Int("status", resp.StatusCode))

	return c.execute(ctx, req, fresh)
}

func (c *Client) execute(ctx context.Context, req *pendingRequest, token string) (*services.Response, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	header := req.header.Clone()
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.transport.Do(callCtx, &services.TransportRequest{
		Method: req.method,
		URL:    c.resolve(req.path, req.query),
		Header: header,
		Body:   req.body,
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.method, req.path, err)
	}
	return resp, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		u = c.baseURL + path
	}
	if len(query) == 0 {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + query.Encode()
}

func isRefreshPath(path string) bool {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	return strings.HasSuffix(path, RefreshPath)
}

// isAuthFailure: 401 или 403 с кодом token_not_valid в теле.
func isAuthFailure(resp *services.Response) bool {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return true
	case http.StatusForbidden:
		var body struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(resp.Body, &body); err != nil {
			return false
		}
		return body.Code == tokenNotValidCode
	default:
		return false
	}
}
