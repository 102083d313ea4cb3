// Package transport выполняет HTTP вызовы к бэкенду.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"docscan/internal/scanner/ports/services"
	"docscan/internal/scanner/resilience"
	"docscan/pkg/logger"
)

// Константы для логирования.
const (
	LogRequestDone = "backend request completed"

	ErrBuildRequest = "failed to build backend request"
	ErrDoRequest    = "backend request failed"
	ErrReadBody     = "failed to read backend response"
)

// ErrBodyTooLarge - тело ответа превышает допустимый размер.
var ErrBodyTooLarge = errors.New("backend response body too large")

// HeaderRequestID - заголовок, в котором бэкенду передается идентификатор запроса.
const HeaderRequestID = "X-Request-ID"

// DefaultMaxBodySize ограничивает размер читаемого ответа.
const DefaultMaxBodySize = 32 << 20

// HTTPTransport - Transport поверх net/http с Circuit Breaker.
// Breaker учитывает только сетевые ошибки, статусы HTTP на него не влияют.
type HTTPTransport struct {
	client      *http.Client
	breaker     *resilience.CircuitBreaker
	maxBodySize int64
}

// Option настраивает HTTPTransport.
type Option func(*HTTPTransport)

// WithMaxBodySize задает предельный размер тела ответа в байтах.
func WithMaxBodySize(n int64) Option {
	return func(t *HTTPTransport) {
		if n > 0 {
			t.maxBodySize = n
		}
	}
}

// NewHTTPTransport создает транспорт с таймаутом на каждый вызов.
func NewHTTPTransport(timeout time.Duration, breaker *resilience.CircuitBreaker, opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		client:      &http.Client{Timeout: timeout},
		breaker:     breaker,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do выполняет запрос и полностью читает тело ответа.
func (t *HTTPTransport) Do(ctx context.Context, req *services.TransportRequest) (*services.Response, error) {
	var resp *services.Response
	call := func() error {
		var err error
		resp, err = t.do(ctx, req)
		return err
	}

	var err error
	if t.breaker != nil {
		err = t.breaker.Execute(ctx, call)
	} else {
		err = call()
	}
	if err != nil {
		return nil, err
	}
	if int64(len(resp.Body)) > t.maxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, t.maxBodySize)
	}
	return resp, nil
}

func (t *HTTPTransport) do(ctx context.Context, req *services.TransportRequest) (*services.Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrBuildRequest, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if id, ok := logger.GetRequestID(ctx); ok && httpReq.Header.Get(HeaderRequestID) == "" {
		httpReq.Header.Set(HeaderRequestID, id)
	}

	start := time.Now()
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDoRequest, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, t.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrReadBody, err)
	}

	logger.Log(ctx).Debug(ctx, LogRequestDone,
		zap.String("method", req.Method),
		zap.String("url", httpReq.URL.Path),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return &services.Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}, nil
}
