package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"docscan/internal/scanner/domain/entities"
	"docscan/internal/scanner/ports/services"
	"docscan/internal/scanner/session"
)

const baseURL = "http://backend.test"

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type handlerFunc func(req *services.TransportRequest) (*services.Response, error)

// fakeBackend отвечает на запросы обновления и на прикладные запросы разными обработчиками.
type fakeBackend struct {
	mu           sync.Mutex
	calls        []services.TransportRequest
	refreshCalls int
	refresh      handlerFunc
	data         handlerFunc
}

func (b *fakeBackend) Do(_ context.Context, req *services.TransportRequest) (*services.Response, error) {
	isRefresh := strings.HasSuffix(req.URL, session.RefreshPath)

	b.mu.Lock()
	b.calls = append(b.calls, *req)
	if isRefresh {
		b.refreshCalls++
	}
	b.mu.Unlock()

	if isRefresh {
		return b.refresh(req)
	}
	return b.data(req)
}

func (b *fakeBackend) RefreshCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshCalls
}

func (b *fakeBackend) Calls() []services.TransportRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]services.TransportRequest(nil), b.calls...)
}

func (b *fakeBackend) DataCalls() []services.TransportRequest {
	var out []services.TransportRequest
	for _, c := range b.Calls() {
		if !strings.HasSuffix(c.URL, session.RefreshPath) {
			out = append(out, c)
		}
	}
	return out
}

// fakeCodec читает срок действия из токенов вида "name:exp".
type fakeCodec struct{}

func (fakeCodec) DecodeExpiry(token string) (int64, bool) {
	_, exp, ok := strings.Cut(token, ":")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (fakeCodec) DecodeSubject(token string) (string, bool) {
	name, _, _ := strings.Cut(token, ":")
	return name, name != ""
}

type memStore struct {
	mu      sync.Mutex
	pair    *entities.TokenPair
	saves   int
	clears  int
	loadErr error
	saveErr error
}

func (s *memStore) Save(_ context.Context, pair *entities.TokenPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.pair = pair.Clone()
	return nil
}

func (s *memStore) Load(_ context.Context) (*entities.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.pair.Clone(), nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.pair = nil
	return nil
}

func (s *memStore) Stored() *entities.TokenPair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair.Clone()
}

type logoutCounter struct {
	mu    sync.Mutex
	count int
}

func (l *logoutCounter) handler(context.Context) {
	l.mu.Lock()
	l.count++
	l.mu.Unlock()
}

func (l *logoutCounter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

type fixture struct {
	backend *fakeBackend
	store   *memStore
	logouts *logoutCounter
	client  *session.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		backend: &fakeBackend{
			refresh: issue(http.StatusOK, token("A2", time.Hour), ""),
			data:    okForAny,
		},
		store:   &memStore{},
		logouts: &logoutCounter{},
	}

	notifier := session.NewLogoutNotifier()
	notifier.OnLogout(f.logouts.handler)

	f.client = session.NewClient(
		session.Config{BaseURL: baseURL + "/"},
		f.backend, f.store, fakeCodec{}, notifier,
		session.WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

// login записывает пару токенов в хранилище и загружает ее в клиент.
func (f *fixture) login(t *testing.T, access, refresh string) {
	t.Helper()
	f.store.pair = &entities.TokenPair{AccessToken: access, RefreshToken: refresh}
	require.NoError(t, f.client.Initialize(context.Background()))
}

func token(name string, ttl time.Duration) string {
	return name + ":" + strconv.FormatInt(fixedNow.Add(ttl).Unix(), 10)
}

func bearer(req *services.TransportRequest) string {
	return strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
}

func jsonResponse(status int, v any) *services.Response {
	body, _ := json.Marshal(v)
	return &services.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       body,
	}
}

func okForAny(*services.TransportRequest) (*services.Response, error) {
	return jsonResponse(http.StatusOK, map[string]string{"ok": "true"}), nil
}

// issue отвечает на обновление новым access и, если задан, новым refresh токеном.
func issue(status int, access, refresh string) handlerFunc {
	return func(*services.TransportRequest) (*services.Response, error) {
		if status != http.StatusOK {
			return jsonResponse(status, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"}), nil
		}
		body := map[string]string{"access": access}
		if refresh != "" {
			body["refresh"] = refresh
		}
		return jsonResponse(http.StatusOK, body), nil
	}
}

// acceptOnly отвечает 200 на запросы с токеном want и 401 на остальные.
func acceptOnly(want string) handlerFunc {
	return func(req *services.TransportRequest) (*services.Response, error) {
		if bearer(req) != want {
			return jsonResponse(http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type", "code": "token_not_valid"}), nil
		}
		return okForAny(req)
	}
}

var errNetwork = errors.New("connection refused")
