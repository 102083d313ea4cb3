package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docscan/internal/scanner/adapters/jwt"
	"docscan/internal/scanner/adapters/transport"
	"docscan/internal/scanner/session"
)

// clock - управляемые часы для проверки окна обновления.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock {
	return &clock{t: time.Now().Truncate(time.Second)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

type backend struct {
	server *httptest.Server
	client *session.Client
	store  *memStore
	clock  *clock
	codec  *jwt.Codec
}

func newBackend(t *testing.T, mux *http.ServeMux) *backend {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	b := &backend{
		server: srv,
		store:  &memStore{},
		clock:  newClock(),
		codec:  jwt.NewCodec(),
	}
	b.client = session.NewClient(
		session.Config{BaseURL: srv.URL, Timeout: 5 * time.Second},
		transport.NewHTTPTransport(5*time.Second, nil),
		b.store, b.codec, session.NewLogoutNotifier(),
		session.WithClock(b.clock.Now),
	)
	return b
}

func signToken(t *testing.T, userID int64, exp time.Time) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"token_type": "access",
		"user_id":    userID,
		"exp":        exp.Unix(),
	}).SignedString([]byte("server-secret"))
	require.NoError(t, err)
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func userInfoHandler(t *testing.T, wantToken func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+wantToken() {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"code": "token_not_valid"})
			return
		}
		uid, err := strconv.ParseInt(r.PathValue("uid"), 10, 64)
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"userid":     uid,
			"username":   "ion.pop",
			"email":      "ion@example.com",
			"first_name": "Ion",
			"last_name":  "Pop",
		})
	}
}
