package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docscan/internal/scanner/app/dto"
	"docscan/internal/scanner/domain/entities"
	scannerhttp "docscan/internal/scanner/http"
	"docscan/internal/scanner/http/middleware"
	"docscan/internal/scanner/ports/repositories"
	"docscan/internal/scanner/resilience"
	"docscan/internal/scanner/session"
)

type fixture struct {
	app       *fiber.App
	auth      *mockAuthService
	employees *mockEmployeeService
	waitDocs  *mockWaitDocumentService
	library   *mockLibraryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		app:       fiber.New(),
		auth:      &mockAuthService{},
		employees: &mockEmployeeService{},
		waitDocs:  &mockWaitDocumentService{},
		library:   &mockLibraryService{},
	}
	scannerhttp.SetupRouter(f.app, scannerhttp.Services{
		Auth:      f.auth,
		Employees: f.employees,
		WaitDocs:  f.waitDocs,
		Library:   f.library,
		UploadDir: t.TempDir(),
	})
	t.Cleanup(func() {
		f.auth.AssertExpectations(t)
		f.employees.AssertExpectations(t)
		f.waitDocs.AssertExpectations(t)
		f.library.AssertExpectations(t)
	})
	return f
}

func (f *fixture) loggedIn() {
	f.auth.On("CurrentUser").Return(&entities.UserInfo{UserID: 42, Username: "ion.pop"})
}

func (f *fixture) do(t *testing.T, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &body))
	}
	return resp, body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.auth.On("Login", mock.Anything, &dto.LoginRequest{Username: "ion.pop", Password: "secret"}).
		Return(&entities.UserInfo{UserID: 42, Username: "ion.pop"}, nil).Once()

	req := jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"ion.pop","password":"secret"}`)
	req.Header.Set(middleware.HeaderRequestID, "req-1")

	resp, body := f.do(t, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get(middleware.HeaderRequestID))
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "ion.pop", body["user"].(map[string]any)["username"])
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"empty credentials", fmt.Errorf("validating: %w", entities.ErrEmptyCredentials), http.StatusBadRequest},
		{"rejected by backend", &session.APIError{StatusCode: http.StatusUnauthorized}, http.StatusUnauthorized},
		{"backend failure", &session.APIError{StatusCode: http.StatusInternalServerError}, http.StatusBadGateway},
		{"tokens missing", entities.ErrInvalidLogin, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.auth.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			resp, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"u"}`))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.err.Error(), body["error"])
		})
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/auth/login", `{`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.auth.On("Logout", mock.Anything).Return(nil).Once()

	resp, _ := f.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestMe(t *testing.T) {
	t.Run("not authenticated", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("CurrentUser").Return(nil)

		resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, false, body["authenticated"])
	})

	t.Run("reload", func(t *testing.T) {
		f := newFixture(t)
		f.loggedIn()
		f.auth.On("ReloadUser", mock.Anything).Return(&entities.UserInfo{UserID: 42, Username: "fresh"}, nil).Once()

		resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me?reload=true", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "fresh", body["user"].(map[string]any)["username"])
	})

	t.Run("reload after session ended", func(t *testing.T) {
		f := newFixture(t)
		f.loggedIn()
		f.auth.On("ReloadUser", mock.Anything).Return(nil, fmt.Errorf("loading: %w", session.ErrSessionEnded)).Once()

		resp, _ := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me?reload=true", nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestEmployees(t *testing.T) {
	t.Run("requires session", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("CurrentUser").Return(nil)

		resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, middleware.ErrorNotAuthenticated, body["error"])
	})

	t.Run("passes query", func(t *testing.T) {
		f := newFixture(t)
		f.loggedIn()
		f.employees.On("FetchPage", mock.Anything, dto.EmployeeQuery{Search: "pop", Offset: 20, Limit: 10}).
			Return(&entities.EmployeePage{
				Items:      []entities.Employee{{ID: 1, Name: "Pop Ion"}},
				NextOffset: 21,
			}, nil).Once()

		resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/employees?search=pop&offset=20&limit=10", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(21), body["nextOffset"])
		assert.Equal(t, false, body["hasMore"])
	})

	t.Run("circuit open", func(t *testing.T) {
		f := newFixture(t)
		f.loggedIn()
		f.employees.On("FetchPage", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("fetching: %w", resilience.ErrCircuitOpen)).Once()

		resp, _ := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestBackendRoutes_WithoutSession(t *testing.T) {
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil),
		httptest.NewRequest(http.MethodGet, "/api/v1/waitdocs", nil),
		multipartRequest(t, map[string]string{"tip": "CI"}, "scan.jpg", "x"),
	} {
		t.Run(req.Method+" "+req.URL.Path, func(t *testing.T) {
			f := newFixture(t)
			f.auth.On("CurrentUser").Return(nil)

			resp, body := f.do(t, req)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, middleware.ErrorNotAuthenticated, body["error"])

			f.employees.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything)
			f.waitDocs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
			f.waitDocs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestDocTypes(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/doc-types", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["document"], len(entities.DocumentTypes))
	assert.Len(t, body["image"], len(entities.ImageTypes))
}

func multipartRequest(t *testing.T, fields map[string]string, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/waitdocs", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestWaitDocs_Create(t *testing.T) {
	f := newFixture(t)
	f.loggedIn()

	var uploaded string
	f.waitDocs.On("Create", mock.Anything, mock.MatchedBy(func(p *dto.WaitDocumentPayload) bool {
		return p.Tip == "CI" && p.Angajat != nil && *p.Angajat == 12 &&
			p.Aproved != nil && !*p.Aproved && p.Note != nil && *p.Note == "fata" && p.Subtip == nil
	}), mock.MatchedBy(func(path string) bool {
		return strings.HasSuffix(path, "scan.jpg")
	})).Run(func(args mock.Arguments) {
		data, err := os.ReadFile(args.String(2))
		if assert.NoError(t, err) {
			uploaded = string(data)
		}
	}).Return(map[string]any{"id": float64(5)}, nil).Once()

	req := multipartRequest(t, map[string]string{
		"tip":     "CI",
		"angajat": "12",
		"aproved": "false",
		"note":    "fata",
	}, "scan.jpg", "jpeg-bytes")

	resp, body := f.do(t, req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(5), body["id"])
	assert.Equal(t, "jpeg-bytes", uploaded)
}

func TestWaitDocs_CreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		filename string
	}{
		{"missing file", map[string]string{"tip": "CI"}, ""},
		{"missing tip", map[string]string{}, "scan.jpg"},
		{"bad employee id", map[string]string{"tip": "CI", "angajat": "x"}, "scan.jpg"},
		{"bad approval flag", map[string]string{"tip": "CI", "aproved": "maybe"}, "scan.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.loggedIn()

			resp, _ := f.do(t, multipartRequest(t, tt.fields, tt.filename, "x"))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestWaitDocs_List(t *testing.T) {
	f := newFixture(t)
	f.loggedIn()

	aproved := 0
	f.waitDocs.On("List", mock.Anything, dto.WaitDocumentListOptions{
		Start:    20,
		Length:   10,
		Search:   "ion",
		Aproved:  &aproved,
		OrderCol: 2,
		OrderDir: "asc",
	}).Return(&entities.WaitDocumentList{Rows: []entities.WaitDocument{}, Total: 3}, nil).Once()

	resp, body := f.do(t, httptest.NewRequest(http.MethodGet,
		"/api/v1/waitdocs?start=20&length=10&search=ion&aproved=0&order_col=2&order_dir=asc", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["total"])
}

func TestWaitDocs_ListInvalidQuery(t *testing.T) {
	for _, target := range []string{
		"/api/v1/waitdocs?aproved=2",
		"/api/v1/waitdocs?start=abc",
	} {
		f := newFixture(t)
		f.loggedIn()

		resp, _ := f.do(t, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestDocuments(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		f := newFixture(t)
		f.library.On("AddFromImages", mock.Anything, []string{"/tmp/a.jpg", "/tmp/b.jpg"}).
			Return(&entities.Document{ID: "01J", PDFPath: "/data/scan_01J.pdf"}, nil).Once()

		resp, body := f.do(t, jsonRequest(http.MethodPost, "/api/v1/documents", `{"images":["/tmp/a.jpg","/tmp/b.jpg"]}`))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "01J", body["id"])
		assert.Equal(t, "/data/scan_01J.pdf", body["pdfUri"])
	})

	t.Run("create without images", func(t *testing.T) {
		f := newFixture(t)
		f.library.On("AddFromImages", mock.Anything, []string(nil)).Return(nil, entities.ErrNoImages).Once()

		resp, _ := f.do(t, jsonRequest(http.MethodPost, "/api/v1/documents", `{}`))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list", func(t *testing.T) {
		f := newFixture(t)
		f.library.On("List", mock.Anything).Return([]entities.Document{{ID: "2"}, {ID: "1"}}, nil).Once()

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		var docs []entities.Document
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&docs))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"2", "1"}, []string{docs[0].ID, docs[1].ID})
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture(t)
		f.library.On("Remove", mock.Anything, "01J").Return(nil).Once()

		resp, _ := f.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/documents/01J", nil))
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("delete unknown", func(t *testing.T) {
		f := newFixture(t)
		f.library.On("Remove", mock.Anything, "nope").
			Return(fmt.Errorf("finding: %w", repositories.ErrDocumentNotFound)).Once()

		resp, _ := f.do(t, httptest.NewRequest(http.MethodDelete, "/api/v1/documents/nope", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.library.On("List", mock.Anything).Return(nil, errors.New("disk full")).Once()

		resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "disk full", body["error"])
	})
}

func TestRecovery(t *testing.T) {
	f := newFixture(t)
	f.library.On("List", mock.Anything).Run(func(mock.Arguments) { panic("boom") }).Once()

	resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, middleware.ErrorInternalServer, body["error"])
}

func TestRouteNotFound(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v2/unknown", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, scannerhttp.ErrorRouteNotFound, body["error"])
}
