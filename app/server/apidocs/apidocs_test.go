package apidocs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Valid(t *testing.T) {
	doc, err := Spec()
	require.NoError(t, err)

	for _, p := range []string{"/health", "/auth/register", "/auth/login", "/users", "/users/{id}", "/me"} {
		assert.NotNil(t, doc.Paths.Value(p), p)
	}
}

func newDocEcho(t *testing.T, opts ...Opts) *echo.Echo {
	t.Helper()

	specJSON, err := SpecJSON()
	require.NoError(t, err)

	e := echo.New()
	e.Pre(Doc("/api", specJSON, opts...))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func TestDoc_Serves(t *testing.T) {
	e := newDocEcho(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "3.0.3", body["openapi"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-url="/api/openapi.json"`)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/api/docs", rec.Header().Get(echo.HeaderLocation))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDoc_Authorizer(t *testing.T) {
	e := newDocEcho(t, WithAuthorizer(func(*http.Request) bool { return false }))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDoc_InternalOnly(t *testing.T) {
	e := newDocEcho(t, WithAuthorizer(InternalOnly))

	tests := []struct {
		remoteAddr string
		want       int
	}{
		{"127.0.0.1:40000", http.StatusOK},
		{"[::1]:40000", http.StatusOK},
		{"10.1.2.3:40000", http.StatusOK},
		{"192.168.0.7:40000", http.StatusOK},
		{"203.0.113.9:40000", http.StatusForbidden},
		{"garbage", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil)
		req.RemoteAddr = tt.remoteAddr

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, tt.remoteAddr)
	}

	// 其他路由不受影响
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "203.0.113.9:40000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
