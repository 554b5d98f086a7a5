package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/items-api/internal/config"
	"github.com/shinyyama/items-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	return New(testdb.Open(t), cfg)
}

func serve(s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, &config.Config{GitSHA: "abc123", BuildTime: "2026-01-01T00:00:00Z"})

	rec := serve(s, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":"true","git_sha":"abc123","build_time":"2026-01-01T00:00:00Z"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestUnknownRouteUsesDetailEnvelope(t *testing.T) {
	s := newTestServer(t, &config.Config{})

	rec := serve(s, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		allowed bool
	}{
		{"localhost by default", nil, "http://localhost:3000", true},
		{"loopback by default", nil, "https://127.0.0.1:8443", true},
		{"foreign origin by default", nil, "https://evil.example", false},
		{"configured origin", []string{"https://shop.example"}, "https://shop.example", true},
		{"localhost not configured", []string{"https://shop.example"}, "http://localhost:3000", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &config.Config{CORSAllowOrigins: tt.origins})
			rec := serve(s, http.MethodGet, "/items/", "", map[string]string{echo.HeaderOrigin: tt.origin})
			require.Equal(t, http.StatusOK, rec.Code)
			got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin)
			if tt.allowed {
				assert.Equal(t, tt.origin, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestConcurrentCreatesGetDistinctIDs(t *testing.T) {
	s := newTestServer(t, &config.Config{})

	const n = 20
	ids := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := serve(s, http.MethodPost, "/items/", `{"name":"Widget","description":"A widget","price":9.99,"quantity":5}`, nil)
			if rec.Code != http.StatusOK {
				t.Errorf("status=%d body=%s", rec.Code, rec.Body.String())
				return
			}
			var got struct {
				ID uint64 `json:"id"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Error(err)
				return
			}
			ids <- got.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[uint64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
