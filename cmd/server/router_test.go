package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gowombat/doodle-api/internal/config"
	"github.com/gowombat/doodle-api/internal/generation"
	"github.com/gowombat/doodle-api/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator satisfies generation.Generator for routing tests.
type stubGenerator struct {
	result *generation.Result
}

func (s *stubGenerator) GenerateDoodle(context.Context, string, string) *generation.Result {
	return s.result
}

func testApplication(t *testing.T, rateLimit int) *application {
	t.Helper()

	limiter, err := ratelimit.NewLimiter(
		slog.Default(), ratelimit.NewMemoryStore(100), rateLimit, time.Hour)
	require.NoError(t, err)

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{
				Port:        8000,
				LogLevel:    "info",
				CORSOrigins: []string{"*"},
			},
			OpenRouter: config.OpenRouterConfig{
				APIKey:            "test-key",
				BaseURL:           "https://openrouter.ai/api/v1",
				Model:             "test-model",
				TimeoutSeconds:    60,
				MaxOccasionLength: 500,
			},
			RateLimit: config.RateLimitConfig{
				Requests:      rateLimit,
				PeriodSeconds: 3600,
				MaxClients:    100,
			},
		},
		logger:    slog.Default(),
		generator: &stubGenerator{result: generation.SuccessBase64("AAAA")},
		limiter:   limiter,
	}
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := testApplication(t, 10).setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "1.0.0", resp["version"])
}

func TestRouterGenerateDoodle(t *testing.T) {
	router := testApplication(t, 10).setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/generate-doodle",
		strings.NewReader(`{"occasion":"Launch Day"}`))
	req.RemoteAddr = "203.0.113.7:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"image_base64":"AAAA"`)
}

func TestRouterRateLimitsGeneration(t *testing.T) {
	router := testApplication(t, 1).setupRouter()

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/generate-doodle",
			strings.NewReader(`{"occasion":"Launch Day"}`))
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusOK, post().Code)

	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRouterHealthIsNotRateLimited(t *testing.T) {
	router := testApplication(t, 1).setupRouter()

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "health request %d", i+1)
	}
}

func TestRouterHistoryDisabledWithoutStore(t *testing.T) {
	router := testApplication(t, 10).setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/doodles/recent", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code,
		"the history route is only registered when a store is configured")
}
