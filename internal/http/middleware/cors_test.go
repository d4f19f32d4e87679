package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reproute/crm-api/internal/config"
	"github.com/reproute/crm-api/internal/http/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func corsConfig(origins []string) *config.CORSConfig {
	return &config.CORSConfig{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func doCORSRequest(t *testing.T, cfg *config.CORSConfig, environment, origin string) *httptest.ResponseRecorder {
	t.Helper()
	handler := middleware.CORS(cfg, environment, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Origin", origin)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORS_ExplicitOriginAllowed(t *testing.T) {
	cfg := corsConfig([]string{"https://app.reproute.app"})

	rec := doCORSRequest(t, cfg, "production", "https://app.reproute.app")

	assert.Equal(t, "https://app.reproute.app", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_UnlistedOriginDenied(t *testing.T) {
	cfg := corsConfig([]string{"https://app.reproute.app"})

	rec := doCORSRequest(t, cfg, "production", "https://evil.example.com")

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginsInDevelopmentAllowsAll(t *testing.T) {
	cfg := corsConfig(nil)

	rec := doCORSRequest(t, cfg, "development", "http://localhost:3000")

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_NoOriginsInProductionDeniesAll(t *testing.T) {
	cfg := corsConfig(nil)

	rec := doCORSRequest(t, cfg, "production", "https://app.reproute.app")

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
