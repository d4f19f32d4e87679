package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/config"
	"github.com/reproute/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddleware() *auth.Middleware {
	cfg := &config.Config{
		Auth:   *testAuthConfig(),
		ApiKey: config.ApiKeyConfig{Value: "system-api-key"},
	}
	return auth.NewMiddleware(cfg, zap.NewNop())
}

// captureHandler records the user context seen by the downstream handler
func captureHandler(captured **auth.UserContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userCtx, ok := auth.FromContext(r.Context()); ok {
			*captured = userCtx
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_BearerToken(t *testing.T) {
	m := newTestMiddleware()
	userID := uuid.New()

	var captured *auth.UserContext
	handler := m.Authenticate(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, defaultClaims(userID)))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserID)
	assert.NotEmpty(t, captured.AccessToken)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := newTestMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedAuthorizationHeader(t *testing.T) {
	m := newTestMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ExpiredBearerToken(t *testing.T) {
	m := newTestMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	claims := defaultClaims(uuid.New())
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_APIKeyWithUserHeader(t *testing.T) {
	m := newTestMiddleware()
	userID := uuid.New()

	var captured *auth.UserContext
	handler := m.Authenticate(captureHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("x-api-key", "system-api-key")
	req.Header.Set("X-User-ID", userID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserID)
}

func TestAuthenticate_APIKeyWithoutUserHeader(t *testing.T) {
	m := newTestMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("x-api-key", "system-api-key")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_UnauthorizedBodyIsJSON(t *testing.T) {
	m := newTestMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"missing header", func(r *http.Request) {}},
		{"wrong api key", func(r *http.Request) { r.Header.Set("x-api-key", "wrong-key") }},
		{"malformed bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer not-a-token") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body domain.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Unauthorized", body.Error)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestAuthenticate_WrongAPIKey(t *testing.T) {
	m := newTestMiddleware()
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients", nil)
	req.Header.Set("x-api-key", "wrong-key")
	req.Header.Set("X-User-ID", uuid.New().String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
