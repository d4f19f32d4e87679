package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/reproute/crm-api/internal/auth"
	"github.com/reproute/crm-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret: testSecret,
		Audience:  "authenticated",
	}
}

// signToken creates an HS256 token signed with the shared test secret
func signToken(t *testing.T, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tokenString
}

func defaultClaims(userID uuid.UUID) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   userID.String(),
		"aud":   "authenticated",
		"email": "rep@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
}

func TestJWTValidator_ValidToken(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	userID := uuid.New()

	userCtx, err := validator.ValidateToken(signToken(t, defaultClaims(userID)))

	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.UserID)
	assert.Equal(t, "rep@example.com", userCtx.Email)
}

func TestJWTValidator_EmailFallsBackToPreferredUsername(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	claims := defaultClaims(uuid.New())
	delete(claims, "email")
	claims["preferred_username"] = "rep.username@example.com"

	userCtx, err := validator.ValidateToken(signToken(t, claims))

	require.NoError(t, err)
	assert.Equal(t, "rep.username@example.com", userCtx.Email)
}

func TestJWTValidator_ExpiredToken(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	claims := defaultClaims(uuid.New())
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	_, err := validator.ValidateToken(signToken(t, claims))

	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestJWTValidator_WrongSecret(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, defaultClaims(uuid.New()))
	tokenString, err := token.SignedString([]byte("a-different-secret"))
	require.NoError(t, err)

	_, err = validator.ValidateToken(tokenString)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidator_RejectsNonHS256(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, defaultClaims(uuid.New()))
	tokenString, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = validator.ValidateToken(tokenString)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidator_WrongAudience(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	claims := defaultClaims(uuid.New())
	claims["aud"] = "something-else"

	_, err := validator.ValidateToken(signToken(t, claims))

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidator_IssuerEnforcedWhenConfigured(t *testing.T) {
	cfg := testAuthConfig()
	cfg.Issuer = "https://auth.reproute.app"
	validator := auth.NewJWTValidator(cfg)

	claims := defaultClaims(uuid.New())
	claims["iss"] = "https://auth.reproute.app"
	_, err := validator.ValidateToken(signToken(t, claims))
	assert.NoError(t, err)

	claims["iss"] = "https://evil.example.com"
	_, err = validator.ValidateToken(signToken(t, claims))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidator_MissingSub(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	claims := defaultClaims(uuid.New())
	delete(claims, "sub")

	_, err := validator.ValidateToken(signToken(t, claims))

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidator_SubNotAUUID(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())
	claims := defaultClaims(uuid.New())
	claims["sub"] = "not-a-uuid"

	_, err := validator.ValidateToken(signToken(t, claims))

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTValidator_GarbageToken(t *testing.T) {
	validator := auth.NewJWTValidator(testAuthConfig())

	_, err := validator.ValidateToken("not.a.token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
