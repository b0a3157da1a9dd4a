package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"brewery-reviews/pkg/middleware"
	"brewery-reviews/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testJWTConfig() utils.JWTConfig {
	return utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1}
}

func protectedEcho(t *testing.T, called *bool, wantUserID uuid.UUID, wantEmail string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		userID, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantUserID, userID)
		email, ok := utils.GetEmailFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantEmail, email)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	called := false
	handler := middleware.Auth(testJWTConfig(), zap.NewNop())(protectedEcho(t, &called, uuid.Nil, ""))

	r := httptest.NewRequest(http.MethodGet, "/api/review/getAllReviews", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Basic abc", "Bearer", "just-a-token"} {
		called := false
		handler := middleware.Auth(testJWTConfig(), zap.NewNop())(protectedEcho(t, &called, uuid.Nil, ""))

		r := httptest.NewRequest(http.MethodGet, "/api/review/getAllReviews", nil)
		r.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.False(t, called)
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	called := false
	handler := middleware.Auth(testJWTConfig(), zap.NewNop())(protectedEcho(t, &called, uuid.Nil, ""))

	r := httptest.NewRequest(http.MethodGet, "/api/review/getAllReviews", nil)
	r.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	expiredCfg := utils.JWTConfig{Secret: cfg.Secret, ExpiryHours: -1}
	token, _, err := utils.GenerateToken(expiredCfg, uuid.New(), "jo@example.com")
	require.NoError(t, err)

	called := false
	handler := middleware.Auth(cfg, zap.NewNop())(protectedEcho(t, &called, uuid.Nil, ""))

	r := httptest.NewRequest(http.MethodGet, "/api/review/getAllReviews", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_WrongSecret(t *testing.T) {
	token, _, err := utils.GenerateToken(utils.JWTConfig{Secret: "other-secret", ExpiryHours: 1}, uuid.New(), "jo@example.com")
	require.NoError(t, err)

	called := false
	handler := middleware.Auth(testJWTConfig(), zap.NewNop())(protectedEcho(t, &called, uuid.Nil, ""))

	r := httptest.NewRequest(http.MethodGet, "/api/review/getAllReviews", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_ValidTokenPopulatesContext(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, _, err := utils.GenerateToken(cfg, userID, "jo@example.com")
	require.NoError(t, err)

	called := false
	handler := middleware.Auth(cfg, zap.NewNop())(protectedEcho(t, &called, userID, "jo@example.com"))

	r := httptest.NewRequest(http.MethodGet, "/api/review/getAllReviews", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
