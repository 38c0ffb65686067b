package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(sub uuid.UUID, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":  TokenIssuer,
		"sub":  sub.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
}

func TestAuthMiddlewarePassesValidToken(t *testing.T) {
	key := testKey(t)
	userID := uuid.New()
	token := signToken(t, key, validClaims(userID, "manager"))

	var gotUserID, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(ContextKeyUserID).(string)
		gotRole, _ = r.Context().Value(ContextKeyRole).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthMiddleware(&key.PublicKey)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), gotUserID)
	assert.Equal(t, "manager", gotRole)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	key := testKey(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	rec := httptest.NewRecorder()
	AuthMiddleware(&key.PublicKey)(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	key := testKey(t)
	claims := validClaims(uuid.New(), "admin")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signToken(t, key, claims)

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthMiddleware(&key.PublicKey)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token_expired")
}

func TestAuthMiddlewareRejectsWrongIssuer(t *testing.T) {
	key := testKey(t)
	claims := validClaims(uuid.New(), "admin")
	claims["iss"] = "SomeoneElse"
	token := signToken(t, key, claims)

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthMiddleware(&key.PublicKey)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsForeignKey(t *testing.T) {
	signingKey := testKey(t)
	verifyKey := testKey(t)
	token := signToken(t, signingKey, validClaims(uuid.New(), "admin"))

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthMiddleware(&verifyKey.PublicKey)(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyBlocksNonAdmins(t *testing.T) {
	key := testKey(t)
	handler := AuthMiddleware(&key.PublicKey)(AdminOnly(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	for role, want := range map[string]int{
		"admin":    http.StatusNoContent,
		"manager":  http.StatusForbidden,
		"employee": http.StatusForbidden,
	} {
		token := signToken(t, key, validClaims(uuid.New(), role))
		req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, role)
	}
}
