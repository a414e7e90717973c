package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/gostays-api/internal/services"
	"github.com/dimitrije/gostays-api/tests/testutil"
)

func TestAuth_ValidToken(t *testing.T) {
	keys := testutil.GenerateSessionKeys(t)

	var captured *services.SessionClaims
	app := drift.New()
	app.Use(Auth(keys.SessionService(t)))
	app.Get("/protected", func(c *drift.Context) {
		captured = GetClaims(c)
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	token := keys.SignSessionToken(t, &services.SessionClaims{
		Email:    "ana@example.com",
		Username: "ana",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "user_abc123",
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "user_abc123", captured.ExternalID())
	assert.Equal(t, "ana@example.com", captured.Email)
}

func TestAuth_MissingHeader(t *testing.T) {
	keys := testutil.GenerateSessionKeys(t)

	app := drift.New()
	app.Use(Auth(keys.SessionService(t)))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	keys := testutil.GenerateSessionKeys(t)

	app := drift.New()
	app.Use(Auth(keys.SessionService(t)))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_TokenSignedByUnknownKey(t *testing.T) {
	trusted := testutil.GenerateSessionKeys(t)
	rogue := testutil.GenerateSessionKeys(t)

	app := drift.New()
	app.Use(Auth(trusted.SessionService(t)))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	token := rogue.SignSessionToken(t, &services.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user_abc123"},
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	keys := testutil.GenerateSessionKeys(t)

	app := drift.New()
	app.Use(Auth(keys.SessionService(t)))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	token := keys.SignSessionToken(t, &services.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_abc123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_TokenWithoutSubject(t *testing.T) {
	keys := testutil.GenerateSessionKeys(t)

	app := drift.New()
	app.Use(Auth(keys.SessionService(t)))
	app.Get("/protected", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	token := keys.SignSessionToken(t, &services.SessionClaims{Email: "ana@example.com"})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
