package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimitrije/gostays-api/internal/models"
	"github.com/dimitrije/gostays-api/pkg/dto"
)

func TestUserHandler_GetMe_Success(t *testing.T) {
	user := &models.User{
		ID:         uuid.New(),
		ExternalID: "user_abc123",
		Email:      "ana@example.com",
		Username:   "ana",
		Role:       models.RoleUser,
	}

	authMW, syncMW, token := authStack(t, user)
	handler := NewUserHandler()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(authMW)
	app.Use(syncMW)
	app.Get("/users/me", handler.GetMe)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.UserResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, user.ID, response.ID)
	assert.Equal(t, "ana@example.com", response.Email)
	assert.Equal(t, "ana", response.Username)
	assert.Equal(t, models.RoleUser, response.Role)
}

func TestUserHandler_GetMe_NotAuthenticated(t *testing.T) {
	user := &models.User{ID: uuid.New(), ExternalID: "user_abc123"}

	authMW, syncMW, _ := authStack(t, user)
	handler := NewUserHandler()

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(authMW)
	app.Use(syncMW)
	app.Get("/users/me", handler.GetMe)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
