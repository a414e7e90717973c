package handlers

import (
	"io"
	"log/slog"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/mock"

	"github.com/dimitrije/gostays-api/internal/identity"
	"github.com/dimitrije/gostays-api/internal/middleware"
	"github.com/dimitrije/gostays-api/internal/models"
	"github.com/dimitrije/gostays-api/internal/services"
	"github.com/dimitrije/gostays-api/tests/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authStack builds the session-auth and lazy-sync middleware pair with the
// reconciler stubbed to resolve to the given user, plus a bearer token for
// that user.
func authStack(t *testing.T, user *models.User) (authMW, syncMW drift.HandlerFunc, token string) {
	t.Helper()

	keys := testutil.GenerateSessionKeys(t)

	reconciler := new(testutil.MockReconciler)
	reconciler.On("Reconcile", mock.Anything, mock.Anything).
		Return(&identity.Result{Outcome: identity.OutcomeNoop, User: user}, nil)

	token = keys.SignSessionToken(t, &services.SessionClaims{
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ExternalID,
		},
	})

	return middleware.Auth(keys.SessionService(t)), middleware.LazySync(reconciler, testLogger()), token
}
