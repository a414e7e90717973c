package middleware

import (
	"context"
	"log/slog"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/gostays-api/internal/identity"
	"github.com/dimitrije/gostays-api/internal/models"
	"github.com/dimitrije/gostays-api/internal/services"
)

const UserKey = "current_user"

// ReconcilerInterface is the slice of identity.Reconciler this middleware
// needs, declared here so handler tests can substitute a mock.
type ReconcilerInterface interface {
	Reconcile(ctx context.Context, ev *identity.Event) (*identity.Result, error)
}

// LazySync materializes the local user record for the authenticated
// caller, creating it on first contact. The record is attached to the
// request context for downstream ownership checks. Must run after Auth.
func LazySync(reconciler ReconcilerInterface, log *slog.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.Unauthorized("not authenticated")
			return
		}

		res, err := reconciler.Reconcile(c.Request.Context(), claimsToEvent(claims))
		if err != nil || res.User == nil {
			// The caller is authenticated; we just could not mirror them
			// locally. Distinct from 401 on purpose — the client should
			// retry, not re-login.
			log.Error("lazy sync failed", "external_id", claims.ExternalID(), "error", err)
			c.InternalServerError("failed to sync user account")
			return
		}

		c.Set(UserKey, res.User)
		c.Next()
	}
}

// claimsToEvent builds the synthetic ensure-exists event from verified
// session claims. No call to the provider is needed: the claims already
// carry the profile fields. An empty picture claim means "unknown", never
// "clear the avatar".
func claimsToEvent(claims *services.SessionClaims) *identity.Event {
	ev := &identity.Event{
		Kind:       identity.KindEnsureExists,
		ExternalID: claims.ExternalID(),
		Email:      claims.Email,
		Username:   claims.Username,
	}
	if ev.Username == "" {
		ev.Username = claims.FirstName
	}
	if claims.Picture != "" {
		picture := claims.Picture
		ev.AvatarURL = &picture
	}
	return ev
}

func GetCurrentUser(c *drift.Context) *models.User {
	if v, ok := c.Get(UserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
