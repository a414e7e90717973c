package middleware

import (
	"strings"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/dimitrije/gostays-api/internal/services"
)

const ClaimsKey = "session_claims"

// Auth verifies the IdP-issued bearer token and stashes the claims on the
// context. It proves who the caller is; LazySync below turns that into a
// local user record.
func Auth(sessions *services.SessionService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := sessions.VerifySessionToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired session token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func GetClaims(c *drift.Context) *services.SessionClaims {
	if v, ok := c.Get(ClaimsKey); ok {
		if claims, ok := v.(*services.SessionClaims); ok {
			return claims
		}
	}
	return nil
}
