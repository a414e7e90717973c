package services

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the verified content of an IdP-issued session token.
// Subject carries the external identity id; the profile fields are
// best-effort and may be absent.
type SessionClaims struct {
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	Picture   string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) ExternalID() string {
	return c.Subject
}

// SessionService verifies session tokens minted by the identity provider.
// This service never issues tokens; issuance is the provider's job.
type SessionService struct {
	publicKey *rsa.PublicKey
	issuer    string
}

func NewSessionService(publicKeyPEM, issuer string) (*SessionService, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to parse IdP public key: %w", err)
	}
	return &SessionService{publicKey: key, issuer: issuer}, nil
}

func (s *SessionService) VerifySessionToken(tokenString string) (*SessionClaims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{"RS256"})}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		return s.publicKey, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("session token has no subject")
	}

	return claims, nil
}
