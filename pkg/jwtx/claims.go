// Package jwtx issues and verifies the Ed25519-signed tokens that carry
// admin console sessions. Keys are ephemeral: a restart invalidates every
// outstanding session, which is acceptable for a small review console.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of an admin console session token.
const DefaultSessionTTL = 8 * time.Hour

// Token kinds. A session token authorizes admin operations; an MFA challenge
// token only authorizes completing a TOTP challenge.
const (
	KindSession      = "session"
	KindMFAChallenge = "mfa"
)

// Claims are the token claims used by the admin console.
type Claims struct {
	jwt.RegisteredClaims

	// Email of the authenticated admin.
	Email string `json:"email,omitempty"`

	// Role of the authenticated admin, always "admin" in this system.
	Role string `json:"role,omitempty"`

	// Kind distinguishes full sessions from pending MFA challenges.
	Kind string `json:"kind,omitempty"`
}

// NewClaims builds minimally-correct claims for the given subject.
func NewClaims(subject, email, role, kind, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Email: email,
		Role:  role,
		Kind:  kind,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer claim against the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
