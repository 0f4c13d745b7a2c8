package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims is the subset of the access token the client reads.
type accessClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// parseAccessToken reads the claims without verifying the signature. The
// token came straight from the service over TLS and is only used to fill in
// fields the response omitted; the service verifies it on every call.
func parseAccessToken(token string) (accessClaims, error) {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return accessClaims{}, fmt.Errorf("parse access token: %w", err)
	}
	return claims, nil
}

func (c accessClaims) expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
