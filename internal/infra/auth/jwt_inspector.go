// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"time"

	"dashcam/internal/domain/entity"
	"dashcam/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
)

// jwtInspector reads claims from session tokens that happen to be JWTs.
// Signatures are not checked: the client has no key, and the backend stays the authority.
type jwtInspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewTokenInspector is the constructor for the JWT based TokenInspector
func NewTokenInspector() service.TokenInspector {
	return &jwtInspector{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// Inspect returns what the token says about itself. Tokens that are not JWTs are reported as opaque.
func (i *jwtInspector) Inspect(token string) entity.SessionInfo {
	info := entity.SessionInfo{SignedIn: strings.TrimSpace(token) != ""}
	if !info.SignedIn {
		return info
	}

	claims := jwt.MapClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		info.Opaque = true

		return info
	}

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		issued := iat.Time
		info.IssuedAt = &issued
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expires := exp.Time
		info.ExpiresAt = &expires
		info.Expired = !i.now().Before(expires)
	}

	return info
}
