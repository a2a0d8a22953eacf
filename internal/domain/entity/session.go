package entity

import "time"

// Session is the locally persisted credential set produced by a successful sign-in.
type Session struct {
	Token         string       // Opaque bearer issued by the backend.
	ProviderToken string       // Provider access token kept for unlinking at account deletion.
	Provider      ProviderType // Provider the session was obtained through.
}

// SessionInfo is what can be learned about a session token without asking the backend.
type SessionInfo struct {
	SignedIn  bool
	Provider  ProviderType
	Opaque    bool       // The token is not a JWT, so nothing below is known.
	Subject   string     // JWT "sub" claim when present.
	IssuedAt  *time.Time // JWT "iat" claim when present.
	ExpiresAt *time.Time // JWT "exp" claim when present.
	Expired   bool
}
