package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	return token
}

func TestJWTInspector_ReadsClaimsWithoutKey(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inspector := &jwtInspector{parser: jwt.NewParser(), now: func() time.Time { return now }}

	token := signToken(t, jwt.MapClaims{
		"sub": "user-42",
		"iat": now.Add(-time.Hour).Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})

	info := inspector.Inspect(token)
	assert.True(t, info.SignedIn)
	assert.False(t, info.Opaque)
	assert.Equal(t, "user-42", info.Subject)
	require.NotNil(t, info.ExpiresAt)
	assert.Equal(t, now.Add(time.Hour).Unix(), info.ExpiresAt.Unix())
	require.NotNil(t, info.IssuedAt)
	assert.False(t, info.Expired)
}

func TestJWTInspector_Expired(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inspector := &jwtInspector{parser: jwt.NewParser(), now: func() time.Time { return now }}

	info := inspector.Inspect(signToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}))
	assert.True(t, info.Expired)
}

func TestJWTInspector_OpaqueAndEmpty(t *testing.T) {
	inspector := NewTokenInspector()

	opaque := inspector.Inspect("c2Vzc2lvbi10b2tlbg")
	assert.True(t, opaque.SignedIn)
	assert.True(t, opaque.Opaque)
	assert.Nil(t, opaque.ExpiresAt)

	empty := inspector.Inspect("")
	assert.False(t, empty.SignedIn)
}
