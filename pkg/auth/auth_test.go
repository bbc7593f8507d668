package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/libhub/library-service/pkg/auth"
)

func TestIssueParseRoundTrip(t *testing.T) {
	const (
		userUID = "3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20"
		email   = "jane@example.com"
	)

	token, err := auth.IssueToken(userUID, auth.RoleBurrower, email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, userUID, claims.Profile.UserUID)
	require.Equal(t, auth.RoleBurrower, claims.Profile.Role)
	require.Equal(t, email, claims.Email)
	require.WithinDuration(t, time.Now().Add(auth.TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_expired(t *testing.T) {
	claims := jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(-time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(auth.JWTKey)
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_wrongKey(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "jane@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_rejectsUnsignedAlg(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"email": "jane@example.com",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	require.Error(t, err)
}

func TestAuthContext(t *testing.T) {
	ctx := auth.SetAuthContext(context.Background(), "3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20", auth.RoleAdmin)

	id, ok := auth.FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20", id.UserUID)
	require.Equal(t, auth.RoleAdmin, id.Role)

	_, ok = auth.FromContext(context.Background())
	require.False(t, ok)
}
