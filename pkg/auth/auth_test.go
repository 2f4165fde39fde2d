package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueParse(t *testing.T) {
	t.Parallel()
	m := NewTokenManager([]byte("secret"), time.Hour)

	token, err := m.Issue(42, "alice")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenManager_Parse(t *testing.T) {
	t.Parallel()
	m := NewTokenManager([]byte("secret"), time.Hour)

	expired := NewTokenManager([]byte("secret"), time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue(1, "bob")
	require.NoError(t, err)

	foreignToken, err := NewTokenManager([]byte("other"), time.Hour).Issue(1, "bob")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Username:         "bob",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "invalid_token_here"},
		{name: "expired", token: expiredToken},
		{name: "foreign key", token: foreignToken},
		{name: "alg none", token: noneToken},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := m.Parse(tt.token)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPassword(t *testing.T) {
	t.Parallel()
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	require.NotEqual(t, "password123", hash)
	require.True(t, ComparePassword(hash, "password123"))
	require.False(t, ComparePassword(hash, "wrongpassword"))

	_, err = HashPassword(strings.Repeat("a", 73))
	require.ErrorIs(t, err, ErrPasswordTooLong)
	require.EqualError(t, err, "generate password hash: bcrypt: password length exceeds 72 bytes")
}

func TestAuthContext(t *testing.T) {
	t.Parallel()
	_, err := GetUserName(context.Background())
	require.Error(t, err)

	ctx := SetAuthContext(context.Background(), 7, "carol")
	name, err := GetUserName(ctx)
	require.NoError(t, err)
	require.Equal(t, "carol", name)
	id, err := GetUserID(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
}
