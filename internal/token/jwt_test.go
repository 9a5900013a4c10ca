package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/postline/postline-auth/internal/model"
)

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	access, err := j.GenerateAccessToken(id)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestJWT_RefreshToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	refresh, err := j.GenerateRefreshToken(id)
	require.NoError(t, err)
	got, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestJWT_Nonce_DistinctTokens(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	first, err := j.GenerateAccessToken(id)
	require.NoError(t, err)
	second, err := j.GenerateAccessToken(id)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestJWT_TypeConfusion(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	access, err := j.GenerateAccessToken(id)
	require.NoError(t, err)
	_, err = j.ParseRefreshToken(access)
	require.ErrorIs(t, err, model.ErrTokenInvalidType)

	refresh, err := j.GenerateRefreshToken(id)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(refresh)
	require.ErrorIs(t, err, model.ErrTokenInvalidType)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", -time.Minute, -time.Minute)
	id := uuid.New()

	access, err := j.GenerateAccessToken(id)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_WrongKey(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)
	other := NewJWT("not-the-secret", time.Hour, 24*time.Hour)
	id := uuid.New()

	access, err := j.GenerateAccessToken(id)
	require.NoError(t, err)
	_, err = other.ParseAccessToken(access)
	require.ErrorIs(t, err, model.ErrTokenInvalidSignature)
}

func TestJWT_TamperedPayload(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)

	access, err := j.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	parts := strings.Split(access, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + ".eyJhY2NvdW50X2lkIjoiIn0." + parts[2]

	_, err = j.ParseAccessToken(tampered)
	require.Error(t, err)
}

func TestJWT_Malformed(t *testing.T) {
	j := NewJWT("secret", time.Hour, 24*time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := j.ParseAccessToken(garbage)
		require.ErrorIs(t, err, model.ErrTokenMalformed, "input %q", garbage)
	}
}
