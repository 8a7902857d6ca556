package auth_test

import (
	"testing"
	"time"

	"broker/internal/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueToken_And_ParseToken_RoundTrip(t *testing.T) {
	token, expiresAt, err := auth.IssueToken("secret", "user-123", auth.RoleUser, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := auth.ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, auth.RoleUser, claims.Role)
}

func TestIssueToken_Validation(t *testing.T) {
	t.Run("empty secret", func(t *testing.T) {
		_, _, err := auth.IssueToken("", "user-123", auth.RoleUser, time.Hour)
		require.Error(t, err)
	})

	t.Run("empty subject", func(t *testing.T) {
		_, _, err := auth.IssueToken("secret", "", auth.RoleUser, time.Hour)
		require.Error(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, _, err := auth.IssueToken("secret", "user-123", "admin", time.Hour)
		require.Error(t, err)
	})
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	token, _, err := auth.IssueToken("secret", "courier-1", auth.RoleCourier, time.Hour)
	require.NoError(t, err)

	_, err = auth.ParseToken("other-secret", token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_RejectsExpiredToken(t *testing.T) {
	token, _, err := auth.IssueToken("secret", "courier-1", auth.RoleCourier, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = auth.ParseToken("secret", token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	_, err := auth.ParseToken("secret", "not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestHashPassword_And_Verify(t *testing.T) {
	hash, err := auth.HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", hash)

	assert.True(t, auth.VerifyPassword(hash, "s3cure-pass"))
	assert.False(t, auth.VerifyPassword(hash, "wrong-pass"))
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	_, err := auth.HashPassword("")
	require.Error(t, err)
}
