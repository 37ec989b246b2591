package auth

import (
	"testing"
	"time"

	"propertyhub/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerate(t *testing.T) {
	issued := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	manager := NewTokenManager("test-secret-key")
	manager.now = fixedClock(issued)

	token, expiresAt, err := manager.Generate("user-123", "test@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, issued.Add(7*24*time.Hour), expiresAt)
}

func TestVerify_Valid(t *testing.T) {
	issued := time.Now()
	manager := NewTokenManager("test-secret-key")
	manager.now = fixedClock(issued)

	token, _, err := manager.Generate("user-123", "test@example.com")
	require.NoError(t, err)

	claims, err := manager.Verify(token, issued.Add(6*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
}

func TestVerify_Expired(t *testing.T) {
	issued := time.Now()
	manager := NewTokenManager("test-secret-key")
	manager.now = fixedClock(issued)

	token, _, err := manager.Generate("user-123", "test@example.com")
	require.NoError(t, err)

	_, err = manager.Verify(token, issued.Add(8*24*time.Hour))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestVerify_InvalidSignature(t *testing.T) {
	manager1 := NewTokenManager("secret-key-1")
	manager2 := NewTokenManager("secret-key-2")

	token, _, err := manager1.Generate("user-123", "test@example.com")
	require.NoError(t, err)

	_, err = manager2.Verify(token, time.Now())
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestVerify_Malformed(t *testing.T) {
	manager := NewTokenManager("test-secret-key")

	_, err := manager.Verify("not-a-valid-token", time.Now())
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestVerify_EmptyToken(t *testing.T) {
	manager := NewTokenManager("test-secret-key")

	_, err := manager.Verify("", time.Now())
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.NoError(t, CheckPassword(hash, "s3cret-pass"))
	assert.Error(t, CheckPassword(hash, "wrong-pass"))
}
