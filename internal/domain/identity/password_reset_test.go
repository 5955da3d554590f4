package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordResetToken(t *testing.T) {
	t.Run("issues valid token", func(t *testing.T) {
		token, err := NewPasswordResetToken(uuid.New())
		require.NoError(t, err)
		assert.NotEmpty(t, token.Token)
		assert.True(t, token.IsValid())
		assert.False(t, token.IsExpired())
	})

	t.Run("rejects nil user", func(t *testing.T) {
		_, err := NewPasswordResetToken(uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("tokens are unique", func(t *testing.T) {
		a, _ := NewPasswordResetToken(uuid.New())
		b, _ := NewPasswordResetToken(uuid.New())
		assert.NotEqual(t, a.Token, b.Token)
	})
}

func TestPasswordResetTokenMarkUsed(t *testing.T) {
	token, _ := NewPasswordResetToken(uuid.New())

	require.NoError(t, token.MarkUsed())
	assert.NotNil(t, token.UsedAt)
	assert.False(t, token.IsValid())

	t.Run("second use rejected", func(t *testing.T) {
		assert.Error(t, token.MarkUsed())
	})
}

func TestPasswordResetTokenExpiry(t *testing.T) {
	token, _ := NewPasswordResetToken(uuid.New())
	token.CreatedAt = time.Now().Add(-25 * time.Hour)

	assert.True(t, token.IsExpired())
	assert.False(t, token.IsValid())
	assert.Error(t, token.MarkUsed())
}
