package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates an active user with a hashed password", func(t *testing.T) {
		user, err := NewUser("Admin@Magnova.com", "supersecret", "Admin")
		require.NoError(t, err)

		assert.Equal(t, "admin@magnova.com", user.Email)
		assert.True(t, user.IsActive())
		assert.NotEqual(t, "supersecret", user.PasswordHash)
		assert.True(t, user.VerifyPassword("supersecret"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "supersecret", "")
		require.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("admin@magnova.com", "short", "")
		require.Error(t, err)
	})
}

func TestUserLifecycle(t *testing.T) {
	user, err := NewUser("admin@magnova.com", "supersecret", "Admin")
	require.NoError(t, err)

	assert.Nil(t, user.LastLoginAt)
	user.RecordLogin()
	assert.NotNil(t, user.LastLoginAt)

	user.Deactivate()
	assert.False(t, user.IsActive())
}
