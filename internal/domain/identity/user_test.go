package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates pending user with defaults", func(t *testing.T) {
		user, err := NewUser("jwanjiru", "jwanjiru@county.go.ke", "Passw0rd123", RoleMentor)
		require.NoError(t, err)
		assert.Equal(t, "jwanjiru", user.Username)
		assert.Equal(t, "jwanjiru@county.go.ke", user.Email)
		assert.Equal(t, RoleMentor, user.Role)
		assert.Equal(t, UserStatusPending, user.Status)
		assert.Equal(t, "Kenya", user.Country)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "Passw0rd123", user.PasswordHash)
	})

	t.Run("normalizes username and email to lowercase", func(t *testing.T) {
		user, err := NewUser("JWanjiru", "JWanjiru@County.go.ke", "Passw0rd123", RoleMentor)
		require.NoError(t, err)
		assert.Equal(t, "jwanjiru", user.Username)
		assert.Equal(t, "jwanjiru@county.go.ke", user.Email)
	})

	t.Run("defaults empty role to mentor", func(t *testing.T) {
		user, err := NewUser("someone", "someone@example.com", "Passw0rd123", "")
		require.NoError(t, err)
		assert.Equal(t, RoleMentor, user.Role)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := NewUser("someone", "someone@example.com", "Passw0rd123", "warden")
		assert.Error(t, err)
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser("ab", "ab@example.com", "Passw0rd123", RoleMentor)
		assert.Error(t, err)
	})

	t.Run("rejects password without digits", func(t *testing.T) {
		_, err := NewUser("someone", "someone@example.com", "passwordonly", RoleMentor)
		assert.Error(t, err)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("someone", "not-an-email", "Passw0rd123", RoleMentor)
		assert.Error(t, err)
	})

	t.Run("records creation event", func(t *testing.T) {
		user, err := NewUser("someone", "someone@example.com", "Passw0rd123", RoleMEStaff)
		require.NoError(t, err)
		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserCreated, events[0].EventType())
	})
}

func TestNewActiveUser(t *testing.T) {
	user, err := NewActiveUser("admin", "admin@county.go.ke", "Passw0rd123", RoleICTAdmin)
	require.NoError(t, err)
	assert.Equal(t, UserStatusActive, user.Status)
	assert.True(t, user.CanLogin())
}

func TestUserFullName(t *testing.T) {
	user, _ := NewActiveUser("jwanjiru", "j@example.com", "Passw0rd123", RoleMentor)

	t.Run("falls back to username", func(t *testing.T) {
		assert.Equal(t, "jwanjiru", user.FullName())
	})

	t.Run("uses first and last name when set", func(t *testing.T) {
		require.NoError(t, user.SetName("Jane", "Wanjiru"))
		assert.Equal(t, "Jane Wanjiru", user.FullName())
	})
}

func TestUserVerifyPassword(t *testing.T) {
	user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)
	assert.True(t, user.VerifyPassword("Passw0rd123"))
	assert.False(t, user.VerifyPassword("wrong-password1"))
}

func TestUserChangePassword(t *testing.T) {
	t.Run("changes with correct old password", func(t *testing.T) {
		user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)
		require.NoError(t, user.ChangePassword("Passw0rd123", "NewPassw0rd"))
		assert.True(t, user.VerifyPassword("NewPassw0rd"))
	})

	t.Run("rejects wrong old password", func(t *testing.T) {
		user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)
		err := user.ChangePassword("wrong1password", "NewPassw0rd")
		assert.Error(t, err)
	})
}

func TestUserChangeRole(t *testing.T) {
	user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)
	user.ClearDomainEvents()

	require.NoError(t, user.ChangeRole(RoleFieldAssociate))
	assert.Equal(t, RoleFieldAssociate, user.Role)

	events := user.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeUserRoleChanged, events[0].EventType())

	t.Run("same role is a no-op", func(t *testing.T) {
		user.ClearDomainEvents()
		require.NoError(t, user.ChangeRole(RoleFieldAssociate))
		assert.Empty(t, user.GetDomainEvents())
	})
}

func TestUserVillageAssignments(t *testing.T) {
	user, _ := NewActiveUser("mentor1", "mentor1@example.com", "Passw0rd123", RoleMentor)
	villageID := uuid.New()

	require.NoError(t, user.AssignVillage(villageID))
	assert.Len(t, user.AssignedVillageIDs, 1)

	t.Run("duplicate assignment rejected", func(t *testing.T) {
		assert.Error(t, user.AssignVillage(villageID))
	})

	t.Run("unassign removes village", func(t *testing.T) {
		require.NoError(t, user.UnassignVillage(villageID))
		assert.Empty(t, user.AssignedVillageIDs)
	})

	t.Run("unassign missing village rejected", func(t *testing.T) {
		assert.Error(t, user.UnassignVillage(uuid.New()))
	})
}

func TestUserLockout(t *testing.T) {
	t.Run("locks after max failed attempts", func(t *testing.T) {
		user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)

		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.False(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.RecordLoginFailure(3, time.Hour))
		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("expired lock no longer blocks", func(t *testing.T) {
		user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)
		require.NoError(t, user.Lock(-time.Minute))
		assert.False(t, user.IsLocked())
	})

	t.Run("unlock restores login", func(t *testing.T) {
		user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)
		require.NoError(t, user.Lock(time.Hour))
		require.NoError(t, user.Unlock())
		assert.True(t, user.CanLogin())
		assert.Zero(t, user.FailedAttempts)
	})
}

func TestUserDeactivate(t *testing.T) {
	user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)
	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	assert.Error(t, user.Deactivate())
	assert.Error(t, user.Lock(time.Hour))
}

func TestUserRecordLoginSuccess(t *testing.T) {
	user, _ := NewActiveUser("someone", "someone@example.com", "Passw0rd123", RoleMentor)
	user.FailedAttempts = 2

	user.RecordLoginSuccess("10.0.0.5")
	assert.NotNil(t, user.LastLoginAt)
	assert.Equal(t, "10.0.0.5", user.LastLoginIP)
	assert.Zero(t, user.FailedAttempts)
}
