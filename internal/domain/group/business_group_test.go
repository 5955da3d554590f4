package group

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formationDate() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
}

func TestNewBusinessGroup(t *testing.T) {
	programID := uuid.New()
	creator := uuid.New()

	t.Run("valid group", func(t *testing.T) {
		g, err := NewBusinessGroup("Mwangaza Poultry", programID, BusinessTypeLivestock, formationDate(), creator)
		require.NoError(t, err)
		assert.Equal(t, "Mwangaza Poultry", g.Name)
		assert.Equal(t, HealthYellow, g.Health)
		assert.Equal(t, ParticipationActive, g.Participation)
		assert.Equal(t, 2, g.GroupSize)
		assert.True(t, g.IsActive())
		assert.Len(t, g.GetDomainEvents(), 1)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewBusinessGroup("  ", programID, BusinessTypeCrop, formationDate(), creator)
		assert.Error(t, err)
	})

	t.Run("invalid business type", func(t *testing.T) {
		_, err := NewBusinessGroup("Duka", programID, BusinessType("mining"), formationDate(), creator)
		assert.Error(t, err)
	})
}

func TestBusinessGroupMembers(t *testing.T) {
	g, err := NewBusinessGroup("Tumaini Retail", uuid.New(), BusinessTypeRetail, formationDate(), uuid.New())
	require.NoError(t, err)

	hh1 := uuid.New()
	hh2 := uuid.New()
	hh3 := uuid.New()

	t.Run("add members with roles", func(t *testing.T) {
		_, err := g.AddMember(hh1, MemberRoleLeader, formationDate())
		require.NoError(t, err)
		_, err = g.AddMember(hh2, MemberRoleTreasurer, formationDate())
		require.NoError(t, err)
		_, err = g.AddMember(hh3, MemberRoleMember, formationDate())
		require.NoError(t, err)

		assert.Equal(t, 3, g.ActiveMemberCount())
		assert.Equal(t, 3, g.GroupSize)
		require.NotNil(t, g.MemberByRole(MemberRoleLeader))
		assert.Equal(t, hh1, g.MemberByRole(MemberRoleLeader).HouseholdID)
	})

	t.Run("duplicate household rejected", func(t *testing.T) {
		_, err := g.AddMember(hh1, MemberRoleMember, formationDate())
		assert.Error(t, err)
	})

	t.Run("second leader rejected", func(t *testing.T) {
		_, err := g.AddMember(uuid.New(), MemberRoleLeader, formationDate())
		assert.Error(t, err)
	})

	t.Run("remove deactivates and resizes", func(t *testing.T) {
		require.NoError(t, g.RemoveMember(hh3))
		assert.Equal(t, 2, g.ActiveMemberCount())
		assert.Equal(t, 2, g.GroupSize)
		assert.False(t, g.HasMember(hh3))
		assert.Len(t, g.Members, 3)
	})

	t.Run("remove unknown household", func(t *testing.T) {
		assert.Error(t, g.RemoveMember(uuid.New()))
	})
}

func TestBusinessGroupHealth(t *testing.T) {
	g, err := NewBusinessGroup("Upendo Crafts", uuid.New(), BusinessTypeSkill, formationDate(), uuid.New())
	require.NoError(t, err)
	g.ClearDomainEvents()

	require.NoError(t, g.RateHealth(HealthGreen))
	assert.Equal(t, HealthGreen, g.Health)
	assert.Len(t, g.GetDomainEvents(), 1)

	// rating with the same value is a no-op
	g.ClearDomainEvents()
	require.NoError(t, g.RateHealth(HealthGreen))
	assert.Empty(t, g.GetDomainEvents())

	assert.Error(t, g.RateHealth(BusinessHealth("blue")))
}

func TestBusinessGroupParticipation(t *testing.T) {
	g, err := NewBusinessGroup("Amani Services", uuid.New(), BusinessTypeService, formationDate(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, g.Suspend())
	assert.Equal(t, ParticipationSuspended, g.Participation)
	assert.Error(t, g.Suspend())

	require.NoError(t, g.Reactivate())
	assert.True(t, g.IsActive())

	require.NoError(t, g.Withdraw())
	assert.Equal(t, ParticipationWithdrawn, g.Participation)
	assert.Error(t, g.Withdraw())
}
