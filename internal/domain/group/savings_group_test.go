package group

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upg/backend/internal/domain/shared/valueobject"
)

func TestNewSavingsGroup(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		g, err := NewSavingsGroup("Jipange BSG", formationDate(), "", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, FrequencyWeekly, g.SavingsFrequency)
		assert.Equal(t, 25, g.TargetMembers)
		assert.True(t, g.IsActive)
		assert.True(t, g.SavingsToDate.IsZero())
	})

	t.Run("invalid frequency", func(t *testing.T) {
		_, err := NewSavingsGroup("Jipange BSG", formationDate(), SavingsFrequency("daily"), uuid.New())
		assert.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewSavingsGroup("", formationDate(), FrequencyMonthly, uuid.New())
		assert.Error(t, err)
	})
}

func TestSavingsGroupMembership(t *testing.T) {
	g, err := NewSavingsGroup("Chama cha Maendeleo", formationDate(), FrequencyWeekly, uuid.New())
	require.NoError(t, err)

	hh1 := uuid.New()
	hh2 := uuid.New()

	_, err = g.AddMember(hh1, SavingsRoleChairperson, formationDate())
	require.NoError(t, err)
	_, err = g.AddMember(hh2, SavingsRoleMember, formationDate())
	require.NoError(t, err)
	assert.Equal(t, 2, g.ActiveMemberCount())

	t.Run("second chairperson rejected", func(t *testing.T) {
		_, err := g.AddMember(uuid.New(), SavingsRoleChairperson, formationDate())
		assert.Error(t, err)
	})

	t.Run("duplicate member rejected", func(t *testing.T) {
		_, err := g.AddMember(hh2, SavingsRoleMember, formationDate())
		assert.Error(t, err)
	})

	t.Run("remove then rejoin", func(t *testing.T) {
		require.NoError(t, g.RemoveMember(hh2))
		assert.Equal(t, 1, g.ActiveMemberCount())
		_, err := g.AddMember(hh2, SavingsRoleMember, formationDate())
		require.NoError(t, err)
	})
}

func TestSavingsGroupBusinessGroupLinks(t *testing.T) {
	g, err := NewSavingsGroup("Pamoja BSG", formationDate(), FrequencyBiweekly, uuid.New())
	require.NoError(t, err)

	bgID := uuid.New()
	require.NoError(t, g.AttachBusinessGroup(bgID))
	assert.Error(t, g.AttachBusinessGroup(bgID))
	require.NoError(t, g.DetachBusinessGroup(bgID))
	assert.Error(t, g.DetachBusinessGroup(bgID))
}

func TestRecordSaving(t *testing.T) {
	g, err := NewSavingsGroup("Akiba BSG", formationDate(), FrequencyWeekly, uuid.New())
	require.NoError(t, err)

	hh := uuid.New()
	member, err := g.AddMember(hh, SavingsRoleMember, formationDate())
	require.NoError(t, err)

	recorder := uuid.New()
	savingsDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("contribution updates totals", func(t *testing.T) {
		rec, err := g.RecordSaving(hh, valueobject.NewMoneyKESFromInt(500), savingsDate, &recorder, "week 1")
		require.NoError(t, err)
		assert.Equal(t, member.ID, rec.MemberID)
		assert.Equal(t, "500.00 KES", g.SavingsToDate.String())

		_, err = g.RecordSaving(hh, valueobject.NewMoneyKESFromInt(300), savingsDate.AddDate(0, 0, 7), &recorder, "")
		require.NoError(t, err)
		assert.Equal(t, "800.00 KES", g.SavingsToDate.String())
	})

	t.Run("member total tracks contributions", func(t *testing.T) {
		var total valueobject.Money
		for _, m := range g.Members {
			if m.HouseholdID == hh {
				total = m.TotalSavings
			}
		}
		assert.Equal(t, "800.00 KES", total.String())
	})

	t.Run("non-member rejected", func(t *testing.T) {
		_, err := g.RecordSaving(uuid.New(), valueobject.NewMoneyKESFromInt(100), savingsDate, nil, "")
		assert.Error(t, err)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := g.RecordSaving(hh, valueobject.ZeroKES(), savingsDate, nil, "")
		assert.Error(t, err)
	})

	t.Run("inactive group rejected", func(t *testing.T) {
		g.Deactivate()
		_, err := g.RecordSaving(hh, valueobject.NewMoneyKESFromInt(100), savingsDate, nil, "")
		assert.Error(t, err)
	})
}
