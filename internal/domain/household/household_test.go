package household

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHousehold(t *testing.T) {
	t.Run("registers household in a village", func(t *testing.T) {
		villageID := uuid.New()
		h, err := NewHousehold("Lekishon Family", villageID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "Lekishon Family", h.Name)
		assert.Equal(t, villageID, h.VillageID)
		assert.False(t, h.ConsentGiven)
		assert.NotNil(t, h.Assets)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewHousehold("  ", uuid.New(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects nil village", func(t *testing.T) {
		_, err := NewHousehold("Lekishon Family", uuid.Nil, uuid.New())
		assert.Error(t, err)
	})

	t.Run("records registration event", func(t *testing.T) {
		h, _ := NewHousehold("Lekishon Family", uuid.New(), uuid.New())
		events := h.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeHouseholdRegistered, events[0].EventType())
	})
}

func TestHouseholdMembers(t *testing.T) {
	h, _ := NewHousehold("Test HH", uuid.New(), uuid.New())

	t.Run("head member becomes program participant", func(t *testing.T) {
		head, err := h.AddMember("Mary", "Lekishon", GenderFemale, 42, RelationshipHead, EducationPrimary)
		require.NoError(t, err)
		assert.True(t, head.ProgramParticipant)
		assert.Equal(t, head, h.HeadMember())
	})

	t.Run("second head rejected", func(t *testing.T) {
		_, err := h.AddMember("Other", "Person", GenderMale, 50, RelationshipHead, EducationNone)
		assert.Error(t, err)
	})

	t.Run("non-head members are not participants", func(t *testing.T) {
		child, err := h.AddMember("Sam", "Lekishon", GenderMale, 4, RelationshipChild, EducationNone)
		require.NoError(t, err)
		assert.False(t, child.ProgramParticipant)
	})

	t.Run("rejects invalid age", func(t *testing.T) {
		_, err := h.AddMember("Old", "Person", GenderMale, 150, RelationshipOther, EducationNone)
		assert.Error(t, err)
	})

	t.Run("remove member", func(t *testing.T) {
		m, _ := h.AddMember("Temp", "Person", GenderMale, 20, RelationshipOther, EducationNone)
		require.NoError(t, h.RemoveMember(m.ID))
		assert.Error(t, h.RemoveMember(uuid.New()))
	})
}

func TestHouseholdDemographics(t *testing.T) {
	h, _ := NewHousehold("Demo HH", uuid.New(), uuid.New())
	h.AddMember("Mary", "L", GenderFemale, 68, RelationshipHead, EducationNone)
	h.AddMember("A", "L", GenderFemale, 3, RelationshipChild, EducationNone)
	h.AddMember("B", "L", GenderMale, 4, RelationshipChild, EducationNone)
	h.AddMember("C", "L", GenderMale, 17, RelationshipChild, EducationSecondary)

	assert.Equal(t, 4, h.TotalMembers())
	assert.Equal(t, 2, h.ChildrenUnder5Count())
	assert.Equal(t, 1, h.WorkingMembersCount())
	assert.Equal(t, GenderFemale, h.HeadGender())
	assert.Equal(t, 68, h.HeadAge())
	assert.Equal(t, EducationNone, h.HeadEducationLevel())
	assert.True(t, h.IsSingleParent())

	t.Run("spouse clears single parent", func(t *testing.T) {
		h.AddMember("Paul", "L", GenderMale, 70, RelationshipSpouse, EducationNone)
		assert.False(t, h.IsSingleParent())
	})
}

func TestHouseholdSetters(t *testing.T) {
	h, _ := NewHousehold("Setter HH", uuid.New(), uuid.New())

	t.Run("monthly income", func(t *testing.T) {
		require.NoError(t, h.SetMonthlyIncome(decimal.NewFromInt(3500)))
		assert.True(t, h.MonthlyIncome.Equal(decimal.NewFromInt(3500)))
		assert.Error(t, h.SetMonthlyIncome(decimal.NewFromInt(-1)))
	})

	t.Run("gps bounds", func(t *testing.T) {
		require.NoError(t, h.SetGPS(decimal.NewFromFloat(-1.2921), decimal.NewFromFloat(36.8219)))
		assert.Error(t, h.SetGPS(decimal.NewFromInt(95), decimal.NewFromInt(0)))
		assert.Error(t, h.SetGPS(decimal.NewFromInt(0), decimal.NewFromInt(190)))
	})

	t.Run("consent", func(t *testing.T) {
		h.GiveConsent()
		assert.True(t, h.ConsentGiven)
		h.WithdrawConsent()
		assert.False(t, h.ConsentGiven)
	})

	t.Run("head details", func(t *testing.T) {
		require.NoError(t, h.SetHead("Mary", "", "Lekishon", GenderFemale, nil, "12345678", "+254700000001"))
		assert.Equal(t, "Mary Lekishon", h.HeadFullName())
		assert.Error(t, h.SetHead("X", "", "Y", "unknown", nil, "", ""))
	})
}

func TestNewPPIAssessment(t *testing.T) {
	t.Run("valid score", func(t *testing.T) {
		ppi, err := NewPPIAssessment(uuid.New(), "Baseline PPI", 35, testDate())
		require.NoError(t, err)
		assert.Equal(t, 35, ppi.Score)
	})

	t.Run("score out of range", func(t *testing.T) {
		_, err := NewPPIAssessment(uuid.New(), "Baseline PPI", 101, testDate())
		assert.Error(t, err)
		_, err = NewPPIAssessment(uuid.New(), "Baseline PPI", -1, testDate())
		assert.Error(t, err)
	})

	t.Run("nil household rejected", func(t *testing.T) {
		_, err := NewPPIAssessment(uuid.Nil, "Baseline PPI", 35, testDate())
		assert.Error(t, err)
	})
}
