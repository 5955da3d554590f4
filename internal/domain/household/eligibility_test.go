package household

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDate() time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

// deeplyPoorHousehold builds a household that should score at the top of the
// eligibility scale: deep poverty across every category.
func deeplyPoorHousehold(t *testing.T) *Household {
	t.Helper()
	h, err := NewHousehold("Nalotuesha", uuid.New(), uuid.New())
	require.NoError(t, err)

	h.AddMember("Grace", "N", GenderFemale, 70, RelationshipHead, EducationNone)
	h.AddMember("A", "N", GenderFemale, 3, RelationshipChild, EducationNone)
	h.AddMember("B", "N", GenderMale, 4, RelationshipChild, EducationNone)
	h.AddMember("C", "N", GenderMale, 10, RelationshipChild, EducationNone)

	income := decimal.NewFromInt(2000)
	h.MonthlyIncome = &income
	h.HasDisabledMember = true
	h.Location = "remote village past the escarpment"
	h.HasElectricity = false
	h.HasCleanWater = false
	h.GiveConsent()

	return h
}

// comfortableHousehold builds a household well above the poverty thresholds.
func comfortableHousehold(t *testing.T) *Household {
	t.Helper()
	h, err := NewHousehold("Kiprono", uuid.New(), uuid.New())
	require.NoError(t, err)

	h.AddMember("David", "K", GenderMale, 40, RelationshipHead, EducationSecondary)
	h.AddMember("Ann", "K", GenderFemale, 38, RelationshipSpouse, EducationSecondary)
	h.AddMember("Joy", "K", GenderFemale, 10, RelationshipChild, EducationPrimary)

	income := decimal.NewFromInt(15000)
	h.MonthlyIncome = &income
	h.Assets = map[string]bool{"car": true, "motorcycle": true, "television": true}
	h.Location = "urban"
	h.HasElectricity = true
	h.HasCleanWater = true

	return h
}

func TestEligibilityScorerDeeplyPoor(t *testing.T) {
	h := deeplyPoorHousehold(t)
	result := NewEligibilityScorer(h).
		WithPPIScore(15).
		WithDistanceToMarket(25).
		Calculate()

	assert.Equal(t, 100.0, result.Categories.PovertyIndex)
	assert.Equal(t, 100.0, result.Categories.IncomeLevel)
	assert.Equal(t, 100.0, result.Categories.AssetOwnership)
	assert.Equal(t, 100.0, result.Categories.SocialFactors)
	assert.Equal(t, 100.0, result.Categories.Geographic)
	assert.Equal(t, 85.0, result.Categories.Demographic)

	// 100*.30 + 100*.25 + 100*.15 + 100*.15 + 100*.10 + 85*.05
	assert.Equal(t, 99.25, result.TotalScore)
	assert.Equal(t, HighlyEligible, result.Level)
	assert.True(t, result.EligibleForGraduation())
	assert.Empty(t, result.ImprovementAreas)
}

func TestEligibilityScorerComfortable(t *testing.T) {
	h := comfortableHousehold(t)
	result := NewEligibilityScorer(h).
		WithPPIScore(90).
		WithDistanceToMarket(2).
		Calculate()

	assert.Equal(t, 10.0, result.Categories.PovertyIndex)
	assert.Equal(t, 20.0, result.Categories.IncomeLevel)
	assert.Equal(t, 10.0, result.Categories.AssetOwnership)
	assert.Equal(t, 50.0, result.Categories.SocialFactors)
	assert.Equal(t, 50.0, result.Categories.Geographic)
	assert.Equal(t, 55.0, result.Categories.Demographic)

	// 10*.30 + 20*.25 + 10*.15 + 50*.15 + 50*.10 + 55*.05
	assert.Equal(t, 24.75, result.TotalScore)
	assert.Equal(t, NotEligible, result.Level)
	assert.False(t, result.EligibleForGraduation())
	assert.False(t, result.EligibleForGeneralSupport())
	assert.NotEmpty(t, result.ImprovementAreas)
}

func TestEligibilityScorerDefaults(t *testing.T) {
	t.Run("missing PPI scores 50", func(t *testing.T) {
		h := comfortableHousehold(t)
		result := NewEligibilityScorer(h).Calculate()
		assert.Equal(t, 50.0, result.Categories.PovertyIndex)
	})

	t.Run("missing income counts as extreme poverty", func(t *testing.T) {
		h := comfortableHousehold(t)
		h.MonthlyIncome = nil
		result := NewEligibilityScorer(h).Calculate()
		assert.Equal(t, 100.0, result.Categories.IncomeLevel)
	})
}

func TestEligibilityPPIBanding(t *testing.T) {
	h := comfortableHousehold(t)
	cases := []struct {
		ppi  int
		want float64
	}{
		{10, 100},
		{20, 100},
		{21, 80},
		{40, 80},
		{55, 60},
		{75, 30},
		{95, 10},
	}
	for _, tc := range cases {
		result := NewEligibilityScorer(h).WithPPIScore(tc.ppi).Calculate()
		assert.Equal(t, tc.want, result.Categories.PovertyIndex, "ppi=%d", tc.ppi)
	}
}

func TestEligibilityIncomeBanding(t *testing.T) {
	h := comfortableHousehold(t)
	cases := []struct {
		income int64
		want   float64
	}{
		{2500, 100}, // at the extreme poverty line
		{4000, 80},  // below the poverty line
		{7000, 60},  // vulnerable
		{9500, 40},  // low income
		{12000, 20}, // above target
	}
	for _, tc := range cases {
		income := decimal.NewFromInt(tc.income)
		h.MonthlyIncome = &income
		result := NewEligibilityScorer(h).Calculate()
		assert.Equal(t, tc.want, result.Categories.IncomeLevel, "income=%d", tc.income)
	}
}

func TestEligibilityAssetBanding(t *testing.T) {
	h := comfortableHousehold(t)
	cases := []struct {
		name   string
		assets map[string]bool
		want   float64
	}{
		{"no assets", map[string]bool{}, 100},
		{"one basic asset", map[string]bool{"radio": true}, 80},
		{"three basic assets", map[string]bool{"radio": true, "bicycle": true, "mobile_phone": true}, 60},
		{"one productive asset", map[string]bool{"land": true}, 60},
		{"three productive assets", map[string]bool{"land": true, "livestock": true, "business_equipment": true}, 30},
		{"one luxury asset", map[string]bool{"television": true}, 30},
		{"three luxury assets", map[string]bool{"car": true, "motorcycle": true, "television": true}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h.Assets = tc.assets
			result := NewEligibilityScorer(h).Calculate()
			assert.Equal(t, tc.want, result.Categories.AssetOwnership)
		})
	}
}

func TestQualificationTool(t *testing.T) {
	t.Run("qualified when eligible and all checks pass", func(t *testing.T) {
		h := deeplyPoorHousehold(t)
		scorer := NewEligibilityScorer(h).WithPPIScore(15).WithDistanceToMarket(25)
		tool := NewQualificationTool(scorer, QualificationContext{
			VillageIsProgramArea: true,
			ProgramHasCapacity:   true,
			NoPriorParticipation: true,
		})

		report := tool.Run()
		assert.True(t, report.Decision.Qualified)
		assert.Equal(t, QualificationQualified, report.Decision.Status)
		assert.Equal(t, string(HighlyEligible), report.Decision.QualificationLevel)
		assert.Contains(t, report.NextSteps, "Proceed with program enrollment")
	})

	t.Run("needs review when consent missing", func(t *testing.T) {
		h := deeplyPoorHousehold(t)
		h.WithdrawConsent()
		scorer := NewEligibilityScorer(h).WithPPIScore(15).WithDistanceToMarket(25)
		tool := NewQualificationTool(scorer, QualificationContext{
			VillageIsProgramArea: true,
			ProgramHasCapacity:   true,
			NoPriorParticipation: true,
		})

		report := tool.Run()
		assert.False(t, report.Decision.Qualified)
		assert.Equal(t, QualificationNeedsReview, report.Decision.Status)
		assert.Equal(t, "conditional", report.Decision.QualificationLevel)
		assert.Contains(t, report.Decision.BlockingFactors, "consent_and_commitment")
	})

	t.Run("not qualified when score is too low", func(t *testing.T) {
		h := comfortableHousehold(t)
		scorer := NewEligibilityScorer(h).WithPPIScore(90).WithDistanceToMarket(2)
		tool := NewQualificationTool(scorer, QualificationContext{
			VillageIsProgramArea: true,
			ProgramHasCapacity:   true,
			NoPriorParticipation: true,
		})

		report := tool.Run()
		assert.Equal(t, QualificationNotQualified, report.Decision.Status)
		assert.Contains(t, report.NextSteps, "Refer to alternative programs")
	})
}

func TestBatchEligibilityAssessment(t *testing.T) {
	poor := deeplyPoorHousehold(t)
	rich := comfortableHousehold(t)
	poorPPI := 15
	richPPI := 90

	results := BatchEligibilityAssessment([]BatchInput{
		{Household: rich, LatestPPIScore: &richPPI, DistanceToMarket: 2},
		{Household: poor, LatestPPIScore: &poorPPI, DistanceToMarket: 25},
	})

	require.Len(t, results, 2)
	// Sorted by score, highest first
	assert.Equal(t, poor.ID, results[0].HouseholdID)
	assert.True(t, results[0].Eligible)
	assert.Equal(t, rich.ID, results[1].HouseholdID)
	assert.False(t, results[1].Eligible)
	assert.Greater(t, results[0].TotalScore, results[1].TotalScore)
}
