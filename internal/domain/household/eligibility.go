package household

import (
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EligibilityLevel classifies a household's eligibility for the graduation
// program
type EligibilityLevel string

const (
	HighlyEligible     EligibilityLevel = "highly_eligible"
	Eligible           EligibilityLevel = "eligible"
	MarginallyEligible EligibilityLevel = "marginally_eligible"
	NotEligible        EligibilityLevel = "not_eligible"
)

// Category weights for the comprehensive eligibility score
const (
	weightPovertyIndex   = 0.30
	weightIncomeLevel    = 0.25
	weightAssetOwnership = 0.15
	weightSocialFactors  = 0.15
	weightGeographic     = 0.10
	weightDemographic    = 0.05
)

// Score thresholds for eligibility levels
const (
	thresholdHighlyEligible     = 80
	thresholdEligible           = 60
	thresholdMarginallyEligible = 40
)

// Kenya poverty line figures in KES per month
var (
	extremePovertyLine = decimal.NewFromInt(2500)
	povertyLine        = decimal.NewFromInt(5000)
)

// Asset categories used in asset ownership scoring
var (
	basicAssets      = []string{"bicycle", "radio", "mobile_phone"}
	productiveAssets = []string{"livestock", "land", "business_equipment"}
	luxuryAssets     = []string{"car", "motorcycle", "television", "refrigerator"}
)

// CategoryScores holds the per-category raw scores (0-100 each)
type CategoryScores struct {
	PovertyIndex   float64 `json:"poverty_index"`
	IncomeLevel    float64 `json:"income_level"`
	AssetOwnership float64 `json:"asset_ownership"`
	SocialFactors  float64 `json:"social_factors"`
	Geographic     float64 `json:"geographic"`
	Demographic    float64 `json:"demographic"`
}

// EligibilityResult is the outcome of a comprehensive eligibility assessment
type EligibilityResult struct {
	TotalScore       float64          `json:"total_score"`
	Level            EligibilityLevel `json:"eligibility_level"`
	Categories       CategoryScores   `json:"category_scores"`
	Recommendation   string           `json:"recommendation"`
	ImprovementAreas []string         `json:"improvement_areas"`
}

// EligibleForGraduation reports whether the result qualifies for the
// graduation program
func (r EligibilityResult) EligibleForGraduation() bool {
	return r.Level == HighlyEligible || r.Level == Eligible
}

// EligibleForGeneralSupport reports whether the result qualifies for any
// poverty alleviation program
func (r EligibilityResult) EligibleForGeneralSupport() bool {
	return r.Level != NotEligible
}

// EligibilityScorer computes the weighted eligibility score for a household.
// The PPI score and village context are optional and supplied by the caller
// when available.
type EligibilityScorer struct {
	household        *Household
	latestPPIScore   *int
	distanceToMarket int
}

// NewEligibilityScorer creates a scorer for the given household
func NewEligibilityScorer(h *Household) *EligibilityScorer {
	return &EligibilityScorer{household: h}
}

// WithPPIScore supplies the household's latest PPI score
func (s *EligibilityScorer) WithPPIScore(score int) *EligibilityScorer {
	s.latestPPIScore = &score
	return s
}

// WithDistanceToMarket supplies the village's distance to market in kilometers
func (s *EligibilityScorer) WithDistanceToMarket(km int) *EligibilityScorer {
	s.distanceToMarket = km
	return s
}

// Calculate computes the comprehensive eligibility score
func (s *EligibilityScorer) Calculate() EligibilityResult {
	categories := CategoryScores{
		PovertyIndex:   s.scorePovertyIndex(),
		IncomeLevel:    s.scoreIncomeLevel(),
		AssetOwnership: s.scoreAssetOwnership(),
		SocialFactors:  s.scoreSocialFactors(),
		Geographic:     s.scoreGeographicFactors(),
		Demographic:    s.scoreDemographicFactors(),
	}

	total := categories.PovertyIndex*weightPovertyIndex +
		categories.IncomeLevel*weightIncomeLevel +
		categories.AssetOwnership*weightAssetOwnership +
		categories.SocialFactors*weightSocialFactors +
		categories.Geographic*weightGeographic +
		categories.Demographic*weightDemographic
	total = math.Round(total*100) / 100

	level := levelForScore(total)

	return EligibilityResult{
		TotalScore:       total,
		Level:            level,
		Categories:       categories,
		Recommendation:   recommendationFor(level),
		ImprovementAreas: improvementAreas(categories),
	}
}

func levelForScore(score float64) EligibilityLevel {
	switch {
	case score >= thresholdHighlyEligible:
		return HighlyEligible
	case score >= thresholdEligible:
		return Eligible
	case score >= thresholdMarginallyEligible:
		return MarginallyEligible
	default:
		return NotEligible
	}
}

// scorePovertyIndex converts the PPI score to eligibility points.
// Lower PPI means deeper poverty and therefore higher eligibility.
func (s *EligibilityScorer) scorePovertyIndex() float64 {
	if s.latestPPIScore == nil {
		return 50 // Default when no PPI assessment exists
	}

	ppi := *s.latestPPIScore
	switch {
	case ppi <= 20:
		return 100 // Extremely poor
	case ppi <= 40:
		return 80 // Very poor
	case ppi <= 60:
		return 60 // Moderately poor
	case ppi <= 80:
		return 30 // Less poor
	default:
		return 10 // Least poor
	}
}

func (s *EligibilityScorer) scoreIncomeLevel() float64 {
	income := decimal.Zero
	if s.household.MonthlyIncome != nil {
		income = *s.household.MonthlyIncome
	}

	switch {
	case income.LessThanOrEqual(extremePovertyLine):
		return 100 // Extreme poverty
	case income.LessThanOrEqual(povertyLine):
		return 80 // Below poverty line
	case income.LessThanOrEqual(povertyLine.Mul(decimal.NewFromFloat(1.5))):
		return 60 // Vulnerable
	case income.LessThanOrEqual(povertyLine.Mul(decimal.NewFromInt(2))):
		return 40 // Low income
	default:
		return 20 // Above target income level
	}
}

// scoreAssetOwnership scores the household inventory; fewer assets means
// higher eligibility
func (s *EligibilityScorer) scoreAssetOwnership() float64 {
	assets := s.household.Assets

	countOwned := func(names []string) int {
		n := 0
		for _, name := range names {
			if assets[name] {
				n++
			}
		}
		return n
	}

	basic := countOwned(basicAssets)
	productive := countOwned(productiveAssets)
	luxury := countOwned(luxuryAssets)

	switch {
	case luxury > 2:
		return 10
	case luxury > 0 || productive > 2:
		return 30
	case productive > 0 || basic > 2:
		return 60
	case basic > 0:
		return 80
	default:
		return 100 // No recorded assets
	}
}

func (s *EligibilityScorer) scoreSocialFactors() float64 {
	score := 50.0

	if s.household.HeadGender() == GenderFemale {
		score += 15
	}

	headAge := s.household.HeadAge()
	if headAge >= 65 {
		score += 10
	} else if headAge >= 55 {
		score += 5
	}

	if s.household.HasDisabledMember {
		score += 15
	}

	if s.household.IsSingleParent() {
		score += 10
	}

	total := s.household.TotalMembers()
	working := s.household.WorkingMembersCount()
	if working < 1 {
		working = 1
	}
	dependencyRatio := float64(total-s.household.WorkingMembersCount()) / float64(working)
	switch {
	case dependencyRatio >= 3:
		score += 15
	case dependencyRatio >= 2:
		score += 10
	case dependencyRatio >= 1:
		score += 5
	}

	return math.Min(score, 100)
}

func (s *EligibilityScorer) scoreGeographicFactors() float64 {
	score := 50.0

	location := strings.ToLower(s.household.Location)
	for _, keyword := range []string{"remote", "rural", "isolated"} {
		if strings.Contains(location, keyword) {
			score += 20
			break
		}
	}

	switch {
	case s.distanceToMarket > 20:
		score += 15
	case s.distanceToMarket > 10:
		score += 10
	case s.distanceToMarket > 5:
		score += 5
	}

	if !s.household.HasElectricity {
		score += 10
	}
	if !s.household.HasCleanWater {
		score += 15
	}

	return math.Min(score, 100)
}

func (s *EligibilityScorer) scoreDemographicFactors() float64 {
	score := 50.0

	total := s.household.TotalMembers()
	switch {
	case total >= 8:
		score += 20
	case total >= 6:
		score += 15
	case total >= 4:
		score += 10
	case total <= 2:
		score -= 10
	}

	children := s.household.ChildrenUnder5Count()
	switch {
	case children >= 3:
		score += 15
	case children >= 2:
		score += 10
	case children >= 1:
		score += 5
	}

	switch s.household.HeadEducationLevel() {
	case EducationNone:
		score += 15
	case EducationPrimary:
		score += 10
	case EducationSecondary:
		score += 5
	}

	return math.Min(math.Max(score, 0), 100)
}

func recommendationFor(level EligibilityLevel) string {
	switch level {
	case HighlyEligible:
		return "Highly recommended for immediate enrollment. This household meets all criteria for ultra-poor graduation program."
	case Eligible:
		return "Recommended for enrollment. This household would benefit significantly from the graduation program."
	case MarginallyEligible:
		return "Consider for enrollment based on program capacity. May need additional assessment of specific vulnerabilities."
	default:
		return "Not recommended for ultra-poor graduation program. Consider referral to other appropriate programs."
	}
}

func improvementAreas(categories CategoryScores) []string {
	areas := make([]string, 0)
	if categories.PovertyIndex < 60 {
		areas = append(areas, "Consider updated PPI assessment")
	}
	if categories.IncomeLevel < 60 {
		areas = append(areas, "Income documentation may need verification")
	}
	if categories.AssetOwnership < 60 {
		areas = append(areas, "Asset assessment may need review")
	}
	if categories.SocialFactors < 60 {
		areas = append(areas, "Social vulnerability factors need assessment")
	}
	if categories.Geographic < 60 {
		areas = append(areas, "Geographic accessibility factors")
	}
	if categories.Demographic < 60 {
		areas = append(areas, "Demographic characteristics assessment")
	}
	return areas
}

// BatchAssessmentEntry pairs a household with its assessment result
type BatchAssessmentEntry struct {
	HouseholdID   uuid.UUID        `json:"household_id"`
	HouseholdName string           `json:"household_name"`
	TotalScore    float64          `json:"total_score"`
	Level         EligibilityLevel `json:"eligibility_level"`
	Eligible      bool             `json:"eligible"`
}

// BatchInput carries a household and its optional scoring context
type BatchInput struct {
	Household        *Household
	LatestPPIScore   *int
	DistanceToMarket int
}

// BatchEligibilityAssessment assesses multiple households and returns results
// sorted by score, highest first
func BatchEligibilityAssessment(inputs []BatchInput) []BatchAssessmentEntry {
	results := make([]BatchAssessmentEntry, 0, len(inputs))
	for _, in := range inputs {
		scorer := NewEligibilityScorer(in.Household).WithDistanceToMarket(in.DistanceToMarket)
		if in.LatestPPIScore != nil {
			scorer = scorer.WithPPIScore(*in.LatestPPIScore)
		}
		result := scorer.Calculate()
		results = append(results, BatchAssessmentEntry{
			HouseholdID:   in.Household.ID,
			HouseholdName: in.Household.Name,
			TotalScore:    result.TotalScore,
			Level:         result.Level,
			Eligible:      result.EligibleForGraduation(),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})

	return results
}
