package household

import "time"

// QualificationStatus is the outcome of a qualification assessment
type QualificationStatus string

const (
	QualificationQualified    QualificationStatus = "qualified"
	QualificationNeedsReview  QualificationStatus = "needs_review"
	QualificationNotQualified QualificationStatus = "not_qualified"
)

// QualificationChecks are the gate conditions beyond the eligibility score
type QualificationChecks struct {
	GeographicEligibility bool `json:"geographic_eligibility"` // Village is in a program target area
	ProgramCapacity       bool `json:"program_capacity"`       // Local program has open slots
	PreviousParticipation bool `json:"previous_participation"` // No conflicting prior participation
	ConsentAndCommitment  bool `json:"consent_and_commitment"` // Household consented to participate
}

// AllPass reports whether every gate condition passed
func (c QualificationChecks) AllPass() bool {
	return c.GeographicEligibility && c.ProgramCapacity && c.PreviousParticipation && c.ConsentAndCommitment
}

// BlockingFactors lists the failed checks
func (c QualificationChecks) BlockingFactors() []string {
	factors := make([]string, 0)
	if !c.GeographicEligibility {
		factors = append(factors, "geographic_eligibility")
	}
	if !c.ProgramCapacity {
		factors = append(factors, "program_capacity")
	}
	if !c.PreviousParticipation {
		factors = append(factors, "previous_participation")
	}
	if !c.ConsentAndCommitment {
		factors = append(factors, "consent_and_commitment")
	}
	return factors
}

// QualificationDecision is the final outcome of the assessment
type QualificationDecision struct {
	Qualified          bool                `json:"qualified"`
	QualificationLevel string              `json:"qualification_level"`
	PriorityScore      float64             `json:"priority_score"`
	Status             QualificationStatus `json:"status"`
	BlockingFactors    []string            `json:"blocking_factors,omitempty"`
}

// QualificationReport bundles the full assessment output
type QualificationReport struct {
	Eligibility    EligibilityResult     `json:"eligibility_assessment"`
	Checks         QualificationChecks   `json:"qualification_checks"`
	Decision       QualificationDecision `json:"final_qualification"`
	NextSteps      []string              `json:"next_steps"`
	AssessmentDate time.Time             `json:"assessment_date"`
}

// QualificationContext carries the facts the gate checks depend on
type QualificationContext struct {
	VillageIsProgramArea bool
	ProgramHasCapacity   bool
	NoPriorParticipation bool
}

// QualificationTool runs the full qualification assessment: the weighted
// eligibility score plus the gate checks
type QualificationTool struct {
	scorer  *EligibilityScorer
	context QualificationContext
}

// NewQualificationTool creates a qualification tool around a configured scorer
func NewQualificationTool(scorer *EligibilityScorer, context QualificationContext) *QualificationTool {
	return &QualificationTool{scorer: scorer, context: context}
}

// Run performs the qualification assessment
func (t *QualificationTool) Run() QualificationReport {
	eligibility := t.scorer.Calculate()

	checks := QualificationChecks{
		GeographicEligibility: t.context.VillageIsProgramArea,
		ProgramCapacity:       t.context.ProgramHasCapacity,
		PreviousParticipation: t.context.NoPriorParticipation,
		ConsentAndCommitment:  t.scorer.household.ConsentGiven,
	}

	decision := makeDecision(eligibility, checks)

	return QualificationReport{
		Eligibility:    eligibility,
		Checks:         checks,
		Decision:       decision,
		NextSteps:      nextSteps(decision),
		AssessmentDate: time.Now(),
	}
}

func makeDecision(eligibility EligibilityResult, checks QualificationChecks) QualificationDecision {
	isEligible := eligibility.EligibleForGraduation()

	switch {
	case isEligible && checks.AllPass():
		return QualificationDecision{
			Qualified:          true,
			QualificationLevel: string(eligibility.Level),
			PriorityScore:      eligibility.TotalScore,
			Status:             QualificationQualified,
		}
	case isEligible:
		return QualificationDecision{
			Qualified:          false,
			QualificationLevel: "conditional",
			PriorityScore:      eligibility.TotalScore,
			Status:             QualificationNeedsReview,
			BlockingFactors:    checks.BlockingFactors(),
		}
	default:
		return QualificationDecision{
			Qualified:          false,
			QualificationLevel: "not_qualified",
			PriorityScore:      eligibility.TotalScore,
			Status:             QualificationNotQualified,
		}
	}
}

func nextSteps(decision QualificationDecision) []string {
	switch decision.Status {
	case QualificationQualified:
		return []string{
			"Proceed with program enrollment",
			"Complete household registration",
			"Assign to mentor",
			"Schedule initial training sessions",
		}
	case QualificationNeedsReview:
		return []string{
			"Address blocking factors",
			"Complete additional assessments",
			"Obtain required documentation",
			"Resubmit for qualification review",
		}
	default:
		return []string{
			"Refer to alternative programs",
			"Provide resource information",
			"Consider re-assessment in future",
		}
	}
}
