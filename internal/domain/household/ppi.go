package household

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
)

// PPIAssessment is a Poverty Probability Index score recorded for a household
type PPIAssessment struct {
	shared.BaseEntity
	HouseholdID    uuid.UUID
	Name           string // e.g. Baseline PPI, Endline PPI
	Score          int    // 0-100
	AssessmentDate time.Time
}

// NewPPIAssessment records a PPI score for a household
func NewPPIAssessment(householdID uuid.UUID, name string, score int, assessmentDate time.Time) (*PPIAssessment, error) {
	if householdID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_HOUSEHOLD_ID", "Household ID cannot be empty")
	}
	if score < 0 || score > 100 {
		return nil, shared.NewDomainError("INVALID_PPI_SCORE", "PPI score must be between 0 and 100")
	}
	if assessmentDate.IsZero() {
		assessmentDate = time.Now()
	}

	return &PPIAssessment{
		BaseEntity:     shared.NewBaseEntity(),
		HouseholdID:    householdID,
		Name:           strings.TrimSpace(name),
		Score:          score,
		AssessmentDate: assessmentDate,
	}, nil
}
