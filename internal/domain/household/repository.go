package household

import (
	"context"

	"github.com/google/uuid"
)

// HouseholdRepository persists households, members, and PPI assessments
type HouseholdRepository interface {
	Create(ctx context.Context, household *Household) error
	Update(ctx context.Context, household *Household) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Household, error)
	FindByNationalID(ctx context.Context, nationalID string) (*Household, error)
	FindAll(ctx context.Context, filter HouseholdFilter) ([]*Household, int64, error)
	FindByVillage(ctx context.Context, villageID uuid.UUID) ([]*Household, error)
	Count(ctx context.Context) (int64, error)

	// Member roster
	SaveMembers(ctx context.Context, household *Household) error
	LoadMembers(ctx context.Context, household *Household) error

	// PPI assessments
	SavePPIAssessment(ctx context.Context, assessment *PPIAssessment) error
	FindPPIAssessments(ctx context.Context, householdID uuid.UUID) ([]*PPIAssessment, error)
	FindLatestPPIAssessment(ctx context.Context, householdID uuid.UUID) (*PPIAssessment, error)
}

// HouseholdFilter contains filter options for querying households
type HouseholdFilter struct {
	Keyword     string
	VillageID   *uuid.UUID
	SubCountyID *uuid.UUID
	HasConsent  *bool
	Page        int
	PageSize    int
}

// NewHouseholdFilter creates a filter with default values
func NewHouseholdFilter() HouseholdFilter {
	return HouseholdFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f HouseholdFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f HouseholdFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
