package report

import (
	"context"

	"github.com/google/uuid"
)

// DashboardRepository computes dashboard aggregates with database-side
// queries. Implementations read across contexts; they never mutate.
type DashboardRepository interface {
	HouseholdSummary(ctx context.Context) (*HouseholdSummary, error)
	EnrollmentFunnel(ctx context.Context, programID uuid.UUID) (*EnrollmentFunnel, error)
	EnrollmentFunnels(ctx context.Context) ([]*EnrollmentFunnel, error)
	GrantSummary(ctx context.Context) (*GrantSummary, error)
	SavingsSummary(ctx context.Context, trendMonths int) (*SavingsSummary, error)
	GroupHealthSummary(ctx context.Context) (*GroupHealthSummary, error)
	TrainingSummary(ctx context.Context) (*TrainingSummary, error)
}
