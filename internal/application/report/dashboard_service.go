package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/report"
	"github.com/upg/backend/internal/domain/shared"
)

// Default number of months shown on the savings trend chart.
const defaultTrendMonths = 12

// DashboardResponse bundles every aggregate the dashboard renders
type DashboardResponse struct {
	Households  *report.HouseholdSummary   `json:"households"`
	Enrollment  []*report.EnrollmentFunnel `json:"enrollment"`
	Grants      *GrantSummaryResponse      `json:"grants"`
	Savings     *report.SavingsSummary     `json:"savings"`
	GroupHealth *report.GroupHealthSummary `json:"group_health"`
	Training    *report.TrainingSummary    `json:"training"`
	GeneratedAt time.Time                  `json:"generated_at"`
}

// GrantSummaryResponse adds the combined total to the grant read model
type GrantSummaryResponse struct {
	report.GrantSummary
	TotalDisbursed string `json:"total_disbursed"`
}

// FunnelResponse adds derived rates to one program's funnel
type FunnelResponse struct {
	report.EnrollmentFunnel
	Total          int64   `json:"total"`
	GraduationRate float64 `json:"graduation_rate"`
}

// DashboardService assembles program-wide aggregates for reporting
type DashboardService struct {
	dashboardRepo report.DashboardRepository
	logger        *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(dashboardRepo report.DashboardRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo, logger: logger}
}

// Dashboard assembles the full dashboard in one call
func (s *DashboardService) Dashboard(ctx context.Context) (*DashboardResponse, error) {
	households, err := s.dashboardRepo.HouseholdSummary(ctx)
	if err != nil {
		return nil, s.internal("household summary", err)
	}
	funnels, err := s.dashboardRepo.EnrollmentFunnels(ctx)
	if err != nil {
		return nil, s.internal("enrollment funnels", err)
	}
	grants, err := s.GrantSummary(ctx)
	if err != nil {
		return nil, err
	}
	savings, err := s.dashboardRepo.SavingsSummary(ctx, defaultTrendMonths)
	if err != nil {
		return nil, s.internal("savings summary", err)
	}
	health, err := s.dashboardRepo.GroupHealthSummary(ctx)
	if err != nil {
		return nil, s.internal("group health summary", err)
	}
	training, err := s.dashboardRepo.TrainingSummary(ctx)
	if err != nil {
		return nil, s.internal("training summary", err)
	}

	return &DashboardResponse{
		Households:  households,
		Enrollment:  funnels,
		Grants:      grants,
		Savings:     savings,
		GroupHealth: health,
		Training:    training,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// HouseholdSummary returns the household population aggregate
func (s *DashboardService) HouseholdSummary(ctx context.Context) (*report.HouseholdSummary, error) {
	summary, err := s.dashboardRepo.HouseholdSummary(ctx)
	if err != nil {
		return nil, s.internal("household summary", err)
	}
	return summary, nil
}

// ProgramFunnel returns one program's enrollment funnel with derived rates
func (s *DashboardService) ProgramFunnel(ctx context.Context, programID uuid.UUID) (*FunnelResponse, error) {
	funnel, err := s.dashboardRepo.EnrollmentFunnel(ctx, programID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Program not found")
		}
		return nil, s.internal("enrollment funnel", err)
	}
	return &FunnelResponse{
		EnrollmentFunnel: *funnel,
		Total:            funnel.Total(),
		GraduationRate:   funnel.GraduationRate(),
	}, nil
}

// GrantSummary returns the grant pipeline aggregate
func (s *DashboardService) GrantSummary(ctx context.Context) (*GrantSummaryResponse, error) {
	summary, err := s.dashboardRepo.GrantSummary(ctx)
	if err != nil {
		return nil, s.internal("grant summary", err)
	}
	return &GrantSummaryResponse{
		GrantSummary:   *summary,
		TotalDisbursed: summary.TotalDisbursed().StringFixed(2),
	}, nil
}

// SavingsSummary returns ledger totals plus a monthly deposit trend
func (s *DashboardService) SavingsSummary(ctx context.Context, trendMonths int) (*report.SavingsSummary, error) {
	if trendMonths <= 0 {
		trendMonths = defaultTrendMonths
	}
	if trendMonths > 60 {
		return nil, shared.NewDomainError("INVALID_TREND_WINDOW", "trend window cannot exceed 60 months")
	}

	summary, err := s.dashboardRepo.SavingsSummary(ctx, trendMonths)
	if err != nil {
		return nil, s.internal("savings summary", err)
	}
	return summary, nil
}

// TrainingSummary returns training delivery and attendance aggregates
func (s *DashboardService) TrainingSummary(ctx context.Context) (*report.TrainingSummary, error) {
	summary, err := s.dashboardRepo.TrainingSummary(ctx)
	if err != nil {
		return nil, s.internal("training summary", err)
	}
	return summary, nil
}

// GroupHealthSummary returns the business-group traffic-light counts
func (s *DashboardService) GroupHealthSummary(ctx context.Context) (*report.GroupHealthSummary, error) {
	summary, err := s.dashboardRepo.GroupHealthSummary(ctx)
	if err != nil {
		return nil, s.internal("group health summary", err)
	}
	return summary, nil
}

func (s *DashboardService) internal(what string, err error) error {
	s.logger.Error("dashboard aggregate failed", zap.String("aggregate", what), zap.Error(err))
	return shared.NewDomainError("INTERNAL_ERROR", "Failed to compute "+what)
}
