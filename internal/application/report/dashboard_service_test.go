package report

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/report"
	"github.com/upg/backend/internal/domain/shared"
)

// MockDashboardRepository is a mock implementation of report.DashboardRepository
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) HouseholdSummary(ctx context.Context) (*report.HouseholdSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.HouseholdSummary), args.Error(1)
}

func (m *MockDashboardRepository) EnrollmentFunnel(ctx context.Context, programID uuid.UUID) (*report.EnrollmentFunnel, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.EnrollmentFunnel), args.Error(1)
}

func (m *MockDashboardRepository) EnrollmentFunnels(ctx context.Context) ([]*report.EnrollmentFunnel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*report.EnrollmentFunnel), args.Error(1)
}

func (m *MockDashboardRepository) GrantSummary(ctx context.Context) (*report.GrantSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.GrantSummary), args.Error(1)
}

func (m *MockDashboardRepository) SavingsSummary(ctx context.Context, trendMonths int) (*report.SavingsSummary, error) {
	args := m.Called(ctx, trendMonths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.SavingsSummary), args.Error(1)
}

func (m *MockDashboardRepository) GroupHealthSummary(ctx context.Context) (*report.GroupHealthSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.GroupHealthSummary), args.Error(1)
}

func (m *MockDashboardRepository) TrainingSummary(ctx context.Context) (*report.TrainingSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.TrainingSummary), args.Error(1)
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected *shared.DomainError, got %T: %v", err, err)
	assert.Equal(t, code, domainErr.Code)
}

func newTestDashboardService() (*DashboardService, *MockDashboardRepository) {
	repo := new(MockDashboardRepository)
	return NewDashboardService(repo, zap.NewNop()), repo
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestDashboardService()

	repo.On("HouseholdSummary", ctx).Return(&report.HouseholdSummary{
		TotalHouseholds: 1200,
		WithConsent:     1100,
		ByEligibility: []report.EligibilityCount{
			{Level: "highly_eligible", Count: 300},
			{Level: "eligible", Count: 500},
		},
	}, nil)
	repo.On("EnrollmentFunnels", ctx).Return([]*report.EnrollmentFunnel{
		{ProgramName: "UPG Cycle 1", Eligible: 200, Active: 600, Graduated: 150, DroppedOut: 50},
	}, nil)
	repo.On("GrantSummary", ctx).Return(&report.GrantSummary{
		TotalSBDisbursed: decimal.NewFromInt(4500000),
		TotalPRDisbursed: decimal.NewFromInt(300000),
	}, nil)
	repo.On("SavingsSummary", ctx, defaultTrendMonths).Return(&report.SavingsSummary{
		TotalGroups: 80,
		TotalSaved:  decimal.NewFromInt(950000),
	}, nil)
	repo.On("GroupHealthSummary", ctx).Return(&report.GroupHealthSummary{Green: 40, Yellow: 25, Red: 15}, nil)
	repo.On("TrainingSummary", ctx).Return(&report.TrainingSummary{
		TotalTrainings: 64,
		AttendanceRate: 0.82,
	}, nil)

	dashboard, err := svc.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(1200), dashboard.Households.TotalHouseholds)
	assert.Equal(t, "4800000.00", dashboard.Grants.TotalDisbursed)
	assert.Equal(t, int64(80), dashboard.GroupHealth.Total())
	assert.False(t, dashboard.GeneratedAt.IsZero())
}

func TestProgramFunnel(t *testing.T) {
	ctx := context.Background()

	t.Run("derives rates from the raw counts", func(t *testing.T) {
		svc, repo := newTestDashboardService()
		programID := uuid.New()

		repo.On("EnrollmentFunnel", ctx, programID).Return(&report.EnrollmentFunnel{
			ProgramID:   programID,
			ProgramName: "UPG Cycle 1",
			Eligible:    100,
			Enrolled:    50,
			Active:      400,
			Graduated:   120,
			DroppedOut:  30,
		}, nil)

		funnel, err := svc.ProgramFunnel(ctx, programID)

		require.NoError(t, err)
		assert.Equal(t, int64(700), funnel.Total)
		assert.InDelta(t, 0.8, funnel.GraduationRate, 0.0001)
	})

	t.Run("maps missing programs", func(t *testing.T) {
		svc, repo := newTestDashboardService()
		programID := uuid.New()

		repo.On("EnrollmentFunnel", ctx, programID).Return(nil, shared.ErrNotFound)

		_, err := svc.ProgramFunnel(ctx, programID)
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestSavingsSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults the trend window", func(t *testing.T) {
		svc, repo := newTestDashboardService()

		repo.On("SavingsSummary", ctx, defaultTrendMonths).Return(&report.SavingsSummary{
			TotalGroups: 80,
			TotalSaved:  decimal.NewFromInt(950000),
		}, nil)

		summary, err := svc.SavingsSummary(ctx, 0)
		require.NoError(t, err)
		assert.True(t, summary.TotalSaved.Equal(decimal.NewFromInt(950000)))
	})

	t.Run("rejects oversized windows", func(t *testing.T) {
		svc, repo := newTestDashboardService()

		_, err := svc.SavingsSummary(ctx, 120)

		assertDomainErrorCode(t, err, "INVALID_TREND_WINDOW")
		repo.AssertNotCalled(t, "SavingsSummary", mock.Anything, mock.Anything)
	})
}

func TestGraduationRateEdgeCases(t *testing.T) {
	empty := report.EnrollmentFunnel{Active: 300}
	assert.Zero(t, empty.GraduationRate())
	assert.Equal(t, int64(300), empty.Total())
}
