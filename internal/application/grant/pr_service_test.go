package grant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/grant"
	"github.com/upg/backend/internal/domain/shared"
)

type prMocks struct {
	prRepo           *MockPRGrantRepository
	sbRepo           *MockSBGrantRepository
	disbursementRepo *MockDisbursementRepository
}

func newTestPRService() (*PRService, prMocks) {
	mocks := prMocks{
		prRepo:           new(MockPRGrantRepository),
		sbRepo:           new(MockSBGrantRepository),
		disbursementRepo: new(MockDisbursementRepository),
	}
	svc := NewPRService(mocks.prRepo, mocks.sbRepo, mocks.disbursementRepo, nil, zap.NewNop())
	return svc, mocks
}

// newCompletedSBGrant builds a seed grant that has cleared the follow-on
// gate: fully disbursed with a utilization report on file.
func newCompletedSBGrant(t *testing.T) *grant.SBGrant {
	t.Helper()
	g := newApprovedSBGrant(t, grant.BusinessGroupApplicant(uuid.New()))
	require.NoError(t, g.RecordDisbursement(g.EffectiveAmount()))
	require.NoError(t, g.RecordUtilization("Bought 150 broiler chicks and feed for the first cycle"))
	g.ClearDomainEvents()
	return g
}

func newPendingPRGrant(t *testing.T) *grant.PRGrant {
	t.Helper()
	sb := newCompletedSBGrant(t)
	g, err := grant.NewPRGrant(sb.ProgramID, sb.Applicant, sb.ID, uuid.New())
	require.NoError(t, err)
	require.NoError(t, g.MarkEligible(sb))
	require.NoError(t, g.Apply())
	g.ClearDomainEvents()
	return g
}

func TestRequestPRGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("opens against a completed seed grant", func(t *testing.T) {
		svc, mocks := newTestPRService()
		sb := newCompletedSBGrant(t)

		mocks.sbRepo.On("FindByID", ctx, sb.ID).Return(sb, nil)
		mocks.prRepo.On("FindBySBGrant", ctx, sb.ID).Return(nil, shared.ErrNotFound)
		mocks.prRepo.On("Create", ctx, mock.MatchedBy(func(g *grant.PRGrant) bool {
			return g.SBGrantID == sb.ID && g.Status == grant.PRPending
		})).Return(nil)

		resp, err := svc.RequestGrant(ctx, RequestPRGrantRequest{SBGrantID: sb.ID, RequestedBy: uuid.New()})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.True(t, resp.Amount.Equal(decimal.RequireFromString("10000")), "got %s", resp.Amount)
	})

	t.Run("rejects when the seed grant is not fully disbursed", func(t *testing.T) {
		svc, mocks := newTestPRService()
		sb := newApprovedSBGrant(t, grant.BusinessGroupApplicant(uuid.New()))

		mocks.sbRepo.On("FindByID", ctx, sb.ID).Return(sb, nil)
		mocks.prRepo.On("FindBySBGrant", ctx, sb.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.RequestGrant(ctx, RequestPRGrantRequest{SBGrantID: sb.ID, RequestedBy: uuid.New()})

		assertDomainErrorCode(t, err, "NOT_ELIGIBLE_FOR_PR")
		mocks.prRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects when the utilization report is missing", func(t *testing.T) {
		svc, mocks := newTestPRService()
		sb := newApprovedSBGrant(t, grant.BusinessGroupApplicant(uuid.New()))
		require.NoError(t, sb.RecordDisbursement(sb.EffectiveAmount()))
		sb.ClearDomainEvents()

		mocks.sbRepo.On("FindByID", ctx, sb.ID).Return(sb, nil)
		mocks.prRepo.On("FindBySBGrant", ctx, sb.ID).Return(nil, shared.ErrNotFound)

		_, err := svc.RequestGrant(ctx, RequestPRGrantRequest{SBGrantID: sb.ID, RequestedBy: uuid.New()})

		assertDomainErrorCode(t, err, "NOT_ELIGIBLE_FOR_PR")
	})

	t.Run("rejects a second follow-on for the same seed grant", func(t *testing.T) {
		svc, mocks := newTestPRService()
		sb := newCompletedSBGrant(t)
		existing := newPendingPRGrant(t)

		mocks.sbRepo.On("FindByID", ctx, sb.ID).Return(sb, nil)
		mocks.prRepo.On("FindBySBGrant", ctx, sb.ID).Return(existing, nil)

		_, err := svc.RequestGrant(ctx, RequestPRGrantRequest{SBGrantID: sb.ID, RequestedBy: uuid.New()})

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
	})
}

func TestAssessPerformance(t *testing.T) {
	ctx := context.Background()

	t.Run("grades the business and records metrics", func(t *testing.T) {
		svc, mocks := newTestPRService()
		g := newPendingPRGrant(t)
		revenue := decimal.RequireFromString("48000")
		savings := decimal.RequireFromString("12500")

		mocks.prRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		mocks.prRepo.On("Update", ctx, g).Return(nil)

		resp, err := svc.Assess(ctx, g.ID, AssessPerformanceRequest{
			Score:              88,
			Assessment:         "Flock doubled, steady market at Kalokol",
			RevenueGenerated:   &revenue,
			SavingsAccumulated: &savings,
			JobsCreated:        3,
			AssessedBy:         uuid.New(),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.PerformanceScore)
		assert.Equal(t, 88, *resp.PerformanceScore)
		assert.Equal(t, "excellent", resp.PerformanceRating)
		assert.Equal(t, 3, resp.JobsCreated)
		require.NotNil(t, resp.RevenueGenerated)
		assert.True(t, resp.RevenueGenerated.Equal(revenue))
	})

	t.Run("rejects an out-of-range score", func(t *testing.T) {
		svc, mocks := newTestPRService()
		g := newPendingPRGrant(t)

		mocks.prRepo.On("FindByID", ctx, g.ID).Return(g, nil)

		_, err := svc.Assess(ctx, g.ID, AssessPerformanceRequest{Score: 120, AssessedBy: uuid.New()})

		assertDomainErrorCode(t, err, "INVALID_PERFORMANCE_SCORE")
		mocks.prRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestDisbursePRGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("pays out the full award once approved", func(t *testing.T) {
		svc, mocks := newTestPRService()
		g := newPendingPRGrant(t)
		require.NoError(t, g.Approve(uuid.New()))
		g.ClearDomainEvents()

		mocks.prRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		mocks.prRepo.On("Update", ctx, g).Return(nil)
		mocks.disbursementRepo.On("Create", ctx, mock.MatchedBy(func(d *grant.Disbursement) bool {
			return d.PRGrantID != nil && *d.PRGrantID == g.ID && d.Kind == grant.GrantKindPR
		})).Return(nil)

		resp, err := svc.Disburse(ctx, g.ID, DisburseGrantRequest{
			Method:        "mobile_money",
			Reference:     "MPESA-QY99881",
			RecipientName: "Nadapal Poultry",
			ProcessedBy:   uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "disbursed", resp.Status)
		require.NotNil(t, resp.DisbursementDate)
	})

	t.Run("rejects payout before approval", func(t *testing.T) {
		svc, mocks := newTestPRService()
		g := newPendingPRGrant(t)

		mocks.prRepo.On("FindByID", ctx, g.ID).Return(g, nil)

		_, err := svc.Disburse(ctx, g.ID, DisburseGrantRequest{
			Method:        "cash",
			RecipientName: "Nadapal Poultry",
			ProcessedBy:   uuid.New(),
		})

		assertDomainErrorCode(t, err, "NOT_APPROVED")
		mocks.disbursementRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("cannot cancel after disbursement", func(t *testing.T) {
		svc, mocks := newTestPRService()
		g := newPendingPRGrant(t)
		require.NoError(t, g.Approve(uuid.New()))
		require.NoError(t, g.Disburse(uuid.New()))
		g.ClearDomainEvents()

		mocks.prRepo.On("FindByID", ctx, g.ID).Return(g, nil)

		_, err := svc.Cancel(ctx, g.ID)

		assertDomainErrorCode(t, err, "INVALID_STATE")
	})
}
