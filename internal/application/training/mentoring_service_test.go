package training

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/training"
)

// MockMentoringRepository is a mock implementation of training.MentoringRepository
type MockMentoringRepository struct {
	mock.Mock
}

func (m *MockMentoringRepository) SaveVisit(ctx context.Context, visit *training.MentoringVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockMentoringRepository) FindVisitsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*training.MentoringVisit, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.MentoringVisit), args.Error(1)
}

func (m *MockMentoringRepository) FindVisitsByMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*training.MentoringVisit, error) {
	args := m.Called(ctx, mentorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.MentoringVisit), args.Error(1)
}

func (m *MockMentoringRepository) SaveNudge(ctx context.Context, nudge *training.PhoneNudge) error {
	args := m.Called(ctx, nudge)
	return args.Error(0)
}

func (m *MockMentoringRepository) FindNudgesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*training.PhoneNudge, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.PhoneNudge), args.Error(1)
}

func (m *MockMentoringRepository) FindNudgesByMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*training.PhoneNudge, error) {
	args := m.Called(ctx, mentorID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.PhoneNudge), args.Error(1)
}

func (m *MockMentoringRepository) SaveReport(ctx context.Context, report *training.MentoringReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockMentoringRepository) FindReport(ctx context.Context, mentorID uuid.UUID, period training.ReportingPeriod, periodStart time.Time) (*training.MentoringReport, error) {
	args := m.Called(ctx, mentorID, period, periodStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.MentoringReport), args.Error(1)
}

func (m *MockMentoringRepository) FindReportsByMentor(ctx context.Context, mentorID uuid.UUID) ([]*training.MentoringReport, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*training.MentoringReport), args.Error(1)
}

func newTestMentoringService() (*MentoringService, *MockMentoringRepository, *MockHouseholdRepository) {
	mentoringRepo := new(MockMentoringRepository)
	householdRepo := new(MockHouseholdRepository)
	svc := NewMentoringService(mentoringRepo, householdRepo, zap.NewNop())
	return svc, mentoringRepo, householdRepo
}

func TestRecordVisit(t *testing.T) {
	ctx := context.Background()

	t.Run("records an on-site visit by default", func(t *testing.T) {
		svc, mentoringRepo, householdRepo := newTestMentoringService()
		h := newTestHousehold(t, "")
		mentorID := uuid.New()

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		mentoringRepo.On("SaveVisit", ctx, mock.MatchedBy(func(v *training.MentoringVisit) bool {
			return v.HouseholdID == h.ID && v.VisitType == training.VisitOnSite
		})).Return(nil)

		resp, err := svc.RecordVisit(ctx, RecordVisitRequest{
			HouseholdID: h.ID,
			Topic:       "Poultry feed budgeting",
			Notes:       "Walked through weekly feed costs",
			MentorID:    mentorID,
		})

		require.NoError(t, err)
		assert.Equal(t, "on_site", resp.VisitType)
		assert.Equal(t, mentorID, resp.MentorID)
		assert.False(t, resp.VisitDate.IsZero())
	})

	t.Run("rejects a visit without a topic", func(t *testing.T) {
		svc, mentoringRepo, householdRepo := newTestMentoringService()
		h := newTestHousehold(t, "")

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)

		_, err := svc.RecordVisit(ctx, RecordVisitRequest{
			HouseholdID: h.ID,
			Topic:       "   ",
		})

		assertDomainErrorCode(t, err, "MISSING_TOPIC")
		mentoringRepo.AssertNotCalled(t, "SaveVisit", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown household", func(t *testing.T) {
		svc, _, householdRepo := newTestMentoringService()
		householdID := uuid.New()

		householdRepo.On("FindByID", ctx, householdID).Return(nil, shared.ErrNotFound)

		_, err := svc.RecordVisit(ctx, RecordVisitRequest{
			HouseholdID: householdID,
			Topic:       "Record keeping",
		})

		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestRecordNudge(t *testing.T) {
	ctx := context.Background()

	t.Run("marks an unanswered call unreachable", func(t *testing.T) {
		svc, mentoringRepo, householdRepo := newTestMentoringService()
		h := newTestHousehold(t, "+254701234567")
		unanswered := false

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		mentoringRepo.On("SaveNudge", ctx, mock.MatchedBy(func(n *training.PhoneNudge) bool {
			return n.HouseholdID == h.ID && !n.SuccessfulContact
		})).Return(nil)

		resp, err := svc.RecordNudge(ctx, RecordNudgeRequest{
			HouseholdID:       h.ID,
			NudgeType:         "follow_up",
			DurationMinutes:   0,
			SuccessfulContact: &unanswered,
			MentorID:          uuid.New(),
		})

		require.NoError(t, err)
		assert.False(t, resp.SuccessfulContact)
		assert.Equal(t, "follow_up", resp.NudgeType)
	})

	t.Run("defaults to a successful contact", func(t *testing.T) {
		svc, mentoringRepo, householdRepo := newTestMentoringService()
		h := newTestHousehold(t, "+254701234567")

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		mentoringRepo.On("SaveNudge", ctx, mock.Anything).Return(nil)

		resp, err := svc.RecordNudge(ctx, RecordNudgeRequest{
			HouseholdID:     h.ID,
			NudgeType:       "business_advice",
			DurationMinutes: 12,
			MentorID:        uuid.New(),
		})

		require.NoError(t, err)
		assert.True(t, resp.SuccessfulContact)
		assert.Equal(t, 12, resp.DurationMinutes)
	})

	t.Run("rejects an unknown nudge type", func(t *testing.T) {
		svc, mentoringRepo, householdRepo := newTestMentoringService()
		h := newTestHousehold(t, "")

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)

		_, err := svc.RecordNudge(ctx, RecordNudgeRequest{
			HouseholdID: h.ID,
			NudgeType:   "cold_call",
		})

		assertDomainErrorCode(t, err, "INVALID_NUDGE_TYPE")
		mentoringRepo.AssertNotCalled(t, "SaveNudge", mock.Anything, mock.Anything)
	})
}

func TestSubmitReport(t *testing.T) {
	ctx := context.Background()
	mentorID := uuid.New()
	periodStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("files a monthly report", func(t *testing.T) {
		svc, mentoringRepo, _ := newTestMentoringService()

		mentoringRepo.On("FindReport", ctx, mentorID, training.PeriodMonthly, periodStart).Return(nil, shared.ErrNotFound)
		mentoringRepo.On("SaveReport", ctx, mock.MatchedBy(func(r *training.MentoringReport) bool {
			return r.MentorID == mentorID && r.HouseholdsVisited == 18 && r.PhoneNudgesMade == 42
		})).Return(nil)

		resp, err := svc.SubmitReport(ctx, SubmitReportRequest{
			ReportingPeriod:   "monthly",
			PeriodStart:       periodStart,
			PeriodEnd:         periodEnd,
			KeyActivities:     "Visited 18 households, ran module 3 refresher",
			ChallengesFaced:   "Flooded roads around Kalokol for two weeks",
			HouseholdsVisited: 18,
			PhoneNudgesMade:   42,
			MentorID:          mentorID,
		})

		require.NoError(t, err)
		assert.Equal(t, "monthly", resp.ReportingPeriod)
		assert.Equal(t, 18, resp.HouseholdsVisited)
		assert.False(t, resp.SubmittedDate.IsZero())
	})

	t.Run("rejects a duplicate report for the same period", func(t *testing.T) {
		svc, mentoringRepo, _ := newTestMentoringService()
		existing, err := training.NewMentoringReport(mentorID, training.PeriodMonthly, periodStart, periodEnd, "Prior filing")
		require.NoError(t, err)

		mentoringRepo.On("FindReport", ctx, mentorID, training.PeriodMonthly, periodStart).Return(existing, nil)

		_, err = svc.SubmitReport(ctx, SubmitReportRequest{
			ReportingPeriod: "monthly",
			PeriodStart:     periodStart,
			PeriodEnd:       periodEnd,
			KeyActivities:   "Second filing",
			MentorID:        mentorID,
		})

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
		mentoringRepo.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative statistics", func(t *testing.T) {
		svc, mentoringRepo, _ := newTestMentoringService()

		mentoringRepo.On("FindReport", ctx, mentorID, training.PeriodWeekly, periodStart).Return(nil, shared.ErrNotFound)

		_, err := svc.SubmitReport(ctx, SubmitReportRequest{
			ReportingPeriod:   "weekly",
			PeriodStart:       periodStart,
			PeriodEnd:         periodStart.AddDate(0, 0, 6),
			KeyActivities:     "Weekly rounds",
			HouseholdsVisited: -1,
			MentorID:          mentorID,
		})

		assertDomainErrorCode(t, err, "INVALID_STATISTIC")
		mentoringRepo.AssertNotCalled(t, "SaveReport", mock.Anything, mock.Anything)
	})
}

func TestSummarizeActivity(t *testing.T) {
	ctx := context.Background()

	svc, mentoringRepo, _ := newTestMentoringService()
	mentorID := uuid.New()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	visit, err := training.NewMentoringVisit(uuid.New(), mentorID, "Savings discipline", training.VisitOnSite, from.AddDate(0, 0, 3))
	require.NoError(t, err)

	answered, err := training.NewPhoneNudge(uuid.New(), mentorID, training.NudgeCheckIn, from.AddDate(0, 0, 5), 8)
	require.NoError(t, err)
	unreachable, err := training.NewPhoneNudge(uuid.New(), mentorID, training.NudgeReminder, from.AddDate(0, 0, 9), 0)
	require.NoError(t, err)
	unreachable.MarkUnreachable()

	mentoringRepo.On("FindVisitsByMentor", ctx, mentorID, from, to).Return([]*training.MentoringVisit{visit}, nil)
	mentoringRepo.On("FindNudgesByMentor", ctx, mentorID, from, to).Return([]*training.PhoneNudge{answered, unreachable}, nil)

	summary, err := svc.SummarizeActivity(ctx, mentorID, from, to)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.VisitsMade)
	assert.Equal(t, 2, summary.NudgesMade)
	assert.Equal(t, 1, summary.SuccessfulCalls)
}
