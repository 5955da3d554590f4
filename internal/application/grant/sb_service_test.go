package grant

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/grant"
	"github.com/upg/backend/internal/domain/group"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
)

// MockSBGrantRepository is a mock implementation of grant.SBGrantRepository
type MockSBGrantRepository struct {
	mock.Mock
}

func (m *MockSBGrantRepository) Create(ctx context.Context, g *grant.SBGrant) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockSBGrantRepository) Update(ctx context.Context, g *grant.SBGrant) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockSBGrantRepository) FindByID(ctx context.Context, id uuid.UUID) (*grant.SBGrant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grant.SBGrant), args.Error(1)
}

func (m *MockSBGrantRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter grant.GrantFilter) ([]*grant.SBGrant, int64, error) {
	args := m.Called(ctx, programID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*grant.SBGrant), args.Get(1).(int64), args.Error(2)
}

func (m *MockSBGrantRepository) FindByBusinessGroup(ctx context.Context, businessGroupID uuid.UUID) (*grant.SBGrant, error) {
	args := m.Called(ctx, businessGroupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grant.SBGrant), args.Error(1)
}

func (m *MockSBGrantRepository) FindByApplicant(ctx context.Context, applicant grant.ApplicantRef) ([]*grant.SBGrant, error) {
	args := m.Called(ctx, applicant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grant.SBGrant), args.Error(1)
}

func (m *MockSBGrantRepository) CountByStatus(ctx context.Context, status grant.GrantStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSBGrantRepository) TotalDisbursed(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockPRGrantRepository is a mock implementation of grant.PRGrantRepository
type MockPRGrantRepository struct {
	mock.Mock
}

func (m *MockPRGrantRepository) Create(ctx context.Context, g *grant.PRGrant) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockPRGrantRepository) Update(ctx context.Context, g *grant.PRGrant) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockPRGrantRepository) FindByID(ctx context.Context, id uuid.UUID) (*grant.PRGrant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grant.PRGrant), args.Error(1)
}

func (m *MockPRGrantRepository) FindBySBGrant(ctx context.Context, sbGrantID uuid.UUID) (*grant.PRGrant, error) {
	args := m.Called(ctx, sbGrantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grant.PRGrant), args.Error(1)
}

func (m *MockPRGrantRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter grant.GrantFilter) ([]*grant.PRGrant, int64, error) {
	args := m.Called(ctx, programID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*grant.PRGrant), args.Get(1).(int64), args.Error(2)
}

func (m *MockPRGrantRepository) CountByStatus(ctx context.Context, status grant.PRGrantStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockDisbursementRepository is a mock implementation of grant.DisbursementRepository
type MockDisbursementRepository struct {
	mock.Mock
}

func (m *MockDisbursementRepository) Create(ctx context.Context, d *grant.Disbursement) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDisbursementRepository) FindBySBGrant(ctx context.Context, sbGrantID uuid.UUID) ([]*grant.Disbursement, error) {
	args := m.Called(ctx, sbGrantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grant.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) FindByPRGrant(ctx context.Context, prGrantID uuid.UUID) ([]*grant.Disbursement, error) {
	args := m.Called(ctx, prGrantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grant.Disbursement), args.Error(1)
}

// MockApplicationRepository is a mock implementation of grant.ApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *grant.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicationRepository) Update(ctx context.Context, a *grant.Application) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*grant.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*grant.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindAll(ctx context.Context, filter grant.ApplicationFilter) ([]*grant.Application, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*grant.Application), args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationRepository) FindByApplicant(ctx context.Context, applicant grant.ApplicantRef) ([]*grant.Application, error) {
	args := m.Called(ctx, applicant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*grant.Application), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context, status grant.ApplicationStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockProgramRepository is a mock implementation of program.ProgramRepository
type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) Create(ctx context.Context, p *program.Program) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgramRepository) Update(ctx context.Context, p *program.Program) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepository) FindByName(ctx context.Context, name string) (*program.Program, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepository) FindAll(ctx context.Context, filter program.ProgramFilter) ([]*program.Program, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*program.Program), args.Get(1).(int64), args.Error(2)
}

func (m *MockProgramRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockProgramRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockBusinessGroupRepository is a mock implementation of group.BusinessGroupRepository
type MockBusinessGroupRepository struct {
	mock.Mock
}

func (m *MockBusinessGroupRepository) Create(ctx context.Context, g *group.BusinessGroup) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockBusinessGroupRepository) Update(ctx context.Context, g *group.BusinessGroup) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockBusinessGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBusinessGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*group.BusinessGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.BusinessGroup), args.Error(1)
}

func (m *MockBusinessGroupRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter group.BusinessGroupFilter) ([]*group.BusinessGroup, int64, error) {
	args := m.Called(ctx, programID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*group.BusinessGroup), args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessGroupRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*group.BusinessGroup, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*group.BusinessGroup), args.Error(1)
}

func (m *MockBusinessGroupRepository) FindAll(ctx context.Context, filter group.BusinessGroupFilter) ([]*group.BusinessGroup, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*group.BusinessGroup), args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessGroupRepository) SaveMembers(ctx context.Context, groupID uuid.UUID, members []group.BusinessGroupMember) error {
	args := m.Called(ctx, groupID, members)
	return args.Error(0)
}

func (m *MockBusinessGroupRepository) LoadMembers(ctx context.Context, groupID uuid.UUID) ([]group.BusinessGroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]group.BusinessGroupMember), args.Error(1)
}

func (m *MockBusinessGroupRepository) SaveProgressSurvey(ctx context.Context, survey *group.BusinessProgressSurvey) error {
	args := m.Called(ctx, survey)
	return args.Error(0)
}

func (m *MockBusinessGroupRepository) FindProgressSurveys(ctx context.Context, groupID uuid.UUID) ([]*group.BusinessProgressSurvey, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*group.BusinessProgressSurvey), args.Error(1)
}

func (m *MockBusinessGroupRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBusinessGroupRepository) CountByHealth(ctx context.Context, health group.BusinessHealth) (int64, error) {
	args := m.Called(ctx, health)
	return args.Get(0).(int64), args.Error(1)
}

// fakeAttendance returns a fixed training attendance rate
type fakeAttendance struct {
	rate float64
	err  error
}

func (f *fakeAttendance) AttendanceRateByBusinessGroup(context.Context, uuid.UUID) (float64, error) {
	return f.rate, f.err
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected *shared.DomainError, got %T: %v", err, err)
	assert.Equal(t, code, domainErr.Code)
}

type sbMocks struct {
	sbRepo           *MockSBGrantRepository
	disbursementRepo *MockDisbursementRepository
	programRepo      *MockProgramRepository
	groupRepo        *MockBusinessGroupRepository
	attendance       *fakeAttendance
}

func newTestSBService() (*SBService, sbMocks) {
	mocks := sbMocks{
		sbRepo:           new(MockSBGrantRepository),
		disbursementRepo: new(MockDisbursementRepository),
		programRepo:      new(MockProgramRepository),
		groupRepo:        new(MockBusinessGroupRepository),
		attendance:       &fakeAttendance{rate: 0.8},
	}
	svc := NewSBService(mocks.sbRepo, mocks.disbursementRepo, mocks.programRepo,
		mocks.groupRepo, mocks.attendance, nil, zap.NewNop())
	return svc, mocks
}

func newGraduationProgram(t *testing.T) *program.Program {
	t.Helper()
	p, err := program.NewProgram("UPG Cycle 1", "Graduation pilot", program.ProgramTypeGraduation, uuid.New())
	require.NoError(t, err)
	return p
}

func newLivestockGroup(t *testing.T, memberCount int) *group.BusinessGroup {
	t.Helper()
	g, err := group.NewBusinessGroup("Nadapal Poultry", uuid.New(), group.BusinessTypeLivestock,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), uuid.New())
	require.NoError(t, err)
	for i := 0; i < memberCount; i++ {
		role := group.MemberRoleMember
		if i == 0 {
			role = group.MemberRoleLeader
		}
		_, err := g.AddMember(uuid.New(), role, time.Now())
		require.NoError(t, err)
	}
	return g
}

func newApprovedSBGrant(t *testing.T, applicant grant.ApplicantRef) *grant.SBGrant {
	t.Helper()
	g, err := grant.NewSBGrant(uuid.New(), applicant, "Poultry expansion plan", uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, g.Approve(uuid.New(), nil))
	g.ClearDomainEvents()
	return g
}

func TestApplySBGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("sizes the award from the group profile", func(t *testing.T) {
		svc, mocks := newTestSBService()
		p := newGraduationProgram(t)
		bg := newLivestockGroup(t, 20)
		mocks.attendance.rate = 0.95

		mocks.programRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		mocks.sbRepo.On("FindByBusinessGroup", ctx, bg.ID).Return(nil, shared.ErrNotFound)
		mocks.groupRepo.On("FindByID", ctx, bg.ID).Return(bg, nil)
		mocks.groupRepo.On("LoadMembers", ctx, bg.ID).Return(bg.Members, nil)
		mocks.sbRepo.On("Create", ctx, mock.AnythingOfType("*grant.SBGrant")).Return(nil)

		resp, err := svc.Apply(ctx, ApplySBGrantRequest{
			ProgramID:    p.ID,
			Applicant:    ApplicantInput{BusinessGroupID: &bg.ID},
			BusinessPlan: "Scale the broiler flock to 200 birds",
			SubmittedBy:  uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "business_group", resp.ApplicantType)
		// 15000 * 1.20 (size) * 1.15 (livestock) * 1.10 (attendance) = 22770
		assert.True(t, resp.EffectiveAmount.Equal(decimal.RequireFromString("22770")),
			"got %s", resp.EffectiveAmount)
	})

	t.Run("stacks all four factors for a strong remote group", func(t *testing.T) {
		svc, mocks := newTestSBService()
		p := newGraduationProgram(t)
		bg := newLivestockGroup(t, 25)
		bg.SetLocation("remote site near Nadapal")
		mocks.attendance.rate = 0.95

		mocks.programRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		mocks.sbRepo.On("FindByBusinessGroup", ctx, bg.ID).Return(nil, shared.ErrNotFound)
		mocks.groupRepo.On("FindByID", ctx, bg.ID).Return(bg, nil)
		mocks.groupRepo.On("LoadMembers", ctx, bg.ID).Return(bg.Members, nil)
		mocks.sbRepo.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := svc.Apply(ctx, ApplySBGrantRequest{
			ProgramID:    p.ID,
			Applicant:    ApplicantInput{BusinessGroupID: &bg.ID},
			BusinessPlan: "Goat restocking",
			SubmittedBy:  uuid.New(),
		})

		require.NoError(t, err)
		// 15000 * 1.20 * 1.15 * 1.05 * 1.10 = 23908.50
		assert.True(t, resp.EffectiveAmount.Equal(decimal.RequireFromString("23908.50")),
			"got %s", resp.EffectiveAmount)
	})

	t.Run("rejects non-graduation programs", func(t *testing.T) {
		svc, mocks := newTestSBService()
		p, err := program.NewProgram("Village Loans", "Group lending", program.ProgramTypeMicrofinance, uuid.New())
		require.NoError(t, err)
		householdID := uuid.New()

		mocks.programRepo.On("FindByID", ctx, p.ID).Return(p, nil)

		_, err = svc.Apply(ctx, ApplySBGrantRequest{
			ProgramID:    p.ID,
			Applicant:    ApplicantInput{HouseholdID: &householdID},
			BusinessPlan: "Kiosk stock",
		})

		assertDomainErrorCode(t, err, "NOT_UPG_PROGRAM")
		mocks.sbRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a second grant for the same business group", func(t *testing.T) {
		svc, mocks := newTestSBService()
		p := newGraduationProgram(t)
		bg := newLivestockGroup(t, 10)
		existing := newApprovedSBGrant(t, grant.BusinessGroupApplicant(bg.ID))

		mocks.programRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		mocks.sbRepo.On("FindByBusinessGroup", ctx, bg.ID).Return(existing, nil)

		_, err := svc.Apply(ctx, ApplySBGrantRequest{
			ProgramID:    p.ID,
			Applicant:    ApplicantInput{BusinessGroupID: &bg.ID},
			BusinessPlan: "Second application",
		})

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
	})

	t.Run("rejects ambiguous applicants", func(t *testing.T) {
		svc, mocks := newTestSBService()
		p := newGraduationProgram(t)
		householdID := uuid.New()
		groupID := uuid.New()

		mocks.programRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		mocks.sbRepo.On("FindByBusinessGroup", ctx, groupID).Return(nil, shared.ErrNotFound)

		_, err := svc.Apply(ctx, ApplySBGrantRequest{
			ProgramID:    p.ID,
			Applicant:    ApplicantInput{HouseholdID: &householdID, BusinessGroupID: &groupID},
			BusinessPlan: "Mixed applicant",
		})

		assertDomainErrorCode(t, err, "AMBIGUOUS_APPLICANT")
	})
}

func TestSBGrantReviewWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("review then approve with an override", func(t *testing.T) {
		svc, mocks := newTestSBService()
		g, err := grant.NewSBGrant(uuid.New(), grant.HouseholdApplicant(uuid.New()),
			"Tailoring business", uuid.New(), uuid.New())
		require.NoError(t, err)
		g.ClearDomainEvents()

		mocks.sbRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		mocks.sbRepo.On("Update", ctx, g).Return(nil)

		resp, err := svc.StartReview(ctx, g.ID, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "under_review", resp.Status)

		override := decimal.RequireFromString("20000")
		resp, err = svc.Approve(ctx, g.ID, ApproveSBGrantRequest{FinalAmount: &override, ApproverID: uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		assert.True(t, resp.EffectiveAmount.Equal(override))
	})

	t.Run("approval overrides are clamped to the floor", func(t *testing.T) {
		svc, mocks := newTestSBService()
		g, err := grant.NewSBGrant(uuid.New(), grant.HouseholdApplicant(uuid.New()),
			"Charcoal trade", uuid.New(), uuid.New())
		require.NoError(t, err)
		g.ClearDomainEvents()

		mocks.sbRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		mocks.sbRepo.On("Update", ctx, g).Return(nil)

		tooLow := decimal.RequireFromString("4000")
		resp, err := svc.Approve(ctx, g.ID, ApproveSBGrantRequest{FinalAmount: &tooLow, ApproverID: uuid.New()})
		require.NoError(t, err)
		assert.True(t, resp.EffectiveAmount.Equal(decimal.RequireFromString("10000")),
			"got %s", resp.EffectiveAmount)
	})

	t.Run("cannot reject a disbursed grant", func(t *testing.T) {
		svc, mocks := newTestSBService()
		g := newApprovedSBGrant(t, grant.HouseholdApplicant(uuid.New()))
		require.NoError(t, g.RecordDisbursement(g.EffectiveAmount()))
		g.ClearDomainEvents()

		mocks.sbRepo.On("FindByID", ctx, g.ID).Return(g, nil)

		_, err := svc.Reject(ctx, g.ID, RejectGrantRequest{Notes: "too late", ReviewerID: uuid.New()})

		assertDomainErrorCode(t, err, "INVALID_STATE")
	})
}

func TestDisburseSBGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("partial then full disbursement", func(t *testing.T) {
		svc, mocks := newTestSBService()
		g := newApprovedSBGrant(t, grant.HouseholdApplicant(uuid.New()))

		mocks.sbRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		mocks.sbRepo.On("Update", ctx, g).Return(nil)
		mocks.disbursementRepo.On("Create", ctx, mock.MatchedBy(func(d *grant.Disbursement) bool {
			return d.SBGrantID != nil && *d.SBGrantID == g.ID && d.Kind == grant.GrantKindSB
		})).Return(nil)

		resp, err := svc.Disburse(ctx, g.ID, DisburseGrantRequest{
			Amount:        decimal.RequireFromString("9000"),
			Method:        "mobile_money",
			Reference:     "MPESA-QX12345",
			RecipientName: "Mary Akinyi",
			ProcessedBy:   uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, "partially_disbursed", resp.DisbursementStatus)
		assert.True(t, resp.RemainingAmount.Equal(decimal.RequireFromString("6000")),
			"got %s", resp.RemainingAmount)

		resp, err = svc.Disburse(ctx, g.ID, DisburseGrantRequest{
			Amount:        decimal.RequireFromString("6000"),
			Method:        "mobile_money",
			RecipientName: "Mary Akinyi",
			ProcessedBy:   uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, "fully_disbursed", resp.DisbursementStatus)
		assert.Equal(t, "disbursed", resp.Status)
	})

	t.Run("rejects over-disbursement", func(t *testing.T) {
		svc, mocks := newTestSBService()
		g := newApprovedSBGrant(t, grant.HouseholdApplicant(uuid.New()))

		mocks.sbRepo.On("FindByID", ctx, g.ID).Return(g, nil)

		_, err := svc.Disburse(ctx, g.ID, DisburseGrantRequest{
			Amount:        decimal.RequireFromString("20000"),
			Method:        "cash",
			RecipientName: "Mary Akinyi",
			ProcessedBy:   uuid.New(),
		})

		assertDomainErrorCode(t, err, "OVER_DISBURSEMENT")
		mocks.disbursementRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects disbursement before approval", func(t *testing.T) {
		svc, mocks := newTestSBService()
		g, err := grant.NewSBGrant(uuid.New(), grant.HouseholdApplicant(uuid.New()),
			"Pending plan", uuid.New(), uuid.New())
		require.NoError(t, err)
		g.ClearDomainEvents()

		mocks.sbRepo.On("FindByID", ctx, g.ID).Return(g, nil)

		_, err = svc.Disburse(ctx, g.ID, DisburseGrantRequest{
			Amount:        decimal.RequireFromString("5000"),
			Method:        "cash",
			RecipientName: "Mary Akinyi",
			ProcessedBy:   uuid.New(),
		})

		assertDomainErrorCode(t, err, "NOT_APPROVED")
	})
}
