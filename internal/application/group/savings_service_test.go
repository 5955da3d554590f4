package group

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

	"github.com/upg/backend/internal/domain/group"
)

// MockSavingsGroupRepository is a mock implementation of group.SavingsGroupRepository
type MockSavingsGroupRepository struct {
	mock.Mock
}

func (m *MockSavingsGroupRepository) Create(ctx context.Context, g *group.SavingsGroup) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockSavingsGroupRepository) Update(ctx context.Context, g *group.SavingsGroup) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockSavingsGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSavingsGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*group.SavingsGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*group.SavingsGroup), args.Error(1)
}

func (m *MockSavingsGroupRepository) FindAll(ctx context.Context, filter group.SavingsGroupFilter) ([]*group.SavingsGroup, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*group.SavingsGroup), args.Get(1).(int64), args.Error(2)
}

func (m *MockSavingsGroupRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*group.SavingsGroup, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*group.SavingsGroup), args.Error(1)
}

func (m *MockSavingsGroupRepository) SaveMembers(ctx context.Context, groupID uuid.UUID, members []group.SavingsGroupMember) error {
	args := m.Called(ctx, groupID, members)
	return args.Error(0)
}

func (m *MockSavingsGroupRepository) LoadMembers(ctx context.Context, groupID uuid.UUID) ([]group.SavingsGroupMember, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]group.SavingsGroupMember), args.Error(1)
}

func (m *MockSavingsGroupRepository) SaveBusinessGroupLinks(ctx context.Context, groupID uuid.UUID, businessGroupIDs []uuid.UUID) error {
	args := m.Called(ctx, groupID, businessGroupIDs)
	return args.Error(0)
}

func (m *MockSavingsGroupRepository) LoadBusinessGroupLinks(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSavingsGroupRepository) SaveRecord(ctx context.Context, record *group.SavingsRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSavingsGroupRepository) FindRecords(ctx context.Context, groupID uuid.UUID) ([]*group.SavingsRecord, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*group.SavingsRecord), args.Error(1)
}

func (m *MockSavingsGroupRepository) FindRecordsByMember(ctx context.Context, memberID uuid.UUID) ([]*group.SavingsRecord, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*group.SavingsRecord), args.Error(1)
}

func (m *MockSavingsGroupRepository) SaveProgressSurvey(ctx context.Context, survey *group.SavingsProgressSurvey) error {
	args := m.Called(ctx, survey)
	return args.Error(0)
}

func (m *MockSavingsGroupRepository) FindProgressSurveys(ctx context.Context, groupID uuid.UUID) ([]*group.SavingsProgressSurvey, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*group.SavingsProgressSurvey), args.Error(1)
}

func (m *MockSavingsGroupRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type savingsMocks struct {
	savingsRepo   *MockSavingsGroupRepository
	businessRepo  *MockBusinessGroupRepository
	householdRepo *MockHouseholdRepository
}

func newTestSavingsService() (*SavingsService, savingsMocks) {
	mocks := savingsMocks{
		savingsRepo:   new(MockSavingsGroupRepository),
		businessRepo:  new(MockBusinessGroupRepository),
		householdRepo: new(MockHouseholdRepository),
	}
	svc := NewSavingsService(mocks.savingsRepo, mocks.businessRepo, mocks.householdRepo, nil, zap.NewNop())
	return svc, mocks
}

func newTestSavingsGroup(t *testing.T) *group.SavingsGroup {
	t.Helper()
	g, err := group.NewSavingsGroup("Kalokol Tumaini BSG",
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), group.FrequencyWeekly, uuid.New())
	require.NoError(t, err)
	g.ClearDomainEvents()
	return g
}

func expectRosterLoad(mocks savingsMocks, g *group.SavingsGroup) {
	mocks.savingsRepo.On("LoadMembers", mock.Anything, g.ID).Return(g.Members, nil)
	mocks.savingsRepo.On("LoadBusinessGroupLinks", mock.Anything, g.ID).Return(g.BusinessGroupIDs, nil)
}

func TestFormSavingsGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("forms a weekly group with meeting schedule", func(t *testing.T) {
		svc, mocks := newTestSavingsService()

		mocks.savingsRepo.On("Create", ctx, mock.AnythingOfType("*group.SavingsGroup")).Return(nil)

		resp, err := svc.FormGroup(ctx, FormSavingsGroupRequest{
			Name:            "Kalokol Tumaini BSG",
			Frequency:       "weekly",
			MeetingDay:      "Tuesday",
			MeetingLocation: "Kalokol chief's camp",
			TargetMembers:   30,
			CreatedBy:       uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "Kalokol Tumaini BSG", resp.Name)
		assert.Equal(t, "weekly", resp.SavingsFrequency)
		assert.Equal(t, 30, resp.TargetMembers)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects unknown frequency", func(t *testing.T) {
		svc, mocks := newTestSavingsService()

		_, err := svc.FormGroup(ctx, FormSavingsGroupRequest{
			Name:      "Kalokol Tumaini BSG",
			Frequency: "daily",
		})

		assertDomainErrorCode(t, err, "INVALID_SAVINGS_FREQUENCY")
		mocks.savingsRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSavingsGroupMembership(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a chairperson", func(t *testing.T) {
		svc, mocks := newTestSavingsService()
		g := newTestSavingsGroup(t)
		h := newTestHousehold(t)

		mocks.savingsRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		expectRosterLoad(mocks, g)
		mocks.householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		mocks.savingsRepo.On("SaveMembers", ctx, g.ID, mock.Anything).Return(nil)

		resp, err := svc.AddMember(ctx, g.ID, GroupMemberInput{HouseholdID: h.ID, Role: "chairperson"})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.ActiveMembers)
		assert.Equal(t, "chairperson", resp.Members[0].Role)
	})

	t.Run("rejects a duplicate member", func(t *testing.T) {
		svc, mocks := newTestSavingsService()
		g := newTestSavingsGroup(t)
		h := newTestHousehold(t)
		_, err := g.AddMember(h.ID, group.SavingsRoleMember, time.Now())
		require.NoError(t, err)

		mocks.savingsRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		expectRosterLoad(mocks, g)
		mocks.householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)

		_, err = svc.AddMember(ctx, g.ID, GroupMemberInput{HouseholdID: h.ID, Role: "member"})

		assertDomainErrorCode(t, err, "DUPLICATE_MEMBER")
	})
}

func TestAttachBusinessGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("links a business group", func(t *testing.T) {
		svc, mocks := newTestSavingsService()
		g := newTestSavingsGroup(t)
		bg := newTestBusinessGroup(t, uuid.New())

		mocks.savingsRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		expectRosterLoad(mocks, g)
		mocks.businessRepo.On("FindByID", ctx, bg.ID).Return(bg, nil)
		mocks.savingsRepo.On("SaveBusinessGroupLinks", ctx, g.ID, []uuid.UUID{bg.ID}).Return(nil)

		resp, err := svc.AttachBusinessGroup(ctx, g.ID, bg.ID)

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{bg.ID}, resp.BusinessGroupIDs)
	})

	t.Run("rejects an already linked business group", func(t *testing.T) {
		svc, mocks := newTestSavingsService()
		g := newTestSavingsGroup(t)
		bg := newTestBusinessGroup(t, uuid.New())
		require.NoError(t, g.AttachBusinessGroup(bg.ID))

		mocks.savingsRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		expectRosterLoad(mocks, g)
		mocks.businessRepo.On("FindByID", ctx, bg.ID).Return(bg, nil)

		_, err := svc.AttachBusinessGroup(ctx, g.ID, bg.ID)

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
		mocks.savingsRepo.AssertNotCalled(t, "SaveBusinessGroupLinks", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecordSaving(t *testing.T) {
	ctx := context.Background()

	t.Run("books a contribution and updates totals", func(t *testing.T) {
		svc, mocks := newTestSavingsService()
		g := newTestSavingsGroup(t)
		h := newTestHousehold(t)
		_, err := g.AddMember(h.ID, group.SavingsRoleMember, time.Now())
		require.NoError(t, err)

		mocks.savingsRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		expectRosterLoad(mocks, g)
		mocks.savingsRepo.On("SaveRecord", ctx, mock.MatchedBy(func(r *group.SavingsRecord) bool {
			return r.SavingsGroupID == g.ID && r.Amount.Amount().Equal(decimal.NewFromInt(200))
		})).Return(nil)
		mocks.savingsRepo.On("SaveMembers", ctx, g.ID, mock.Anything).Return(nil)
		mocks.savingsRepo.On("Update", ctx, g).Return(nil)

		resp, err := svc.RecordSaving(ctx, g.ID, RecordSavingRequest{
			HouseholdID: h.ID,
			Amount:      decimal.NewFromInt(200),
			SavingsDate: time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		assert.True(t, resp.Amount.Equal(decimal.NewFromInt(200)))
		assert.True(t, g.SavingsToDate.Amount().Equal(decimal.NewFromInt(200)))
		assert.True(t, g.Members[0].TotalSavings.Amount().Equal(decimal.NewFromInt(200)))
	})

	t.Run("rejects a contribution from a non-member", func(t *testing.T) {
		svc, mocks := newTestSavingsService()
		g := newTestSavingsGroup(t)

		mocks.savingsRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		expectRosterLoad(mocks, g)

		_, err := svc.RecordSaving(ctx, g.ID, RecordSavingRequest{
			HouseholdID: uuid.New(),
			Amount:      decimal.NewFromInt(200),
		})

		assertDomainErrorCode(t, err, "NOT_A_MEMBER")
		mocks.savingsRepo.AssertNotCalled(t, "SaveRecord", mock.Anything, mock.Anything)
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		svc, mocks := newTestSavingsService()
		g := newTestSavingsGroup(t)
		h := newTestHousehold(t)
		_, err := g.AddMember(h.ID, group.SavingsRoleMember, time.Now())
		require.NoError(t, err)

		mocks.savingsRepo.On("FindByID", ctx, g.ID).Return(g, nil)
		expectRosterLoad(mocks, g)

		_, err = svc.RecordSaving(ctx, g.ID, RecordSavingRequest{
			HouseholdID: h.ID,
			Amount:      decimal.Zero,
		})

		assertDomainErrorCode(t, err, "INVALID_SAVINGS_AMOUNT")
	})
}

func TestSavingsProgressSurveys(t *testing.T) {
	ctx := context.Background()
	svc, mocks := newTestSavingsService()
	g := newTestSavingsGroup(t)

	mocks.savingsRepo.On("FindByID", ctx, g.ID).Return(g, nil)
	mocks.savingsRepo.On("SaveProgressSurvey", ctx, mock.MatchedBy(func(s *group.SavingsProgressSurvey) bool {
		return s.SavingsGroupID == g.ID && s.AttendanceThisMeeting == 18
	})).Return(nil)

	resp, err := svc.RecordProgressSurvey(ctx, g.ID, RecordSavingsSurveyRequest{
		SurveyDate:            time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
		MonthRecorded:         time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		SavingLastMonth:       decimal.NewFromInt(5600),
		AttendanceThisMeeting: 18,
	})

	require.NoError(t, err)
	assert.Equal(t, 18, resp.AttendanceThisMeeting)
	assert.True(t, resp.SavingLastMonth.Equal(decimal.NewFromInt(5600)))
}
