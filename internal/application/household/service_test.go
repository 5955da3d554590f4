package household

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

	"github.com/upg/backend/internal/domain/geography"
	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
)

// MockHouseholdRepository is a mock implementation of household.HouseholdRepository
type MockHouseholdRepository struct {
	mock.Mock
}

func (m *MockHouseholdRepository) Create(ctx context.Context, h *household.Household) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHouseholdRepository) Update(ctx context.Context, h *household.Household) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHouseholdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHouseholdRepository) FindByID(ctx context.Context, id uuid.UUID) (*household.Household, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Household), args.Error(1)
}

func (m *MockHouseholdRepository) FindByNationalID(ctx context.Context, nationalID string) (*household.Household, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.Household), args.Error(1)
}

func (m *MockHouseholdRepository) FindAll(ctx context.Context, filter household.HouseholdFilter) ([]*household.Household, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*household.Household), args.Get(1).(int64), args.Error(2)
}

func (m *MockHouseholdRepository) FindByVillage(ctx context.Context, villageID uuid.UUID) ([]*household.Household, error) {
	args := m.Called(ctx, villageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*household.Household), args.Error(1)
}

func (m *MockHouseholdRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHouseholdRepository) SaveMembers(ctx context.Context, h *household.Household) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHouseholdRepository) LoadMembers(ctx context.Context, h *household.Household) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHouseholdRepository) SavePPIAssessment(ctx context.Context, assessment *household.PPIAssessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockHouseholdRepository) FindPPIAssessments(ctx context.Context, householdID uuid.UUID) ([]*household.PPIAssessment, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*household.PPIAssessment), args.Error(1)
}

func (m *MockHouseholdRepository) FindLatestPPIAssessment(ctx context.Context, householdID uuid.UUID) (*household.PPIAssessment, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*household.PPIAssessment), args.Error(1)
}

// MockVillageRepository is a mock implementation of geography.VillageRepository
type MockVillageRepository struct {
	mock.Mock
}

func (m *MockVillageRepository) Create(ctx context.Context, village *geography.Village) error {
	args := m.Called(ctx, village)
	return args.Error(0)
}

func (m *MockVillageRepository) Update(ctx context.Context, village *geography.Village) error {
	args := m.Called(ctx, village)
	return args.Error(0)
}

func (m *MockVillageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVillageRepository) FindByID(ctx context.Context, id uuid.UUID) (*geography.Village, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geography.Village), args.Error(1)
}

func (m *MockVillageRepository) FindBySubCounty(ctx context.Context, subCountyID uuid.UUID) ([]*geography.Village, error) {
	args := m.Called(ctx, subCountyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*geography.Village), args.Error(1)
}

func (m *MockVillageRepository) FindProgramAreas(ctx context.Context) ([]*geography.Village, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*geography.Village), args.Error(1)
}

func (m *MockVillageRepository) FindAll(ctx context.Context) ([]*geography.Village, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*geography.Village), args.Error(1)
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

// MockEnrollmentRepository is a mock implementation of program.EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, e *program.Enrollment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) Update(ctx context.Context, e *program.Enrollment) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByHouseholdAndProgram(ctx context.Context, householdID, programID uuid.UUID) (*program.Enrollment, error) {
	args := m.Called(ctx, householdID, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*program.Enrollment, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter program.EnrollmentFilter) ([]*program.Enrollment, int64, error) {
	args := m.Called(ctx, programID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*program.Enrollment), args.Get(1).(int64), args.Error(2)
}

func (m *MockEnrollmentRepository) FindOngoingByHousehold(ctx context.Context, householdID uuid.UUID) (*program.Enrollment, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) CountByProgramAndStatus(ctx context.Context, programID uuid.UUID, status program.ParticipationStatus) (int64, error) {
	args := m.Called(ctx, programID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEnrollmentRepository) SaveMilestones(ctx context.Context, milestones []*program.Milestone) error {
	args := m.Called(ctx, milestones)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) UpdateMilestone(ctx context.Context, milestone *program.Milestone) error {
	args := m.Called(ctx, milestone)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) FindMilestones(ctx context.Context, enrollmentID uuid.UUID) ([]*program.Milestone, error) {
	args := m.Called(ctx, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*program.Milestone), args.Error(1)
}

func (m *MockEnrollmentRepository) FindMilestone(ctx context.Context, enrollmentID uuid.UUID, key program.MilestoneKey) (*program.Milestone, error) {
	args := m.Called(ctx, enrollmentID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Milestone), args.Error(1)
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected *shared.DomainError, got %T: %v", err, err)
	assert.Equal(t, code, domainErr.Code)
}

func newTestService() (*Service, *MockHouseholdRepository, *MockVillageRepository) {
	householdRepo := new(MockHouseholdRepository)
	villageRepo := new(MockVillageRepository)
	svc := NewService(householdRepo, villageRepo, nil, zap.NewNop())
	return svc, householdRepo, villageRepo
}

func newTestVillage(t *testing.T) *geography.Village {
	t.Helper()
	village, err := geography.NewVillage("Nadapal", nil)
	require.NoError(t, err)
	return village
}

func newTestHousehold(t *testing.T, villageID uuid.UUID) *household.Household {
	t.Helper()
	h, err := household.NewHousehold("Akinyi Household", villageID, uuid.New())
	require.NoError(t, err)
	return h
}

func TestRegisterHousehold(t *testing.T) {
	ctx := context.Background()
	createdBy := uuid.New()

	t.Run("registers household with head and consent", func(t *testing.T) {
		svc, householdRepo, villageRepo := newTestService()
		village := newTestVillage(t)

		villageRepo.On("FindByID", ctx, village.ID).Return(village, nil)
		householdRepo.On("FindByNationalID", ctx, "28731904").Return(nil, shared.ErrNotFound)
		householdRepo.On("Create", ctx, mock.AnythingOfType("*household.Household")).Return(nil)

		income := decimal.NewFromInt(3200)
		dob := time.Date(1988, 3, 14, 0, 0, 0, 0, time.UTC)
		resp, err := svc.RegisterHousehold(ctx, RegisterHouseholdRequest{
			Name:          "Akinyi Household",
			VillageID:     village.ID,
			NationalID:    "28731904",
			PhoneNumber:   "+254701234567",
			MonthlyIncome: &income,
			ConsentGiven:  true,
			Head: &HeadDetails{
				FirstName:   "Mary",
				LastName:    "Akinyi",
				Gender:      "female",
				DateOfBirth: &dob,
				IDNumber:    "28731904",
				PhoneNumber: "+254701234567",
			},
			CreatedBy: createdBy,
		})

		require.NoError(t, err)
		assert.Equal(t, "Akinyi Household", resp.Name)
		assert.Equal(t, "Mary Akinyi", resp.HeadFullName)
		assert.True(t, resp.ConsentGiven)
		householdRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown village", func(t *testing.T) {
		svc, householdRepo, villageRepo := newTestService()
		villageID := uuid.New()

		villageRepo.On("FindByID", ctx, villageID).Return(nil, shared.ErrNotFound)

		_, err := svc.RegisterHousehold(ctx, RegisterHouseholdRequest{
			Name:      "Wanjiru Household",
			VillageID: villageID,
			CreatedBy: createdBy,
		})

		assertDomainErrorCode(t, err, "NOT_FOUND")
		householdRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate national ID", func(t *testing.T) {
		svc, householdRepo, villageRepo := newTestService()
		village := newTestVillage(t)
		existing := newTestHousehold(t, village.ID)

		villageRepo.On("FindByID", ctx, village.ID).Return(village, nil)
		householdRepo.On("FindByNationalID", ctx, "28731904").Return(existing, nil)

		_, err := svc.RegisterHousehold(ctx, RegisterHouseholdRequest{
			Name:       "Akinyi Household",
			VillageID:  village.ID,
			NationalID: "28731904",
			CreatedBy:  createdBy,
		})

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
		householdRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetHousehold(t *testing.T) {
	ctx := context.Background()

	t.Run("returns household with members", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		h := newTestHousehold(t, uuid.New())

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		householdRepo.On("LoadMembers", ctx, h).Return(nil)

		resp, err := svc.GetHousehold(ctx, h.ID)

		require.NoError(t, err)
		assert.Equal(t, h.ID, resp.ID)
	})

	t.Run("returns not found for unknown household", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		id := uuid.New()

		householdRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetHousehold(ctx, id)

		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestListHouseholds(t *testing.T) {
	ctx := context.Background()

	svc, householdRepo, _ := newTestService()
	villageID := uuid.New()
	h := newTestHousehold(t, villageID)

	householdRepo.On("FindAll", ctx, mock.MatchedBy(func(f household.HouseholdFilter) bool {
		return f.Keyword == "akinyi" && f.VillageID != nil && *f.VillageID == villageID && f.Page == 2
	})).Return([]*household.Household{h}, int64(21), nil)

	responses, total, err := svc.ListHouseholds(ctx, HouseholdListFilter{
		Search:    "akinyi",
		VillageID: &villageID,
		Page:      2,
		PageSize:  20,
	})

	require.NoError(t, err)
	assert.Len(t, responses, 1)
	assert.Equal(t, int64(21), total)
}

func TestUpdateHousehold(t *testing.T) {
	ctx := context.Background()

	t.Run("updates income and withdraws consent", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		h := newTestHousehold(t, uuid.New())
		h.GiveConsent()

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		householdRepo.On("Update", ctx, h).Return(nil)

		income := decimal.NewFromInt(4500)
		withdraw := false
		resp, err := svc.UpdateHousehold(ctx, h.ID, UpdateHouseholdRequest{
			MonthlyIncome: &income,
			ConsentGiven:  &withdraw,
		})

		require.NoError(t, err)
		assert.False(t, resp.ConsentGiven)
		require.NotNil(t, h.MonthlyIncome)
		assert.True(t, h.MonthlyIncome.Equal(income))
	})

	t.Run("rejects negative income", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		h := newTestHousehold(t, uuid.New())

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)

		income := decimal.NewFromInt(-100)
		_, err := svc.UpdateHousehold(ctx, h.ID, UpdateHouseholdRequest{MonthlyIncome: &income})

		require.Error(t, err)
		householdRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestHouseholdMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("adds a member to the roster", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		h := newTestHousehold(t, uuid.New())

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		householdRepo.On("LoadMembers", ctx, h).Return(nil)
		householdRepo.On("SaveMembers", ctx, h).Return(nil)

		resp, err := svc.AddMember(ctx, h.ID, AddMemberRequest{
			FirstName:      "Brian",
			LastName:       "Otieno",
			Gender:         "male",
			Age:            12,
			Relationship:   "child",
			EducationLevel: "primary",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, resp.TotalMembers)
		householdRepo.AssertExpectations(t)
	})

	t.Run("rejects a second head", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		h := newTestHousehold(t, uuid.New())
		_, err := h.AddMember("Mary", "Akinyi", household.GenderFemale, 37, household.RelationshipHead, household.EducationSecondary)
		require.NoError(t, err)

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		householdRepo.On("LoadMembers", ctx, h).Return(nil)

		_, err = svc.AddMember(ctx, h.ID, AddMemberRequest{
			FirstName:      "Peter",
			LastName:       "Akinyi",
			Gender:         "male",
			Age:            41,
			Relationship:   "head",
			EducationLevel: "none",
		})

		require.Error(t, err)
		householdRepo.AssertNotCalled(t, "SaveMembers", mock.Anything, mock.Anything)
	})

	t.Run("removes a member", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		h := newTestHousehold(t, uuid.New())
		member, err := h.AddMember("Brian", "Otieno", household.GenderMale, 12, household.RelationshipChild, household.EducationPrimary)
		require.NoError(t, err)

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		householdRepo.On("LoadMembers", ctx, h).Return(nil)
		householdRepo.On("SaveMembers", ctx, h).Return(nil)

		resp, err := svc.RemoveMember(ctx, h.ID, member.ID)

		require.NoError(t, err)
		assert.Equal(t, 0, resp.TotalMembers)
	})
}

func TestRecordPPIAssessment(t *testing.T) {
	ctx := context.Background()

	t.Run("records an assessment", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		h := newTestHousehold(t, uuid.New())

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		householdRepo.On("SavePPIAssessment", ctx, mock.MatchedBy(func(a *household.PPIAssessment) bool {
			return a.HouseholdID == h.ID && a.Score == 34
		})).Return(nil)

		resp, err := svc.RecordPPIAssessment(ctx, h.ID, RecordPPIRequest{
			Name:           "Baseline PPI",
			Score:          34,
			AssessmentDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		})

		require.NoError(t, err)
		assert.Equal(t, 34, resp.Score)
		householdRepo.AssertExpectations(t)
	})

	t.Run("rejects score out of range", func(t *testing.T) {
		svc, householdRepo, _ := newTestService()
		h := newTestHousehold(t, uuid.New())

		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)

		_, err := svc.RecordPPIAssessment(ctx, h.ID, RecordPPIRequest{Name: "Baseline PPI", Score: 101})

		require.Error(t, err)
		householdRepo.AssertNotCalled(t, "SavePPIAssessment", mock.Anything, mock.Anything)
	})
}
