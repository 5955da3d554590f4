package survey

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/survey"
)

// MockSurveyRepository is a mock implementation of survey.SurveyRepository
type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) Create(ctx context.Context, s *survey.Survey) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSurveyRepository) Update(ctx context.Context, s *survey.Survey) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSurveyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSurveyRepository) FindByID(ctx context.Context, id uuid.UUID) (*survey.Survey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*survey.Survey), args.Error(1)
}

func (m *MockSurveyRepository) FindAll(ctx context.Context, filter survey.SurveyFilter) ([]*survey.Survey, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*survey.Survey), args.Get(1).(int64), args.Error(2)
}

func (m *MockSurveyRepository) FindActive(ctx context.Context) ([]*survey.Survey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*survey.Survey), args.Error(1)
}

func (m *MockSurveyRepository) SaveResponse(ctx context.Context, r *survey.Response) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockSurveyRepository) UpdateResponse(ctx context.Context, r *survey.Response) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockSurveyRepository) FindResponseByID(ctx context.Context, id uuid.UUID) (*survey.Response, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*survey.Response), args.Error(1)
}

func (m *MockSurveyRepository) FindResponses(ctx context.Context, surveyID uuid.UUID, filter survey.ResponseFilter) ([]*survey.Response, int64, error) {
	args := m.Called(ctx, surveyID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*survey.Response), args.Get(1).(int64), args.Error(2)
}

func (m *MockSurveyRepository) FindResponsesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*survey.Response, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*survey.Response), args.Error(1)
}

func (m *MockSurveyRepository) CountResponses(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, surveyID)
	return args.Get(0).(int64), args.Error(1)
}

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

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected *shared.DomainError, got %T: %v", err, err)
	assert.Equal(t, code, domainErr.Code)
}

func newTestService() (*Service, *MockSurveyRepository, *MockHouseholdRepository) {
	surveyRepo := new(MockSurveyRepository)
	householdRepo := new(MockHouseholdRepository)
	svc := NewService(surveyRepo, householdRepo, zap.NewNop())
	return svc, surveyRepo, householdRepo
}

func newTestSurvey(t *testing.T) *survey.Survey {
	t.Helper()
	sv, err := survey.NewSurvey("Midline Wellbeing Check", "Quarterly household wellbeing form", uuid.New())
	require.NoError(t, err)
	return sv
}

func newTestHousehold(t *testing.T) *household.Household {
	t.Helper()
	h, err := household.NewHousehold("Akinyi Household", uuid.New(), uuid.New())
	require.NoError(t, err)
	return h
}

func TestCreateSurvey(t *testing.T) {
	ctx := context.Background()

	t.Run("creates at version 1.0", func(t *testing.T) {
		svc, surveyRepo, _ := newTestService()

		surveyRepo.On("Create", ctx, mock.AnythingOfType("*survey.Survey")).Return(nil)

		resp, err := svc.CreateSurvey(ctx, CreateSurveyRequest{
			Name:        "Midline Wellbeing Check",
			Description: "Quarterly household wellbeing form",
			CreatedBy:   uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "1.0", resp.Version)
		assert.True(t, resp.IsActive)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		svc, surveyRepo, _ := newTestService()

		_, err := svc.CreateSurvey(ctx, CreateSurveyRequest{Name: "   "})

		assertDomainErrorCode(t, err, "INVALID_SURVEY_NAME")
		surveyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPublishNewVersion(t *testing.T) {
	ctx := context.Background()
	svc, surveyRepo, _ := newTestService()
	sv := newTestSurvey(t)

	surveyRepo.On("FindByID", ctx, sv.ID).Return(sv, nil)
	surveyRepo.On("Update", ctx, sv).Return(nil)

	resp, err := svc.PublishNewVersion(ctx, sv.ID, NewVersionRequest{Version: "2.0"})

	require.NoError(t, err)
	assert.Equal(t, "2.0", resp.Version)
}

func TestRecordResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("records a partial response", func(t *testing.T) {
		svc, surveyRepo, householdRepo := newTestService()
		sv := newTestSurvey(t)
		h := newTestHousehold(t)

		surveyRepo.On("FindByID", ctx, sv.ID).Return(sv, nil)
		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)
		surveyRepo.On("SaveResponse", ctx, mock.MatchedBy(func(r *survey.Response) bool {
			return r.SurveyID == sv.ID && r.SurveyVersion == "1.0" && !r.Completed
		})).Return(nil)

		resp, err := svc.RecordResponse(ctx, sv.ID, RecordResponseRequest{
			HouseholdID: h.ID,
			Data:        map[string]interface{}{"meals_per_day": 2, "water_source": "borehole"},
		})

		require.NoError(t, err)
		assert.False(t, resp.Completed)
		assert.Equal(t, "1.0", resp.SurveyVersion)
	})

	t.Run("rejects responses to an inactive survey", func(t *testing.T) {
		svc, surveyRepo, householdRepo := newTestService()
		sv := newTestSurvey(t)
		sv.Deactivate()
		h := newTestHousehold(t)

		surveyRepo.On("FindByID", ctx, sv.ID).Return(sv, nil)
		householdRepo.On("FindByID", ctx, h.ID).Return(h, nil)

		_, err := svc.RecordResponse(ctx, sv.ID, RecordResponseRequest{
			HouseholdID: h.ID,
			Data:        map[string]interface{}{"meals_per_day": 2},
		})

		assertDomainErrorCode(t, err, "SURVEY_INACTIVE")
		surveyRepo.AssertNotCalled(t, "SaveResponse", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown household", func(t *testing.T) {
		svc, surveyRepo, householdRepo := newTestService()
		sv := newTestSurvey(t)
		householdID := uuid.New()

		surveyRepo.On("FindByID", ctx, sv.ID).Return(sv, nil)
		householdRepo.On("FindByID", ctx, householdID).Return(nil, shared.ErrNotFound)

		_, err := svc.RecordResponse(ctx, sv.ID, RecordResponseRequest{
			HouseholdID: householdID,
			Data:        map[string]interface{}{"meals_per_day": 2},
		})

		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestAmendResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("merges new answers and completes", func(t *testing.T) {
		svc, surveyRepo, _ := newTestService()
		sv := newTestSurvey(t)
		r, err := survey.NewResponse(sv, uuid.New(), nil,
			map[string]interface{}{"meals_per_day": 2})
		require.NoError(t, err)

		surveyRepo.On("FindResponseByID", ctx, r.ID).Return(r, nil)
		surveyRepo.On("UpdateResponse", ctx, r).Return(nil)

		resp, err := svc.AmendResponse(ctx, r.ID, AmendResponseRequest{
			Data:     map[string]interface{}{"water_source": "borehole", "meals_per_day": 3},
			Complete: true,
		})

		require.NoError(t, err)
		assert.True(t, resp.Completed)
		assert.Equal(t, 3, resp.Data["meals_per_day"])
		assert.Equal(t, "borehole", resp.Data["water_source"])
	})

	t.Run("rejects amendments to a completed response", func(t *testing.T) {
		svc, surveyRepo, _ := newTestService()
		sv := newTestSurvey(t)
		r, err := survey.NewResponse(sv, uuid.New(), nil,
			map[string]interface{}{"meals_per_day": 2})
		require.NoError(t, err)
		r.Complete()

		surveyRepo.On("FindResponseByID", ctx, r.ID).Return(r, nil)

		_, err = svc.AmendResponse(ctx, r.ID, AmendResponseRequest{
			Data: map[string]interface{}{"meals_per_day": 3},
		})

		assertDomainErrorCode(t, err, "RESPONSE_FINAL")
		surveyRepo.AssertNotCalled(t, "UpdateResponse", mock.Anything, mock.Anything)
	})
}

func TestDeleteSurvey(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an unused survey", func(t *testing.T) {
		svc, surveyRepo, _ := newTestService()
		sv := newTestSurvey(t)

		surveyRepo.On("FindByID", ctx, sv.ID).Return(sv, nil)
		surveyRepo.On("CountResponses", ctx, sv.ID).Return(int64(0), nil)
		surveyRepo.On("Delete", ctx, sv.ID).Return(nil)

		require.NoError(t, svc.DeleteSurvey(ctx, sv.ID))
	})

	t.Run("refuses to delete a survey with responses", func(t *testing.T) {
		svc, surveyRepo, _ := newTestService()
		sv := newTestSurvey(t)

		surveyRepo.On("FindByID", ctx, sv.ID).Return(sv, nil)
		surveyRepo.On("CountResponses", ctx, sv.ID).Return(int64(14), nil)

		err := svc.DeleteSurvey(ctx, sv.ID)

		assertDomainErrorCode(t, err, "SURVEY_IN_USE")
		surveyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
