package program

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
)

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

func newTestProgramService() (*ProgramService, *MockProgramRepository) {
	repo := new(MockProgramRepository)
	return NewProgramService(repo, nil, zap.NewNop()), repo
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected *shared.DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestCreateProgram(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a graduation program with 12-month duration", func(t *testing.T) {
		service, repo := newTestProgramService()
		repo.On("ExistsByName", ctx, "UPG Cycle 1").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*program.Program")).Return(nil)

		budget := decimal.NewFromInt(5000000)
		response, err := service.CreateProgram(ctx, CreateProgramRequest{
			Name:                "UPG Cycle 1",
			Description:         "Ultra-Poor Graduation",
			Type:                "graduation",
			Cycle:               "FY25C1",
			Budget:              &budget,
			TargetBeneficiaries: 500,
			County:              "Turkana",
			CreatedBy:           uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "draft", response.Status)
		assert.Equal(t, 12, response.DurationMonths)
		assert.True(t, response.IsGraduationProgram)
		assert.Equal(t, "FY25C1", response.Cycle)
		assert.True(t, budget.Equal(*response.Budget))
	})

	t.Run("non-graduation programs default to six months", func(t *testing.T) {
		service, repo := newTestProgramService()
		repo.On("ExistsByName", ctx, "Health Outreach").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*program.Program")).Return(nil)

		response, err := service.CreateProgram(ctx, CreateProgramRequest{
			Name:      "Health Outreach",
			Type:      "health",
			CreatedBy: uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, 6, response.DurationMonths)
		assert.False(t, response.IsGraduationProgram)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		service, repo := newTestProgramService()
		repo.On("ExistsByName", ctx, "UPG Cycle 1").Return(true, nil)

		_, err := service.CreateProgram(ctx, CreateProgramRequest{
			Name:      "UPG Cycle 1",
			Type:      "graduation",
			CreatedBy: uuid.New(),
		})

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
	})

	t.Run("rejects an unknown program type", func(t *testing.T) {
		service, repo := newTestProgramService()
		repo.On("ExistsByName", ctx, "Mystery").Return(false, nil)

		_, err := service.CreateProgram(ctx, CreateProgramRequest{
			Name:      "Mystery",
			Type:      "lottery",
			CreatedBy: uuid.New(),
		})

		assertDomainErrorCode(t, err, "INVALID_PROGRAM_TYPE")
	})
}

func TestProgramLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("activate then suspend then reactivate", func(t *testing.T) {
		service, repo := newTestProgramService()
		p, err := program.NewProgram("UPG Cycle 1", "", program.ProgramTypeGraduation, uuid.New())
		require.NoError(t, err)

		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Update", ctx, p).Return(nil)

		response, err := service.ActivateProgram(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "active", response.Status)

		response, err = service.SuspendProgram(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "suspended", response.Status)
		assert.False(t, response.AcceptingApplications)

		response, err = service.ActivateProgram(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "active", response.Status)
	})

	t.Run("cannot complete a draft program", func(t *testing.T) {
		service, repo := newTestProgramService()
		p, err := program.NewProgram("UPG Cycle 1", "", program.ProgramTypeGraduation, uuid.New())
		require.NoError(t, err)

		repo.On("FindByID", ctx, p.ID).Return(p, nil)

		_, err = service.CompleteProgram(ctx, p.ID)
		assertDomainErrorCode(t, err, "INVALID_STATE")
	})

	t.Run("cancel ends a suspended program", func(t *testing.T) {
		service, repo := newTestProgramService()
		p, err := program.NewProgram("UPG Cycle 1", "", program.ProgramTypeGraduation, uuid.New())
		require.NoError(t, err)
		require.NoError(t, p.Activate())
		require.NoError(t, p.Suspend())

		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Update", ctx, p).Return(nil)

		response, err := service.CancelProgram(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", response.Status)
	})

	t.Run("missing program maps to not found", func(t *testing.T) {
		service, repo := newTestProgramService()
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.ActivateProgram(ctx, id)
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestListPrograms(t *testing.T) {
	ctx := context.Background()

	service, repo := newTestProgramService()
	p, err := program.NewProgram("UPG Cycle 1", "", program.ProgramTypeGraduation, uuid.New())
	require.NoError(t, err)

	repo.On("FindAll", ctx, mock.MatchedBy(func(f program.ProgramFilter) bool {
		return f.Keyword == "UPG" && f.Status != nil && *f.Status == program.ProgramStatusDraft
	})).Return([]*program.Program{p}, int64(1), nil)

	responses, total, err := service.ListPrograms(ctx, ProgramListFilter{Search: "UPG", Status: "draft"})

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "UPG Cycle 1", responses[0].Name)
}

func TestUpdateProgram(t *testing.T) {
	ctx := context.Background()

	service, repo := newTestProgramService()
	p, err := program.NewProgram("UPG Cycle 1", "", program.ProgramTypeGraduation, uuid.New())
	require.NoError(t, err)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)

	targets := 750
	cycle := "FY25C2"
	response, err := service.UpdateProgram(ctx, p.ID, UpdateProgramRequest{
		TargetBeneficiaries: &targets,
		Cycle:               &cycle,
	})

	require.NoError(t, err)
	assert.Equal(t, 750, response.TargetBeneficiaries)
	assert.Equal(t, "FY25C2", response.Cycle)
}

func TestCloseApplications(t *testing.T) {
	ctx := context.Background()

	service, repo := newTestProgramService()
	p, err := program.NewProgram("UPG Cycle 1", "", program.ProgramTypeGraduation, uuid.New())
	require.NoError(t, err)
	require.NoError(t, p.Activate())

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)

	response, err := service.CloseApplications(ctx, p.ID)

	require.NoError(t, err)
	assert.False(t, response.AcceptingApplications)
	assert.Equal(t, "active", response.Status)
}
