package geography

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/geography"
	"github.com/upg/backend/internal/domain/shared"
)

// MockCountyRepository is a mock implementation of geography.CountyRepository
type MockCountyRepository struct {
	mock.Mock
}

func (m *MockCountyRepository) Create(ctx context.Context, county *geography.County) error {
	args := m.Called(ctx, county)
	return args.Error(0)
}

func (m *MockCountyRepository) Update(ctx context.Context, county *geography.County) error {
	args := m.Called(ctx, county)
	return args.Error(0)
}

func (m *MockCountyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCountyRepository) FindByID(ctx context.Context, id uuid.UUID) (*geography.County, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geography.County), args.Error(1)
}

func (m *MockCountyRepository) FindByName(ctx context.Context, name string) (*geography.County, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geography.County), args.Error(1)
}

func (m *MockCountyRepository) FindAll(ctx context.Context) ([]*geography.County, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*geography.County), args.Error(1)
}

// MockSubCountyRepository is a mock implementation of geography.SubCountyRepository
type MockSubCountyRepository struct {
	mock.Mock
}

func (m *MockSubCountyRepository) Create(ctx context.Context, subCounty *geography.SubCounty) error {
	args := m.Called(ctx, subCounty)
	return args.Error(0)
}

func (m *MockSubCountyRepository) Update(ctx context.Context, subCounty *geography.SubCounty) error {
	args := m.Called(ctx, subCounty)
	return args.Error(0)
}

func (m *MockSubCountyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSubCountyRepository) FindByID(ctx context.Context, id uuid.UUID) (*geography.SubCounty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*geography.SubCounty), args.Error(1)
}

func (m *MockSubCountyRepository) FindByCounty(ctx context.Context, countyID uuid.UUID) ([]*geography.SubCounty, error) {
	args := m.Called(ctx, countyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*geography.SubCounty), args.Error(1)
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

type serviceMocks struct {
	counties    *MockCountyRepository
	subCounties *MockSubCountyRepository
	villages    *MockVillageRepository
}

func newTestService() (*Service, serviceMocks) {
	mocks := serviceMocks{
		counties:    new(MockCountyRepository),
		subCounties: new(MockSubCountyRepository),
		villages:    new(MockVillageRepository),
	}
	return NewService(mocks.counties, mocks.subCounties, mocks.villages, zap.NewNop()), mocks
}

func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr, ok := err.(*shared.DomainError)
	require.True(t, ok, "expected *shared.DomainError, got %T", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestCreateCounty(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new county", func(t *testing.T) {
		service, mocks := newTestService()
		mocks.counties.On("FindByName", ctx, "Turkana").Return(nil, shared.ErrNotFound)
		mocks.counties.On("Create", ctx, mock.AnythingOfType("*geography.County")).Return(nil)

		response, err := service.CreateCounty(ctx, CreateCountyRequest{Name: "Turkana"})

		require.NoError(t, err)
		assert.Equal(t, "Turkana", response.Name)
		assert.Equal(t, "Kenya", response.Country)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		service, mocks := newTestService()
		existing, err := geography.NewCounty("Turkana")
		require.NoError(t, err)
		mocks.counties.On("FindByName", ctx, "Turkana").Return(existing, nil)

		_, err = service.CreateCounty(ctx, CreateCountyRequest{Name: "Turkana"})
		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
	})
}

func TestCreateSubCounty(t *testing.T) {
	ctx := context.Background()

	t.Run("creates under an existing county", func(t *testing.T) {
		service, mocks := newTestService()
		county, err := geography.NewCounty("Turkana")
		require.NoError(t, err)

		mocks.counties.On("FindByID", ctx, county.ID).Return(county, nil)
		mocks.subCounties.On("Create", ctx, mock.AnythingOfType("*geography.SubCounty")).Return(nil)

		response, err := service.CreateSubCounty(ctx, CreateSubCountyRequest{
			Name:     "Loima",
			CountyID: county.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Loima", response.Name)
		assert.Equal(t, county.ID, response.CountyID)
	})

	t.Run("rejects an unknown county", func(t *testing.T) {
		service, mocks := newTestService()
		countyID := uuid.New()
		mocks.counties.On("FindByID", ctx, countyID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateSubCounty(ctx, CreateSubCountyRequest{Name: "Loima", CountyID: countyID})
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestCreateVillage(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a program-area village with attributes", func(t *testing.T) {
		service, mocks := newTestService()
		subCounty, err := geography.NewSubCounty("Loima", uuid.New())
		require.NoError(t, err)

		mocks.subCounties.On("FindByID", ctx, subCounty.ID).Return(subCounty, nil)
		mocks.villages.On("Create", ctx, mock.AnythingOfType("*geography.Village")).Return(nil)

		response, err := service.CreateVillage(ctx, CreateVillageRequest{
			Name:             "Nadapal",
			SubCountyID:      &subCounty.ID,
			Saturation:       "medium",
			DistanceToMarket: 12,
		})

		require.NoError(t, err)
		assert.Equal(t, "Nadapal", response.Name)
		assert.Equal(t, "medium", response.Saturation)
		assert.Equal(t, 12, response.DistanceToMarket)
		assert.True(t, response.IsProgramArea)
	})

	t.Run("can create outside the program area", func(t *testing.T) {
		service, mocks := newTestService()
		mocks.villages.On("Create", ctx, mock.AnythingOfType("*geography.Village")).Return(nil)

		outside := false
		response, err := service.CreateVillage(ctx, CreateVillageRequest{
			Name:          "Kalokol",
			IsProgramArea: &outside,
		})

		require.NoError(t, err)
		assert.False(t, response.IsProgramArea)
	})

	t.Run("rejects an unknown sub-county", func(t *testing.T) {
		service, mocks := newTestService()
		subCountyID := uuid.New()
		mocks.subCounties.On("FindByID", ctx, subCountyID).Return(nil, shared.ErrNotFound)

		_, err := service.CreateVillage(ctx, CreateVillageRequest{Name: "Nadapal", SubCountyID: &subCountyID})
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestUpdateVillage(t *testing.T) {
	ctx := context.Background()

	service, mocks := newTestService()
	village, err := geography.NewVillage("Nadapal", nil)
	require.NoError(t, err)

	mocks.villages.On("FindByID", ctx, village.ID).Return(village, nil)
	mocks.villages.On("Update", ctx, village).Return(nil)

	saturation := "high"
	distance := 8
	response, err := service.UpdateVillage(ctx, village.ID, UpdateVillageRequest{
		Saturation:       &saturation,
		DistanceToMarket: &distance,
	})

	require.NoError(t, err)
	assert.Equal(t, "high", response.Saturation)
	assert.Equal(t, 8, response.DistanceToMarket)
}

func TestListVillages(t *testing.T) {
	ctx := context.Background()

	t.Run("lists program areas only", func(t *testing.T) {
		service, mocks := newTestService()
		village, err := geography.NewVillage("Nadapal", nil)
		require.NoError(t, err)
		mocks.villages.On("FindProgramAreas", ctx).Return([]*geography.Village{village}, nil)

		responses, err := service.ListVillages(ctx, nil, true)

		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, "Nadapal", responses[0].Name)
		mocks.villages.AssertNotCalled(t, "FindAll", mock.Anything)
	})

	t.Run("lists by sub-county", func(t *testing.T) {
		service, mocks := newTestService()
		subCountyID := uuid.New()
		mocks.villages.On("FindBySubCounty", ctx, subCountyID).Return([]*geography.Village{}, nil)

		responses, err := service.ListVillages(ctx, &subCountyID, false)

		require.NoError(t, err)
		assert.Empty(t, responses)
	})
}

func TestRecordQualifiedHouseholds(t *testing.T) {
	ctx := context.Background()

	service, mocks := newTestService()
	village, err := geography.NewVillage("Nadapal", nil)
	require.NoError(t, err)

	mocks.villages.On("FindByID", ctx, village.ID).Return(village, nil)
	mocks.villages.On("Update", ctx, village).Return(nil)

	response, err := service.RecordQualifiedHouseholds(ctx, village.ID, 42)

	require.NoError(t, err)
	assert.Equal(t, 42, response.QualifiedHHCount)

	_, err = service.RecordQualifiedHouseholds(ctx, village.ID, -1)
	require.Error(t, err)
}
