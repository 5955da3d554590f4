package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/domain/shared"
)

func newTestUserService(userRepo *MockUserRepository) *UserService {
	return NewUserService(userRepo, zap.NewNop())
}

func TestUserServiceCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates an active mentor with village assignments", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		villageID := uuid.New()
		userRepo.On("ExistsByUsername", ctx, "gwekesa").Return(false, nil)
		userRepo.On("ExistsByEmail", ctx, "g.wekesa@example.org").Return(false, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)
		userRepo.On("SaveVillageAssignments", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		response, err := service.CreateUser(ctx, CreateUserRequest{
			Username:  "gwekesa",
			Email:     "g.wekesa@example.org",
			Password:  "Wekesa2024pass",
			FirstName: "Grace",
			LastName:  "Wekesa",
			Phone:     "+254712345678",
			Role:      "mentor",
			Office:    "Lodwar",
			Activate:  true,
			Villages:  []uuid.UUID{villageID},
		})

		require.NoError(t, err)
		assert.Equal(t, "gwekesa", response.Username)
		assert.Equal(t, "Grace Wekesa", response.FullName)
		assert.Equal(t, "mentor", response.Role)
		assert.Equal(t, "active", response.Status)
		assert.Equal(t, []uuid.UUID{villageID}, response.VillageIDs)
		userRepo.AssertExpectations(t)
	})

	t.Run("defaults to a pending account without activate", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		userRepo.On("ExistsByUsername", ctx, "gwekesa").Return(false, nil)
		userRepo.On("ExistsByEmail", ctx, "g.wekesa@example.org").Return(false, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		response, err := service.CreateUser(ctx, CreateUserRequest{
			Username: "gwekesa",
			Email:    "g.wekesa@example.org",
			Password: "Wekesa2024pass",
			Role:     "mentor",
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", response.Status)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		userRepo.On("ExistsByUsername", ctx, "gwekesa").Return(true, nil)

		_, err := service.CreateUser(ctx, CreateUserRequest{
			Username: "gwekesa",
			Email:    "g.wekesa@example.org",
			Password: "Wekesa2024pass",
			Role:     "mentor",
		})

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		userRepo.On("ExistsByUsername", ctx, "gwekesa").Return(false, nil)
		userRepo.On("ExistsByEmail", ctx, "g.wekesa@example.org").Return(true, nil)

		_, err := service.CreateUser(ctx, CreateUserRequest{
			Username: "gwekesa",
			Email:    "g.wekesa@example.org",
			Password: "Wekesa2024pass",
			Role:     "mentor",
		})

		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		userRepo.On("ExistsByUsername", ctx, "gwekesa").Return(false, nil)
		userRepo.On("ExistsByEmail", ctx, "g.wekesa@example.org").Return(false, nil)

		_, err := service.CreateUser(ctx, CreateUserRequest{
			Username: "gwekesa",
			Email:    "g.wekesa@example.org",
			Password: "Wekesa2024pass",
			Role:     "superadmin",
		})

		require.Error(t, err)
	})
}

func TestUserServiceGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		user := newActiveTestUser(t)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("LoadVillageAssignments", ctx, user).Return(nil)

		response, err := service.GetUser(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.ID, response.ID)
		assert.Equal(t, "aodhiambo", response.Username)
	})

	t.Run("maps missing user to not found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		id := uuid.New()
		userRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := service.GetUser(ctx, id)
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestUserServiceListUsers(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	service := newTestUserService(userRepo)

	users := []*identity.User{newActiveTestUser(t), newActiveTestUser(t)}
	userRepo.On("FindAll", ctx, mock.MatchedBy(func(f identity.UserFilter) bool {
		return f.Keyword == "odhiambo" && f.Role != nil && *f.Role == identity.RoleMentor && f.Page == 2
	})).Return(users, int64(12), nil)

	responses, total, err := service.ListUsers(ctx, UserListFilter{
		Search:   "odhiambo",
		Role:     "mentor",
		Page:     2,
		PageSize: 10,
	})

	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, int64(12), total)
}

func TestUserServiceUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only the provided fields", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		user := newActiveTestUser(t)
		require.NoError(t, user.SetName("Achieng", "Odhiambo"))

		newPhone := "+254701234567"
		newOffice := "Kakuma"
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		response, err := service.UpdateUser(ctx, user.ID, UpdateUserRequest{
			Phone:  &newPhone,
			Office: &newOffice,
		})

		require.NoError(t, err)
		assert.Equal(t, "+254701234567", response.Phone)
		assert.Equal(t, "Kakuma", response.Office)
		assert.Equal(t, "Achieng Odhiambo", response.FullName)
	})

	t.Run("changes role", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		user := newActiveTestUser(t)
		newRole := "field_associate"
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		response, err := service.UpdateUser(ctx, user.ID, UpdateUserRequest{Role: &newRole})

		require.NoError(t, err)
		assert.Equal(t, "field_associate", response.Role)
	})

	t.Run("rejects email already in use", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		user := newActiveTestUser(t)
		taken := "taken@example.org"
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("ExistsByEmail", ctx, taken).Return(true, nil)

		_, err := service.UpdateUser(ctx, user.ID, UpdateUserRequest{Email: &taken})
		assertDomainErrorCode(t, err, "ALREADY_EXISTS")
	})
}

func TestUserServiceActivateDeactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("activates a pending user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		user, err := identity.NewUser("pending.user", "pending@example.org", "Pending2024pass", identity.RoleMentor)
		require.NoError(t, err)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		require.NoError(t, service.ActivateUser(ctx, user.ID))
		assert.Equal(t, identity.UserStatusActive, user.Status)
	})

	t.Run("deactivates an active user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		user := newActiveTestUser(t)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Update", ctx, user).Return(nil)

		require.NoError(t, service.DeactivateUser(ctx, user.ID))
		assert.Equal(t, identity.UserStatusDeactivated, user.Status)
	})
}

func TestUserServiceAssignVillages(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	service := newTestUserService(userRepo)

	user := newActiveTestUser(t)
	require.NoError(t, user.AssignVillage(uuid.New()))

	replacement := []uuid.UUID{uuid.New(), uuid.New()}
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("SaveVillageAssignments", ctx, user).Return(nil)

	response, err := service.AssignVillages(ctx, user.ID, AssignVillagesRequest{VillageIDs: replacement})

	require.NoError(t, err)
	assert.Equal(t, replacement, response.VillageIDs)
}

func TestUserServiceResetUserPassword(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	service := newTestUserService(userRepo)

	user := newActiveTestUser(t)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Update", ctx, user).Return(nil)

	require.NoError(t, service.ResetUserPassword(ctx, user.ID, "Temp2025pass"))
	assert.True(t, user.VerifyPassword("Temp2025pass"))
	assert.True(t, user.MustChangePassword)
}

func TestUserServiceDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an existing user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		user := newActiveTestUser(t)
		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Delete", ctx, user.ID).Return(nil)

		require.NoError(t, service.DeleteUser(ctx, user.ID))
		userRepo.AssertExpectations(t)
	})

	t.Run("maps missing user to not found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		service := newTestUserService(userRepo)

		id := uuid.New()
		userRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := service.DeleteUser(ctx, id)
		assertDomainErrorCode(t, err, "NOT_FOUND")
	})
}

func TestUserServiceGetMentorsByVillage(t *testing.T) {
	ctx := context.Background()

	userRepo := new(MockUserRepository)
	service := newTestUserService(userRepo)

	villageID := uuid.New()
	mentor := newActiveTestUser(t)
	associate, err := identity.NewActiveUser("fassociate", "f.associate@example.org", "Associate2024pass", identity.RoleFieldAssociate)
	require.NoError(t, err)

	userRepo.On("FindByVillage", ctx, villageID).Return([]*identity.User{mentor, associate}, nil)

	responses, err := service.GetMentorsByVillage(ctx, villageID)

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "aodhiambo", responses[0].Username)
}
