package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/domain/shared"
)

// UserService handles staff account management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser creates a new staff account
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error("failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	role := identity.Role(req.Role)
	if req.Role == "" {
		role = identity.DefaultRole
	}

	var user *identity.User
	if req.Activate {
		user, err = identity.NewActiveUser(req.Username, req.Email, req.Password, role)
	} else {
		user, err = identity.NewUser(req.Username, req.Email, req.Password, role)
	}
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" || req.LastName != "" {
		if err := user.SetName(req.FirstName, req.LastName); err != nil {
			return nil, err
		}
	}
	if req.Phone != "" {
		if err := user.SetPhone(req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Office != "" {
		if err := user.SetOffice(req.Office); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	if len(req.Villages) > 0 {
		for _, villageID := range req.Villages {
			if err := user.AssignVillage(villageID); err != nil {
				return nil, err
			}
		}
		if err := s.userRepo.SaveVillageAssignments(ctx, user); err != nil {
			s.logger.Error("failed to save village assignments",
				zap.String("user_id", user.ID.String()), zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save village assignments")
		}
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return ToUserResponse(user), nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return nil, err
	}

	if err := s.userRepo.LoadVillageAssignments(ctx, user); err != nil {
		s.logger.Warn("failed to load village assignments",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return ToUserResponse(user), nil
}

// ListUsers returns users matching the filter with a total count
func (s *UserService) ListUsers(ctx context.Context, filter UserListFilter) ([]*UserResponse, int64, error) {
	domainFilter := identity.NewUserFilter().
		WithKeyword(filter.Search).
		WithPagination(filter.Page, filter.PageSize)
	if filter.Status != "" {
		domainFilter = domainFilter.WithStatus(identity.UserStatus(filter.Status))
	}
	if filter.Role != "" {
		domainFilter = domainFilter.WithRole(identity.Role(filter.Role))
	}

	users, total, err := s.userRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	return ToUserResponses(users), total, nil
}

// UpdateUser updates a user's profile fields
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
		}
		if err := user.SetEmail(*req.Email); err != nil {
			return nil, err
		}
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := user.FirstName
		lastName := user.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := user.SetName(firstName, lastName); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil {
		if err := user.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}

	if req.Office != nil {
		if err := user.SetOffice(*req.Office); err != nil {
			return nil, err
		}
	}

	if req.Role != nil {
		if err := user.ChangeRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	return ToUserResponse(user), nil
}

// ActivateUser activates a pending or deactivated account
func (s *UserService) ActivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return err
	}

	if err := user.Activate(); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate user")
	}

	s.logger.Info("user activated", zap.String("user_id", user.ID.String()))
	return nil
}

// DeactivateUser deactivates an account, blocking future logins
func (s *UserService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return err
	}

	if err := user.Deactivate(); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}

	s.logger.Info("user deactivated", zap.String("user_id", user.ID.String()))
	return nil
}

// UnlockUser clears a login lockout
func (s *UserService) UnlockUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return err
	}

	if err := user.Unlock(); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unlock user")
	}

	return nil
}

// AssignVillages replaces the user's village assignments
func (s *UserService) AssignVillages(ctx context.Context, id uuid.UUID, req AssignVillagesRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return nil, err
	}

	user.AssignedVillageIDs = nil
	for _, villageID := range req.VillageIDs {
		if err := user.AssignVillage(villageID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.SaveVillageAssignments(ctx, user); err != nil {
		s.logger.Error("failed to save village assignments",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save village assignments")
	}

	return ToUserResponse(user), nil
}

// ResetUserPassword sets a new password administratively and forces a change at next login
func (s *UserService) ResetUserPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	user.ForcePasswordChange()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	s.logger.Info("password reset by administrator", zap.String("user_id", user.ID.String()))
	return nil
}

// DeleteUser removes a user account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user",
			zap.String("user_id", id.String()), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete user")
	}

	return nil
}

// GetMentorsByVillage lists mentors assigned to a village
func (s *UserService) GetMentorsByVillage(ctx context.Context, villageID uuid.UUID) ([]*UserResponse, error) {
	users, err := s.userRepo.FindByVillage(ctx, villageID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users for village")
	}

	mentors := make([]*identity.User, 0, len(users))
	for _, u := range users {
		if u.Role == identity.RoleMentor {
			mentors = append(mentors, u)
		}
	}

	return ToUserResponses(mentors), nil
}
