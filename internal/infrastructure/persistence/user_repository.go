package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/identity"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a user by ID
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("username = ?", strings.ToLower(username)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns users matching the filter with pagination
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{})

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", kw, kw, kw, kw)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.SortBy != "" {
		direction := "ASC"
		if strings.EqualFold(filter.SortOrder, "desc") {
			direction = "DESC"
		}
		order = filter.SortBy + " " + direction
	}

	var userModels []models.UserModel
	if err := query.Order(order).Offset(filter.Offset()).Limit(filter.Limit()).Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*identity.User, len(userModels))
	for i := range userModels {
		users[i] = userModels[i].ToDomain()
	}
	return users, total, nil
}

// FindByRole finds all users with a specific role
func (r *GormUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]*identity.User, error) {
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*identity.User, len(userModels))
	for i := range userModels {
		users[i] = userModels[i].ToDomain()
	}
	return users, nil
}

// FindByVillage finds users assigned to a village
func (r *GormUserRepository) FindByVillage(ctx context.Context, villageID uuid.UUID) ([]*identity.User, error) {
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_villages ON user_villages.user_id = users.id").
		Where("user_villages.village_id = ?", villageID).
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*identity.User, len(userModels))
	for i := range userModels {
		users[i] = userModels[i].ToDomain()
	}
	return users, nil
}

// ExistsByUsername checks if a username already exists
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("username = ?", strings.ToLower(username)).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if an email already exists
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

// SaveVillageAssignments saves the user's village assignments, replacing the existing set
func (r *GormUserRepository) SaveVillageAssignments(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserVillageModel{}).Error; err != nil {
			return err
		}
		if len(user.AssignedVillageIDs) == 0 {
			return nil
		}
		assignments := make([]models.UserVillageModel, len(user.AssignedVillageIDs))
		now := time.Now()
		for i, villageID := range user.AssignedVillageIDs {
			assignments[i] = models.UserVillageModel{
				UserID:    user.ID,
				VillageID: villageID,
				CreatedAt: now,
			}
		}
		return tx.Create(&assignments).Error
	})
}

// LoadVillageAssignments loads the user's village assignments
func (r *GormUserRepository) LoadVillageAssignments(ctx context.Context, user *identity.User) error {
	var assignments []models.UserVillageModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Find(&assignments).Error; err != nil {
		return err
	}

	user.AssignedVillageIDs = make([]uuid.UUID, len(assignments))
	for i, a := range assignments {
		user.AssignedVillageIDs[i] = a.VillageID
	}
	return nil
}

// Count returns the total number of users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Count(&count).Error
	return count, err
}

// GormPasswordResetTokenRepository implements identity.PasswordResetTokenRepository using GORM
type GormPasswordResetTokenRepository struct {
	db *gorm.DB
}

// NewGormPasswordResetTokenRepository creates a new GormPasswordResetTokenRepository
func NewGormPasswordResetTokenRepository(db *gorm.DB) *GormPasswordResetTokenRepository {
	return &GormPasswordResetTokenRepository{db: db}
}

// Create stores a new reset token
func (r *GormPasswordResetTokenRepository) Create(ctx context.Context, token *identity.PasswordResetToken) error {
	model := &models.PasswordResetTokenModel{}
	model.FromDomain(token)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates a token (marking it used)
func (r *GormPasswordResetTokenRepository) Update(ctx context.Context, token *identity.PasswordResetToken) error {
	model := &models.PasswordResetTokenModel{}
	model.FromDomain(token)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByToken finds a token by its value
func (r *GormPasswordResetTokenRepository) FindByToken(ctx context.Context, token string) (*identity.PasswordResetToken, error) {
	var model models.PasswordResetTokenModel
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// InvalidateForUser deactivates all outstanding tokens for a user
func (r *GormPasswordResetTokenRepository) InvalidateForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.PasswordResetTokenModel{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
}
