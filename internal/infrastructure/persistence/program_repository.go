package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProgramRepository implements program.ProgramRepository using GORM
type GormProgramRepository struct {
	db *gorm.DB
}

// NewGormProgramRepository creates a new GormProgramRepository
func NewGormProgramRepository(db *gorm.DB) *GormProgramRepository {
	return &GormProgramRepository{db: db}
}

// Create creates a new program
func (r *GormProgramRepository) Create(ctx context.Context, p *program.Program) error {
	model := models.ProgramModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing program
func (r *GormProgramRepository) Update(ctx context.Context, p *program.Program) error {
	model := models.ProgramModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a program by ID
func (r *GormProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProgramModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a program by ID
func (r *GormProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	var model models.ProgramModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a program by name
func (r *GormProgramRepository) FindByName(ctx context.Context, name string) (*program.Program, error) {
	var model models.ProgramModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns programs matching the filter with pagination
func (r *GormProgramRepository) FindAll(ctx context.Context, filter program.ProgramFilter) ([]*program.Program, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProgramModel{})

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", kw, kw)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var programModels []models.ProgramModel
	if err := query.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&programModels).Error; err != nil {
		return nil, 0, err
	}

	programs := make([]*program.Program, len(programModels))
	for i := range programModels {
		programs[i] = programModels[i].ToDomain()
	}
	return programs, total, nil
}

// ExistsByName checks if a program name already exists
func (r *GormProgramRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProgramModel{}).
		Where("name = ?", name).
		Count(&count).Error
	return count > 0, err
}

// Count returns the total number of programs
func (r *GormProgramRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProgramModel{}).Count(&count).Error
	return count, err
}

// GormEnrollmentRepository implements program.EnrollmentRepository using GORM
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository creates a new GormEnrollmentRepository
func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// Create creates a new enrollment
func (r *GormEnrollmentRepository) Create(ctx context.Context, enrollment *program.Enrollment) error {
	model := &models.EnrollmentModel{}
	model.FromDomain(enrollment)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing enrollment
func (r *GormEnrollmentRepository) Update(ctx context.Context, enrollment *program.Enrollment) error {
	model := &models.EnrollmentModel{}
	model.FromDomain(enrollment)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds an enrollment by ID
func (r *GormEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Enrollment, error) {
	var model models.EnrollmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByHouseholdAndProgram finds a household's enrollment in a program
func (r *GormEnrollmentRepository) FindByHouseholdAndProgram(ctx context.Context, householdID, programID uuid.UUID) (*program.Enrollment, error) {
	var model models.EnrollmentModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ? AND program_id = ?", householdID, programID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByHousehold finds all enrollments for a household
func (r *GormEnrollmentRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]*program.Enrollment, error) {
	var enrollmentModels []models.EnrollmentModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("created_at DESC").
		Find(&enrollmentModels).Error; err != nil {
		return nil, err
	}
	return enrollmentModelsToDomain(enrollmentModels), nil
}

// FindByProgram finds enrollments in a program matching the filter
func (r *GormEnrollmentRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter program.EnrollmentFilter) ([]*program.Enrollment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.EnrollmentModel{}).
		Where("program_id = ?", programID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.MentorID != nil {
		query = query.Where("mentor_id = ?", *filter.MentorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var enrollmentModels []models.EnrollmentModel
	if err := query.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&enrollmentModels).Error; err != nil {
		return nil, 0, err
	}
	return enrollmentModelsToDomain(enrollmentModels), total, nil
}

// FindOngoingByHousehold returns the household's current enrolled or active
// participation, or nil when the household is free to enroll
func (r *GormEnrollmentRepository) FindOngoingByHousehold(ctx context.Context, householdID uuid.UUID) (*program.Enrollment, error) {
	var model models.EnrollmentModel
	err := r.db.WithContext(ctx).
		Where("household_id = ? AND status IN ?", householdID,
			[]program.ParticipationStatus{program.ParticipationEnrolled, program.ParticipationActive}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByProgramAndStatus counts enrollments in a program with a given status
func (r *GormEnrollmentRepository) CountByProgramAndStatus(ctx context.Context, programID uuid.UUID, status program.ParticipationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.EnrollmentModel{}).
		Where("program_id = ? AND status = ?", programID, status).
		Count(&count).Error
	return count, err
}

// SaveMilestones stores the initial milestone set for an enrollment
func (r *GormEnrollmentRepository) SaveMilestones(ctx context.Context, milestones []*program.Milestone) error {
	if len(milestones) == 0 {
		return nil
	}
	milestoneModels := make([]models.MilestoneModel, len(milestones))
	for i, ms := range milestones {
		milestoneModels[i].FromDomain(ms)
	}
	return r.db.WithContext(ctx).Create(&milestoneModels).Error
}

// UpdateMilestone updates a single milestone
func (r *GormEnrollmentRepository) UpdateMilestone(ctx context.Context, milestone *program.Milestone) error {
	model := &models.MilestoneModel{}
	model.FromDomain(milestone)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindMilestones finds all milestones for an enrollment
func (r *GormEnrollmentRepository) FindMilestones(ctx context.Context, enrollmentID uuid.UUID) ([]*program.Milestone, error) {
	var milestoneModels []models.MilestoneModel
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("created_at ASC").
		Find(&milestoneModels).Error; err != nil {
		return nil, err
	}

	milestones := make([]*program.Milestone, len(milestoneModels))
	for i := range milestoneModels {
		milestones[i] = milestoneModels[i].ToDomain()
	}
	return milestones, nil
}

// FindMilestone finds a specific milestone for an enrollment
func (r *GormEnrollmentRepository) FindMilestone(ctx context.Context, enrollmentID uuid.UUID, key program.MilestoneKey) (*program.Milestone, error) {
	var model models.MilestoneModel
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ? AND `key` = ?", enrollmentID, key).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

func enrollmentModelsToDomain(enrollmentModels []models.EnrollmentModel) []*program.Enrollment {
	enrollments := make([]*program.Enrollment, len(enrollmentModels))
	for i := range enrollmentModels {
		enrollments[i] = enrollmentModels[i].ToDomain()
	}
	return enrollments
}
