package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/upg/backend/internal/domain/grant"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSBGrantRepository implements grant.SBGrantRepository using GORM
type GormSBGrantRepository struct {
	db *gorm.DB
}

// NewGormSBGrantRepository creates a new GormSBGrantRepository
func NewGormSBGrantRepository(db *gorm.DB) *GormSBGrantRepository {
	return &GormSBGrantRepository{db: db}
}

// Create creates a new seed business grant
func (r *GormSBGrantRepository) Create(ctx context.Context, g *grant.SBGrant) error {
	model := models.SBGrantModelFromDomain(g)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing seed business grant
func (r *GormSBGrantRepository) Update(ctx context.Context, g *grant.SBGrant) error {
	model := models.SBGrantModelFromDomain(g)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a seed business grant by ID
func (r *GormSBGrantRepository) FindByID(ctx context.Context, id uuid.UUID) (*grant.SBGrant, error) {
	var model models.SBGrantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProgram finds seed grants in a program matching the filter
func (r *GormSBGrantRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter grant.GrantFilter) ([]*grant.SBGrant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SBGrantModel{}).
		Where("program_id = ?", programID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var grantModels []models.SBGrantModel
	if err := query.Order("application_date DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&grantModels).Error; err != nil {
		return nil, 0, err
	}
	return sbGrantModelsToDomain(grantModels), total, nil
}

// FindByBusinessGroup finds the seed grant applied for by a business group
func (r *GormSBGrantRepository) FindByBusinessGroup(ctx context.Context, businessGroupID uuid.UUID) (*grant.SBGrant, error) {
	var model models.SBGrantModel
	if err := r.db.WithContext(ctx).
		Where("business_group_id = ?", businessGroupID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByApplicant finds seed grants for a specific applicant
func (r *GormSBGrantRepository) FindByApplicant(ctx context.Context, applicant grant.ApplicantRef) ([]*grant.SBGrant, error) {
	if err := applicant.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.SBGrantModel{})
	switch {
	case applicant.HouseholdID != nil:
		query = query.Where("household_id = ?", *applicant.HouseholdID)
	case applicant.BusinessGroupID != nil:
		query = query.Where("business_group_id = ?", *applicant.BusinessGroupID)
	case applicant.SavingsGroupID != nil:
		query = query.Where("savings_group_id = ?", *applicant.SavingsGroupID)
	}

	var grantModels []models.SBGrantModel
	if err := query.Order("application_date DESC").Find(&grantModels).Error; err != nil {
		return nil, err
	}
	return sbGrantModelsToDomain(grantModels), nil
}

// CountByStatus counts seed grants with a given status
func (r *GormSBGrantRepository) CountByStatus(ctx context.Context, status grant.GrantStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SBGrantModel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// TotalDisbursed sums disbursed amounts across all seed grants,
// returned as a decimal string in KES
func (r *GormSBGrantRepository) TotalDisbursed(ctx context.Context) (string, error) {
	var total sql.NullString
	err := r.db.WithContext(ctx).Model(&models.SBGrantModel{}).
		Select("SUM(disbursed_amount)").
		Scan(&total).Error
	if err != nil {
		return "", err
	}
	if !total.Valid || total.String == "" {
		return decimal.Zero.String(), nil
	}
	return total.String, nil
}

func sbGrantModelsToDomain(grantModels []models.SBGrantModel) []*grant.SBGrant {
	grants := make([]*grant.SBGrant, len(grantModels))
	for i := range grantModels {
		grants[i] = grantModels[i].ToDomain()
	}
	return grants
}

// GormPRGrantRepository implements grant.PRGrantRepository using GORM
type GormPRGrantRepository struct {
	db *gorm.DB
}

// NewGormPRGrantRepository creates a new GormPRGrantRepository
func NewGormPRGrantRepository(db *gorm.DB) *GormPRGrantRepository {
	return &GormPRGrantRepository{db: db}
}

// Create creates a new performance recognition grant
func (r *GormPRGrantRepository) Create(ctx context.Context, g *grant.PRGrant) error {
	model := &models.PRGrantModel{}
	model.FromDomain(g)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing performance recognition grant
func (r *GormPRGrantRepository) Update(ctx context.Context, g *grant.PRGrant) error {
	model := &models.PRGrantModel{}
	model.FromDomain(g)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a performance recognition grant by ID
func (r *GormPRGrantRepository) FindByID(ctx context.Context, id uuid.UUID) (*grant.PRGrant, error) {
	var model models.PRGrantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySBGrant finds the performance grant linked to a seed grant
func (r *GormPRGrantRepository) FindBySBGrant(ctx context.Context, sbGrantID uuid.UUID) (*grant.PRGrant, error) {
	var model models.PRGrantModel
	if err := r.db.WithContext(ctx).
		Where("sb_grant_id = ?", sbGrantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProgram finds performance grants in a program matching the filter
func (r *GormPRGrantRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter grant.GrantFilter) ([]*grant.PRGrant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PRGrantModel{}).
		Where("program_id = ?", programID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var grantModels []models.PRGrantModel
	if err := query.Order("application_date DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&grantModels).Error; err != nil {
		return nil, 0, err
	}

	grants := make([]*grant.PRGrant, len(grantModels))
	for i := range grantModels {
		grants[i] = grantModels[i].ToDomain()
	}
	return grants, total, nil
}

// CountByStatus counts performance grants with a given status
func (r *GormPRGrantRepository) CountByStatus(ctx context.Context, status grant.PRGrantStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PRGrantModel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// GormDisbursementRepository implements grant.DisbursementRepository using GORM
type GormDisbursementRepository struct {
	db *gorm.DB
}

// NewGormDisbursementRepository creates a new GormDisbursementRepository
func NewGormDisbursementRepository(db *gorm.DB) *GormDisbursementRepository {
	return &GormDisbursementRepository{db: db}
}

// Create records a payout transaction
func (r *GormDisbursementRepository) Create(ctx context.Context, disbursement *grant.Disbursement) error {
	model := &models.DisbursementModel{}
	model.FromDomain(disbursement)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindBySBGrant finds payouts for a seed grant, oldest first
func (r *GormDisbursementRepository) FindBySBGrant(ctx context.Context, sbGrantID uuid.UUID) ([]*grant.Disbursement, error) {
	return r.find(ctx, "sb_grant_id = ?", sbGrantID)
}

// FindByPRGrant finds payouts for a performance grant, oldest first
func (r *GormDisbursementRepository) FindByPRGrant(ctx context.Context, prGrantID uuid.UUID) ([]*grant.Disbursement, error) {
	return r.find(ctx, "pr_grant_id = ?", prGrantID)
}

func (r *GormDisbursementRepository) find(ctx context.Context, condition string, id uuid.UUID) ([]*grant.Disbursement, error) {
	var disbursementModels []models.DisbursementModel
	if err := r.db.WithContext(ctx).
		Where(condition, id).
		Order("disbursement_date ASC").
		Find(&disbursementModels).Error; err != nil {
		return nil, err
	}

	disbursements := make([]*grant.Disbursement, len(disbursementModels))
	for i := range disbursementModels {
		disbursements[i] = disbursementModels[i].ToDomain()
	}
	return disbursements, nil
}

// GormApplicationRepository implements grant.ApplicationRepository using GORM
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewGormApplicationRepository creates a new GormApplicationRepository
func NewGormApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new grant application
func (r *GormApplicationRepository) Create(ctx context.Context, application *grant.Application) error {
	model := &models.GrantApplicationModel{}
	model.FromDomain(application)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing grant application
func (r *GormApplicationRepository) Update(ctx context.Context, application *grant.Application) error {
	model := &models.GrantApplicationModel{}
	model.FromDomain(application)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a grant application by ID
func (r *GormApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GrantApplicationModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a grant application by ID
func (r *GormApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*grant.Application, error) {
	var model models.GrantApplicationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns grant applications matching the filter with pagination
func (r *GormApplicationRepository) FindAll(ctx context.Context, filter grant.ApplicationFilter) ([]*grant.Application, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GrantApplicationModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.GrantType != nil {
		query = query.Where("grant_type = ?", *filter.GrantType)
	}
	if filter.ProgramID != nil {
		query = query.Where("program_id = ?", *filter.ProgramID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applicationModels []models.GrantApplicationModel
	if err := query.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&applicationModels).Error; err != nil {
		return nil, 0, err
	}
	return applicationModelsToDomain(applicationModels), total, nil
}

// FindByApplicant finds grant applications for a specific applicant
func (r *GormApplicationRepository) FindByApplicant(ctx context.Context, applicant grant.ApplicantRef) ([]*grant.Application, error) {
	if err := applicant.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.GrantApplicationModel{})
	switch {
	case applicant.HouseholdID != nil:
		query = query.Where("household_id = ?", *applicant.HouseholdID)
	case applicant.BusinessGroupID != nil:
		query = query.Where("business_group_id = ?", *applicant.BusinessGroupID)
	case applicant.SavingsGroupID != nil:
		query = query.Where("savings_group_id = ?", *applicant.SavingsGroupID)
	}

	var applicationModels []models.GrantApplicationModel
	if err := query.Order("created_at DESC").Find(&applicationModels).Error; err != nil {
		return nil, err
	}
	return applicationModelsToDomain(applicationModels), nil
}

// CountByStatus counts grant applications with a given status
func (r *GormApplicationRepository) CountByStatus(ctx context.Context, status grant.ApplicationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.GrantApplicationModel{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func applicationModelsToDomain(applicationModels []models.GrantApplicationModel) []*grant.Application {
	applications := make([]*grant.Application, len(applicationModels))
	for i := range applicationModels {
		applications[i] = applicationModels[i].ToDomain()
	}
	return applications
}
