package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/training"
	"github.com/upg/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTrainingRepository implements training.TrainingRepository using GORM
type GormTrainingRepository struct {
	db *gorm.DB
}

// NewGormTrainingRepository creates a new GormTrainingRepository
func NewGormTrainingRepository(db *gorm.DB) *GormTrainingRepository {
	return &GormTrainingRepository{db: db}
}

// Create creates a new training
func (r *GormTrainingRepository) Create(ctx context.Context, t *training.Training) error {
	model := &models.TrainingModel{}
	model.FromDomain(t)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing training
func (r *GormTrainingRepository) Update(ctx context.Context, t *training.Training) error {
	model := &models.TrainingModel{}
	model.FromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a training by ID
func (r *GormTrainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TrainingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a training by ID
func (r *GormTrainingRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Training, error) {
	var model models.TrainingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns trainings matching the filter with pagination
func (r *GormTrainingRepository) FindAll(ctx context.Context, filter training.TrainingFilter) ([]*training.Training, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TrainingModel{})

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR module_id LIKE ?", kw, kw)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProgramID != nil {
		query = query.Where("program_id = ?", *filter.ProgramID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var trainingModels []models.TrainingModel
	if err := query.Order("created_at DESC").Offset(filter.Offset()).Limit(filter.Limit()).Find(&trainingModels).Error; err != nil {
		return nil, 0, err
	}
	return trainingModelsToDomain(trainingModels), total, nil
}

// FindByMentor finds trainings assigned to a mentor
func (r *GormTrainingRepository) FindByMentor(ctx context.Context, mentorID uuid.UUID) ([]*training.Training, error) {
	var trainingModels []models.TrainingModel
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&trainingModels).Error; err != nil {
		return nil, err
	}
	return trainingModelsToDomain(trainingModels), nil
}

// SaveEnrollments saves the training's enrollment roster, replacing the existing set
func (r *GormTrainingRepository) SaveEnrollments(ctx context.Context, trainingID uuid.UUID, enrollments []training.Enrollment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("training_id = ?", trainingID).Delete(&models.TrainingEnrollmentModel{}).Error; err != nil {
			return err
		}
		if len(enrollments) == 0 {
			return nil
		}
		enrollmentModels := make([]models.TrainingEnrollmentModel, len(enrollments))
		for i, e := range enrollments {
			enrollmentModels[i].FromDomain(e)
		}
		return tx.Create(&enrollmentModels).Error
	})
}

// LoadEnrollments loads the training's enrollment roster
func (r *GormTrainingRepository) LoadEnrollments(ctx context.Context, trainingID uuid.UUID) ([]training.Enrollment, error) {
	var enrollmentModels []models.TrainingEnrollmentModel
	if err := r.db.WithContext(ctx).
		Where("training_id = ?", trainingID).
		Order("enrolled_date ASC").
		Find(&enrollmentModels).Error; err != nil {
		return nil, err
	}

	enrollments := make([]training.Enrollment, len(enrollmentModels))
	for i := range enrollmentModels {
		enrollments[i] = enrollmentModels[i].ToDomain()
	}
	return enrollments, nil
}

// FindActiveEnrollmentByHousehold returns the household's current training
// enrollment, or nil when it is free to enroll
func (r *GormTrainingRepository) FindActiveEnrollmentByHousehold(ctx context.Context, householdID uuid.UUID) (*training.Enrollment, error) {
	var model models.TrainingEnrollmentModel
	err := r.db.WithContext(ctx).
		Where("household_id = ? AND status = ?", householdID, training.EnrollmentEnrolled).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	enrollment := model.ToDomain()
	return &enrollment, nil
}

// SaveAttendance stores an attendance mark
func (r *GormTrainingRepository) SaveAttendance(ctx context.Context, attendance *training.Attendance) error {
	model := &models.AttendanceModel{}
	model.FromDomain(attendance)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindAttendance finds attendance marks for a training
func (r *GormTrainingRepository) FindAttendance(ctx context.Context, trainingID uuid.UUID) ([]*training.Attendance, error) {
	return r.findAttendance(ctx, "training_id = ?", trainingID)
}

// FindAttendanceByHousehold finds attendance marks for a household
func (r *GormTrainingRepository) FindAttendanceByHousehold(ctx context.Context, householdID uuid.UUID) ([]*training.Attendance, error) {
	return r.findAttendance(ctx, "household_id = ?", householdID)
}

func (r *GormTrainingRepository) findAttendance(ctx context.Context, condition string, id uuid.UUID) ([]*training.Attendance, error) {
	var attendanceModels []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where(condition, id).
		Order("training_date ASC").
		Find(&attendanceModels).Error; err != nil {
		return nil, err
	}

	marks := make([]*training.Attendance, len(attendanceModels))
	for i := range attendanceModels {
		marks[i] = attendanceModels[i].ToDomain()
	}
	return marks, nil
}

// AttendanceRateByBusinessGroup reports attended marks over total marks for
// households in the given business group, for grant performance sizing.
// Returns 0 when no attendance has been recorded.
func (r *GormTrainingRepository) AttendanceRateByBusinessGroup(ctx context.Context, businessGroupID uuid.UUID) (float64, error) {
	var rate sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&models.AttendanceModel{}).
		Select("AVG(CASE WHEN attended THEN 1.0 ELSE 0.0 END)").
		Joins("JOIN business_group_members ON business_group_members.household_id = training_attendance.household_id").
		Where("business_group_members.business_group_id = ? AND business_group_members.is_active = ?", businessGroupID, true).
		Scan(&rate).Error
	if err != nil {
		return 0, err
	}
	if !rate.Valid {
		return 0, nil
	}
	return rate.Float64, nil
}

func trainingModelsToDomain(trainingModels []models.TrainingModel) []*training.Training {
	trainings := make([]*training.Training, len(trainingModels))
	for i := range trainingModels {
		trainings[i] = trainingModels[i].ToDomain()
	}
	return trainings
}

// GormMentoringRepository implements training.MentoringRepository using GORM
type GormMentoringRepository struct {
	db *gorm.DB
}

// NewGormMentoringRepository creates a new GormMentoringRepository
func NewGormMentoringRepository(db *gorm.DB) *GormMentoringRepository {
	return &GormMentoringRepository{db: db}
}

// SaveVisit stores a mentoring visit
func (r *GormMentoringRepository) SaveVisit(ctx context.Context, visit *training.MentoringVisit) error {
	model := &models.MentoringVisitModel{}
	model.FromDomain(visit)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindVisitsByHousehold finds visits for a household, newest first
func (r *GormMentoringRepository) FindVisitsByHousehold(ctx context.Context, householdID uuid.UUID) ([]*training.MentoringVisit, error) {
	var visitModels []models.MentoringVisitModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("visit_date DESC").
		Find(&visitModels).Error; err != nil {
		return nil, err
	}
	return visitModelsToDomain(visitModels), nil
}

// FindVisitsByMentor finds a mentor's visits within a date range
func (r *GormMentoringRepository) FindVisitsByMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*training.MentoringVisit, error) {
	var visitModels []models.MentoringVisitModel
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND visit_date >= ? AND visit_date < ?", mentorID, from, to).
		Order("visit_date ASC").
		Find(&visitModels).Error; err != nil {
		return nil, err
	}
	return visitModelsToDomain(visitModels), nil
}

// SaveNudge stores a phone nudge
func (r *GormMentoringRepository) SaveNudge(ctx context.Context, nudge *training.PhoneNudge) error {
	model := &models.PhoneNudgeModel{}
	model.FromDomain(nudge)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindNudgesByHousehold finds nudges for a household, newest first
func (r *GormMentoringRepository) FindNudgesByHousehold(ctx context.Context, householdID uuid.UUID) ([]*training.PhoneNudge, error) {
	var nudgeModels []models.PhoneNudgeModel
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("call_date DESC").
		Find(&nudgeModels).Error; err != nil {
		return nil, err
	}
	return nudgeModelsToDomain(nudgeModels), nil
}

// FindNudgesByMentor finds a mentor's nudges within a date range
func (r *GormMentoringRepository) FindNudgesByMentor(ctx context.Context, mentorID uuid.UUID, from, to time.Time) ([]*training.PhoneNudge, error) {
	var nudgeModels []models.PhoneNudgeModel
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND call_date >= ? AND call_date < ?", mentorID, from, to).
		Order("call_date ASC").
		Find(&nudgeModels).Error; err != nil {
		return nil, err
	}
	return nudgeModelsToDomain(nudgeModels), nil
}

// SaveReport stores a periodic mentoring report
func (r *GormMentoringRepository) SaveReport(ctx context.Context, report *training.MentoringReport) error {
	model := &models.MentoringReportModel{}
	model.FromDomain(report)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindReport finds a mentor's report for a specific period
func (r *GormMentoringRepository) FindReport(ctx context.Context, mentorID uuid.UUID, period training.ReportingPeriod, periodStart time.Time) (*training.MentoringReport, error) {
	var model models.MentoringReportModel
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND reporting_period = ? AND period_start = ?", mentorID, period, periodStart).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindReportsByMentor finds all reports submitted by a mentor, newest first
func (r *GormMentoringRepository) FindReportsByMentor(ctx context.Context, mentorID uuid.UUID) ([]*training.MentoringReport, error) {
	var reportModels []models.MentoringReportModel
	if err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("period_start DESC").
		Find(&reportModels).Error; err != nil {
		return nil, err
	}

	reports := make([]*training.MentoringReport, len(reportModels))
	for i := range reportModels {
		reports[i] = reportModels[i].ToDomain()
	}
	return reports, nil
}

func visitModelsToDomain(visitModels []models.MentoringVisitModel) []*training.MentoringVisit {
	visits := make([]*training.MentoringVisit, len(visitModels))
	for i := range visitModels {
		visits[i] = visitModels[i].ToDomain()
	}
	return visits
}

func nudgeModelsToDomain(nudgeModels []models.PhoneNudgeModel) []*training.PhoneNudge {
	nudges := make([]*training.PhoneNudge, len(nudgeModels))
	for i := range nudgeModels {
		nudges[i] = nudgeModels[i].ToDomain()
	}
	return nudges
}
