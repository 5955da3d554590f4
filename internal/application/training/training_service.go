package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/training"
	"github.com/upg/backend/internal/infrastructure/sms"
)

// SMSSender delivers a message to one phone number. Satisfied by the SMS
// infrastructure service.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string, opts sms.SendOptions) error
}

// Service manages training modules, cohort enrollment and attendance
type Service struct {
	trainingRepo  training.TrainingRepository
	programRepo   program.ProgramRepository
	householdRepo household.HouseholdRepository
	smsSender     SMSSender
	logger        *zap.Logger
}

// NewService creates a new training service. The SMS sender is optional;
// session reminders fail with an error when it is absent.
func NewService(
	trainingRepo training.TrainingRepository,
	programRepo program.ProgramRepository,
	householdRepo household.HouseholdRepository,
	smsSender SMSSender,
	logger *zap.Logger,
) *Service {
	return &Service{
		trainingRepo:  trainingRepo,
		programRepo:   programRepo,
		householdRepo: householdRepo,
		smsSender:     smsSender,
		logger:        logger,
	}
}

// CreateTraining schedules a new training module
func (s *Service) CreateTraining(ctx context.Context, req CreateTrainingRequest) (*TrainingResponse, error) {
	if req.ProgramID != nil {
		if _, err := s.programRepo.FindByID(ctx, *req.ProgramID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Program not found")
			}
			return nil, err
		}
	}

	t, err := training.NewTraining(req.Name, req.ModuleID, req.CreatedBy)
	if err != nil {
		return nil, err
	}

	if req.ModuleNumber > 0 {
		if err := t.SetModuleNumber(req.ModuleNumber); err != nil {
			return nil, err
		}
	}
	if req.ProgramID != nil {
		t.AttachProgram(*req.ProgramID)
	}
	if req.MentorID != nil {
		t.AssignMentor(*req.MentorID)
	}
	t.Description = req.Description
	if req.Location != "" || req.DurationHours != nil {
		duration := decimalOrZero(req.DurationHours)
		t.SetVenue(req.Location, duration)
	}
	if req.StartDate != nil && req.EndDate != nil {
		if err := t.SetSchedule(*req.StartDate, *req.EndDate, req.SessionDates); err != nil {
			return nil, err
		}
	}
	if req.MaxHouseholds > 0 {
		if err := t.SetCapacity(req.MaxHouseholds); err != nil {
			return nil, err
		}
	}

	if err := s.trainingRepo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create training", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create training")
	}

	s.logger.Info("training created",
		zap.String("training_id", t.ID.String()),
		zap.String("name", t.Name))

	return ToTrainingResponse(t), nil
}

// GetTraining retrieves a training with its cohort roster
func (s *Service) GetTraining(ctx context.Context, id uuid.UUID) (*TrainingResponse, error) {
	t, err := s.findTraining(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadEnrollments(ctx, t); err != nil {
		return nil, err
	}
	return ToTrainingResponse(t), nil
}

// ListTrainings returns trainings matching the filter
func (s *Service) ListTrainings(ctx context.Context, filter TrainingListFilter) ([]*TrainingResponse, int64, error) {
	domainFilter := training.NewTrainingFilter()
	domainFilter.Keyword = filter.Search
	domainFilter.ProgramID = filter.ProgramID
	if filter.Status != "" {
		status := training.TrainingStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	trainings, total, err := s.trainingRepo.FindAll(ctx, domainFilter)
	if err != nil {
		s.logger.Error("failed to list trainings", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list trainings")
	}
	return ToTrainingResponses(trainings), total, nil
}

// ActivateTraining opens a planned training for delivery
func (s *Service) ActivateTraining(ctx context.Context, id uuid.UUID) (*TrainingResponse, error) {
	return s.transition(ctx, id, (*training.Training).Activate)
}

// CancelTraining cancels an unfinished training
func (s *Service) CancelTraining(ctx context.Context, id uuid.UUID) (*TrainingResponse, error) {
	return s.transition(ctx, id, (*training.Training).Cancel)
}

// CompleteTraining closes the training and completes its remaining cohort
func (s *Service) CompleteTraining(ctx context.Context, id uuid.UUID) (*TrainingResponse, error) {
	t, err := s.findTraining(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadEnrollments(ctx, t); err != nil {
		return nil, err
	}

	if err := t.Complete(time.Now()); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Only an active training can be completed")
		}
		return nil, err
	}

	if err := s.trainingRepo.Update(ctx, t); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update training")
	}
	if err := s.trainingRepo.SaveEnrollments(ctx, t.ID, t.Enrollments); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save enrollments")
	}
	return ToTrainingResponse(t), nil
}

// EnrollHousehold adds a household to the cohort. A household takes part in
// at most one training at a time.
func (s *Service) EnrollHousehold(ctx context.Context, trainingID uuid.UUID, req EnrollHouseholdRequest) (*TrainingResponse, error) {
	t, err := s.findTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if err := s.loadEnrollments(ctx, t); err != nil {
		return nil, err
	}

	if _, err := s.householdRepo.FindByID(ctx, req.HouseholdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household not found")
		}
		return nil, err
	}

	active, err := s.trainingRepo.FindActiveEnrollmentByHousehold(ctx, req.HouseholdID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check existing enrollments")
	}
	if active != nil {
		return nil, shared.ErrAlreadyEnrolled
	}

	if _, err := t.Enroll(req.HouseholdID, time.Now()); err != nil {
		if errors.Is(err, shared.ErrCapacityExceeded) {
			return nil, shared.NewDomainError("CAPACITY_EXCEEDED", "Training cohort is full")
		}
		return nil, err
	}

	if err := s.trainingRepo.SaveEnrollments(ctx, t.ID, t.Enrollments); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save enrollments")
	}

	s.logger.Info("household enrolled in training",
		zap.String("training_id", t.ID.String()),
		zap.String("household_id", req.HouseholdID.String()))

	return ToTrainingResponse(t), nil
}

// DropOutHousehold releases a household's slot as a drop-out
func (s *Service) DropOutHousehold(ctx context.Context, trainingID, householdID uuid.UUID) (*TrainingResponse, error) {
	return s.closeEnrollment(ctx, trainingID, householdID, (*training.Training).DropOut)
}

// TransferHousehold releases a household's slot so it can enroll elsewhere
func (s *Service) TransferHousehold(ctx context.Context, trainingID, householdID uuid.UUID) (*TrainingResponse, error) {
	return s.closeEnrollment(ctx, trainingID, householdID, (*training.Training).Transfer)
}

// CompleteHousehold marks one household's participation as completed
func (s *Service) CompleteHousehold(ctx context.Context, trainingID, householdID uuid.UUID) (*TrainingResponse, error) {
	t, err := s.findTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if err := s.loadEnrollments(ctx, t); err != nil {
		return nil, err
	}

	if err := t.CompleteHousehold(householdID, time.Now()); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household is not enrolled in this training")
		}
		return nil, err
	}

	if err := s.trainingRepo.SaveEnrollments(ctx, t.ID, t.Enrollments); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save enrollments")
	}
	return ToTrainingResponse(t), nil
}

// MarkAttendance records one household's attendance for a session date
func (s *Service) MarkAttendance(ctx context.Context, trainingID uuid.UUID, req MarkAttendanceRequest) (*AttendanceResponse, error) {
	t, err := s.findTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if err := s.loadEnrollments(ctx, t); err != nil {
		return nil, err
	}

	attendance, err := t.MarkAttendance(req.HouseholdID, req.TrainingDate, req.Attended, req.MarkedBy)
	if err != nil {
		return nil, err
	}

	if err := s.trainingRepo.SaveAttendance(ctx, attendance); err != nil {
		s.logger.Error("failed to save attendance",
			zap.String("training_id", t.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save attendance")
	}
	return ToAttendanceResponse(attendance), nil
}

// ListAttendance returns all attendance marks for a training
func (s *Service) ListAttendance(ctx context.Context, trainingID uuid.UUID) ([]*AttendanceResponse, error) {
	if _, err := s.findTraining(ctx, trainingID); err != nil {
		return nil, err
	}

	marks, err := s.trainingRepo.FindAttendance(ctx, trainingID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load attendance")
	}

	responses := make([]*AttendanceResponse, len(marks))
	for i, mark := range marks {
		responses[i] = ToAttendanceResponse(mark)
	}
	return responses, nil
}

// SendSessionReminder sends an SMS to every enrolled household with a phone
// number on record. Returns the number of messages delivered.
func (s *Service) SendSessionReminder(ctx context.Context, trainingID uuid.UUID, req SessionReminderRequest) (int, error) {
	if s.smsSender == nil {
		return 0, shared.NewDomainError("SMS_UNAVAILABLE", "SMS delivery is not configured")
	}

	t, err := s.findTraining(ctx, trainingID)
	if err != nil {
		return 0, err
	}
	if err := s.loadEnrollments(ctx, t); err != nil {
		return 0, err
	}

	sent := 0
	for _, enrollment := range t.Enrollments {
		if enrollment.Status != training.EnrollmentEnrolled {
			continue
		}
		h, err := s.householdRepo.FindByID(ctx, enrollment.HouseholdID)
		if err != nil || h.PhoneNumber == "" {
			continue
		}

		opts := sms.SendOptions{
			HouseholdID: &enrollment.HouseholdID,
			TrainingID:  &t.ID,
		}
		if req.MentorID != uuid.Nil {
			mentorID := req.MentorID
			opts.MentorID = &mentorID
		}
		if err := s.smsSender.Send(ctx, h.PhoneNumber, req.Message, opts); err != nil {
			s.logger.Warn("session reminder failed",
				zap.String("household_id", enrollment.HouseholdID.String()), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("session reminders sent",
		zap.String("training_id", t.ID.String()),
		zap.Int("sent", sent))

	return sent, nil
}

func (s *Service) closeEnrollment(ctx context.Context, trainingID, householdID uuid.UUID, fn func(*training.Training, uuid.UUID) error) (*TrainingResponse, error) {
	t, err := s.findTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if err := s.loadEnrollments(ctx, t); err != nil {
		return nil, err
	}

	if err := fn(t, householdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household is not enrolled in this training")
		}
		return nil, err
	}

	if err := s.trainingRepo.SaveEnrollments(ctx, t.ID, t.Enrollments); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save enrollments")
	}
	return ToTrainingResponse(t), nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, fn func(*training.Training) error) (*TrainingResponse, error) {
	t, err := s.findTraining(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(t); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Training cannot make this transition from its current state")
		}
		return nil, err
	}

	if err := s.trainingRepo.Update(ctx, t); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update training")
	}
	return ToTrainingResponse(t), nil
}

func (s *Service) findTraining(ctx context.Context, id uuid.UUID) (*training.Training, error) {
	t, err := s.trainingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Training not found")
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) loadEnrollments(ctx context.Context, t *training.Training) error {
	enrollments, err := s.trainingRepo.LoadEnrollments(ctx, t.ID)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to load enrollments")
	}
	t.Enrollments = enrollments
	return nil
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
