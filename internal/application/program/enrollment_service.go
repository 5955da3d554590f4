package program

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
)

// EnrollmentService manages household participation in programs, including
// the 12-month graduation milestone track
type EnrollmentService struct {
	enrollmentRepo program.EnrollmentRepository
	programRepo    program.ProgramRepository
	householdRepo  household.HouseholdRepository
	eventBus       shared.EventPublisher
	logger         *zap.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(
	enrollmentRepo program.EnrollmentRepository,
	programRepo program.ProgramRepository,
	householdRepo household.HouseholdRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		programRepo:    programRepo,
		householdRepo:  householdRepo,
		eventBus:       eventBus,
		logger:         logger,
	}
}

// EnrollHousehold enrolls a household into a program. A household can hold
// only one ongoing enrollment at a time; graduation programs get the full
// milestone schedule created on enrollment.
func (s *EnrollmentService) EnrollHousehold(ctx context.Context, req EnrollHouseholdRequest) (*EnrollmentResponse, error) {
	p, err := s.programRepo.FindByID(ctx, req.ProgramID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Program not found")
		}
		return nil, err
	}

	if p.Status != program.ProgramStatusActive {
		return nil, shared.NewDomainError("PROGRAM_INACTIVE", "Program is not accepting participants")
	}
	if !p.CanAcceptApplications() {
		return nil, shared.NewDomainError("APPLICATIONS_CLOSED", "Program is no longer accepting applications")
	}

	if _, err := s.householdRepo.FindByID(ctx, req.HouseholdID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Household not found")
		}
		return nil, err
	}

	ongoing, err := s.enrollmentRepo.FindOngoingByHousehold(ctx, req.HouseholdID)
	if err != nil {
		s.logger.Error("failed to check ongoing enrollment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to enroll household")
	}
	if ongoing != nil {
		return nil, shared.ErrAlreadyEnrolled
	}

	if existing, err := s.enrollmentRepo.FindByHouseholdAndProgram(ctx, req.HouseholdID, req.ProgramID); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Household already has an enrollment record for this program")
	}

	enrollment, err := program.NewEnrollment(req.HouseholdID, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if req.MentorID != nil {
		if err := enrollment.AssignMentor(*req.MentorID); err != nil {
			return nil, err
		}
	}
	if err := enrollment.Enroll(); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		s.logger.Error("failed to create enrollment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to enroll household")
	}

	if p.HasGraduationMilestones() {
		enrolledAt := time.Now()
		if enrollment.EnrollmentDate != nil {
			enrolledAt = *enrollment.EnrollmentDate
		}
		milestones, err := program.MilestoneScheduleFor(enrollment.ID, enrolledAt)
		if err != nil {
			return nil, err
		}
		if err := s.enrollmentRepo.SaveMilestones(ctx, milestones); err != nil {
			s.logger.Error("failed to create milestone schedule",
				zap.String("enrollment_id", enrollment.ID.String()), zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create milestone schedule")
		}
	}

	s.publishEvents(ctx, enrollment.GetDomainEvents())
	enrollment.ClearDomainEvents()

	s.logger.Info("household enrolled",
		zap.String("enrollment_id", enrollment.ID.String()),
		zap.String("household_id", req.HouseholdID.String()),
		zap.String("program_id", req.ProgramID.String()))

	return ToEnrollmentResponse(enrollment), nil
}

// GetEnrollment retrieves an enrollment by ID
func (s *EnrollmentService) GetEnrollment(ctx context.Context, id uuid.UUID) (*EnrollmentResponse, error) {
	enrollment, err := s.findEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEnrollmentResponse(enrollment), nil
}

// ListByProgram returns a program's enrollments matching the filter
func (s *EnrollmentService) ListByProgram(ctx context.Context, programID uuid.UUID, filter EnrollmentListFilter) ([]*EnrollmentResponse, int64, error) {
	domainFilter := program.NewEnrollmentFilter()
	if filter.Status != "" {
		status := program.ParticipationStatus(filter.Status)
		domainFilter.Status = &status
	}
	domainFilter.MentorID = filter.MentorID
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	enrollments, total, err := s.enrollmentRepo.FindByProgram(ctx, programID, domainFilter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list enrollments")
	}

	return ToEnrollmentResponses(enrollments), total, nil
}

// ListByHousehold returns a household's enrollment history
func (s *EnrollmentService) ListByHousehold(ctx context.Context, householdID uuid.UUID) ([]*EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.FindByHousehold(ctx, householdID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list enrollments")
	}
	return ToEnrollmentResponses(enrollments), nil
}

// AssignMentor attaches a mentor to the enrollment
func (s *EnrollmentService) AssignMentor(ctx context.Context, id, mentorID uuid.UUID) (*EnrollmentResponse, error) {
	enrollment, err := s.findEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := enrollment.AssignMentor(mentorID); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update enrollment")
	}

	return ToEnrollmentResponse(enrollment), nil
}

// ActivateEnrollment marks the household as actively participating
func (s *EnrollmentService) ActivateEnrollment(ctx context.Context, id uuid.UUID) (*EnrollmentResponse, error) {
	return s.transition(ctx, id, (*program.Enrollment).Activate)
}

// GraduateHousehold completes the household's participation
func (s *EnrollmentService) GraduateHousehold(ctx context.Context, id uuid.UUID) (*EnrollmentResponse, error) {
	return s.transition(ctx, id, (*program.Enrollment).Graduate)
}

// DropOutHousehold withdraws the household with a reason
func (s *EnrollmentService) DropOutHousehold(ctx context.Context, id uuid.UUID, req DropOutRequest) (*EnrollmentResponse, error) {
	return s.transition(ctx, id, func(e *program.Enrollment) error {
		return e.DropOut(req.Reason)
	})
}

// GetMilestones returns the enrollment's graduation milestone track
func (s *EnrollmentService) GetMilestones(ctx context.Context, enrollmentID uuid.UUID) ([]*MilestoneResponse, error) {
	if _, err := s.findEnrollment(ctx, enrollmentID); err != nil {
		return nil, err
	}

	milestones, err := s.enrollmentRepo.FindMilestones(ctx, enrollmentID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load milestones")
	}

	return ToMilestoneResponses(milestones), nil
}

// StartMilestone moves a milestone into progress
func (s *EnrollmentService) StartMilestone(ctx context.Context, enrollmentID uuid.UUID, key string) (*MilestoneResponse, error) {
	milestone, err := s.findMilestone(ctx, enrollmentID, key)
	if err != nil {
		return nil, err
	}

	if err := milestone.Start(); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.UpdateMilestone(ctx, milestone); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update milestone")
	}

	return ToMilestoneResponse(milestone), nil
}

// CompleteMilestone marks a milestone done
func (s *EnrollmentService) CompleteMilestone(ctx context.Context, enrollmentID uuid.UUID, key string, req CompleteMilestoneRequest) (*MilestoneResponse, error) {
	milestone, err := s.findMilestone(ctx, enrollmentID, key)
	if err != nil {
		return nil, err
	}

	if err := milestone.Complete(req.CompletedBy, req.Notes); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.UpdateMilestone(ctx, milestone); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update milestone")
	}

	s.logger.Info("milestone completed",
		zap.String("enrollment_id", enrollmentID.String()),
		zap.String("milestone", key))

	return ToMilestoneResponse(milestone), nil
}

// SkipMilestone excludes a milestone from the track
func (s *EnrollmentService) SkipMilestone(ctx context.Context, enrollmentID uuid.UUID, key, notes string) (*MilestoneResponse, error) {
	milestone, err := s.findMilestone(ctx, enrollmentID, key)
	if err != nil {
		return nil, err
	}

	if err := milestone.Skip(notes); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.UpdateMilestone(ctx, milestone); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update milestone")
	}

	return ToMilestoneResponse(milestone), nil
}

func (s *EnrollmentService) transition(ctx context.Context, id uuid.UUID, fn func(*program.Enrollment) error) (*EnrollmentResponse, error) {
	enrollment, err := s.findEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(enrollment); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		s.logger.Error("failed to update enrollment",
			zap.String("enrollment_id", enrollment.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update enrollment")
	}

	s.publishEvents(ctx, enrollment.GetDomainEvents())
	enrollment.ClearDomainEvents()

	return ToEnrollmentResponse(enrollment), nil
}

func (s *EnrollmentService) findEnrollment(ctx context.Context, id uuid.UUID) (*program.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Enrollment not found")
		}
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) findMilestone(ctx context.Context, enrollmentID uuid.UUID, key string) (*program.Milestone, error) {
	milestoneKey := program.MilestoneKey(key)
	if !milestoneKey.IsValid() {
		return nil, shared.NewDomainError("INVALID_MILESTONE", "Unknown milestone: "+key)
	}

	milestone, err := s.enrollmentRepo.FindMilestone(ctx, enrollmentID, milestoneKey)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Milestone not found")
		}
		return nil, err
	}
	return milestone, nil
}

func (s *EnrollmentService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish enrollment events", zap.Error(err))
	}
}
