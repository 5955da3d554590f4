package household

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/geography"
	"github.com/upg/backend/internal/domain/household"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
)

// EligibilityService runs eligibility scoring and program qualification
// assessments over registered households
type EligibilityService struct {
	householdRepo  household.HouseholdRepository
	villageRepo    geography.VillageRepository
	programRepo    program.ProgramRepository
	enrollmentRepo program.EnrollmentRepository
	eventBus       shared.EventPublisher
	logger         *zap.Logger
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(
	householdRepo household.HouseholdRepository,
	villageRepo geography.VillageRepository,
	programRepo program.ProgramRepository,
	enrollmentRepo program.EnrollmentRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *EligibilityService {
	return &EligibilityService{
		householdRepo:  householdRepo,
		villageRepo:    villageRepo,
		programRepo:    programRepo,
		enrollmentRepo: enrollmentRepo,
		eventBus:       eventBus,
		logger:         logger,
	}
}

// AssessEligibility computes the weighted eligibility score for a household,
// drawing the PPI score and village context from the stored records
func (s *EligibilityService) AssessEligibility(ctx context.Context, householdID uuid.UUID) (*household.EligibilityResult, error) {
	h, scorer, err := s.buildScorer(ctx, householdID)
	if err != nil {
		return nil, err
	}

	result := scorer.Calculate()

	h.AddDomainEvent(household.NewHouseholdAssessedEvent(h, result))
	s.publishEvents(ctx, h.GetDomainEvents())
	h.ClearDomainEvents()

	s.logger.Info("household assessed",
		zap.String("household_id", householdID.String()),
		zap.Float64("total_score", result.TotalScore),
		zap.String("level", string(result.Level)))

	return &result, nil
}

// QualifyHousehold runs the full qualification assessment against a program:
// the eligibility score plus the geographic, capacity, prior-participation
// and consent gates
func (s *EligibilityService) QualifyHousehold(ctx context.Context, householdID, programID uuid.UUID) (*household.QualificationReport, error) {
	h, scorer, err := s.buildScorer(ctx, householdID)
	if err != nil {
		return nil, err
	}

	p, err := s.programRepo.FindByID(ctx, programID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Program not found")
		}
		return nil, err
	}

	qualCtx := household.QualificationContext{
		VillageIsProgramArea: s.villageIsProgramArea(ctx, h.VillageID),
		ProgramHasCapacity:   s.programHasCapacity(ctx, p),
		NoPriorParticipation: s.noPriorParticipation(ctx, householdID),
	}

	report := household.NewQualificationTool(scorer, qualCtx).Run()

	s.logger.Info("household qualification assessed",
		zap.String("household_id", householdID.String()),
		zap.String("program_id", programID.String()),
		zap.String("status", string(report.Decision.Status)))

	return &report, nil
}

// BatchAssess scores every household in a village
func (s *EligibilityService) BatchAssess(ctx context.Context, villageID uuid.UUID) ([]household.BatchAssessmentEntry, error) {
	households, err := s.householdRepo.FindByVillage(ctx, villageID)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load village households")
	}

	distance := 0
	if village, err := s.villageRepo.FindByID(ctx, villageID); err == nil {
		distance = village.DistanceToMarket
	}

	inputs := make([]household.BatchInput, 0, len(households))
	for _, h := range households {
		if err := s.householdRepo.LoadMembers(ctx, h); err != nil {
			s.logger.Warn("failed to load members for batch assessment",
				zap.String("household_id", h.ID.String()), zap.Error(err))
		}

		input := household.BatchInput{Household: h, DistanceToMarket: distance}
		if latest, err := s.householdRepo.FindLatestPPIAssessment(ctx, h.ID); err == nil && latest != nil {
			input.LatestPPIScore = &latest.Score
		}
		inputs = append(inputs, input)
	}

	return household.BatchEligibilityAssessment(inputs), nil
}

func (s *EligibilityService) buildScorer(ctx context.Context, householdID uuid.UUID) (*household.Household, *household.EligibilityScorer, error) {
	h, err := s.householdRepo.FindByID(ctx, householdID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, shared.NewDomainError("NOT_FOUND", "Household not found")
		}
		return nil, nil, err
	}

	if err := s.householdRepo.LoadMembers(ctx, h); err != nil {
		return nil, nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load household members")
	}

	scorer := household.NewEligibilityScorer(h)

	if latest, err := s.householdRepo.FindLatestPPIAssessment(ctx, h.ID); err == nil && latest != nil {
		scorer = scorer.WithPPIScore(latest.Score)
	}

	if village, err := s.villageRepo.FindByID(ctx, h.VillageID); err == nil {
		scorer = scorer.WithDistanceToMarket(village.DistanceToMarket)
	}

	return h, scorer, nil
}

func (s *EligibilityService) villageIsProgramArea(ctx context.Context, villageID uuid.UUID) bool {
	village, err := s.villageRepo.FindByID(ctx, villageID)
	if err != nil {
		return false
	}
	return village.IsProgramArea
}

func (s *EligibilityService) programHasCapacity(ctx context.Context, p *program.Program) bool {
	if p.TargetBeneficiaries <= 0 {
		return true
	}

	enrolled, err := s.enrollmentRepo.CountByProgramAndStatus(ctx, p.ID, program.ParticipationEnrolled)
	if err != nil {
		return false
	}
	active, err := s.enrollmentRepo.CountByProgramAndStatus(ctx, p.ID, program.ParticipationActive)
	if err != nil {
		return false
	}

	return enrolled+active < int64(p.TargetBeneficiaries)
}

func (s *EligibilityService) noPriorParticipation(ctx context.Context, householdID uuid.UUID) bool {
	ongoing, err := s.enrollmentRepo.FindOngoingByHousehold(ctx, householdID)
	if err != nil {
		return false
	}
	return ongoing == nil
}

func (s *EligibilityService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish household events", zap.Error(err))
	}
}
