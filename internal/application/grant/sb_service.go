package grant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/grant"
	"github.com/upg/backend/internal/domain/group"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// AttendanceRates reports training attendance statistics. Satisfied by
// training.TrainingRepository.
type AttendanceRates interface {
	AttendanceRateByBusinessGroup(ctx context.Context, businessGroupID uuid.UUID) (float64, error)
}

// SBService manages seed business grants: application, award sizing,
// review, approval and disbursement.
type SBService struct {
	sbRepo           grant.SBGrantRepository
	disbursementRepo grant.DisbursementRepository
	programRepo      program.ProgramRepository
	groupRepo        group.BusinessGroupRepository
	attendance       AttendanceRates
	eventBus         shared.EventPublisher
	logger           *zap.Logger
}

// NewSBService creates a new seed business grant service. attendance may
// be nil, in which case sizing falls back to the default completion rate.
func NewSBService(
	sbRepo grant.SBGrantRepository,
	disbursementRepo grant.DisbursementRepository,
	programRepo program.ProgramRepository,
	groupRepo group.BusinessGroupRepository,
	attendance AttendanceRates,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *SBService {
	return &SBService{
		sbRepo:           sbRepo,
		disbursementRepo: disbursementRepo,
		programRepo:      programRepo,
		groupRepo:        groupRepo,
		attendance:       attendance,
		eventBus:         eventBus,
		logger:           logger,
	}
}

// Apply opens a seed business grant application and sizes the award from
// the applicant's profile. Seed capital is only available under
// graduation programs, and a business group can hold at most one.
func (s *SBService) Apply(ctx context.Context, req ApplySBGrantRequest) (*SBGrantResponse, error) {
	p, err := s.programRepo.FindByID(ctx, req.ProgramID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Program not found")
		}
		return nil, err
	}
	if p.Type != program.ProgramTypeGraduation {
		return nil, shared.NewDomainError("NOT_UPG_PROGRAM", "Seed business grants are only available under graduation programs")
	}

	applicant := req.Applicant.toRef()
	if applicant.BusinessGroupID != nil {
		existing, err := s.sbRepo.FindByBusinessGroup(ctx, *applicant.BusinessGroupID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check existing grants")
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "This business group already holds a seed business grant")
		}
	}

	g, err := grant.NewSBGrant(req.ProgramID, applicant, req.BusinessPlan, req.SubmittedBy, req.SubmittedBy)
	if err != nil {
		return nil, err
	}

	if req.ProjectedIncome != nil && req.StartupCosts != nil && req.MonthlyExpenses != nil {
		err := g.SetFinancials(
			valueobject.NewMoneyKES(*req.ProjectedIncome),
			valueobject.NewMoneyKES(*req.StartupCosts),
			valueobject.NewMoneyKES(*req.MonthlyExpenses),
		)
		if err != nil {
			return nil, err
		}
	}

	if applicant.BusinessGroupID != nil {
		input, err := s.profileBusinessGroup(ctx, *applicant.BusinessGroupID)
		if err != nil {
			return nil, err
		}
		g.Calculate(input)
	}

	if err := s.sbRepo.Create(ctx, g); err != nil {
		s.logger.Error("failed to create seed business grant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create grant")
	}

	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	s.logger.Info("seed business grant applied",
		zap.String("grant_id", g.ID.String()),
		zap.String("applicant_type", string(applicant.Type())),
		zap.String("amount", g.EffectiveAmount().String()))

	return ToSBGrantResponse(g), nil
}

// GetGrant retrieves a seed business grant by ID.
func (s *SBService) GetGrant(ctx context.Context, id uuid.UUID) (*SBGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSBGrantResponse(g), nil
}

// ListByProgram lists a program's seed business grants.
func (s *SBService) ListByProgram(ctx context.Context, programID uuid.UUID, filter GrantListFilter) ([]*SBGrantResponse, int64, error) {
	domainFilter := grant.NewGrantFilter()
	domainFilter.Status = filter.Status
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	grants, total, err := s.sbRepo.FindByProgram(ctx, programID, domainFilter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list grants")
	}
	return ToSBGrantResponses(grants), total, nil
}

// ListByApplicant lists all seed business grants held by one applicant.
func (s *SBService) ListByApplicant(ctx context.Context, applicant ApplicantInput) ([]*SBGrantResponse, error) {
	ref := applicant.toRef()
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	grants, err := s.sbRepo.FindByApplicant(ctx, ref)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list grants")
	}
	return ToSBGrantResponses(grants), nil
}

// Recalculate re-sizes the award from the applicant's current profile.
// Only meaningful for business-group applicants.
func (s *SBService) Recalculate(ctx context.Context, id uuid.UUID) (*SBGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Applicant.BusinessGroupID == nil {
		return nil, shared.NewDomainError("NOT_CALCULABLE", "Award sizing applies to business group applicants only")
	}

	input, err := s.profileBusinessGroup(ctx, *g.Applicant.BusinessGroupID)
	if err != nil {
		return nil, err
	}
	g.Calculate(input)

	if err := s.sbRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	return ToSBGrantResponse(g), nil
}

// StartReview moves a pending grant under review.
func (s *SBService) StartReview(ctx context.Context, id, reviewerID uuid.UUID) (*SBGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.StartReview(reviewerID); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Grant is not pending review")
		}
		return nil, err
	}
	if err := s.sbRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	return ToSBGrantResponse(g), nil
}

// Approve approves the grant, optionally overriding the calculated award.
// Overrides are still clamped to the program floor and cap.
func (s *SBService) Approve(ctx context.Context, id uuid.UUID, req ApproveSBGrantRequest) (*SBGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}

	var finalAmount *valueobject.Money
	if req.FinalAmount != nil {
		amount := valueobject.NewMoneyKES(*req.FinalAmount)
		finalAmount = &amount
	}
	if err := g.Approve(req.ApproverID, finalAmount); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Grant cannot be approved in its current state")
		}
		return nil, err
	}

	if err := s.sbRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	s.logger.Info("seed business grant approved",
		zap.String("grant_id", g.ID.String()),
		zap.String("amount", g.EffectiveAmount().String()))

	return ToSBGrantResponse(g), nil
}

// Reject declines the grant with reviewer notes.
func (s *SBService) Reject(ctx context.Context, id uuid.UUID, req RejectGrantRequest) (*SBGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.Reject(req.ReviewerID, req.Notes); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Grant cannot be rejected in its current state")
		}
		return nil, err
	}
	if err := s.sbRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	return ToSBGrantResponse(g), nil
}

// Cancel withdraws the grant before disbursement.
func (s *SBService) Cancel(ctx context.Context, id uuid.UUID) (*SBGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.Cancel(); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Grant cannot be cancelled in its current state")
		}
		return nil, err
	}
	if err := s.sbRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	return ToSBGrantResponse(g), nil
}

// Disburse books a payout against an approved grant and records the
// transaction. Partial disbursement is allowed; the running total may
// never exceed the award.
func (s *SBService) Disburse(ctx context.Context, id uuid.UUID, req DisburseGrantRequest) (*SBGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyKES(req.Amount)
	if err := g.RecordDisbursement(amount); err != nil {
		return nil, err
	}

	date := req.DisbursementDate
	if date.IsZero() {
		date = time.Now()
	}
	d, err := grant.NewSBDisbursement(g.ID, amount, date,
		grant.DisbursementMethod(req.Method), req.RecipientName, req.ProcessedBy)
	if err != nil {
		return nil, err
	}
	d.SetReference(req.Reference)
	d.SetRecipientContact(req.RecipientContact)
	d.Notes = req.Notes

	if err := s.disbursementRepo.Create(ctx, d); err != nil {
		s.logger.Error("failed to record disbursement",
			zap.String("grant_id", g.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record disbursement")
	}
	if err := s.sbRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	s.logger.Info("seed business grant disbursement recorded",
		zap.String("grant_id", g.ID.String()),
		zap.String("amount", amount.String()),
		zap.String("disbursement_status", string(g.DisbursementStatus)))

	return ToSBGrantResponse(g), nil
}

// ListDisbursements lists a grant's payout transactions.
func (s *SBService) ListDisbursements(ctx context.Context, id uuid.UUID) ([]*DisbursementResponse, error) {
	disbursements, err := s.disbursementRepo.FindBySBGrant(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list disbursements")
	}
	return ToDisbursementResponses(disbursements), nil
}

// RecordUtilization captures how the award was spent. Required before a
// performance recognition grant can open.
func (s *SBService) RecordUtilization(ctx context.Context, id uuid.UUID, req RecordUtilizationRequest) (*SBGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.RecordUtilization(req.Report); err != nil {
		return nil, err
	}
	if err := s.sbRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	return ToSBGrantResponse(g), nil
}

// profileBusinessGroup assembles the sizing input from the group's
// roster, line of business, location and training attendance.
func (s *SBService) profileBusinessGroup(ctx context.Context, groupID uuid.UUID) (grant.CalculationInput, error) {
	bg, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return grant.CalculationInput{}, shared.NewDomainError("NOT_FOUND", "Business group not found")
		}
		return grant.CalculationInput{}, err
	}
	members, err := s.groupRepo.LoadMembers(ctx, groupID)
	if err == nil {
		bg.Members = members
	}

	input := grant.CalculationInput{
		GroupSize:    bg.ActiveMemberCount(),
		BusinessType: bg.BusinessType,
		Location:     bg.Location,
	}
	if s.attendance != nil {
		rate, err := s.attendance.AttendanceRateByBusinessGroup(ctx, groupID)
		if err != nil {
			s.logger.Warn("attendance rate unavailable, using default",
				zap.String("business_group_id", groupID.String()), zap.Error(err))
		} else {
			input.TrainingCompletionRate = rate
		}
	}
	return input, nil
}

func (s *SBService) findGrant(ctx context.Context, id uuid.UUID) (*grant.SBGrant, error) {
	g, err := s.sbRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Grant not found")
		}
		return nil, err
	}
	return g, nil
}

func (s *SBService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	for _, event := range events {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
}
