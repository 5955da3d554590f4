package grant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/grant"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// PRService manages performance recognition grants, the follow-on awards
// gated on a fully disbursed and accounted-for seed business grant.
type PRService struct {
	prRepo           grant.PRGrantRepository
	sbRepo           grant.SBGrantRepository
	disbursementRepo grant.DisbursementRepository
	eventBus         shared.EventPublisher
	logger           *zap.Logger
}

// NewPRService creates a new performance recognition grant service.
func NewPRService(
	prRepo grant.PRGrantRepository,
	sbRepo grant.SBGrantRepository,
	disbursementRepo grant.DisbursementRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *PRService {
	return &PRService{
		prRepo:           prRepo,
		sbRepo:           sbRepo,
		disbursementRepo: disbursementRepo,
		eventBus:         eventBus,
		logger:           logger,
	}
}

// RequestGrant opens a performance recognition grant against a seed
// business grant. The seed grant must be fully disbursed and carry a
// utilization report, and each seed grant backs at most one follow-on.
func (s *PRService) RequestGrant(ctx context.Context, req RequestPRGrantRequest) (*PRGrantResponse, error) {
	sb, err := s.sbRepo.FindByID(ctx, req.SBGrantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Seed business grant not found")
		}
		return nil, err
	}

	existing, err := s.prRepo.FindBySBGrant(ctx, req.SBGrantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check existing grants")
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A performance recognition grant already exists for this seed grant")
	}

	g, err := grant.NewPRGrant(sb.ProgramID, sb.Applicant, sb.ID, req.RequestedBy)
	if err != nil {
		return nil, err
	}
	if err := g.MarkEligible(sb); err != nil {
		return nil, err
	}
	if err := g.Apply(); err != nil {
		return nil, err
	}

	if err := s.prRepo.Create(ctx, g); err != nil {
		s.logger.Error("failed to create performance recognition grant",
			zap.String("sb_grant_id", sb.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create grant")
	}

	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	s.logger.Info("performance recognition grant requested",
		zap.String("grant_id", g.ID.String()),
		zap.String("sb_grant_id", sb.ID.String()))

	return ToPRGrantResponse(g), nil
}

// GetGrant retrieves a performance recognition grant by ID.
func (s *PRService) GetGrant(ctx context.Context, id uuid.UUID) (*PRGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPRGrantResponse(g), nil
}

// ListByProgram lists a program's performance recognition grants.
func (s *PRService) ListByProgram(ctx context.Context, programID uuid.UUID, filter GrantListFilter) ([]*PRGrantResponse, int64, error) {
	domainFilter := grant.NewGrantFilter()
	domainFilter.Status = filter.Status
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	grants, total, err := s.prRepo.FindByProgram(ctx, programID, domainFilter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list grants")
	}
	return ToPRGrantResponses(grants), total, nil
}

// StartReview moves a pending grant under review.
func (s *PRService) StartReview(ctx context.Context, id uuid.UUID) (*PRGrantResponse, error) {
	return s.transition(ctx, id, (*grant.PRGrant).StartReview)
}

// Assess grades the business over the seed grant period and records what
// it achieved with the capital.
func (s *PRService) Assess(ctx context.Context, id uuid.UUID, req AssessPerformanceRequest) (*PRGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := g.AssessPerformance(req.Score, req.Assessment, req.AssessedBy); err != nil {
		return nil, err
	}
	if req.RevenueGenerated != nil || req.SavingsAccumulated != nil || req.JobsCreated > 0 {
		revenue := valueobject.ZeroKES()
		if req.RevenueGenerated != nil {
			revenue = valueobject.NewMoneyKES(*req.RevenueGenerated)
		}
		savings := valueobject.ZeroKES()
		if req.SavingsAccumulated != nil {
			savings = valueobject.NewMoneyKES(*req.SavingsAccumulated)
		}
		if err := g.RecordBusinessMetrics(revenue, savings, req.JobsCreated); err != nil {
			return nil, err
		}
	}

	if err := s.prRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	return ToPRGrantResponse(g), nil
}

// Approve approves the follow-on award.
func (s *PRService) Approve(ctx context.Context, id, approverID uuid.UUID) (*PRGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.Approve(approverID); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Grant cannot be approved in its current state")
		}
		return nil, err
	}
	if err := s.prRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()
	return ToPRGrantResponse(g), nil
}

// Reject declines the follow-on award.
func (s *PRService) Reject(ctx context.Context, id uuid.UUID) (*PRGrantResponse, error) {
	return s.transition(ctx, id, (*grant.PRGrant).Reject)
}

// Cancel withdraws the grant before disbursement.
func (s *PRService) Cancel(ctx context.Context, id uuid.UUID) (*PRGrantResponse, error) {
	return s.transition(ctx, id, (*grant.PRGrant).Cancel)
}

// Disburse pays out the full award in one transaction and records it.
func (s *PRService) Disburse(ctx context.Context, id uuid.UUID, req DisburseGrantRequest) (*PRGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := g.Disburse(req.ProcessedBy); err != nil {
		return nil, err
	}

	date := req.DisbursementDate
	if date.IsZero() {
		date = time.Now()
	}
	d, err := grant.NewPRDisbursement(g.ID, g.Amount, date,
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
	if err := s.prRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	s.publishEvents(ctx, g.GetDomainEvents())
	g.ClearDomainEvents()

	s.logger.Info("performance recognition grant disbursed",
		zap.String("grant_id", g.ID.String()),
		zap.String("amount", g.Amount.String()))

	return ToPRGrantResponse(g), nil
}

// ListDisbursements lists a grant's payout transactions.
func (s *PRService) ListDisbursements(ctx context.Context, id uuid.UUID) ([]*DisbursementResponse, error) {
	disbursements, err := s.disbursementRepo.FindByPRGrant(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list disbursements")
	}
	return ToDisbursementResponses(disbursements), nil
}

func (s *PRService) transition(ctx context.Context, id uuid.UUID, fn func(*grant.PRGrant) error) (*PRGrantResponse, error) {
	g, err := s.findGrant(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Grant cannot change state from "+string(g.Status))
		}
		return nil, err
	}
	if err := s.prRepo.Update(ctx, g); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update grant")
	}
	return ToPRGrantResponse(g), nil
}

func (s *PRService) findGrant(ctx context.Context, id uuid.UUID) (*grant.PRGrant, error) {
	g, err := s.prRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Grant not found")
		}
		return nil, err
	}
	return g, nil
}

func (s *PRService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
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
