package grant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upg/backend/internal/domain/grant"
	"github.com/upg/backend/internal/domain/program"
	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// ApplicationService manages the general grant application pipeline:
// drafting, submission, review, approval and payout.
type ApplicationService struct {
	appRepo     grant.ApplicationRepository
	programRepo program.ProgramRepository
	eventBus    shared.EventPublisher
	logger      *zap.Logger
}

// NewApplicationService creates a new grant application service.
func NewApplicationService(
	appRepo grant.ApplicationRepository,
	programRepo program.ProgramRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		programRepo: programRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// CreateApplication drafts a new grant application.
func (s *ApplicationService) CreateApplication(ctx context.Context, req CreateApplicationRequest) (*ApplicationResponse, error) {
	a, err := grant.NewApplication(req.Applicant.toRef(), req.SubmittedBy,
		grant.ApplicationGrantType(req.GrantType),
		valueobject.NewMoneyKES(req.RequestedAmount), req.Title, req.Purpose)
	if err != nil {
		return nil, err
	}

	if req.ProgramID != nil {
		if _, err := s.programRepo.FindByID(ctx, *req.ProgramID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Program not found")
			}
			return nil, err
		}
		a.AttachProgram(*req.ProgramID)
	}
	if req.BusinessPlan != "" || req.ExpectedOutcomes != "" {
		a.SetNarrative(req.BusinessPlan, req.ExpectedOutcomes)
	}
	if len(req.BudgetBreakdown) > 0 {
		a.SetBudgetBreakdown(req.BudgetBreakdown)
	}
	for _, doc := range req.SupportingDocs {
		if err := a.AttachDocument(doc); err != nil {
			return nil, err
		}
	}

	if err := s.appRepo.Create(ctx, a); err != nil {
		s.logger.Error("failed to create grant application", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create application")
	}

	s.logger.Info("grant application drafted",
		zap.String("application_id", a.ID.String()),
		zap.String("grant_type", req.GrantType))

	return ToApplicationResponse(a), nil
}

// GetApplication retrieves an application by ID.
func (s *ApplicationService) GetApplication(ctx context.Context, id uuid.UUID) (*ApplicationResponse, error) {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToApplicationResponse(a), nil
}

// ListApplications lists applications with optional status, type and
// program filters.
func (s *ApplicationService) ListApplications(ctx context.Context, filter ApplicationListFilter) ([]*ApplicationResponse, int64, error) {
	domainFilter := grant.NewApplicationFilter()
	if filter.Status != "" {
		status := grant.ApplicationStatus(filter.Status)
		domainFilter.Status = &status
	}
	if filter.GrantType != "" {
		grantType := grant.ApplicationGrantType(filter.GrantType)
		domainFilter.GrantType = &grantType
	}
	domainFilter.ProgramID = filter.ProgramID
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	applications, total, err := s.appRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list applications")
	}
	return ToApplicationResponses(applications), total, nil
}

// ListByApplicant lists one applicant's applications.
func (s *ApplicationService) ListByApplicant(ctx context.Context, applicant ApplicantInput) ([]*ApplicationResponse, error) {
	ref := applicant.toRef()
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	applications, err := s.appRepo.FindByApplicant(ctx, ref)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list applications")
	}
	return ToApplicationResponses(applications), nil
}

// SubmitApplication moves a draft into the review queue.
func (s *ApplicationService) SubmitApplication(ctx context.Context, id uuid.UUID) (*ApplicationResponse, error) {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Submit(); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Only draft applications can be submitted")
		}
		return nil, err
	}
	if err := s.appRepo.Update(ctx, a); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}
	s.publishEvents(ctx, a.GetDomainEvents())
	a.ClearDomainEvents()
	return ToApplicationResponse(a), nil
}

// ReviewApplication records a reviewer's scored assessment.
func (s *ApplicationService) ReviewApplication(ctx context.Context, id uuid.UUID, req ReviewApplicationRequest) (*ApplicationResponse, error) {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Review(req.ReviewerID, req.Score, req.Notes); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Application is not awaiting review")
		}
		return nil, err
	}
	if err := s.appRepo.Update(ctx, a); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}
	return ToApplicationResponse(a), nil
}

// ApproveApplication approves an application, optionally for less than
// the requested amount.
func (s *ApplicationService) ApproveApplication(ctx context.Context, id uuid.UUID, req ApproveApplicationRequest) (*ApplicationResponse, error) {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	var approvedAmount *valueobject.Money
	if req.ApprovedAmount != nil {
		amount := valueobject.NewMoneyKES(*req.ApprovedAmount)
		approvedAmount = &amount
	}
	if err := a.Approve(req.ApproverID, approvedAmount, req.Notes); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Application cannot be approved in its current state")
		}
		return nil, err
	}

	if err := s.appRepo.Update(ctx, a); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}

	s.logger.Info("grant application approved",
		zap.String("application_id", a.ID.String()),
		zap.String("amount", a.EffectiveAmount().String()))

	return ToApplicationResponse(a), nil
}

// RejectApplication declines the application with notes.
func (s *ApplicationService) RejectApplication(ctx context.Context, id uuid.UUID, req RejectGrantRequest) (*ApplicationResponse, error) {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Reject(req.ReviewerID, req.Notes); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Application cannot be rejected in its current state")
		}
		return nil, err
	}
	if err := s.appRepo.Update(ctx, a); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}
	return ToApplicationResponse(a), nil
}

// CancelApplication withdraws an application before disbursement.
func (s *ApplicationService) CancelApplication(ctx context.Context, id uuid.UUID) (*ApplicationResponse, error) {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Cancel(); err != nil {
		if errors.Is(err, shared.ErrInvalidState) {
			return nil, shared.NewDomainError("INVALID_STATE", "Application cannot be cancelled in its current state")
		}
		return nil, err
	}
	if err := s.appRepo.Update(ctx, a); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}
	return ToApplicationResponse(a), nil
}

// DisburseApplication books a payout against an approved application.
func (s *ApplicationService) DisburseApplication(ctx context.Context, id uuid.UUID, req DisburseGrantRequest) (*ApplicationResponse, error) {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	amount := valueobject.NewMoneyKES(req.Amount)
	if err := a.Disburse(amount, grant.DisbursementMethod(req.Method), req.Reference, req.ProcessedBy); err != nil {
		return nil, err
	}
	if err := s.appRepo.Update(ctx, a); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}

	s.logger.Info("grant application disbursement recorded",
		zap.String("application_id", a.ID.String()),
		zap.String("amount", amount.String()))

	return ToApplicationResponse(a), nil
}

// RecordUtilization closes out a disbursed application with the
// spending report.
func (s *ApplicationService) RecordUtilization(ctx context.Context, id uuid.UUID, req ApplicationUtilizationRequest) (*ApplicationResponse, error) {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.RecordUtilization(req.Report, req.FinalOutcomes); err != nil {
		return nil, err
	}
	if err := s.appRepo.Update(ctx, a); err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update application")
	}
	return ToApplicationResponse(a), nil
}

// DeleteApplication removes a draft application.
func (s *ApplicationService) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	a, err := s.findApplication(ctx, id)
	if err != nil {
		return err
	}
	if a.Status != grant.AppStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft applications can be deleted")
	}
	if err := s.appRepo.Delete(ctx, id); err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete application")
	}
	return nil
}

func (s *ApplicationService) findApplication(ctx context.Context, id uuid.UUID) (*grant.Application, error) {
	a, err := s.appRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Application not found")
		}
		return nil, err
	}
	return a, nil
}

func (s *ApplicationService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
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
