package grant

import (
	"context"

	"github.com/google/uuid"
)

// SBGrantRepository persists seed business grants
type SBGrantRepository interface {
	Create(ctx context.Context, grant *SBGrant) error
	Update(ctx context.Context, grant *SBGrant) error
	FindByID(ctx context.Context, id uuid.UUID) (*SBGrant, error)
	FindByProgram(ctx context.Context, programID uuid.UUID, filter GrantFilter) ([]*SBGrant, int64, error)
	FindByBusinessGroup(ctx context.Context, businessGroupID uuid.UUID) (*SBGrant, error)
	FindByApplicant(ctx context.Context, applicant ApplicantRef) ([]*SBGrant, error)
	CountByStatus(ctx context.Context, status GrantStatus) (int64, error)

	// TotalDisbursed sums disbursed amounts across all seed grants,
	// returned as a decimal string in KES
	TotalDisbursed(ctx context.Context) (string, error)
}

// PRGrantRepository persists performance recognition grants
type PRGrantRepository interface {
	Create(ctx context.Context, grant *PRGrant) error
	Update(ctx context.Context, grant *PRGrant) error
	FindByID(ctx context.Context, id uuid.UUID) (*PRGrant, error)
	FindBySBGrant(ctx context.Context, sbGrantID uuid.UUID) (*PRGrant, error)
	FindByProgram(ctx context.Context, programID uuid.UUID, filter GrantFilter) ([]*PRGrant, int64, error)
	CountByStatus(ctx context.Context, status PRGrantStatus) (int64, error)
}

// DisbursementRepository persists payout transactions
type DisbursementRepository interface {
	Create(ctx context.Context, disbursement *Disbursement) error
	FindBySBGrant(ctx context.Context, sbGrantID uuid.UUID) ([]*Disbursement, error)
	FindByPRGrant(ctx context.Context, prGrantID uuid.UUID) ([]*Disbursement, error)
}

// ApplicationRepository persists general grant applications
type ApplicationRepository interface {
	Create(ctx context.Context, application *Application) error
	Update(ctx context.Context, application *Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Application, error)
	FindAll(ctx context.Context, filter ApplicationFilter) ([]*Application, int64, error)
	FindByApplicant(ctx context.Context, applicant ApplicantRef) ([]*Application, error)
	CountByStatus(ctx context.Context, status ApplicationStatus) (int64, error)
}

// GrantFilter contains filter options for querying grants
type GrantFilter struct {
	Status   string
	Page     int
	PageSize int
}

// NewGrantFilter creates a filter with default values
func NewGrantFilter() GrantFilter {
	return GrantFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f GrantFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f GrantFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// ApplicationFilter contains filter options for querying applications
type ApplicationFilter struct {
	Status    *ApplicationStatus
	GrantType *ApplicationGrantType
	ProgramID *uuid.UUID
	Page      int
	PageSize  int
}

// NewApplicationFilter creates a filter with default values
func NewApplicationFilter() ApplicationFilter {
	return ApplicationFilter{Page: 1, PageSize: 20}
}

// Offset returns the offset for pagination
func (f ApplicationFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f ApplicationFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
