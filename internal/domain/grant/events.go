package grant

import (
	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
)

const (
	AggregateTypeSBGrant     = "SBGrant"
	AggregateTypePRGrant     = "PRGrant"
	AggregateTypeApplication = "GrantApplication"

	EventTypeSBGrantApplied       = "grant.sb_grant_applied"
	EventTypeGrantApproved        = "grant.approved"
	EventTypeGrantDisbursed       = "grant.disbursed"
	EventTypePRGrantEligible      = "grant.pr_grant_eligible"
	EventTypeApplicationSubmitted = "grant.application_submitted"
)

type SBGrantAppliedEvent struct {
	shared.BaseDomainEvent
	ProgramID     uuid.UUID `json:"program_id"`
	ApplicantType string    `json:"applicant_type"`
	ApplicantID   uuid.UUID `json:"applicant_id"`
}

func NewSBGrantAppliedEvent(grantID, programID uuid.UUID, applicantType string, applicantID uuid.UUID) *SBGrantAppliedEvent {
	return &SBGrantAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSBGrantApplied, AggregateTypeSBGrant, grantID),
		ProgramID:       programID,
		ApplicantType:   applicantType,
		ApplicantID:     applicantID,
	}
}

type GrantApprovedEvent struct {
	shared.BaseDomainEvent
	Kind   GrantKind `json:"kind"`
	Amount string    `json:"amount"`
}

func NewGrantApprovedEvent(grantID uuid.UUID, kind GrantKind, amount string) *GrantApprovedEvent {
	aggType := AggregateTypeSBGrant
	if kind == GrantKindPR {
		aggType = AggregateTypePRGrant
	}
	return &GrantApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGrantApproved, aggType, grantID),
		Kind:            kind,
		Amount:          amount,
	}
}

type GrantDisbursedEvent struct {
	shared.BaseDomainEvent
	Kind           GrantKind `json:"kind"`
	Amount         string    `json:"amount"`
	FullyDisbursed bool      `json:"fully_disbursed"`
}

func NewGrantDisbursedEvent(grantID uuid.UUID, kind GrantKind, amount string, fully bool) *GrantDisbursedEvent {
	aggType := AggregateTypeSBGrant
	if kind == GrantKindPR {
		aggType = AggregateTypePRGrant
	}
	return &GrantDisbursedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGrantDisbursed, aggType, grantID),
		Kind:            kind,
		Amount:          amount,
		FullyDisbursed:  fully,
	}
}

type PRGrantEligibleEvent struct {
	shared.BaseDomainEvent
	SBGrantID uuid.UUID `json:"sb_grant_id"`
}

func NewPRGrantEligibleEvent(grantID, sbGrantID uuid.UUID) *PRGrantEligibleEvent {
	return &PRGrantEligibleEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePRGrantEligible, AggregateTypePRGrant, grantID),
		SBGrantID:       sbGrantID,
	}
}

type ApplicationSubmittedEvent struct {
	shared.BaseDomainEvent
	GrantType       string `json:"grant_type"`
	RequestedAmount string `json:"requested_amount"`
}

func NewApplicationSubmittedEvent(applicationID uuid.UUID, grantType, requestedAmount string) *ApplicationSubmittedEvent {
	return &ApplicationSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeApplicationSubmitted, AggregateTypeApplication, applicationID),
		GrantType:       grantType,
		RequestedAmount: requestedAmount,
	}
}
