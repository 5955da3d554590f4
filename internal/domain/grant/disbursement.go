package grant

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// GrantKind distinguishes the two award programs.
type GrantKind string

const (
	GrantKindSB GrantKind = "sb_grant"
	GrantKindPR GrantKind = "pr_grant"
)

// DisbursementMethod is the payment channel used for a payout.
type DisbursementMethod string

const (
	MethodBankTransfer DisbursementMethod = "bank_transfer"
	MethodMobileMoney  DisbursementMethod = "mobile_money"
	MethodCash         DisbursementMethod = "cash"
	MethodCheck        DisbursementMethod = "check"
)

func (m DisbursementMethod) IsValid() bool {
	switch m {
	case MethodBankTransfer, MethodMobileMoney, MethodCash, MethodCheck:
		return true
	}
	return false
}

// Disbursement is a single payout transaction against a grant. It
// references exactly one of a seed business grant or a performance
// recognition grant.
type Disbursement struct {
	shared.BaseEntity

	SBGrantID *uuid.UUID `gorm:"type:uuid;index"`
	PRGrantID *uuid.UUID `gorm:"type:uuid;index"`

	Kind             GrantKind         `gorm:"type:varchar(20)"`
	Amount           valueobject.Money `gorm:"type:decimal(10,2)"`
	DisbursementDate time.Time
	Method           DisbursementMethod `gorm:"type:varchar(20)"`

	ReferenceNumber  string `gorm:"type:varchar(100)"`
	RecipientName    string `gorm:"type:varchar(100);not null"`
	RecipientContact string `gorm:"type:varchar(50)"`

	ProcessedBy uuid.UUID
	Notes       string `gorm:"type:text"`
}

// NewSBDisbursement creates a payout record for a seed business grant.
func NewSBDisbursement(sbGrantID uuid.UUID, amount valueobject.Money, date time.Time,
	method DisbursementMethod, recipientName string, processedBy uuid.UUID) (*Disbursement, error) {
	d := &Disbursement{
		BaseEntity:       shared.NewBaseEntity(),
		SBGrantID:        &sbGrantID,
		Kind:             GrantKindSB,
		Amount:           amount,
		DisbursementDate: date,
		Method:           method,
		RecipientName:    strings.TrimSpace(recipientName),
		ProcessedBy:      processedBy,
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewPRDisbursement creates a payout record for a performance recognition grant.
func NewPRDisbursement(prGrantID uuid.UUID, amount valueobject.Money, date time.Time,
	method DisbursementMethod, recipientName string, processedBy uuid.UUID) (*Disbursement, error) {
	d := &Disbursement{
		BaseEntity:       shared.NewBaseEntity(),
		PRGrantID:        &prGrantID,
		Kind:             GrantKindPR,
		Amount:           amount,
		DisbursementDate: date,
		Method:           method,
		RecipientName:    strings.TrimSpace(recipientName),
		ProcessedBy:      processedBy,
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Disbursement) validate() error {
	if d.SBGrantID == nil && d.PRGrantID == nil {
		return shared.NewDomainError("MISSING_GRANT_REF", "disbursement must reference a grant")
	}
	if d.SBGrantID != nil && d.PRGrantID != nil {
		return shared.NewDomainError("AMBIGUOUS_GRANT_REF", "disbursement cannot reference both grant kinds")
	}
	if d.Amount.IsZero() || d.Amount.IsNegative() {
		return shared.NewDomainError("INVALID_DISBURSEMENT", "disbursement amount must be positive")
	}
	if !d.Method.IsValid() {
		return shared.NewDomainError("INVALID_DISBURSEMENT_METHOD", "invalid disbursement method: "+string(d.Method))
	}
	if d.RecipientName == "" {
		return shared.NewDomainError("MISSING_RECIPIENT", "recipient name is required")
	}
	return nil
}

func (d *Disbursement) SetReference(reference string) {
	d.ReferenceNumber = strings.TrimSpace(reference)
}

func (d *Disbursement) SetRecipientContact(contact string) {
	d.RecipientContact = strings.TrimSpace(contact)
}
