package grant

import (
	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
)

// ApplicantType identifies who is applying for a grant.
type ApplicantType string

const (
	ApplicantHousehold     ApplicantType = "household"
	ApplicantBusinessGroup ApplicantType = "business_group"
	ApplicantSavingsGroup  ApplicantType = "savings_group"
)

// ApplicantRef points at exactly one of a household, a business group or a
// savings group. A grant with zero or multiple applicants is invalid.
type ApplicantRef struct {
	HouseholdID     *uuid.UUID `gorm:"type:uuid;index"`
	BusinessGroupID *uuid.UUID `gorm:"type:uuid;index"`
	SavingsGroupID  *uuid.UUID `gorm:"type:uuid;index"`
}

func HouseholdApplicant(id uuid.UUID) ApplicantRef {
	return ApplicantRef{HouseholdID: &id}
}

func BusinessGroupApplicant(id uuid.UUID) ApplicantRef {
	return ApplicantRef{BusinessGroupID: &id}
}

func SavingsGroupApplicant(id uuid.UUID) ApplicantRef {
	return ApplicantRef{SavingsGroupID: &id}
}

func (a ApplicantRef) Validate() error {
	n := 0
	if a.HouseholdID != nil {
		n++
	}
	if a.BusinessGroupID != nil {
		n++
	}
	if a.SavingsGroupID != nil {
		n++
	}
	if n == 0 {
		return shared.NewDomainError("MISSING_APPLICANT", "must specify a household, business group or savings group")
	}
	if n > 1 {
		return shared.NewDomainError("AMBIGUOUS_APPLICANT", "cannot specify multiple applicant types")
	}
	return nil
}

func (a ApplicantRef) Type() ApplicantType {
	switch {
	case a.HouseholdID != nil:
		return ApplicantHousehold
	case a.BusinessGroupID != nil:
		return ApplicantBusinessGroup
	default:
		return ApplicantSavingsGroup
	}
}

// ID returns the identifier of whichever applicant is set.
func (a ApplicantRef) ID() uuid.UUID {
	switch {
	case a.HouseholdID != nil:
		return *a.HouseholdID
	case a.BusinessGroupID != nil:
		return *a.BusinessGroupID
	case a.SavingsGroupID != nil:
		return *a.SavingsGroupID
	}
	return uuid.Nil
}
