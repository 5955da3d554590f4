package household

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/upg/backend/internal/domain/household"
)

// RegisterHouseholdRequest registers a new household
type RegisterHouseholdRequest struct {
	Name          string           `json:"name" binding:"required,max=100"`
	VillageID     uuid.UUID        `json:"village_id" binding:"required"`
	NationalID    string           `json:"national_id" binding:"max=20"`
	PhoneNumber   string           `json:"phone_number" binding:"omitempty,kenyan_phone,max=20"`
	MonthlyIncome *decimal.Decimal `json:"monthly_income"`
	GPSLatitude   *decimal.Decimal `json:"gps_latitude"`
	GPSLongitude  *decimal.Decimal `json:"gps_longitude"`
	ConsentGiven  bool             `json:"consent_given"`

	Head *HeadDetails `json:"head"`

	CreatedBy uuid.UUID `json:"-"`
}

// HeadDetails carries the household head's personal details
type HeadDetails struct {
	FirstName   string     `json:"first_name" binding:"max=150"`
	MiddleName  string     `json:"middle_name" binding:"max=150"`
	LastName    string     `json:"last_name" binding:"max=150"`
	Gender      string     `json:"gender" binding:"omitempty,oneof=male female"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	IDNumber    string     `json:"id_number" binding:"max=20"`
	PhoneNumber string     `json:"phone_number" binding:"omitempty,kenyan_phone,max=20"`
}

// UpdateHouseholdRequest modifies household attributes
type UpdateHouseholdRequest struct {
	MonthlyIncome  *decimal.Decimal `json:"monthly_income"`
	Assets         map[string]bool  `json:"assets"`
	HasElectricity *bool            `json:"has_electricity"`
	HasCleanWater  *bool            `json:"has_clean_water"`
	GPSLatitude    *decimal.Decimal `json:"gps_latitude"`
	GPSLongitude   *decimal.Decimal `json:"gps_longitude"`
	ConsentGiven   *bool            `json:"consent_given"`
	Head           *HeadDetails     `json:"head"`
}

// AddMemberRequest adds a member to the household roster
type AddMemberRequest struct {
	FirstName      string `json:"first_name" binding:"required,max=150"`
	LastName       string `json:"last_name" binding:"required,max=150"`
	Gender         string `json:"gender" binding:"required,oneof=male female"`
	Age            int    `json:"age" binding:"min=0,max=130"`
	Relationship   string `json:"relationship" binding:"required"`
	EducationLevel string `json:"education_level"`
}

// RecordPPIRequest records a PPI assessment
type RecordPPIRequest struct {
	Name           string    `json:"name" binding:"max=100"`
	Score          int       `json:"score" binding:"min=0,max=100"`
	AssessmentDate time.Time `json:"assessment_date"`
}

// HouseholdListFilter contains filtering options for listing households
type HouseholdListFilter struct {
	Search     string     `form:"search"`
	VillageID  *uuid.UUID `form:"village_id"`
	HasConsent *bool      `form:"has_consent"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}

// MemberResponse represents a household member in API responses
type MemberResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	Gender         string    `json:"gender"`
	Age            int       `json:"age"`
	Relationship   string    `json:"relationship"`
	EducationLevel string    `json:"education_level"`
	IsParticipant  bool      `json:"is_participant"`
}

// HouseholdResponse represents a household in API responses
type HouseholdResponse struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	VillageID      uuid.UUID        `json:"village_id"`
	NationalID     string           `json:"national_id,omitempty"`
	PhoneNumber    string           `json:"phone_number,omitempty"`
	HeadFullName   string           `json:"head_full_name,omitempty"`
	MonthlyIncome  *decimal.Decimal `json:"monthly_income,omitempty"`
	Assets         map[string]bool  `json:"assets,omitempty"`
	HasElectricity bool             `json:"has_electricity"`
	HasCleanWater  bool             `json:"has_clean_water"`
	ConsentGiven   bool             `json:"consent_given"`
	TotalMembers   int              `json:"total_members"`
	Members        []MemberResponse `json:"members,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// PPIAssessmentResponse represents a PPI record in API responses
type PPIAssessmentResponse struct {
	ID             uuid.UUID `json:"id"`
	HouseholdID    uuid.UUID `json:"household_id"`
	Name           string    `json:"name"`
	Score          int       `json:"score"`
	AssessmentDate time.Time `json:"assessment_date"`
}

// ToMemberResponse maps a domain member to an API response
func ToMemberResponse(m *household.HouseholdMember) MemberResponse {
	return MemberResponse{
		ID:             m.ID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		FullName:       m.FullName(),
		Gender:         string(m.Gender),
		Age:            m.Age,
		Relationship:   string(m.Relationship),
		EducationLevel: string(m.EducationLevel),
		IsParticipant:  m.ProgramParticipant,
	}
}

// ToHouseholdResponse maps a domain household to an API response
func ToHouseholdResponse(h *household.Household) *HouseholdResponse {
	members := make([]MemberResponse, len(h.Members))
	for i := range h.Members {
		members[i] = ToMemberResponse(&h.Members[i])
	}

	return &HouseholdResponse{
		ID:             h.ID,
		Name:           h.Name,
		VillageID:      h.VillageID,
		NationalID:     h.NationalID,
		PhoneNumber:    h.PhoneNumber,
		HeadFullName:   h.HeadFullName(),
		MonthlyIncome:  h.MonthlyIncome,
		Assets:         h.Assets,
		HasElectricity: h.HasElectricity,
		HasCleanWater:  h.HasCleanWater,
		ConsentGiven:   h.ConsentGiven,
		TotalMembers:   h.TotalMembers(),
		Members:        members,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

// ToHouseholdResponses maps a slice of domain households
func ToHouseholdResponses(households []*household.Household) []*HouseholdResponse {
	responses := make([]*HouseholdResponse, len(households))
	for i, h := range households {
		responses[i] = ToHouseholdResponse(h)
	}
	return responses
}

// ToPPIAssessmentResponse maps a domain PPI record to an API response
func ToPPIAssessmentResponse(a *household.PPIAssessment) *PPIAssessmentResponse {
	return &PPIAssessmentResponse{
		ID:             a.ID,
		HouseholdID:    a.HouseholdID,
		Name:           a.Name,
		Score:          a.Score,
		AssessmentDate: a.AssessmentDate,
	}
}
