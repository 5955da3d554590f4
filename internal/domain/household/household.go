package household

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/upg/backend/internal/domain/shared"
)

// Gender of a household member
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// EducationLevel attained by a household member
type EducationLevel string

const (
	EducationNone      EducationLevel = "none"
	EducationPrimary   EducationLevel = "primary"
	EducationSecondary EducationLevel = "secondary"
	EducationTertiary  EducationLevel = "tertiary"
)

// Relationship of a member to the household head
type Relationship string

const (
	RelationshipHead    Relationship = "head"
	RelationshipSpouse  Relationship = "spouse"
	RelationshipChild   Relationship = "child"
	RelationshipParent  Relationship = "parent"
	RelationshipSibling Relationship = "sibling"
	RelationshipOther   Relationship = "other"
)

// Household captures the demographics, location, and poverty indicators of a
// registered household. It is the aggregate root for member and PPI records.
type Household struct {
	shared.AuditedAggregateRoot

	// Geographic placement
	VillageID    uuid.UUID
	SubCountyID  *uuid.UUID
	Constituency string
	District     string
	Division     string
	LocationName string
	SubLocation  string

	// Household head
	HeadFirstName   string
	HeadMiddleName  string
	HeadLastName    string
	HeadGenderValue Gender
	HeadDateOfBirth *time.Time
	HeadIDNumber    string
	HeadPhoneNumber string

	// Identifying information
	Name        string
	NationalID  string
	PhoneNumber string

	// Poverty indicators
	HasDisabledMember bool
	GPSLatitude       *decimal.Decimal
	GPSLongitude      *decimal.Decimal
	MonthlyIncome     *decimal.Decimal // KES
	Assets            map[string]bool
	HasElectricity    bool
	HasCleanWater     bool
	Location          string // Location descriptor (rural, urban, remote)
	ConsentGiven      bool

	// Members, loaded by the repository
	Members []HouseholdMember
}

// HouseholdMember is an individual living in a household
type HouseholdMember struct {
	shared.BaseEntity
	HouseholdID        uuid.UUID
	FirstName          string
	MiddleName         string
	LastName           string
	Gender             Gender
	DateOfBirth        *time.Time
	Age                int
	IDNumber           string
	PhoneNumber        string
	Relationship       Relationship
	EducationLevel     EducationLevel
	ProgramParticipant bool // Only the household head can participate
}

// NewHousehold registers a household in a village
func NewHousehold(name string, villageID uuid.UUID, createdBy uuid.UUID) (*Household, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Household name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Household name cannot exceed 100 characters")
	}
	if villageID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VILLAGE_ID", "Village ID cannot be empty")
	}

	h := &Household{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		VillageID:            villageID,
		Assets:               make(map[string]bool),
		Members:              make([]HouseholdMember, 0),
	}

	h.AddDomainEvent(NewHouseholdRegisteredEvent(h))

	return h, nil
}

// SetHead records the household head's personal details
func (h *Household) SetHead(firstName, middleName, lastName string, gender Gender, dateOfBirth *time.Time, idNumber, phone string) error {
	if gender != "" && gender != GenderMale && gender != GenderFemale {
		return shared.NewDomainError("INVALID_GENDER", "Unknown gender: "+string(gender))
	}

	h.HeadFirstName = strings.TrimSpace(firstName)
	h.HeadMiddleName = strings.TrimSpace(middleName)
	h.HeadLastName = strings.TrimSpace(lastName)
	h.HeadGenderValue = gender
	h.HeadDateOfBirth = dateOfBirth
	h.HeadIDNumber = strings.TrimSpace(idNumber)
	h.HeadPhoneNumber = strings.TrimSpace(phone)
	h.Touch()
	h.IncrementVersion()

	return nil
}

// HeadFullName returns the household head's full name
func (h *Household) HeadFullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{h.HeadFirstName, h.HeadMiddleName, h.HeadLastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// SetMonthlyIncome records the household's monthly income in KES
func (h *Household) SetMonthlyIncome(income decimal.Decimal) error {
	if income.IsNegative() {
		return shared.NewDomainError("INVALID_INCOME", "Monthly income cannot be negative")
	}

	h.MonthlyIncome = &income
	h.Touch()
	h.IncrementVersion()

	return nil
}

// SetAssets replaces the household asset inventory
func (h *Household) SetAssets(assets map[string]bool) {
	if assets == nil {
		assets = make(map[string]bool)
	}
	h.Assets = assets
	h.Touch()
	h.IncrementVersion()
}

// SetInfrastructure records electricity and clean water access
func (h *Household) SetInfrastructure(hasElectricity, hasCleanWater bool) {
	h.HasElectricity = hasElectricity
	h.HasCleanWater = hasCleanWater
	h.Touch()
	h.IncrementVersion()
}

// SetGPS records the household's coordinates
func (h *Household) SetGPS(latitude, longitude decimal.Decimal) error {
	if latitude.LessThan(decimal.NewFromInt(-90)) || latitude.GreaterThan(decimal.NewFromInt(90)) {
		return shared.NewDomainError("INVALID_COORDINATES", "Latitude must be between -90 and 90")
	}
	if longitude.LessThan(decimal.NewFromInt(-180)) || longitude.GreaterThan(decimal.NewFromInt(180)) {
		return shared.NewDomainError("INVALID_COORDINATES", "Longitude must be between -180 and 180")
	}

	h.GPSLatitude = &latitude
	h.GPSLongitude = &longitude
	h.Touch()
	h.IncrementVersion()

	return nil
}

// GiveConsent records that the household consented to participate
func (h *Household) GiveConsent() {
	h.ConsentGiven = true
	h.Touch()
	h.IncrementVersion()
}

// WithdrawConsent revokes participation consent
func (h *Household) WithdrawConsent() {
	h.ConsentGiven = false
	h.Touch()
	h.IncrementVersion()
}

// AddMember adds a member to the household
func (h *Household) AddMember(firstName, lastName string, gender Gender, age int, relationship Relationship, education EducationLevel) (*HouseholdMember, error) {
	if gender != GenderMale && gender != GenderFemale {
		return nil, shared.NewDomainError("INVALID_GENDER", "Unknown gender: "+string(gender))
	}
	if age < 0 || age > 130 {
		return nil, shared.NewDomainError("INVALID_AGE", "Age must be between 0 and 130")
	}
	if relationship == RelationshipHead && h.HeadMember() != nil {
		return nil, shared.NewDomainError("HEAD_ALREADY_SET", "Household already has a head member")
	}
	if education == "" {
		education = EducationNone
	}

	member := HouseholdMember{
		BaseEntity:     shared.NewBaseEntity(),
		HouseholdID:    h.ID,
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		Gender:         gender,
		Age:            age,
		Relationship:   relationship,
		EducationLevel: education,
		// Only the head represents the household in the program
		ProgramParticipant: relationship == RelationshipHead,
	}

	h.Members = append(h.Members, member)
	h.Touch()
	h.IncrementVersion()

	return &h.Members[len(h.Members)-1], nil
}

// RemoveMember removes a member by ID
func (h *Household) RemoveMember(memberID uuid.UUID) error {
	for i, m := range h.Members {
		if m.ID == memberID {
			h.Members = append(h.Members[:i], h.Members[i+1:]...)
			h.Touch()
			h.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("MEMBER_NOT_FOUND", "Household member not found")
}

// FullName returns the member's full name
func (m *HouseholdMember) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{m.FirstName, m.MiddleName, m.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Demographics derived from the member roster

// HeadMember returns the member with the head relationship, or nil
func (h *Household) HeadMember() *HouseholdMember {
	for i := range h.Members {
		if h.Members[i].Relationship == RelationshipHead {
			return &h.Members[i]
		}
	}
	return nil
}

// TotalMembers returns the number of registered members
func (h *Household) TotalMembers() int {
	return len(h.Members)
}

// ChildrenUnder5Count counts members younger than five
func (h *Household) ChildrenUnder5Count() int {
	count := 0
	for _, m := range h.Members {
		if m.Age < 5 {
			count++
		}
	}
	return count
}

// WorkingMembersCount counts working-age members (16-64)
func (h *Household) WorkingMembersCount() int {
	count := 0
	for _, m := range h.Members {
		if m.Age >= 16 && m.Age <= 64 {
			count++
		}
	}
	return count
}

// HeadGender returns the gender of the head member, falling back to the
// recorded head details
func (h *Household) HeadGender() Gender {
	if head := h.HeadMember(); head != nil {
		return head.Gender
	}
	return h.HeadGenderValue
}

// HeadAge returns the age of the head member, or 0 when unknown
func (h *Household) HeadAge() int {
	if head := h.HeadMember(); head != nil {
		return head.Age
	}
	return 0
}

// HeadEducationLevel returns the education level of the head member
func (h *Household) HeadEducationLevel() EducationLevel {
	if head := h.HeadMember(); head != nil {
		return head.EducationLevel
	}
	return EducationNone
}

// IsSingleParent reports whether the head has children but no spouse
func (h *Household) IsSingleParent() bool {
	if h.HeadMember() == nil {
		return false
	}
	spouses, children := 0, 0
	for _, m := range h.Members {
		switch m.Relationship {
		case RelationshipSpouse:
			spouses++
		case RelationshipChild:
			children++
		}
	}
	return children > 0 && spouses == 0
}
