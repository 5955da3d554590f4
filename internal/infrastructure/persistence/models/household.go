package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/upg/backend/internal/domain/household"
)

// HouseholdModel is the persistence model for the Household aggregate.
type HouseholdModel struct {
	AuditedAggregateModel
	VillageID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SubCountyID  *uuid.UUID `gorm:"type:uuid;index"`
	Constituency string     `gorm:"type:varchar(100)"`
	District     string     `gorm:"type:varchar(100)"`
	Division     string     `gorm:"type:varchar(100)"`
	LocationName string     `gorm:"type:varchar(100)"`
	SubLocation  string     `gorm:"type:varchar(100)"`

	HeadFirstName   string           `gorm:"type:varchar(100)"`
	HeadMiddleName  string           `gorm:"type:varchar(100)"`
	HeadLastName    string           `gorm:"type:varchar(100)"`
	HeadGenderValue household.Gender `gorm:"type:varchar(10)"`
	HeadDateOfBirth *time.Time
	HeadIDNumber    string `gorm:"type:varchar(30)"`
	HeadPhoneNumber string `gorm:"type:varchar(20)"`

	Name        string `gorm:"type:varchar(100);not null"`
	NationalID  string `gorm:"type:varchar(30);index"`
	PhoneNumber string `gorm:"type:varchar(20)"`

	HasDisabledMember bool             `gorm:"not null;default:false"`
	GPSLatitude       *decimal.Decimal `gorm:"type:decimal(10,7)"`
	GPSLongitude      *decimal.Decimal `gorm:"type:decimal(10,7)"`
	MonthlyIncome     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Assets            map[string]bool  `gorm:"serializer:json"`
	HasElectricity    bool             `gorm:"not null;default:false"`
	HasCleanWater     bool             `gorm:"not null;default:false"`
	Location          string           `gorm:"type:varchar(50)"`
	ConsentGiven      bool             `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (HouseholdModel) TableName() string {
	return "households"
}

// ToDomain converts the persistence model to a domain Household aggregate.
// Note: Members must be loaded separately by the repository.
func (m *HouseholdModel) ToDomain() *household.Household {
	h := &household.Household{
		VillageID:         m.VillageID,
		SubCountyID:       m.SubCountyID,
		Constituency:      m.Constituency,
		District:          m.District,
		Division:          m.Division,
		LocationName:      m.LocationName,
		SubLocation:       m.SubLocation,
		HeadFirstName:     m.HeadFirstName,
		HeadMiddleName:    m.HeadMiddleName,
		HeadLastName:      m.HeadLastName,
		HeadGenderValue:   m.HeadGenderValue,
		HeadDateOfBirth:   m.HeadDateOfBirth,
		HeadIDNumber:      m.HeadIDNumber,
		HeadPhoneNumber:   m.HeadPhoneNumber,
		Name:              m.Name,
		NationalID:        m.NationalID,
		PhoneNumber:       m.PhoneNumber,
		HasDisabledMember: m.HasDisabledMember,
		GPSLatitude:       m.GPSLatitude,
		GPSLongitude:      m.GPSLongitude,
		MonthlyIncome:     m.MonthlyIncome,
		Assets:            m.Assets,
		HasElectricity:    m.HasElectricity,
		HasCleanWater:     m.HasCleanWater,
		Location:          m.Location,
		ConsentGiven:      m.ConsentGiven,
		Members:           make([]household.HouseholdMember, 0), // Loaded separately
	}
	m.PopulateAuditedAggregateRoot(&h.AuditedAggregateRoot)
	return h
}

// FromDomain populates the persistence model from a domain Household aggregate.
func (m *HouseholdModel) FromDomain(h *household.Household) {
	m.FromDomainAuditedAggregateRoot(h.AuditedAggregateRoot)
	m.VillageID = h.VillageID
	m.SubCountyID = h.SubCountyID
	m.Constituency = h.Constituency
	m.District = h.District
	m.Division = h.Division
	m.LocationName = h.LocationName
	m.SubLocation = h.SubLocation
	m.HeadFirstName = h.HeadFirstName
	m.HeadMiddleName = h.HeadMiddleName
	m.HeadLastName = h.HeadLastName
	m.HeadGenderValue = h.HeadGenderValue
	m.HeadDateOfBirth = h.HeadDateOfBirth
	m.HeadIDNumber = h.HeadIDNumber
	m.HeadPhoneNumber = h.HeadPhoneNumber
	m.Name = h.Name
	m.NationalID = h.NationalID
	m.PhoneNumber = h.PhoneNumber
	m.HasDisabledMember = h.HasDisabledMember
	m.GPSLatitude = h.GPSLatitude
	m.GPSLongitude = h.GPSLongitude
	m.MonthlyIncome = h.MonthlyIncome
	m.Assets = h.Assets
	m.HasElectricity = h.HasElectricity
	m.HasCleanWater = h.HasCleanWater
	m.Location = h.Location
	m.ConsentGiven = h.ConsentGiven
}

// HouseholdModelFromDomain creates a new persistence model from a domain Household.
func HouseholdModelFromDomain(h *household.Household) *HouseholdModel {
	m := &HouseholdModel{}
	m.FromDomain(h)
	return m
}

// HouseholdMemberModel is the persistence model for a household member.
type HouseholdMemberModel struct {
	BaseModel
	HouseholdID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	FirstName          string                   `gorm:"type:varchar(100);not null"`
	MiddleName         string                   `gorm:"type:varchar(100)"`
	LastName           string                   `gorm:"type:varchar(100)"`
	Gender             household.Gender         `gorm:"type:varchar(10)"`
	DateOfBirth        *time.Time
	Age                int                      `gorm:"not null;default:0"`
	IDNumber           string                   `gorm:"type:varchar(30)"`
	PhoneNumber        string                   `gorm:"type:varchar(20)"`
	Relationship       household.Relationship   `gorm:"type:varchar(30)"`
	EducationLevel     household.EducationLevel `gorm:"type:varchar(30)"`
	ProgramParticipant bool                     `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (HouseholdMemberModel) TableName() string {
	return "household_members"
}

// ToDomain converts the persistence model to a domain HouseholdMember.
func (m *HouseholdMemberModel) ToDomain() household.HouseholdMember {
	return household.HouseholdMember{
		BaseEntity:         m.BaseModel.ToDomain(),
		HouseholdID:        m.HouseholdID,
		FirstName:          m.FirstName,
		MiddleName:         m.MiddleName,
		LastName:           m.LastName,
		Gender:             m.Gender,
		DateOfBirth:        m.DateOfBirth,
		Age:                m.Age,
		IDNumber:           m.IDNumber,
		PhoneNumber:        m.PhoneNumber,
		Relationship:       m.Relationship,
		EducationLevel:     m.EducationLevel,
		ProgramParticipant: m.ProgramParticipant,
	}
}

// FromDomain populates the persistence model from a domain HouseholdMember.
func (m *HouseholdMemberModel) FromDomain(member household.HouseholdMember) {
	m.FromDomainBaseEntity(member.BaseEntity)
	m.HouseholdID = member.HouseholdID
	m.FirstName = member.FirstName
	m.MiddleName = member.MiddleName
	m.LastName = member.LastName
	m.Gender = member.Gender
	m.DateOfBirth = member.DateOfBirth
	m.Age = member.Age
	m.IDNumber = member.IDNumber
	m.PhoneNumber = member.PhoneNumber
	m.Relationship = member.Relationship
	m.EducationLevel = member.EducationLevel
	m.ProgramParticipant = member.ProgramParticipant
}

// PPIAssessmentModel is the persistence model for a PPI score record.
type PPIAssessmentModel struct {
	BaseModel
	HouseholdID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(100)"`
	Score          int       `gorm:"not null"`
	AssessmentDate time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PPIAssessmentModel) TableName() string {
	return "ppi_assessments"
}

// ToDomain converts the persistence model to a domain PPIAssessment.
func (m *PPIAssessmentModel) ToDomain() *household.PPIAssessment {
	return &household.PPIAssessment{
		BaseEntity:     m.BaseModel.ToDomain(),
		HouseholdID:    m.HouseholdID,
		Name:           m.Name,
		Score:          m.Score,
		AssessmentDate: m.AssessmentDate,
	}
}

// FromDomain populates the persistence model from a domain PPIAssessment.
func (m *PPIAssessmentModel) FromDomain(a *household.PPIAssessment) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.HouseholdID = a.HouseholdID
	m.Name = a.Name
	m.Score = a.Score
	m.AssessmentDate = a.AssessmentDate
}
