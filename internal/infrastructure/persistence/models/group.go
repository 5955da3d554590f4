package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/group"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// BusinessGroupModel is the persistence model for the BusinessGroup aggregate.
type BusinessGroupModel struct {
	AuditedAggregateModel
	Name               string                    `gorm:"type:varchar(100);not null"`
	ProgramID          uuid.UUID                 `gorm:"type:uuid;not null;index"`
	Health             group.BusinessHealth      `gorm:"type:varchar(10);not null;index"`
	Participation      group.ParticipationStatus `gorm:"type:varchar(20);not null"`
	GroupSize          int                       `gorm:"not null;default:2"`
	BusinessType       group.BusinessType        `gorm:"type:varchar(20)"`
	BusinessTypeDetail string                    `gorm:"type:varchar(100)"`
	Location           string                    `gorm:"type:varchar(200)"`
	FormationDate      time.Time                 `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BusinessGroupModel) TableName() string {
	return "business_groups"
}

// ToDomain converts the persistence model to a domain BusinessGroup aggregate.
// Note: Members must be loaded separately by the repository.
func (m *BusinessGroupModel) ToDomain() *group.BusinessGroup {
	bg := &group.BusinessGroup{
		Name:               m.Name,
		ProgramID:          m.ProgramID,
		Health:             m.Health,
		Participation:      m.Participation,
		GroupSize:          m.GroupSize,
		BusinessType:       m.BusinessType,
		BusinessTypeDetail: m.BusinessTypeDetail,
		Location:           m.Location,
		FormationDate:      m.FormationDate,
		Members:            make([]group.BusinessGroupMember, 0), // Loaded separately
	}
	m.PopulateAuditedAggregateRoot(&bg.AuditedAggregateRoot)
	return bg
}

// FromDomain populates the persistence model from a domain BusinessGroup aggregate.
func (m *BusinessGroupModel) FromDomain(bg *group.BusinessGroup) {
	m.FromDomainAuditedAggregateRoot(bg.AuditedAggregateRoot)
	m.Name = bg.Name
	m.ProgramID = bg.ProgramID
	m.Health = bg.Health
	m.Participation = bg.Participation
	m.GroupSize = bg.GroupSize
	m.BusinessType = bg.BusinessType
	m.BusinessTypeDetail = bg.BusinessTypeDetail
	m.Location = bg.Location
	m.FormationDate = bg.FormationDate
}

// BusinessGroupMemberModel is the persistence model for a business group membership.
type BusinessGroupMemberModel struct {
	BaseModel
	BusinessGroupID uuid.UUID        `gorm:"type:uuid;not null;index"`
	HouseholdID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	Role            group.MemberRole `gorm:"type:varchar(20);not null"`
	JoinedDate      time.Time        `gorm:"not null"`
	IsActive        bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BusinessGroupMemberModel) TableName() string {
	return "business_group_members"
}

// ToDomain converts the persistence model to a domain BusinessGroupMember.
func (m *BusinessGroupMemberModel) ToDomain() group.BusinessGroupMember {
	return group.BusinessGroupMember{
		BaseEntity:      m.BaseModel.ToDomain(),
		BusinessGroupID: m.BusinessGroupID,
		HouseholdID:     m.HouseholdID,
		Role:            m.Role,
		JoinedDate:      m.JoinedDate,
		IsActive:        m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain BusinessGroupMember.
func (m *BusinessGroupMemberModel) FromDomain(member group.BusinessGroupMember) {
	m.FromDomainBaseEntity(member.BaseEntity)
	m.BusinessGroupID = member.BusinessGroupID
	m.HouseholdID = member.HouseholdID
	m.Role = member.Role
	m.JoinedDate = member.JoinedDate
	m.IsActive = member.IsActive
}

// SavingsGroupModel is the persistence model for the SavingsGroup aggregate.
type SavingsGroupModel struct {
	AuditedAggregateModel
	Name             string                 `gorm:"type:varchar(100);not null"`
	TargetMembers    int                    `gorm:"not null;default:25"`
	SavingsToDate    valueobject.Money      `gorm:"type:decimal(12,2)"`
	FormationDate    time.Time              `gorm:"not null"`
	MeetingDay       string                 `gorm:"type:varchar(20)"`
	MeetingLocation  string                 `gorm:"type:varchar(100)"`
	SavingsFrequency group.SavingsFrequency `gorm:"type:varchar(20);not null"`
	IsActive         bool                   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (SavingsGroupModel) TableName() string {
	return "savings_groups"
}

// ToDomain converts the persistence model to a domain SavingsGroup aggregate.
// Note: Members and BusinessGroupIDs must be loaded separately by the repository.
func (m *SavingsGroupModel) ToDomain() *group.SavingsGroup {
	sg := &group.SavingsGroup{
		Name:             m.Name,
		TargetMembers:    m.TargetMembers,
		SavingsToDate:    m.SavingsToDate,
		FormationDate:    m.FormationDate,
		MeetingDay:       m.MeetingDay,
		MeetingLocation:  m.MeetingLocation,
		SavingsFrequency: m.SavingsFrequency,
		IsActive:         m.IsActive,
		Members:          make([]group.SavingsGroupMember, 0), // Loaded separately
		BusinessGroupIDs: make([]uuid.UUID, 0),                // Loaded separately
	}
	m.PopulateAuditedAggregateRoot(&sg.AuditedAggregateRoot)
	return sg
}

// FromDomain populates the persistence model from a domain SavingsGroup aggregate.
func (m *SavingsGroupModel) FromDomain(sg *group.SavingsGroup) {
	m.FromDomainAuditedAggregateRoot(sg.AuditedAggregateRoot)
	m.Name = sg.Name
	m.TargetMembers = sg.TargetMembers
	m.SavingsToDate = sg.SavingsToDate
	m.FormationDate = sg.FormationDate
	m.MeetingDay = sg.MeetingDay
	m.MeetingLocation = sg.MeetingLocation
	m.SavingsFrequency = sg.SavingsFrequency
	m.IsActive = sg.IsActive
}

// SavingsGroupMemberModel is the persistence model for a savings group membership.
type SavingsGroupMemberModel struct {
	BaseModel
	SavingsGroupID uuid.UUID               `gorm:"type:uuid;not null;index"`
	HouseholdID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	Role           group.SavingsMemberRole `gorm:"type:varchar(20);not null"`
	JoinedDate     time.Time               `gorm:"not null"`
	TotalSavings   valueobject.Money       `gorm:"type:decimal(10,2)"`
	IsActive       bool                    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SavingsGroupMemberModel) TableName() string {
	return "savings_group_members"
}

// ToDomain converts the persistence model to a domain SavingsGroupMember.
func (m *SavingsGroupMemberModel) ToDomain() group.SavingsGroupMember {
	return group.SavingsGroupMember{
		BaseEntity:     m.BaseModel.ToDomain(),
		SavingsGroupID: m.SavingsGroupID,
		HouseholdID:    m.HouseholdID,
		Role:           m.Role,
		JoinedDate:     m.JoinedDate,
		TotalSavings:   m.TotalSavings,
		IsActive:       m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain SavingsGroupMember.
func (m *SavingsGroupMemberModel) FromDomain(member group.SavingsGroupMember) {
	m.FromDomainBaseEntity(member.BaseEntity)
	m.SavingsGroupID = member.SavingsGroupID
	m.HouseholdID = member.HouseholdID
	m.Role = member.Role
	m.JoinedDate = member.JoinedDate
	m.TotalSavings = member.TotalSavings
	m.IsActive = member.IsActive
}

// SavingsGroupLinkModel links a savings group to a member business group.
type SavingsGroupLinkModel struct {
	SavingsGroupID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	BusinessGroupID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SavingsGroupLinkModel) TableName() string {
	return "savings_group_business_groups"
}

// SavingsRecordModel is the persistence model for a savings deposit record.
type SavingsRecordModel struct {
	BaseModel
	SavingsGroupID uuid.UUID         `gorm:"type:uuid;not null;index"`
	MemberID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount         valueobject.Money `gorm:"type:decimal(10,2)"`
	SavingsDate    time.Time         `gorm:"not null;index"`
	RecordedBy     *uuid.UUID        `gorm:"type:uuid"`
	Notes          string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SavingsRecordModel) TableName() string {
	return "savings_records"
}

// ToDomain converts the persistence model to a domain SavingsRecord.
func (m *SavingsRecordModel) ToDomain() *group.SavingsRecord {
	return &group.SavingsRecord{
		BaseEntity:     m.BaseModel.ToDomain(),
		SavingsGroupID: m.SavingsGroupID,
		MemberID:       m.MemberID,
		Amount:         m.Amount,
		SavingsDate:    m.SavingsDate,
		RecordedBy:     m.RecordedBy,
		Notes:          m.Notes,
	}
}

// FromDomain populates the persistence model from a domain SavingsRecord.
func (m *SavingsRecordModel) FromDomain(r *group.SavingsRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.SavingsGroupID = r.SavingsGroupID
	m.MemberID = r.MemberID
	m.Amount = r.Amount
	m.SavingsDate = r.SavingsDate
	m.RecordedBy = r.RecordedBy
	m.Notes = r.Notes
}

// BusinessProgressSurveyModel is the persistence model for business progress surveys.
type BusinessProgressSurveyModel struct {
	BaseModel
	BusinessGroupID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	SurveyDate        time.Time         `gorm:"not null;index"`
	SurveyorID        *uuid.UUID        `gorm:"type:uuid"`
	GrantValue        valueobject.Money `gorm:"type:decimal(10,2)"`
	GrantUsed         valueobject.Money `gorm:"type:decimal(10,2)"`
	Profit            valueobject.Money `gorm:"type:decimal(10,2)"`
	BusinessInputs    string            `gorm:"type:text"`
	BusinessInventory string            `gorm:"type:text"`
	BusinessCash      valueobject.Money `gorm:"type:decimal(10,2)"`
}

// TableName returns the table name for GORM
func (BusinessProgressSurveyModel) TableName() string {
	return "business_progress_surveys"
}

// ToDomain converts the persistence model to a domain BusinessProgressSurvey.
func (m *BusinessProgressSurveyModel) ToDomain() *group.BusinessProgressSurvey {
	return &group.BusinessProgressSurvey{
		BaseEntity:        m.BaseModel.ToDomain(),
		BusinessGroupID:   m.BusinessGroupID,
		SurveyDate:        m.SurveyDate,
		SurveyorID:        m.SurveyorID,
		GrantValue:        m.GrantValue,
		GrantUsed:         m.GrantUsed,
		Profit:            m.Profit,
		BusinessInputs:    m.BusinessInputs,
		BusinessInventory: m.BusinessInventory,
		BusinessCash:      m.BusinessCash,
	}
}

// FromDomain populates the persistence model from a domain BusinessProgressSurvey.
func (m *BusinessProgressSurveyModel) FromDomain(s *group.BusinessProgressSurvey) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.BusinessGroupID = s.BusinessGroupID
	m.SurveyDate = s.SurveyDate
	m.SurveyorID = s.SurveyorID
	m.GrantValue = s.GrantValue
	m.GrantUsed = s.GrantUsed
	m.Profit = s.Profit
	m.BusinessInputs = s.BusinessInputs
	m.BusinessInventory = s.BusinessInventory
	m.BusinessCash = s.BusinessCash
}

// SavingsProgressSurveyModel is the persistence model for savings progress surveys.
type SavingsProgressSurveyModel struct {
	BaseModel
	SavingsGroupID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	SurveyDate            time.Time         `gorm:"not null;index"`
	SavingLastMonth       valueobject.Money `gorm:"type:decimal(10,2)"`
	MonthRecorded         time.Time         `gorm:"not null"`
	AttendanceThisMeeting int               `gorm:"not null;default:0"`
	SurveyorID            *uuid.UUID        `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SavingsProgressSurveyModel) TableName() string {
	return "savings_progress_surveys"
}

// ToDomain converts the persistence model to a domain SavingsProgressSurvey.
func (m *SavingsProgressSurveyModel) ToDomain() *group.SavingsProgressSurvey {
	return &group.SavingsProgressSurvey{
		BaseEntity:            m.BaseModel.ToDomain(),
		SavingsGroupID:        m.SavingsGroupID,
		SurveyDate:            m.SurveyDate,
		SavingLastMonth:       m.SavingLastMonth,
		MonthRecorded:         m.MonthRecorded,
		AttendanceThisMeeting: m.AttendanceThisMeeting,
		SurveyorID:            m.SurveyorID,
	}
}

// FromDomain populates the persistence model from a domain SavingsProgressSurvey.
func (m *SavingsProgressSurveyModel) FromDomain(s *group.SavingsProgressSurvey) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.SavingsGroupID = s.SavingsGroupID
	m.SurveyDate = s.SurveyDate
	m.SavingLastMonth = s.SavingLastMonth
	m.MonthRecorded = s.MonthRecorded
	m.AttendanceThisMeeting = s.AttendanceThisMeeting
	m.SurveyorID = s.SurveyorID
}
