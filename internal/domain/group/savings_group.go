package group

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/upg/backend/internal/domain/shared"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// SavingsFrequency is how often the members of a savings group contribute.
type SavingsFrequency string

const (
	FrequencyWeekly   SavingsFrequency = "weekly"
	FrequencyBiweekly SavingsFrequency = "biweekly"
	FrequencyMonthly  SavingsFrequency = "monthly"
)

func (f SavingsFrequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// SavingsMemberRole is the role a household holds inside a savings group.
type SavingsMemberRole string

const (
	SavingsRoleChairperson SavingsMemberRole = "chairperson"
	SavingsRoleSecretary   SavingsMemberRole = "secretary"
	SavingsRoleTreasurer   SavingsMemberRole = "treasurer"
	SavingsRoleMember      SavingsMemberRole = "member"
)

func (r SavingsMemberRole) IsValid() bool {
	switch r {
	case SavingsRoleChairperson, SavingsRoleSecretary, SavingsRoleTreasurer, SavingsRoleMember:
		return true
	}
	return false
}

const defaultTargetMembers = 25

// SavingsGroup is a community-based savings entity. It can include
// individual households as direct members and whole business groups.
type SavingsGroup struct {
	shared.AuditedAggregateRoot

	Name             string `gorm:"type:varchar(100);not null"`
	TargetMembers    int
	SavingsToDate    valueobject.Money `gorm:"type:decimal(12,2)"`
	FormationDate    time.Time
	MeetingDay       string           `gorm:"type:varchar(20)"`
	MeetingLocation  string           `gorm:"type:varchar(100)"`
	SavingsFrequency SavingsFrequency `gorm:"type:varchar(20)"`
	IsActive         bool

	Members          []SavingsGroupMember `gorm:"-"`
	BusinessGroupIDs []uuid.UUID          `gorm:"-"`
}

// SavingsGroupMember tracks a household's membership and running total.
type SavingsGroupMember struct {
	shared.BaseEntity

	SavingsGroupID uuid.UUID
	HouseholdID    uuid.UUID
	Role           SavingsMemberRole `gorm:"type:varchar(20)"`
	JoinedDate     time.Time
	TotalSavings   valueobject.Money `gorm:"type:decimal(10,2)"`
	IsActive       bool
}

// SavingsRecord is a single contribution by a member.
type SavingsRecord struct {
	shared.BaseEntity

	SavingsGroupID uuid.UUID
	MemberID       uuid.UUID
	Amount         valueobject.Money `gorm:"type:decimal(10,2)"`
	SavingsDate    time.Time
	RecordedBy     *uuid.UUID
	Notes          string `gorm:"type:text"`
}

func NewSavingsGroup(name string, formationDate time.Time, frequency SavingsFrequency, createdBy uuid.UUID) (*SavingsGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "savings group name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "savings group name cannot exceed 100 characters")
	}
	if frequency == "" {
		frequency = FrequencyWeekly
	}
	if !frequency.IsValid() {
		return nil, shared.NewDomainError("INVALID_SAVINGS_FREQUENCY", "invalid savings frequency: "+string(frequency))
	}

	g := &SavingsGroup{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		TargetMembers:        defaultTargetMembers,
		SavingsToDate:        valueobject.ZeroKES(),
		FormationDate:        formationDate,
		SavingsFrequency:     frequency,
		IsActive:             true,
	}
	g.AddDomainEvent(NewSavingsGroupFormedEvent(g.ID, name))
	return g, nil
}

func (g *SavingsGroup) SetMeetingSchedule(day, location string) {
	g.MeetingDay = strings.TrimSpace(day)
	g.MeetingLocation = strings.TrimSpace(location)
	g.Touch()
	g.IncrementVersion()
}

func (g *SavingsGroup) SetTargetMembers(target int) error {
	if target <= 0 {
		return shared.NewDomainError("INVALID_TARGET", "target members must be positive")
	}
	g.TargetMembers = target
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *SavingsGroup) Deactivate() {
	g.IsActive = false
	g.Touch()
	g.IncrementVersion()
}

// AttachBusinessGroup links a whole business group to this savings group.
func (g *SavingsGroup) AttachBusinessGroup(businessGroupID uuid.UUID) error {
	for _, id := range g.BusinessGroupIDs {
		if id == businessGroupID {
			return shared.ErrAlreadyExists
		}
	}
	g.BusinessGroupIDs = append(g.BusinessGroupIDs, businessGroupID)
	g.Touch()
	g.IncrementVersion()
	return nil
}

func (g *SavingsGroup) DetachBusinessGroup(businessGroupID uuid.UUID) error {
	for i, id := range g.BusinessGroupIDs {
		if id == businessGroupID {
			g.BusinessGroupIDs = append(g.BusinessGroupIDs[:i], g.BusinessGroupIDs[i+1:]...)
			g.Touch()
			g.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// AddMember joins a household directly to the savings group. The
// chairperson, secretary and treasurer roles are each held by one active
// member at a time.
func (g *SavingsGroup) AddMember(householdID uuid.UUID, role SavingsMemberRole, joinedDate time.Time) (*SavingsGroupMember, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_MEMBER_ROLE", "invalid savings group role: "+string(role))
	}
	for _, m := range g.Members {
		if m.HouseholdID == householdID && m.IsActive {
			return nil, shared.NewDomainError("DUPLICATE_MEMBER", "household is already a member of this savings group")
		}
		if role != SavingsRoleMember && m.Role == role && m.IsActive {
			return nil, shared.NewDomainError("ROLE_TAKEN", "savings group already has an active "+string(role))
		}
	}

	member := SavingsGroupMember{
		BaseEntity:     shared.NewBaseEntity(),
		SavingsGroupID: g.ID,
		HouseholdID:    householdID,
		Role:           role,
		JoinedDate:     joinedDate,
		TotalSavings:   valueobject.ZeroKES(),
		IsActive:       true,
	}
	g.Members = append(g.Members, member)
	g.Touch()
	g.IncrementVersion()
	return &member, nil
}

func (g *SavingsGroup) RemoveMember(householdID uuid.UUID) error {
	for i := range g.Members {
		if g.Members[i].HouseholdID == householdID && g.Members[i].IsActive {
			g.Members[i].IsActive = false
			g.Touch()
			g.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

func (g *SavingsGroup) ActiveMemberCount() int {
	n := 0
	for _, m := range g.Members {
		if m.IsActive {
			n++
		}
	}
	return n
}

// RecordSaving books a contribution by an active member, updating both the
// member's running total and the group total.
func (g *SavingsGroup) RecordSaving(householdID uuid.UUID, amount valueobject.Money,
	savingsDate time.Time, recordedBy *uuid.UUID, notes string) (*SavingsRecord, error) {
	if !g.IsActive {
		return nil, shared.NewDomainError("GROUP_INACTIVE", "cannot record savings for an inactive group")
	}
	if amount.IsZero() || amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SAVINGS_AMOUNT", "savings amount must be positive")
	}

	var member *SavingsGroupMember
	for i := range g.Members {
		if g.Members[i].HouseholdID == householdID && g.Members[i].IsActive {
			member = &g.Members[i]
			break
		}
	}
	if member == nil {
		return nil, shared.NewDomainError("NOT_A_MEMBER", "household is not an active member of this savings group")
	}

	newMemberTotal, err := member.TotalSavings.Add(amount)
	if err != nil {
		return nil, err
	}
	newGroupTotal, err := g.SavingsToDate.Add(amount)
	if err != nil {
		return nil, err
	}
	member.TotalSavings = newMemberTotal
	g.SavingsToDate = newGroupTotal

	record := &SavingsRecord{
		BaseEntity:     shared.NewBaseEntity(),
		SavingsGroupID: g.ID,
		MemberID:       member.ID,
		Amount:         amount,
		SavingsDate:    savingsDate,
		RecordedBy:     recordedBy,
		Notes:          strings.TrimSpace(notes),
	}
	g.Touch()
	g.IncrementVersion()
	g.AddDomainEvent(NewSavingsRecordedEvent(g.ID, member.HouseholdID, amount.String()))
	return record, nil
}
