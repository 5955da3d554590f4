package models

import (
	"github.com/google/uuid"
	"github.com/upg/backend/internal/domain/geography"
)

// CountyModel is the persistence model for the County domain entity.
type CountyModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Country string `gorm:"type:varchar(100);not null;default:'Kenya'"`
}

// TableName returns the table name for GORM
func (CountyModel) TableName() string {
	return "counties"
}

// ToDomain converts the persistence model to a domain County entity.
func (m *CountyModel) ToDomain() *geography.County {
	c := &geography.County{
		Name:    m.Name,
		Country: m.Country,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain County entity.
func (m *CountyModel) FromDomain(c *geography.County) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Country = c.Country
}

// SubCountyModel is the persistence model for the SubCounty domain entity.
type SubCountyModel struct {
	AggregateModel
	Name     string    `gorm:"type:varchar(100);not null"`
	CountyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (SubCountyModel) TableName() string {
	return "sub_counties"
}

// ToDomain converts the persistence model to a domain SubCounty entity.
func (m *SubCountyModel) ToDomain() *geography.SubCounty {
	sc := &geography.SubCounty{
		Name:     m.Name,
		CountyID: m.CountyID,
	}
	m.PopulateAggregateRoot(&sc.BaseAggregateRoot)
	return sc
}

// FromDomain populates the persistence model from a domain SubCounty entity.
func (m *SubCountyModel) FromDomain(sc *geography.SubCounty) {
	m.FromDomainAggregateRoot(sc.BaseAggregateRoot)
	m.Name = sc.Name
	m.CountyID = sc.CountyID
}

// VillageModel is the persistence model for the Village domain entity.
type VillageModel struct {
	AggregateModel
	Name             string     `gorm:"type:varchar(100);not null"`
	SubCountyID      *uuid.UUID `gorm:"type:uuid;index"`
	Saturation       string     `gorm:"type:varchar(50)"`
	QualifiedHHCount int        `gorm:"not null;default:0"`
	Country          string     `gorm:"type:varchar(100);not null;default:'Kenya'"`
	DistanceToMarket int        `gorm:"not null;default:0"`
	IsProgramArea    bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (VillageModel) TableName() string {
	return "villages"
}

// ToDomain converts the persistence model to a domain Village entity.
func (m *VillageModel) ToDomain() *geography.Village {
	v := &geography.Village{
		Name:             m.Name,
		SubCountyID:      m.SubCountyID,
		Saturation:       m.Saturation,
		QualifiedHHCount: m.QualifiedHHCount,
		Country:          m.Country,
		DistanceToMarket: m.DistanceToMarket,
		IsProgramArea:    m.IsProgramArea,
	}
	m.PopulateAggregateRoot(&v.BaseAggregateRoot)
	return v
}

// FromDomain populates the persistence model from a domain Village entity.
func (m *VillageModel) FromDomain(v *geography.Village) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.Name = v.Name
	m.SubCountyID = v.SubCountyID
	m.Saturation = v.Saturation
	m.QualifiedHHCount = v.QualifiedHHCount
	m.Country = v.Country
	m.DistanceToMarket = v.DistanceToMarket
	m.IsProgramArea = v.IsProgramArea
}
