// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel, AuditedAggregateModel)
// - identity.go: Users, village assignments, password reset tokens
// - geography.go: Counties, sub-counties, villages
// - program.go: Programs, enrollments, milestones
// - household.go: Households, members, PPI assessments
// - group.go: Business groups, savings groups, memberships, records
// - grant.go: Seed business grants, performance grants, disbursements, applications
// - training.go: Trainings, enrollments, attendance, mentoring
// - survey.go: Survey definitions and responses
// - audit.go: System configuration and the audit trail
package models
