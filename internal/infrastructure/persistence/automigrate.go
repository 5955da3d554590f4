package persistence

import (
	"github.com/upg/backend/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or updates the schema for all persistence models.
// It is used for the SQLite backend and for local development; MySQL
// deployments run versioned SQL migrations instead.
func (d *Database) AutoMigrate() error {
	return d.DB.AutoMigrate(
		&models.UserModel{},
		&models.UserVillageModel{},
		&models.PasswordResetTokenModel{},
		&models.CountyModel{},
		&models.SubCountyModel{},
		&models.VillageModel{},
		&models.ProgramModel{},
		&models.EnrollmentModel{},
		&models.MilestoneModel{},
		&models.HouseholdModel{},
		&models.HouseholdMemberModel{},
		&models.PPIAssessmentModel{},
		&models.BusinessGroupModel{},
		&models.BusinessGroupMemberModel{},
		&models.SavingsGroupModel{},
		&models.SavingsGroupMemberModel{},
		&models.SavingsGroupLinkModel{},
		&models.SavingsRecordModel{},
		&models.BusinessProgressSurveyModel{},
		&models.SavingsProgressSurveyModel{},
		&models.SBGrantModel{},
		&models.PRGrantModel{},
		&models.DisbursementModel{},
		&models.GrantApplicationModel{},
		&models.TrainingModel{},
		&models.TrainingEnrollmentModel{},
		&models.AttendanceModel{},
		&models.MentoringVisitModel{},
		&models.PhoneNudgeModel{},
		&models.MentoringReportModel{},
		&models.SurveyModel{},
		&models.SurveyResponseModel{},
		&models.ConfigurationModel{},
		&models.AuditLogModel{},
		&models.SMSLogModel{},
	)
}
