package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HouseholdSummary is a read model of the registered household population
type HouseholdSummary struct {
	TotalHouseholds int64              `json:"total_households"`
	WithConsent     int64              `json:"with_consent"`
	ByEligibility   []EligibilityCount `json:"by_eligibility"`
	AveragePPIScore float64            `json:"average_ppi_score"`
}

// EligibilityCount is one eligibility band with its household count
type EligibilityCount struct {
	Level string `json:"level"`
	Count int64  `json:"count"`
}

// EnrollmentFunnel tracks households through one program's lifecycle
type EnrollmentFunnel struct {
	ProgramID   uuid.UUID `json:"program_id"`
	ProgramName string    `json:"program_name"`

	Eligible   int64 `json:"eligible"`
	Enrolled   int64 `json:"enrolled"`
	Active     int64 `json:"active"`
	Graduated  int64 `json:"graduated"`
	DroppedOut int64 `json:"dropped_out"`
}

// Total counts every household that entered the funnel
func (f EnrollmentFunnel) Total() int64 {
	return f.Eligible + f.Enrolled + f.Active + f.Graduated + f.DroppedOut
}

// GraduationRate is the share of concluded enrollments that graduated
func (f EnrollmentFunnel) GraduationRate() float64 {
	concluded := f.Graduated + f.DroppedOut
	if concluded == 0 {
		return 0
	}
	return float64(f.Graduated) / float64(concluded)
}

// StatusCount is one workflow status with its record count
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// GrantSummary is a read model of grant money through the pipeline
type GrantSummary struct {
	SBGrantsByStatus     []StatusCount `json:"sb_grants_by_status"`
	PRGrantsByStatus     []StatusCount `json:"pr_grants_by_status"`
	ApplicationsByStatus []StatusCount `json:"applications_by_status"`

	TotalSBDisbursed decimal.Decimal `json:"total_sb_disbursed"`
	TotalPRDisbursed decimal.Decimal `json:"total_pr_disbursed"`
}

// TotalDisbursed sums seed and performance disbursements
func (g GrantSummary) TotalDisbursed() decimal.Decimal {
	return g.TotalSBDisbursed.Add(g.TotalPRDisbursed)
}

// SavingsSummary is a read model of the savings-group ledgers
type SavingsSummary struct {
	TotalGroups  int64           `json:"total_groups"`
	ActiveSavers int64           `json:"active_savers"`
	TotalSaved   decimal.Decimal `json:"total_saved"`
	MonthlyTrend []MonthlySaving `json:"monthly_trend"`
}

// MonthlySaving is one month's aggregate deposits
type MonthlySaving struct {
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// GroupHealthSummary counts business groups per traffic-light rating
type GroupHealthSummary struct {
	Green  int64 `json:"green"`
	Yellow int64 `json:"yellow"`
	Red    int64 `json:"red"`
}

// Total counts every rated business group
func (g GroupHealthSummary) Total() int64 {
	return g.Green + g.Yellow + g.Red
}

// TrainingSummary is a read model of training delivery and attendance
type TrainingSummary struct {
	TotalTrainings     int64              `json:"total_trainings"`
	CompletedTrainings int64              `json:"completed_trainings"`
	TotalEnrollments   int64              `json:"total_enrollments"`
	AttendanceRate     float64            `json:"attendance_rate"`
	ByModule           []ModuleAttendance `json:"by_module"`
}

// ModuleAttendance is one training module's delivery stats
type ModuleAttendance struct {
	ModuleID       string  `json:"module_id"`
	Sessions       int64   `json:"sessions"`
	AttendanceRate float64 `json:"attendance_rate"`
}
