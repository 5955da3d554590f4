package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/upg/backend/internal/domain/report"
	"github.com/upg/backend/internal/domain/shared"
)

// GormDashboardRepository computes dashboard aggregates with database-side
// queries. All queries are read-only.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// HouseholdSummary counts households overall, with consent, and per
// eligibility band derived from each household's latest PPI score.
func (r *GormDashboardRepository) HouseholdSummary(ctx context.Context) (*report.HouseholdSummary, error) {
	summary := &report.HouseholdSummary{}

	var totals struct {
		Total       int64
		WithConsent int64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total,
		       SUM(CASE WHEN consent_given THEN 1 ELSE 0 END) AS with_consent
		FROM households`).Scan(&totals).Error; err != nil {
		return nil, err
	}
	summary.TotalHouseholds = totals.Total
	summary.WithConsent = totals.WithConsent

	// Latest PPI score per household, bucketed into eligibility bands.
	rows := []struct {
		Level string
		Count int64
	}{}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT CASE
		         WHEN latest.score >= 80 THEN 'highly_eligible'
		         WHEN latest.score >= 60 THEN 'eligible'
		         WHEN latest.score >= 40 THEN 'marginally_eligible'
		         ELSE 'not_eligible'
		       END AS level,
		       COUNT(*) AS count
		FROM (
		    SELECT a.household_id, a.score
		    FROM ppi_assessments a
		    WHERE a.assessment_date = (
		        SELECT MAX(b.assessment_date)
		        FROM ppi_assessments b
		        WHERE b.household_id = a.household_id
		    )
		) AS latest
		GROUP BY level`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		summary.ByEligibility = append(summary.ByEligibility, report.EligibilityCount{
			Level: row.Level,
			Count: row.Count,
		})
	}

	var avg sql.NullFloat64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT AVG(score) FROM ppi_assessments`).Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg.Valid {
		summary.AveragePPIScore = avg.Float64
	}
	return summary, nil
}

type funnelRow struct {
	ProgramID   uuid.UUID
	ProgramName string
	Eligible    int64
	Enrolled    int64
	Active      int64
	Graduated   int64
	DroppedOut  int64
}

const funnelSelect = `
	SELECT p.id AS program_id,
	       p.name AS program_name,
	       SUM(CASE WHEN e.status = 'eligible' THEN 1 ELSE 0 END) AS eligible,
	       SUM(CASE WHEN e.status = 'enrolled' THEN 1 ELSE 0 END) AS enrolled,
	       SUM(CASE WHEN e.status = 'active' THEN 1 ELSE 0 END) AS active,
	       SUM(CASE WHEN e.status = 'graduated' THEN 1 ELSE 0 END) AS graduated,
	       SUM(CASE WHEN e.status = 'dropped_out' THEN 1 ELSE 0 END) AS dropped_out
	FROM programs p
	LEFT JOIN program_enrollments e ON e.program_id = p.id`

func (row funnelRow) toDomain() *report.EnrollmentFunnel {
	return &report.EnrollmentFunnel{
		ProgramID:   row.ProgramID,
		ProgramName: row.ProgramName,
		Eligible:    row.Eligible,
		Enrolled:    row.Enrolled,
		Active:      row.Active,
		Graduated:   row.Graduated,
		DroppedOut:  row.DroppedOut,
	}
}

// EnrollmentFunnel computes one program's enrollment funnel
func (r *GormDashboardRepository) EnrollmentFunnel(ctx context.Context, programID uuid.UUID) (*report.EnrollmentFunnel, error) {
	var row funnelRow
	result := r.db.WithContext(ctx).
		Raw(funnelSelect+` WHERE p.id = ? GROUP BY p.id, p.name`, programID).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return row.toDomain(), nil
}

// EnrollmentFunnels computes the funnel for every program
func (r *GormDashboardRepository) EnrollmentFunnels(ctx context.Context) ([]*report.EnrollmentFunnel, error) {
	var rows []funnelRow
	err := r.db.WithContext(ctx).
		Raw(funnelSelect + ` GROUP BY p.id, p.name ORDER BY p.name`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	funnels := make([]*report.EnrollmentFunnel, len(rows))
	for i, row := range rows {
		funnels[i] = row.toDomain()
	}
	return funnels, nil
}

// GrantSummary counts grants per workflow status and sums disbursements
func (r *GormDashboardRepository) GrantSummary(ctx context.Context) (*report.GrantSummary, error) {
	summary := &report.GrantSummary{
		TotalSBDisbursed: decimal.Zero,
		TotalPRDisbursed: decimal.Zero,
	}

	var err error
	if summary.SBGrantsByStatus, err = r.statusCounts(ctx, "sb_grants"); err != nil {
		return nil, err
	}
	if summary.PRGrantsByStatus, err = r.statusCounts(ctx, "pr_grants"); err != nil {
		return nil, err
	}
	if summary.ApplicationsByStatus, err = r.statusCounts(ctx, "grant_applications"); err != nil {
		return nil, err
	}

	var sums struct {
		SBTotal sql.NullString
		PRTotal sql.NullString
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT (SELECT SUM(d.amount) FROM grant_disbursements d WHERE d.sb_grant_id IS NOT NULL) AS sb_total,
		       (SELECT SUM(d.amount) FROM grant_disbursements d WHERE d.pr_grant_id IS NOT NULL) AS pr_total`).
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	if sums.SBTotal.Valid {
		if summary.TotalSBDisbursed, err = decimal.NewFromString(sums.SBTotal.String); err != nil {
			return nil, err
		}
	}
	if sums.PRTotal.Valid {
		if summary.TotalPRDisbursed, err = decimal.NewFromString(sums.PRTotal.String); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

func (r *GormDashboardRepository) statusCounts(ctx context.Context, table string) ([]report.StatusCount, error) {
	rows := []struct {
		Status string
		Count  int64
	}{}
	if err := r.db.WithContext(ctx).Table(table).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make([]report.StatusCount, len(rows))
	for i, row := range rows {
		counts[i] = report.StatusCount{Status: row.Status, Count: row.Count}
	}
	return counts, nil
}

// SavingsSummary sums ledger deposits and builds a monthly trend over the
// trailing window
func (r *GormDashboardRepository) SavingsSummary(ctx context.Context, trendMonths int) (*report.SavingsSummary, error) {
	summary := &report.SavingsSummary{TotalSaved: decimal.Zero}

	var totals struct {
		GroupCount int64
		SaverCount int64
		Total      sql.NullString
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT (SELECT COUNT(*) FROM savings_groups) AS group_count,
		       (SELECT COUNT(DISTINCT member_id) FROM savings_records) AS saver_count,
		       (SELECT SUM(amount) FROM savings_records) AS total`).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	summary.TotalGroups = totals.GroupCount
	summary.ActiveSavers = totals.SaverCount
	if totals.Total.Valid {
		total, err := decimal.NewFromString(totals.Total.String)
		if err != nil {
			return nil, err
		}
		summary.TotalSaved = total
	}

	since := time.Now().UTC().AddDate(0, -trendMonths, 0)
	rows := []struct {
		SavingsDate time.Time
		Amount      string
	}{}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT savings_date, amount
		FROM savings_records
		WHERE savings_date >= ?
		ORDER BY savings_date`, since).Scan(&rows).Error; err != nil {
		return nil, err
	}

	// Month bucketing happens here rather than in SQL so one query works
	// on both MySQL and SQLite.
	byMonth := map[[2]int]decimal.Decimal{}
	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			return nil, err
		}
		key := [2]int{row.SavingsDate.Year(), int(row.SavingsDate.Month())}
		byMonth[key] = byMonth[key].Add(amount)
	}
	for cursor := since; !cursor.After(time.Now().UTC()); cursor = cursor.AddDate(0, 1, 0) {
		key := [2]int{cursor.Year(), int(cursor.Month())}
		if amount, ok := byMonth[key]; ok {
			summary.MonthlyTrend = append(summary.MonthlyTrend, report.MonthlySaving{
				Year:   cursor.Year(),
				Month:  cursor.Month(),
				Amount: amount,
			})
		}
	}
	return summary, nil
}

// GroupHealthSummary counts business groups per traffic-light rating
func (r *GormDashboardRepository) GroupHealthSummary(ctx context.Context) (*report.GroupHealthSummary, error) {
	var row struct {
		Green  int64
		Yellow int64
		Red    int64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT SUM(CASE WHEN health = 'green' THEN 1 ELSE 0 END) AS green,
		       SUM(CASE WHEN health = 'yellow' THEN 1 ELSE 0 END) AS yellow,
		       SUM(CASE WHEN health = 'red' THEN 1 ELSE 0 END) AS red
		FROM business_groups`).Scan(&row).Error; err != nil {
		return nil, err
	}
	return &report.GroupHealthSummary{Green: row.Green, Yellow: row.Yellow, Red: row.Red}, nil
}

// TrainingSummary counts trainings and computes attendance rates overall
// and per module
func (r *GormDashboardRepository) TrainingSummary(ctx context.Context) (*report.TrainingSummary, error) {
	summary := &report.TrainingSummary{}

	var totals struct {
		Total       int64
		Completed   int64
		Enrollments int64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT (SELECT COUNT(*) FROM trainings) AS total,
		       (SELECT COUNT(*) FROM trainings WHERE status = 'completed') AS completed,
		       (SELECT COUNT(*) FROM training_enrollments) AS enrollments`).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	summary.TotalTrainings = totals.Total
	summary.CompletedTrainings = totals.Completed
	summary.TotalEnrollments = totals.Enrollments

	var overall struct {
		Marked   int64
		Attended int64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS marked,
		       SUM(CASE WHEN attended THEN 1 ELSE 0 END) AS attended
		FROM training_attendance`).Scan(&overall).Error; err != nil {
		return nil, err
	}
	if overall.Marked > 0 {
		summary.AttendanceRate = float64(overall.Attended) / float64(overall.Marked)
	}

	rows := []struct {
		ModuleID string
		Sessions int64
		Marked   int64
		Attended int64
	}{}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT t.module_id,
		       COUNT(DISTINCT t.id) AS sessions,
		       COUNT(a.id) AS marked,
		       SUM(CASE WHEN a.attended THEN 1 ELSE 0 END) AS attended
		FROM trainings t
		LEFT JOIN training_attendance a ON a.training_id = t.id
		WHERE t.module_id <> ''
		GROUP BY t.module_id
		ORDER BY t.module_id`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		module := report.ModuleAttendance{ModuleID: row.ModuleID, Sessions: row.Sessions}
		if row.Marked > 0 {
			module.AttendanceRate = float64(row.Attended) / float64(row.Marked)
		}
		summary.ByModule = append(summary.ByModule, module)
	}
	return summary, nil
}
