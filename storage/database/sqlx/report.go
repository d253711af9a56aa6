package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/report"
)

type ReportRepository struct {
	db *sqlx.DB
}

var _ report.Repository = (*ReportRepository)(nil)

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// GetStats gathers all dashboard aggregates in one round trip.
func (repo *ReportRepository) GetStats(ctx context.Context, exec ...core.DBExecutor) (report.Stats, error) {
	query := `
	SELECT
	    (SELECT count(*) FROM users)                                  AS total_users,
	    (SELECT count(*) FROM users WHERE role = 'student')           AS total_students,
	    (SELECT count(*) FROM classes)                                AS total_classes,
	    (SELECT count(*) FROM subjects)                               AS total_subjects,
	    (SELECT count(*) FROM tests)                                  AS total_tests,
	    (SELECT count(*) FROM enrollments)                            AS total_enrollments,
	    (SELECT coalesce(sum(amount_paid), 0) FROM payments
	     WHERE payment_status = 'Completed')                          AS total_revenue`

	var row struct {
		TotalUsers       int     `db:"total_users"`
		TotalStudents    int     `db:"total_students"`
		TotalClasses     int     `db:"total_classes"`
		TotalSubjects    int     `db:"total_subjects"`
		TotalTests       int     `db:"total_tests"`
		TotalEnrollments int     `db:"total_enrollments"`
		TotalRevenue     float64 `db:"total_revenue"`
	}
	if err := sqlx.GetContext(ctx, getExec(repo.db, exec), &row, query); err != nil {
		return report.Stats{}, errors.Wrap(err, "selecting stats")
	}
	return report.Stats{
		TotalUsers:       row.TotalUsers,
		TotalStudents:    row.TotalStudents,
		TotalClasses:     row.TotalClasses,
		TotalSubjects:    row.TotalSubjects,
		TotalTests:       row.TotalTests,
		TotalEnrollments: row.TotalEnrollments,
		TotalRevenue:     row.TotalRevenue,
	}, nil
}
