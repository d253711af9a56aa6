package inmemdb

import (
	"context"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
	"github.com/Sagar-Ghorade/SmartEdu/core/report"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

type reportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) report.Repository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) GetStats(ctx context.Context, exec ...core.DBExecutor) (report.Stats, error) {
	stats := report.Stats{}

	repo.db.user.RLock()
	stats.TotalUsers = len(repo.db.user.rows)
	for _, usr := range repo.db.user.rows {
		if usr.Role == user.RoleStudent {
			stats.TotalStudents++
		}
	}
	repo.db.user.RUnlock()

	repo.db.class.RLock()
	stats.TotalClasses = len(repo.db.class.rows)
	repo.db.class.RUnlock()

	repo.db.subject.RLock()
	stats.TotalSubjects = len(repo.db.subject.rows)
	repo.db.subject.RUnlock()

	repo.db.test.RLock()
	stats.TotalTests = len(repo.db.test.rows)
	repo.db.test.RUnlock()

	repo.db.enrollment.RLock()
	stats.TotalEnrollments = len(repo.db.enrollment.rows)
	repo.db.enrollment.RUnlock()

	repo.db.payment.RLock()
	for _, pmt := range repo.db.payment.rows {
		if pmt.PaymentStatus == payment.StatusCompleted {
			stats.TotalRevenue += pmt.AmountPaid
		}
	}
	repo.db.payment.RUnlock()

	return stats, nil
}
