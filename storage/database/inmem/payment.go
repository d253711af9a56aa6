package inmemdb

import (
	"context"
	"sort"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
)

type paymentRepository struct {
	db *DB
}

func NewPaymentRepository(db *DB) payment.Repository {
	return &paymentRepository{db: db}
}

func (repo *paymentRepository) GetPaymentByEnrollment(ctx context.Context, enrollmentID int, exec ...core.DBExecutor) (payment.Payment, error) {
	repo.db.payment.RLock()
	defer repo.db.payment.RUnlock()

	for _, pmt := range repo.db.payment.rows {
		if pmt.EnrollmentID == enrollmentID {
			return *pmt, nil
		}
	}
	return payment.Payment{}, payment.ErrNotFound
}

func (repo *paymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment, exec ...core.DBExecutor) (payment.Payment, error) {
	repo.db.payment.Lock()
	defer repo.db.payment.Unlock()

	for _, p := range repo.db.payment.rows {
		if p.EnrollmentID == pmt.EnrollmentID {
			return payment.Payment{}, payment.ErrAlreadyPaid
		}
	}

	pmt.ID = repo.db.payment.nextID()
	repo.db.payment.rows[pmt.ID] = &pmt
	return pmt, nil
}

func (repo *paymentRepository) QueryUserPayments(ctx context.Context, userID int, exec ...core.DBExecutor) ([]payment.Info, error) {
	repo.db.payment.RLock()
	defer repo.db.payment.RUnlock()

	var infos []payment.Info
	for _, pmt := range repo.db.payment.rows {
		if pmt.UserID != userID {
			continue
		}
		info := payment.Info{Payment: *pmt}
		if enr, ok := repo.db.enrollment.rows[pmt.EnrollmentID]; ok {
			info.ClassID = enr.ClassID
			info.SubjectID = enr.SubjectID
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}
