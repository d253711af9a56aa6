package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/payment"
)

type PaymentRepository struct {
	db *sqlx.DB
}

var _ payment.Repository = (*PaymentRepository)(nil)

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (repo *PaymentRepository) GetPaymentByEnrollment(ctx context.Context, enrollmentID int, exec ...core.DBExecutor) (payment.Payment, error) {
	var pmt payment.Payment
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &pmt,
		`SELECT id, user_id, enrollment_id, amount_paid, payment_status, reference, payment_date
		 FROM payments WHERE enrollment_id = $1`, enrollmentID)
	if err != nil {
		return payment.Payment{}, trapNoRowsErr(err, payment.ErrNotFound, "selecting payment")
	}
	return pmt, nil
}

func (repo *PaymentRepository) CreatePayment(ctx context.Context, pmt payment.Payment, exec ...core.DBExecutor) (payment.Payment, error) {
	err := getExec(repo.db, exec).QueryRowxContext(ctx,
		`INSERT INTO payments (user_id, enrollment_id, amount_paid, payment_status, reference, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		pmt.UserID, pmt.EnrollmentID, pmt.AmountPaid, pmt.PaymentStatus, pmt.Reference, pmt.PaymentDate,
	).Scan(&pmt.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return payment.Payment{}, payment.ErrAlreadyPaid
		}
		return payment.Payment{}, errors.Wrap(err, "inserting payment")
	}
	return pmt, nil
}

func (repo *PaymentRepository) QueryUserPayments(ctx context.Context, userID int, exec ...core.DBExecutor) ([]payment.Info, error) {
	query := `
	SELECT p.id, p.user_id, p.enrollment_id, p.amount_paid, p.payment_status, p.reference, p.payment_date,
	       e.class_id, e.subject_id
	FROM payments p
	JOIN enrollments e ON e.id = p.enrollment_id
	WHERE p.user_id = $1
	ORDER BY p.id`

	var payments []payment.Info
	if err := sqlx.SelectContext(ctx, getExec(repo.db, exec), &payments, query, userID); err != nil {
		return nil, errors.Wrap(err, "selecting payments")
	}
	return payments, nil
}
