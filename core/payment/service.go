package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
)

var (
	// errors
	ErrNotFound    = core.NewNotFoundError("Payment not found")
	ErrAlreadyPaid = core.NewConflictError("Payment already completed")
)

type (
	Repository interface {
		GetPaymentByEnrollment(ctx context.Context, enrollmentID int, exec ...core.DBExecutor) (Payment, error)
		CreatePayment(ctx context.Context, pmt Payment, exec ...core.DBExecutor) (Payment, error)
		QueryUserPayments(ctx context.Context, userID int, exec ...core.DBExecutor) ([]Info, error)
	}

	Service struct {
		db     core.DB
		repo   Repository
		enroll enrollment.Repository
	}
)

func NewService(db core.DB, repo Repository, enrollRepo enrollment.Repository) *Service {
	return &Service{db: db, repo: repo, enroll: enrollRepo}
}

// Make records a payment against one of the caller's enrollments.
// An enrollment owned by someone else is NotFound, never Forbidden: the
// caller learns nothing about other users' enrollments. At most one
// payment per enrollment; the unique constraint backs the pre-check.
func (svc *Service) Make(ctx context.Context, userID int, np NewPayment) (Payment, error) {
	var exec []core.DBExecutor
	if svc.db != nil {
		tx, err := svc.db.BeginTx(ctx, nil)
		if err != nil {
			return Payment{}, errors.Wrap(err, "beginning transaction")
		}
		defer func() { _ = tx.Rollback() }()
		exec = []core.DBExecutor{tx}
	}

	if _, err := svc.enroll.GetUserEnrollment(ctx, np.EnrollmentID, userID, exec...); err != nil {
		if errors.Cause(err) == enrollment.ErrNotFound {
			return Payment{}, enrollment.ErrNotFound
		}
		return Payment{}, errors.Wrap(err, "checking enrollment ownership")
	}

	if _, err := svc.repo.GetPaymentByEnrollment(ctx, np.EnrollmentID, exec...); err == nil {
		return Payment{}, ErrAlreadyPaid
	} else if errors.Cause(err) != ErrNotFound {
		return Payment{}, errors.Wrap(err, "checking existing payment")
	}

	pmt, err := svc.repo.CreatePayment(ctx, Payment{
		UserID:        userID,
		EnrollmentID:  np.EnrollmentID,
		AmountPaid:    np.AmountPaid,
		PaymentStatus: StatusCompleted,
		Reference:     uuid.New().String(),
		PaymentDate:   time.Now().UTC(),
	}, exec...)
	if err != nil {
		return Payment{}, err
	}

	if len(exec) > 0 {
		if err := exec[0].(core.DBTransactor).Commit(); err != nil {
			return Payment{}, errors.Wrap(err, "committing payment")
		}
	}
	return pmt, nil
}

func (svc *Service) ListMine(ctx context.Context, userID int) ([]Info, error) {
	payments, err := svc.repo.QueryUserPayments(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []Info{}
	}
	return payments, nil
}
