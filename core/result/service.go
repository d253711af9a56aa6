package result

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
)

var (
	// errors
	ErrNotFound         = core.NewNotFoundError("Result not found")
	ErrAlreadySubmitted = core.NewConflictError("Result already submitted")

	errMarksExceedTotal = errors.New("Marks exceed total marks")
)

type (
	Repository interface {
		GetResult(ctx context.Context, userID, testID int, exec ...core.DBExecutor) (Result, error)
		CreateResult(ctx context.Context, res Result, exec ...core.DBExecutor) (Result, error)
		QueryUserResults(ctx context.Context, userID int, exec ...core.DBExecutor) ([]Info, error)
	}

	// Tests is the slice of the catalog repository result submission needs.
	Tests interface {
		GetTest(ctx context.Context, id int, exec ...core.DBExecutor) (catalog.Test, error)
	}

	Service struct {
		db    core.DB
		repo  Repository
		tests Tests
	}
)

func NewService(db core.DB, repo Repository, tests Tests) *Service {
	return &Service{db: db, repo: repo, tests: tests}
}

// Submit records the caller's marks for a test and derives the
// percentage (marks/total*100, 2 decimal places). One result per
// (user, test); the store's unique index backs the pre-check.
func (svc *Service) Submit(ctx context.Context, userID int, nr NewResult) (Result, error) {
	var exec []core.DBExecutor
	if svc.db != nil {
		tx, err := svc.db.BeginTx(ctx, nil)
		if err != nil {
			return Result{}, errors.Wrap(err, "beginning transaction")
		}
		defer func() { _ = tx.Rollback() }()
		exec = []core.DBExecutor{tx}
	}

	tst, err := svc.tests.GetTest(ctx, nr.TestID, exec...)
	if err != nil {
		return Result{}, err
	}

	marks := *nr.MarksObtained
	if marks > tst.TotalMarks {
		return Result{}, core.NewValidationError(errMarksExceedTotal,
			core.FieldError{Field: "marks_obtained", Error: errMarksExceedTotal.Error()})
	}

	if _, err = svc.repo.GetResult(ctx, userID, nr.TestID, exec...); err == nil {
		return Result{}, ErrAlreadySubmitted
	} else if errors.Cause(err) != ErrNotFound {
		return Result{}, errors.Wrap(err, "checking existing result")
	}

	res, err := svc.repo.CreateResult(ctx, Result{
		UserID:        userID,
		TestID:        nr.TestID,
		MarksObtained: marks,
		Percentage:    Percentage(marks, tst.TotalMarks),
		SubmittedAt:   time.Now().UTC(),
	}, exec...)
	if err != nil {
		return Result{}, err
	}

	if len(exec) > 0 {
		if err := exec[0].(core.DBTransactor).Commit(); err != nil {
			return Result{}, errors.Wrap(err, "committing result")
		}
	}
	return res, nil
}

// Percentage formats marks/total*100 with 2 decimal places.
func Percentage(marks, total int) string {
	return fmt.Sprintf("%.2f", float64(marks)/float64(total)*100)
}

func (svc *Service) ListMine(ctx context.Context, userID int) ([]Info, error) {
	results, err := svc.repo.QueryUserResults(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying results")
	}
	if results == nil {
		results = []Info{}
	}
	return results, nil
}
