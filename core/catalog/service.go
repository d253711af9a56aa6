package catalog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

var (
	// errors
	ErrClassNotFound   = core.NewNotFoundError("Class not found")
	ErrSubjectNotFound = core.NewNotFoundError("Subject not found")
	ErrTestNotFound    = core.NewNotFoundError("Test not found")
	ErrFeeNotFound     = core.NewNotFoundError("Fee not found")
	ErrClassExists     = core.NewConflictError("Class already exists")
	ErrSubjectExists   = core.NewConflictError("Subject already exists in this class")
	ErrTestExists      = core.NewConflictError("Test type already exists for this subject")
	ErrFeeExists       = core.NewConflictError("Fee already defined for this configuration")
)

type (
	Repository interface {
		SearchClasses(ctx context.Context, filter ClassFilter, ord core.DBOrdering, page core.Pagination, exec ...core.DBExecutor) ([]Class, int, error)
		GetClass(ctx context.Context, id int, exec ...core.DBExecutor) (Class, error)
		GetClassByNameAndBoard(ctx context.Context, name, board string, exec ...core.DBExecutor) (Class, error)
		// FindClassByBoardAndPrefix matches board exactly and class_name by
		// string prefix ("6" matches "6th").
		FindClassByBoardAndPrefix(ctx context.Context, board, prefix string, exec ...core.DBExecutor) (Class, error)
		CreateClass(ctx context.Context, cls Class, exec ...core.DBExecutor) (Class, error)

		QuerySubjectsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]Subject, error)
		GetSubject(ctx context.Context, id int, exec ...core.DBExecutor) (Subject, error)
		GetSubjectInClass(ctx context.Context, id, classID int, exec ...core.DBExecutor) (Subject, error)
		FindSubjectByName(ctx context.Context, classID int, name string, exec ...core.DBExecutor) (Subject, error)
		CreateSubject(ctx context.Context, sub Subject, exec ...core.DBExecutor) (Subject, error)

		QueryTestsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]Test, error)
		GetTest(ctx context.Context, id int, exec ...core.DBExecutor) (Test, error)
		FindTestByType(ctx context.Context, subjectID int, testType string, exec ...core.DBExecutor) (Test, error)
		CreateTest(ctx context.Context, tst Test, exec ...core.DBExecutor) (Test, error)

		QueryFees(ctx context.Context, exec ...core.DBExecutor) ([]FeeInfo, error)
		FindFee(ctx context.Context, classID int, subjectID *int, feeType string, exec ...core.DBExecutor) (Fee, error)
		CreateFee(ctx context.Context, fee Fee, exec ...core.DBExecutor) (Fee, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListClasses returns one page of classes matching the filter, plus
// pagination metadata.
func (svc *Service) ListClasses(ctx context.Context, filter ClassFilter, page core.Pagination) (core.Paginated, error) {
	filter.Clean()
	page.Clean()

	classes, total, err := svc.repo.SearchClasses(ctx, filter, filter.Ordering(), page)
	if err != nil {
		return core.Paginated{}, errors.Wrap(err, "searching classes")
	}
	if classes == nil {
		classes = []Class{}
	}
	return core.NewPaginated(page, total, classes), nil
}

func (svc *Service) AddClass(ctx context.Context, nc NewClass) (Class, error) {
	if _, err := svc.repo.GetClassByNameAndBoard(ctx, nc.ClassName, nc.Board); err == nil {
		return Class{}, ErrClassExists
	} else if errors.Cause(err) != ErrClassNotFound {
		return Class{}, errors.Wrap(err, "checking class uniqueness")
	}
	return svc.repo.CreateClass(ctx, Class{ClassName: nc.ClassName, Board: nc.Board})
}

func (svc *Service) GetClass(ctx context.Context, id int) (Class, error) {
	return svc.repo.GetClass(ctx, id)
}

func (svc *Service) ListSubjects(ctx context.Context, classID int) ([]Subject, error) {
	subjects, err := svc.repo.QuerySubjectsByClass(ctx, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []Subject{}
	}
	return subjects, nil
}

func (svc *Service) AddSubject(ctx context.Context, ns NewSubject) (Subject, error) {
	if _, err := svc.repo.GetClass(ctx, ns.ClassID); err != nil {
		return Subject{}, err
	}
	if _, err := svc.repo.FindSubjectByName(ctx, ns.ClassID, ns.SubjectName); err == nil {
		return Subject{}, ErrSubjectExists
	} else if errors.Cause(err) != ErrSubjectNotFound {
		return Subject{}, errors.Wrap(err, "checking subject uniqueness")
	}
	return svc.repo.CreateSubject(ctx, Subject{ClassID: ns.ClassID, SubjectName: ns.SubjectName})
}

func (svc *Service) ListTests(ctx context.Context, subjectID int) ([]Test, error) {
	tests, err := svc.repo.QueryTestsBySubject(ctx, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, "querying tests")
	}
	if tests == nil {
		tests = []Test{}
	}
	return tests, nil
}

func (svc *Service) AddTest(ctx context.Context, nt NewTest) (Test, error) {
	if _, err := svc.repo.GetSubject(ctx, nt.SubjectID); err != nil {
		return Test{}, err
	}
	if _, err := svc.repo.FindTestByType(ctx, nt.SubjectID, nt.TestType); err == nil {
		return Test{}, ErrTestExists
	} else if errors.Cause(err) != ErrTestNotFound {
		return Test{}, errors.Wrap(err, "checking test uniqueness")
	}
	return svc.repo.CreateTest(ctx, Test{SubjectID: nt.SubjectID, TestType: nt.TestType, TotalMarks: nt.TotalMarks})
}

func (svc *Service) ListFees(ctx context.Context) ([]FeeInfo, error) {
	fees, err := svc.repo.QueryFees(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying fees")
	}
	if fees == nil {
		fees = []FeeInfo{}
	}
	return fees, nil
}

func (svc *Service) AddFee(ctx context.Context, nf NewFee) (Fee, error) {
	if _, err := svc.repo.GetClass(ctx, nf.ClassID); err != nil {
		return Fee{}, err
	}
	if nf.SubjectID != nil {
		if _, err := svc.repo.GetSubjectInClass(ctx, *nf.SubjectID, nf.ClassID); err != nil {
			return Fee{}, err
		}
	}
	if _, err := svc.repo.FindFee(ctx, nf.ClassID, nf.SubjectID, nf.FeeType); err == nil {
		return Fee{}, ErrFeeExists
	} else if !core.IsNotFound(err) {
		return Fee{}, errors.Wrap(err, "checking fee uniqueness")
	}
	return svc.repo.CreateFee(ctx, Fee{
		ClassID:   nf.ClassID,
		SubjectID: nf.SubjectID,
		FeeType:   nf.FeeType,
		FeeAmount: nf.FeeAmount,
	})
}
