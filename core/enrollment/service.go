package enrollment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
)

var (
	// errors
	ErrNotFound        = core.NewNotFoundError("Enrollment not found")
	ErrAlreadyEnrolled = core.NewConflictError("Already enrolled")
)

type (
	Repository interface {
		// FindEnrollment treats a nil subjectID as a matchable value: it
		// only matches rows whose subject_id is NULL.
		FindEnrollment(ctx context.Context, userID, classID int, subjectID *int, exec ...core.DBExecutor) (Enrollment, error)
		CreateEnrollment(ctx context.Context, enr Enrollment, exec ...core.DBExecutor) (Enrollment, error)
		QueryUserEnrollments(ctx context.Context, userID int, exec ...core.DBExecutor) ([]Info, error)
		// GetUserEnrollment fails with ErrNotFound when the enrollment
		// exists but belongs to another user.
		GetUserEnrollment(ctx context.Context, id, userID int, exec ...core.DBExecutor) (Enrollment, error)
	}

	// Catalog is the slice of the catalog repository the resolution
	// engine needs.
	Catalog interface {
		GetClass(ctx context.Context, id int, exec ...core.DBExecutor) (catalog.Class, error)
		FindClassByBoardAndPrefix(ctx context.Context, board, prefix string, exec ...core.DBExecutor) (catalog.Class, error)
		CreateClass(ctx context.Context, cls catalog.Class, exec ...core.DBExecutor) (catalog.Class, error)
		GetSubjectInClass(ctx context.Context, id, classID int, exec ...core.DBExecutor) (catalog.Subject, error)
		FindSubjectByName(ctx context.Context, classID int, name string, exec ...core.DBExecutor) (catalog.Subject, error)
		CreateSubject(ctx context.Context, sub catalog.Subject, exec ...core.DBExecutor) (catalog.Subject, error)
	}

	Service struct {
		db   core.DB // nil in tests; repos then run non-transactionally
		repo Repository
		cat  Catalog
	}
)

func NewService(db core.DB, repo Repository, cat Catalog) *Service {
	return &Service{db: db, repo: repo, cat: cat}
}

// Enroll resolves the class (and subject, for subject enrollments),
// creating missing catalog rows on first use, and records the
// enrollment. The whole resolution runs in one transaction; the store's
// unique index is the authoritative duplicate signal, the pre-check
// only exists for a friendly error.
func (svc *Service) Enroll(ctx context.Context, userID int, ne NewEnrollment) (Enrollment, error) {
	var exec []core.DBExecutor
	if svc.db != nil {
		tx, err := svc.db.BeginTx(ctx, nil)
		if err != nil {
			return Enrollment{}, errors.Wrap(err, "beginning transaction")
		}
		defer func() { _ = tx.Rollback() }()
		exec = []core.DBExecutor{tx}
	}

	enr, err := svc.enroll(ctx, userID, ne, exec...)
	if err != nil {
		return Enrollment{}, err
	}

	if len(exec) > 0 {
		if err := exec[0].(core.DBTransactor).Commit(); err != nil {
			return Enrollment{}, errors.Wrap(err, "committing enrollment")
		}
	}
	return enr, nil
}

func (svc *Service) enroll(ctx context.Context, userID int, ne NewEnrollment, exec ...core.DBExecutor) (Enrollment, error) {
	cls, err := svc.resolveClass(ctx, ne.ClassSelector, exec...)
	if err != nil {
		return Enrollment{}, err
	}

	var subjectID *int
	if ne.EnrollmentType == TypeSubject {
		sub, err := svc.resolveSubject(ctx, cls.ID, ne, exec...)
		if err != nil {
			return Enrollment{}, err
		}
		subjectID = &sub.ID
	}

	if _, err = svc.repo.FindEnrollment(ctx, userID, cls.ID, subjectID, exec...); err == nil {
		return Enrollment{}, ErrAlreadyEnrolled
	} else if errors.Cause(err) != ErrNotFound {
		return Enrollment{}, errors.Wrap(err, "checking existing enrollment")
	}

	return svc.repo.CreateEnrollment(ctx, Enrollment{
		UserID:         userID,
		ClassID:        cls.ID,
		SubjectID:      subjectID,
		EnrollmentType: ne.EnrollmentType,
		EnrollmentDate: time.Now().UTC(),
	}, exec...)
}

// resolveClass maps a selector to a persisted class. A persisted id is
// verified; a virtual (number, board) pair is matched by name prefix
// and created on first use. The generated name keeps the historical
// "<number>th" form so that prefix matching keeps finding it.
func (svc *Service) resolveClass(ctx context.Context, sel ClassSelector, exec ...core.DBExecutor) (catalog.Class, error) {
	if sel.IsPersisted() {
		cls, err := svc.cat.GetClass(ctx, sel.ID, exec...)
		if err != nil {
			return catalog.Class{}, err
		}
		return cls, nil
	}

	cls, err := svc.cat.FindClassByBoardAndPrefix(ctx, sel.Board, strconv.Itoa(sel.Number), exec...)
	if err == nil {
		return cls, nil
	}
	if errors.Cause(err) != catalog.ErrClassNotFound {
		return catalog.Class{}, errors.Wrap(err, "finding class by board and prefix")
	}

	return svc.cat.CreateClass(ctx, catalog.Class{
		ClassName: fmt.Sprintf("%dth", sel.Number),
		Board:     sel.Board,
	}, exec...)
}

func (svc *Service) resolveSubject(ctx context.Context, classID int, ne NewEnrollment, exec ...core.DBExecutor) (catalog.Subject, error) {
	if ne.SubjectID != nil {
		return svc.cat.GetSubjectInClass(ctx, *ne.SubjectID, classID, exec...)
	}

	sub, err := svc.cat.FindSubjectByName(ctx, classID, ne.SubjectName, exec...)
	if err == nil {
		return sub, nil
	}
	if errors.Cause(err) != catalog.ErrSubjectNotFound {
		return catalog.Subject{}, errors.Wrap(err, "finding subject by name")
	}

	return svc.cat.CreateSubject(ctx, catalog.Subject{ClassID: classID, SubjectName: ne.SubjectName}, exec...)
}

// ListMine returns the caller's enrollments enriched with class/subject
// names. No ordering is guaranteed.
func (svc *Service) ListMine(ctx context.Context, userID int) ([]Info, error) {
	enrollments, err := svc.repo.QueryUserEnrollments(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	if enrollments == nil {
		enrollments = []Info{}
	}
	return enrollments, nil
}
