package sqlxrepos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
)

type CatalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*CatalogRepository)(nil)

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// SearchClasses returns one page of classes plus the unpaginated total.
// The ordering field comes from a whitelist, never from raw user input.
func (repo *CatalogRepository) SearchClasses(
	ctx context.Context, filter catalog.ClassFilter, ord core.DBOrdering, page core.Pagination, exec ...core.DBExecutor,
) ([]catalog.Class, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Search != "" {
		where = ` WHERE class_name ILIKE $1 OR board ILIKE $1`
		args = append(args, "%"+filter.Search+"%")
	}
	ex := getExec(repo.db, exec)

	var total int
	if err := sqlx.GetContext(ctx, ex, &total, `SELECT count(*) FROM classes`+where, args...); err != nil {
		return nil, 0, errors.Wrap(err, "counting classes")
	}

	query := fmt.Sprintf(
		`SELECT id, class_name, board FROM classes%s ORDER BY %s LIMIT %d OFFSET %d`,
		where, ord, page.Limit, page.Offset(),
	)
	var classes []catalog.Class
	if err := sqlx.SelectContext(ctx, ex, &classes, query, args...); err != nil {
		return nil, 0, errors.Wrap(err, "selecting classes")
	}
	return classes, total, nil
}

func (repo *CatalogRepository) GetClass(ctx context.Context, id int, exec ...core.DBExecutor) (catalog.Class, error) {
	var cls catalog.Class
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &cls,
		`SELECT id, class_name, board FROM classes WHERE id = $1`, id)
	if err != nil {
		return catalog.Class{}, trapNoRowsErr(err, catalog.ErrClassNotFound, "selecting class")
	}
	return cls, nil
}

func (repo *CatalogRepository) GetClassByNameAndBoard(ctx context.Context, name, board string, exec ...core.DBExecutor) (catalog.Class, error) {
	var cls catalog.Class
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &cls,
		`SELECT id, class_name, board FROM classes WHERE class_name = $1 AND board = $2`, name, board)
	if err != nil {
		return catalog.Class{}, trapNoRowsErr(err, catalog.ErrClassNotFound, "selecting class by name")
	}
	return cls, nil
}

func (repo *CatalogRepository) FindClassByBoardAndPrefix(ctx context.Context, board, prefix string, exec ...core.DBExecutor) (catalog.Class, error) {
	var cls catalog.Class
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &cls,
		`SELECT id, class_name, board FROM classes WHERE board = $1 AND class_name LIKE $2 ORDER BY id LIMIT 1`,
		board, prefix+"%")
	if err != nil {
		return catalog.Class{}, trapNoRowsErr(err, catalog.ErrClassNotFound, "selecting class by prefix")
	}
	return cls, nil
}

func (repo *CatalogRepository) CreateClass(ctx context.Context, cls catalog.Class, exec ...core.DBExecutor) (catalog.Class, error) {
	err := getExec(repo.db, exec).QueryRowxContext(ctx,
		`INSERT INTO classes (class_name, board) VALUES ($1, $2) RETURNING id`,
		cls.ClassName, cls.Board,
	).Scan(&cls.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Class{}, catalog.ErrClassExists
		}
		return catalog.Class{}, errors.Wrap(err, "inserting class")
	}
	return cls, nil
}

func (repo *CatalogRepository) QuerySubjectsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]catalog.Subject, error) {
	var subjects []catalog.Subject
	err := sqlx.SelectContext(ctx, getExec(repo.db, exec), &subjects,
		`SELECT id, class_id, subject_name FROM subjects WHERE class_id = $1 ORDER BY id`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting subjects")
	}
	return subjects, nil
}

func (repo *CatalogRepository) GetSubject(ctx context.Context, id int, exec ...core.DBExecutor) (catalog.Subject, error) {
	var sub catalog.Subject
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &sub,
		`SELECT id, class_id, subject_name FROM subjects WHERE id = $1`, id)
	if err != nil {
		return catalog.Subject{}, trapNoRowsErr(err, catalog.ErrSubjectNotFound, "selecting subject")
	}
	return sub, nil
}

func (repo *CatalogRepository) GetSubjectInClass(ctx context.Context, id, classID int, exec ...core.DBExecutor) (catalog.Subject, error) {
	var sub catalog.Subject
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &sub,
		`SELECT id, class_id, subject_name FROM subjects WHERE id = $1 AND class_id = $2`, id, classID)
	if err != nil {
		return catalog.Subject{}, trapNoRowsErr(err, catalog.ErrSubjectNotFound, "selecting subject in class")
	}
	return sub, nil
}

func (repo *CatalogRepository) FindSubjectByName(ctx context.Context, classID int, name string, exec ...core.DBExecutor) (catalog.Subject, error) {
	var sub catalog.Subject
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &sub,
		`SELECT id, class_id, subject_name FROM subjects WHERE class_id = $1 AND lower(subject_name) = lower($2)`,
		classID, name)
	if err != nil {
		return catalog.Subject{}, trapNoRowsErr(err, catalog.ErrSubjectNotFound, "selecting subject by name")
	}
	return sub, nil
}

func (repo *CatalogRepository) CreateSubject(ctx context.Context, sub catalog.Subject, exec ...core.DBExecutor) (catalog.Subject, error) {
	err := getExec(repo.db, exec).QueryRowxContext(ctx,
		`INSERT INTO subjects (class_id, subject_name) VALUES ($1, $2) RETURNING id`,
		sub.ClassID, sub.SubjectName,
	).Scan(&sub.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Subject{}, catalog.ErrSubjectExists
		}
		return catalog.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return sub, nil
}

func (repo *CatalogRepository) QueryTestsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]catalog.Test, error) {
	var tests []catalog.Test
	err := sqlx.SelectContext(ctx, getExec(repo.db, exec), &tests,
		`SELECT id, subject_id, test_type, total_marks FROM tests WHERE subject_id = $1 ORDER BY id`, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, "selecting tests")
	}
	return tests, nil
}

func (repo *CatalogRepository) GetTest(ctx context.Context, id int, exec ...core.DBExecutor) (catalog.Test, error) {
	var tst catalog.Test
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &tst,
		`SELECT id, subject_id, test_type, total_marks FROM tests WHERE id = $1`, id)
	if err != nil {
		return catalog.Test{}, trapNoRowsErr(err, catalog.ErrTestNotFound, "selecting test")
	}
	return tst, nil
}

func (repo *CatalogRepository) FindTestByType(ctx context.Context, subjectID int, testType string, exec ...core.DBExecutor) (catalog.Test, error) {
	var tst catalog.Test
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &tst,
		`SELECT id, subject_id, test_type, total_marks FROM tests WHERE subject_id = $1 AND test_type = $2`,
		subjectID, testType)
	if err != nil {
		return catalog.Test{}, trapNoRowsErr(err, catalog.ErrTestNotFound, "selecting test by type")
	}
	return tst, nil
}

func (repo *CatalogRepository) CreateTest(ctx context.Context, tst catalog.Test, exec ...core.DBExecutor) (catalog.Test, error) {
	err := getExec(repo.db, exec).QueryRowxContext(ctx,
		`INSERT INTO tests (subject_id, test_type, total_marks) VALUES ($1, $2, $3) RETURNING id`,
		tst.SubjectID, tst.TestType, tst.TotalMarks,
	).Scan(&tst.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Test{}, catalog.ErrTestExists
		}
		return catalog.Test{}, errors.Wrap(err, "inserting test")
	}
	return tst, nil
}

func (repo *CatalogRepository) QueryFees(ctx context.Context, exec ...core.DBExecutor) ([]catalog.FeeInfo, error) {
	query := `
	SELECT f.id, f.class_id, f.subject_id, f.fee_type, f.fee_amount,
	       c.class_name, s.subject_name
	FROM fees f
	JOIN classes c ON c.id = f.class_id
	LEFT JOIN subjects s ON s.id = f.subject_id
	ORDER BY f.id`

	var fees []catalog.FeeInfo
	if err := sqlx.SelectContext(ctx, getExec(repo.db, exec), &fees, query); err != nil {
		return nil, errors.Wrap(err, "selecting fees")
	}
	return fees, nil
}

// FindFee matches subject_id with IS NOT DISTINCT FROM so that a nil
// subjectID only matches class-level rows.
func (repo *CatalogRepository) FindFee(ctx context.Context, classID int, subjectID *int, feeType string, exec ...core.DBExecutor) (catalog.Fee, error) {
	var fee catalog.Fee
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &fee,
		`SELECT id, class_id, subject_id, fee_type, fee_amount
		 FROM fees WHERE class_id = $1 AND subject_id IS NOT DISTINCT FROM $2 AND fee_type = $3`,
		classID, subjectID, feeType)
	if err != nil {
		return catalog.Fee{}, trapNoRowsErr(err, catalog.ErrFeeNotFound, "selecting fee")
	}
	return fee, nil
}

func (repo *CatalogRepository) CreateFee(ctx context.Context, fee catalog.Fee, exec ...core.DBExecutor) (catalog.Fee, error) {
	err := getExec(repo.db, exec).QueryRowxContext(ctx,
		`INSERT INTO fees (class_id, subject_id, fee_type, fee_amount) VALUES ($1, $2, $3, $4) RETURNING id`,
		fee.ClassID, fee.SubjectID, fee.FeeType, fee.FeeAmount,
	).Scan(&fee.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Fee{}, catalog.ErrFeeExists
		}
		return catalog.Fee{}, errors.Wrap(err, "inserting fee")
	}
	return fee, nil
}
