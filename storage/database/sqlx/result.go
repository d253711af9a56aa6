package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/result"
)

type ResultRepository struct {
	db *sqlx.DB
}

var _ result.Repository = (*ResultRepository)(nil)

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (repo *ResultRepository) GetResult(ctx context.Context, userID, testID int, exec ...core.DBExecutor) (result.Result, error) {
	var res result.Result
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &res,
		`SELECT id, user_id, test_id, marks_obtained, percentage, submitted_at
		 FROM results WHERE user_id = $1 AND test_id = $2`, userID, testID)
	if err != nil {
		return result.Result{}, trapNoRowsErr(err, result.ErrNotFound, "selecting result")
	}
	return res, nil
}

func (repo *ResultRepository) CreateResult(ctx context.Context, res result.Result, exec ...core.DBExecutor) (result.Result, error) {
	err := getExec(repo.db, exec).QueryRowxContext(ctx,
		`INSERT INTO results (user_id, test_id, marks_obtained, percentage, submitted_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		res.UserID, res.TestID, res.MarksObtained, res.Percentage, res.SubmittedAt,
	).Scan(&res.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return result.Result{}, result.ErrAlreadySubmitted
		}
		return result.Result{}, errors.Wrap(err, "inserting result")
	}
	return res, nil
}

func (repo *ResultRepository) QueryUserResults(ctx context.Context, userID int, exec ...core.DBExecutor) ([]result.Info, error) {
	query := `
	SELECT r.id, r.user_id, r.test_id, r.marks_obtained, r.percentage, r.submitted_at,
	       t.test_type, t.total_marks
	FROM results r
	JOIN tests t ON t.id = r.test_id
	WHERE r.user_id = $1
	ORDER BY r.id`

	var results []result.Info
	if err := sqlx.SelectContext(ctx, getExec(repo.db, exec), &results, query, userID); err != nil {
		return nil, errors.Wrap(err, "selecting results")
	}
	return results, nil
}
