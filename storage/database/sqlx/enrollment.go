package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
)

type EnrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*EnrollmentRepository)(nil)

func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (repo *EnrollmentRepository) FindEnrollment(ctx context.Context, userID, classID int, subjectID *int, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	var enr enrollment.Enrollment
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &enr,
		`SELECT id, user_id, class_id, subject_id, enrollment_type, enrollment_date
		 FROM enrollments WHERE user_id = $1 AND class_id = $2 AND subject_id IS NOT DISTINCT FROM $3`,
		userID, classID, subjectID)
	if err != nil {
		return enrollment.Enrollment{}, trapNoRowsErr(err, enrollment.ErrNotFound, "selecting enrollment")
	}
	return enr, nil
}

func (repo *EnrollmentRepository) CreateEnrollment(ctx context.Context, enr enrollment.Enrollment, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	err := getExec(repo.db, exec).QueryRowxContext(ctx,
		`INSERT INTO enrollments (user_id, class_id, subject_id, enrollment_type, enrollment_date)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		enr.UserID, enr.ClassID, enr.SubjectID, enr.EnrollmentType, enr.EnrollmentDate,
	).Scan(&enr.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "inserting enrollment")
	}
	return enr, nil
}

func (repo *EnrollmentRepository) QueryUserEnrollments(ctx context.Context, userID int, exec ...core.DBExecutor) ([]enrollment.Info, error) {
	query := `
	SELECT e.id, e.user_id, e.class_id, e.subject_id, e.enrollment_type, e.enrollment_date,
	       c.class_name, c.board, s.subject_name
	FROM enrollments e
	JOIN classes c ON c.id = e.class_id
	LEFT JOIN subjects s ON s.id = e.subject_id
	WHERE e.user_id = $1
	ORDER BY e.id`

	var enrollments []enrollment.Info
	if err := sqlx.SelectContext(ctx, getExec(repo.db, exec), &enrollments, query, userID); err != nil {
		return nil, errors.Wrap(err, "selecting enrollments")
	}
	return enrollments, nil
}

func (repo *EnrollmentRepository) GetUserEnrollment(ctx context.Context, id, userID int, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	var enr enrollment.Enrollment
	err := sqlx.GetContext(ctx, getExec(repo.db, exec), &enr,
		`SELECT id, user_id, class_id, subject_id, enrollment_type, enrollment_date
		 FROM enrollments WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return enrollment.Enrollment{}, trapNoRowsErr(err, enrollment.ErrNotFound, "selecting user enrollment")
	}
	return enr, nil
}
