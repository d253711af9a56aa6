package inmemdb

import (
	"context"
	"sort"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/enrollment"
)

type enrollmentRepository struct {
	db *DB
}

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) FindEnrollment(ctx context.Context, userID, classID int, subjectID *int, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	repo.db.enrollment.RLock()
	defer repo.db.enrollment.RUnlock()

	for _, enr := range repo.db.enrollment.rows {
		if enr.UserID == userID && enr.ClassID == classID && sameSubject(enr.SubjectID, subjectID) {
			return *enr, nil
		}
	}
	return enrollment.Enrollment{}, enrollment.ErrNotFound
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, enr enrollment.Enrollment, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	repo.db.enrollment.Lock()
	defer repo.db.enrollment.Unlock()

	for _, e := range repo.db.enrollment.rows {
		if e.UserID == enr.UserID && e.ClassID == enr.ClassID && sameSubject(e.SubjectID, enr.SubjectID) {
			return enrollment.Enrollment{}, enrollment.ErrAlreadyEnrolled
		}
	}

	enr.ID = repo.db.enrollment.nextID()
	repo.db.enrollment.rows[enr.ID] = &enr
	return enr, nil
}

func (repo *enrollmentRepository) QueryUserEnrollments(ctx context.Context, userID int, exec ...core.DBExecutor) ([]enrollment.Info, error) {
	repo.db.enrollment.RLock()
	defer repo.db.enrollment.RUnlock()

	var infos []enrollment.Info
	for _, enr := range repo.db.enrollment.rows {
		if enr.UserID != userID {
			continue
		}
		info := enrollment.Info{Enrollment: *enr}
		if cls, ok := repo.db.class.rows[enr.ClassID]; ok {
			info.ClassName = cls.ClassName
			info.Board = cls.Board
		}
		if enr.SubjectID != nil {
			if sub, ok := repo.db.subject.rows[*enr.SubjectID]; ok {
				name := sub.SubjectName
				info.SubjectName = &name
			}
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

func (repo *enrollmentRepository) GetUserEnrollment(ctx context.Context, id, userID int, exec ...core.DBExecutor) (enrollment.Enrollment, error) {
	repo.db.enrollment.RLock()
	defer repo.db.enrollment.RUnlock()

	if enr, ok := repo.db.enrollment.rows[id]; ok && enr.UserID == userID {
		return *enr, nil
	}
	return enrollment.Enrollment{}, enrollment.ErrNotFound
}
