package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/catalog"
)

type catalogRepository struct {
	db *DB
}

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) queryClasses() []catalog.Class {
	classes := make([]catalog.Class, 0, len(repo.db.class.rows))
	for _, cls := range repo.db.class.rows {
		classes = append(classes, *cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes
}

func (repo *catalogRepository) SearchClasses(
	ctx context.Context, filter catalog.ClassFilter, ord core.DBOrdering, page core.Pagination, exec ...core.DBExecutor,
) ([]catalog.Class, int, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()

	matched := make([]catalog.Class, 0, len(repo.db.class.rows))
	search := strings.ToLower(filter.Search)
	for _, cls := range repo.queryClasses() {
		if search == "" ||
			strings.Contains(strings.ToLower(cls.ClassName), search) ||
			strings.Contains(strings.ToLower(cls.Board), search) {
			matched = append(matched, cls)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		var less bool
		switch ord.Field {
		case "class_name":
			less = matched[i].ClassName < matched[j].ClassName
		case "board":
			less = matched[i].Board < matched[j].Board
		default:
			less = matched[i].ID < matched[j].ID
		}
		if ord.Ascending {
			return less
		}
		return !less
	})

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (repo *catalogRepository) GetClass(ctx context.Context, id int, exec ...core.DBExecutor) (catalog.Class, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()

	if cls, ok := repo.db.class.rows[id]; ok {
		return *cls, nil
	}
	return catalog.Class{}, catalog.ErrClassNotFound
}

func (repo *catalogRepository) GetClassByNameAndBoard(ctx context.Context, name, board string, exec ...core.DBExecutor) (catalog.Class, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()

	for _, cls := range repo.queryClasses() {
		if cls.ClassName == name && cls.Board == board {
			return cls, nil
		}
	}
	return catalog.Class{}, catalog.ErrClassNotFound
}

func (repo *catalogRepository) FindClassByBoardAndPrefix(ctx context.Context, board, prefix string, exec ...core.DBExecutor) (catalog.Class, error) {
	repo.db.class.RLock()
	defer repo.db.class.RUnlock()

	for _, cls := range repo.queryClasses() {
		if cls.Board == board && strings.HasPrefix(cls.ClassName, prefix) {
			return cls, nil
		}
	}
	return catalog.Class{}, catalog.ErrClassNotFound
}

func (repo *catalogRepository) CreateClass(ctx context.Context, cls catalog.Class, exec ...core.DBExecutor) (catalog.Class, error) {
	repo.db.class.Lock()
	defer repo.db.class.Unlock()

	for _, c := range repo.db.class.rows {
		if c.ClassName == cls.ClassName && c.Board == cls.Board {
			return catalog.Class{}, catalog.ErrClassExists
		}
	}

	cls.ID = repo.db.class.nextID()
	repo.db.class.rows[cls.ID] = &cls
	return cls, nil
}

func (repo *catalogRepository) QuerySubjectsByClass(ctx context.Context, classID int, exec ...core.DBExecutor) ([]catalog.Subject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	var subjects []catalog.Subject
	for _, sub := range repo.db.subject.rows {
		if sub.ClassID == classID {
			subjects = append(subjects, *sub)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo *catalogRepository) GetSubject(ctx context.Context, id int, exec ...core.DBExecutor) (catalog.Subject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	if sub, ok := repo.db.subject.rows[id]; ok {
		return *sub, nil
	}
	return catalog.Subject{}, catalog.ErrSubjectNotFound
}

func (repo *catalogRepository) GetSubjectInClass(ctx context.Context, id, classID int, exec ...core.DBExecutor) (catalog.Subject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	if sub, ok := repo.db.subject.rows[id]; ok && sub.ClassID == classID {
		return *sub, nil
	}
	return catalog.Subject{}, catalog.ErrSubjectNotFound
}

func (repo *catalogRepository) FindSubjectByName(ctx context.Context, classID int, name string, exec ...core.DBExecutor) (catalog.Subject, error) {
	repo.db.subject.RLock()
	defer repo.db.subject.RUnlock()

	for _, sub := range repo.db.subject.rows {
		if sub.ClassID == classID && strings.EqualFold(sub.SubjectName, name) {
			return *sub, nil
		}
	}
	return catalog.Subject{}, catalog.ErrSubjectNotFound
}

func (repo *catalogRepository) CreateSubject(ctx context.Context, sub catalog.Subject, exec ...core.DBExecutor) (catalog.Subject, error) {
	repo.db.subject.Lock()
	defer repo.db.subject.Unlock()

	for _, s := range repo.db.subject.rows {
		if s.ClassID == sub.ClassID && s.SubjectName == sub.SubjectName {
			return catalog.Subject{}, catalog.ErrSubjectExists
		}
	}

	sub.ID = repo.db.subject.nextID()
	repo.db.subject.rows[sub.ID] = &sub
	return sub, nil
}

func (repo *catalogRepository) QueryTestsBySubject(ctx context.Context, subjectID int, exec ...core.DBExecutor) ([]catalog.Test, error) {
	repo.db.test.RLock()
	defer repo.db.test.RUnlock()

	var tests []catalog.Test
	for _, tst := range repo.db.test.rows {
		if tst.SubjectID == subjectID {
			tests = append(tests, *tst)
		}
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests, nil
}

func (repo *catalogRepository) GetTest(ctx context.Context, id int, exec ...core.DBExecutor) (catalog.Test, error) {
	repo.db.test.RLock()
	defer repo.db.test.RUnlock()

	if tst, ok := repo.db.test.rows[id]; ok {
		return *tst, nil
	}
	return catalog.Test{}, catalog.ErrTestNotFound
}

func (repo *catalogRepository) FindTestByType(ctx context.Context, subjectID int, testType string, exec ...core.DBExecutor) (catalog.Test, error) {
	repo.db.test.RLock()
	defer repo.db.test.RUnlock()

	for _, tst := range repo.db.test.rows {
		if tst.SubjectID == subjectID && tst.TestType == testType {
			return *tst, nil
		}
	}
	return catalog.Test{}, catalog.ErrTestNotFound
}

func (repo *catalogRepository) CreateTest(ctx context.Context, tst catalog.Test, exec ...core.DBExecutor) (catalog.Test, error) {
	repo.db.test.Lock()
	defer repo.db.test.Unlock()

	for _, t := range repo.db.test.rows {
		if t.SubjectID == tst.SubjectID && t.TestType == tst.TestType {
			return catalog.Test{}, catalog.ErrTestExists
		}
	}

	tst.ID = repo.db.test.nextID()
	repo.db.test.rows[tst.ID] = &tst
	return tst, nil
}

func (repo *catalogRepository) QueryFees(ctx context.Context, exec ...core.DBExecutor) ([]catalog.FeeInfo, error) {
	repo.db.fee.RLock()
	defer repo.db.fee.RUnlock()

	var fees []catalog.FeeInfo
	for _, fee := range repo.db.fee.rows {
		info := catalog.FeeInfo{Fee: *fee}
		if cls, ok := repo.db.class.rows[fee.ClassID]; ok {
			info.ClassName = cls.ClassName
		}
		if fee.SubjectID != nil {
			if sub, ok := repo.db.subject.rows[*fee.SubjectID]; ok {
				name := sub.SubjectName
				info.SubjectName = &name
			}
		}
		fees = append(fees, info)
	}
	sort.Slice(fees, func(i, j int) bool { return fees[i].ID < fees[j].ID })
	return fees, nil
}

func (repo *catalogRepository) FindFee(ctx context.Context, classID int, subjectID *int, feeType string, exec ...core.DBExecutor) (catalog.Fee, error) {
	repo.db.fee.RLock()
	defer repo.db.fee.RUnlock()

	for _, fee := range repo.db.fee.rows {
		if fee.ClassID == classID && sameSubject(fee.SubjectID, subjectID) && fee.FeeType == feeType {
			return *fee, nil
		}
	}
	return catalog.Fee{}, catalog.ErrFeeNotFound
}

func (repo *catalogRepository) CreateFee(ctx context.Context, fee catalog.Fee, exec ...core.DBExecutor) (catalog.Fee, error) {
	repo.db.fee.Lock()
	defer repo.db.fee.Unlock()

	for _, f := range repo.db.fee.rows {
		if f.ClassID == fee.ClassID && sameSubject(f.SubjectID, fee.SubjectID) && f.FeeType == fee.FeeType {
			return catalog.Fee{}, catalog.ErrFeeExists
		}
	}

	fee.ID = repo.db.fee.nextID()
	repo.db.fee.rows[fee.ID] = &fee
	return fee, nil
}
