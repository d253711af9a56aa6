package inmemdb

import (
	"context"
	"sort"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/result"
)

type resultRepository struct {
	db *DB
}

func NewResultRepository(db *DB) result.Repository {
	return &resultRepository{db: db}
}

func (repo *resultRepository) GetResult(ctx context.Context, userID, testID int, exec ...core.DBExecutor) (result.Result, error) {
	repo.db.result.RLock()
	defer repo.db.result.RUnlock()

	for _, res := range repo.db.result.rows {
		if res.UserID == userID && res.TestID == testID {
			return *res, nil
		}
	}
	return result.Result{}, result.ErrNotFound
}

func (repo *resultRepository) CreateResult(ctx context.Context, res result.Result, exec ...core.DBExecutor) (result.Result, error) {
	repo.db.result.Lock()
	defer repo.db.result.Unlock()

	for _, r := range repo.db.result.rows {
		if r.UserID == res.UserID && r.TestID == res.TestID {
			return result.Result{}, result.ErrAlreadySubmitted
		}
	}

	res.ID = repo.db.result.nextID()
	repo.db.result.rows[res.ID] = &res
	return res, nil
}

func (repo *resultRepository) QueryUserResults(ctx context.Context, userID int, exec ...core.DBExecutor) ([]result.Info, error) {
	repo.db.result.RLock()
	defer repo.db.result.RUnlock()

	var infos []result.Info
	for _, res := range repo.db.result.rows {
		if res.UserID != userID {
			continue
		}
		info := result.Info{Result: *res}
		if tst, ok := repo.db.test.rows[res.TestID]; ok {
			info.TestType = tst.TestType
			info.TotalMarks = tst.TotalMarks
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}
