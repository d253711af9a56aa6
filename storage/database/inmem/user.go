package inmemdb

import (
	"context"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

type userRepository struct {
	db *table[user.User]
}

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[int]bool, len(excludedUsers))
	for _, usr := range excludedUsers {
		excluded[usr.ID] = true
	}

	for _, usr := range repo.db.rows {
		if usr.Email == email && !excluded[usr.ID] {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, u := range repo.db.rows {
		if u.Email == usr.Email {
			return user.User{}, user.ErrEmailExists
		}
	}

	usr.ID = repo.db.nextID()
	repo.db.rows[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != 0 {
		if usr, ok := repo.db.rows[filter.ID]; ok {
			return *usr, nil
		}
		return user.User{}, user.ErrNotFound
	}
	if filter.Email != "" {
		for _, usr := range repo.db.rows {
			if usr.Email == filter.Email {
				return *usr, nil
			}
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	repo.db.rows[usr.ID] = &usr
	return usr, nil
}
