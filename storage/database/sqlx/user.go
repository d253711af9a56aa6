package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
	"github.com/Sagar-Ghorade/SmartEdu/core/user"
)

type UserRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (repo *UserRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND NOT (id = ANY ($2)))`

	excludedIDs := make([]int64, len(excludedUsers))
	for i, usr := range excludedUsers {
		excludedIDs[i] = int64(usr.ID)
	}

	var exists bool
	if err := sqlx.GetContext(ctx, getExec(repo.db, exec), &exists, query, email, pq.Array(excludedIDs)); err != nil {
		return errors.Wrap(err, "checking email existence")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *UserRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	query := `
	INSERT INTO users (name, email, role, password_hash, created_at, updated_at, last_login)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id`

	err := getExec(repo.db, exec).QueryRowxContext(ctx, query,
		usr.Name, usr.Email, usr.Role, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt, usr.LastLogin,
	).Scan(&usr.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *UserRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	query := `
	SELECT id, name, email, role, password_hash, created_at, updated_at, last_login
	FROM users`

	var (
		usr user.User
		err error
	)
	ex := getExec(repo.db, exec)
	switch {
	case filter.ID != 0:
		err = sqlx.GetContext(ctx, ex, &usr, query+` WHERE id = $1`, filter.ID)
	case filter.Email != "":
		err = sqlx.GetContext(ctx, ex, &usr, query+` WHERE email = $1`, filter.Email)
	default:
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "selecting user")
	}
	return usr, nil
}

func (repo *UserRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	query := `
	UPDATE users
	SET name = $2, email = $3, role = $4, password_hash = $5, updated_at = $6, last_login = $7
	WHERE id = $1`

	res, err := getExec(repo.db, exec).ExecContext(ctx, query,
		usr.ID, usr.Name, usr.Email, usr.Role, usr.PasswordHash, usr.UpdatedAt, usr.LastLogin)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
