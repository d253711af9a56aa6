package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// AppDB adapts *sqlx.DB to core.DB so that services can open
// transactions without knowing the driver.
type AppDB struct {
	*sqlx.DB
}

var _ core.DB = (*AppDB)(nil)

func (db *AppDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (core.DBTransactor, error) {
	return db.DB.BeginTxx(ctx, opts)
}

func open(dbName string, admin bool, conf *core.Config) (*sqlx.DB, error) {
	user := url.UserPassword(conf.Database.User, conf.Database.Password)
	if admin && conf.Database.AdminUser != "" {
		user = url.UserPassword(conf.Database.AdminUser, conf.Database.AdminPassword)
	}

	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Database.Engine,
		User:     user,
		Host:     conf.DatabaseAddress(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return sqlx.Open(conf.Database.Engine, u.String())
}

func Open(conf *core.Config) (*AppDB, error) {
	db, err := open(conf.Database.Name, false, conf)
	if err != nil {
		return nil, err
	}
	return &AppDB{DB: db}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func createAppUser(db *sqlx.DB, conf *core.Config) error {
	if conf.Database.User == "" {
		return nil
	}

	var exists bool
	err := db.Get(&exists, "SELECT true FROM pg_roles WHERE rolname=$1", conf.Database.User)
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "checking app user")
	}

	if !exists {
		q := fmt.Sprintf("CREATE USER %s CREATEDB ENCRYPTED PASSWORD '%s'", conf.Database.User, conf.Database.Password)
		if _, err = db.Exec(q); err != nil {
			return errors.Wrap(err, "creating app user")
		}
	}
	return nil
}

func createDB(db *sqlx.DB, conf *core.Config) error {
	var exists bool
	err := db.Get(&exists, "SELECT true FROM pg_database WHERE datname=$1", conf.Database.Name)
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "checking DB")
	}

	if !exists {
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", conf.Database.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist bootstraps the app user and database, connecting as
// admin first when admin credentials are configured.
func CreateIfNotExist(conf *core.Config) error {
	db, err := open("postgres", true, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}

	if err = ping(db); err != nil {
		return errors.Wrap(err, "pinging database")
	}

	if err = createAppUser(db, conf); err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// create DB as app user
	db, err = open("postgres", false, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	if err = createDB(db, conf); err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return nil
}

// Migrate applies all embedded migrations that are not yet applied.
func Migrate(db *AppDB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return errors.Wrap(err, "loading migrations")
	}
	drv, err := migratepg.WithInstance(db.DB.DB, &migratepg.Config{})
	if err != nil {
		return errors.Wrap(err, "preparing migration driver")
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		return errors.Wrap(err, "preparing migrations")
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
