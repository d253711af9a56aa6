package core

import (
	"context"
	"database/sql"
)

type (
	DBExecutor interface {
		Exec(query string, args ...interface{}) (sql.Result, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		Query(query string, args ...interface{}) (*sql.Rows, error)
		QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
		QueryRow(query string, args ...interface{}) *sql.Row
		QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	}

	DBTransactor interface {
		DBExecutor

		Commit() error
		Rollback() error
	}

	DB interface {
		DBExecutor

		BeginTx(ctx context.Context, opts *sql.TxOptions) (DBTransactor, error)
	}
)

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// Pagination carries page/limit query params; zero values fall back to
// page 1 / limit 5 as the original API did.
type Pagination struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

func (p *Pagination) Clean() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 5
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Paginated struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int         `json:"total"`
	TotalPages int         `json:"totalPages"`
	Data       interface{} `json:"data"`
}

func NewPaginated(p Pagination, total int, data interface{}) Paginated {
	pages := total / p.Limit
	if total%p.Limit > 0 {
		pages++
	}
	return Paginated{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages, Data: data}
}
