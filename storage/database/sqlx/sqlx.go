// Package sqlxrepos implements the repositories on PostgreSQL via sqlx.
//
// Uniqueness is enforced by the schema; unique-violation errors are
// mapped to the domain Conflict errors so that the constraint, not the
// application pre-check, is the authoritative signal under races.
package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Sagar-Ghorade/SmartEdu/core"
)

const uniqueViolation = "23505"

// getExec returns the transaction when the service opened one, the pool
// otherwise.
func getExec(db *sqlx.DB, exec []core.DBExecutor) sqlx.ExtContext {
	if len(exec) > 0 {
		if tx, ok := exec[0].(*sqlx.Tx); ok {
			return tx
		}
	}
	return db
}

func isUniqueViolation(err error) bool {
	pqErr, ok := errors.Cause(err).(*pq.Error)
	return ok && pqErr.Code == uniqueViolation
}

// trapNoRowsErr maps sql.ErrNoRows to the domain NotFound error.
func trapNoRowsErr(err, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}
