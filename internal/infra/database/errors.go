package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrConstraintViolation wraps integrity errors (SQLSTATE class 23, sqlite
// SQLITE_CONSTRAINT) raised by any of the supported drivers.
var ErrConstraintViolation = errors.New("constraint violation")

func classify(err error) error {
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Class() == "23"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}

	return false
}
