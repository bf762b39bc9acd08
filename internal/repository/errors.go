// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers to distinguish
// between different failure scenarios.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup by key matches no row.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write cannot be performed because of
// conflicting state, such as a unique column collision.
var ErrConflict = errors.New("conflict")

// ErrNoTx is returned by Commit and Rollback when the context carries no
// transaction started by UnitOfWork.Begin.
var ErrNoTx = errors.New("no transaction in context")

// notFound maps sql.ErrNoRows to ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// affected reports whether a write touched at least one row.
func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// conflict wraps unique constraint violations of every supported driver
// in ErrConflict.
func conflict(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	var myErr *mysql.MySQLError
	switch {
	case errors.As(err, &pqErr) && pqErr.Code == "23505",
		errors.As(err, &myErr) && myErr.Number == 1062,
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return err
}
