// Package pgerrs classifies PostgreSQL failures into the application error kinds.
package pgerrs

import (
	"context"
	"errors"

	"devis/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes treated as a lost race.
const (
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	UniqueViolation      = "23505"
	LockNotAvailable     = "55P03"
)

// Classify wraps a database error. Conflicts that a retry of the whole unit
// of work may resolve become errs.ConcurrencyConflictError; anything else is
// a dependency failure. Errors that already carry an application kind and
// context cancellations are returned unchanged.
func Classify(resource string, err error) error {
	if err == nil {
		return nil
	}
	if errs.KindOf(err) != errs.KindInternal {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if IsConflict(err) {
		return errs.NewConcurrencyConflictError(resource, err)
	}
	return errs.NewDependencyFailureErrorWithCause("postgres", err)
}

// IsConflict reports whether err is a PostgreSQL serialization, deadlock,
// lock or unique-key conflict.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case SerializationFailure, DeadlockDetected, UniqueViolation, LockNotAvailable:
		return true
	default:
		return false
	}
}
