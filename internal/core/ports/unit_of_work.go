package ports

import (
	"context"
)

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// A commit lost to a concurrent writer is reported as errs.ConcurrencyConflictError.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	Rollback(ctx context.Context) error

	// QuoteRepository returns a QuoteRepository bound to the current transaction.
	QuoteRepository() QuoteRepository

	// SequenceRepository returns a SequenceRepository bound to the current transaction.
	SequenceRepository() SequenceRepository
}
