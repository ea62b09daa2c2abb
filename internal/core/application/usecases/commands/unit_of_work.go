package commands

import (
	"context"

	"devis/internal/pkg/errs"
)

// inUnitOfWork runs fn in a fresh unit of work and commits it. When the
// transaction loses a race (errs.ErrConcurrencyConflict) the whole function
// is run again in a new unit of work, up to attempts times, and the last
// conflict is then surfaced as a dependency failure. Any other error is
// returned as is and rolls the transaction back.
func inUnitOfWork(ctx context.Context, factory UoWFactory, attempts int, fn func(uow UoW) error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for range attempts {
		err = runUnitOfWork(ctx, factory, fn)
		if !errs.IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			break
		}
	}
	return errs.NewDependencyFailureErrorWithCause("database", err)
}

func runUnitOfWork(ctx context.Context, factory UoWFactory, fn func(uow UoW) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewDependencyFailureErrorWithCause("database", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
