// Package postgres provides the GORM-based Unit of Work used by every quote
// lifecycle transition.
//
// A unit of work wraps one database transaction. The quote repository and
// the sequence repository it hands out are bound to that transaction, so a
// request row, its items, its proof and the counters it reserved numbers
// from are committed or rolled back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	req, err := uow.QuoteRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// ... mutate req
//	if err := uow.QuoteRepository().Update(ctx, req); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Rows loaded through GetForUpdate stay locked until Commit or Rollback
//   - Commit failures caused by a concurrent writer are reported as
//     errs.ConcurrencyConflictError so that callers may replay the transition
package postgres

import (
	"context"

	"devis/internal/adapters/out/postgres/pgerrs"
	"devis/internal/adapters/out/postgres/quoterepo"
	"devis/internal/adapters/out/postgres/sequencerepo"
	"devis/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state. Instances
// are not safe for concurrent use; create one per transition attempt.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction. Repositories obtained
// from it share that transaction while it is open.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it again on an open unit of work is a no-op.
//
// The transaction carries ctx: cancelling it aborts the statements still to
// run and makes Commit fail, which rolls everything back.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return errs.NewDependencyFailureErrorWithCause("database", err)
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerrs.Classify("transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. It returns gorm.ErrInvalidTransaction
// when no transaction is open.
//
// A serialization failure, deadlock or unique violation reported at commit
// time is returned as errs.ConcurrencyConflictError, so the caller can replay
// the whole transition on a fresh unit of work:
//
//	err := uow.Commit(ctx)
//	if errs.IsRetryable(err) {
//	    // load the request again and reapply the transition
//	}
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerrs.Classify("transaction", err)
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction
// when no transaction is open, which is the case after a successful Commit.
// That makes a deferred Rollback safe to keep on the success path.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// QuoteRepository returns a repository bound to the open transaction, or to
// the plain connection when none is open.
//
// Example:
//
//	repo := uow.QuoteRepository()
//	req, err := repo.GetForUpdate(ctx, id) // row locked until Commit or Rollback
//	if err != nil {
//	    return err
//	}
//	if err := req.ConfirmDelivery(courier, proof, now); err != nil {
//	    return err
//	}
//	return repo.Update(ctx, req)
func (uow *GormUnitOfWork) QuoteRepository() ports.QuoteRepository {
	return quoterepo.NewGormQuoteRepository(uow.conn())
}

// SequenceRepository returns a repository bound to the open transaction, or
// to the plain connection when none is open. A number drawn inside a
// transaction that is rolled back is handed out again.
func (uow *GormUnitOfWork) SequenceRepository() ports.SequenceRepository {
	return sequencerepo.NewGormSequenceRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
