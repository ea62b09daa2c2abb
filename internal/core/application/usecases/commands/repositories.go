// Package commands contains the quote lifecycle transitions.
// Every command follows the same pattern: a validated command value, a
// handler that runs the transition in one unit of work, and notifications
// sent once the unit of work has committed.
package commands

import (
	"context"

	"devis/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// QuoteRepoFactory provides access to the quote repository within a transaction.
	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	// SequenceRepoFactory provides access to the document counters within a transaction.
	SequenceRepoFactory interface {
		SequenceRepository() ports.SequenceRepository
	}

	// UoW manages a transition: the request row and the counters it
	// reserves numbers from are written in the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   number, err := generator.NextFormatted(ctx, uow.SequenceRepository(), services.QuoteSequence)
	//   req, err := uow.QuoteRepository().GetForUpdate(ctx, id)
	//   // ... mutate and Update
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		QuoteRepoFactory
		SequenceRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
