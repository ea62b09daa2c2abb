// Package ports defines the contracts between the quote domain and the
// infrastructure: persistence, the product catalog, document rendering and
// storage, identities, carts and notifications.
package ports

import (
	"context"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for quote request aggregates,
// their line items and their latest delivery proof.
type QuoteRepository interface {
	// Add persists a new quote request with its items.
	Add(ctx context.Context, aggregate *quote.Request) error

	// Update persists every field of an existing request. Items are deleted
	// and re-inserted, the delivery proof is upserted.
	Update(ctx context.Context, aggregate *quote.Request) error

	// Get loads a request without locking it.
	Get(ctx context.Context, id kernel.UUID) (*quote.Request, error)

	// GetForUpdate loads a request and locks its row until the surrounding
	// transaction ends. Every transition must load through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*quote.Request, error)

	// ListStaleSent returns the ids of requests still in QUOTE_SENT whose
	// last update is older than before, oldest first.
	ListStaleSent(ctx context.Context, before time.Time, limit int) ([]kernel.UUID, error)
}

// SequenceRepository increments document counters.
type SequenceRepository interface {
	// Next atomically increments the (key, year) counter, creating it at 1
	// on first use, and returns the new value. The counter row stays locked
	// until the surrounding transaction ends.
	Next(ctx context.Context, key string, year int) (int64, error)
}
