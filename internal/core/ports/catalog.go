package ports

import (
	"context"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
)

// Product is the catalog view needed to snapshot a quote line.
type Product struct {
	ID    kernel.UUID
	Name  string
	Brand string
	Size  quote.TireSize
	Price kernel.Money
}

// ProductCatalog resolves product references.
type ProductCatalog interface {
	// Resolve returns the products found among ids. Missing ids are simply
	// absent from the map; the caller decides how to report them.
	Resolve(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]Product, error)
}

// Cart is the client's shopping cart, emptied once a request is submitted.
type Cart interface {
	Clear(ctx context.Context, clientID kernel.UUID) error
}
