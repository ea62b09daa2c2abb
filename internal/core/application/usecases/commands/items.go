package commands

import (
	"context"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"
	"devis/internal/pkg/errs"
)

// ItemInput is a requested line: a product, a quantity and, for staff edits,
// an optional negotiated unit price.
type ItemInput struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice *kernel.Money
}

// keepOrderedLines drops lines with a non-positive quantity.
func keepOrderedLines(items []ItemInput) []ItemInput {
	kept := make([]ItemInput, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	return kept
}

// resolveItems snapshots the catalog data of every line. An unknown product
// is reported as not found; a catalog failure as a dependency failure.
func resolveItems(ctx context.Context, catalog ports.ProductCatalog, inputs []ItemInput) ([]quote.Item, error) {
	ids := make([]kernel.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}

	products, err := catalog.Resolve(ctx, ids)
	if err != nil {
		return nil, errs.NewDependencyFailureErrorWithCause("product catalog", err)
	}

	items := make([]quote.Item, 0, len(inputs))
	for _, in := range inputs {
		product, ok := products[in.ProductID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("productId", in.ProductID.String())
		}
		price := product.Price
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		item, err := quote.NewItem(product.ID, product.Name, product.Brand, product.Size, in.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
