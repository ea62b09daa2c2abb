package postgres

import (
	"context"

	"devis/internal/adapters/out/postgres/cartrepo"
	"devis/internal/adapters/out/postgres/catalogrepo"
	"devis/internal/adapters/out/postgres/identityrepo"
	"devis/internal/adapters/out/postgres/quoterepo"
	"devis/internal/adapters/out/postgres/sequencerepo"

	"gorm.io/gorm"
)

// Models lists every table known to the service, in creation order.
// The products, users, addresses and cart_items tables belong to the shop;
// they are migrated here for development and tests.
func Models() []any {
	return []any{
		&catalogrepo.ProductDTO{},
		&identityrepo.UserDTO{},
		&identityrepo.AddressDTO{},
		&cartrepo.CartItemDTO{},
		&quoterepo.QuoteRequestDTO{},
		&quoterepo.QuoteRequestItemDTO{},
		&quoterepo.DeliveryProofDTO{},
		&sequencerepo.NumberSequenceDTO{},
	}
}

// Migrate creates or updates the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Models()...)
}
