package ports

import (
	"context"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
)

// Identity is a registered user: a client, a staff member or a courier.
type Identity struct {
	ID      kernel.UUID
	Name    string
	Email   string
	Phone   string
	Company string
	Role    quote.ActorKind
}

// Address is one postal address of a client.
type Address struct {
	Label      string
	Line1      string
	Line2      string
	PostalCode string
	City       string
	Country    string
	IsDefault  bool
}

// IdentityDirectory looks identities up by id.
type IdentityDirectory interface {
	// Identity returns nil, nil when no identity matches id.
	Identity(ctx context.Context, id kernel.UUID) (*Identity, error)
}

// AddressBook lists a client's addresses, default first.
type AddressBook interface {
	Addresses(ctx context.Context, clientID kernel.UUID) ([]Address, error)
}
