// Package queries contains the read side of the quote lifecycle.
// Handlers query PostgreSQL directly and return flat read models shaped for
// the HTTP layer; they never load aggregates.
package queries

import (
	"errors"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/guard"
)

var (
	ErrGetQuoteRequestQueryIsNotConstructed = errors.New(
		"GetQuoteRequestQuery must be created via NewGetQuoteRequestQuery constructor",
	)
)

// GetQuoteRequestQuery reads one quote request on behalf of viewer.
// Clients see their own requests, couriers the requests assigned to them,
// staff every request.
type GetQuoteRequestQuery struct {
	viewer    quote.Actor
	requestID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewGetQuoteRequestQuery(viewer quote.Actor, requestID kernel.UUID) (GetQuoteRequestQuery, error) {
	if err := errors.Join(viewer.Validate(), requestID.Validate()); err != nil {
		return GetQuoteRequestQuery{}, err
	}
	return GetQuoteRequestQuery{
		viewer:    viewer,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetQuoteRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetQuoteRequestQueryIsNotConstructed)
}

func (q GetQuoteRequestQuery) Viewer() quote.Actor    { return q.viewer }
func (q GetQuoteRequestQuery) RequestID() kernel.UUID { return q.requestID }

// QuoteRequestItemView is a line of a quote request.
type QuoteRequestItemView struct {
	ProductID kernel.UUID
	Name      string
	Brand     string
	Size      string
	Quantity  int
	UnitPrice kernel.Money
	LineTotal kernel.Money
}

// QuoteRequestView is the detailed read model of a quote request.
// AdminNotes is only filled for staff viewers.
type QuoteRequestView struct {
	ID                    kernel.UUID
	RequestNumber         string
	QuoteNumber           string
	Status                quote.Status
	ClientID              kernel.UUID
	Items                 []QuoteRequestItemView
	Subtotal              kernel.Money
	DiscountTotal         kernel.Money
	TotalQuoted           kernel.Money
	ValidUntil            *time.Time
	ClientMessage         string
	AdminNotes            string
	DeliveryDetails       string
	QuotePDFURL           string
	ValidatedAt           *time.Time
	RequestedDeliveryDate *time.Time
	CourierID             *kernel.UUID
	DeliveryAssignedAt    *time.Time
	DeliveryConfirmedAt   *time.Time
	ClientAbsentCount     int
	RequiresReview        bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
