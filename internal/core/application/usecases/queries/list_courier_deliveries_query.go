package queries

import (
	"errors"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/errs"
	"devis/internal/pkg/guard"
)

var (
	ErrListCourierDeliveriesQueryIsNotConstructed = errors.New(
		"ListCourierDeliveriesQuery must be created via NewListCourierDeliveriesQuery constructor",
	)
)

// ListCourierDeliveriesQuery lists the requests a courier is carrying.
//
// Example:
//
//	query, err := NewListCourierDeliveriesQuery(courier)
//	if err != nil {
//	    return err
//	}
//	deliveries, err := handler.Handle(ctx, query)
type ListCourierDeliveriesQuery struct {
	courier quote.Actor
	guard   guard.ConstructorGuard
}

func NewListCourierDeliveriesQuery(courier quote.Actor) (ListCourierDeliveriesQuery, error) {
	if err := courier.Validate(); err != nil {
		return ListCourierDeliveriesQuery{}, err
	}
	if courier.Kind() != quote.ActorCourier {
		return ListCourierDeliveriesQuery{}, errs.NewForbiddenError("list deliveries", "actor is not a courier")
	}
	return ListCourierDeliveriesQuery{
		courier: courier,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListCourierDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListCourierDeliveriesQueryIsNotConstructed)
}

func (q ListCourierDeliveriesQuery) Courier() quote.Actor { return q.courier }

// CourierDeliveryView is what a courier needs to drop off an order.
// The address is the client's default one, empty when none is on file.
type CourierDeliveryView struct {
	RequestID             kernel.UUID
	RequestNumber         string
	QuoteNumber           string
	ClientName            string
	ClientPhone           string
	AddressLine1          string
	AddressLine2          string
	PostalCode            string
	City                  string
	DeliveryDetails       string
	RequestedDeliveryDate *time.Time
	TotalQuoted           kernel.Money
	ClientAbsentCount     int
	RequiresReview        bool
	AssignedAt            *time.Time
}
