package quote

import (
	"errors"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/pkg/errs"
)

// RequestState is the flat representation of a Request used by persistence
// adapters. It carries no behavior.
type RequestState struct {
	ID                    kernel.UUID
	RequestNumber         string
	QuoteNumber           string
	Status                Status
	ClientID              kernel.UUID
	Items                 []Item
	DiscountTotal         kernel.Money
	TotalQuoted           kernel.Money
	ValidUntil            *time.Time
	ClientMessage         string
	AdminNotes            string
	DeliveryDetails       string
	QuotePDFURL           string
	Validation            *ClientValidation
	RequestedDeliveryDate *time.Time
	CourierID             *kernel.UUID
	DeliveryAssignedAt    *time.Time
	DeliveryConfirmedAt   *time.Time
	ClientAbsentCount     int
	CourierNotified       bool
	RequiresReview        bool
	Proof                 *DeliveryProof
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// State snapshots the aggregate.
func (r *Request) State() RequestState {
	return RequestState{
		ID:                    r.id,
		RequestNumber:         r.requestNumber,
		QuoteNumber:           r.quoteNumber,
		Status:                r.status,
		ClientID:              r.clientID,
		Items:                 r.Items(),
		DiscountTotal:         r.discountTotal,
		TotalQuoted:           r.totalQuoted,
		ValidUntil:            copyTime(r.validUntil),
		ClientMessage:         r.clientMessage,
		AdminNotes:            r.adminNotes,
		DeliveryDetails:       r.deliveryDetails,
		QuotePDFURL:           r.quotePDFURL,
		Validation:            copyValidation(r.validation),
		RequestedDeliveryDate: copyTime(r.requestedDeliveryDate),
		CourierID:             copyUUID(r.courierID),
		DeliveryAssignedAt:    copyTime(r.deliveryAssignedAt),
		DeliveryConfirmedAt:   copyTime(r.deliveryConfirmedAt),
		ClientAbsentCount:     r.clientAbsentCount,
		CourierNotified:       r.courierNotified,
		RequiresReview:        r.requiresReview,
		Proof:                 copyProof(r.proof),
		CreatedAt:             r.createdAt,
		UpdatedAt:             r.updatedAt,
	}
}

// RestoreRequest rebuilds a Request from storage. The subtotal is recomputed
// from the items rather than trusted.
func RestoreRequest(s RequestState) (*Request, error) {
	var errList []error
	if err := s.ID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := s.ClientID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := s.Status.Validate(); err != nil {
		errList = append(errList, err)
	}
	if s.RequestNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("requestNumber"))
	}
	if len(s.Items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	if s.ClientAbsentCount < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("clientAbsentCount", s.ClientAbsentCount, 0, "∞"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Request{
		id:                    s.ID,
		requestNumber:         s.RequestNumber,
		quoteNumber:           s.QuoteNumber,
		status:                s.Status,
		clientID:              s.ClientID,
		items:                 append([]Item(nil), s.Items...),
		subtotal:              Subtotal(s.Items),
		discountTotal:         s.DiscountTotal,
		totalQuoted:           s.TotalQuoted,
		validUntil:            copyTime(s.ValidUntil),
		clientMessage:         s.ClientMessage,
		adminNotes:            s.AdminNotes,
		deliveryDetails:       s.DeliveryDetails,
		quotePDFURL:           s.QuotePDFURL,
		validation:            copyValidation(s.Validation),
		requestedDeliveryDate: copyTime(s.RequestedDeliveryDate),
		courierID:             copyUUID(s.CourierID),
		deliveryAssignedAt:    copyTime(s.DeliveryAssignedAt),
		deliveryConfirmedAt:   copyTime(s.DeliveryConfirmedAt),
		clientAbsentCount:     s.ClientAbsentCount,
		courierNotified:       s.CourierNotified,
		requiresReview:        s.RequiresReview,
		proof:                 copyProof(s.Proof),
		createdAt:             s.CreatedAt,
		updatedAt:             s.UpdatedAt,
		isConstructed:         true,
	}, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyUUID(id *kernel.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func copyValidation(v *ClientValidation) *ClientValidation {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyProof(p *DeliveryProof) *DeliveryProof {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
