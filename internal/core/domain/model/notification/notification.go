// Package notification describes the messages emitted along the quote
// lifecycle. Templates and delivery channels live outside the domain; a
// notification only names its recipient, its kind and the values a template
// may use.
package notification

import (
	"errors"
	"fmt"
	"maps"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/pkg/errs"
)

// Kind selects the template of a notification.
type Kind string

const (
	QuoteRequestReceived     Kind = "quote_request_received"
	QuoteRequestStaffAlert   Kind = "quote_request_staff_alert"
	QuoteReady               Kind = "quote_ready"
	QuoteValidatedStaffAlert Kind = "quote_validated_staff_alert"
	DeliveryAssigned         Kind = "delivery_assigned"
	DeliveryCompleted        Kind = "delivery_completed"
	ClientAbsent             Kind = "client_absent"
	AbsenceEscalatedAlert    Kind = "absence_escalated_staff_alert"
)

// Audience is the kind of party a notification is addressed to.
type Audience string

const (
	AudienceClient  Audience = "client"
	AudienceStaff   Audience = "staff"
	AudienceCourier Audience = "courier"
)

// Recipient addresses a notification. Staff alerts go to the whole back
// office and carry no identity.
type Recipient struct {
	Audience Audience
	ID       *kernel.UUID
}

// Notification is an immutable message ready to be dispatched.
type Notification struct {
	recipient Recipient
	kind      Kind
	requestID kernel.UUID
	context   map[string]string
}

// ToClient addresses a notification to a client.
func ToClient(clientID kernel.UUID) Recipient {
	return Recipient{Audience: AudienceClient, ID: &clientID}
}

// ToCourier addresses a notification to a courier.
func ToCourier(courierID kernel.UUID) Recipient {
	return Recipient{Audience: AudienceCourier, ID: &courierID}
}

// ToStaff addresses the back office.
func ToStaff() Recipient {
	return Recipient{Audience: AudienceStaff}
}

func New(recipient Recipient, kind Kind, requestID kernel.UUID, context map[string]string) (Notification, error) {
	var errList []error
	switch recipient.Audience {
	case AudienceClient, AudienceCourier:
		if recipient.ID == nil {
			errList = append(errList, errs.NewValueIsRequiredError("recipient id"))
		}
	case AudienceStaff:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"audience", fmt.Errorf("%q is not a known audience", string(recipient.Audience))))
	}
	if kind == "" {
		errList = append(errList, errs.NewValueIsRequiredError("kind"))
	}
	if err := requestID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return Notification{}, err
	}

	return Notification{
		recipient: recipient,
		kind:      kind,
		requestID: requestID,
		context:   maps.Clone(context),
	}, nil
}

func (n Notification) Recipient() Recipient   { return n.recipient }
func (n Notification) Kind() Kind             { return n.kind }
func (n Notification) RequestID() kernel.UUID { return n.requestID }

// Context returns a copy of the template values.
func (n Notification) Context() map[string]string {
	return maps.Clone(n.context)
}
