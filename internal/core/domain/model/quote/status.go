package quote

import (
	"fmt"

	"devis/internal/pkg/errs"
)

// Status is the lifecycle state of a quote request.
// Statuses are persisted by their code (see Code and ParseStatus).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the status of a freshly submitted request.
	Draft

	// Quoting means staff started pricing the request.
	Quoting

	// QuoteSent is the durable marker written once the PDF is stored,
	// before the client is notified.
	QuoteSent

	// AwaitingValidation means the client was notified and can validate.
	AwaitingValidation

	// ClientValidated means the client accepted the quote.
	ClientValidated

	// OutForDelivery means a courier is carrying the order.
	OutForDelivery

	// Completed is terminal.
	Completed
)

func getStatusCodes() map[Status]string {
	return map[Status]string{
		Unknown:            "UNKNOWN",
		Draft:              "DRAFT",
		Quoting:            "QUOTING",
		QuoteSent:          "QUOTE_SENT",
		AwaitingValidation: "AWAITING_VALIDATION",
		ClientValidated:    "CLIENT_VALIDATED",
		OutForDelivery:     "OUT_FOR_DELIVERY",
		Completed:          "COMPLETED",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Draft, Quoting, QuoteSent, AwaitingValidation, ClientValidated, OutForDelivery, Completed}
}

// ParseStatus converts a persisted code such as "QUOTE_SENT" back to a Status.
func ParseStatus(code string) (Status, error) {
	for status, c := range getStatusCodes() {
		if c == code && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", code))
}

// Validate checks if the Status value is one of the lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the status code, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusCodes()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Code is the persisted and transported representation of the status.
func (s Status) Code() string {
	return s.String()
}

// IsTerminal reports whether no transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// Edit returns the status after a staff edit: a draft becomes Quoting, any
// other non-terminal status is kept.
func (s Status) Edit() (Status, error) {
	if err := s.Validate(); err != nil || s.IsTerminal() {
		return Unknown, errs.NewInvalidStateError("edit quote request", s.String())
	}
	if s == Draft {
		return Quoting, nil
	}
	return s, nil
}

// ValidatePreview checks a preview document can be rendered for s.
func (s Status) ValidatePreview() error {
	if err := s.Validate(); err != nil || s.IsTerminal() {
		return errs.NewInvalidStateError("preview quote", s.String())
	}
	return nil
}

// ValidateSend checks the quote can be generated and sent from s.
//
// Sending is allowed while the request is being prepared (Draft, Quoting)
// and again after a previous send (QuoteSent, AwaitingValidation), in which
// case the quote number is reused and the document replaced.
func (s Status) ValidateSend() error {
	switch s { //nolint:exhaustive // only the sendable statuses are listed
	case Draft, Quoting, QuoteSent, AwaitingValidation:
		return nil
	default:
		return errs.NewInvalidStateError("send quote", s.String())
	}
}

// Send transitions to QuoteSent.
func (s Status) Send() (Status, error) {
	if err := s.ValidateSend(); err != nil {
		return Unknown, err
	}
	return QuoteSent, nil
}

// AwaitValidation transitions QuoteSent -> AwaitingValidation.
func (s Status) AwaitValidation() (Status, error) {
	if s != QuoteSent {
		return Unknown, errs.NewInvalidStateError("await client validation", s.String())
	}
	return AwaitingValidation, nil
}

// ClientValidate transitions to ClientValidated.
//
// QuoteSent is accepted as well as AwaitingValidation so that a client who
// validates before the post-send flip completed is not rejected.
func (s Status) ClientValidate() (Status, error) {
	if s != AwaitingValidation && s != QuoteSent {
		return Unknown, errs.NewInvalidStateError("validate quote", s.String())
	}
	return ClientValidated, nil
}

// Dispatch transitions ClientValidated -> OutForDelivery.
func (s Status) Dispatch() (Status, error) {
	if s != ClientValidated {
		return Unknown, errs.NewInvalidStateError("assign courier", s.String())
	}
	return OutForDelivery, nil
}

// ValidateDeliveryAttempt checks a courier can report an attempt from s.
func (s Status) ValidateDeliveryAttempt(operation string) error {
	if s != OutForDelivery {
		return errs.NewInvalidStateError(operation, s.String())
	}
	return nil
}

// Complete transitions OutForDelivery -> Completed.
func (s Status) Complete() (Status, error) {
	if err := s.ValidateDeliveryAttempt("confirm delivery"); err != nil {
		return Unknown, err
	}
	return Completed, nil
}
