package quote

import (
	"errors"
	"net"
	"strings"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/pkg/errs"
)

// ErrRequestIsNotConstructed is returned when a Request was not built through
// NewRequest or RestoreRequest.
var ErrRequestIsNotConstructed = errors.New("quote request must be created via NewRequest constructor")

// ClientValidation stamps the client's acceptance of a quote.
type ClientValidation struct {
	At         time.Time
	IP         string
	DeviceInfo string
}

// AdminUpdate carries the optional fields a staff member may change on a
// request. A nil field is left untouched. A non-nil Items replaces the whole
// list, so an empty non-nil slice is rejected.
type AdminUpdate struct {
	Items           []Item
	DiscountTotal   *kernel.Money
	TotalQuoted     *kernel.Money
	ValidUntil      *time.Time
	AdminNotes      *string
	DeliveryDetails *string
}

// Request is the quote request aggregate root.
//
// Request follows these invariants:
//   - requestNumber is assigned at creation and never changes
//   - quoteNumber is assigned at most once
//   - subtotal always equals the sum of the item line totals
//   - totalQuoted is never negative
//   - clientAbsentCount never decreases
//   - a rejected transition leaves every field unchanged
type Request struct {
	id            kernel.UUID
	requestNumber string
	quoteNumber   string
	status        Status
	clientID      kernel.UUID
	items         []Item

	subtotal      kernel.Money
	discountTotal kernel.Money
	totalQuoted   kernel.Money

	validUntil      *time.Time
	clientMessage   string
	adminNotes      string
	deliveryDetails string
	quotePDFURL     string

	validation            *ClientValidation
	requestedDeliveryDate *time.Time

	courierID           *kernel.UUID
	deliveryAssignedAt  *time.Time
	deliveryConfirmedAt *time.Time
	clientAbsentCount   int
	courierNotified     bool
	requiresReview      bool
	proof               *DeliveryProof

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewRequest creates a draft request submitted by client.
//
// The caller is expected to have dropped lines with a non-positive quantity
// and resolved every product against the catalog. items must not be empty.
func NewRequest(
	id kernel.UUID,
	requestNumber string,
	client Actor,
	items []Item,
	clientMessage string,
	now time.Time,
) (*Request, error) {
	if err := RequireKind(client, "create quote request", ActorClient); err != nil {
		return nil, err
	}

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(requestNumber) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("requestNumber"))
	}
	if len(items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	subtotal := Subtotal(items)
	return &Request{
		id:            id,
		requestNumber: requestNumber,
		status:        Draft,
		clientID:      client.ID(),
		items:         append([]Item(nil), items...),
		subtotal:      subtotal,
		discountTotal: kernel.ZeroMoney(),
		totalQuoted:   subtotal,
		clientMessage: strings.TrimSpace(clientMessage),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// Validate ensures the Request went through a constructor.
func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID                   { return r.id }
func (r *Request) RequestNumber() string             { return r.requestNumber }
func (r *Request) QuoteNumber() string               { return r.quoteNumber }
func (r *Request) HasQuoteNumber() bool              { return r.quoteNumber != "" }
func (r *Request) Status() Status                    { return r.status }
func (r *Request) ClientID() kernel.UUID             { return r.clientID }
func (r *Request) Items() []Item                     { return append([]Item(nil), r.items...) }
func (r *Request) Subtotal() kernel.Money            { return r.subtotal }
func (r *Request) DiscountTotal() kernel.Money       { return r.discountTotal }
func (r *Request) TotalQuoted() kernel.Money         { return r.totalQuoted }
func (r *Request) ValidUntil() *time.Time            { return r.validUntil }
func (r *Request) ClientMessage() string             { return r.clientMessage }
func (r *Request) AdminNotes() string                { return r.adminNotes }
func (r *Request) DeliveryDetails() string           { return r.deliveryDetails }
func (r *Request) QuotePDFURL() string               { return r.quotePDFURL }
func (r *Request) Validation() *ClientValidation     { return r.validation }
func (r *Request) RequestedDeliveryDate() *time.Time { return r.requestedDeliveryDate }
func (r *Request) CourierID() *kernel.UUID           { return r.courierID }
func (r *Request) DeliveryAssignedAt() *time.Time    { return r.deliveryAssignedAt }
func (r *Request) DeliveryConfirmedAt() *time.Time   { return r.deliveryConfirmedAt }
func (r *Request) ClientAbsentCount() int            { return r.clientAbsentCount }
func (r *Request) CourierNotified() bool             { return r.courierNotified }
func (r *Request) RequiresReview() bool              { return r.requiresReview }
func (r *Request) Proof() *DeliveryProof             { return r.proof }
func (r *Request) CreatedAt() time.Time              { return r.createdAt }
func (r *Request) UpdatedAt() time.Time              { return r.updatedAt }

// IsAssignedTo reports whether courierID is the courier carrying the request.
func (r *Request) IsAssignedTo(courierID kernel.UUID) bool {
	return r.courierID != nil && r.courierID.IsEqual(courierID)
}

// ApplyAdminUpdate applies a staff edit. The first edit of a draft moves it
// to Quoting; other non-terminal statuses are kept.
//
// When TotalQuoted is not supplied it is recomputed as subtotal minus
// discount, clamped at zero.
func (r *Request) ApplyAdminUpdate(actor Actor, update AdminUpdate, now time.Time) error {
	if err := RequireKind(actor, "edit quote request", ActorStaff); err != nil {
		return err
	}
	newStatus, err := r.status.Edit()
	if err != nil {
		return err
	}
	if update.Items != nil && len(update.Items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	items := r.items
	if update.Items != nil {
		items = append([]Item(nil), update.Items...)
	}
	subtotal := Subtotal(items)

	discount := r.discountTotal
	if update.DiscountTotal != nil {
		discount = *update.DiscountTotal
	}

	total := subtotal.SubClamped(discount)
	if update.TotalQuoted != nil {
		total = *update.TotalQuoted
	}

	r.items = items
	r.subtotal = subtotal
	r.discountTotal = discount
	r.totalQuoted = total
	if update.ValidUntil != nil {
		validUntil := truncateToDate(*update.ValidUntil)
		r.validUntil = &validUntil
	}
	if update.AdminNotes != nil {
		r.adminNotes = strings.TrimSpace(*update.AdminNotes)
	}
	if update.DeliveryDetails != nil {
		r.deliveryDetails = strings.TrimSpace(*update.DeliveryDetails)
	}
	r.status = newStatus
	r.updatedAt = now
	return nil
}

// ValidateSend checks actor may generate and send the quote from the current status.
func (r *Request) ValidateSend(actor Actor) error {
	if err := RequireKind(actor, "send quote", ActorStaff); err != nil {
		return err
	}
	return r.status.ValidateSend()
}

// ValidatePreview checks actor may render a preview of the quote.
func (r *Request) ValidatePreview(actor Actor) error {
	if err := RequireKind(actor, "preview quote", ActorStaff); err != nil {
		return err
	}
	return r.status.ValidatePreview()
}

// AssignQuoteNumber sets the quote number. It can only be done once.
func (r *Request) AssignQuoteNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("quoteNumber")
	}
	if r.HasQuoteNumber() {
		return errs.NewInvalidStateError("assign quote number", "already numbered "+r.quoteNumber)
	}
	r.quoteNumber = number
	return nil
}

// EnsureValidUntil defaults the validity date to now + validity when unset.
func (r *Request) EnsureValidUntil(now time.Time, validity time.Duration) {
	if r.validUntil != nil {
		return
	}
	validUntil := truncateToDate(now.Add(validity))
	r.validUntil = &validUntil
}

// MarkSent records the stored document URL and moves the request to QuoteSent.
func (r *Request) MarkSent(actor Actor, pdfURL string, now time.Time) error {
	if err := r.ValidateSend(actor); err != nil {
		return err
	}
	if strings.TrimSpace(pdfURL) == "" {
		return errs.NewValueIsRequiredError("quotePdfUrl")
	}
	if !r.HasQuoteNumber() {
		return errs.NewValueIsRequiredError("quoteNumber")
	}
	newStatus, err := r.status.Send()
	if err != nil {
		return err
	}

	r.quotePDFURL = pdfURL
	r.status = newStatus
	r.updatedAt = now
	return nil
}

// AwaitValidation completes a send once the client has been notified.
func (r *Request) AwaitValidation(now time.Time) error {
	newStatus, err := r.status.AwaitValidation()
	if err != nil {
		return err
	}
	r.status = newStatus
	r.updatedAt = now
	return nil
}

// ValidateByClient records the owning client's acceptance of the quote.
func (r *Request) ValidateByClient(
	actor Actor,
	ip, deviceInfo string,
	requestedDeliveryDate *time.Time,
	now time.Time,
) error {
	const operation = "validate quote"
	if err := RequireKind(actor, operation, ActorClient); err != nil {
		return err
	}
	if !actor.ID().IsEqual(r.clientID) {
		return errs.NewForbiddenError(operation, "quote request belongs to another client")
	}
	newStatus, err := r.status.ClientValidate()
	if err != nil {
		return err
	}
	ip = strings.TrimSpace(ip)
	if ip != "" && net.ParseIP(ip) == nil {
		return errs.NewValueIsInvalidError("ip")
	}

	r.validation = &ClientValidation{
		At:         now,
		IP:         ip,
		DeviceInfo: strings.TrimSpace(deviceInfo),
	}
	if requestedDeliveryDate != nil {
		d := truncateToDate(*requestedDeliveryDate)
		r.requestedDeliveryDate = &d
	}
	r.status = newStatus
	r.updatedAt = now
	return nil
}

// AssignCourier hands a validated request over to a courier.
// The caller is responsible for checking courierID resolves to a courier identity.
func (r *Request) AssignCourier(actor Actor, courierID kernel.UUID, deliveryDetails *string, now time.Time) error {
	if err := RequireKind(actor, "assign courier", ActorStaff); err != nil {
		return err
	}
	if err := courierID.Validate(); err != nil {
		return err
	}
	newStatus, err := r.status.Dispatch()
	if err != nil {
		return err
	}

	r.courierID = &courierID
	r.deliveryAssignedAt = &now
	if deliveryDetails != nil {
		r.deliveryDetails = strings.TrimSpace(*deliveryDetails)
	}
	r.status = newStatus
	r.updatedAt = now
	return nil
}

// MarkCourierNotified flips the notification flag and reports whether it
// was flipped by this call. Only the caller that flipped it must notify.
func (r *Request) MarkCourierNotified() bool {
	if r.courierNotified || r.courierID == nil {
		return false
	}
	r.courierNotified = true
	return true
}

// ConfirmDelivery completes the request with the assigned courier's proof.
func (r *Request) ConfirmDelivery(actor Actor, proof DeliveryProof, now time.Time) error {
	const operation = "confirm delivery"
	if err := r.checkDeliveryAttempt(actor, operation, proof, AttemptDelivered); err != nil {
		return err
	}
	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}

	r.proof = &proof
	r.deliveryConfirmedAt = &now
	r.status = newStatus
	r.updatedAt = now
	return nil
}

// MarkClientAbsent records a failed attempt. The request stays out for
// delivery. When the absence count reaches maxAbsences (if positive) the
// request is flagged for review; escalated is true only for the attempt that
// set the flag.
func (r *Request) MarkClientAbsent(
	actor Actor,
	proof DeliveryProof,
	maxAbsences int,
	now time.Time,
) (escalated bool, err error) {
	const operation = "record client absence"
	if err := r.checkDeliveryAttempt(actor, operation, proof, AttemptClientAbsent); err != nil {
		return false, err
	}

	r.proof = &proof
	r.clientAbsentCount++
	if maxAbsences > 0 && r.clientAbsentCount >= maxAbsences && !r.requiresReview {
		r.requiresReview = true
		escalated = true
	}
	r.updatedAt = now
	return escalated, nil
}

func (r *Request) checkDeliveryAttempt(actor Actor, operation string, proof DeliveryProof, kind AttemptKind) error {
	if err := RequireKind(actor, operation, ActorCourier); err != nil {
		return err
	}
	if err := r.status.ValidateDeliveryAttempt(operation); err != nil {
		return err
	}
	if !r.IsAssignedTo(actor.ID()) {
		return errs.NewForbiddenError(operation, "courier is not assigned to this request")
	}
	if err := proof.Validate(); err != nil {
		return err
	}
	if proof.Kind() != kind {
		return errs.NewValueIsInvalidErrorWithCause("proof",
			errors.New("attempt kind "+string(proof.Kind())+" does not match "+string(kind)))
	}
	if !proof.CourierID().IsEqual(actor.ID()) {
		return errs.NewForbiddenError(operation, "proof was recorded by another courier")
	}
	return nil
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
