package quote

import (
	"errors"
	"fmt"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/pkg/errs"
	"devis/internal/pkg/guard"
)

// AttemptKind tells whether a delivery attempt succeeded.
type AttemptKind string

const (
	AttemptDelivered    AttemptKind = "delivered"
	AttemptClientAbsent AttemptKind = "client_absent"
)

func (k AttemptKind) Validate() error {
	if k != AttemptDelivered && k != AttemptClientAbsent {
		return errs.NewValueIsInvalidErrorWithCause("attempt kind", fmt.Errorf("%q is not a known attempt", string(k)))
	}
	return nil
}

// ErrDeliveryProofIsNotConstructed is returned for a zero DeliveryProof.
var ErrDeliveryProofIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery proof must be created via NewDeliveredProof or NewAbsenceProof")

// DeliveryProof is the evidence left by the latest delivery attempt on a
// request. A successful delivery carries a position; an absence usually carries
// a photo of the door and notes.
type DeliveryProof struct {
	kind       AttemptKind
	courierID  kernel.UUID
	location   *kernel.GeoPoint
	photo      []byte
	signature  []byte
	notes      string
	recordedAt time.Time
	guard      guard.ConstructorGuard
}

// NewDeliveredProof builds the proof of a completed delivery. The position is mandatory.
func NewDeliveredProof(
	courierID kernel.UUID,
	location kernel.GeoPoint,
	photo, signature []byte,
	notes string,
	recordedAt time.Time,
) (DeliveryProof, error) {
	if err := errors.Join(courierID.Validate(), location.Validate()); err != nil {
		return DeliveryProof{}, err
	}
	return DeliveryProof{
		kind:       AttemptDelivered,
		courierID:  courierID,
		location:   &location,
		photo:      photo,
		signature:  signature,
		notes:      notes,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewAbsenceProof builds the record of an attempt where the client could not be reached.
func NewAbsenceProof(
	courierID kernel.UUID,
	location *kernel.GeoPoint,
	photo []byte,
	notes string,
	recordedAt time.Time,
) (DeliveryProof, error) {
	if err := courierID.Validate(); err != nil {
		return DeliveryProof{}, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return DeliveryProof{}, err
		}
	}
	return DeliveryProof{
		kind:       AttemptClientAbsent,
		courierID:  courierID,
		location:   location,
		photo:      photo,
		notes:      notes,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreDeliveryProof rebuilds a proof loaded from storage.
func RestoreDeliveryProof(
	kind AttemptKind,
	courierID kernel.UUID,
	location *kernel.GeoPoint,
	photo, signature []byte,
	notes string,
	recordedAt time.Time,
) (DeliveryProof, error) {
	if err := errors.Join(kind.Validate(), courierID.Validate()); err != nil {
		return DeliveryProof{}, err
	}
	if kind == AttemptDelivered && location == nil {
		return DeliveryProof{}, errs.NewValueIsRequiredError("delivery location")
	}
	return DeliveryProof{
		kind:       kind,
		courierID:  courierID,
		location:   location,
		photo:      photo,
		signature:  signature,
		notes:      notes,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (p DeliveryProof) Validate() error {
	return p.guard.Validate(ErrDeliveryProofIsNotConstructed)
}

func (p DeliveryProof) Kind() AttemptKind          { return p.kind }
func (p DeliveryProof) CourierID() kernel.UUID     { return p.courierID }
func (p DeliveryProof) Location() *kernel.GeoPoint { return p.location }
func (p DeliveryProof) Photo() []byte              { return p.photo }
func (p DeliveryProof) Signature() []byte          { return p.signature }
func (p DeliveryProof) Notes() string              { return p.notes }
func (p DeliveryProof) RecordedAt() time.Time      { return p.recordedAt }
