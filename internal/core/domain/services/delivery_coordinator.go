package services

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/errs"
)

// MaxProofBlobSize caps a decoded photo or signature.
const MaxProofBlobSize = 5 << 20

var dataURLPrefix = regexp.MustCompile(`^data:[^;,]*;base64,`)

// ProofInput is the raw evidence sent by a courier's device.
// Photo and Signature are base64 strings, optionally written as data URLs.
type ProofInput struct {
	Latitude  *float64
	Longitude *float64
	Photo     string
	Signature string
	Notes     string
}

// DeliveryCoordinator checks couriers against their assignments and turns
// raw evidence into delivery proofs.
//
// Business rules:
//   - only the courier assigned to the request may report an attempt
//   - a position is a latitude and longitude pair, never one without the other
//   - a successful delivery must carry a position
type DeliveryCoordinator struct{}

func NewDeliveryCoordinator() DeliveryCoordinator {
	return DeliveryCoordinator{}
}

// Authorize checks courier may report a delivery attempt on req now.
// Status is checked before the assignment so that a request that is not out
// for delivery is reported as such whoever asks.
func (DeliveryCoordinator) Authorize(req *quote.Request, courier quote.Actor, operation string) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := quote.RequireKind(courier, operation, quote.ActorCourier); err != nil {
		return err
	}
	if err := req.Status().ValidateDeliveryAttempt(operation); err != nil {
		return err
	}
	if !req.IsAssignedTo(courier.ID()) {
		return errs.NewForbiddenError(operation, "courier is not assigned to this request")
	}
	return nil
}

// DeliveredProof normalizes the evidence of a successful delivery.
func (c DeliveryCoordinator) DeliveredProof(courier quote.Actor, in ProofInput, now time.Time) (quote.DeliveryProof, error) {
	location, err := c.location(in)
	if err != nil {
		return quote.DeliveryProof{}, err
	}
	if location == nil {
		return quote.DeliveryProof{}, errs.NewValueIsRequiredError("geolocation")
	}
	photo, err := DecodeBlob("photo", in.Photo)
	if err != nil {
		return quote.DeliveryProof{}, err
	}
	signature, err := DecodeBlob("signature", in.Signature)
	if err != nil {
		return quote.DeliveryProof{}, err
	}
	return quote.NewDeliveredProof(courier.ID(), *location, photo, signature, strings.TrimSpace(in.Notes), now)
}

// AbsenceProof normalizes the record of an attempt where the client was absent.
// A signature makes no sense here and is ignored.
func (c DeliveryCoordinator) AbsenceProof(courier quote.Actor, in ProofInput, now time.Time) (quote.DeliveryProof, error) {
	location, err := c.location(in)
	if err != nil {
		return quote.DeliveryProof{}, err
	}
	photo, err := DecodeBlob("photo", in.Photo)
	if err != nil {
		return quote.DeliveryProof{}, err
	}
	return quote.NewAbsenceProof(courier.ID(), location, photo, strings.TrimSpace(in.Notes), now)
}

func (DeliveryCoordinator) location(in ProofInput) (*kernel.GeoPoint, error) {
	switch {
	case in.Latitude == nil && in.Longitude == nil:
		return nil, nil
	case in.Latitude == nil:
		return nil, errs.NewValueIsRequiredError("latitude")
	case in.Longitude == nil:
		return nil, errs.NewValueIsRequiredError("longitude")
	}
	p, err := kernel.NewGeoPoint(*in.Latitude, *in.Longitude)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeBlob decodes a base64 payload, accepting an optional
// "data:<mime>;base64," prefix. An empty string decodes to nil.
func DecodeBlob(field, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	s = dataURLPrefix.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), "")

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("not valid base64: %w", err))
	}
	if len(data) > MaxProofBlobSize {
		return nil, errs.NewValueIsOutOfRangeError(field, len(data), 0, MaxProofBlobSize)
	}
	return data, nil
}
