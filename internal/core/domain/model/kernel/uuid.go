package kernel

import (
	"fmt"

	"devis/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for a zero-value UUID, i.e.
// one that did not come from NewUUID, UUIDFromString or UUIDFromBytes.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies quote requests, catalog products and the identities that
// act on them (clients, staff, couriers). It wraps github.com/google/uuid so
// that the domain never handles a nil identifier by accident.
//
// The zero value is invalid: Validate reports ErrUUIDIsNotConstructed for it,
// and every aggregate constructor checks its identifiers that way.
//
// UUID is a comparable value type and safe for concurrent use. It can be used
// as a map key.
//
// Example usage:
//
//	// A new request
//	id := kernel.NewUUID()
//
//	// An id taken from a URL path
//	id, err := kernel.UUIDFromString(chi.URLParam(r, "id"))
//	if err != nil {
//	    return err // errs.ValueIsInvalidError, rendered as 400
//	}
//
//	// Lines indexed by product
//	byProduct := map[kernel.UUID]quote.Item{}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier. It never returns the
// zero value.
//
// Example:
//
//	req, err := quote.NewRequest(kernel.NewUUID(), "REQ-2025-0001", client, items, "", now)
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses any textual form accepted by google/uuid:
//   - "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//   - "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}"
//   - "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"
//
// Malformed input is reported as errs.ValueIsInvalidError. The nil UUID
// parses but fails validation with ErrUUIDIsNotConstructed.
//
// Example:
//
//	courierID, err := kernel.UUIDFromString(body.CourierID)
//	if err != nil {
//	    return fmt.Errorf("courierId: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}

	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// UUIDFromBytes restores an identifier from its 16-byte form, as stored in
// the uuid columns and scanned by the read models.
//
// Example:
//
//	var raw uuid.UUID
//	if err := row.Scan(&raw); err != nil {
//	    return err
//	}
//	id, err := kernel.UUIDFromBytes(raw[:])
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}

	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form
// used in JSON payloads, log attributes and notification contexts.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value for persistence adapters.
// Despite the name it is not a byte slice; use id.Bytes()[:] for that.
//
// Example:
//
//	db.Raw("SELECT ... FROM quote_requests WHERE id = ?", id.Bytes())
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
//
// Example:
//
//	if !viewer.ID().IsEqual(req.ClientID()) {
//	    return errs.NewForbiddenError("view quote request", "quote request belongs to another client")
//	}
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether u is the nil UUID.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate returns ErrUUIDIsNotConstructed for the zero value and nil
// otherwise.
//
// Example:
//
//	func NewActor(id kernel.UUID, kind ActorKind) (Actor, error) {
//	    if err := id.Validate(); err != nil {
//	        return Actor{}, err
//	    }
//	    ...
//	}
func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
