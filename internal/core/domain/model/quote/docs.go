// Package quote contains the quote request aggregate and the state machine
// that drives it from the client's submission to the delivery of the tires.
//
// Lifecycle:
//
//	DRAFT ─> QUOTING ─> QUOTE_SENT ─> AWAITING_VALIDATION ─> CLIENT_VALIDATED ─> OUT_FOR_DELIVERY ─> COMPLETED
//	  │                    ▲   │                 │                                    │    ▲
//	  └────────────────────┘   └<── re-send ─────┘                                    └────┘
//	     (send from draft)                                                   (client absent)
//
// Every mutating method receives the Actor performing it. Guards reject the
// wrong kind of actor (or the wrong client or courier) with errs.ForbiddenError,
// and a transition attempted from an incompatible status with
// errs.InvalidStateError. Methods check every guard before touching any field,
// so a rejected call leaves the aggregate exactly as it was.
//
// The package includes:
//   - Request: the aggregate root, with its totals and delivery tracking
//   - Item: an immutable snapshot of a catalog product with quantity and price
//   - DeliveryProof: the evidence of the latest delivery attempt
//   - Status: the lifecycle states and their transitions
//   - Actor: the client, staff member or courier acting on a request
package quote
