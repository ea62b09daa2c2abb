package commands

import (
	"errors"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/domain/services"
	"devis/internal/pkg/guard"
)

var ErrMarkClientAbsentCommandIsNotConstructed = errors.New(
	"MarkClientAbsentCommand must be created via NewMarkClientAbsentCommand constructor",
)

// MarkClientAbsentCommand is a courier reporting that nobody was there to
// receive the delivery.
type MarkClientAbsentCommand struct { //nolint:recvcheck //using for validation
	courier   quote.Actor
	requestID kernel.UUID
	proof     services.ProofInput

	guard guard.ConstructorGuard
}

func NewMarkClientAbsentCommand(
	courier quote.Actor,
	requestID kernel.UUID,
	proof services.ProofInput,
) (MarkClientAbsentCommand, error) {
	if err := errors.Join(courier.Validate(), requestID.Validate()); err != nil {
		return MarkClientAbsentCommand{}, err
	}
	return MarkClientAbsentCommand{
		courier:   courier,
		requestID: requestID,
		proof:     proof,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c MarkClientAbsentCommand) Validate() error {
	return c.guard.Validate(ErrMarkClientAbsentCommandIsNotConstructed)
}

func (c MarkClientAbsentCommand) Courier() quote.Actor       { return c.courier }
func (c MarkClientAbsentCommand) RequestID() kernel.UUID     { return c.requestID }
func (c MarkClientAbsentCommand) Proof() services.ProofInput { return c.proof }
