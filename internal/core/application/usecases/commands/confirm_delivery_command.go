package commands

import (
	"errors"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/domain/services"
	"devis/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand is a courier reporting a completed delivery.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	courier   quote.Actor
	requestID kernel.UUID
	proof     services.ProofInput

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(
	courier quote.Actor,
	requestID kernel.UUID,
	proof services.ProofInput,
) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(courier.Validate(), requestID.Validate()); err != nil {
		return ConfirmDeliveryCommand{}, err
	}
	return ConfirmDeliveryCommand{
		courier:   courier,
		requestID: requestID,
		proof:     proof,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) Courier() quote.Actor       { return c.courier }
func (c ConfirmDeliveryCommand) RequestID() kernel.UUID     { return c.requestID }
func (c ConfirmDeliveryCommand) Proof() services.ProofInput { return c.proof }
