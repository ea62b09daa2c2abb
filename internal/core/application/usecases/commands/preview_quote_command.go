package commands

import (
	"errors"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/guard"
)

var ErrPreviewQuoteCommandIsNotConstructed = errors.New(
	"PreviewQuoteCommand must be created via NewPreviewQuoteCommand constructor",
)

// PreviewQuoteCommand renders the current state of a request for staff
// without sending it.
type PreviewQuoteCommand struct { //nolint:recvcheck //using for validation
	actor     quote.Actor
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPreviewQuoteCommand(actor quote.Actor, requestID kernel.UUID) (PreviewQuoteCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate()); err != nil {
		return PreviewQuoteCommand{}, err
	}
	return PreviewQuoteCommand{
		actor:     actor,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PreviewQuoteCommand) Validate() error {
	return c.guard.Validate(ErrPreviewQuoteCommandIsNotConstructed)
}

func (c PreviewQuoteCommand) Actor() quote.Actor     { return c.actor }
func (c PreviewQuoteCommand) RequestID() kernel.UUID { return c.requestID }
