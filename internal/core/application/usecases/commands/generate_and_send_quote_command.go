package commands

import (
	"errors"
	"strings"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/guard"
)

var ErrGenerateAndSendQuoteCommandIsNotConstructed = errors.New(
	"GenerateAndSendQuoteCommand must be created via NewGenerateAndSendQuoteCommand constructor",
)

// GenerateAndSendQuoteCommand finalizes a quote: it applies a last edit,
// numbers the quote, renders its document and notifies the client.
// DeliveryURLHint is the link the client follows to validate; it is only
// forwarded to the notification.
type GenerateAndSendQuoteCommand struct { //nolint:recvcheck //using for validation
	actor           quote.Actor
	requestID       kernel.UUID
	update          AdminUpdateInput
	deliveryURLHint string

	guard guard.ConstructorGuard
}

func NewGenerateAndSendQuoteCommand(
	actor quote.Actor,
	requestID kernel.UUID,
	update AdminUpdateInput,
	deliveryURLHint string,
) (GenerateAndSendQuoteCommand, error) {
	cmd := GenerateAndSendQuoteCommand{
		deliveryURLHint: strings.TrimSpace(deliveryURLHint),
		guard:           guard.NewConstructorGuard(),
	}

	normalized, err := update.normalize()
	if err = errors.Join(err, actor.Validate(), requestID.Validate()); err != nil {
		return GenerateAndSendQuoteCommand{}, err
	}
	cmd.actor = actor
	cmd.requestID = requestID
	cmd.update = normalized

	return cmd, nil
}

func (c GenerateAndSendQuoteCommand) Validate() error {
	return c.guard.Validate(ErrGenerateAndSendQuoteCommandIsNotConstructed)
}

func (c GenerateAndSendQuoteCommand) Actor() quote.Actor       { return c.actor }
func (c GenerateAndSendQuoteCommand) RequestID() kernel.UUID   { return c.requestID }
func (c GenerateAndSendQuoteCommand) Update() AdminUpdateInput { return c.update }
func (c GenerateAndSendQuoteCommand) DeliveryURLHint() string  { return c.deliveryURLHint }
