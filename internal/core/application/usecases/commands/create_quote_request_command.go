package commands

import (
	"errors"
	"strings"

	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/errs"
	"devis/internal/pkg/guard"
)

var ErrCreateQuoteRequestCommandIsNotConstructed = errors.New(
	"CreateQuoteRequestCommand must be created via NewCreateQuoteRequestCommand constructor",
)

// CreateQuoteRequestCommand submits the content of a client's cart as a quote request.
//
// Example:
//
//	cmd, err := NewCreateQuoteRequestCommand(client, []ItemInput{{ProductID: p1, Quantity: 4}}, "")
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//	req, err := handler.Handle(ctx, cmd)
type CreateQuoteRequestCommand struct { //nolint:recvcheck //using for validation
	client        quote.Actor
	items         []ItemInput
	clientMessage string

	guard guard.ConstructorGuard
}

// NewCreateQuoteRequestCommand drops lines with a non-positive quantity and
// fails when nothing is left.
func NewCreateQuoteRequestCommand(
	client quote.Actor,
	items []ItemInput,
	clientMessage string,
) (CreateQuoteRequestCommand, error) {
	cmd := CreateQuoteRequestCommand{
		clientMessage: strings.TrimSpace(clientMessage),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setClient(client),
		cmd.setItems(items),
	); err != nil {
		return CreateQuoteRequestCommand{}, err
	}

	return cmd, nil
}

func (c CreateQuoteRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateQuoteRequestCommandIsNotConstructed)
}

func (c CreateQuoteRequestCommand) Client() quote.Actor {
	return c.client
}

func (c CreateQuoteRequestCommand) Items() []ItemInput {
	return append([]ItemInput(nil), c.items...)
}

func (c CreateQuoteRequestCommand) ClientMessage() string {
	return c.clientMessage
}

func (c *CreateQuoteRequestCommand) setClient(client quote.Actor) error {
	if err := quote.RequireKind(client, "create quote request", quote.ActorClient); err != nil {
		return err
	}
	c.client = client
	return nil
}

func (c *CreateQuoteRequestCommand) setItems(items []ItemInput) error {
	kept := keepOrderedLines(items)
	if len(kept) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("no line with a positive quantity"))
	}
	for _, item := range kept {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
	}
	c.items = kept
	return nil
}
