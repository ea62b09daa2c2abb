package commands

import (
	"errors"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/errs"
	"devis/internal/pkg/guard"
)

var ErrAdminUpdateQuoteRequestCommandIsNotConstructed = errors.New(
	"AdminUpdateQuoteRequestCommand must be created via NewAdminUpdateQuoteRequestCommand constructor",
)

// AdminUpdateInput lists the fields a staff member may change. Nil fields
// are left as they are. A non-nil Items replaces the whole list.
type AdminUpdateInput struct {
	Items           []ItemInput
	DiscountTotal   *kernel.Money
	TotalQuoted     *kernel.Money
	ValidUntil      *time.Time
	AdminNotes      *string
	DeliveryDetails *string
}

// normalize drops zero-quantity lines from a supplied list. A list that
// becomes empty is an error: a request always keeps at least one line.
func (in AdminUpdateInput) normalize() (AdminUpdateInput, error) {
	if in.Items == nil {
		return in, nil
	}
	kept := keepOrderedLines(in.Items)
	if len(kept) == 0 {
		return AdminUpdateInput{}, errs.NewValueIsRequiredErrorWithCause("items", errors.New("no line with a positive quantity"))
	}
	for _, item := range kept {
		if err := item.ProductID.Validate(); err != nil {
			return AdminUpdateInput{}, err
		}
	}
	in.Items = kept
	return in, nil
}

func (in AdminUpdateInput) toDomain(items []quote.Item) quote.AdminUpdate {
	return quote.AdminUpdate{
		Items:           items,
		DiscountTotal:   in.DiscountTotal,
		TotalQuoted:     in.TotalQuoted,
		ValidUntil:      in.ValidUntil,
		AdminNotes:      in.AdminNotes,
		DeliveryDetails: in.DeliveryDetails,
	}
}

// AdminUpdateQuoteRequestCommand edits the pricing or content of a request.
type AdminUpdateQuoteRequestCommand struct { //nolint:recvcheck //using for validation
	actor     quote.Actor
	requestID kernel.UUID
	update    AdminUpdateInput

	guard guard.ConstructorGuard
}

func NewAdminUpdateQuoteRequestCommand(
	actor quote.Actor,
	requestID kernel.UUID,
	update AdminUpdateInput,
) (AdminUpdateQuoteRequestCommand, error) {
	cmd := AdminUpdateQuoteRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setRequestID(requestID),
		cmd.setUpdate(update),
	); err != nil {
		return AdminUpdateQuoteRequestCommand{}, err
	}

	return cmd, nil
}

func (c AdminUpdateQuoteRequestCommand) Validate() error {
	return c.guard.Validate(ErrAdminUpdateQuoteRequestCommandIsNotConstructed)
}

func (c AdminUpdateQuoteRequestCommand) Actor() quote.Actor       { return c.actor }
func (c AdminUpdateQuoteRequestCommand) RequestID() kernel.UUID   { return c.requestID }
func (c AdminUpdateQuoteRequestCommand) Update() AdminUpdateInput { return c.update }

func (c *AdminUpdateQuoteRequestCommand) setActor(actor quote.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AdminUpdateQuoteRequestCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.requestID = id
	return nil
}

func (c *AdminUpdateQuoteRequestCommand) setUpdate(update AdminUpdateInput) error {
	normalized, err := update.normalize()
	if err != nil {
		return err
	}
	c.update = normalized
	return nil
}
