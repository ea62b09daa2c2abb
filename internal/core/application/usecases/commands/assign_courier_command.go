package commands

import (
	"errors"
	"strings"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand hands a validated request over to a courier.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(staff, requestID, courierID, nil)
//	if err != nil {
//	    return err
//	}
//	req, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrValueIsInvalid) {
//	    // courierID is not a courier
//	}
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	actor           quote.Actor
	requestID       kernel.UUID
	courierID       kernel.UUID
	deliveryDetails *string

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates the command. deliveryDetails replaces the
// request's delivery details when not nil.
func NewAssignCourierCommand(
	actor quote.Actor,
	requestID, courierID kernel.UUID,
	deliveryDetails *string,
) (AssignCourierCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate(), courierID.Validate()); err != nil {
		return AssignCourierCommand{}, err
	}
	if deliveryDetails != nil {
		trimmed := strings.TrimSpace(*deliveryDetails)
		deliveryDetails = &trimmed
	}
	return AssignCourierCommand{
		actor:           actor,
		requestID:       requestID,
		courierID:       courierID,
		deliveryDetails: deliveryDetails,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) Actor() quote.Actor       { return c.actor }
func (c AssignCourierCommand) RequestID() kernel.UUID   { return c.requestID }
func (c AssignCourierCommand) CourierID() kernel.UUID   { return c.courierID }
func (c AssignCourierCommand) DeliveryDetails() *string { return c.deliveryDetails }
