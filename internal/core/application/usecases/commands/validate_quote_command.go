package commands

import (
	"errors"
	"strings"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/guard"
)

var ErrValidateQuoteCommandIsNotConstructed = errors.New(
	"ValidateQuoteCommand must be created via NewValidateQuoteCommand constructor",
)

// ValidateQuoteCommand is the client's acceptance of a sent quote. The IP
// and device come from the client's HTTP request.
type ValidateQuoteCommand struct { //nolint:recvcheck //using for validation
	actor                 quote.Actor
	requestID             kernel.UUID
	ip                    string
	deviceInfo            string
	requestedDeliveryDate *time.Time

	guard guard.ConstructorGuard
}

func NewValidateQuoteCommand(
	actor quote.Actor,
	requestID kernel.UUID,
	ip, deviceInfo string,
	requestedDeliveryDate *time.Time,
) (ValidateQuoteCommand, error) {
	if err := errors.Join(actor.Validate(), requestID.Validate()); err != nil {
		return ValidateQuoteCommand{}, err
	}
	return ValidateQuoteCommand{
		actor:                 actor,
		requestID:             requestID,
		ip:                    strings.TrimSpace(ip),
		deviceInfo:            strings.TrimSpace(deviceInfo),
		requestedDeliveryDate: requestedDeliveryDate,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

func (c ValidateQuoteCommand) Validate() error {
	return c.guard.Validate(ErrValidateQuoteCommandIsNotConstructed)
}

func (c ValidateQuoteCommand) Actor() quote.Actor                { return c.actor }
func (c ValidateQuoteCommand) RequestID() kernel.UUID            { return c.requestID }
func (c ValidateQuoteCommand) IP() string                        { return c.ip }
func (c ValidateQuoteCommand) DeviceInfo() string                { return c.deviceInfo }
func (c ValidateQuoteCommand) RequestedDeliveryDate() *time.Time { return c.requestedDeliveryDate }
