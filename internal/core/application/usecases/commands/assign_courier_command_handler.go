package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"devis/internal/core/domain/model/notification"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"
	"devis/internal/pkg/errs"
)

// AssignCourierCommandHandler orchestrates the courier assignment.
//
// The courier is resolved in the identity directory first; an unknown
// identity or one that is not a courier is an invalid argument. The courier
// is notified at most once: the notification flag is flipped in the same
// unit of work as the assignment and the notification is sent only by the
// call that flipped it.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, directory, notifier, policy, time.Now, logger)
//	req, err := handler.Handle(ctx, cmd)
//	switch errs.KindOf(err) {
//	case errs.KindInvalidArgument:
//	    log.Println("not a courier")
//	case errs.KindInvalidState:
//	    log.Println("quote was not validated by the client")
//	}
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.IdentityDirectory
	notifier   ports.Notifier
	policy     Policy
	clock      func() time.Time
	logger     *slog.Logger
}

func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	directory ports.IdentityDirectory,
	notifier ports.Notifier,
	policy Policy,
	clock func() time.Time,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		notifier:   notifier,
		policy:     policy,
		clock:      clock,
		logger:     logger.With("component", "assign_courier"),
	}
}

func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) (*quote.Request, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if err := quote.RequireKind(command.Actor(), "assign courier", quote.ActorStaff); err != nil {
		return nil, err
	}
	if err := h.ensureCourier(ctx, command); err != nil {
		return nil, err
	}

	var (
		req           *quote.Request
		notifyCourier bool
	)
	err := inUnitOfWork(ctx, h.uowFactory, h.policy.ConflictAttempts, func(uow UoW) error {
		repo := uow.QuoteRepository()

		var err error
		req, err = repo.GetForUpdate(ctx, command.RequestID())
		if err != nil {
			return err
		}

		err = req.AssignCourier(command.Actor(), command.CourierID(), command.DeliveryDetails(), h.clock())
		if err != nil {
			return err
		}
		notifyCourier = req.MarkCourierNotified()

		return repo.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "courier assigned",
		"request_id", req.ID().String(), "courier_id", command.CourierID().String())

	if notifyCourier {
		notify(ctx, h.notifier, h.logger, req, notification.ToCourier(command.CourierID()), notification.DeliveryAssigned,
			map[string]string{"deliveryDetails": req.DeliveryDetails()})
	}
	return req, nil
}

func (h AssignCourierCommandHandler) ensureCourier(ctx context.Context, command AssignCourierCommand) error {
	identity, err := h.directory.Identity(ctx, command.CourierID())
	if err != nil {
		return errs.NewDependencyFailureErrorWithCause("identity directory", err)
	}
	if identity == nil {
		return errs.NewValueIsInvalidErrorWithCause("courierId",
			fmt.Errorf("no identity %s", command.CourierID()))
	}
	if identity.Role != quote.ActorCourier {
		return errs.NewValueIsInvalidErrorWithCause("courierId",
			fmt.Errorf("identity %s has role %s", command.CourierID(), identity.Role))
	}
	return nil
}
