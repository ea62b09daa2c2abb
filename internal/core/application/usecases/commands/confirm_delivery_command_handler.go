package commands

import (
	"context"
	"log/slog"
	"time"

	"devis/internal/core/domain/model/notification"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/domain/services"
	"devis/internal/core/ports"
)

const opConfirmDelivery = "confirm delivery"

// ConfirmDeliveryCommandHandler completes a request with the courier's proof
// of delivery. The proof and the COMPLETED status are written together.
type ConfirmDeliveryCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	notifier    ports.Notifier
	policy      Policy
	clock       func() time.Time
	logger      *slog.Logger
}

func NewConfirmDeliveryCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	policy Policy,
	clock func() time.Time,
	logger *slog.Logger,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDeliveryCoordinator(),
		notifier:    notifier,
		policy:      policy,
		clock:       clock,
		logger:      logger.With("component", "confirm_delivery"),
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) (*quote.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := quote.RequireKind(cmd.Courier(), opConfirmDelivery, quote.ActorCourier); err != nil {
		return nil, err
	}

	var req *quote.Request
	err := inUnitOfWork(ctx, h.uowFactory, h.policy.ConflictAttempts, func(uow UoW) error {
		repo := uow.QuoteRepository()
		now := h.clock()

		var err error
		req, err = repo.GetForUpdate(ctx, cmd.RequestID())
		if err != nil {
			return err
		}
		if err = h.coordinator.Authorize(req, cmd.Courier(), opConfirmDelivery); err != nil {
			return err
		}

		proof, err := h.coordinator.DeliveredProof(cmd.Courier(), cmd.Proof(), now)
		if err != nil {
			return err
		}
		if err = req.ConfirmDelivery(cmd.Courier(), proof, now); err != nil {
			return err
		}

		return repo.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "delivery confirmed",
		"request_id", req.ID().String(), "courier_id", cmd.Courier().ID().String())

	notify(ctx, h.notifier, h.logger, req, notification.ToClient(req.ClientID()), notification.DeliveryCompleted, nil)
	return req, nil
}
