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

const opMarkClientAbsent = "record client absence"

// MarkClientAbsentCommandHandler records a failed delivery attempt. The
// request stays OUT_FOR_DELIVERY; once Policy.MaxClientAbsences attempts
// failed it is flagged for review and the back office is alerted once.
type MarkClientAbsentCommandHandler struct {
	uowFactory  UoWFactory
	coordinator services.DeliveryCoordinator
	notifier    ports.Notifier
	policy      Policy
	clock       func() time.Time
	logger      *slog.Logger
}

func NewMarkClientAbsentCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	policy Policy,
	clock func() time.Time,
	logger *slog.Logger,
) MarkClientAbsentCommandHandler {
	return MarkClientAbsentCommandHandler{
		uowFactory:  uowFactory,
		coordinator: services.NewDeliveryCoordinator(),
		notifier:    notifier,
		policy:      policy,
		clock:       clock,
		logger:      logger.With("component", "mark_client_absent"),
	}
}

func (h MarkClientAbsentCommandHandler) Handle(ctx context.Context, cmd MarkClientAbsentCommand) (*quote.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := quote.RequireKind(cmd.Courier(), opMarkClientAbsent, quote.ActorCourier); err != nil {
		return nil, err
	}

	var (
		req       *quote.Request
		escalated bool
	)
	err := inUnitOfWork(ctx, h.uowFactory, h.policy.ConflictAttempts, func(uow UoW) error {
		repo := uow.QuoteRepository()
		now := h.clock()

		var err error
		req, err = repo.GetForUpdate(ctx, cmd.RequestID())
		if err != nil {
			return err
		}
		if err = h.coordinator.Authorize(req, cmd.Courier(), opMarkClientAbsent); err != nil {
			return err
		}

		proof, err := h.coordinator.AbsenceProof(cmd.Courier(), cmd.Proof(), now)
		if err != nil {
			return err
		}
		escalated, err = req.MarkClientAbsent(cmd.Courier(), proof, h.policy.MaxClientAbsences, now)
		if err != nil {
			return err
		}

		return repo.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "client absent",
		"request_id", req.ID().String(),
		"courier_id", cmd.Courier().ID().String(),
		"absent_count", req.ClientAbsentCount())

	notify(ctx, h.notifier, h.logger, req, notification.ToClient(req.ClientID()), notification.ClientAbsent, nil)
	if escalated {
		h.logger.WarnContext(ctx, "absence limit reached, request flagged for review",
			"request_id", req.ID().String())
		notify(ctx, h.notifier, h.logger, req, notification.ToStaff(), notification.AbsenceEscalatedAlert, nil)
	}
	return req, nil
}
