package commands

import (
	"context"
	"log/slog"
	"time"

	"devis/internal/core/domain/model/notification"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"
)

// ValidateQuoteCommandHandler records the client's acceptance and alerts the back office.
type ValidateQuoteCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	policy     Policy
	clock      func() time.Time
	logger     *slog.Logger
}

func NewValidateQuoteCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	policy Policy,
	clock func() time.Time,
	logger *slog.Logger,
) ValidateQuoteCommandHandler {
	return ValidateQuoteCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     policy,
		clock:      clock,
		logger:     logger.With("component", "validate_quote"),
	}
}

func (h ValidateQuoteCommandHandler) Handle(ctx context.Context, cmd ValidateQuoteCommand) (*quote.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var req *quote.Request
	err := inUnitOfWork(ctx, h.uowFactory, h.policy.ConflictAttempts, func(uow UoW) error {
		repo := uow.QuoteRepository()

		var err error
		req, err = repo.GetForUpdate(ctx, cmd.RequestID())
		if err != nil {
			return err
		}

		err = req.ValidateByClient(cmd.Actor(), cmd.IP(), cmd.DeviceInfo(), cmd.RequestedDeliveryDate(), h.clock())
		if err != nil {
			return err
		}

		return repo.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "quote validated by client",
		"request_id", req.ID().String(), "quote_number", req.QuoteNumber())

	extra := map[string]string{}
	if d := req.RequestedDeliveryDate(); d != nil {
		extra["requestedDeliveryDate"] = d.Format("2006-01-02")
	}
	notify(ctx, h.notifier, h.logger, req, notification.ToStaff(), notification.QuoteValidatedStaffAlert, extra)

	return req, nil
}
