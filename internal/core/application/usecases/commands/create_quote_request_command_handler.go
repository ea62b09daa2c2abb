package commands

import (
	"context"
	"log/slog"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/notification"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/domain/services"
	"devis/internal/core/ports"
)

// CreateQuoteRequestCommandHandler is the only way a quote request comes
// into existence. It snapshots the catalog, reserves a request number and
// stores the draft; then it empties the client's cart and notifies the client
// and the back office.
type CreateQuoteRequestCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.ProductCatalog
	cart       ports.Cart
	notifier   ports.Notifier
	sequences  services.SequenceGenerator
	policy     Policy
	clock      func() time.Time
	logger     *slog.Logger
}

func NewCreateQuoteRequestCommandHandler(
	uowFactory UoWFactory,
	catalog ports.ProductCatalog,
	cart ports.Cart,
	notifier ports.Notifier,
	policy Policy,
	clock func() time.Time,
	logger *slog.Logger,
) CreateQuoteRequestCommandHandler {
	return CreateQuoteRequestCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		cart:       cart,
		notifier:   notifier,
		sequences:  services.NewSequenceGenerator(clock),
		policy:     policy,
		clock:      clock,
		logger:     logger.With("component", "create_quote_request"),
	}
}

func (h CreateQuoteRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CreateQuoteRequestCommand,
) (*quote.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := resolveItems(ctx, h.catalog, cmd.Items())
	if err != nil {
		return nil, err
	}

	var req *quote.Request
	err = inUnitOfWork(ctx, h.uowFactory, h.policy.ConflictAttempts, func(uow UoW) error {
		number, err := h.sequences.NextFormatted(ctx, uow.SequenceRepository(), services.RequestSequence)
		if err != nil {
			return err
		}

		req, err = quote.NewRequest(kernel.NewUUID(), number, cmd.Client(), items, cmd.ClientMessage(), h.clock())
		if err != nil {
			return err
		}

		return uow.QuoteRepository().Add(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "quote request created",
		"request_id", req.ID().String(),
		"request_number", req.RequestNumber(),
		"client_id", req.ClientID().String(),
		"items", len(req.Items()))

	if err = h.cart.Clear(ctx, req.ClientID()); err != nil {
		h.logger.WarnContext(ctx, "failed to clear cart",
			"request_id", req.ID().String(), "client_id", req.ClientID().String(), "error", err)
	}
	notify(ctx, h.notifier, h.logger, req, notification.ToClient(req.ClientID()), notification.QuoteRequestReceived, nil)
	notify(ctx, h.notifier, h.logger, req, notification.ToStaff(), notification.QuoteRequestStaffAlert, nil)

	return req, nil
}
