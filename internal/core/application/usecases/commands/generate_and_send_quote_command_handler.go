package commands

import (
	"context"
	"log/slog"
	"time"

	"devis/internal/core/application/documents"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/notification"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/domain/services"
	"devis/internal/core/ports"
)

// DocumentPublisher renders and stores the document of a request.
type DocumentPublisher interface {
	Publish(ctx context.Context, req *quote.Request, emitterID kernel.UUID, variant documents.Variant) (string, error)
}

// GenerateAndSendQuoteCommandHandler sends a quote in two steps.
//
// The first unit of work applies the edit, reserves the quote number if the
// request has none, renders and stores the document and leaves the request in
// QUOTE_SENT. Any failure there, including the renderer or the object store,
// rolls everything back. Once committed, the client is notified and a second
// unit of work moves the request to AWAITING_VALIDATION. If that last step
// fails the request stays in QUOTE_SENT and the recovery job finishes it.
type GenerateAndSendQuoteCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.ProductCatalog
	publisher  DocumentPublisher
	notifier   ports.Notifier
	sequences  services.SequenceGenerator
	policy     Policy
	clock      func() time.Time
	logger     *slog.Logger
}

func NewGenerateAndSendQuoteCommandHandler(
	uowFactory UoWFactory,
	catalog ports.ProductCatalog,
	publisher DocumentPublisher,
	notifier ports.Notifier,
	policy Policy,
	clock func() time.Time,
	logger *slog.Logger,
) GenerateAndSendQuoteCommandHandler {
	return GenerateAndSendQuoteCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
		notifier:   notifier,
		sequences:  services.NewSequenceGenerator(clock),
		policy:     policy,
		clock:      clock,
		logger:     logger.With("component", "generate_and_send_quote"),
	}
}

func (h GenerateAndSendQuoteCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateAndSendQuoteCommand,
) (*quote.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := quote.RequireKind(cmd.Actor(), "send quote", quote.ActorStaff); err != nil {
		return nil, err
	}

	update, err := resolveUpdate(ctx, h.catalog, cmd.Update())
	if err != nil {
		return nil, err
	}

	var req *quote.Request
	err = inUnitOfWork(ctx, h.uowFactory, h.policy.ConflictAttempts, func(uow UoW) error {
		repo := uow.QuoteRepository()
		now := h.clock()

		var err error
		req, err = repo.GetForUpdate(ctx, cmd.RequestID())
		if err != nil {
			return err
		}
		if err = req.ValidateSend(cmd.Actor()); err != nil {
			return err
		}
		if err = req.ApplyAdminUpdate(cmd.Actor(), update, now); err != nil {
			return err
		}

		if !req.HasQuoteNumber() {
			number, err := h.sequences.NextFormatted(ctx, uow.SequenceRepository(), services.QuoteSequence)
			if err != nil {
				return err
			}
			if err = req.AssignQuoteNumber(number); err != nil {
				return err
			}
		}
		req.EnsureValidUntil(now, h.policy.QuoteValidity)

		url, err := h.publisher.Publish(ctx, req, cmd.Actor().ID(), documents.Main)
		if err != nil {
			return err
		}
		if err = req.MarkSent(cmd.Actor(), url, now); err != nil {
			return err
		}

		return repo.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "quote sent",
		"request_id", req.ID().String(),
		"quote_number", req.QuoteNumber(),
		"pdf_url", req.QuotePDFURL())

	deliveryURL := cmd.DeliveryURLHint()
	if deliveryURL == "" {
		deliveryURL = h.policy.ValidationURL(req.ID())
	}
	notify(ctx, h.notifier, h.logger, req, notification.ToClient(req.ClientID()), notification.QuoteReady,
		map[string]string{"deliveryUrl": deliveryURL})

	awaiting, _, err := awaitValidation(ctx, h.uowFactory, h.policy, h.clock, req.ID())
	if err != nil {
		h.logger.WarnContext(ctx, "quote left in QUOTE_SENT, recovery job will resume it",
			"request_id", req.ID().String(), "error", err)
		return req, nil
	}
	return awaiting, nil
}

// awaitValidation moves a sent request to AWAITING_VALIDATION. A request that
// already moved on (the client may have validated in between) is returned
// unchanged with moved set to false.
func awaitValidation(
	ctx context.Context,
	factory UoWFactory,
	policy Policy,
	clock func() time.Time,
	requestID kernel.UUID,
) (req *quote.Request, moved bool, err error) {
	err = inUnitOfWork(ctx, factory, policy.ConflictAttempts, func(uow UoW) error {
		repo := uow.QuoteRepository()
		moved = false

		var err error
		req, err = repo.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status() != quote.QuoteSent {
			return nil
		}
		if err = req.AwaitValidation(clock()); err != nil {
			return err
		}
		if err = repo.Update(ctx, req); err != nil {
			return err
		}
		moved = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return req, moved, nil
}
