package commands

import (
	"context"
	"log/slog"

	"devis/internal/core/application/documents"
)

// PreviewQuoteCommandHandler stores a preview document next to the main one
// and returns its URL. The request is neither modified nor numbered.
type PreviewQuoteCommandHandler struct {
	uowFactory UoWFactory
	publisher  DocumentPublisher
	logger     *slog.Logger
}

func NewPreviewQuoteCommandHandler(
	uowFactory UoWFactory,
	publisher DocumentPublisher,
	logger *slog.Logger,
) PreviewQuoteCommandHandler {
	return PreviewQuoteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "preview_quote"),
	}
}

func (h PreviewQuoteCommandHandler) Handle(ctx context.Context, cmd PreviewQuoteCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	var url string
	err := inUnitOfWork(ctx, h.uowFactory, 1, func(uow UoW) error {
		req, err := uow.QuoteRepository().Get(ctx, cmd.RequestID())
		if err != nil {
			return err
		}
		if err = req.ValidatePreview(cmd.Actor()); err != nil {
			return err
		}

		url, err = h.publisher.Publish(ctx, req, cmd.Actor().ID(), documents.Preview)
		return err
	})
	if err != nil {
		return "", err
	}

	h.logger.DebugContext(ctx, "quote preview stored", "request_id", cmd.RequestID().String(), "url", url)
	return url, nil
}
