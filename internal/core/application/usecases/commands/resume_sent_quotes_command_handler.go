package commands

import (
	"context"
	"log/slog"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/notification"
	"devis/internal/core/ports"
)

// ResumeSentQuotesCommandHandler moves stale QUOTE_SENT requests to
// AWAITING_VALIDATION and notifies the client again: the process may have
// stopped before the first notification went out, and a duplicate "quote
// ready" message is harmless.
//
// A failure on one request is logged and does not stop the batch.
type ResumeSentQuotesCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	policy     Policy
	clock      func() time.Time
	logger     *slog.Logger
}

func NewResumeSentQuotesCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	policy Policy,
	clock func() time.Time,
	logger *slog.Logger,
) ResumeSentQuotesCommandHandler {
	return ResumeSentQuotesCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		policy:     policy,
		clock:      clock,
		logger:     logger.With("component", "resume_sent_quotes"),
	}
}

// Handle returns how many requests were moved.
func (h ResumeSentQuotesCommandHandler) Handle(ctx context.Context, cmd ResumeSentQuotesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.staleRequests(ctx, cmd)
	if err != nil {
		return 0, err
	}

	resumed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return resumed, ctx.Err()
		}
		req, moved, err := awaitValidation(ctx, h.uowFactory, h.policy, h.clock, id)
		if err != nil {
			h.logger.WarnContext(ctx, "failed to resume sent quote",
				"request_id", id.String(), "error", err)
			continue
		}
		if !moved {
			continue
		}
		resumed++
		var extra map[string]string
		if url := h.policy.ValidationURL(req.ID()); url != "" {
			extra = map[string]string{"deliveryUrl": url}
		}
		notify(ctx, h.notifier, h.logger, req, notification.ToClient(req.ClientID()), notification.QuoteReady, extra)
	}

	if resumed > 0 {
		h.logger.InfoContext(ctx, "resumed sent quotes", "count", resumed)
	}
	return resumed, nil
}

func (h ResumeSentQuotesCommandHandler) staleRequests(
	ctx context.Context,
	cmd ResumeSentQuotesCommand,
) ([]kernel.UUID, error) {
	var ids []kernel.UUID
	err := inUnitOfWork(ctx, h.uowFactory, 1, func(uow UoW) error {
		var err error
		ids, err = uow.QuoteRepository().ListStaleSent(ctx, h.clock().Add(-cmd.OlderThan()), cmd.Limit())
		return err
	})
	return ids, err
}
