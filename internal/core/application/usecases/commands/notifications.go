package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"devis/internal/core/domain/model/notification"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"
)

// notifyTimeout bounds a single dispatch. The request context is detached
// first, so a client hanging up after the commit still gets its notification.
const notifyTimeout = 5 * time.Second

// notify sends a notification about req after its transition committed.
// Failures are logged and never returned.
func notify(
	ctx context.Context,
	notifier ports.Notifier,
	logger *slog.Logger,
	req *quote.Request,
	recipient notification.Recipient,
	kind notification.Kind,
	extra map[string]string,
) {
	values := requestContext(req)
	for k, v := range extra {
		values[k] = v
	}

	n, err := notification.New(recipient, kind, req.ID(), values)
	if err != nil {
		logger.ErrorContext(ctx, "failed to build notification",
			"request_id", req.ID().String(), "kind", string(kind), "error", err)
		return
	}
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	if err = notifier.Notify(dispatchCtx, n); err != nil {
		logger.WarnContext(ctx, "failed to dispatch notification",
			"request_id", req.ID().String(),
			"request_number", req.RequestNumber(),
			"kind", string(kind),
			"audience", string(recipient.Audience),
			"error", err)
	}
}

func requestContext(req *quote.Request) map[string]string {
	values := map[string]string{
		"requestId":         req.ID().String(),
		"requestNumber":     req.RequestNumber(),
		"quoteNumber":       req.QuoteNumber(),
		"status":            req.Status().Code(),
		"totalQuoted":       req.TotalQuoted().String(),
		"clientAbsentCount": strconv.Itoa(req.ClientAbsentCount()),
	}
	if v := req.ValidUntil(); v != nil {
		values["validUntil"] = v.Format("2006-01-02")
	}
	if url := req.QuotePDFURL(); url != "" {
		values["pdfUrl"] = url
	}
	return values
}
