package commands

import (
	"context"
	"log/slog"
	"time"

	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"
)

// AdminUpdateQuoteRequestCommandHandler applies a staff edit. Supplied items
// are resolved against the catalog before the request is locked.
type AdminUpdateQuoteRequestCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.ProductCatalog
	policy     Policy
	clock      func() time.Time
	logger     *slog.Logger
}

func NewAdminUpdateQuoteRequestCommandHandler(
	uowFactory UoWFactory,
	catalog ports.ProductCatalog,
	policy Policy,
	clock func() time.Time,
	logger *slog.Logger,
) AdminUpdateQuoteRequestCommandHandler {
	return AdminUpdateQuoteRequestCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		policy:     policy,
		clock:      clock,
		logger:     logger.With("component", "admin_update_quote_request"),
	}
}

func (h AdminUpdateQuoteRequestCommandHandler) Handle(
	ctx context.Context,
	cmd AdminUpdateQuoteRequestCommand,
) (*quote.Request, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := quote.RequireKind(cmd.Actor(), "edit quote request", quote.ActorStaff); err != nil {
		return nil, err
	}

	update, err := resolveUpdate(ctx, h.catalog, cmd.Update())
	if err != nil {
		return nil, err
	}

	var req *quote.Request
	err = inUnitOfWork(ctx, h.uowFactory, h.policy.ConflictAttempts, func(uow UoW) error {
		repo := uow.QuoteRepository()

		var err error
		req, err = repo.GetForUpdate(ctx, cmd.RequestID())
		if err != nil {
			return err
		}

		if err = req.ApplyAdminUpdate(cmd.Actor(), update, h.clock()); err != nil {
			return err
		}

		return repo.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "quote request updated",
		"request_id", req.ID().String(),
		"status", req.Status().Code(),
		"total_quoted", req.TotalQuoted().String())
	return req, nil
}

// resolveUpdate turns the input into a domain update, snapshotting the
// catalog for supplied items.
func resolveUpdate(ctx context.Context, catalog ports.ProductCatalog, in AdminUpdateInput) (quote.AdminUpdate, error) {
	if in.Items == nil {
		return in.toDomain(nil), nil
	}
	items, err := resolveItems(ctx, catalog, in.Items)
	if err != nil {
		return quote.AdminUpdate{}, err
	}
	return in.toDomain(items), nil
}
