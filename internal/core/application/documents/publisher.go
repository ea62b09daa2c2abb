// Package documents renders quote documents and keeps exactly one live
// object per request in the object store.
package documents

import (
	"context"
	"log/slog"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/domain/services"
	"devis/internal/core/ports"
	"devis/internal/pkg/errs"
)

const contentType = "application/pdf"

// Variant selects which document of a request is produced.
type Variant int

const (
	// Main is the document sent to the client. Its URL is recorded on the request.
	Main Variant = iota

	// Preview is a staff-only rendering stored next to the main document.
	Preview
)

func (v Variant) suffix() string {
	if v == Preview {
		return services.PreviewSuffix
	}
	return ""
}

// Publisher loads what a document needs, renders it and stores it.
type Publisher struct {
	composer       services.DocumentComposer
	renderer       ports.PdfRenderer
	store          ports.ObjectStore
	directory      ports.IdentityDirectory
	addressBook    ports.AddressBook
	defaultEmitter ports.Identity
	clock          func() time.Time
	logger         *slog.Logger
}

func NewPublisher(
	renderer ports.PdfRenderer,
	store ports.ObjectStore,
	directory ports.IdentityDirectory,
	addressBook ports.AddressBook,
	defaultEmitter ports.Identity,
	clock func() time.Time,
	logger *slog.Logger,
) *Publisher {
	if clock == nil {
		clock = time.Now
	}
	return &Publisher{
		composer:       services.NewDocumentComposer(),
		renderer:       renderer,
		store:          store,
		directory:      directory,
		addressBook:    addressBook,
		defaultEmitter: defaultEmitter,
		clock:          clock,
		logger:         logger.With("component", "document_publisher"),
	}
}

// Publish renders req on behalf of emitterID and stores the result, returning
// its URL. The request itself is not modified.
//
// For the main variant the previously stored object is deleted before the
// upload; a failed delete is logged and ignored. Render and upload failures
// are returned as errs.DependencyFailureError and nothing is recorded.
func (p *Publisher) Publish(ctx context.Context, req *quote.Request, emitterID kernel.UUID, variant Variant) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	emitter, err := p.emitter(ctx, emitterID)
	if err != nil {
		return "", err
	}
	client, err := p.directory.Identity(ctx, req.ClientID())
	if err != nil {
		return "", errs.NewDependencyFailureErrorWithCause("identity directory", err)
	}
	addresses, err := p.addressBook.Addresses(ctx, req.ClientID())
	if err != nil {
		return "", errs.NewDependencyFailureErrorWithCause("address book", err)
	}

	payload := p.composer.Compose(req, emitter, client, addresses, p.clock())
	pdf, err := p.renderer.Render(ctx, payload)
	if err != nil {
		return "", errs.NewDependencyFailureErrorWithCause("pdf renderer", err)
	}

	if variant == Main {
		p.deletePrevious(ctx, req)
	}

	path := services.DocumentPath(req, variant.suffix())
	url, err := p.store.Upload(ctx, pdf, path, contentType)
	if err != nil {
		return "", errs.NewDependencyFailureErrorWithCause("object store", err)
	}

	p.logger.InfoContext(ctx, "quote document stored",
		"request_id", req.ID().String(),
		"request_number", req.RequestNumber(),
		"path", path,
		"size", len(pdf))
	return url, nil
}

func (p *Publisher) emitter(ctx context.Context, id kernel.UUID) (ports.Identity, error) {
	if id.IsZero() {
		return p.defaultEmitter, nil
	}
	identity, err := p.directory.Identity(ctx, id)
	if err != nil {
		return ports.Identity{}, errs.NewDependencyFailureErrorWithCause("identity directory", err)
	}
	if identity == nil {
		return p.defaultEmitter, nil
	}
	return *identity, nil
}

func (p *Publisher) deletePrevious(ctx context.Context, req *quote.Request) {
	previous := req.QuotePDFURL()
	if previous == "" {
		return
	}
	path, ok := p.store.PathFromURL(previous)
	if !ok {
		p.logger.WarnContext(ctx, "stored document url does not belong to the object store",
			"request_id", req.ID().String(), "url", previous)
		return
	}
	if err := p.store.Delete(ctx, path); err != nil {
		p.logger.WarnContext(ctx, "failed to delete previous quote document",
			"request_id", req.ID().String(), "path", path, "error", err)
	}
}
