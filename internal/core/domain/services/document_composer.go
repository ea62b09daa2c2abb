package services

import (
	"strings"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// PreviewSuffix marks the document rendered by a preview.
	PreviewSuffix = "-preview"

	// MissingAddress is printed when a client has no address on file.
	MissingAddress = "Adresse non renseignée"

	documentDateLayout = "02/01/2006"
	documentCurrency   = "EUR"
	documentFolder     = "quotes/"
)

// DocumentComposer builds the payload handed to the PDF renderer. It works on
// plain data loaded beforehand and never fetches anything itself.
type DocumentComposer struct {
	printer *message.Printer
}

func NewDocumentComposer() DocumentComposer {
	return DocumentComposer{printer: message.NewPrinter(language.French)}
}

// Compose describes req as a key/value tree with the sections quote,
// emitter, client, items, totals and notes. Amounts are given both as
// decimal strings and formatted for a French reader.
func (c DocumentComposer) Compose(
	req *quote.Request,
	emitter ports.Identity,
	client *ports.Identity,
	addresses []ports.Address,
	issuedAt time.Time,
) ports.DocumentPayload {
	return ports.DocumentPayload{
		"quote":   c.quoteSection(req, issuedAt),
		"emitter": c.partySection(&emitter),
		"client":  c.clientSection(client, addresses),
		"items":   c.itemsSection(req.Items()),
		"totals":  c.totalsSection(req),
		"notes": map[string]any{
			"clientMessage":   req.ClientMessage(),
			"adminNotes":      req.AdminNotes(),
			"deliveryDetails": req.DeliveryDetails(),
		},
	}
}

// DocumentPath is the storage path of a request's document, named after the
// quote number, or the request number before one is assigned.
func DocumentPath(req *quote.Request, suffix string) string {
	number := req.QuoteNumber()
	if number == "" {
		number = req.RequestNumber()
	}
	return documentFolder + number + suffix + ".pdf"
}

// PreferredAddress picks the default address, else the first one, else the
// fallback text.
func PreferredAddress(addresses []ports.Address) string {
	if len(addresses) == 0 {
		return MissingAddress
	}
	chosen := addresses[0]
	for _, a := range addresses {
		if a.IsDefault {
			chosen = a
			break
		}
	}
	return formatAddress(chosen)
}

func (c DocumentComposer) quoteSection(req *quote.Request, issuedAt time.Time) map[string]any {
	number := req.QuoteNumber()
	if number == "" {
		number = req.RequestNumber()
	}
	section := map[string]any{
		"number":        number,
		"requestNumber": req.RequestNumber(),
		"quoteNumber":   req.QuoteNumber(),
		"status":        req.Status().Code(),
		"issuedAt":      issuedAt.Format(documentDateLayout),
		"createdAt":     req.CreatedAt().Format(documentDateLayout),
		"validUntil":    "",
	}
	if v := req.ValidUntil(); v != nil {
		section["validUntil"] = v.Format(documentDateLayout)
	}
	return section
}

func (c DocumentComposer) partySection(identity *ports.Identity) map[string]any {
	if identity == nil {
		return map[string]any{"name": "", "company": "", "email": "", "phone": ""}
	}
	return map[string]any{
		"name":    identity.Name,
		"company": identity.Company,
		"email":   identity.Email,
		"phone":   identity.Phone,
	}
}

func (c DocumentComposer) clientSection(client *ports.Identity, addresses []ports.Address) map[string]any {
	section := c.partySection(client)
	section["address"] = PreferredAddress(addresses)
	return section
}

func (c DocumentComposer) itemsSection(items []quote.Item) []map[string]any {
	lines := make([]map[string]any, 0, len(items))
	for i, item := range items {
		lines = append(lines, map[string]any{
			"position":           i + 1,
			"designation":        item.Name(),
			"brand":              item.Brand(),
			"dimension":          item.Size().Label(),
			"quantity":           item.Quantity(),
			"unitPrice":          item.UnitPrice().String(),
			"unitPriceFormatted": c.formatMoney(item.UnitPrice()),
			"lineTotal":          item.LineTotal().String(),
			"lineTotalFormatted": c.formatMoney(item.LineTotal()),
		})
	}
	return lines
}

func (c DocumentComposer) totalsSection(req *quote.Request) map[string]any {
	return map[string]any{
		"currency":               documentCurrency,
		"subtotal":               req.Subtotal().String(),
		"subtotalFormatted":      c.formatMoney(req.Subtotal()),
		"discountTotal":          req.DiscountTotal().String(),
		"discountTotalFormatted": c.formatMoney(req.DiscountTotal()),
		"totalQuoted":            req.TotalQuoted().String(),
		"totalQuotedFormatted":   c.formatMoney(req.TotalQuoted()),
	}
}

func (c DocumentComposer) formatMoney(m kernel.Money) string {
	return c.printer.Sprintf("%.2f €", m.Decimal().InexactFloat64())
}

func formatAddress(a ports.Address) string {
	var parts []string
	for _, p := range []string{a.Line1, a.Line2, strings.TrimSpace(a.PostalCode + " " + a.City), a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return MissingAddress
	}
	return strings.Join(parts, ", ")
}
