package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"devis/internal/adapters/out/postgres/pgerrs"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	opViewQuoteRequest = "view quote request"

	requestsResource = "quote_requests"
	itemsResource    = "quote_request_items"
)

// GetQuoteRequestQueryHandler reads a quote request and its lines.
type GetQuoteRequestQueryHandler struct {
	db *gorm.DB
}

func NewGetQuoteRequestQueryHandler(db *gorm.DB) GetQuoteRequestQueryHandler {
	return GetQuoteRequestQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown id and
// errs.ForbiddenError when the viewer may not see the request.
func (h GetQuoteRequestQueryHandler) Handle(ctx context.Context, query GetQuoteRequestQuery) (*QuoteRequestView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	view, err := h.loadRequest(db, query.RequestID())
	if err != nil {
		return nil, err
	}
	if err := authorizeView(query.Viewer(), view); err != nil {
		return nil, err
	}
	if query.Viewer().Kind() != quote.ActorStaff {
		view.AdminNotes = ""
	}

	items, err := h.loadItems(db, query.RequestID())
	if err != nil {
		return nil, err
	}
	view.Items = items
	return view, nil
}

func authorizeView(viewer quote.Actor, view *QuoteRequestView) error {
	switch viewer.Kind() {
	case quote.ActorStaff:
		return nil
	case quote.ActorClient:
		if viewer.ID().IsEqual(view.ClientID) {
			return nil
		}
		return errs.NewForbiddenError(opViewQuoteRequest, "quote request belongs to another client")
	case quote.ActorCourier:
		if view.CourierID != nil && viewer.ID().IsEqual(*view.CourierID) {
			return nil
		}
		return errs.NewForbiddenError(opViewQuoteRequest, "courier is not assigned to this request")
	default:
		return errs.NewForbiddenError(opViewQuoteRequest, "actor kind "+string(viewer.Kind()))
	}
}

func (h GetQuoteRequestQueryHandler) loadRequest(db *gorm.DB, id kernel.UUID) (*QuoteRequestView, error) {
	var (
		view                                  QuoteRequestView
		rawID, clientID                       uuid.UUID
		courierID                             uuid.NullUUID
		quoteNumber                           sql.NullString
		status                                string
		subtotal, discount, total             decimal.Decimal
		validUntil, validatedAt, deliveryDate sql.NullTime
		assignedAt, confirmedAt               sql.NullTime
	)

	row := db.Raw(`
		SELECT
			id,
			request_number,
			quote_number,
			status,
			client_id,
			subtotal,
			discount_total,
			total_quoted,
			valid_until,
			client_message,
			admin_notes,
			delivery_details,
			quote_pdf_url,
			validated_at,
			requested_delivery_date,
			courier_id,
			delivery_assigned_at,
			delivery_confirmed_at,
			client_absent_count,
			requires_review,
			created_at,
			updated_at
		FROM quote_requests
		WHERE id = ?
	`, id.Bytes()).Row()

	err := row.Scan(
		&rawID,
		&view.RequestNumber,
		&quoteNumber,
		&status,
		&clientID,
		&subtotal,
		&discount,
		&total,
		&validUntil,
		&view.ClientMessage,
		&view.AdminNotes,
		&view.DeliveryDetails,
		&view.QuotePDFURL,
		&validatedAt,
		&deliveryDate,
		&courierID,
		&assignedAt,
		&confirmedAt,
		&view.ClientAbsentCount,
		&view.RequiresReview,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("quoteRequestId", id.String())
	}
	if err != nil {
		return nil, pgerrs.Classify(requestsResource, err)
	}

	if view.ID, err = toKernelUUID(rawID); err != nil {
		return nil, err
	}
	if view.ClientID, err = toKernelUUID(clientID); err != nil {
		return nil, err
	}
	if courierID.Valid {
		cid, err := toKernelUUID(courierID.UUID)
		if err != nil {
			return nil, err
		}
		view.CourierID = &cid
	}
	if view.Status, err = quote.ParseStatus(status); err != nil {
		return nil, err
	}
	if view.Subtotal, err = kernel.NewMoney(subtotal); err != nil {
		return nil, err
	}
	if view.DiscountTotal, err = kernel.NewMoney(discount); err != nil {
		return nil, err
	}
	if view.TotalQuoted, err = kernel.NewMoney(total); err != nil {
		return nil, err
	}

	view.QuoteNumber = quoteNumber.String
	view.ValidUntil = nullTime(validUntil)
	view.ValidatedAt = nullTime(validatedAt)
	view.RequestedDeliveryDate = nullTime(deliveryDate)
	view.DeliveryAssignedAt = nullTime(assignedAt)
	view.DeliveryConfirmedAt = nullTime(confirmedAt)
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	return &view, nil
}

func (h GetQuoteRequestQueryHandler) loadItems(db *gorm.DB, id kernel.UUID) ([]QuoteRequestItemView, error) {
	rows, err := db.Raw(`
		SELECT
			product_id,
			name,
			brand,
			width,
			profile,
			diameter,
			quantity,
			unit_price
		FROM quote_request_items
		WHERE request_id = ?
		ORDER BY position
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, pgerrs.Classify(itemsResource, err)
	}
	defer rows.Close()

	items := make([]QuoteRequestItemView, 0)
	for rows.Next() {
		var (
			item      QuoteRequestItemView
			productID uuid.UUID
			size      quote.TireSize
			unitPrice decimal.Decimal
		)
		err = rows.Scan(
			&productID,
			&item.Name,
			&item.Brand,
			&size.Width,
			&size.Profile,
			&size.Diameter,
			&item.Quantity,
			&unitPrice,
		)
		if err != nil {
			return nil, pgerrs.Classify(itemsResource, err)
		}

		if item.ProductID, err = toKernelUUID(productID); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}
		item.Size = size.Label()
		item.LineTotal = item.UnitPrice.Times(item.Quantity)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, pgerrs.Classify(itemsResource, err)
	}
	return items, nil
}

func toKernelUUID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	utc := t.Time.UTC()
	return &utc
}
