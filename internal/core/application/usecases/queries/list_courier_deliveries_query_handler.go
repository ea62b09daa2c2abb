package queries

import (
	"context"
	"database/sql"

	"devis/internal/adapters/out/postgres/pgerrs"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListCourierDeliveriesQueryHandler lists the OUT_FOR_DELIVERY requests
// assigned to a courier, earliest requested date first.
type ListCourierDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListCourierDeliveriesQueryHandler(db *gorm.DB) ListCourierDeliveriesQueryHandler {
	return ListCourierDeliveriesQueryHandler{db: db}
}

func (h ListCourierDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListCourierDeliveriesQuery,
) ([]CourierDeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			q.id,
			q.request_number,
			COALESCE(q.quote_number, ''),
			COALESCE(u.name, ''),
			COALESCE(u.phone, ''),
			COALESCE(a.line1, ''),
			COALESCE(a.line2, ''),
			COALESCE(a.postal_code, ''),
			COALESCE(a.city, ''),
			q.delivery_details,
			q.requested_delivery_date,
			q.total_quoted,
			q.client_absent_count,
			q.requires_review,
			q.delivery_assigned_at
		FROM quote_requests q
		LEFT JOIN users u ON u.id = q.client_id
		LEFT JOIN LATERAL (
			SELECT line1, line2, postal_code, city
			FROM addresses
			WHERE user_id = q.client_id
			ORDER BY is_default DESC, created_at
			LIMIT 1
		) a ON TRUE
		WHERE q.courier_id = ? AND q.status = ?
		ORDER BY q.requested_delivery_date NULLS LAST, q.delivery_assigned_at, q.request_number
	`, query.Courier().ID().Bytes(), quote.OutForDelivery.Code()).Rows()
	if err != nil {
		return nil, pgerrs.Classify(requestsResource, err)
	}
	defer rows.Close()

	deliveries := make([]CourierDeliveryView, 0)
	for rows.Next() {
		var (
			delivery     CourierDeliveryView
			id           uuid.UUID
			total        decimal.Decimal
			deliveryDate sql.NullTime
			assignedAt   sql.NullTime
		)
		err = rows.Scan(
			&id,
			&delivery.RequestNumber,
			&delivery.QuoteNumber,
			&delivery.ClientName,
			&delivery.ClientPhone,
			&delivery.AddressLine1,
			&delivery.AddressLine2,
			&delivery.PostalCode,
			&delivery.City,
			&delivery.DeliveryDetails,
			&deliveryDate,
			&total,
			&delivery.ClientAbsentCount,
			&delivery.RequiresReview,
			&assignedAt,
		)
		if err != nil {
			return nil, pgerrs.Classify(requestsResource, err)
		}

		if delivery.RequestID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if delivery.TotalQuoted, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		delivery.RequestedDeliveryDate = nullTime(deliveryDate)
		delivery.AssignedAt = nullTime(assignedAt)
		deliveries = append(deliveries, delivery)
	}

	if err = rows.Err(); err != nil {
		return nil, pgerrs.Classify(requestsResource, err)
	}
	return deliveries, nil
}
