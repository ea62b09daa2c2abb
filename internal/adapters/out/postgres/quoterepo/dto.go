// Package quoterepo maps quote request aggregates to the quote_requests,
// quote_request_items and delivery_proofs tables.
package quoterepo

import (
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// QuoteRequestDTO is a row of quote_requests. Timestamps are owned by the
// domain, so GORM's automatic tracking is disabled.
type QuoteRequestDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequestNumber string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	QuoteNumber   *string         `gorm:"type:varchar(32);uniqueIndex"`
	Status        string          `gorm:"type:varchar(32);not null;index:idx_quote_requests_status_updated_at,priority:1"`
	ClientID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DiscountTotal decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalQuoted   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ValidUntil    *datatypes.Date

	ClientMessage   string `gorm:"type:text;not null;default:''"`
	AdminNotes      string `gorm:"type:text;not null;default:''"`
	DeliveryDetails string `gorm:"type:text;not null;default:''"`
	QuotePDFURL     string `gorm:"column:quote_pdf_url;type:text;not null;default:''"`

	ValidatedAt           *time.Time
	ValidatedIP           string `gorm:"column:validated_ip;type:varchar(45);not null;default:''"`
	ValidatedDeviceInfo   string `gorm:"type:text;not null;default:''"`
	RequestedDeliveryDate *datatypes.Date

	CourierID           *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryAssignedAt  *time.Time
	DeliveryConfirmedAt *time.Time
	ClientAbsentCount   int  `gorm:"not null;default:0"`
	CourierNotified     bool `gorm:"not null;default:false"`
	RequiresReview      bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false;index:idx_quote_requests_status_updated_at,priority:2"`

	Items []QuoteRequestItemDTO `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
	Proof *DeliveryProofDTO     `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE"`
}

func (QuoteRequestDTO) TableName() string {
	return "quote_requests"
}

// QuoteRequestItemDTO is a line snapshot. Position keeps the order of the lines.
type QuoteRequestItemDTO struct {
	RequestID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Position  int             `gorm:"primaryKey;autoIncrement:false"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Brand     string          `gorm:"type:varchar(255);not null;default:''"`
	Width     string          `gorm:"type:varchar(16);not null;default:''"`
	Profile   string          `gorm:"type:varchar(16);not null;default:''"`
	Diameter  string          `gorm:"type:varchar(16);not null;default:''"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (QuoteRequestItemDTO) TableName() string {
	return "quote_request_items"
}

// DeliveryProofDTO is the latest delivery attempt of a request.
type DeliveryProofDTO struct {
	RequestID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind       string    `gorm:"type:varchar(32);not null"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null"`
	Latitude   *float64
	Longitude  *float64
	Photo      []byte    `gorm:"type:bytea"`
	Signature  []byte    `gorm:"type:bytea"`
	Notes      string    `gorm:"type:text;not null;default:''"`
	RecordedAt time.Time `gorm:"not null"`
}

func (DeliveryProofDTO) TableName() string {
	return "delivery_proofs"
}

func fromDomain(req *quote.Request) QuoteRequestDTO {
	s := req.State()
	id := s.ID.Bytes()

	dto := QuoteRequestDTO{
		ID:                    id,
		RequestNumber:         s.RequestNumber,
		Status:                s.Status.Code(),
		ClientID:              s.ClientID.Bytes(),
		Subtotal:              req.Subtotal().Decimal(),
		DiscountTotal:         s.DiscountTotal.Decimal(),
		TotalQuoted:           s.TotalQuoted.Decimal(),
		ValidUntil:            toDate(s.ValidUntil),
		ClientMessage:         s.ClientMessage,
		AdminNotes:            s.AdminNotes,
		DeliveryDetails:       s.DeliveryDetails,
		QuotePDFURL:           s.QuotePDFURL,
		RequestedDeliveryDate: toDate(s.RequestedDeliveryDate),
		DeliveryAssignedAt:    s.DeliveryAssignedAt,
		DeliveryConfirmedAt:   s.DeliveryConfirmedAt,
		ClientAbsentCount:     s.ClientAbsentCount,
		CourierNotified:       s.CourierNotified,
		RequiresReview:        s.RequiresReview,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
		Items:                 itemsFromDomain(id, s.Items),
	}
	if s.QuoteNumber != "" {
		dto.QuoteNumber = &s.QuoteNumber
	}
	if v := s.Validation; v != nil {
		dto.ValidatedAt = &v.At
		dto.ValidatedIP = v.IP
		dto.ValidatedDeviceInfo = v.DeviceInfo
	}
	if s.CourierID != nil {
		courierID := s.CourierID.Bytes()
		dto.CourierID = &courierID
	}
	if s.Proof != nil {
		proof := proofFromDomain(id, *s.Proof)
		dto.Proof = &proof
	}
	return dto
}

func itemsFromDomain(requestID uuid.UUID, items []quote.Item) []QuoteRequestItemDTO {
	dtos := make([]QuoteRequestItemDTO, 0, len(items))
	for i, item := range items {
		size := item.Size()
		dtos = append(dtos, QuoteRequestItemDTO{
			RequestID: requestID,
			Position:  i,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Brand:     item.Brand(),
			Width:     size.Width,
			Profile:   size.Profile,
			Diameter:  size.Diameter,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}
	return dtos
}

func proofFromDomain(requestID uuid.UUID, proof quote.DeliveryProof) DeliveryProofDTO {
	dto := DeliveryProofDTO{
		RequestID:  requestID,
		Kind:       string(proof.Kind()),
		CourierID:  proof.CourierID().Bytes(),
		Photo:      proof.Photo(),
		Signature:  proof.Signature(),
		Notes:      proof.Notes(),
		RecordedAt: proof.RecordedAt(),
	}
	if loc := proof.Location(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}
	return dto
}

func toDomain(dto QuoteRequestDTO) (*quote.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	status, err := quote.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.DiscountTotal)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalQuoted)
	if err != nil {
		return nil, err
	}
	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	state := quote.RequestState{
		ID:                    id,
		RequestNumber:         dto.RequestNumber,
		Status:                status,
		ClientID:              clientID,
		Items:                 items,
		DiscountTotal:         discount,
		TotalQuoted:           total,
		ValidUntil:            fromDate(dto.ValidUntil),
		ClientMessage:         dto.ClientMessage,
		AdminNotes:            dto.AdminNotes,
		DeliveryDetails:       dto.DeliveryDetails,
		QuotePDFURL:           dto.QuotePDFURL,
		RequestedDeliveryDate: fromDate(dto.RequestedDeliveryDate),
		DeliveryAssignedAt:    utc(dto.DeliveryAssignedAt),
		DeliveryConfirmedAt:   utc(dto.DeliveryConfirmedAt),
		ClientAbsentCount:     dto.ClientAbsentCount,
		CourierNotified:       dto.CourierNotified,
		RequiresReview:        dto.RequiresReview,
		CreatedAt:             dto.CreatedAt.UTC(),
		UpdatedAt:             dto.UpdatedAt.UTC(),
	}
	if dto.QuoteNumber != nil {
		state.QuoteNumber = *dto.QuoteNumber
	}
	if dto.ValidatedAt != nil {
		state.Validation = &quote.ClientValidation{
			At:         dto.ValidatedAt.UTC(),
			IP:         dto.ValidatedIP,
			DeviceInfo: dto.ValidatedDeviceInfo,
		}
	}
	if dto.CourierID != nil {
		courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
		if err != nil {
			return nil, err
		}
		state.CourierID = &courierID
	}
	if dto.Proof != nil {
		proof, err := proofToDomain(*dto.Proof)
		if err != nil {
			return nil, err
		}
		state.Proof = &proof
	}

	return quote.RestoreRequest(state)
}

func itemsToDomain(dtos []QuoteRequestItemDTO) ([]quote.Item, error) {
	items := make([]quote.Item, 0, len(dtos))
	for _, dto := range dtos {
		productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(dto.UnitPrice)
		if err != nil {
			return nil, err
		}
		item, err := quote.NewItem(productID, dto.Name, dto.Brand,
			quote.TireSize{Width: dto.Width, Profile: dto.Profile, Diameter: dto.Diameter},
			dto.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func proofToDomain(dto DeliveryProofDTO) (quote.DeliveryProof, error) {
	courierID, err := kernel.UUIDFromBytes(dto.CourierID[:])
	if err != nil {
		return quote.DeliveryProof{}, err
	}
	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return quote.DeliveryProof{}, err
		}
		location = &p
	}
	return quote.RestoreDeliveryProof(quote.AttemptKind(dto.Kind), courierID, location,
		dto.Photo, dto.Signature, dto.Notes, dto.RecordedAt.UTC())
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

func fromDate(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	y, m, day := t.Date()
	t = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
