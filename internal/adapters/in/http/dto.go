package http

import (
	"time"

	"devis/internal/core/application/usecases/commands"
	"devis/internal/core/application/usecases/queries"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/domain/services"
	"devis/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

type ItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"gte=0,lte=1000"`
	UnitPrice *string `json:"unitPrice,omitempty" validate:"omitempty,numeric"`
}

type CreateQuoteRequestRequest struct {
	Items   []ItemRequest `json:"items" validate:"required,min=1,dive"`
	Message string        `json:"message" validate:"max=2000"`
}

// UpdateQuoteRequestRequest is a partial staff edit. Omitted fields are kept;
// a present items array replaces every line.
type UpdateQuoteRequestRequest struct {
	Items           []ItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
	DiscountTotal   *string       `json:"discountTotal,omitempty" validate:"omitempty,numeric"`
	TotalQuoted     *string       `json:"totalQuoted,omitempty" validate:"omitempty,numeric"`
	ValidUntil      *string       `json:"validUntil,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AdminNotes      *string       `json:"adminNotes,omitempty" validate:"omitempty,max=4000"`
	DeliveryDetails *string       `json:"deliveryDetails,omitempty" validate:"omitempty,max=2000"`
}

type SendQuoteRequest struct {
	UpdateQuoteRequestRequest
	ValidationURL string `json:"validationUrl,omitempty" validate:"omitempty,url"`
}

type ValidateQuoteRequest struct {
	RequestedDeliveryDate *string `json:"requestedDeliveryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DeviceInfo            string  `json:"deviceInfo,omitempty" validate:"max=512"`
}

type AssignCourierRequest struct {
	CourierID       string  `json:"courierId" validate:"required,uuid"`
	DeliveryDetails *string `json:"deliveryDetails,omitempty" validate:"omitempty,max=2000"`
}

// ProofRequest carries delivery evidence. Photo and signature are base64,
// optionally as data URLs.
type ProofRequest struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Photo     string   `json:"photo,omitempty"`
	Signature string   `json:"signature,omitempty"`
	Notes     string   `json:"notes,omitempty" validate:"max=2000"`
}

type PreviewResponse struct {
	URL string `json:"url"`
}

type ItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Brand     string `json:"brand"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type QuoteRequestResponse struct {
	ID                    string         `json:"id"`
	RequestNumber         string         `json:"requestNumber"`
	QuoteNumber           string         `json:"quoteNumber,omitempty"`
	Status                string         `json:"status"`
	ClientID              string         `json:"clientId"`
	Items                 []ItemResponse `json:"items"`
	Subtotal              string         `json:"subtotal"`
	DiscountTotal         string         `json:"discountTotal"`
	TotalQuoted           string         `json:"totalQuoted"`
	ValidUntil            string         `json:"validUntil,omitempty"`
	ClientMessage         string         `json:"clientMessage,omitempty"`
	AdminNotes            string         `json:"adminNotes,omitempty"`
	DeliveryDetails       string         `json:"deliveryDetails,omitempty"`
	QuotePDFURL           string         `json:"quotePdfUrl,omitempty"`
	ValidatedAt           *time.Time     `json:"validatedAt,omitempty"`
	RequestedDeliveryDate string         `json:"requestedDeliveryDate,omitempty"`
	CourierID             string         `json:"courierId,omitempty"`
	DeliveryAssignedAt    *time.Time     `json:"deliveryAssignedAt,omitempty"`
	DeliveryConfirmedAt   *time.Time     `json:"deliveryConfirmedAt,omitempty"`
	ClientAbsentCount     int            `json:"clientAbsentCount"`
	RequiresReview        bool           `json:"requiresReview"`
	CreatedAt             time.Time      `json:"createdAt"`
	UpdatedAt             time.Time      `json:"updatedAt"`
}

type DeliveryResponse struct {
	RequestID             string     `json:"requestId"`
	RequestNumber         string     `json:"requestNumber"`
	QuoteNumber           string     `json:"quoteNumber,omitempty"`
	ClientName            string     `json:"clientName,omitempty"`
	ClientPhone           string     `json:"clientPhone,omitempty"`
	AddressLine1          string     `json:"addressLine1,omitempty"`
	AddressLine2          string     `json:"addressLine2,omitempty"`
	PostalCode            string     `json:"postalCode,omitempty"`
	City                  string     `json:"city,omitempty"`
	DeliveryDetails       string     `json:"deliveryDetails,omitempty"`
	RequestedDeliveryDate string     `json:"requestedDeliveryDate,omitempty"`
	TotalQuoted           string     `json:"totalQuoted"`
	ClientAbsentCount     int        `json:"clientAbsentCount"`
	RequiresReview        bool       `json:"requiresReview"`
	AssignedAt            *time.Time `json:"assignedAt,omitempty"`
}

func (r ItemRequest) toInput() (commands.ItemInput, error) {
	productID, err := kernel.UUIDFromString(r.ProductID)
	if err != nil {
		return commands.ItemInput{}, err
	}
	input := commands.ItemInput{ProductID: productID, Quantity: r.Quantity}
	if r.UnitPrice != nil {
		price, err := kernel.MoneyFromString(*r.UnitPrice)
		if err != nil {
			return commands.ItemInput{}, err
		}
		input.UnitPrice = &price
	}
	return input, nil
}

func itemInputs(items []ItemRequest) ([]commands.ItemInput, error) {
	if items == nil {
		return nil, nil
	}
	inputs := make([]commands.ItemInput, 0, len(items))
	for _, item := range items {
		input, err := item.toInput()
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (r UpdateQuoteRequestRequest) toInput() (commands.AdminUpdateInput, error) {
	items, err := itemInputs(r.Items)
	if err != nil {
		return commands.AdminUpdateInput{}, err
	}
	discount, err := optionalMoney(r.DiscountTotal)
	if err != nil {
		return commands.AdminUpdateInput{}, err
	}
	total, err := optionalMoney(r.TotalQuoted)
	if err != nil {
		return commands.AdminUpdateInput{}, err
	}
	validUntil, err := optionalDate("validUntil", r.ValidUntil)
	if err != nil {
		return commands.AdminUpdateInput{}, err
	}

	return commands.AdminUpdateInput{
		Items:           items,
		DiscountTotal:   discount,
		TotalQuoted:     total,
		ValidUntil:      validUntil,
		AdminNotes:      r.AdminNotes,
		DeliveryDetails: r.DeliveryDetails,
	}, nil
}

func (r ProofRequest) toInput() services.ProofInput {
	return services.ProofInput{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Photo:     r.Photo,
		Signature: r.Signature,
		Notes:     r.Notes,
	}
}

func optionalMoney(s *string) (*kernel.Money, error) {
	if s == nil {
		return nil, nil
	}
	m, err := kernel.MoneyFromString(*s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func optionalDate(param string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func fromRequest(req *quote.Request) QuoteRequestResponse {
	items := make([]ItemResponse, 0, len(req.Items()))
	for _, item := range req.Items() {
		items = append(items, ItemResponse{
			ProductID: item.ProductID().String(),
			Name:      item.Name(),
			Brand:     item.Brand(),
			Size:      item.Size().Label(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			LineTotal: item.LineTotal().String(),
		})
	}

	resp := QuoteRequestResponse{
		ID:                    req.ID().String(),
		RequestNumber:         req.RequestNumber(),
		QuoteNumber:           req.QuoteNumber(),
		Status:                req.Status().Code(),
		ClientID:              req.ClientID().String(),
		Items:                 items,
		Subtotal:              req.Subtotal().String(),
		DiscountTotal:         req.DiscountTotal().String(),
		TotalQuoted:           req.TotalQuoted().String(),
		ValidUntil:            formatDate(req.ValidUntil()),
		ClientMessage:         req.ClientMessage(),
		AdminNotes:            req.AdminNotes(),
		DeliveryDetails:       req.DeliveryDetails(),
		QuotePDFURL:           req.QuotePDFURL(),
		RequestedDeliveryDate: formatDate(req.RequestedDeliveryDate()),
		DeliveryAssignedAt:    req.DeliveryAssignedAt(),
		DeliveryConfirmedAt:   req.DeliveryConfirmedAt(),
		ClientAbsentCount:     req.ClientAbsentCount(),
		RequiresReview:        req.RequiresReview(),
		CreatedAt:             req.CreatedAt(),
		UpdatedAt:             req.UpdatedAt(),
	}
	if v := req.Validation(); v != nil {
		at := v.At
		resp.ValidatedAt = &at
	}
	if id := req.CourierID(); id != nil {
		resp.CourierID = id.String()
	}
	return resp
}

func fromView(view *queries.QuoteRequestView) QuoteRequestResponse {
	items := make([]ItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, ItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Brand:     item.Brand,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
			LineTotal: item.LineTotal.String(),
		})
	}

	resp := QuoteRequestResponse{
		ID:                    view.ID.String(),
		RequestNumber:         view.RequestNumber,
		QuoteNumber:           view.QuoteNumber,
		Status:                view.Status.Code(),
		ClientID:              view.ClientID.String(),
		Items:                 items,
		Subtotal:              view.Subtotal.String(),
		DiscountTotal:         view.DiscountTotal.String(),
		TotalQuoted:           view.TotalQuoted.String(),
		ValidUntil:            formatDate(view.ValidUntil),
		ClientMessage:         view.ClientMessage,
		AdminNotes:            view.AdminNotes,
		DeliveryDetails:       view.DeliveryDetails,
		QuotePDFURL:           view.QuotePDFURL,
		ValidatedAt:           view.ValidatedAt,
		RequestedDeliveryDate: formatDate(view.RequestedDeliveryDate),
		DeliveryAssignedAt:    view.DeliveryAssignedAt,
		DeliveryConfirmedAt:   view.DeliveryConfirmedAt,
		ClientAbsentCount:     view.ClientAbsentCount,
		RequiresReview:        view.RequiresReview,
		CreatedAt:             view.CreatedAt,
		UpdatedAt:             view.UpdatedAt,
	}
	if view.CourierID != nil {
		resp.CourierID = view.CourierID.String()
	}
	return resp
}

func fromDelivery(d queries.CourierDeliveryView) DeliveryResponse {
	return DeliveryResponse{
		RequestID:             d.RequestID.String(),
		RequestNumber:         d.RequestNumber,
		QuoteNumber:           d.QuoteNumber,
		ClientName:            d.ClientName,
		ClientPhone:           d.ClientPhone,
		AddressLine1:          d.AddressLine1,
		AddressLine2:          d.AddressLine2,
		PostalCode:            d.PostalCode,
		City:                  d.City,
		DeliveryDetails:       d.DeliveryDetails,
		RequestedDeliveryDate: formatDate(d.RequestedDeliveryDate),
		TotalQuoted:           d.TotalQuoted.String(),
		ClientAbsentCount:     d.ClientAbsentCount,
		RequiresReview:        d.RequiresReview,
		AssignedAt:            d.AssignedAt,
	}
}
