// Package http exposes the quote lifecycle over a JSON API.
//
// @title						Devis API
// @version					1.0
// @description				Quote requests for tyre orders, from the cart to the delivery.
// @BasePath					/api/v1
// @securityDefinitions.apikey	ActorID
// @in							header
// @name						X-Actor-ID
// @securityDefinitions.apikey	ActorRole
// @in							header
// @name						X-Actor-Role
package http

import (
	"context"
	"net/http"

	"devis/internal/core/application/usecases/commands"
	"devis/internal/core/application/usecases/queries"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"

	"github.com/labstack/echo/v4"
)

// Handler is a use case as seen from the transport: one input, one result.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// UseCases groups the handlers behind the routes.
type UseCases struct {
	CreateQuoteRequest    Handler[commands.CreateQuoteRequestCommand, *quote.Request]
	UpdateQuoteRequest    Handler[commands.AdminUpdateQuoteRequestCommand, *quote.Request]
	SendQuote             Handler[commands.GenerateAndSendQuoteCommand, *quote.Request]
	PreviewQuote          Handler[commands.PreviewQuoteCommand, string]
	ValidateQuote         Handler[commands.ValidateQuoteCommand, *quote.Request]
	AssignCourier         Handler[commands.AssignCourierCommand, *quote.Request]
	ConfirmDelivery       Handler[commands.ConfirmDeliveryCommand, *quote.Request]
	MarkClientAbsent      Handler[commands.MarkClientAbsentCommand, *quote.Request]
	GetQuoteRequest       Handler[queries.GetQuoteRequestQuery, *queries.QuoteRequestView]
	ListCourierDeliveries Handler[queries.ListCourierDeliveriesQuery, []queries.CourierDeliveryView]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	useCases UseCases

	// validationURLBase prefixes the request id in the link sent with a quote
	// when the caller does not provide one.
	validationURLBase string
}

func NewServer(useCases UseCases, validationURLBase string) *Server {
	return &Server{useCases: useCases, validationURLBase: validationURLBase}
}

// respond hides staff-only fields from other actors.
func respond(c echo.Context, status int, actor quote.Actor, req *quote.Request) error {
	body := fromRequest(req)
	if actor.Kind() != quote.ActorStaff {
		body.AdminNotes = ""
	}
	return c.JSON(status, body)
}

func bindAndValidate(c echo.Context, body any) error {
	if err := c.Bind(body); err != nil {
		return err
	}
	return c.Validate(body)
}

// CreateQuoteRequest godoc
//
//	@Summary	Submit the cart as a quote request
//	@Tags		quote-requests
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateQuoteRequestRequest	true	"Cart lines"
//	@Success	201		{object}	QuoteRequestResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/quote-requests [post]
func (s *Server) CreateQuoteRequest(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var body CreateQuoteRequestRequest
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}
	items, err := itemInputs(body.Items)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateQuoteRequestCommand(actor, items, body.Message)
	if err != nil {
		return err
	}
	req, err := s.useCases.CreateQuoteRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, actor, req)
}

// GetQuoteRequest godoc
//
//	@Summary	Read a quote request
//	@Tags		quote-requests
//	@Produce	json
//	@Param		id	path		string	true	"Quote request id"
//	@Success	200	{object}	QuoteRequestResponse
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/quote-requests/{id} [get]
func (s *Server) GetQuoteRequest(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := requestIDParam(c)
	if err != nil {
		return err
	}

	query, err := queries.NewGetQuoteRequestQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.useCases.GetQuoteRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, fromView(view))
}

// UpdateQuoteRequest godoc
//
//	@Summary	Edit lines and pricing
//	@Tags		quote-requests
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Quote request id"
//	@Param		body	body		UpdateQuoteRequestRequest	true	"Fields to change"
//	@Success	200		{object}	QuoteRequestResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/quote-requests/{id} [patch]
func (s *Server) UpdateQuoteRequest(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := requestIDParam(c)
	if err != nil {
		return err
	}
	var body UpdateQuoteRequestRequest
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}
	update, err := body.toInput()
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdminUpdateQuoteRequestCommand(actor, id, update)
	if err != nil {
		return err
	}
	req, err := s.useCases.UpdateQuoteRequest.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, actor, req)
}

// SendQuote godoc
//
//	@Summary		Generate the quote document and send it
//	@Description	Applies an optional last edit, numbers the quote, stores its PDF and notifies the client.
//	@Tags			quote-requests
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Quote request id"
//	@Param			body	body		SendQuoteRequest	false	"Last edit"
//	@Success		200		{object}	QuoteRequestResponse
//	@Failure		403		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Security		ActorID
//	@Security		ActorRole
//	@Router			/quote-requests/{id}/send [post]
func (s *Server) SendQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := requestIDParam(c)
	if err != nil {
		return err
	}
	var body SendQuoteRequest
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}
	update, err := body.toInput()
	if err != nil {
		return err
	}

	validationURL := body.ValidationURL
	if validationURL == "" && s.validationURLBase != "" {
		validationURL = s.validationURLBase + "/" + id.String()
	}

	cmd, err := commands.NewGenerateAndSendQuoteCommand(actor, id, update, validationURL)
	if err != nil {
		return err
	}
	req, err := s.useCases.SendQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, actor, req)
}

// PreviewQuote godoc
//
//	@Summary	Render a preview of the quote document
//	@Tags		quote-requests
//	@Produce	json
//	@Param		id	path		string	true	"Quote request id"
//	@Success	200	{object}	PreviewResponse
//	@Failure	403	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Failure	502	{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/quote-requests/{id}/preview [post]
func (s *Server) PreviewQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := requestIDParam(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewPreviewQuoteCommand(actor, id)
	if err != nil {
		return err
	}
	url, err := s.useCases.PreviewQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, PreviewResponse{URL: url})
}

// ValidateQuote godoc
//
//	@Summary	Accept a quote
//	@Tags		quote-requests
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Quote request id"
//	@Param		body	body		ValidateQuoteRequest	false	"Delivery wishes"
//	@Success	200		{object}	QuoteRequestResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/quote-requests/{id}/validate [post]
func (s *Server) ValidateQuote(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := requestIDParam(c)
	if err != nil {
		return err
	}
	var body ValidateQuoteRequest
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}
	deliveryDate, err := optionalDate("requestedDeliveryDate", body.RequestedDeliveryDate)
	if err != nil {
		return err
	}
	deviceInfo := body.DeviceInfo
	if deviceInfo == "" {
		deviceInfo = c.Request().UserAgent()
	}

	cmd, err := commands.NewValidateQuoteCommand(actor, id, c.RealIP(), deviceInfo, deliveryDate)
	if err != nil {
		return err
	}
	req, err := s.useCases.ValidateQuote.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, actor, req)
}

// AssignCourier godoc
//
//	@Summary	Hand a validated request to a courier
//	@Tags		deliveries
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Quote request id"
//	@Param		body	body		AssignCourierRequest	true	"Courier"
//	@Success	200		{object}	QuoteRequestResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/quote-requests/{id}/courier [post]
func (s *Server) AssignCourier(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := requestIDParam(c)
	if err != nil {
		return err
	}
	var body AssignCourierRequest
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}
	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignCourierCommand(actor, id, courierID, body.DeliveryDetails)
	if err != nil {
		return err
	}
	req, err := s.useCases.AssignCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, actor, req)
}

// ConfirmDelivery godoc
//
//	@Summary	Record a successful delivery
//	@Tags		deliveries
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Quote request id"
//	@Param		body	body		ProofRequest	true	"Proof of delivery"
//	@Success	200		{object}	QuoteRequestResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/quote-requests/{id}/delivery/confirm [post]
func (s *Server) ConfirmDelivery(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := requestIDParam(c)
	if err != nil {
		return err
	}
	var body ProofRequest
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewConfirmDeliveryCommand(actor, id, body.toInput())
	if err != nil {
		return err
	}
	req, err := s.useCases.ConfirmDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, actor, req)
}

// MarkClientAbsent godoc
//
//	@Summary	Record a delivery attempt where the client was absent
//	@Tags		deliveries
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Quote request id"
//	@Param		body	body		ProofRequest	false	"Evidence of the attempt"
//	@Success	200		{object}	QuoteRequestResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	409		{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/quote-requests/{id}/delivery/absent [post]
func (s *Server) MarkClientAbsent(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := requestIDParam(c)
	if err != nil {
		return err
	}
	var body ProofRequest
	if err = bindAndValidate(c, &body); err != nil {
		return err
	}

	cmd, err := commands.NewMarkClientAbsentCommand(actor, id, body.toInput())
	if err != nil {
		return err
	}
	req, err := s.useCases.MarkClientAbsent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, actor, req)
}

// ListMyDeliveries godoc
//
//	@Summary	List the deliveries of the calling courier
//	@Tags		deliveries
//	@Produce	json
//	@Success	200	{array}		DeliveryResponse
//	@Failure	403	{object}	ErrorResponse
//	@Security	ActorID
//	@Security	ActorRole
//	@Router		/couriers/me/deliveries [get]
func (s *Server) ListMyDeliveries(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListCourierDeliveriesQuery(actor)
	if err != nil {
		return err
	}
	deliveries, err := s.useCases.ListCourierDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]DeliveryResponse, len(deliveries))
	for i, d := range deliveries {
		response[i] = fromDelivery(d)
	}
	return c.JSON(http.StatusOK, response)
}
