package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "devis/internal/adapters/out/postgres"
	"devis/internal/adapters/out/postgres/identityrepo"
	"devis/internal/adapters/out/postgres/quoterepo"
	"devis/internal/core/application/usecases/queries"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seededAt = time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	dsn       string
	db        *gorm.DB
	repo      *quoterepo.GormQuoteRepository
	ctx       context.Context
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	container, err := postgres.Run(suite.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(suite.ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.dsn = dsn

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(suite.ctx, db))
	suite.repo = quoterepo.NewGormQuoteRepository(db)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_proofs, quote_request_items, quote_requests, addresses, users").Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersTestSuite) actor(kind quote.ActorKind) quote.Actor {
	a, err := quote.NewActor(kernel.NewUUID(), kind)
	suite.Require().NoError(err)
	return a
}

// seed stores a request of client, adjusted by mutate.
func (suite *QueryHandlersTestSuite) seed(number string, client quote.Actor, mutate func(*quote.RequestState)) *quote.Request {
	item, err := quote.NewItem(kernel.NewUUID(), "Primacy 4", "Michelin",
		quote.TireSize{Width: "205", Profile: "55", Diameter: "16"}, 4, kernel.MustMoney("110.00"))
	suite.Require().NoError(err)
	req, err := quote.NewRequest(kernel.NewUUID(), number, client, []quote.Item{item}, "Avant vendredi", seededAt)
	suite.Require().NoError(err)

	state := req.State()
	if mutate != nil {
		mutate(&state)
	}
	req, err = quote.RestoreRequest(state)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(suite.ctx, req))
	return req
}

func (suite *QueryHandlersTestSuite) outForDelivery(courier quote.Actor, assignedAt time.Time, date *time.Time) func(*quote.RequestState) {
	return func(s *quote.RequestState) {
		id := courier.ID()
		s.Status = quote.OutForDelivery
		s.QuoteNumber = "DEV-" + s.RequestNumber[4:]
		s.CourierID = &id
		s.DeliveryAssignedAt = &assignedAt
		s.RequestedDeliveryDate = date
		s.DeliveryDetails = "Code portail 1234"
		s.AdminNotes = "Remise fidélité"
	}
}

func (suite *QueryHandlersTestSuite) TestGetQuoteRequest_Visibility() {
	client := suite.actor(quote.ActorClient)
	courier := suite.actor(quote.ActorCourier)
	req := suite.seed("REQ-2025-0001", client, suite.outForDelivery(courier, seededAt.Add(time.Hour), nil))
	handler := queries.NewGetQuoteRequestQueryHandler(suite.db)

	view := func(viewer quote.Actor) (*queries.QuoteRequestView, error) {
		query, err := queries.NewGetQuoteRequestQuery(viewer, req.ID())
		suite.Require().NoError(err)
		return handler.Handle(suite.ctx, query)
	}

	staffView, err := view(suite.actor(quote.ActorStaff))
	suite.Require().NoError(err)
	suite.Equal("Remise fidélité", staffView.AdminNotes)

	clientView, err := view(client)
	suite.Require().NoError(err)
	suite.Empty(clientView.AdminNotes)

	courierView, err := view(courier)
	suite.Require().NoError(err)
	suite.Equal("Code portail 1234", courierView.DeliveryDetails)

	_, err = view(suite.actor(quote.ActorClient))
	suite.Require().ErrorIs(err, errs.ErrForbidden)
	_, err = view(suite.actor(quote.ActorCourier))
	suite.Require().ErrorIs(err, errs.ErrForbidden)
}

func (suite *QueryHandlersTestSuite) TestGetQuoteRequest_MapsColumns() {
	client := suite.actor(quote.ActorClient)
	validUntil := time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)
	req := suite.seed("REQ-2025-0002", client, func(s *quote.RequestState) {
		s.Status = quote.AwaitingValidation
		s.QuoteNumber = "DEV-2025-0002"
		s.DiscountTotal = kernel.MustMoney("40.00")
		s.TotalQuoted = kernel.MustMoney("400.00")
		s.ValidUntil = &validUntil
		s.QuotePDFURL = "https://cdn.example.test/quotes/DEV-2025-0002.pdf"
	})

	query, err := queries.NewGetQuoteRequestQuery(client, req.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetQuoteRequestQueryHandler(suite.db).Handle(suite.ctx, query)
	suite.Require().NoError(err)

	suite.Equal(req.ID(), view.ID)
	suite.Equal(client.ID(), view.ClientID)
	suite.Equal("REQ-2025-0002", view.RequestNumber)
	suite.Equal("DEV-2025-0002", view.QuoteNumber)
	suite.Equal(quote.AwaitingValidation, view.Status)
	suite.True(view.Subtotal.Equal(kernel.MustMoney("440")))
	suite.True(view.DiscountTotal.Equal(kernel.MustMoney("40")))
	suite.True(view.TotalQuoted.Equal(kernel.MustMoney("400")))
	suite.Require().NotNil(view.ValidUntil)
	suite.True(validUntil.Equal(*view.ValidUntil))
	suite.Nil(view.CourierID)
	suite.Nil(view.ValidatedAt)
	suite.Equal("Avant vendredi", view.ClientMessage)
	suite.True(seededAt.Equal(view.CreatedAt))

	suite.Require().Len(view.Items, 1)
	suite.Equal("205/55 R16", view.Items[0].Size)
	suite.Equal(4, view.Items[0].Quantity)
	suite.True(view.Items[0].LineTotal.Equal(kernel.MustMoney("440")))
}

func (suite *QueryHandlersTestSuite) TestGetQuoteRequest_NotFound() {
	query, err := queries.NewGetQuoteRequestQuery(suite.actor(quote.ActorStaff), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetQuoteRequestQueryHandler(suite.db).Handle(suite.ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestListCourierDeliveries() {
	client := suite.actor(quote.ActorClient)
	courier := suite.actor(quote.ActorCourier)
	other := suite.actor(quote.ActorCourier)

	clientRaw := client.ID().Bytes()
	suite.Require().NoError(suite.db.Create(&identityrepo.UserDTO{
		ID: clientRaw, Name: "Léa Dubois", Phone: "+33 6 12 34 56 78", Role: "client",
	}).Error)
	suite.Require().NoError(suite.db.Create(&[]identityrepo.AddressDTO{
		{ID: uuid.New(), UserID: clientRaw, Line1: "3 quai Saint-Antoine", PostalCode: "69002", City: "Lyon", CreatedAt: seededAt},
		{ID: uuid.New(), UserID: clientRaw, Line1: "12 rue des Lilas", PostalCode: "69003", City: "Lyon", IsDefault: true, CreatedAt: seededAt},
	}).Error)

	friday := time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)
	undated := suite.seed("REQ-2025-0010", client, suite.outForDelivery(courier, seededAt, nil))
	late := suite.seed("REQ-2025-0011", client, suite.outForDelivery(courier, seededAt, &friday))
	early := suite.seed("REQ-2025-0012", client, suite.outForDelivery(courier, seededAt.Add(time.Hour), &monday))
	suite.seed("REQ-2025-0013", client, suite.outForDelivery(other, seededAt, &monday))
	suite.seed("REQ-2025-0014", client, func(s *quote.RequestState) {
		id := courier.ID()
		s.Status = quote.Completed
		s.CourierID = &id
	})

	query, err := queries.NewListCourierDeliveriesQuery(courier)
	suite.Require().NoError(err)
	deliveries, err := queries.NewListCourierDeliveriesQueryHandler(suite.db).Handle(suite.ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(deliveries, 3)
	suite.Equal(early.ID(), deliveries[0].RequestID)
	suite.Equal(late.ID(), deliveries[1].RequestID)
	suite.Equal(undated.ID(), deliveries[2].RequestID)

	first := deliveries[0]
	suite.Equal("DEV-2025-0012", first.QuoteNumber)
	suite.Equal("Léa Dubois", first.ClientName)
	suite.Equal("12 rue des Lilas", first.AddressLine1)
	suite.Equal("69003", first.PostalCode)
	suite.Equal("Code portail 1234", first.DeliveryDetails)
	suite.Require().NotNil(first.RequestedDeliveryDate)
	suite.True(monday.Equal(*first.RequestedDeliveryDate))
	suite.Nil(deliveries[2].RequestedDeliveryDate)
}

func (suite *QueryHandlersTestSuite) TestListCourierDeliveries_ClientWithoutProfile() {
	courier := suite.actor(quote.ActorCourier)
	suite.seed("REQ-2025-0020", suite.actor(quote.ActorClient), suite.outForDelivery(courier, seededAt, nil))

	query, err := queries.NewListCourierDeliveriesQuery(courier)
	suite.Require().NoError(err)
	deliveries, err := queries.NewListCourierDeliveriesQueryHandler(suite.db).Handle(suite.ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(deliveries, 1)
	suite.Empty(deliveries[0].ClientName)
	suite.Empty(deliveries[0].AddressLine1)
}

func (suite *QueryHandlersTestSuite) TestListCourierDeliveries_ContextCancelled() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	query, err := queries.NewListCourierDeliveriesQuery(suite.actor(quote.ActorCourier))
	suite.Require().NoError(err)
	_, err = queries.NewListCourierDeliveriesQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().ErrorIs(err, context.Canceled)
}

func (suite *QueryHandlersTestSuite) closedDB() *gorm.DB {
	db, err := gorm.Open(gorm_postgres.Open(suite.dsn), &gorm.Config{})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())
	return db
}

func (suite *QueryHandlersTestSuite) TestGetQuoteRequest_DatabaseUnavailable() {
	query, err := queries.NewGetQuoteRequestQuery(suite.actor(quote.ActorStaff), kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetQuoteRequestQueryHandler(suite.closedDB()).Handle(suite.ctx, query)

	suite.Require().ErrorIs(err, errs.ErrDependencyFailure)
	suite.Equal(errs.KindDependencyFailure, errs.KindOf(err))
}

func (suite *QueryHandlersTestSuite) TestListCourierDeliveries_DatabaseUnavailable() {
	query, err := queries.NewListCourierDeliveriesQuery(suite.actor(quote.ActorCourier))
	suite.Require().NoError(err)

	_, err = queries.NewListCourierDeliveriesQueryHandler(suite.closedDB()).Handle(suite.ctx, query)

	suite.Require().ErrorIs(err, errs.ErrDependencyFailure)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
