package quoterepo_test

import (
	"context"
	"testing"
	"time"

	"devis/internal/adapters/out/postgres/quoterepo"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var base = time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)

// QuoteRepositoryTestSuite runs the quote repository against a real PostgreSQL.
type QuoteRepositoryTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *quoterepo.GormQuoteRepository
	ctx       context.Context
}

func (suite *QuoteRepositoryTestSuite) SetupSuite() {
	suite.ctx = context.Background()

	container, err := postgres.Run(suite.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(suite.ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&quoterepo.QuoteRequestDTO{}, &quoterepo.QuoteRequestItemDTO{}, &quoterepo.DeliveryProofDTO{})
	suite.Require().NoError(err)

	suite.repo = quoterepo.NewGormQuoteRepository(db)
}

func (suite *QuoteRepositoryTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(suite.ctx))
	}
}

func (suite *QuoteRepositoryTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_proofs, quote_request_items, quote_requests").Error
	suite.Require().NoError(err)
}

func (suite *QuoteRepositoryTestSuite) newItem(quantity int, price string) quote.Item {
	item, err := quote.NewItem(
		kernel.NewUUID(),
		"Pilot Sport 5",
		"Michelin",
		quote.TireSize{Width: "225", Profile: "45", Diameter: "R17"},
		quantity,
		kernel.MustMoney(price),
	)
	suite.Require().NoError(err)
	return item
}

func (suite *QuoteRepositoryTestSuite) newRequest(number string) *quote.Request {
	client, err := quote.NewActor(kernel.NewUUID(), quote.ActorClient)
	suite.Require().NoError(err)

	req, err := quote.NewRequest(
		kernel.NewUUID(),
		number,
		client,
		[]quote.Item{suite.newItem(4, "129.90"), suite.newItem(2, "15.00")},
		"Montage inclus ?",
		base,
	)
	suite.Require().NoError(err)
	return req
}

// restore rebuilds req after mutate changed its persisted state.
func (suite *QuoteRepositoryTestSuite) restore(req *quote.Request, mutate func(*quote.RequestState)) *quote.Request {
	state := req.State()
	mutate(&state)
	restored, err := quote.RestoreRequest(state)
	suite.Require().NoError(err)
	return restored
}

func (suite *QuoteRepositoryTestSuite) TestAddAndGet() {
	req := suite.newRequest("REQ-2025-0001")
	suite.Require().NoError(suite.repo.Add(suite.ctx, req))

	loaded, err := suite.repo.Get(suite.ctx, req.ID())
	suite.Require().NoError(err)

	suite.Equal(req.ID(), loaded.ID())
	suite.Equal("REQ-2025-0001", loaded.RequestNumber())
	suite.Equal(quote.Draft, loaded.Status())
	suite.Equal(req.ClientID(), loaded.ClientID())
	suite.Equal("Montage inclus ?", loaded.ClientMessage())
	suite.False(loaded.HasQuoteNumber())
	suite.True(loaded.Subtotal().Equal(kernel.MustMoney("549.60")))
	suite.True(loaded.TotalQuoted().Equal(kernel.MustMoney("549.60")))
	suite.True(loaded.DiscountTotal().IsZero())
	suite.True(base.Equal(loaded.CreatedAt()))
	suite.Nil(loaded.Proof())

	suite.Require().Len(loaded.Items(), 2)
	suite.Equal(4, loaded.Items()[0].Quantity())
	suite.Equal("225/45 R17", loaded.Items()[0].Size().Label())
	suite.Equal(2, loaded.Items()[1].Quantity())
}

func (suite *QuoteRepositoryTestSuite) TestAddDuplicateRequestNumber() {
	suite.Require().NoError(suite.repo.Add(suite.ctx, suite.newRequest("REQ-2025-0001")))

	err := suite.repo.Add(suite.ctx, suite.newRequest("REQ-2025-0001"))
	suite.Require().Error(err)
	suite.True(errs.IsRetryable(err))
}

func (suite *QuoteRepositoryTestSuite) TestGetNotFound() {
	_, err := suite.repo.Get(suite.ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QuoteRepositoryTestSuite) TestUpdateNotFound() {
	err := suite.repo.Update(suite.ctx, suite.newRequest("REQ-2025-0009"))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QuoteRepositoryTestSuite) TestUpdateWritesEveryField() {
	req := suite.newRequest("REQ-2025-0002")
	suite.Require().NoError(suite.repo.Add(suite.ctx, req))

	courierID := kernel.NewUUID()
	validUntil := time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC)
	deliveryDate := time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)
	assignedAt := base.Add(48 * time.Hour)
	location, err := kernel.NewGeoPoint(45.7578, 4.8320)
	suite.Require().NoError(err)
	proof, err := quote.NewAbsenceProof(courierID, &location, []byte{0xFF, 0xD8}, "Portail fermé", assignedAt.Add(time.Hour))
	suite.Require().NoError(err)

	updated := suite.restore(req, func(s *quote.RequestState) {
		s.Status = quote.OutForDelivery
		s.QuoteNumber = "DEV-2025-0002"
		s.DiscountTotal = kernel.MustMoney("49.60")
		s.TotalQuoted = kernel.MustMoney("500.00")
		s.ValidUntil = &validUntil
		s.AdminNotes = "Client fidèle"
		s.DeliveryDetails = "Sonner deux fois"
		s.QuotePDFURL = "https://cdn.example.test/quotes/DEV-2025-0002.pdf"
		s.Validation = &quote.ClientValidation{At: base.Add(24 * time.Hour), IP: "192.0.2.10", DeviceInfo: "Firefox"}
		s.RequestedDeliveryDate = &deliveryDate
		s.CourierID = &courierID
		s.DeliveryAssignedAt = &assignedAt
		s.ClientAbsentCount = 1
		s.CourierNotified = true
		s.Proof = &proof
		s.UpdatedAt = assignedAt.Add(time.Hour)
	})
	suite.Require().NoError(suite.repo.Update(suite.ctx, updated))

	loaded, err := suite.repo.Get(suite.ctx, req.ID())
	suite.Require().NoError(err)

	suite.Equal(quote.OutForDelivery, loaded.Status())
	suite.Equal("DEV-2025-0002", loaded.QuoteNumber())
	suite.True(loaded.DiscountTotal().Equal(kernel.MustMoney("49.60")))
	suite.True(loaded.TotalQuoted().Equal(kernel.MustMoney("500")))
	suite.Require().NotNil(loaded.ValidUntil())
	suite.True(validUntil.Equal(*loaded.ValidUntil()))
	suite.Equal("Client fidèle", loaded.AdminNotes())
	suite.Equal("Sonner deux fois", loaded.DeliveryDetails())
	suite.Equal("https://cdn.example.test/quotes/DEV-2025-0002.pdf", loaded.QuotePDFURL())
	suite.Require().NotNil(loaded.Validation())
	suite.Equal("192.0.2.10", loaded.Validation().IP)
	suite.Equal("Firefox", loaded.Validation().DeviceInfo)
	suite.Require().NotNil(loaded.RequestedDeliveryDate())
	suite.True(deliveryDate.Equal(*loaded.RequestedDeliveryDate()))
	suite.Require().NotNil(loaded.CourierID())
	suite.Equal(courierID, *loaded.CourierID())
	suite.Equal(1, loaded.ClientAbsentCount())
	suite.True(loaded.CourierNotified())
	suite.False(loaded.RequiresReview())
	suite.True(assignedAt.Add(time.Hour).Equal(loaded.UpdatedAt()))

	suite.Require().NotNil(loaded.Proof())
	suite.Equal(quote.AttemptClientAbsent, loaded.Proof().Kind())
	suite.Equal(courierID, loaded.Proof().CourierID())
	suite.Equal([]byte{0xFF, 0xD8}, loaded.Proof().Photo())
	suite.Equal("Portail fermé", loaded.Proof().Notes())
	suite.Require().NotNil(loaded.Proof().Location())
	suite.InDelta(45.7578, loaded.Proof().Location().Latitude(), 1e-9)
}

func (suite *QuoteRepositoryTestSuite) TestUpdateResetsFlagsAndReplacesItems() {
	req := suite.newRequest("REQ-2025-0003")
	suite.Require().NoError(suite.repo.Add(suite.ctx, suite.restore(req, func(s *quote.RequestState) {
		s.RequiresReview = true
		s.CourierNotified = true
	})))

	single := suite.newItem(1, "99.99")
	updated := suite.restore(req, func(s *quote.RequestState) {
		s.Status = quote.Quoting
		s.Items = []quote.Item{single}
		s.TotalQuoted = kernel.MustMoney("99.99")
	})
	suite.Require().NoError(suite.repo.Update(suite.ctx, updated))

	loaded, err := suite.repo.Get(suite.ctx, req.ID())
	suite.Require().NoError(err)
	suite.False(loaded.RequiresReview())
	suite.False(loaded.CourierNotified())
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal(single.ProductID(), loaded.Items()[0].ProductID())
	suite.True(loaded.Subtotal().Equal(kernel.MustMoney("99.99")))

	var count int64
	suite.Require().NoError(suite.db.Model(&quoterepo.QuoteRequestItemDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *QuoteRepositoryTestSuite) TestUpdateKeepsOneProofPerRequest() {
	req := suite.newRequest("REQ-2025-0004")
	suite.Require().NoError(suite.repo.Add(suite.ctx, req))

	courierID := kernel.NewUUID()
	absent, err := quote.NewAbsenceProof(courierID, nil, nil, "", base)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(suite.ctx, suite.restore(req, func(s *quote.RequestState) {
		s.Status = quote.OutForDelivery
		s.CourierID = &courierID
		s.Proof = &absent
	})))

	location, err := kernel.NewGeoPoint(48.8566, 2.3522)
	suite.Require().NoError(err)
	delivered, err := quote.NewDeliveredProof(courierID, location, nil, []byte("sig"), "Remis en main propre", base.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Update(suite.ctx, suite.restore(req, func(s *quote.RequestState) {
		s.Status = quote.Completed
		s.CourierID = &courierID
		s.Proof = &delivered
	})))

	var count int64
	suite.Require().NoError(suite.db.Model(&quoterepo.DeliveryProofDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	loaded, err := suite.repo.Get(suite.ctx, req.ID())
	suite.Require().NoError(err)
	suite.Equal(quote.AttemptDelivered, loaded.Proof().Kind())
	suite.Equal([]byte("sig"), loaded.Proof().Signature())
}

func (suite *QuoteRepositoryTestSuite) TestGetForUpdateLocksRow() {
	req := suite.newRequest("REQ-2025-0005")
	suite.Require().NoError(suite.repo.Add(suite.ctx, req))

	holder := suite.db.Begin()
	defer holder.Rollback()
	_, err := quoterepo.NewGormQuoteRepository(holder).GetForUpdate(suite.ctx, req.ID())
	suite.Require().NoError(err)

	contender := suite.db.Begin()
	defer contender.Rollback()
	suite.Require().NoError(contender.Exec("SET LOCAL lock_timeout = '200ms'").Error)

	_, err = quoterepo.NewGormQuoteRepository(contender).GetForUpdate(suite.ctx, req.ID())
	suite.Require().Error(err)
	suite.True(errs.IsRetryable(err))
}

func (suite *QuoteRepositoryTestSuite) TestListStaleSent() {
	cutoff := base.Add(time.Hour)
	stale := func(number string, status quote.Status, updatedAt time.Time) *quote.Request {
		req := suite.restore(suite.newRequest(number), func(s *quote.RequestState) {
			s.Status = status
			s.UpdatedAt = updatedAt
		})
		suite.Require().NoError(suite.repo.Add(suite.ctx, req))
		return req
	}

	oldest := stale("REQ-2025-0010", quote.QuoteSent, base.Add(-2*time.Hour))
	older := stale("REQ-2025-0011", quote.QuoteSent, base)
	stale("REQ-2025-0012", quote.QuoteSent, cutoff.Add(time.Minute))
	stale("REQ-2025-0013", quote.AwaitingValidation, base)

	ids, err := suite.repo.ListStaleSent(suite.ctx, cutoff, 10)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{oldest.ID(), older.ID()}, ids)

	ids, err = suite.repo.ListStaleSent(suite.ctx, cutoff, 1)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{oldest.ID()}, ids)
}

func TestQuoteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(QuoteRepositoryTestSuite))
}
