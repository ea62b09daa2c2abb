package postgres_test

import (
	"time"

	"devis/internal/adapters/out/postgres/cartrepo"
	"devis/internal/adapters/out/postgres/catalogrepo"
	"devis/internal/adapters/out/postgres/identityrepo"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *UnitOfWorkIntegrationTestSuite) TestCatalogResolvesKnownProducts() {
	known := uuid.New()
	suite.Require().NoError(suite.db.Create(&catalogrepo.ProductDTO{
		ID:       known,
		Name:     "CrossClimate 2",
		Brand:    "Michelin",
		Width:    "205",
		Profile:  "55",
		Diameter: "R16",
		Price:    decimal.RequireFromString("112.40"),
	}).Error)

	knownID, err := kernel.UUIDFromBytes(known[:])
	suite.Require().NoError(err)
	unknownID := kernel.NewUUID()

	catalog := catalogrepo.NewGormProductCatalog(suite.db)
	products, err := catalog.Resolve(suite.ctx, []kernel.UUID{knownID, unknownID})
	suite.Require().NoError(err)

	suite.Require().Len(products, 1)
	product := products[knownID]
	suite.Equal("CrossClimate 2", product.Name)
	suite.Equal("205/55 R16", product.Size.Label())
	suite.True(product.Price.Equal(kernel.MustMoney("112.40")))

	empty, err := catalog.Resolve(suite.ctx, nil)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDirectoryIdentityAndAddresses() {
	user := uuid.New()
	suite.Require().NoError(suite.db.Create(&identityrepo.UserDTO{
		ID: user, Name: "Camille Martin", Email: "camille@example.test", Role: "client",
	}).Error)

	created := time.Date(2025, time.January, 2, 8, 0, 0, 0, time.UTC)
	suite.Require().NoError(suite.db.Create(&[]identityrepo.AddressDTO{
		{ID: uuid.New(), UserID: user, Label: "Bureau", Line1: "1 place Bellecour", PostalCode: "69002", City: "Lyon", Country: "FR", CreatedAt: created},
		{ID: uuid.New(), UserID: user, Label: "Maison", Line1: "12 rue des Lilas", PostalCode: "69003", City: "Lyon", Country: "FR", IsDefault: true, CreatedAt: created.Add(time.Hour)},
	}).Error)

	id, err := kernel.UUIDFromBytes(user[:])
	suite.Require().NoError(err)
	dir := identityrepo.NewGormDirectory(suite.db)

	identity, err := dir.Identity(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Require().NotNil(identity)
	suite.Equal("Camille Martin", identity.Name)
	suite.Equal(quote.ActorClient, identity.Role)

	missing, err := dir.Identity(suite.ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Nil(missing)

	addresses, err := dir.Addresses(suite.ctx, id)
	suite.Require().NoError(err)
	suite.Require().Len(addresses, 2)
	suite.Equal("Maison", addresses[0].Label)
	suite.True(addresses[0].IsDefault)
	suite.Equal("Bureau", addresses[1].Label)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCartClearOnlyTouchesOwner() {
	owner, other := uuid.New(), uuid.New()
	now := time.Now().UTC()
	suite.Require().NoError(suite.db.Create(&[]cartrepo.CartItemDTO{
		{ClientID: owner, ProductID: uuid.New(), Quantity: 4, AddedAt: now},
		{ClientID: owner, ProductID: uuid.New(), Quantity: 2, AddedAt: now},
		{ClientID: other, ProductID: uuid.New(), Quantity: 1, AddedAt: now},
	}).Error)

	ownerID, err := kernel.UUIDFromBytes(owner[:])
	suite.Require().NoError(err)
	cart := cartrepo.NewGormCart(suite.db)
	suite.Require().NoError(cart.Clear(suite.ctx, ownerID))
	suite.Require().NoError(cart.Clear(suite.ctx, ownerID))

	var remaining []cartrepo.CartItemDTO
	suite.Require().NoError(suite.db.Find(&remaining).Error)
	suite.Require().Len(remaining, 1)
	suite.Equal(other, remaining[0].ClientID)
}
