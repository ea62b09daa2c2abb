// Package catalogrepo reads the shop's product catalog.
package catalogrepo

import (
	"context"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductDTO is a row of the products table owned by the shop.
type ProductDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Brand    string          `gorm:"type:varchar(255);not null;default:''"`
	Width    string          `gorm:"type:varchar(16);not null;default:''"`
	Profile  string          `gorm:"type:varchar(16);not null;default:''"`
	Diameter string          `gorm:"type:varchar(16);not null;default:''"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ports.ProductCatalog.
type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// Resolve loads the products among ids in one query. Unknown ids are
// absent from the result.
func (c *GormProductCatalog) Resolve(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.Product, error) {
	products := make(map[kernel.UUID]ports.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(dto.Price)
		if err != nil {
			return nil, err
		}
		products[id] = ports.Product{
			ID:    id,
			Name:  dto.Name,
			Brand: dto.Brand,
			Size:  quote.TireSize{Width: dto.Width, Profile: dto.Profile, Diameter: dto.Diameter},
			Price: price,
		}
	}
	return products, nil
}
