// Package cartrepo empties shopping carts once their content became a quote request.
package cartrepo

import (
	"context"
	"time"

	"devis/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItemDTO is a line of a client's cart.
type CartItemDTO struct {
	ClientID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null"`
	AddedAt   time.Time `gorm:"not null"`
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCart implements ports.Cart.
type GormCart struct {
	db *gorm.DB
}

func NewGormCart(db *gorm.DB) *GormCart {
	return &GormCart{db: db}
}

// Clear deletes every line of the client's cart. An empty cart is not an error.
func (c *GormCart) Clear(ctx context.Context, clientID kernel.UUID) error {
	return c.db.WithContext(ctx).Where("client_id = ?", clientID.Bytes()).Delete(&CartItemDTO{}).Error
}
