// Package identityrepo reads users and their postal addresses.
package identityrepo

import (
	"context"
	"errors"
	"time"

	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserDTO is a row of the users table owned by the shop.
type UserDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Email   string    `gorm:"type:varchar(255);not null;default:''"`
	Phone   string    `gorm:"type:varchar(32);not null;default:''"`
	Company string    `gorm:"type:varchar(255);not null;default:''"`
	Role    string    `gorm:"type:varchar(16);not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

// AddressDTO is a postal address of a user.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Label      string    `gorm:"type:varchar(64);not null;default:''"`
	Line1      string    `gorm:"type:varchar(255);not null"`
	Line2      string    `gorm:"type:varchar(255);not null;default:''"`
	PostalCode string    `gorm:"type:varchar(16);not null"`
	City       string    `gorm:"type:varchar(128);not null"`
	Country    string    `gorm:"type:varchar(2);not null;default:'FR'"`
	IsDefault  bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

// GormDirectory implements ports.IdentityDirectory and ports.AddressBook.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

// Identity returns nil, nil when no user has that id.
func (d *GormDirectory) Identity(ctx context.Context, id kernel.UUID) (*ports.Identity, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	role, err := quote.ParseActorKind(dto.Role)
	if err != nil {
		return nil, err
	}
	return &ports.Identity{
		ID:      id,
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Company: dto.Company,
		Role:    role,
	}, nil
}

// Addresses lists the client's addresses, default first, then oldest first.
func (d *GormDirectory) Addresses(ctx context.Context, clientID kernel.UUID) ([]ports.Address, error) {
	var dtos []AddressDTO
	err := d.db.WithContext(ctx).
		Where("user_id = ?", clientID.Bytes()).
		Order("is_default DESC").
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	addresses := make([]ports.Address, 0, len(dtos))
	for _, dto := range dtos {
		addresses = append(addresses, ports.Address{
			Label:      dto.Label,
			Line1:      dto.Line1,
			Line2:      dto.Line2,
			PostalCode: dto.PostalCode,
			City:       dto.City,
			Country:    dto.Country,
			IsDefault:  dto.IsDefault,
		})
	}
	return addresses, nil
}
