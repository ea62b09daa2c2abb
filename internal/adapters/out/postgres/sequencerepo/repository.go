// Package sequencerepo stores the yearly document counters.
package sequencerepo

import (
	"context"
	"strings"

	"devis/internal/adapters/out/postgres/pgerrs"
	"devis/internal/pkg/errs"

	"gorm.io/gorm"
)

const resource = "number_sequences"

// NumberSequenceDTO is a counter row. The composite primary key (key, year)
// serializes concurrent increments of the same counter.
type NumberSequenceDTO struct {
	Key       string `gorm:"column:key;type:varchar(64);primaryKey"`
	Year      int    `gorm:"primaryKey;autoIncrement:false"`
	LastValue int64  `gorm:"not null;check:last_value > 0"`
}

func (NumberSequenceDTO) TableName() string {
	return "number_sequences"
}

// GormSequenceRepository implements ports.SequenceRepository.
type GormSequenceRepository struct {
	db *gorm.DB
}

func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next increments the counter in a single upsert. The row lock taken by the
// update is held until the caller's transaction ends, so a number reserved
// by a transaction that rolls back is handed out again.
func (r *GormSequenceRepository) Next(ctx context.Context, key string, year int) (int64, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, errs.NewValueIsRequiredError("sequenceKey")
	}

	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO number_sequences (key, year, last_value)
		VALUES (?, ?, 1)
		ON CONFLICT (key, year)
		DO UPDATE SET last_value = number_sequences.last_value + 1
		RETURNING last_value
	`, key, year).Scan(&value).Error
	if err != nil {
		return 0, pgerrs.Classify(resource, err)
	}
	return value, nil
}
