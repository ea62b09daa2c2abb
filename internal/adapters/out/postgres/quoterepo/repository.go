package quoterepo

import (
	"context"
	"errors"
	"time"

	"devis/internal/adapters/out/postgres/pgerrs"
	"devis/internal/core/domain/model/kernel"
	"devis/internal/core/domain/model/quote"
	"devis/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const resource = "quote_requests"

// GormQuoteRepository implements ports.QuoteRepository using GORM.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GORM quote repository. Pass a
// transaction handle to make its writes part of that transaction.
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Add saves a new request with its items.
func (r *GormQuoteRepository) Add(ctx context.Context, aggregate *quote.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Classify(resource, err)
	}

	return nil
}

// Update writes every column of the request, replaces its items and
// upserts its latest delivery proof.
func (r *GormQuoteRepository) Update(ctx context.Context, aggregate *quote.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items, proof := dto.Items, dto.Proof
	dto.Items, dto.Proof = nil, nil

	db := r.db.WithContext(ctx)
	result := db.Model(&QuoteRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return pgerrs.Classify(resource, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("quoteRequestId", aggregate.ID().String())
	}

	if err := db.Where("request_id = ?", dto.ID).Delete(&QuoteRequestItemDTO{}).Error; err != nil {
		return pgerrs.Classify(resource, err)
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return pgerrs.Classify(resource, err)
		}
	}

	if proof != nil {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "request_id"}},
			UpdateAll: true,
		}).Create(proof).Error
		if err != nil {
			return pgerrs.Classify(resource, err)
		}
	}

	return nil
}

// Get retrieves a request by ID without locking it.
func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Request, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate retrieves a request and locks its row with SELECT ... FOR UPDATE.
// It must run inside a transaction.
func (r *GormQuoteRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*quote.Request, error) {
	return r.load(ctx, id, true)
}

// ListStaleSent returns requests left in QUOTE_SENT since before, oldest first.
func (r *GormQuoteRepository) ListStaleSent(ctx context.Context, before time.Time, limit int) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&QuoteRequestDTO{}).
		Where("status = ? AND updated_at < ?", quote.QuoteSent.Code(), before).
		Order("updated_at").
		Limit(limit).
		Pluck("id", &raw).Error
	if err != nil {
		return nil, pgerrs.Classify(resource, err)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		kid, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, kid)
	}
	return ids, nil
}

func (r *GormQuoteRepository) load(ctx context.Context, id kernel.UUID, lock bool) (*quote.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	query := db
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto QuoteRequestDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quoteRequestId", id.String())
		}
		return nil, pgerrs.Classify(resource, err)
	}

	if err := db.Where("request_id = ?", dto.ID).Order("position").Find(&dto.Items).Error; err != nil {
		return nil, pgerrs.Classify(resource, err)
	}

	var proofs []DeliveryProofDTO
	if err := db.Where("request_id = ?", dto.ID).Limit(1).Find(&proofs).Error; err != nil {
		return nil, pgerrs.Classify(resource, err)
	}
	if len(proofs) == 1 {
		dto.Proof = &proofs[0]
	}

	return toDomain(dto)
}
