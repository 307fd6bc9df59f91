package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
	"github.com/storeforge/backend/pkg/enums"
)

// ListFilter narrows store order listings.
type ListFilter struct {
	Status *enums.OrderStatus
}

// Repository wraps order persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx inserts an order inside the caller's transaction so the insert
// commits together with its inventory reservations.
func (r *Repository) CreateWithTx(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.scoped(ctx, storeID, filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *Repository) CountByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter) (int64, error) {
	var total int64
	err := r.scoped(ctx, storeID, filter).
		Model(&models.Order{}).
		Count(&total).Error
	return total, err
}

func (r *Repository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *Repository) scoped(ctx context.Context, storeID uuid.UUID, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}
