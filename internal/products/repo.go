package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
)

// ErrInsufficientInventory is returned when an inventory reservation asks for
// more stock than the product has.
var ErrInsufficientInventory = errors.New("insufficient inventory")

// ListFilter narrows store product listings.
type ListFilter struct {
	CategoryID *uuid.UUID
	// ActiveOnly hides disabled products; storefront reads always set it.
	ActiveOnly bool
}

// Repository wraps product persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter, offset, limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.scoped(ctx, storeID, filter).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *Repository) CountByStore(ctx context.Context, storeID uuid.UUID, filter ListFilter) (int64, error) {
	var total int64
	err := r.scoped(ctx, storeID, filter).
		Model(&models.Product{}).
		Count(&total).Error
	return total, err
}

// DecrementInventoryWithTx atomically reserves stock inside the caller's
// transaction. It fails when the product lacks sufficient inventory.
func (r *Repository) DecrementInventoryWithTx(tx *gorm.DB, productID uuid.UUID, quantity int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND inventory >= ?", productID, quantity).
		UpdateColumn("inventory", gorm.Expr("inventory - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientInventory
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (r *Repository) scoped(ctx context.Context, storeID uuid.UUID, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Where("store_id = ?", storeID)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active")
	}
	return query
}
