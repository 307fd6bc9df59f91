package stores

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx inserts a store row inside the provided transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, store *models.Store) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return tx.Create(store).Error
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindBySubdomain resolves a tenant by its subdomain, case-insensitively.
func (r *Repository) FindBySubdomain(ctx context.Context, subdomain string) (*models.Store, error) {
	var store models.Store
	normalized := strings.ToLower(strings.TrimSpace(subdomain))
	if err := r.db.WithContext(ctx).Where("lower(subdomain) = ?", normalized).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// ListByOwner returns one page of stores owned by the user, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).
		Where("owner = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// CountByOwner reports how many stores the user owns.
func (r *Repository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("owner = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update saves the provided store.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete removes the store; dependent rows cascade in the database.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Store{}, "id = ?", id).Error
}
