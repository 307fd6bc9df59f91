package pages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
)

// Repository wraps page persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx inserts a page inside the caller's transaction. Store creation
// uses this to seed the home page atomically.
func (r *Repository) CreateWithTx(tx *gorm.DB, page *models.Page) error {
	return tx.Create(page).Error
}

func (r *Repository) Create(ctx context.Context, page *models.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	var page models.Page
	if err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *Repository) FindBySlug(ctx context.Context, storeID uuid.UUID, slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).
		First(&page, "store_id = ? AND slug = ?", storeID, slug).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListByStore returns every page of the store, home page first.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Page, error) {
	var pages []models.Page
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("is_home DESC, created_at ASC").
		Find(&pages).Error
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (r *Repository) Update(ctx context.Context, page *models.Page) error {
	return r.db.WithContext(ctx).Save(page).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Page{}, "id = ?", id).Error
}
