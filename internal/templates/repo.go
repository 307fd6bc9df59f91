package templates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
)

// Repository reads the template catalog. Templates are seeded by migrations
// and never written through the API.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var template models.Template
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// List returns the catalog ordered by name, optionally filtered by category.
func (r *Repository) List(ctx context.Context, category string) ([]models.Template, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var templates []models.Template
	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}
