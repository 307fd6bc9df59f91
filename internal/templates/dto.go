package templates

import (
	"time"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/db/models"
	"github.com/storeforge/backend/pkg/types"
)

// TemplateDTO is the catalog listing shape. Page blueprints are included so
// the dashboard can preview a template before applying it.
type TemplateDTO struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Thumbnail   *string             `json:"thumbnail"`
	Category    string              `json:"category"`
	IsPremium   bool                `json:"isPremium"`
	Pages       types.TemplatePages `json:"pages"`
	Theme       types.Theme         `json:"theme"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// FromModel maps a template row onto its DTO.
func FromModel(template *models.Template) *TemplateDTO {
	return &TemplateDTO{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		Thumbnail:   template.Thumbnail,
		Category:    template.Category,
		IsPremium:   template.IsPremium,
		Pages:       template.Pages,
		Theme:       template.Theme,
		CreatedAt:   template.CreatedAt,
	}
}
