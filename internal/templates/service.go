package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
)

type templateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
	List(ctx context.Context, category string) ([]models.Template, error)
}

// Service exposes the read-only template catalog.
type Service interface {
	List(ctx context.Context, category string) ([]TemplateDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*TemplateDTO, error)
}

type service struct {
	repo templateRepository
}

func NewService(repo templateRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("template repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, category string) ([]TemplateDTO, error) {
	rows, err := s.repo.List(ctx, strings.TrimSpace(strings.ToLower(category)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
	}
	out := make([]TemplateDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*TemplateDTO, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
	}
	return FromModel(template), nil
}
