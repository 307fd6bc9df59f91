package categories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
)

var (
	slugRe      = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonSlugRe   = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRunRe = regexp.MustCompile(`-{2,}`)
)

type categoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes category operations for store owners.
type Service interface {
	Create(ctx context.Context, userID, storeID uuid.UUID, input CreateCategoryInput) (*CategoryDTO, error)
	List(ctx context.Context, userID, storeID uuid.UUID) ([]CategoryDTO, error)
	Update(ctx context.Context, userID, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
}

type service struct {
	repo   categoryRepository
	stores storeFinder
}

func NewService(repo categoryRepository, stores storeFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) Create(ctx context.Context, userID, storeID uuid.UUID, input CreateCategoryInput) (*CategoryDTO, error) {
	if _, err := s.loadOwnedStore(ctx, userID, storeID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(name)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name yields an empty slug")
		}
	} else {
		slug = strings.ToLower(slug)
		if !slugRe.MatchString(slug) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category slug may only contain lowercase letters, digits, and hyphens")
		}
	}

	category := &models.Category{
		StoreID: storeID,
		Name:    name,
		Slug:    slug,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
	}
	return FromModel(category), nil
}

func (s *service) List(ctx context.Context, userID, storeID uuid.UUID) ([]CategoryDTO, error) {
	if _, err := s.loadOwnedStore(ctx, userID, storeID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, userID, categoryID uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	category, err := s.loadOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
		}
		category.Name = name
	}
	if input.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*input.Slug))
		if !slugRe.MatchString(slug) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category slug may only contain lowercase letters, digits, and hyphens")
		}
		category.Slug = slug
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a category with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return FromModel(category), nil
}

// Delete removes the category. Products keep existing; the database clears
// their category reference.
func (s *service) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := s.loadOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category")
	}
	return nil
}

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonSlugRe.ReplaceAllString(slug, "-")
	slug = hyphenRunRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (s *service) loadOwnedStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "store not owned by requester")
	}
	return store, nil
}

func (s *service) loadOwnedCategory(ctx context.Context, userID, categoryID uuid.UUID) (*models.Category, error) {
	category, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}
	if _, err := s.loadOwnedStore(ctx, userID, category.StoreID); err != nil {
		return nil, err
	}
	return category, nil
}
