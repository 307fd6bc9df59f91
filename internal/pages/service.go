package pages

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
	"github.com/storeforge/backend/pkg/types"
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

type pageRepository interface {
	Create(ctx context.Context, page *models.Page) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error)
	FindBySlug(ctx context.Context, storeID uuid.UUID, slug string) (*models.Page, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Page, error)
	Update(ctx context.Context, page *models.Page) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes page operations for store owners.
type Service interface {
	Create(ctx context.Context, userID, storeID uuid.UUID, input CreatePageInput) (*PageDTO, error)
	List(ctx context.Context, userID, storeID uuid.UUID) ([]PageDTO, error)
	Get(ctx context.Context, userID, pageID uuid.UUID) (*PageDTO, error)
	GetBySlug(ctx context.Context, userID, storeID uuid.UUID, slug string) (*PageDTO, error)
	Update(ctx context.Context, userID, pageID uuid.UUID, input UpdatePageInput) (*PageDTO, error)
	UpdateBlocks(ctx context.Context, userID, pageID uuid.UUID, input UpdateBlocksInput) (*PageDTO, error)
	Delete(ctx context.Context, userID, pageID uuid.UUID) error
}

type service struct {
	repo   pageRepository
	stores storeFinder
}

func NewService(repo pageRepository, stores storeFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("page repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) Create(ctx context.Context, userID, storeID uuid.UUID, input CreatePageInput) (*PageDTO, error) {
	if _, err := s.loadOwnedStore(ctx, userID, storeID); err != nil {
		return nil, err
	}

	slug, err := normalizeSlug(input.Slug)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page title required")
	}

	blocks := input.Blocks
	if blocks == nil {
		blocks = types.Blocks{}
	}

	page := &models.Page{
		StoreID: storeID,
		Slug:    slug,
		Title:   title,
		Blocks:  blocks,
	}
	if err := s.repo.Create(ctx, page); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a page with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create page")
	}
	return FromModel(page), nil
}

func (s *service) List(ctx context.Context, userID, storeID uuid.UUID) ([]PageDTO, error) {
	if _, err := s.loadOwnedStore(ctx, userID, storeID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pages")
	}
	out := make([]PageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, userID, pageID uuid.UUID) (*PageDTO, error) {
	page, err := s.loadOwnedPage(ctx, userID, pageID)
	if err != nil {
		return nil, err
	}
	return FromModel(page), nil
}

// GetBySlug serves the editor, which addresses pages by slug before it knows
// their ids. Draft pages are visible here, unlike on the public read path.
func (s *service) GetBySlug(ctx context.Context, userID, storeID uuid.UUID, slug string) (*PageDTO, error) {
	if _, err := s.loadOwnedStore(ctx, userID, storeID); err != nil {
		return nil, err
	}

	page, err := s.repo.FindBySlug(ctx, storeID, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find page")
	}
	return FromModel(page), nil
}

func (s *service) Update(ctx context.Context, userID, pageID uuid.UUID, input UpdatePageInput) (*PageDTO, error) {
	page, err := s.loadOwnedPage(ctx, userID, pageID)
	if err != nil {
		return nil, err
	}

	if input.Slug != nil {
		slug, err := normalizeSlug(*input.Slug)
		if err != nil {
			return nil, err
		}
		if page.IsHome && slug != page.Slug {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "the home page slug cannot change")
		}
		page.Slug = slug
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "page title required")
		}
		page.Title = title
	}

	if err := s.repo.Update(ctx, page); err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a page with this slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update page")
	}
	return FromModel(page), nil
}

// UpdateBlocks replaces the page content with the editor's save payload.
func (s *service) UpdateBlocks(ctx context.Context, userID, pageID uuid.UUID, input UpdateBlocksInput) (*PageDTO, error) {
	page, err := s.loadOwnedPage(ctx, userID, pageID)
	if err != nil {
		return nil, err
	}

	blocks := input.Blocks
	if blocks == nil {
		blocks = types.Blocks{}
	}
	page.Blocks = blocks

	if err := s.repo.Update(ctx, page); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save page blocks")
	}
	return FromModel(page), nil
}

func (s *service) Delete(ctx context.Context, userID, pageID uuid.UUID) error {
	page, err := s.loadOwnedPage(ctx, userID, pageID)
	if err != nil {
		return err
	}
	if page.IsHome {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "the home page cannot be deleted")
	}
	if err := s.repo.Delete(ctx, page.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete page")
	}
	return nil
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

func (s *service) loadOwnedPage(ctx context.Context, userID, pageID uuid.UUID) (*models.Page, error) {
	page, err := s.repo.FindByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "page not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load page")
	}
	if _, err := s.loadOwnedStore(ctx, userID, page.StoreID); err != nil {
		return nil, err
	}
	return page, nil
}

func normalizeSlug(raw string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(raw))
	if slug == "" || len(slug) > 120 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "page slug must be 1-120 characters")
	}
	if !slugRe.MatchString(slug) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "page slug may only contain lowercase letters, digits, and hyphens")
	}
	return slug, nil
}
