package stores

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
	"github.com/storeforge/backend/pkg/pagination"
	"github.com/storeforge/backend/pkg/types"
)

var subdomainRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// Subdomains that would shadow platform routes.
var reservedSubdomains = map[string]struct{}{
	"www":   {},
	"api":   {},
	"app":   {},
	"admin": {},
}

const homePageTitle = "Home"

type storeRepository interface {
	CreateWithTx(tx *gorm.DB, store *models.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindBySubdomain(ctx context.Context, subdomain string) (*models.Store, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]models.Store, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type pageCreator interface {
	CreateWithTx(tx *gorm.DB, page *models.Page) error
}

type templateFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ListResult is one page of stores plus pagination totals.
type ListResult struct {
	Stores     []StoreDTO        `json:"stores"`
	Pagination pagination.Result `json:"pagination"`
}

// Service exposes store operations.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateStoreInput) (*StoreDTO, error)
	Get(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error)
	List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*ListResult, error)
	Update(ctx context.Context, userID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, userID, storeID uuid.UUID) error
	Publish(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error)
	Unpublish(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error)
}

type service struct {
	repo      storeRepository
	pages     pageCreator
	templates templateFinder
	tx        txRunner
}

// NewService builds a store service with the provided collaborators.
func NewService(repo storeRepository, pages pageCreator, templates templateFinder, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if pages == nil {
		return nil, fmt.Errorf("page repository required")
	}
	if templates == nil {
		return nil, fmt.Errorf("template repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, pages: pages, templates: templates, tx: tx}, nil
}

// Create inserts the store and its home page atomically. When a template is
// requested its pages and theme are copied instead of the blank home page.
func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateStoreInput) (*StoreDTO, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name must be at least 2 characters")
	}

	subdomain, err := normalizeSubdomain(input.Subdomain)
	if err != nil {
		return nil, err
	}

	store := &models.Store{
		Name:      name,
		Subdomain: subdomain,
		OwnerID:   ownerID,
		Theme:     types.DefaultTheme(),
		Settings:  types.DefaultSettings(),
	}

	pages := []models.Page{{
		Slug:   "home",
		Title:  homePageTitle,
		Blocks: types.Blocks{},
		IsHome: true,
	}}

	if input.TemplateID != nil {
		template, err := s.templates.FindByID(ctx, *input.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "template not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template")
		}
		store.Theme = template.Theme
		pages = pagesFromTemplate(template)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateWithTx(tx, store); err != nil {
			return err
		}
		for i := range pages {
			pages[i].StoreID = store.ID
			if err := s.pages.CreateWithTx(tx, &pages[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "subdomain already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}

	return FromModel(store), nil
}

func (s *service) Get(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	return FromModel(store), nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*ListResult, error) {
	params = pagination.Normalize(params)

	total, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count stores")
	}

	rows, err := s.repo.ListByOwner(ctx, ownerID, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}

	out := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return &ListResult{
		Stores:     out,
		Pagination: pagination.NewResult(params, total),
	}, nil
}

func (s *service) Update(ctx context.Context, userID, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 2 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name must be at least 2 characters")
		}
		store.Name = name
	}
	if input.CustomDomain != nil {
		domain := strings.TrimSpace(*input.CustomDomain)
		if domain == "" {
			store.CustomDomain = nil
		} else {
			store.CustomDomain = &domain
		}
	}
	if input.Theme != nil {
		store.Theme = *input.Theme
	}
	if input.Settings != nil {
		store.Settings = *input.Settings
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) Delete(ctx context.Context, userID, storeID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, storeID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}

func (s *service) Publish(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error) {
	return s.setPublished(ctx, userID, storeID, true)
}

func (s *service) Unpublish(ctx context.Context, userID, storeID uuid.UUID) (*StoreDTO, error) {
	return s.setPublished(ctx, userID, storeID, false)
}

func (s *service) setPublished(ctx context.Context, userID, storeID uuid.UUID, published bool) (*StoreDTO, error) {
	store, err := s.loadOwned(ctx, userID, storeID)
	if err != nil {
		return nil, err
	}
	store.IsPublished = published
	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return FromModel(store), nil
}

func (s *service) loadOwned(ctx context.Context, userID, storeID uuid.UUID) (*models.Store, error) {
	store, err := s.repo.FindByID(ctx, storeID)
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

func normalizeSubdomain(raw string) (string, error) {
	subdomain := strings.ToLower(strings.TrimSpace(raw))
	if len(subdomain) < 3 || len(subdomain) > 63 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "subdomain must be 3-63 characters")
	}
	if !subdomainRe.MatchString(subdomain) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "subdomain may only contain lowercase letters, digits, and hyphens")
	}
	if strings.HasPrefix(subdomain, "-") || strings.HasSuffix(subdomain, "-") {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "subdomain cannot start or end with a hyphen")
	}
	if _, reserved := reservedSubdomains[subdomain]; reserved {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "subdomain is reserved")
	}
	return subdomain, nil
}

func pagesFromTemplate(template *models.Template) []models.Page {
	if template == nil || len(template.Pages) == 0 {
		return []models.Page{{
			Slug:   "home",
			Title:  homePageTitle,
			Blocks: types.Blocks{},
			IsHome: true,
		}}
	}

	out := make([]models.Page, 0, len(template.Pages))
	sawHome := false
	for _, tp := range template.Pages {
		page := models.Page{
			Slug:   tp.Slug,
			Title:  tp.Title,
			Blocks: tp.Blocks,
			IsHome: tp.IsHome,
		}
		if tp.IsHome {
			if sawHome {
				page.IsHome = false
			}
			sawHome = true
		}
		out = append(out, page)
	}
	if !sawHome {
		out[0].IsHome = true
	}
	return out
}
