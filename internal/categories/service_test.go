package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
)

type stubCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
	deleted    []uuid.UUID
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: map[uuid.UUID]*models.Category{}}
}

func (r *stubCategoryRepo) Create(_ context.Context, category *models.Category) error {
	for _, existing := range r.categories {
		if existing.StoreID == category.StoreID && existing.Slug == category.Slug {
			return &pq.Error{Code: "23505", Constraint: "idx_categories_store_slug"}
		}
	}
	category.ID = uuid.New()
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *stubCategoryRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]models.Category, error) {
	out := []models.Category{}
	for _, category := range r.categories {
		if category.StoreID == storeID {
			out = append(out, *category)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *models.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.categories, id)
	return nil
}

type stubStoreFinder struct {
	stores map[uuid.UUID]*models.Store
}

func (f *stubStoreFinder) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	store, ok := f.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return store, nil
}

func newTestService(t *testing.T) (Service, *stubCategoryRepo, uuid.UUID, uuid.UUID) {
	t.Helper()
	repo := newStubCategoryRepo()
	ownerID := uuid.New()
	storeID := uuid.New()
	stores := &stubStoreFinder{stores: map[uuid.UUID]*models.Store{
		storeID: {ID: storeID, OwnerID: ownerID},
	}}
	svc, err := NewService(repo, stores)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, ownerID, storeID
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	svc, _, ownerID, storeID := newTestService(t)

	dto, err := svc.Create(context.Background(), ownerID, storeID, CreateCategoryInput{
		Name: "  Summer Sale & Deals  ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Name != "Summer Sale & Deals" {
		t.Fatalf("name not trimmed: %q", dto.Name)
	}
	if dto.Slug != "summer-sale-deals" {
		t.Fatalf("unexpected slug %q", dto.Slug)
	}
}

func TestCreateCategoryExplicitSlug(t *testing.T) {
	svc, _, ownerID, storeID := newTestService(t)

	dto, err := svc.Create(context.Background(), ownerID, storeID, CreateCategoryInput{
		Name: "Shoes",
		Slug: "Footwear",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.Slug != "footwear" {
		t.Fatalf("unexpected slug %q", dto.Slug)
	}

	_, err = svc.Create(context.Background(), ownerID, storeID, CreateCategoryInput{
		Name: "Bad",
		Slug: "no spaces",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	svc, _, ownerID, storeID := newTestService(t)

	if _, err := svc.Create(context.Background(), ownerID, storeID, CreateCategoryInput{Name: "Shoes"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), ownerID, storeID, CreateCategoryInput{Name: "Shoes"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestCategoryOwnership(t *testing.T) {
	svc, _, ownerID, storeID := newTestService(t)

	dto, err := svc.Create(context.Background(), ownerID, storeID, CreateCategoryInput{Name: "Shoes"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	stranger := uuid.New()
	if _, err := svc.List(context.Background(), stranger, storeID); pkgerrors.As(err) == nil {
		t.Fatal("expected forbidden list")
	}
	name := "Sneakers"
	if _, err := svc.Update(context.Background(), stranger, dto.ID, UpdateCategoryInput{Name: &name}); pkgerrors.As(err) == nil {
		t.Fatal("expected forbidden update")
	}
	if err := svc.Delete(context.Background(), stranger, dto.ID); pkgerrors.As(err) == nil {
		t.Fatal("expected forbidden delete")
	}
}

func TestUpdateAndDeleteCategory(t *testing.T) {
	svc, repo, ownerID, storeID := newTestService(t)

	dto, err := svc.Create(context.Background(), ownerID, storeID, CreateCategoryInput{Name: "Shoes"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "Sneakers"
	slug := "sneakers"
	updated, err := svc.Update(context.Background(), ownerID, dto.ID, UpdateCategoryInput{Name: &name, Slug: &slug})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Sneakers" || updated.Slug != "sneakers" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if err := svc.Delete(context.Background(), ownerID, dto.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatal("delete not forwarded")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Shoes":                "shoes",
		"Summer Sale & Deals":  "summer-sale-deals",
		"  --Weird--Input--  ": "weird-input",
		"!!!":                  "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
