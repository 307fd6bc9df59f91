package pages

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storeforge/backend/pkg/db/models"
	"github.com/storeforge/backend/pkg/enums"
	"github.com/storeforge/backend/pkg/types"
)

func setupPagesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS pages (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  slug TEXT NOT NULL,
  title TEXT NOT NULL,
  blocks TEXT NOT NULL,
  is_home INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	return db
}

func seedDBPage(t *testing.T, repo *Repository, storeID uuid.UUID, slug string, isHome bool, createdAt time.Time) *models.Page {
	t.Helper()

	page := &models.Page{
		ID:        uuid.New(),
		StoreID:   storeID,
		Slug:      slug,
		Title:     slug,
		Blocks:    types.Blocks{{ID: uuid.NewString(), Type: enums.BlockTypeText, Props: map[string]any{"text": "hi"}}},
		IsHome:    isHome,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), page))
	return page
}

func TestPagesListByStoreOrdersHomeFirst(t *testing.T) {
	repo := NewRepository(setupPagesTestDB(t))
	storeID := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)

	seedDBPage(t, repo, storeID, "about", false, base)
	seedDBPage(t, repo, storeID, "contact", false, base.Add(time.Minute))
	home := seedDBPage(t, repo, storeID, "home", true, base.Add(2*time.Minute))
	seedDBPage(t, repo, uuid.New(), "home", true, base) // other store

	pages, err := repo.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, home.ID, pages[0].ID)
	assert.Equal(t, "about", pages[1].Slug)
	assert.Equal(t, "contact", pages[2].Slug)
}

func TestPagesFindBySlug(t *testing.T) {
	repo := NewRepository(setupPagesTestDB(t))
	storeID := uuid.New()
	created := seedDBPage(t, repo, storeID, "faq", false, time.Now().UTC())

	found, err := repo.FindBySlug(context.Background(), storeID, "faq")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	require.Len(t, found.Blocks, 1)
	assert.Equal(t, enums.BlockTypeText, found.Blocks[0].Type)

	_, err = repo.FindBySlug(context.Background(), storeID, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindBySlug(context.Background(), uuid.New(), "faq")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPagesCreateWithTxAndUpdate(t *testing.T) {
	db := setupPagesTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()

	page := &models.Page{
		ID:      uuid.New(),
		StoreID: storeID,
		Slug:    "home",
		Title:   "Home",
		Blocks:  types.Blocks{},
		IsHome:  true,
	}
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.CreateWithTx(tx, page)
	}))

	page.Title = "Welcome"
	require.NoError(t, repo.Update(context.Background(), page))

	found, err := repo.FindByID(context.Background(), page.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", found.Title)
	assert.True(t, found.IsHome)
}
