package editor

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/storeforge/backend/pkg/builderapi"
	"github.com/storeforge/backend/pkg/types"
)

var (
	ErrNoPageLoaded = errors.New("no page loaded")
	ErrBusy         = errors.New("operation already in flight")
)

// PageAPI is the persistence surface a Session needs.
type PageAPI interface {
	GetPage(ctx context.Context, storeID uuid.UUID, slug string) (*builderapi.Page, error)
	UpdatePageBlocks(ctx context.Context, pageID uuid.UUID, blocks types.Blocks) (*builderapi.Page, error)
	PublishStore(ctx context.Context, storeID uuid.UUID) (*builderapi.Store, error)
}

// Session ties a Document to a page on the backend. Saves are last-writer-wins;
// failures leave the document editable and unchanged.
type Session struct {
	api PageAPI
	doc *Document

	mu           sync.Mutex
	storeID      uuid.UUID
	pageID       uuid.UUID
	pageSlug     string
	isLoading    bool
	isSaving     bool
	isPublishing bool
	lastError    string
}

// NewSession wires a fresh document to the given API client.
func NewSession(api PageAPI) *Session {
	return &Session{
		api: api,
		doc: NewDocument(),
	}
}

// Document exposes the working copy for editing.
func (s *Session) Document() *Document {
	return s.doc
}

// PageID returns the loaded page id, or uuid.Nil before LoadPage.
func (s *Session) PageID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageID
}

// LastError returns the message from the most recent failed operation, cleared
// on the next successful one.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// IsLoading reports an in-flight LoadPage.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// IsSaving reports an in-flight SavePage.
func (s *Session) IsSaving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isSaving
}

// IsPublishing reports an in-flight PublishStore.
func (s *Session) IsPublishing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPublishing
}

// LoadPage pulls the page and replaces the document's blocks, clearing dirty.
func (s *Session) LoadPage(ctx context.Context, storeID uuid.UUID, slug string) error {
	if err := s.begin(&s.isLoading); err != nil {
		return err
	}
	defer s.end(&s.isLoading)

	page, err := s.api.GetPage(ctx, storeID, slug)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.storeID = storeID
	s.pageID = page.ID
	s.pageSlug = page.Slug
	s.lastError = ""
	s.mu.Unlock()

	s.doc.SetBlocks(page.Blocks)
	return nil
}

// SavePage writes the current block sequence back. Success clears the dirty
// flag; failure leaves the document untouched.
func (s *Session) SavePage(ctx context.Context) error {
	s.mu.Lock()
	if s.pageID == uuid.Nil {
		s.mu.Unlock()
		return ErrNoPageLoaded
	}
	pageID := s.pageID
	s.mu.Unlock()

	if err := s.begin(&s.isSaving); err != nil {
		return err
	}
	defer s.end(&s.isSaving)

	if _, err := s.api.UpdatePageBlocks(ctx, pageID, s.doc.Blocks()); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
	s.doc.MarkClean()
	return nil
}

// PublishStore saves outstanding edits first, then marks the store live.
func (s *Session) PublishStore(ctx context.Context) error {
	s.mu.Lock()
	if s.pageID == uuid.Nil {
		s.mu.Unlock()
		return ErrNoPageLoaded
	}
	storeID := s.storeID
	s.mu.Unlock()

	if s.doc.IsDirty() {
		if err := s.SavePage(ctx); err != nil {
			return err
		}
	}

	if err := s.begin(&s.isPublishing); err != nil {
		return err
	}
	defer s.end(&s.isPublishing)

	if _, err := s.api.PublishStore(ctx, storeID); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

func (s *Session) begin(flag *bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if *flag {
		return ErrBusy
	}
	*flag = true
	return nil
}

func (s *Session) end(flag *bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*flag = false
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
}
