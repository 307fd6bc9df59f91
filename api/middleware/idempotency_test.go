package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type memoryIdempotencyStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: map[string]string{}}
}

func (s *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *memoryIdempotencyStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value.(string)
	return nil
}

func (s *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.values[key]; exists {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "sf:idempotency:" + scope + ":" + id
}

func (s *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func registerRouter(store *memoryIdempotencyStore, calls *int) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	r.Post("/api/v1/auth/register", func(w http.ResponseWriter, req *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"ok":true}}`))
	})
	return r
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	router := registerRouter(store, &calls)

	body := `{"email":"user@example.com"}`
	for i := 0; i < 2; i++ {
		r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))
		r.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		if w.Code != http.StatusCreated {
			t.Fatalf("attempt %d: expected 201, got %d", i+1, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"ok":true`) {
			t.Fatalf("attempt %d: unexpected body %s", i+1, w.Body)
		}
	}
	if calls != 1 {
		t.Fatalf("handler should run once, ran %d times", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	router := registerRouter(store, &calls)

	r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(`{"email":"a@example.com"}`))
	r.Header.Set("Idempotency-Key", "key-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("first request: %d", w.Code)
	}

	r = httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(`{"email":"b@example.com"}`))
	r.Header.Set("Idempotency-Key", "key-1")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if calls != 1 {
		t.Fatalf("handler should not rerun, ran %d times", calls)
	}
}

func TestIdempotencyRequiresKeyHeader(t *testing.T) {
	store := newMemoryIdempotencyStore()
	calls := 0
	router := registerRouter(store, &calls)

	r := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if calls != 0 {
		t.Fatal("handler should not run without a key")
	}
}

func TestIdempotencySkipsUnlistedRoutes(t *testing.T) {
	store := newMemoryIdempotencyStore()
	r := chi.NewRouter()
	r.Use(Idempotency(store, nil))
	calls := 0
	r.Post("/api/v1/other", func(w http.ResponseWriter, req *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/v1/other", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}
	if calls != 2 {
		t.Fatalf("unlisted route should always run, ran %d times", calls)
	}
}
