package builderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/types"
)

func writeData(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"data": data}); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func writeError(t *testing.T, w http.ResponseWriter, status int, code, message string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	payload := map[string]any{"error": map[string]string{"code": code, "message": message}}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestGetPageDecodesEnvelope(t *testing.T) {
	storeID := uuid.New()
	pageID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			writeError(t, w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
			return
		}
		writeData(t, w, http.StatusOK, Page{
			ID:      pageID,
			StoreID: storeID,
			Slug:    "home",
			Title:   "Home",
			Blocks:  types.Blocks{{ID: "b1", Type: "hero", Order: 0}},
			IsHome:  true,
		})
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithCredentials(Credentials{AccessToken: "access-1"}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	page, err := client.GetPage(context.Background(), storeID, "home")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if page.ID != pageID || page.Slug != "home" || !page.IsHome {
		t.Fatalf("unexpected page %+v", page)
	}
	if len(page.Blocks) != 1 || page.Blocks[0].Type != "hero" {
		t.Fatalf("blocks not decoded: %+v", page.Blocks)
	}
}

func TestRefreshAndRetryOnceOn401(t *testing.T) {
	storeID := uuid.New()
	var refreshCalls, pageCalls int

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls++
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decode refresh body: %v", err)
			}
			if body["refreshToken"] != "refresh-old" {
				writeError(t, w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid refresh token")
				return
			}
			writeData(t, w, http.StatusOK, map[string]string{
				"accessToken":  "access-new",
				"refreshToken": "refresh-new",
			})
		default:
			pageCalls++
			if r.Header.Get("Authorization") != "Bearer access-new" {
				writeError(t, w, http.StatusUnauthorized, "UNAUTHORIZED", "token expired")
				return
			}
			writeData(t, w, http.StatusOK, Page{ID: uuid.New(), StoreID: storeID, Slug: "home"})
		}
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithCredentials(Credentials{
		AccessToken:  "access-stale",
		RefreshToken: "refresh-old",
	}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.GetPage(context.Background(), storeID, "home"); err != nil {
		t.Fatalf("get page after refresh: %v", err)
	}
	if refreshCalls != 1 {
		t.Fatalf("expected one refresh call, got %d", refreshCalls)
	}
	if pageCalls != 2 {
		t.Fatalf("expected original plus retried request, got %d", pageCalls)
	}

	creds := client.Credentials()
	if creds.AccessToken != "access-new" || creds.RefreshToken != "refresh-new" {
		t.Fatalf("credentials not rotated: %+v", creds)
	}
}

func TestSecondUnauthorizedSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			writeData(t, w, http.StatusOK, map[string]string{
				"accessToken":  "access-new",
				"refreshToken": "refresh-new",
			})
			return
		}
		writeError(t, w, http.StatusUnauthorized, "UNAUTHORIZED", "still unauthorized")
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithCredentials(Credentials{
		AccessToken:  "stale",
		RefreshToken: "refresh-old",
	}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetPage(context.Background(), uuid.New(), "home")
	if err == nil {
		t.Fatal("expected error after retried 401")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestUnauthorizedWithoutRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(t, w, http.StatusUnauthorized, "UNAUTHORIZED", "token expired")
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithCredentials(Credentials{AccessToken: "stale"}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetPage(context.Background(), uuid.New(), "home")
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected UNAUTHORIZED without refresh attempt, got %v", err)
	}
}

func TestErrorEnvelopeMapsOntoCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(t, w, http.StatusNotFound, "NOT_FOUND", "page not found")
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithCredentials(Credentials{AccessToken: "token"}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.GetPage(context.Background(), uuid.New(), "missing")
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if appErr.Message() != "page not found" {
		t.Fatalf("expected wire message preserved, got %q", appErr.Message())
	}
}
