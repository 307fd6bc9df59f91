package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storeforge/backend/api/responses"
	"github.com/storeforge/backend/api/validators"
	pagesvc "github.com/storeforge/backend/internal/pages"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/logger"
)

// PageCreate adds a page to a store the caller owns.
func PageCreate(svc pagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := pathUUID(r, "storeID", "store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pagesvc.CreatePageInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Create(r.Context(), userID, storeID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, page)
	}
}

// PageList returns every page in the store, home first.
func PageList(svc pagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := pathUUID(r, "storeID", "store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pages, err := svc.List(r.Context(), userID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"pages": pages})
	}
}

func PageGet(svc pagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageID, err := pathUUID(r, "pageID", "page id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Get(r.Context(), userID, pageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PageGetBySlug looks a page up by slug within a store. The editor uses this
// before it knows page ids, so drafts are visible here.
func PageGetBySlug(svc pagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := pathUUID(r, "storeID", "store id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "page slug is required"))
			return
		}

		page, err := svc.GetBySlug(r.Context(), userID, storeID, slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PageUpdate edits page metadata; the home slug is immutable.
func PageUpdate(svc pagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageID, err := pathUUID(r, "pageID", "page id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pagesvc.UpdatePageInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.Update(r.Context(), userID, pageID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// PageUpdateBlocks replaces the page content with the editor's full block list.
func PageUpdateBlocks(svc pagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageID, err := pathUUID(r, "pageID", "page id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body pagesvc.UpdateBlocksInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.UpdateBlocks(r.Context(), userID, pageID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func PageDelete(svc pagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "page service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pageID, err := pathUUID(r, "pageID", "page id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, pageID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
