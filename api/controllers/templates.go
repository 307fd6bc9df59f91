package controllers

import (
	"net/http"

	"github.com/storeforge/backend/api/responses"
	templatesvc "github.com/storeforge/backend/internal/templates"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/logger"
)

// TemplateList returns the template catalog, optionally filtered by category.
func TemplateList(svc templatesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "template service unavailable"))
			return
		}

		templates, err := svc.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"templates": templates})
	}
}

func TemplateGet(svc templatesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "template service unavailable"))
			return
		}

		templateID, err := pathUUID(r, "templateID", "template id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		template, err := svc.Get(r.Context(), templateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, template)
	}
}
