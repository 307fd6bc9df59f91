package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/storeforge/backend/api/responses"
	"github.com/storeforge/backend/api/validators"
	storesvc "github.com/storeforge/backend/internal/stores"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
	"github.com/storeforge/backend/pkg/logger"
	"github.com/storeforge/backend/pkg/types"
)

type createStoreRequest struct {
	Name       string     `json:"name" validate:"required,min=2,max=120"`
	Subdomain  string     `json:"subdomain" validate:"required"`
	TemplateID *uuid.UUID `json:"templateId"`
}

func (r createStoreRequest) toInput() storesvc.CreateStoreInput {
	return storesvc.CreateStoreInput{
		Name:       r.Name,
		Subdomain:  r.Subdomain,
		TemplateID: r.TemplateID,
	}
}

type updateStoreRequest struct {
	Name         *string         `json:"name" validate:"omitempty,min=2,max=120"`
	CustomDomain *string         `json:"customDomain" validate:"omitempty,max=253"`
	Theme        *types.Theme    `json:"theme"`
	Settings     *types.Settings `json:"settings"`
}

func (r updateStoreRequest) toInput() storesvc.UpdateStoreInput {
	return storesvc.UpdateStoreInput{
		Name:         r.Name,
		CustomDomain: r.CustomDomain,
		Theme:        r.Theme,
		Settings:     r.Settings,
	}
}

// StoreCreate provisions a store, its home page, and optionally a template.
func StoreCreate(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createStoreRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), userID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// StoreList returns the caller's stores, newest first.
func StoreList(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		userID, err := requireUser(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), userID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func StoreGet(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
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

		store, err := svc.Get(r.Context(), userID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

func StoreUpdate(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
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

		var body updateStoreRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Update(r.Context(), userID, storeID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

func StoreDelete(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
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

		if err := svc.Delete(r.Context(), userID, storeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// StorePublish flips the storefront live.
func StorePublish(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return storePublishToggle(svc, logg, true)
}

// StoreUnpublish takes the storefront offline again.
func StoreUnpublish(svc storesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return storePublishToggle(svc, logg, false)
}

func storePublishToggle(svc storesvc.Service, logg *logger.Logger, publish bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
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

		var store *storesvc.StoreDTO
		if publish {
			store, err = svc.Publish(r.Context(), userID, storeID)
		} else {
			store, err = svc.Unpublish(r.Context(), userID, storeID)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}
