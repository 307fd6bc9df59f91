package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storeforge/backend/api/middleware"
	pkgerrors "github.com/storeforge/backend/pkg/errors"
)

// pathUUID parses a UUID route parameter; label feeds the validation message.
func pathUUID(r *http.Request, name, label string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+label)
	}
	return id, nil
}

func requireUser(ctx context.Context) (uuid.UUID, error) {
	userID := middleware.UserUUIDFromContext(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return userID, nil
}
