package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/storeforge/backend/pkg/errors"
)

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header required")
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header must use the Bearer scheme")
	}
	token := strings.TrimSpace(header[7:])
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token required")
	}
	return token, nil
}
