package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/storeforge/backend/pkg/errors"
)

type samplePayload struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,min=2"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"user@example.com","name":"Pat"}`))
	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); err != nil {
		t.Fatalf("DecodeJSONBody: %v", err)
	}
	if payload.Email != "user@example.com" {
		t.Fatalf("payload not decoded: %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"user@example.com","extra":true}`))
	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestDecodeJSONBodyValidationDetailsUseJSONNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"P"}`))
	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["email"] != "is required" {
		t.Fatalf("missing email detail: %v", details)
	}
	if details["name"] != "must be at least 2" {
		t.Fatalf("missing name detail: %v", details)
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=25", nil)
	value, err := ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil || value != 25 {
		t.Fatalf("ParseQueryInt = %d, %v", value, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil || value != 20 {
		t.Fatalf("default not applied: %d, %v", value, err)
	}

	r = httptest.NewRequest("GET", "/?limit=500", nil)
	if _, err = ParseQueryInt(r, "limit", 20, 1, 100); err == nil {
		t.Fatal("expected out of range error")
	}

	r = httptest.NewRequest("GET", "/?limit=abc", nil)
	if _, err = ParseQueryInt(r, "limit", 20, 1, 100); err == nil {
		t.Fatal("expected numeric error")
	}
}

func TestParseQueryUUID(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest("GET", "/?categoryId="+id.String(), nil)
	got, err := ParseQueryUUID(r, "categoryId")
	if err != nil || got == nil || *got != id {
		t.Fatalf("ParseQueryUUID = %v, %v", got, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryUUID(r, "categoryId")
	if err != nil || got != nil {
		t.Fatalf("absent parameter should return nil: %v, %v", got, err)
	}

	r = httptest.NewRequest("GET", "/?categoryId=nope", nil)
	if _, err = ParseQueryUUID(r, "categoryId"); err == nil {
		t.Fatal("expected UUID error")
	}
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := BearerToken(r)
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("BearerToken = %q, %v", token, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	if _, err := BearerToken(r); err == nil {
		t.Fatal("expected missing header error")
	}

	r.Header.Set("Authorization", "Basic abc")
	if _, err := BearerToken(r); err == nil {
		t.Fatal("expected scheme error")
	}
}
