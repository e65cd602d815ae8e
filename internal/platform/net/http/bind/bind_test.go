package bind

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "tailortalk/internal/platform/errors"
)

type chatReq struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

func TestParseJSON_OK(t *testing.T) {
	r := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message":"book tomorrow 3 pm"}`))

	got, err := ParseJSON[chatReq](r)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if got.Message != "book tomorrow 3 pm" {
		t.Fatalf("message = %q", got.Message)
	}
}

func TestParseJSON_EmptyBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/chat", strings.NewReader(""))

	if _, err := ParseJSON[chatReq](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON error, got %v", err)
	}
}

func TestParseJSON_UnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message":"x","extra":1}`))

	if _, err := ParseJSON[chatReq](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON error for unknown field, got %v", err)
	}
}

func TestParseJSON_TrailingData(t *testing.T) {
	r := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message":"x"}{"message":"y"}`))

	if _, err := ParseJSON[chatReq](r); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON error for trailing data, got %v", err)
	}
}

func TestParseJSON_ValidationUsesJSONTag(t *testing.T) {
	r := httptest.NewRequest("POST", "/chat", strings.NewReader(`{"message":""}`))

	_, err := ParseJSON[chatReq](r)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	e, _ := perr.As(err)
	if e.Field() != "message" {
		t.Fatalf("field = %q, want json tag name", e.Field())
	}
}
