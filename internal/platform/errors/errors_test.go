package errors

import (
	stderrs "errors"
	"net/http"
	"testing"
)

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := stderrs.New("boom")
	err := Wrap(cause, ErrorCodeDB, "query failed")

	if err.Error() != "query failed: boom" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("wrapped cause should satisfy errors.Is")
	}
	if Root(err) != cause {
		t.Fatalf("Root should return the deepest cause")
	}
}

func TestCodeMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NotFoundf("missing"), http.StatusNotFound},
		{InvalidArgf("bad"), http.StatusUnprocessableEntity},
		{Conflictf("busy"), http.StatusConflict},
		{JSONErrf("parse"), http.StatusBadRequest},
		{Newf(ErrorCodeValidation, "v"), http.StatusBadRequest},
		{Unavailablef("down"), http.StatusServiceUnavailable},
		{Internalf("meh"), http.StatusInternalServerError},
		{stderrs.New("foreign"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestWireFrom(t *testing.T) {
	w := WireFrom(Conflictf("slot taken"))
	if w.Code != ErrorCodeConflict || w.Message != "slot taken" {
		t.Fatalf("unexpected wire: %+v", w)
	}

	w = WireFrom(stderrs.New("plain"))
	if w.Code != ErrorCodeUnknown || w.Message != "plain" {
		t.Fatalf("foreign error wire: %+v", w)
	}

	if w := WireFrom(nil); w.Code != 0 || w.Message != "" {
		t.Fatalf("nil error should map to zero wire")
	}
}

func TestWithField(t *testing.T) {
	base := Newf(ErrorCodeValidation, "required")
	withField := WithField(base, "message")

	e, ok := As(withField)
	if !ok || e.Field() != "message" {
		t.Fatalf("expected field to be attached, got %+v", e)
	}
	// original untouched
	if o, _ := As(base); o.Field() != "" {
		t.Fatalf("WithField must copy, not mutate")
	}
	// foreign errors pass through
	foreign := stderrs.New("x")
	if WithField(foreign, "f") != foreign {
		t.Fatalf("foreign error should be returned unchanged")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound should carry the not-found code")
	}
	if IsCode(nil, ErrorCodeNotFound) {
		t.Fatalf("nil should map to unknown")
	}
}
