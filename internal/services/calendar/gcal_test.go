package calendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "tailortalk/internal/platform/errors"
)

func TestGCalStoreList(t *testing.T) {
	var gotPath, gotTimeMin string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTimeMin = r.URL.Query().Get("timeMin")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[
			{"id":"e1","summary":"TailorTalk Meeting",
			 "start":{"dateTime":"2025-06-10T15:00:00+05:30"},
			 "end":{"dateTime":"2025-06-10T16:00:00+05:30"}},
			{"id":"e2","start":{"date":"2025-06-11"},"end":{"date":"2025-06-12"}}
		]}`))
	}))
	defer srv.Close()

	store := newGCalStore(srv.Client(), srv.URL, "")
	from := time.Date(2025, time.June, 10, 15, 0, 0, 0, time.FixedZone("IST", 19800))
	evs, err := store.ListBetween(context.Background(), from, from.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListBetween: %v", err)
	}

	if gotPath != "/calendars/primary/events" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotTimeMin != "2025-06-10T15:00:00+05:30" {
		t.Fatalf("timeMin = %q", gotTimeMin)
	}
	if len(evs) != 2 {
		t.Fatalf("events = %+v", evs)
	}
	if evs[0].ID != "e1" || evs[0].Summary != "TailorTalk Meeting" {
		t.Fatalf("event[0] = %+v", evs[0])
	}
	if !evs[0].Start.Equal(from) {
		t.Fatalf("start = %v, want %v", evs[0].Start, from)
	}
	// all-day events parse from the date field
	if evs[1].Start.IsZero() {
		t.Fatalf("all-day start missing: %+v", evs[1])
	}
}

func TestGCalStoreInsert(t *testing.T) {
	var gotMethod string
	var gotBody gcalEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"new"}`))
	}))
	defer srv.Close()

	store := newGCalStore(srv.Client(), srv.URL, "work")
	start := time.Date(2025, time.June, 10, 15, 0, 0, 0, time.FixedZone("IST", 19800))
	err := store.Insert(context.Background(), Event{Summary: "TailorTalk Meeting", Start: start, End: start.Add(time.Hour)})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q", gotMethod)
	}
	if gotBody.Summary != "TailorTalk Meeting" {
		t.Fatalf("body = %+v", gotBody)
	}
	if gotBody.Start.DateTime != "2025-06-10T15:00:00+05:30" || gotBody.Start.TimeZone != "Asia/Kolkata" {
		t.Fatalf("start = %+v", gotBody.Start)
	}
}

func TestGCalStoreDeleteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	store := newGCalStore(srv.Client(), srv.URL, "")
	err := store.Delete(context.Background(), "missing")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestGCalStoreServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := newGCalStore(srv.Client(), srv.URL, "")
	_, err := store.ListBetween(context.Background(), time.Now(), time.Now().Add(time.Hour))
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestNewGCalStoreValidates(t *testing.T) {
	_, err := NewGCalStore(context.Background(), GCalOptions{ClientID: "id"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}
}
