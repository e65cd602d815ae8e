package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	perr "tailortalk/internal/platform/errors"
)

const (
	googleTokenURL = "https://oauth2.googleapis.com/token"
	gcalScope      = "https://www.googleapis.com/auth/calendar"
	gcalBaseURL    = "https://www.googleapis.com/calendar/v3"

	gcalTimeZone = "Asia/Kolkata"
)

// GCalOptions hold the offline-access credentials for a Google
// calendar. CalendarID defaults to "primary".
type GCalOptions struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	CalendarID   string
}

// GCalStore is a Store backed by the Google Calendar v3 API. Requests
// authenticate with an oauth2 token source that refreshes itself from
// the configured refresh token.
type GCalStore struct {
	client     *http.Client
	baseURL    string
	calendarID string
}

// NewGCalStore builds the authenticated store.
func NewGCalStore(ctx context.Context, opts GCalOptions) (*GCalStore, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" || opts.RefreshToken == "" {
		return nil, perr.InvalidArgf("gcal: client id, client secret and refresh token are required")
	}
	conf := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: googleTokenURL},
		Scopes:       []string{gcalScope},
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: opts.RefreshToken})
	return newGCalStore(oauth2.NewClient(ctx, ts), gcalBaseURL, opts.CalendarID), nil
}

// newGCalStore is the seam used by tests to point at a fake API.
func newGCalStore(client *http.Client, baseURL, calendarID string) *GCalStore {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GCalStore{client: client, baseURL: baseURL, calendarID: calendarID}
}

type gcalTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type gcalEvent struct {
	ID      string   `json:"id,omitempty"`
	Summary string   `json:"summary,omitempty"`
	Start   gcalTime `json:"start"`
	End     gcalTime `json:"end"`
}

type gcalEventList struct {
	Items []gcalEvent `json:"items"`
}

func (s *GCalStore) Insert(ctx context.Context, ev Event) error {
	body := gcalEvent{
		Summary: ev.Summary,
		Start:   gcalTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: gcalTimeZone},
		End:     gcalTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: gcalTimeZone},
	}
	return s.do(ctx, http.MethodPost, s.eventsURL(nil), body, nil)
}

func (s *GCalStore) ListBetween(ctx context.Context, from, to time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("timeMin", from.Format(time.RFC3339))
	q.Set("timeMax", to.Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	return s.list(ctx, q)
}

func (s *GCalStore) ListFrom(ctx context.Context, from time.Time, limit int) ([]Event, error) {
	q := url.Values{}
	q.Set("timeMin", from.Format(time.RFC3339))
	q.Set("maxResults", strconv.Itoa(limit))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	return s.list(ctx, q)
}

func (s *GCalStore) Update(ctx context.Context, ev Event) error {
	body := gcalEvent{
		Summary: ev.Summary,
		Start:   gcalTime{DateTime: ev.Start.Format(time.RFC3339), TimeZone: gcalTimeZone},
		End:     gcalTime{DateTime: ev.End.Format(time.RFC3339), TimeZone: gcalTimeZone},
	}
	return s.do(ctx, http.MethodPut, s.eventURL(ev.ID), body, nil)
}

func (s *GCalStore) Delete(ctx context.Context, id string) error {
	return s.do(ctx, http.MethodDelete, s.eventURL(id), nil, nil)
}

func (s *GCalStore) list(ctx context.Context, q url.Values) ([]Event, error) {
	var wire gcalEventList
	if err := s.do(ctx, http.MethodGet, s.eventsURL(q), nil, &wire); err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(wire.Items))
	for _, item := range wire.Items {
		ev, err := item.toEvent()
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (s *GCalStore) eventsURL(q url.Values) string {
	u := fmt.Sprintf("%s/calendars/%s/events", s.baseURL, url.PathEscape(s.calendarID))
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (s *GCalStore) eventURL(id string) string {
	return fmt.Sprintf("%s/calendars/%s/events/%s", s.baseURL, url.PathEscape(s.calendarID), url.PathEscape(id))
}

func (s *GCalStore) do(ctx context.Context, method, rawURL string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "gcal: encode request")
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, rdr)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "gcal: build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "gcal: request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return perr.NotFoundf("gcal: %s %s: not found", method, resp.Request.URL.Path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return perr.Unavailablef("gcal: %s returned %d: %s", method, resp.StatusCode, snippet)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return perr.Wrap(err, perr.ErrorCodeJSON, "gcal: decode response")
		}
	}
	return nil
}

// toEvent converts a wire event, accepting both timed and all-day
// start/end shapes.
func (g gcalEvent) toEvent() (Event, error) {
	start, err := parseGCalTime(g.Start)
	if err != nil {
		return Event{}, err
	}
	end, err := parseGCalTime(g.End)
	if err != nil {
		return Event{}, err
	}
	return Event{ID: g.ID, Summary: g.Summary, Start: start, End: end}, nil
}

func parseGCalTime(t gcalTime) (time.Time, error) {
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, perr.Wrapf(err, perr.ErrorCodeJSON, "gcal: parse dateTime %q", t.DateTime)
		}
		return parsed, nil
	}
	if t.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", t.Date, time.UTC)
		if err != nil {
			return time.Time{}, perr.Wrapf(err, perr.ErrorCodeJSON, "gcal: parse date %q", t.Date)
		}
		return parsed, nil
	}
	return time.Time{}, perr.JSONErrf("gcal: event time missing")
}
