package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tailortalk/internal/core/timeparse"
	"tailortalk/internal/platform/logger"
)

// Display formats for reply strings.
const (
	slotFormat = "Monday 03:04 PM"
	listFormat = "Monday, 02 January 2006 at 03:04 PM"
)

// Options configure a Service. Zero values select the assistant
// defaults: "TailorTalk Meeting" label, five-entry listings, the
// assistant timezone and the wall clock.
type Options struct {
	Label    string
	ListMax  int
	Location *time.Location
	Now      func() time.Time
}

// DefaultLabel names events the assistant books.
const DefaultLabel = "TailorTalk Meeting"

// Service answers calendar questions with ready-to-send reply strings.
// Store failures never surface as errors; they are logged and folded
// into a warning reply, so callers can hand the string straight back to
// the user.
type Service struct {
	store   Store
	log     *logger.Logger
	label   string
	listMax int
	loc     *time.Location
	now     func() time.Time
}

// New builds a Service over store.
func New(store Store, log *logger.Logger, opts Options) *Service {
	if opts.Label == "" {
		opts.Label = DefaultLabel
	}
	if opts.ListMax <= 0 {
		opts.ListMax = 5
	}
	if opts.Location == nil {
		opts.Location = timeparse.DefaultLocation()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:   store,
		log:     log,
		label:   opts.Label,
		listMax: opts.ListMax,
		loc:     opts.Location,
		now:     opts.Now,
	}
}

// Label returns the summary given to booked events.
func (s *Service) Label() string { return s.label }

// Check reports whether the hour slot at start is open.
func (s *Service) Check(ctx context.Context, start time.Time) string {
	from, to := Slot(start)
	events, err := s.store.ListBetween(ctx, from, to)
	if err != nil {
		s.log.Warn().Err(err).Msg("check availability")
		return fmt.Sprintf("⚠️ Error checking availability: %v", err)
	}
	when := s.display(start)
	if len(events) == 0 {
		return fmt.Sprintf("✅ You are free at %s.", when)
	}
	return fmt.Sprintf("❌ You already have an event at %s.", when)
}

// Book reserves the hour slot at start, refusing on conflict.
func (s *Service) Book(ctx context.Context, start time.Time) string {
	from, to := Slot(start)
	events, err := s.store.ListBetween(ctx, from, to)
	if err != nil {
		s.log.Warn().Err(err).Msg("book: conflict scan")
		return fmt.Sprintf("⚠️ Error booking event: %v", err)
	}
	if len(events) > 0 {
		return fmt.Sprintf("❌ Time slot conflict at %s.", s.display(start))
	}

	ev := Event{Summary: s.label, Start: from, End: to}
	if err := s.store.Insert(ctx, ev); err != nil {
		s.log.Warn().Err(err).Msg("book: insert")
		return fmt.Sprintf("⚠️ Error booking event: %v", err)
	}
	return fmt.Sprintf("📅 Booked '%s' for %s!", s.label, s.display(start))
}

// ListUpcoming renders the next few events as a bulleted reply.
func (s *Service) ListUpcoming(ctx context.Context) string {
	events, err := s.store.ListFrom(ctx, s.now().In(s.loc), s.listMax)
	if err != nil {
		s.log.Warn().Err(err).Msg("list upcoming")
		return fmt.Sprintf("⚠️ Error listing events: %v", err)
	}
	if len(events) == 0 {
		return "📭 No upcoming events found."
	}

	lines := make([]string, 0, len(events)+1)
	lines = append(lines, "📅 Upcoming events:")
	for _, ev := range events {
		summary := ev.Summary
		if summary == "" {
			summary = "Untitled"
		}
		lines = append(lines, fmt.Sprintf("• %s on %s", summary, ev.Start.In(s.loc).Format(listFormat)))
	}
	return strings.Join(lines, "\n")
}

// Reschedule moves the assistant's event in the old slot to newStart.
func (s *Service) Reschedule(ctx context.Context, oldStart, newStart time.Time) string {
	from, to := Slot(oldStart)
	events, err := s.store.ListBetween(ctx, from, to)
	if err != nil {
		s.log.Warn().Err(err).Msg("reschedule: scan")
		return fmt.Sprintf("⚠️ Error rescheduling event: %v", err)
	}

	for _, ev := range events {
		if !s.owns(ev) {
			continue
		}
		ev.Start, ev.End = Slot(newStart)
		if err := s.store.Update(ctx, ev); err != nil {
			s.log.Warn().Err(err).Msg("reschedule: update")
			return fmt.Sprintf("⚠️ Error rescheduling event: %v", err)
		}
		return fmt.Sprintf("🔁 Rescheduled '%s' to %s.", ev.Summary, s.display(newStart))
	}
	return "⚠️ No matching event found to reschedule."
}

// Cancel removes the assistant's event in the slot at start.
func (s *Service) Cancel(ctx context.Context, start time.Time) string {
	from, to := Slot(start)
	events, err := s.store.ListBetween(ctx, from, to)
	if err != nil {
		s.log.Warn().Err(err).Msg("cancel: scan")
		return fmt.Sprintf("⚠️ Error cancelling event: %v", err)
	}

	for _, ev := range events {
		if !s.owns(ev) {
			continue
		}
		if err := s.store.Delete(ctx, ev.ID); err != nil {
			s.log.Warn().Err(err).Msg("cancel: delete")
			return fmt.Sprintf("⚠️ Error cancelling event: %v", err)
		}
		return fmt.Sprintf("🗑️ Cancelled '%s' on %s.", ev.Summary, s.display(start))
	}
	return "⚠️ No matching event found to cancel."
}

// owns matches events by label substring, case-insensitively.
func (s *Service) owns(ev Event) bool {
	return strings.Contains(strings.ToLower(ev.Summary), strings.ToLower(s.label))
}

func (s *Service) display(t time.Time) string {
	return t.In(s.loc).Format(slotFormat)
}
