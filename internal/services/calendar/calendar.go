// Package calendar manages the assistant's event slots.
//
// A Service composes user-facing replies on top of a Store, which is
// one of three backends: an in-memory map, Postgres, or the Google
// Calendar API. Every event occupies a one-hour slot and conflicts are
// refused rather than double-booked.
package calendar

import (
	"context"
	"time"
)

// Event is a single one-hour calendar slot.
type Event struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
}

// Store is the persistence boundary for events. Implementations must
// treat [from, to) windows as overlap queries: any event intersecting
// the window is returned, ordered by start time.
type Store interface {
	Insert(ctx context.Context, ev Event) error
	// ListBetween returns events overlapping [from, to), ordered by start.
	ListBetween(ctx context.Context, from, to time.Time) ([]Event, error)
	// ListFrom returns up to limit events starting at or after from.
	ListFrom(ctx context.Context, from time.Time, limit int) ([]Event, error)
	Update(ctx context.Context, ev Event) error
	Delete(ctx context.Context, id string) error
}

// SlotDuration is the fixed length of every booked slot.
const SlotDuration = time.Hour

// Slot expands a start time to its [start, start+1h) window.
func Slot(start time.Time) (time.Time, time.Time) {
	return start, start.Add(SlotDuration)
}
