// Package timeparse turns free text into concrete points in time.
//
// Extraction runs a fixed strategy cascade over normalized text: a
// precise "28 jun 10 pm" regex, a natural-language parser, then a
// relative-day regex for shapes like "tomorrow 5 pm".
// The first strategy to produce a candidate wins. Results are localized
// to the assistant timezone, and a bare-midnight candidate is bumped to
// 09:00 on the assumption that no explicit clock time was given.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"tailortalk/internal/core/normalize"
)

// DefaultHour replaces a bare-midnight parse result.
const DefaultHour = 9

// DefaultLocation returns the assistant timezone, Asia/Kolkata, falling
// back to a fixed +05:30 zone when the tz database is unavailable.
func DefaultLocation() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+30*60)
}

// Range is the (old, new) pair extracted from a reschedule request.
// Callers must check both Has flags; a partial range is not usable.
type Range struct {
	Old    time.Time
	New    time.Time
	HasOld bool
	HasNew bool
}

// Complete reports whether both sides of the range were extracted.
func (r Range) Complete() bool { return r.HasOld && r.HasNew }

// Options configure an Extractor. Zero values select the assistant
// timezone and the wall clock.
type Options struct {
	Location *time.Location
	Now      func() time.Time
}

// Extractor extracts times from message text.
type Extractor struct {
	loc *time.Location
	now func() time.Time
	nl  *when.Parser
}

// New builds an Extractor with the natural-language rule set loaded.
func New(opts Options) *Extractor {
	loc := opts.Location
	if loc == nil {
		loc = DefaultLocation()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Extractor{loc: loc, now: now, nl: w}
}

// Location returns the extractor's timezone.
func (e *Extractor) Location() *time.Location { return e.loc }

// Now returns the current instant in the extractor's timezone.
func (e *Extractor) Now() time.Time { return e.now().In(e.loc) }

var (
	// "28 jun 10 pm", "5 december 9:30 am"; month is matched by prefix
	dateClockRe = regexp.MustCompile(
		`\b(\d{1,2})\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)

	// "tomorrow 5 pm", "next monday 9:30 am", "4 pm tomorrow", bare "5 pm"
	relClockRe = regexp.MustCompile(
		`\b(?:(tomorrow|today|next\s+\w+|this\s+\w+)\s+)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b(?:\s+(tomorrow|today|next\s+\w+|this\s+\w+)\b)?`)

	// clock mentions only, for range scanning and for telling a
	// date-only phrase apart from one that names a time
	clockRe = regexp.MustCompile(`\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`)

	// a 12 am clock, which must wrap to hour zero
	midnightClockRe = regexp.MustCompile(`\b12(?::\d{2})?\s*am\b`)

	monthByPrefix = map[string]time.Month{
		"jan": time.January, "feb": time.February, "mar": time.March,
		"apr": time.April, "may": time.May, "jun": time.June,
		"jul": time.July, "aug": time.August, "sep": time.September,
		"oct": time.October, "nov": time.November, "dec": time.December,
	}

	weekdayByName = map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
)

// Extract returns the single point in time the text refers to.
// ok is false when no strategy produced a candidate.
func (e *Extractor) Extract(text string) (time.Time, bool) {
	cleaned := normalize.ForTime(text)
	if cleaned == "" {
		return time.Time{}, false
	}
	base := e.Now()
	for _, parse := range e.strategies(cleaned) {
		if t, ok := parse(cleaned, base); ok {
			t = t.In(e.loc)
			// A candidate from a phrase with no clock mention carries the
			// base clock, not one the user asked for. Drop it to midnight
			// so the default hour applies.
			if !clockRe.MatchString(cleaned) {
				t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.loc)
			}
			return e.finalize(t), true
		}
	}
	return time.Time{}, false
}

// strategies orders the cascade for one input. The explicit
// day-month-clock shape always goes first: the NL parser can latch onto
// just the clock fragment of "28 jun 10 pm" and drop the date, so the
// precise regex must win when it matches. A "12 am" clock also skips
// ahead of the NL parser, whose hour rule reads 12 am as noon instead
// of wrapping it to hour zero.
func (e *Extractor) strategies(cleaned string) []func(string, time.Time) (time.Time, bool) {
	if midnightClockRe.MatchString(cleaned) {
		return []func(string, time.Time) (time.Time, bool){
			e.parseDateClock,
			e.parseRelClock,
			e.parseNatural,
		}
	}
	return []func(string, time.Time) (time.Time, bool){
		e.parseDateClock,
		e.parseNatural,
		e.parseRelClock,
	}
}

// ExtractRange pulls the (old, new) time pair out of a reschedule
// request. An explicit "from X to Y" clause is split and each side
// parsed independently; otherwise the first two clock mentions are
// used. The range scan runs on lightly normalized text so the from/to
// connectives survive.
func (e *Extractor) ExtractRange(text string) Range {
	light := normalize.Light(text)

	if m := rangeRe.FindStringSubmatch(light); m != nil {
		var r Range
		r.Old, r.HasOld = e.Extract(m[1])
		r.New, r.HasNew = e.Extract(m[2])
		return r
	}

	clocks := clockRe.FindAllString(light, 2)
	if len(clocks) >= 2 {
		var r Range
		r.Old, r.HasOld = e.Extract(clocks[0])
		r.New, r.HasNew = e.Extract(clocks[1])
		return r
	}
	return Range{}
}

var rangeRe = regexp.MustCompile(`\bfrom\s+(.+?)\s+to\s+(.+)$`)

func (e *Extractor) parseNatural(s string, base time.Time) (time.Time, bool) {
	r, err := e.nl.Parse(s, base)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	return preferFuture(r.Time.In(e.loc), base), true
}

// parseDateClock handles "day month clock" shapes the NL parser skips.
func (e *Extractor) parseDateClock(s string, base time.Time) (time.Time, bool) {
	m := dateClockRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month := monthByPrefix[m[2]]
	hour := clock24(m[3], m[5])
	minute := 0
	if m[4] != "" {
		minute, _ = strconv.Atoi(m[4])
	}

	// The current year is assumed; a date that already passed stays in
	// the past so downstream validation can reject it.
	t := time.Date(base.Year(), month, day, hour, minute, 0, 0, e.loc)
	if t.Day() != day {
		// day overflowed the month, e.g. "31 feb"
		return time.Time{}, false
	}
	return t, true
}

// parseRelClock handles "(tomorrow|today|next X|this X)? clock" shapes.
func (e *Extractor) parseRelClock(s string, base time.Time) (time.Time, bool) {
	m := relClockRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	hour := clock24(m[2], m[4])
	minute := 0
	if m[3] != "" {
		minute, _ = strconv.Atoi(m[3])
	}

	marker := m[1]
	if marker == "" {
		marker = m[5]
	}
	day := base
	explicitDay := marker != ""
	switch {
	case marker == "tomorrow":
		day = base.AddDate(0, 0, 1)
	case marker == "today" || marker == "":
		// base date
	case strings.HasPrefix(marker, "next"):
		day = shiftToWord(base, wordAfter(marker), true)
	case strings.HasPrefix(marker, "this"):
		day = shiftToWord(base, wordAfter(marker), false)
	}

	t := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, e.loc)
	if !explicitDay && !t.After(base) {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}

func wordAfter(phrase string) string {
	fields := strings.Fields(phrase)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// shiftToWord moves base to the day named by word. For weekdays,
// strict=true skips today's weekday to the one a week out; "week"
// shifts by seven days. Unknown words leave base unchanged.
func shiftToWord(base time.Time, word string, strict bool) time.Time {
	if word == "week" {
		if strict {
			return base.AddDate(0, 0, 7)
		}
		return base
	}
	wd, ok := weekdayByName[word]
	if !ok {
		return base
	}
	delta := (int(wd) - int(base.Weekday()) + 7) % 7
	if delta == 0 && strict {
		delta = 7
	}
	return base.AddDate(0, 0, delta)
}

func clock24(hourStr, meridiem string) int {
	h, _ := strconv.Atoi(hourStr)
	h %= 12
	if meridiem == "pm" {
		h += 12
	}
	return h
}

// finalize localizes t and applies the bare-midnight default.
func (e *Extractor) finalize(t time.Time) time.Time {
	t = t.In(e.loc)
	if t.Hour() == 0 && t.Minute() == 0 {
		t = time.Date(t.Year(), t.Month(), t.Day(), DefaultHour, 0, 0, 0, e.loc)
	}
	return t.Truncate(time.Minute)
}

// preferFuture rolls a past candidate forward: by a day when only the
// clock time has passed, by a week when a weekday mention landed in the
// recent past. Candidates further back (explicit past dates) are left
// for the caller to reject.
func preferFuture(t, base time.Time) time.Time {
	if !t.Before(base) {
		return t
	}
	switch d := base.Sub(t); {
	case d <= 24*time.Hour:
		return t.AddDate(0, 0, 1)
	case d <= 7*24*time.Hour:
		return t.AddDate(0, 0, 7)
	}
	return t
}
