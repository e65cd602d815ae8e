package intent

import (
	"strings"
	"testing"

	"tailortalk/internal/core/rulepack"
)

func classifier(t *testing.T, probe TimeProbe) *Classifier {
	t.Helper()
	p, err := rulepack.Load()
	if err != nil {
		t.Fatalf("rulepack.Load: %v", err)
	}
	return New(p, probe)
}

func TestClassify(t *testing.T) {
	c := classifier(t, nil)

	cases := []struct {
		in   string
		want Intent
	}{
		{"hi", Greeting},
		{"Hey there!", Greeting},
		{"good morning", Greeting},
		{"hi, book a meeting at 3 pm", Greeting},
		{"what can you do? help", Help},
		{"HELP", Help},
		{"reschedule my 3 pm meeting to 5 pm", Reschedule},
		{"move my call to friday", Reschedule},
		{"cancel my appointment tomorrow", Cancel},
		{"please call off the sync", Cancel},
		{"are you free at 3 pm?", Check},
		{"when are you available", Check},
		{"list my meetings", List},
		{"show my upcoming events", List},
		{"book a slot tomorrow at 5 pm", Book},
		{"schedule a meeting for friday", Book},
		{"what is the capital of france", Unknown},
		{"", Unknown},
		{"   ", Unknown},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.in); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// A keyword-free message that still carries a time reads as a booking.
func TestClassifyTimeImpliesBook(t *testing.T) {
	probe := func(text string) bool {
		return strings.Contains(text, "pm") || strings.Contains(text, "tomorrow")
	}
	c := classifier(t, probe)

	if got := c.Classify("tomorrow at 5 pm"); got != Book {
		t.Fatalf("Classify = %q, want %q", got, Book)
	}
	// keyword classes still win over the probe
	if got := c.Classify("cancel tomorrow at 5 pm"); got != Cancel {
		t.Fatalf("Classify = %q, want %q", got, Cancel)
	}
	// probe disabled leaves it unknown
	if got := classifier(t, nil).Classify("tomorrow at 5 pm"); got != Unknown {
		t.Fatalf("Classify = %q, want %q", got, Unknown)
	}
}

func TestClassifyNormalizesBeforeMatching(t *testing.T) {
	c := classifier(t, nil)
	if got := c.Classify("  CANCEL   my   meeting  "); got != Cancel {
		t.Fatalf("Classify = %q, want %q", got, Cancel)
	}
	// "hi" inside another word must not greet
	if got := c.Classify("this thing is broken"); got == Greeting {
		t.Fatal("substring greeting fired")
	}
}
