// Package intent maps a chat message to one of the assistant's intents.
package intent

import (
	"strings"

	"tailortalk/internal/core/normalize"
	"tailortalk/internal/core/rulepack"
)

// Intent is a recognized user intention.
type Intent string

const (
	Greeting   Intent = "greeting"
	Help       Intent = "help"
	List       Intent = "list"
	Reschedule Intent = "reschedule"
	Cancel     Intent = "cancel"
	Check      Intent = "check"
	Book       Intent = "book"
	Unknown    Intent = "unknown"
)

// TimeProbe reports whether a time can be extracted from text. It backs
// the last classification step: a message that names a time but no
// keyword is treated as a booking request.
type TimeProbe func(text string) bool

// Classifier resolves intents with a fixed precedence: greeting, help,
// then the rulebook keyword classes in order, then the time probe.
type Classifier struct {
	pack  *rulepack.Pack
	probe TimeProbe
}

// New builds a Classifier. probe may be nil, which disables the
// time-implies-booking fallback.
func New(pack *rulepack.Pack, probe TimeProbe) *Classifier {
	return &Classifier{pack: pack, probe: probe}
}

// Classify returns the intent for a raw message. It never fails; text
// with no recognizable signal classifies as Unknown.
func (c *Classifier) Classify(text string) Intent {
	t := normalize.Light(text)
	if t == "" {
		return Unknown
	}
	if c.pack.IsGreeting(t) {
		return Greeting
	}
	if strings.Contains(t, "help") {
		return Help
	}
	if name, ok := c.pack.Match(t); ok {
		return Intent(name)
	}
	if c.probe != nil && c.probe(text) {
		return Book
	}
	return Unknown
}
