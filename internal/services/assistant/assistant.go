// Package assistant is the conversation layer: it classifies an
// utterance, extracts the times it needs, and turns the calendar's
// answers into a single reply string. Handle never fails outward; every
// panic or miss becomes a user-displayable reply.
package assistant

import (
	"context"
	"time"
)

// Calendar is what the assistant needs from a calendar backend. All
// operations answer with ready-to-display strings, errors included.
type Calendar interface {
	Check(ctx context.Context, start time.Time) string
	Book(ctx context.Context, start time.Time) string
	ListUpcoming(ctx context.Context) string
	Reschedule(ctx context.Context, oldStart, newStart time.Time) string
	Cancel(ctx context.Context, start time.Time) string
}

// Fixed replies. The help text enumerates the five supported
// operations; the others cover prompts and rejections.
const (
	greetingReply = "👋 Hi! I'm your calendar assistant. Try \"Book a meeting tomorrow at 3 PM\", or type 'help' to see everything I can do."

	helpReply = "Here's what I can help with:\n" +
		"• Book a meeting:  \"Schedule for tomorrow at 3 PM\"\n" +
		"• Check availability:  \"Are you free Friday?\"\n" +
		"• Reschedule:  \"Move my 2 PM meeting to 4 PM\"\n" +
		"• Cancel:  \"Cancel my 3 PM appointment\"\n" +
		"• List events:  \"Show my upcoming meetings\""

	unknownReply = "🤔 I'm not sure what you're asking. Type 'help' to see what I can do."

	timeMissReply = "❌ I couldn't understand the time. Try formats like " +
		"'28 June 10 PM' or 'tomorrow at 3 PM'."

	rangeMissReply = "❌ Please specify both times clearly, e.g. " +
		"'Reschedule from 2 PM to 4 PM tomorrow'"

	pastTimeReply = "❌ The new time must be in the future."

	cancelNeedsClockReply = "❗ Please specify the time, e.g. 'cancel meeting tomorrow at 3 PM'."
)
