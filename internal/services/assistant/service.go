package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"tailortalk/internal/core/intent"
	"tailortalk/internal/core/timeparse"
	"tailortalk/internal/platform/logger"
)

// Smalltalker answers messages outside the calendar domain.
type Smalltalker interface {
	Reply(ctx context.Context, msg string) (string, error)
}

// Service routes an utterance to the right calendar operation.
type Service struct {
	classify *intent.Classifier
	times    *timeparse.Extractor
	cal      Calendar
	small    Smalltalker
	log      *logger.Logger
}

// NewService wires the conversation pipeline.
func NewService(cls *intent.Classifier, times *timeparse.Extractor, cal Calendar, log *logger.Logger) *Service {
	return &Service{classify: cls, times: times, cal: cal, log: log}
}

// WithSmalltalk attaches an optional conversational fallback consulted
// for utterances that classify as unknown. Without it, unknown messages
// get the fixed fallback reply.
func (s *Service) WithSmalltalk(st Smalltalker) *Service {
	s.small = st
	return s
}

// clock tokens like "3 pm" or "4:30am"
var clockTokenRe = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`)

// Handle answers one utterance. It never panics outward; unexpected
// failures come back as a warning reply.
func (s *Service) Handle(ctx context.Context, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("message", text).Msg("handle recovered")
			reply = fmt.Sprintf("⚠️ An error occurred: %v. Please try again later.", r)
		}
	}()

	switch s.classify.Classify(text) {
	case intent.Greeting:
		return greetingReply

	case intent.Help:
		return helpReply

	case intent.List:
		return s.cal.ListUpcoming(ctx)

	case intent.Reschedule:
		rng := s.times.ExtractRange(text)
		if !rng.Complete() {
			return rangeMissReply
		}
		if !rng.New.After(s.times.Now()) {
			return pastTimeReply
		}
		return s.cal.Reschedule(ctx, rng.Old, rng.New)

	case intent.Cancel:
		t, ok := s.times.Extract(text)
		if !ok {
			return timeMissReply
		}
		// "cancel meeting tomorrow" without a clock time would target a
		// defaulted hour the user never named; ask for one instead.
		if strings.Contains(strings.ToLower(text), "tomorrow") && !clockTokenRe.MatchString(text) {
			return cancelNeedsClockReply
		}
		return s.cal.Cancel(ctx, t)

	case intent.Check:
		t, ok := s.times.Extract(text)
		if !ok {
			return timeMissReply
		}
		return s.cal.Check(ctx, t)

	case intent.Book:
		t, ok := s.times.Extract(text)
		if !ok {
			return timeMissReply
		}
		return s.cal.Book(ctx, t)
	}

	if s.small != nil {
		answer, err := s.small.Reply(ctx, text)
		if err == nil && answer != "" {
			return answer
		}
		if err != nil {
			s.log.Warn().Err(err).Msg("smalltalk fallback failed")
		}
	}
	return unknownReply
}
