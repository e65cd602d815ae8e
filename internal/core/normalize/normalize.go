// Package normalize provides deterministic text normalization for the
// extraction pipeline.
//
// Two profiles exist on purpose:
//
//   - Light: unicode fold, lower case, trim. Safe for the intent classifier
//     and the range extractor, which must still see "from X to Y" phrasing.
//   - ForTime: Light plus ordinal stripping, vague time-of-day expansion and
//     connective stripping. Only the single-time extractor may use it, because
//     it destroys the from/to range syntax.
package normalize

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters: NFKC, case fold, strip marks and format chars, width fold
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// edgePunct is what gets trimmed off both ends of a normalized utterance
const edgePunct = ",.!? \t\r\n"

var (
	ordinalRe = regexp.MustCompile(`\b(\d+)(?:st|nd|rd|th)\b`)
	connectRe = regexp.MustCompile(`\b(?:at|on|from|to)\b`)
)

// vaguePhrase maps a time-of-day word to an explicit clock time.
// Checked in order; the first phrase present wins and all its occurrences
// are replaced. Whole-word matching keeps "midnight" from being eaten by
// "night" and "afternoon" by "noon"
type vaguePhrase struct {
	re      *regexp.Regexp
	replace string
}

var vaguePhrases = []vaguePhrase{
	{regexp.MustCompile(`\bmorning\b`), "9 am"},
	{regexp.MustCompile(`\bafternoon\b`), "2 pm"},
	{regexp.MustCompile(`\bevening\b`), "6 pm"},
	{regexp.MustCompile(`\bnight\b`), "8 pm"},
	{regexp.MustCompile(`\bnoon\b`), "12 pm"},
	{regexp.MustCompile(`\bmidnight\b`), "12 am"},
}

// Light folds unicode, lower-cases and trims edge punctuation.
// It never touches words, so range syntax survives
func Light(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	ns = collapseSpaces(ns)
	return strings.Trim(ns, edgePunct)
}

// ForTime prepares text for the single-time extractor: Light, then ordinal
// suffix stripping ("28th" -> "28"), vague time-of-day expansion
// ("evening" -> "6 pm"), and connective stripping (at/on/from/to)
func ForTime(s string) string {
	out := Light(s)
	out = ordinalRe.ReplaceAllString(out, "$1")
	out = ExpandVague(out)
	out = connectRe.ReplaceAllString(out, " ")
	out = collapseSpaces(out)
	return strings.Trim(out, edgePunct)
}

// ExpandVague replaces the first matching vague time-of-day phrase with its
// explicit clock time. At most one phrase (all its occurrences) is expanded
func ExpandVague(s string) string {
	for _, v := range vaguePhrases {
		if v.re.MatchString(s) {
			return v.re.ReplaceAllString(s, v.replace)
		}
	}
	return s
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
