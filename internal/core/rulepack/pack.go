// Package rulepack loads the embedded intent rulebook and compiles it
// into matchers. Rules are evaluated in file order, so the JSON array
// doubles as the precedence list.
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

//go:embed rules.json
var rulesRaw []byte

// Rule is one compiled keyword class mapped to an intent name.
type Rule struct {
	Intent  string
	Pattern *regexp.Regexp
}

// Pack is the compiled rulebook.
type Pack struct {
	Version  int
	Greeting *regexp.Regexp
	Rules    []Rule
}

type rawRule struct {
	Intent  string `json:"intent"`
	Pattern string `json:"pattern"`
}

type rawPack struct {
	Version   int       `json:"version"`
	Greetings []string  `json:"greetings"`
	Intents   []rawRule `json:"intents"`
}

var (
	loadOnce sync.Once
	loaded   *Pack
	loadErr  error
)

// Load parses and compiles the embedded rulebook. The result is cached;
// subsequent calls return the same Pack.
func Load() (*Pack, error) {
	loadOnce.Do(func() {
		loaded, loadErr = compile(rulesRaw)
	})
	return loaded, loadErr
}

// MustLoad is Load for wiring paths where a broken embedded rulebook is
// a programming error.
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

func compile(raw []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(raw, &rp); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	if len(rp.Intents) == 0 {
		return nil, fmt.Errorf("rulepack: no intent rules defined")
	}

	p := &Pack{Version: rp.Version}

	if len(rp.Greetings) > 0 {
		alts := make([]string, 0, len(rp.Greetings))
		for _, g := range rp.Greetings {
			g = strings.TrimSpace(strings.ToLower(g))
			if g == "" {
				continue
			}
			// multi-word greetings tolerate any run of spaces
			alts = append(alts, strings.ReplaceAll(regexp.QuoteMeta(g), " ", `\s+`))
		}
		re, err := regexp.Compile(`\b(?:` + strings.Join(alts, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile greetings: %w", err)
		}
		p.Greeting = re
	}

	seen := make(map[string]bool, len(rp.Intents))
	for _, rr := range rp.Intents {
		if rr.Intent == "" || rr.Pattern == "" {
			return nil, fmt.Errorf("rulepack: rule with empty intent or pattern")
		}
		if seen[rr.Intent] {
			return nil, fmt.Errorf("rulepack: duplicate intent %q", rr.Intent)
		}
		seen[rr.Intent] = true
		re, err := regexp.Compile(rr.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rulepack: compile %q: %w", rr.Intent, err)
		}
		p.Rules = append(p.Rules, Rule{Intent: rr.Intent, Pattern: re})
	}
	return p, nil
}

// IsGreeting reports whether text contains a standalone greeting token.
// Matching is word-bounded so "hi" inside "this" never fires.
func (p *Pack) IsGreeting(text string) bool {
	return p.Greeting != nil && p.Greeting.MatchString(text)
}

// Match returns the first intent whose keyword class matches text, in
// rulebook order. ok is false when nothing matched.
func (p *Pack) Match(text string) (intent string, ok bool) {
	for _, r := range p.Rules {
		if r.Pattern.MatchString(text) {
			return r.Intent, true
		}
	}
	return "", false
}
