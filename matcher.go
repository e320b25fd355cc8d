package procmock

import (
	"strings"

	"github.com/zjrosen/procmock/internal/log"
	"github.com/zjrosen/procmock/internal/normalize"
)

// MatchState says how a lookup was resolved. Unmatched is a visible branch,
// not a nil sentinel: callers proceed with the default empty-success
// configuration and a diagnostic warning.
type MatchState int

const (
	// Unmatched means no pattern applied; behave as an unconfigured
	// invocation.
	Unmatched MatchState = iota
	// Matched means a pattern from the invoked method's own map applied.
	Matched
	// FallbackMatched means a pattern from another method's map applied
	// through the cross-method fallback.
	FallbackMatched
)

// MatchResult is the outcome of resolving an invocation against the
// registry.
type MatchResult struct {
	State   MatchState
	Config  Config
	Pattern string
}

// findConfig resolves raw against the entries using three tiers, first match
// wins: exact, regular expression, substring. Within a tier the earliest
// registered entry wins. Both the raw input and its normalized form are
// compared on every tier.
func findConfig(entries []Entry, raw string) (MatchResult, bool) {
	norm := normalize.Normalize(raw)

	// Tier 1: exact.
	for _, e := range entries {
		if e.Regex != nil {
			continue
		}
		if raw == e.Key || norm == normalize.Normalize(e.Key) {
			return MatchResult{State: Matched, Config: e.Config, Pattern: e.Key}, true
		}
	}

	// Tier 2: regular expression.
	for _, e := range entries {
		if e.Regex == nil {
			continue
		}
		if e.Regex.MatchString(raw) || e.Regex.MatchString(norm) {
			return MatchResult{State: Matched, Config: e.Config, Pattern: e.Regex.String()}, true
		}
	}

	// Tier 3: substring, both directions of normalization.
	for _, e := range entries {
		if e.Regex != nil || e.Key == "" {
			continue
		}
		normKey := normalize.Normalize(e.Key)
		if strings.Contains(raw, e.Key) ||
			(normKey != "" && strings.Contains(norm, normKey)) ||
			strings.Contains(norm, e.Key) ||
			(normKey != "" && strings.Contains(raw, normKey)) {
			return MatchResult{State: Matched, Config: e.Config, Pattern: e.Key}, true
		}
	}

	return MatchResult{State: Unmatched}, false
}

// resolve looks raw up in the method's own map, then falls back across the
// other methods' maps unless strict mode rejects that.
func (r *Registry) resolve(method Method, raw string) MatchResult {
	if res, ok := findConfig(r.entriesFor(method), raw); ok {
		log.Debug(log.CatMatch, "scoped match", "method", method, "pattern", res.Pattern, "command", raw)
		return res
	}

	strict := CurrentSettings().Strict

	for _, other := range AllMethods() {
		if other == method {
			continue
		}
		res, ok := findConfig(r.entriesFor(other), raw)
		if !ok {
			continue
		}
		if strict {
			log.Warn(log.CatMatch, "strict mode: refusing cross-method fallback",
				"method", method, "source", other, "pattern", res.Pattern, "command", raw)
			return MatchResult{State: Unmatched}
		}
		res.State = FallbackMatched
		log.Debug(log.CatMatch, "cross-method fallback match",
			"method", method, "source", other, "pattern", res.Pattern, "command", raw)
		return res
	}

	return MatchResult{State: Unmatched}
}
