// Package normalize canonicalizes command lines so pattern lookups are
// insensitive to whitespace, quoting, and path-separator noise.
package normalize

import (
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// memo caches canonical forms. Normalization is pure, so entries never
// need to expire.
var memo = gocache.New(gocache.NoExpiration, 0)

// Normalize returns the canonical form of a command line: leading and
// trailing whitespace trimmed, internal whitespace runs collapsed to single
// spaces, symmetric quote characters stripped from individual tokens, and
// backslash path separators converted to forward slashes.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if cached, ok := memo.Get(s); ok {
		return cached.(string)
	}

	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, `\`, "/")
		f = stripQuotes(f)
		if f == "" {
			continue
		}
		out = append(out, f)
	}

	result := strings.Join(out, " ")
	memo.SetDefault(s, result)
	return result
}

// Parts joins a command and its arguments with single spaces and normalizes
// the result.
func Parts(command string, args []string) string {
	if len(args) == 0 {
		return Normalize(command)
	}
	return Normalize(command + " " + strings.Join(args, " "))
}

// stripQuotes removes symmetric single or double quotes wrapping a token.
// Stripping repeats until a fixed point so doubled quoting cannot defeat
// idempotence.
func stripQuotes(tok string) string {
	for len(tok) >= 2 {
		first, last := tok[0], tok[len(tok)-1]
		if first != last || (first != '\'' && first != '"') {
			break
		}
		tok = tok[1 : len(tok)-1]
	}
	return tok
}
