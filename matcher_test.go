package procmock

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfig_ExactBeatsRegex(t *testing.T) {
	entries := []Entry{
		{Regex: regexp.MustCompile(`^git`), Config: Success("regex\n")},
		{Key: "git status", Config: Success("exact\n")},
	}

	res, ok := findConfig(entries, "git status")
	require.True(t, ok)
	assert.Equal(t, Matched, res.State)
	assert.Equal(t, "exact\n", res.Config.Stdout)
	assert.Equal(t, "git status", res.Pattern)
}

func TestFindConfig_RegexBeatsSubstring(t *testing.T) {
	entries := []Entry{
		{Key: "status", Config: Success("substring\n")},
		{Regex: regexp.MustCompile(`^git status$`), Config: Success("regex\n")},
	}

	res, ok := findConfig(entries, "git status")
	require.True(t, ok)
	assert.Equal(t, "regex\n", res.Config.Stdout)
	assert.Equal(t, "^git status$", res.Pattern)
}

func TestFindConfig_SubstringEarliestWins(t *testing.T) {
	entries := []Entry{
		{Key: "git", Config: Success("first\n")},
		{Key: "status", Config: Success("second\n")},
	}

	res, ok := findConfig(entries, "git status")
	require.True(t, ok)
	assert.Equal(t, "first\n", res.Config.Stdout)
	assert.Equal(t, "git", res.Pattern)
}

func TestFindConfig_NormalizedExact(t *testing.T) {
	entries := []Entry{
		{Key: `git   "status"`, Config: Success("ok\n")},
	}

	res, ok := findConfig(entries, "git status")
	require.True(t, ok)
	assert.Equal(t, "ok\n", res.Config.Stdout)
}

func TestFindConfig_NormalizedLookup(t *testing.T) {
	entries := []Entry{
		{Key: "node scripts/build.js", Config: Success("built\n")},
	}

	res, ok := findConfig(entries, `node  scripts\build.js`)
	require.True(t, ok)
	assert.Equal(t, "built\n", res.Config.Stdout)
}

func TestFindConfig_NoMatch(t *testing.T) {
	entries := []Entry{
		{Key: "git status", Config: Success("ok\n")},
	}

	res, ok := findConfig(entries, "npm install")
	assert.False(t, ok)
	assert.Equal(t, Unmatched, res.State)
}

func TestFindConfig_EmptyKeyNeverSubstringMatches(t *testing.T) {
	entries := []Entry{
		{Key: "", Config: Success("never\n")},
	}

	_, ok := findConfig(entries, "anything at all")
	assert.False(t, ok)
}

func TestResolve_ScopedBeatsFallback(t *testing.T) {
	m := newTestMocker(t)
	m.Register("git status", Success("from spawn\n"), MethodSpawn)
	m.Register("git status", Success("from exec\n"), MethodExec)

	res := m.reg.resolve(MethodExec, "git status")
	assert.Equal(t, Matched, res.State)
	assert.Equal(t, "from exec\n", res.Config.Stdout)
}

func TestResolve_CrossMethodFallback(t *testing.T) {
	m := newTestMocker(t)
	m.Register("git status", Success("ok\n"), MethodSpawn)

	res := m.reg.resolve(MethodExecSync, "git status")
	assert.Equal(t, FallbackMatched, res.State)
	assert.Equal(t, "ok\n", res.Config.Stdout)
}

func TestResolve_StrictRefusesFallback(t *testing.T) {
	withSettings(t, Settings{Strict: true})
	buf := captureLog(t)

	m := newTestMocker(t)
	m.Register("git status", Success("ok\n"), MethodSpawn)

	res := m.reg.resolve(MethodExecSync, "git status")
	assert.Equal(t, Unmatched, res.State)
	assert.Contains(t, buf.String(), "refusing cross-method fallback")
}

func TestResolve_StrictStillMatchesOwnScope(t *testing.T) {
	withSettings(t, Settings{Strict: true})

	m := newTestMocker(t)
	m.Register("git status", Success("ok\n"), MethodExecSync)

	res := m.reg.resolve(MethodExecSync, "git status")
	assert.Equal(t, Matched, res.State)
}
