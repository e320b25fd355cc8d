package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalize_Basic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "git status", "git status"},
		{"leading and trailing space", "  git status  ", "git status"},
		{"collapses whitespace runs", "git \t  status\n", "git status"},
		{"strips double quotes", `git commit -m "msg"`, "git commit -m msg"},
		{"strips single quotes", "echo 'hello'", "echo hello"},
		{"strips doubled quotes", `echo ''x''`, "echo x"},
		{"backslash separators", `node scripts\build.js`, "node scripts/build.js"},
		{"quoted windows path", `node "C:\tools\run.js"`, "node C:/tools/run.js"},
		{"empty string", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"quote-only token dropped", `git ""`, "git"},
		{"asymmetric quotes untouched", `echo "a b"`, `echo "a b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestParts(t *testing.T) {
	require.Equal(t, "git status", Parts("git", []string{"status"}))
	require.Equal(t, "git", Parts("git", nil))
	require.Equal(t, "npm run build --silent", Parts("npm", []string{"run", "build", "--silent"}))
	require.Equal(t, "node scripts/ci.js", Parts("node", []string{`scripts\ci.js`}))
}

func TestNormalize_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		once := Normalize(s)
		require.Equal(t, once, Normalize(once), "normalize must be a fixed point")
	})
}

func TestParts_EquivalentToJoinedNormalize(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cmd := rapid.StringMatching(`[a-z]{1,8}`).Draw(rt, "cmd")
		args := rapid.SliceOfN(rapid.StringMatching(`[a-z-]{1,8}`), 0, 4).Draw(rt, "args")
		joined := cmd
		for _, a := range args {
			joined += " " + a
		}
		require.Equal(t, Normalize(joined), Parts(cmd, args))
	})
}
