package procmock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_SameInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestRegister_ReplaceKeepsInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.register(MethodSpawn, Entry{Key: "git", Config: Success("v1\n")})
	r.register(MethodSpawn, Entry{Key: "npm", Config: Success("npm\n")})
	r.register(MethodSpawn, Entry{Key: "git", Config: Success("v2\n")})

	entries := r.entriesFor(MethodSpawn)
	require.Len(t, entries, 2)
	assert.Equal(t, "git", entries[0].Key)
	assert.Equal(t, "v2\n", entries[0].Config.Stdout)
	assert.Equal(t, "npm", entries[1].Key)
}

func TestRegister_KeyAndRegexDistinct(t *testing.T) {
	m := newTestMocker(t)
	m.Register("git", Success("plain\n"), MethodSpawn)
	m.RegisterRegexp(mustRe(t, "git"), Success("regex\n"), MethodSpawn)

	entries := m.reg.entriesFor(MethodSpawn)
	assert.Len(t, entries, 2)
}

func TestAllocPID_Sequential(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, firstPID, r.allocPID())
	assert.Equal(t, firstPID+1, r.allocPID())
	assert.Equal(t, firstPID+2, r.allocPID())
}

func TestClearCalls_KeepsPatterns(t *testing.T) {
	m := newTestMocker(t)
	m.Register("git status", Success("clean\n"))

	_, err := m.ExecSync("git status")
	require.NoError(t, err)
	p := m.Spawn("git", "status")
	p.Wait()

	require.Len(t, m.Calls(MethodExecSync), 1)
	require.Len(t, m.Spawned(), 1)

	m.ClearCalls()

	assert.Empty(t, m.Calls(MethodExecSync))
	assert.Empty(t, m.AllCalls())
	assert.Empty(t, m.Spawned())

	// Pattern maps survive.
	out, err := m.ExecSync("git status")
	require.NoError(t, err)
	assert.Equal(t, "clean\n", string(out))
}

func TestReset_DropsEverything(t *testing.T) {
	m := newTestMocker(t)
	m.Register("git status", Success("clean\n"))
	p := m.Spawn("git", "status")
	p.Wait()
	assert.Equal(t, firstPID, p.PID())

	m.reg.Reset()

	assert.Empty(t, m.reg.entriesFor(MethodSpawn))
	assert.Empty(t, m.AllCalls())
	assert.Empty(t, m.Spawned())

	// The pid counter restarts too.
	p2 := m.Spawn("git", "status")
	p2.Wait()
	assert.Equal(t, firstPID, p2.PID())
}

func TestAllCalls_InvocationOrder(t *testing.T) {
	withSettings(t, Settings{Quiet: true})
	m := newTestMocker(t)

	_, _ = m.ExecSync("first")
	m.Spawn("second").Wait()
	_, _ = m.ExecFileSync("third", nil)

	all := m.AllCalls()
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Command)
	assert.Equal(t, MethodExecSync, all[0].Method)
	assert.Equal(t, "second", all[1].Command)
	assert.Equal(t, MethodSpawn, all[1].Method)
	assert.Equal(t, "third", all[2].Command)
	assert.Equal(t, MethodExecFileSync, all[2].Method)
}

func TestCallRecord_Fields(t *testing.T) {
	m := newTestMocker(t)
	m.Register("npm install", Success("done\n"))

	p := m.Spawn("npm", `install`, `--force`)
	p.Wait()

	calls := m.Calls(MethodSpawn)
	require.Len(t, calls, 1)
	rec := calls[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "npm install --force", rec.Command)
	assert.Equal(t, []string{"install", "--force"}, rec.Args)
	assert.Equal(t, "npm install --force", rec.Normalized)
	assert.True(t, rec.Matched)
	assert.False(t, rec.Fallback)
	assert.Equal(t, "npm install", rec.Pattern)
	assert.False(t, rec.Time.IsZero())
}
