package procmock

import (
	"strings"

	"github.com/zjrosen/procmock/internal/log"
	"github.com/zjrosen/procmock/internal/normalize"
)

// Spawn emulates the handle-returning asynchronous entry point. The handle
// starts emitting on its own goroutine, so listeners attached right after
// this call observe every event. Spawned handles are tracked and available
// through Spawned().
func (m *Mocker) Spawn(command string, args ...string) *FakeProcess {
	cfg := m.dispatch(MethodSpawn, rawJoin(command, args), args)
	p := startFakeProcess(cfg, m.reg)
	m.reg.trackProcess(p)
	return p
}

// Fork emulates the module-path variant of Spawn: the configuration is
// resolved by the module path alone first, then by the combined
// path-plus-arguments form. The recorded call always carries the full joined
// command line regardless of which lookup key matched. Fork handles are not
// added to the spawned-process list; completion is observed through the
// returned handle.
func (m *Mocker) Fork(modulePath string, args ...string) *FakeProcess {
	res := m.reg.resolve(MethodFork, modulePath)
	if res.State == Unmatched && len(args) > 0 {
		res = m.reg.resolve(MethodFork, rawJoin(modulePath, args))
	}

	cfg := m.record(MethodFork, rawJoin(modulePath, args), args, res)
	return startFakeProcess(cfg, m.reg)
}

// dispatch resolves, records, and warns for one invocation, returning the
// configuration to drive.
func (m *Mocker) dispatch(method Method, raw string, args []string) Config {
	res := m.reg.resolve(method, raw)
	return m.record(method, raw, args, res)
}

// record logs the call into the registry history before any completion can
// happen, so "was this command attempted" assertions hold even for failing
// invocations.
func (m *Mocker) record(method Method, raw string, args []string, res MatchResult) Config {
	norm := normalize.Normalize(raw)
	m.reg.trackCall(newCallRecord(method, raw, args, norm, res))

	if res.State == Unmatched {
		if !CurrentSettings().Quiet {
			log.Warn(log.CatMatch, "no mock registered, completing as empty success",
				"method", method, "command", raw,
				"hint", "register one with procmock.Register(pattern, cfg)")
		}
		return Config{}
	}

	log.Debug(log.CatExec, "mocked invocation", "method", method, "command", raw, "pattern", res.Pattern)
	return res.Config
}

// rawJoin builds the raw command line the way a shell-less spawn sees it:
// command and arguments joined by single spaces, no normalization.
func rawJoin(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
