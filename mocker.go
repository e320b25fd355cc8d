package procmock

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/zjrosen/procmock/internal/log"
	"github.com/zjrosen/procmock/internal/pubsub"
)

// Commander is the process-spawning surface code under test should depend
// on. Mocker implements it; production code wires a real implementation over
// os/exec with the same shape.
type Commander interface {
	Spawn(command string, args ...string) *FakeProcess
	Exec(command string, cb ExecCallback) *FakeProcess
	ExecSync(command string) ([]byte, error)
	Fork(modulePath string, args ...string) *FakeProcess
	ExecFile(file string, args []string, cb ExecCallback) *FakeProcess
	ExecFileSync(file string, args []string) ([]byte, error)
}

// Mocker is the registration and inspection facade over one registry.
type Mocker struct {
	reg *Registry
}

var _ Commander = (*Mocker)(nil)

// New returns a Mocker over the process-wide default registry.
func New() *Mocker {
	loadSettings()
	return &Mocker{reg: Default()}
}

// NewWithRegistry returns a Mocker over an isolated registry. Useful in
// tests that must not share global state.
func NewWithRegistry(reg *Registry) *Mocker {
	loadSettings()
	return &Mocker{reg: reg}
}

// Registry returns the underlying registry.
func (m *Mocker) Registry() *Registry {
	return m.reg
}

// Register maps pattern to cfg for the given methods. With no methods it
// registers across all six, so one call covers every spawning style a
// caller might use for the same logical command.
func (m *Mocker) Register(pattern string, cfg Config, methods ...Method) {
	m.registerEntry(Entry{Key: pattern, Config: cfg}, methods)
}

// RegisterRegexp maps a regular expression to cfg for the given methods
// (default: all six).
func (m *Mocker) RegisterRegexp(re *regexp.Regexp, cfg Config, methods ...Method) {
	m.registerEntry(Entry{Regex: re, Config: cfg}, methods)
}

func (m *Mocker) registerEntry(e Entry, methods []Method) {
	if len(methods) == 0 {
		methods = AllMethods()
	}
	for _, method := range methods {
		m.reg.register(method, e)
	}
	log.Debug(log.CatRegistry, "pattern registered",
		"pattern", e.patternString(), "methods", len(methods))
}

// RegisterSuccess registers an exit-0 mock with the given stdout.
func (m *Mocker) RegisterSuccess(pattern, stdout string, methods ...Method) {
	m.Register(pattern, Success(stdout), methods...)
}

// RegisterFailure registers a non-zero-exit mock with the given stderr.
func (m *Mocker) RegisterFailure(pattern, stderr string, code int, methods ...Method) {
	m.Register(pattern, Failure(stderr, code), methods...)
}

// RegisterError registers a mock that fails with err.
func (m *Mocker) RegisterError(pattern string, err error, methods ...Method) {
	m.Register(pattern, Erroring(err), methods...)
}

// RegisterDelayed registers cfg with its completion postponed by d.
func (m *Mocker) RegisterDelayed(pattern string, d time.Duration, cfg Config, methods ...Method) {
	m.Register(pattern, Delayed(d, cfg), methods...)
}

// Calls returns the call history for one method.
func (m *Mocker) Calls(method Method) []CallRecord {
	return m.reg.Calls(method)
}

// AllCalls returns the call history across all methods in invocation order.
func (m *Mocker) AllCalls() []CallRecord {
	return m.reg.AllCalls()
}

// Spawned returns the fake processes created by Spawn.
func (m *Mocker) Spawned() []*FakeProcess {
	return m.reg.Spawned()
}

// ClearCalls empties call history and the spawned-process list, keeping
// registered patterns. Wire this into the test runner's after-each hook.
func (m *Mocker) ClearCalls() {
	m.reg.ClearCalls()
}

// Clear performs the full reset: patterns, history, and spawned processes.
// Wire this into the test runner's after-all hook.
func (m *Mocker) Clear() {
	m.reg.Reset()
}

// Restore is equivalent to Clear. The replacement entry points are
// structural, not monkey-patched, so there is nothing else to undo.
func (m *Mocker) Restore() {
	m.Clear()
}

// WaitForCall blocks until a call on method whose command contains substr is
// recorded, or ctx expires. Calls recorded before WaitForCall starts are
// matched from history first, so it never misses an earlier invocation.
func (m *Mocker) WaitForCall(ctx context.Context, method Method, substr string) (CallRecord, error) {
	matches := func(rec CallRecord) bool {
		return rec.Method == method && strings.Contains(rec.Command, substr)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sub := m.reg.Broker().Subscribe(ctx)

	for _, rec := range m.reg.Calls(method) {
		if matches(rec) {
			return rec, nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			return CallRecord{}, ctx.Err()
		case ev, ok := <-sub:
			if !ok {
				return CallRecord{}, context.Canceled
			}
			if ev.Type == pubsub.CallEvent && matches(ev.Payload) {
				return ev.Payload, nil
			}
		}
	}
}
