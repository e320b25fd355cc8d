package procmock

import (
	"context"
	"regexp"
	"sync"
	"time"
)

// Package-level wrappers over a shared Mocker bound to the default
// registry, for test suites that want the one-import experience.

var (
	defaultMocker     *Mocker
	defaultMockerOnce sync.Once
)

// DefaultMocker returns the shared facade over the process-wide registry.
func DefaultMocker() *Mocker {
	defaultMockerOnce.Do(func() {
		defaultMocker = New()
	})
	return defaultMocker
}

// Register maps pattern to cfg on the default mocker (all methods unless
// scoped).
func Register(pattern string, cfg Config, methods ...Method) {
	DefaultMocker().Register(pattern, cfg, methods...)
}

// RegisterRegexp maps a regular expression to cfg on the default mocker.
func RegisterRegexp(re *regexp.Regexp, cfg Config, methods ...Method) {
	DefaultMocker().RegisterRegexp(re, cfg, methods...)
}

// RegisterSuccess registers an exit-0 mock on the default mocker.
func RegisterSuccess(pattern, stdout string, methods ...Method) {
	DefaultMocker().RegisterSuccess(pattern, stdout, methods...)
}

// RegisterFailure registers a failing mock on the default mocker.
func RegisterFailure(pattern, stderr string, code int, methods ...Method) {
	DefaultMocker().RegisterFailure(pattern, stderr, code, methods...)
}

// RegisterError registers an erroring mock on the default mocker.
func RegisterError(pattern string, err error, methods ...Method) {
	DefaultMocker().RegisterError(pattern, err, methods...)
}

// RegisterDelayed registers a delayed mock on the default mocker.
func RegisterDelayed(pattern string, d time.Duration, cfg Config, methods ...Method) {
	DefaultMocker().RegisterDelayed(pattern, d, cfg, methods...)
}

// Spawn invokes the default mocker's spawn entry point.
func Spawn(command string, args ...string) *FakeProcess {
	return DefaultMocker().Spawn(command, args...)
}

// Exec invokes the default mocker's asynchronous exec entry point.
func Exec(command string, cb ExecCallback) *FakeProcess {
	return DefaultMocker().Exec(command, cb)
}

// ExecSync invokes the default mocker's synchronous exec entry point.
func ExecSync(command string) ([]byte, error) {
	return DefaultMocker().ExecSync(command)
}

// Fork invokes the default mocker's fork entry point.
func Fork(modulePath string, args ...string) *FakeProcess {
	return DefaultMocker().Fork(modulePath, args...)
}

// ExecFile invokes the default mocker's asynchronous execFile entry point.
func ExecFile(file string, args []string, cb ExecCallback) *FakeProcess {
	return DefaultMocker().ExecFile(file, args, cb)
}

// ExecFileSync invokes the default mocker's synchronous execFile entry
// point.
func ExecFileSync(file string, args []string) ([]byte, error) {
	return DefaultMocker().ExecFileSync(file, args)
}

// Calls returns the default registry's history for one method.
func Calls(method Method) []CallRecord {
	return DefaultMocker().Calls(method)
}

// AllCalls returns the default registry's history across all methods.
func AllCalls() []CallRecord {
	return DefaultMocker().AllCalls()
}

// Spawned returns the default registry's tracked fake processes.
func Spawned() []*FakeProcess {
	return DefaultMocker().Spawned()
}

// ClearCalls empties the default registry's history, keeping patterns.
func ClearCalls() {
	DefaultMocker().ClearCalls()
}

// Clear fully resets the default registry.
func Clear() {
	DefaultMocker().Clear()
}

// Restore is equivalent to Clear.
func Restore() {
	DefaultMocker().Restore()
}

// WaitForCall waits on the default registry for a call on method whose
// command contains substr.
func WaitForCall(ctx context.Context, method Method, substr string) (CallRecord, error) {
	return DefaultMocker().WaitForCall(ctx, method, substr)
}
