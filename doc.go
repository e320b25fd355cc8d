// Package procmock provides deterministic, configurable fake subprocess
// behavior for test suites.
//
// Code under test depends on the Commander interface instead of calling
// os/exec directly; in tests, a Mocker stands in for the real implementation
// and resolves every invocation against registered patterns. Matching runs
// in three tiers, first match wins: exact, regular expression, then
// substring, with insertion order breaking ties within a tier. Commands are
// normalized (whitespace collapsed, token quotes stripped, backslash path
// separators flipped) before comparison, so "git  status" and `git "status"`
// resolve to the same mock.
//
// # Registering behavior
//
//	mocker := procmock.New()
//	mocker.RegisterSuccess("git status", "clean\n")
//	mocker.RegisterFailure("git push", "rejected", 1)
//
//	out, err := mocker.ExecSync("git status") // out == "clean\n"
//
// Register covers all six entry points at once; pass explicit methods to
// scope a pattern. An invocation whose method scope has no match falls back
// across the other methods' patterns unless strict mode is on.
//
// # Fake processes
//
// Spawn and Fork return a *FakeProcess whose events arrive on a buffered
// channel in real-process order: data, stream closes, exit, then close.
// Exactly one of exit code and signal is meaningful; signal-terminated
// processes report code -1.
//
//	p := mocker.Spawn("docker", "build", ".")
//	for ev := range p.Events() {
//		...
//	}
//
// # Unmatched invocations
//
// An invocation with no matching pattern never fails the test run by
// itself: it completes as an empty success, a warning naming the command is
// written to stderr, and the call is still recorded, so assertions on call
// history stay the source of truth.
//
// # Lifecycle hooks
//
// Call ClearCalls after each test and Clear (or Restore) after the suite.
// Behavior toggles come from PROCMOCK_DEBUG, PROCMOCK_QUIET,
// PROCMOCK_STRICT, and PROCMOCK_SYNC_DELAY, or programmatically through
// ApplySettings.
package procmock
