package procmock

import "time"

// Config describes how one matched invocation should behave. The zero value
// is an empty success: exit code 0, no output, no delay.
type Config struct {
	// ExitCode is reported through exit events and synthesized errors.
	// Ignored when Signal is set: signal-terminated processes have no
	// numeric exit code.
	ExitCode int

	// Stdout and Stderr are written to the fake process streams before any
	// exit event fires.
	Stdout string
	Stderr string

	// Err, when set, makes the invocation fail with this error instead of
	// completing through the exit-code path. The reported exit code is
	// forced to 1, overriding ExitCode.
	Err error

	// Delay postpones completion. Asynchronous entry points always honor
	// it; synchronous ones only under the sync-delay toggle, capped at
	// MaxSyncDelay.
	Delay time.Duration

	// PID fixes the reported process id. Zero means auto-assign from the
	// registry's counter.
	PID int

	// Signal names the termination signal, e.g. "SIGTERM". When set it
	// wins over ExitCode and the exit event reports (-1, Signal).
	Signal string

	// Killed marks the process as killed from the start, for tests
	// asserting on kill bookkeeping.
	Killed bool
}
