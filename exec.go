package procmock

import (
	"fmt"
	"time"
)

// MaxSyncDelay caps the delay the synchronous entry points will sleep for
// when the sync-delay toggle is on, so a misconfigured fixture cannot stall
// a test run indefinitely.
const MaxSyncDelay = 500 * time.Millisecond

// ExitError is how a failed invocation surfaces from the non-handle entry
// points: returned by the synchronous ones, passed to the callback by the
// asynchronous ones. It carries the exit status and the buffered output so
// callers cannot distinguish a configured error from a plain non-zero exit,
// mirroring real child-process behavior.
type ExitError struct {
	// Cmd is the invoked command line.
	Cmd string
	// Code is the exit status, or -1 for signal termination.
	Code int
	// Signal is the termination signal, empty for normal exits.
	Signal string
	// Stdout and Stderr hold the output buffered before failure.
	Stdout []byte
	Stderr []byte
	// Err is the configured underlying error, if one was registered.
	Err error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Signal != "" {
		return fmt.Sprintf("Command failed: %s (terminated by %s)", e.Cmd, e.Signal)
	}
	return fmt.Sprintf("Command failed: %s", e.Cmd)
}

// Unwrap exposes the configured error to errors.Is and errors.As.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecCallback receives the outcome of an asynchronous buffered invocation.
// err is nil on success; on failure it is an *ExitError.
type ExecCallback func(err error, stdout, stderr string)

// Exec emulates the callback-based asynchronous entry point. The call is
// recorded immediately; the callback fires exactly once, on a separate
// goroutine after any configured delay, never during this call. The returned
// handle exists for API parity and is not added to the spawned-process list.
func (m *Mocker) Exec(command string, cb ExecCallback) *FakeProcess {
	cfg := m.dispatch(MethodExec, command, nil)
	p := startFakeProcess(cfg, m.reg)

	go func() {
		exit, _ := p.Wait()
		if cb == nil {
			return
		}
		if err := exitError(command, cfg, exit); err != nil {
			cb(err, cfg.Stdout, cfg.Stderr)
			return
		}
		cb(nil, cfg.Stdout, cfg.Stderr)
	}()

	return p
}

// ExecSync emulates the synchronous buffered entry point: it records the
// call, then returns the configured stdout or an *ExitError. A configured
// delay is honored with a bounded sleep only when the sync-delay toggle is
// on.
func (m *Mocker) ExecSync(command string) ([]byte, error) {
	cfg := m.dispatch(MethodExecSync, command, nil)
	syncDelay(cfg)

	if err := exitError(command, cfg, syncExit(cfg)); err != nil {
		return nil, err
	}
	return []byte(cfg.Stdout), nil
}

// exitError synthesizes the error for a non-success outcome, or returns nil
// for a clean exit.
func exitError(command string, cfg Config, exit Exit) *ExitError {
	if cfg.Err == nil && exit.Signal == "" && exit.Code == 0 {
		return nil
	}
	return &ExitError{
		Cmd:    command,
		Code:   exit.Code,
		Signal: exit.Signal,
		Stdout: []byte(cfg.Stdout),
		Stderr: []byte(cfg.Stderr),
		Err:    cfg.Err,
	}
}

// syncExit computes the exit state for the synchronous paths, which never
// construct a FakeProcess.
func syncExit(cfg Config) Exit {
	if cfg.Signal != "" {
		return Exit{Code: -1, Signal: cfg.Signal}
	}
	if cfg.Err != nil {
		return Exit{Code: 1}
	}
	return Exit{Code: cfg.ExitCode}
}

// syncDelay sleeps for the configured delay, capped, when enabled.
func syncDelay(cfg Config) {
	if cfg.Delay <= 0 || !CurrentSettings().SyncDelay {
		return
	}
	d := cfg.Delay
	if d > MaxSyncDelay {
		d = MaxSyncDelay
	}
	time.Sleep(d)
}
