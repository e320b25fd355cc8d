package procmock

import (
	"sync"
	"time"

	"github.com/zjrosen/procmock/internal/log"
)

// defaultKillSignal is used when Kill is called without a signal name.
const defaultKillSignal = "SIGTERM"

// EventType labels the events a FakeProcess emits.
type EventType string

const (
	// EventData carries a chunk written to stdout or stderr.
	EventData EventType = "data"
	// EventStreamClose marks a stream as finished.
	EventStreamClose EventType = "stream_close"
	// EventError carries the configured error.
	EventError EventType = "error"
	// EventExit reports termination: exactly one of Code >= 0 or Signal is
	// meaningful.
	EventExit EventType = "exit"
	// EventClose is the final event; the event channel is closed after it.
	EventClose EventType = "close"
)

// Event is one occurrence in a fake process's lifecycle.
type Event struct {
	Type   EventType
	Stream string // "stdout" or "stderr" for data and stream_close events
	Data   []byte // payload for data events
	Err    error  // payload for error events
	Code   int    // exit code for exit/close events; -1 when signaled
	Signal string // termination signal for exit/close events
}

// Exit describes how a process ended. Signal-terminated processes report
// Code == -1 with Signal set; normal exits report the code with Signal
// empty.
type Exit struct {
	Code   int
	Signal string
}

// FakeProcess emulates a spawned subprocess: three streams, a lifecycle of
// created, optional delay, streams written and closed, then exactly one of
// normal exit, error, or kill.
//
// Emission runs on its own goroutine and lands in a buffered channel created
// before that goroutine starts, so a listener that grabs Events() right
// after the spawning call observes the full sequence in order: data events,
// stream closes, then exit, then close.
type FakeProcess struct {
	pid    int
	cfg    Config
	Stdout *Stream
	Stderr *Stream
	Stdin  *Stream

	events chan Event
	done   chan struct{}
	killCh chan struct{}

	mu         sync.Mutex
	killed     bool
	killSignal string
	terminated bool
	exit       Exit
	waitErr    error
}

// NewFakeProcess creates a fake process driven by cfg and starts its
// lifecycle. The pid comes from cfg.PID or the default registry's counter.
func NewFakeProcess(cfg Config) *FakeProcess {
	return startFakeProcess(cfg, Default())
}

func startFakeProcess(cfg Config, reg *Registry) *FakeProcess {
	pid := cfg.PID
	if pid == 0 {
		pid = reg.allocPID()
	}

	p := &FakeProcess{
		pid:    pid,
		cfg:    cfg,
		Stdout: newStream("stdout"),
		Stderr: newStream("stderr"),
		Stdin:  newStream("stdin"),
		// Large enough for the longest possible sequence (two data events,
		// two stream closes, error, exit, close) so emission never blocks
		// when nobody is listening.
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		killCh: make(chan struct{}),
		killed: cfg.Killed,
	}
	if cfg.Killed {
		p.killSignal = defaultKillSignal
	}

	log.Debug(log.CatProc, "fake process created", "pid", pid, "delay", cfg.Delay)
	go p.run()
	return p
}

// PID returns the process id.
func (p *FakeProcess) PID() int {
	return p.pid
}

// Events returns the event channel. It is closed after the close event.
func (p *FakeProcess) Events() <-chan Event {
	return p.events
}

// Done returns a channel closed when the process has terminated.
func (p *FakeProcess) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until termination and returns the exit state plus the
// configured error, if any.
func (p *FakeProcess) Wait() (Exit, error) {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exit, p.waitErr
}

// Running reports whether the process has not yet terminated.
func (p *FakeProcess) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.terminated
}

// Killed reports whether the process was killed.
func (p *FakeProcess) Killed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

// ExitState returns the exit description and whether the process has
// terminated.
func (p *FakeProcess) ExitState() (Exit, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exit, p.terminated
}

// Kill terminates the process. The first call returns true; any further
// call, or a call after natural termination, is a no-op returning false.
// A kill during a configured delay suppresses the pending completion. Kill
// returns after the exit and close events have been emitted.
func (p *FakeProcess) Kill(signal ...string) bool {
	p.mu.Lock()
	if p.killed || p.terminated {
		p.mu.Unlock()
		return false
	}
	p.killed = true
	p.killSignal = defaultKillSignal
	if len(signal) > 0 && signal[0] != "" {
		p.killSignal = signal[0]
	}
	sig := p.killSignal
	p.mu.Unlock()

	log.Debug(log.CatProc, "fake process killed", "pid", p.pid, "signal", sig)
	close(p.killCh)
	<-p.done
	return true
}

// run drives the lifecycle on its own goroutine so no event is ever emitted
// during construction.
func (p *FakeProcess) run() {
	if d := p.cfg.Delay; d > 0 {
		select {
		case <-time.After(d):
		case <-p.killCh:
			p.finishKilled()
			return
		}
	}

	p.mu.Lock()
	alreadyKilled := p.killed
	p.mu.Unlock()
	if alreadyKilled {
		p.finishKilled()
		return
	}

	if p.cfg.Stdout != "" {
		_, _ = p.Stdout.WriteString(p.cfg.Stdout)
		p.events <- Event{Type: EventData, Stream: "stdout", Data: []byte(p.cfg.Stdout)}
	}
	if p.cfg.Stderr != "" {
		_, _ = p.Stderr.WriteString(p.cfg.Stderr)
		p.events <- Event{Type: EventData, Stream: "stderr", Data: []byte(p.cfg.Stderr)}
	}

	p.closeStreams()

	code := p.cfg.ExitCode
	if p.cfg.Err != nil {
		p.events <- Event{Type: EventError, Err: p.cfg.Err}
		// An error outcome always reports exit code 1, even when the
		// configuration carries a different code.
		code = 1
	}

	exit := Exit{Code: code}
	if p.cfg.Signal != "" {
		exit = Exit{Code: -1, Signal: p.cfg.Signal}
	}
	p.finish(exit, p.cfg.Err)
}

// finishKilled force-closes streams and completes through the kill path.
func (p *FakeProcess) finishKilled() {
	p.closeStreams()
	p.mu.Lock()
	sig := p.killSignal
	p.mu.Unlock()
	p.finish(Exit{Code: -1, Signal: sig}, nil)
}

// closeStreams ends all three streams and announces the output streams.
func (p *FakeProcess) closeStreams() {
	_ = p.Stdout.Close()
	_ = p.Stderr.Close()
	_ = p.Stdin.Close()
	p.events <- Event{Type: EventStreamClose, Stream: "stdout"}
	p.events <- Event{Type: EventStreamClose, Stream: "stderr"}
}

// finish records the terminal state and emits exit then close exactly once.
// A kill that raced the normal completion path wins.
func (p *FakeProcess) finish(exit Exit, err error) {
	p.mu.Lock()
	if p.killed {
		exit = Exit{Code: -1, Signal: p.killSignal}
		err = nil
	}
	p.terminated = true
	p.exit = exit
	p.waitErr = err
	p.mu.Unlock()

	p.events <- Event{Type: EventExit, Code: exit.Code, Signal: exit.Signal}
	p.events <- Event{Type: EventClose, Code: exit.Code, Signal: exit.Signal}
	close(p.events)
	close(p.done)

	log.Debug(log.CatProc, "fake process terminated",
		"pid", p.pid, "code", exit.Code, "signal", exit.Signal)
}
