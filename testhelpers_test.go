package procmock

import (
	"bytes"
	"os"
	"regexp"
	"testing"

	"github.com/zjrosen/procmock/internal/log"
)

// newTestMocker returns a facade over an isolated registry so tests never
// share global state.
func newTestMocker(t *testing.T) *Mocker {
	t.Helper()
	return NewWithRegistry(NewRegistry())
}

// withSettings applies toggles for one test and restores the previous ones.
func withSettings(t *testing.T, s Settings) {
	t.Helper()
	prev := CurrentSettings()
	ApplySettings(s)
	t.Cleanup(func() { ApplySettings(prev) })
}

// captureLog redirects diagnostic output into a buffer for assertions.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func mustRe(t *testing.T, expr string) *regexp.Regexp {
	t.Helper()
	re, err := regexp.Compile(expr)
	if err != nil {
		t.Fatalf("compile %q: %v", expr, err)
	}
	return re
}

// drainEvents collects every event a fake process emits until its channel
// closes.
func drainEvents(p *FakeProcess) []Event {
	var events []Event
	for ev := range p.Events() {
		events = append(events, ev)
	}
	return events
}
