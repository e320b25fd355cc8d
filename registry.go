package procmock

import (
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/procmock/internal/log"
	"github.com/zjrosen/procmock/internal/pubsub"
)

// pids start well above real init-adjacent ranges so a leaked assertion
// against a real pid fails fast.
const firstPID = 9000

// Entry maps one pattern to a mock configuration within a method scope.
// Exactly one of Key or Regex is set.
type Entry struct {
	Key    string
	Regex  *regexp.Regexp
	Config Config
}

// patternString returns the display form of the entry's pattern.
func (e Entry) patternString() string {
	if e.Regex != nil {
		return e.Regex.String()
	}
	return e.Key
}

// CallRecord captures one invocation of a mocked entry point.
type CallRecord struct {
	ID         string
	Method     Method
	Command    string
	Args       []string
	Normalized string
	Matched    bool
	Fallback   bool
	Pattern    string
	Time       time.Time
}

// Registry is the single source of truth: per-method pattern maps with
// insertion order preserved, per-method call history, and the list of
// spawned fake processes. The process-wide instance comes from Default();
// NewRegistry builds isolated instances for tests of this library itself.
type Registry struct {
	mu      sync.RWMutex
	entries map[Method][]Entry
	calls   map[Method][]CallRecord
	all     []CallRecord
	spawned []*FakeProcess
	nextPID int
	broker  *pubsub.Broker[CallRecord]
}

var (
	defaultRegistry *Registry
	registryOnce    sync.Once
)

// Default returns the process-wide registry, creating it on first use.
// Every package that imports procmock observes the same instance; Go's
// package initialization already guarantees a single copy, so no
// global-namespace escape hatch is needed.
func Default() *Registry {
	registryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[Method][]Entry),
		calls:   make(map[Method][]CallRecord),
		nextPID: firstPID,
		broker:  pubsub.NewBroker[CallRecord](),
	}
}

// register appends an entry to the method's pattern map. Re-registering an
// existing pattern replaces its configuration in place, keeping the original
// insertion position so tie-breaks stay stable.
func (r *Registry) register(method Method, e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := e.patternString()
	for i, existing := range r.entries[method] {
		if existing.patternString() == key && (existing.Regex == nil) == (e.Regex == nil) {
			r.entries[method][i] = e
			return
		}
	}
	r.entries[method] = append(r.entries[method], e)
}

// entriesFor returns a snapshot of the method's pattern map in insertion
// order.
func (r *Registry) entriesFor(method Method) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries[method]))
	copy(out, r.entries[method])
	return out
}

// trackCall appends the record to the per-method history and publishes it.
func (r *Registry) trackCall(rec CallRecord) {
	r.mu.Lock()
	r.calls[rec.Method] = append(r.calls[rec.Method], rec)
	r.all = append(r.all, rec)
	r.mu.Unlock()

	r.broker.Publish(pubsub.CallEvent, rec)
}

// trackProcess appends a spawned fake process to the inspectable list. Only
// Spawn uses this; the other entry points complete through callbacks, return
// values, or their own returned handle rather than list inspection.
func (r *Registry) trackProcess(p *FakeProcess) {
	r.mu.Lock()
	r.spawned = append(r.spawned, p)
	r.mu.Unlock()
}

// allocPID hands out deterministic, incrementing process ids.
func (r *Registry) allocPID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	pid := r.nextPID
	r.nextPID++
	return pid
}

// Calls returns a snapshot of the call history for one method.
func (r *Registry) Calls(method Method) []CallRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CallRecord, len(r.calls[method]))
	copy(out, r.calls[method])
	return out
}

// AllCalls returns a snapshot of the call history across all methods in
// invocation order.
func (r *Registry) AllCalls() []CallRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CallRecord, len(r.all))
	copy(out, r.all)
	return out
}

// Spawned returns a snapshot of the tracked fake processes.
func (r *Registry) Spawned() []*FakeProcess {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*FakeProcess, len(r.spawned))
	copy(out, r.spawned)
	return out
}

// ClearCalls empties the call history and spawned-process list. Registered
// patterns survive; use Reset to drop those too.
func (r *Registry) ClearCalls() {
	r.mu.Lock()
	r.calls = make(map[Method][]CallRecord)
	r.all = nil
	r.spawned = nil
	r.mu.Unlock()

	r.broker.Publish(pubsub.ResetEvent, CallRecord{})
	log.Debug(log.CatRegistry, "call history cleared")
}

// Reset empties pattern maps, call history, and the spawned-process list.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.entries = make(map[Method][]Entry)
	r.calls = make(map[Method][]CallRecord)
	r.all = nil
	r.spawned = nil
	r.nextPID = firstPID
	r.mu.Unlock()

	r.broker.Publish(pubsub.ResetEvent, CallRecord{})
	log.Debug(log.CatRegistry, "registry reset")
}

// Broker exposes the call-event broker for subscribers such as WaitForCall.
func (r *Registry) Broker() *pubsub.Broker[CallRecord] {
	return r.broker
}

// newCallRecord builds a record for one invocation.
func newCallRecord(method Method, command string, args []string, norm string, res MatchResult) CallRecord {
	return CallRecord{
		ID:         uuid.NewString(),
		Method:     method,
		Command:    command,
		Args:       args,
		Normalized: norm,
		Matched:    res.State != Unmatched,
		Fallback:   res.State == FallbackMatched,
		Pattern:    res.Pattern,
		Time:       time.Now(),
	}
}
