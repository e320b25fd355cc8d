// Package log provides structured diagnostic logging for procmock.
// Entries carry a level, a subsystem category, and key=value fields. The
// default sink is stderr at Warn level so an unmatched mock shows up in test
// output without any configuration; verbose mode lowers the threshold.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/zjrosen/procmock/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatMatch    Category = "match"    // Pattern resolution
	CatRegistry Category = "registry" // Registry mutation and lifecycle
	CatProc     Category = "proc"     // Fake process lifecycle
	CatExec     Category = "exec"     // Entry-point invocations
	CatFixture  Category = "fixture"  // Fixture loading and watching
)

// Logger writes structured entries and publishes them to subscribers.
type Logger struct {
	mu       sync.Mutex
	writer   io.Writer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
}

var (
	defaultLogger *Logger
	once          sync.Once
)

func get() *Logger {
	once.Do(func() {
		defaultLogger = &Logger{
			writer:   os.Stderr,
			enabled:  true,
			minLevel: LevelWarn,
			broker:   pubsub.NewBroker[string](),
		}
	})
	return defaultLogger
}

// SetOutput redirects log entries, mainly for tests.
func SetOutput(w io.Writer) {
	l := get()
	l.mu.Lock()
	l.writer = w
	l.mu.Unlock()
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	l := get()
	l.mu.Lock()
	l.enabled = enabled
	l.mu.Unlock()
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	l := get()
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// Broker exposes the log event broker so callers can subscribe to entries.
func Broker() *pubsub.Broker[string] {
	return get().broker
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value appended as a field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := get()
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	// Format: 2025-12-06T10:45:00 [WARN] [match] message key=value
	timestamp := time.Now().Format("2006-01-02T15:04:05")
	entry := fmt.Sprintf("%s [%s] [procmock:%s] %s", timestamp, level, cat, msg)

	for i := 0; i+1 < len(fields); i += 2 {
		entry += fmt.Sprintf(" %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		entry += fmt.Sprintf(" %v=<missing>", fields[len(fields)-1])
	}
	entry += "\n"

	if l.writer != nil {
		_, _ = l.writer.Write([]byte(entry))
	}

	if l.broker != nil {
		l.broker.Publish(pubsub.LogEvent, entry)
	}
}
