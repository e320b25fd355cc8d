package procmock

import (
	"bytes"
	"io"
	"os"
	"sync"
)

// Stream is an in-memory stand-in for one of a child process's standard
// streams. Writes accumulate in a buffer that tests can inspect after the
// process completes. Once closed, writes are refused with os.ErrClosed
// rather than panicking.
type Stream struct {
	name   string
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

var _ io.WriteCloser = (*Stream)(nil)

func newStream(name string) *Stream {
	return &Stream{name: name}
}

// Name returns "stdout", "stderr", or "stdin".
func (s *Stream) Name() string {
	return s.name
}

// Write appends p to the buffer. Returns os.ErrClosed after End or Close.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.buf.Write(p)
}

// WriteString appends str to the buffer.
func (s *Stream) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// End marks the stream finished: no further writes are accepted.
func (s *Stream) End() error {
	return s.Close()
}

// Close is idempotent.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Closed reports whether the stream has been ended or closed.
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Contents returns a copy of everything written to the stream.
func (s *Stream) Contents() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, s.buf.Len())
	copy(out, s.buf.Bytes())
	return out
}

// String returns the buffered contents as a string.
func (s *Stream) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
