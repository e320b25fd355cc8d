package procmock

import "time"

// Option configures a Config during construction.
type Option func(*Config)

// NewConfig builds a Config from options. With no options it is the empty
// success configuration.
func NewConfig(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithStdout sets the stdout payload.
func WithStdout(s string) Option {
	return func(c *Config) { c.Stdout = s }
}

// WithStderr sets the stderr payload.
func WithStderr(s string) Option {
	return func(c *Config) { c.Stderr = s }
}

// WithExitCode sets the exit code.
func WithExitCode(code int) Option {
	return func(c *Config) { c.ExitCode = code }
}

// WithError makes the invocation fail with err.
func WithError(err error) Option {
	return func(c *Config) { c.Err = err }
}

// WithDelay postpones completion by d.
func WithDelay(d time.Duration) Option {
	return func(c *Config) { c.Delay = d }
}

// WithPID fixes the reported process id.
func WithPID(pid int) Option {
	return func(c *Config) { c.PID = pid }
}

// WithSignal sets the termination signal.
func WithSignal(sig string) Option {
	return func(c *Config) { c.Signal = sig }
}

// Presets for the common cases.

// Success is a configuration that exits 0 with the given stdout.
func Success(stdout string) Config {
	return NewConfig(WithStdout(stdout))
}

// Failure is a configuration that exits with code and the given stderr.
func Failure(stderr string, code int) Config {
	return NewConfig(WithStderr(stderr), WithExitCode(code))
}

// Erroring is a configuration that fails with err instead of exiting.
func Erroring(err error) Config {
	return NewConfig(WithError(err))
}

// Delayed wraps a configuration with a completion delay.
func Delayed(d time.Duration, cfg Config) Config {
	cfg.Delay = d
	return cfg
}
