package procmock

import (
	"sync"

	"github.com/spf13/viper"

	"github.com/zjrosen/procmock/internal/log"
)

// Settings holds the environment-driven behavior toggles. All of them
// default to off.
type Settings struct {
	// Debug enables verbose diagnostic logging.
	Debug bool `mapstructure:"debug"`
	// Quiet suppresses unmatched-pattern warnings.
	Quiet bool `mapstructure:"quiet"`
	// Strict rejects cross-method fallback lookups: a pattern registered
	// only for Spawn will not match an Exec invocation.
	Strict bool `mapstructure:"strict"`
	// SyncDelay allows the synchronous entry points to honor a configured
	// delay with a bounded sleep. Off by default so a stray DelayMs cannot
	// slow a test run.
	SyncDelay bool `mapstructure:"sync_delay"`
}

var (
	settingsMu sync.RWMutex
	settings   Settings
	settingsLd sync.Once
)

// loadSettings reads the PROCMOCK_* environment variables once.
func loadSettings() {
	settingsLd.Do(func() {
		v := viper.New()
		v.SetEnvPrefix("procmock")
		v.AutomaticEnv()
		for _, key := range []string{"debug", "quiet", "strict", "sync_delay"} {
			_ = v.BindEnv(key)
		}

		s := Settings{
			Debug:     v.GetBool("debug"),
			Quiet:     v.GetBool("quiet"),
			Strict:    v.GetBool("strict"),
			SyncDelay: v.GetBool("sync_delay"),
		}
		applySettings(s)
	})
}

// CurrentSettings returns the active toggles.
func CurrentSettings() Settings {
	loadSettings()
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// ApplySettings overrides the active toggles programmatically. Tests use
// this instead of mutating the environment.
func ApplySettings(s Settings) {
	loadSettings()
	applySettings(s)
}

func applySettings(s Settings) {
	settingsMu.Lock()
	settings = s
	settingsMu.Unlock()

	switch {
	case s.Debug:
		log.SetMinLevel(log.LevelDebug)
	case s.Quiet:
		log.SetMinLevel(log.LevelError)
	default:
		log.SetMinLevel(log.LevelWarn)
	}
}
