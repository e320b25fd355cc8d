package procmock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/procmock/internal/log"
)

// Fixture is one declarative mock registration parsed from a fixture file.
type Fixture struct {
	Pattern string
	Regex   *regexp.Regexp
	Methods []Method
	Config  Config
}

// fixtureFile is the root structure of a fixture YAML document.
type fixtureFile struct {
	Mocks []fixtureDef `yaml:"mocks"`
}

// fixtureDef is a single mock definition in YAML.
type fixtureDef struct {
	Pattern  string   `yaml:"pattern"`
	Regexp   bool     `yaml:"regexp"`
	Methods  []string `yaml:"methods"`
	Stdout   string   `yaml:"stdout"`
	Stderr   string   `yaml:"stderr"`
	ExitCode int      `yaml:"exit_code"`
	Error    string   `yaml:"error"`
	DelayMs  int      `yaml:"delay_ms"`
	Signal   string   `yaml:"signal"`
	PID      int      `yaml:"pid"`
}

// ParseFixtures parses fixture YAML. Validation errors name the offending
// entry by index and pattern.
func ParseFixtures(data []byte) ([]Fixture, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	fixtures := make([]Fixture, 0, len(file.Mocks))
	for i, def := range file.Mocks {
		fx, err := buildFixture(def)
		if err != nil {
			return nil, fmt.Errorf("mock %d (%q): %w", i, def.Pattern, err)
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}

func buildFixture(def fixtureDef) (Fixture, error) {
	if def.Pattern == "" {
		return Fixture{}, errors.New("pattern is required")
	}
	if def.ExitCode < 0 {
		return Fixture{}, fmt.Errorf("exit_code must be non-negative, got %d", def.ExitCode)
	}
	if def.DelayMs < 0 {
		return Fixture{}, fmt.Errorf("delay_ms must be non-negative, got %d", def.DelayMs)
	}

	fx := Fixture{
		Pattern: def.Pattern,
		Config: Config{
			ExitCode: def.ExitCode,
			Stdout:   def.Stdout,
			Stderr:   def.Stderr,
			Delay:    time.Duration(def.DelayMs) * time.Millisecond,
			PID:      def.PID,
			Signal:   def.Signal,
		},
	}
	if def.Error != "" {
		fx.Config.Err = errors.New(def.Error)
	}
	if def.Regexp {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return Fixture{}, fmt.Errorf("invalid regexp: %w", err)
		}
		fx.Regex = re
	}

	for _, name := range def.Methods {
		method, err := ParseMethod(name)
		if err != nil {
			return Fixture{}, err
		}
		fx.Methods = append(fx.Methods, method)
	}
	return fx, nil
}

// Apply registers the fixture on the mocker.
func (m *Mocker) Apply(fixtures ...Fixture) {
	for _, fx := range fixtures {
		if fx.Regex != nil {
			m.RegisterRegexp(fx.Regex, fx.Config, fx.Methods...)
			continue
		}
		m.Register(fx.Pattern, fx.Config, fx.Methods...)
	}
}

// LoadFixtures reads a fixture file and registers its mocks.
func (m *Mocker) LoadFixtures(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: fixture path is test-author input
	if err != nil {
		return fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return m.applyFixtureData(data, path)
}

// LoadFixturesFS reads a fixture file from fsys, for embedded fixtures.
func (m *Mocker) LoadFixturesFS(fsys fs.FS, path string) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return m.applyFixtureData(data, path)
}

func (m *Mocker) applyFixtureData(data []byte, source string) error {
	fixtures, err := ParseFixtures(data)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	m.Apply(fixtures...)
	log.Info(log.CatFixture, "fixtures loaded", "source", source, "count", len(fixtures))
	return nil
}

// LoadFixtures reads a fixture file into the default mocker.
func LoadFixtures(path string) error {
	return DefaultMocker().LoadFixtures(path)
}
