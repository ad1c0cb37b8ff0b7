// Package config loads runtime settings from a YAML file, then applies
// OVERMIND_* environment overrides. Command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"overmind/internal/logging"
	"overmind/internal/model"
)

type Config struct {
	Log       LogConfig       `yaml:"log"`
	Store     StoreConfig     `yaml:"store"`
	Session   SessionConfig   `yaml:"session"`
	Selector  SelectorConfig  `yaml:"selector"`
	Engine    EngineConfig    `yaml:"engine"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"OVERMIND_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"OVERMIND_LOG_PRETTY"`
}

type StoreConfig struct {
	// Kind is memory, file or sqlite.
	Kind string `yaml:"kind" env:"OVERMIND_STORE"`
	// Path is the directory for file and the database file for sqlite.
	Path string `yaml:"path" env:"OVERMIND_STORE_PATH"`
}

type SessionConfig struct {
	Games        int              `yaml:"games" env:"OVERMIND_GAMES"`
	OwnRace      model.Race       `yaml:"own_race" env:"OVERMIND_OWN_RACE"`
	OpponentRace model.Race       `yaml:"opponent_race" env:"OVERMIND_OPPONENT_RACE"`
	Difficulty   model.Difficulty `yaml:"difficulty" env:"OVERMIND_DIFFICULTY"`
	Seed         int64            `yaml:"seed" env:"OVERMIND_SEED"`
}

type SelectorConfig struct {
	WindowTicks  int     `yaml:"window_ticks" env:"OVERMIND_WINDOW_TICKS"`
	Hidden       int     `yaml:"hidden" env:"OVERMIND_HIDDEN"`
	LearningRate float64 `yaml:"learning_rate" env:"OVERMIND_LEARNING_RATE"`
}

type EngineConfig struct {
	// Kind is replay or ws.
	Kind        string        `yaml:"kind" env:"OVERMIND_ENGINE"`
	ReplayDir   string        `yaml:"replay_dir" env:"OVERMIND_REPLAY_DIR"`
	Listen      string        `yaml:"listen" env:"OVERMIND_LISTEN"`
	Path        string        `yaml:"path" env:"OVERMIND_WS_PATH"`
	ReadTimeout time.Duration `yaml:"read_timeout" env:"OVERMIND_READ_TIMEOUT"`
	RecordDir   string        `yaml:"record_dir" env:"OVERMIND_RECORD_DIR"`
}

type ArtifactsConfig struct {
	Dir string `yaml:"dir" env:"OVERMIND_ARTIFACTS_DIR"`
}

func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info"},
		Store: StoreConfig{Kind: "file", Path: "overmind_data"},
		Session: SessionConfig{
			Games:        1,
			OwnRace:      model.RaceZerg,
			OpponentRace: model.RaceRandom,
			Difficulty:   model.DifficultyMedium,
			Seed:         1,
		},
		Selector: SelectorConfig{WindowTicks: 100, Hidden: 100, LearningRate: 0.01},
		Engine: EngineConfig{
			Kind:        "replay",
			ReplayDir:   "replays",
			Listen:      "127.0.0.1:8765",
			Path:        "/engine",
			ReadTimeout: 60 * time.Second,
		},
		Artifacts: ArtifactsConfig{Dir: "sessions"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields whose OVERMIND_* variable is set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Store.Kind {
	case "memory":
	case "file", "sqlite":
		if c.Store.Path == "" {
			errs = append(errs, fmt.Errorf("store.path is required for %s store", c.Store.Kind))
		}
	default:
		errs = append(errs, fmt.Errorf("store.kind must be memory|file|sqlite, got %q", c.Store.Kind))
	}
	if c.Session.Games <= 0 {
		errs = append(errs, fmt.Errorf("session.games must be positive, got %d", c.Session.Games))
	}
	if !c.Session.OwnRace.Playable() {
		errs = append(errs, fmt.Errorf("session.own_race must be terran|zerg|protoss, got %s", c.Session.OwnRace))
	}
	if c.Session.OpponentRace == model.RaceNone {
		errs = append(errs, errors.New("session.opponent_race is required"))
	}
	if _, err := model.ParseDifficulty(string(c.Session.Difficulty)); err != nil {
		errs = append(errs, err)
	}
	if c.Selector.WindowTicks <= 0 {
		errs = append(errs, fmt.Errorf("selector.window_ticks must be positive, got %d", c.Selector.WindowTicks))
	}
	if c.Selector.Hidden <= 0 {
		errs = append(errs, fmt.Errorf("selector.hidden must be positive, got %d", c.Selector.Hidden))
	}
	if c.Selector.LearningRate <= 0 {
		errs = append(errs, fmt.Errorf("selector.learning_rate must be positive, got %g", c.Selector.LearningRate))
	}
	switch c.Engine.Kind {
	case "replay":
		if c.Engine.ReplayDir == "" {
			errs = append(errs, errors.New("engine.replay_dir is required for replay engine"))
		}
	case "ws":
		if c.Engine.Listen == "" {
			errs = append(errs, errors.New("engine.listen is required for ws engine"))
		}
	default:
		errs = append(errs, fmt.Errorf("engine.kind must be replay|ws, got %q", c.Engine.Kind))
	}
	return errors.Join(errs...)
}
