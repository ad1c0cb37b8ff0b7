package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"overmind/internal/model"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overmind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
session:
  games: 5
  opponent_race: protoss
  difficulty: Hard
selector:
  learning_rate: 0.05
engine:
  kind: ws
  read_timeout: 5s
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Session.Games)
	require.Equal(t, model.RaceProtoss, cfg.Session.OpponentRace)
	require.Equal(t, model.DifficultyHard, cfg.Session.Difficulty)
	require.Equal(t, 0.05, cfg.Selector.LearningRate)
	require.Equal(t, 5*time.Second, cfg.Engine.ReadTimeout)
	require.Equal(t, 100, cfg.Selector.Hidden, "unset keys keep defaults")
	require.Equal(t, model.RaceZerg, cfg.Session.OwnRace)
	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadRace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overmind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  opponent_race: xelnaga\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("OVERMIND_GAMES", "7")
	t.Setenv("OVERMIND_OPPONENT_RACE", "terran")
	t.Setenv("OVERMIND_STORE", "memory")
	t.Setenv("OVERMIND_READ_TIMEOUT", "250ms")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	require.Equal(t, 7, cfg.Session.Games)
	require.Equal(t, model.RaceTerran, cfg.Session.OpponentRace)
	require.Equal(t, "memory", cfg.Store.Kind)
	require.Equal(t, 250*time.Millisecond, cfg.Engine.ReadTimeout)
	require.Equal(t, "overmind_data", cfg.Store.Path, "unset variables keep current values")
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Session.Games = 0
	cfg.Store.Kind = "redis"
	cfg.Engine.Kind = "sc2"
	cfg.Session.OwnRace = model.RaceRandom
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "session.games")
	require.Contains(t, err.Error(), "store.kind")
	require.Contains(t, err.Error(), "engine.kind")
	require.Contains(t, err.Error(), "own_race")
}
