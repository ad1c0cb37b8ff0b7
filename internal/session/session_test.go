package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"overmind/internal/engine"
	"overmind/internal/model"
	"overmind/internal/stats"
	"overmind/internal/storage"
	"overmind/internal/subagent"
)

// scriptedEngine yields ticks snapshots per game and records every spec.
type scriptedEngine struct {
	ticks   int
	specs   []engine.GameSpec
	onStart func(index int)
}

func (e *scriptedEngine) Start(_ context.Context, spec engine.GameSpec) (engine.Game, error) {
	e.specs = append(e.specs, spec)
	if e.onStart != nil {
		e.onStart(spec.Index)
	}
	result := model.ResultDefeat
	if spec.Index%2 == 0 {
		result = model.ResultVictory
	}
	return &scriptedGame{spec: spec, ticks: e.ticks, result: result}, nil
}

type scriptedGame struct {
	spec   engine.GameSpec
	ticks  int
	tick   int
	result model.Result
}

func (g *scriptedGame) Info() engine.GameInfo {
	return engine.GameInfo{ID: "scripted", OwnRace: g.spec.OwnRace, OpponentRace: g.spec.OpponentRace}
}

func (g *scriptedGame) Next(ctx context.Context) (model.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, false, err
	}
	if g.tick >= g.ticks {
		return model.Snapshot{}, false, nil
	}
	s := model.Snapshot{
		Tick:    g.tick,
		Units:   []model.Unit{{Name: "Hatchery", AssignedHarvesters: 2}, {Name: "Drone"}, {Name: "Drone"}},
		Enemies: []model.Unit{{Name: "Probe"}},
	}
	g.tick++
	return s, true, nil
}

func (g *scriptedGame) Result() model.Result { return g.result }
func (g *scriptedGame) Close() error         { return nil }

func newRunner(t *testing.T, eng engine.Engine, store storage.Store, interrupt *Interrupt) *Runner {
	t.Helper()
	r, err := NewRunner(Config{
		Engine:     eng,
		Catalog:    subagent.IdleCatalog(),
		Store:      store,
		Aggregator: stats.NewAggregator("session-test", time.Now(), 100),
		Interrupt:  interrupt,
		Logger:     zerolog.Nop(),
	})
	require.NoError(t, err)
	return r
}

func TestRunnerPlaysAllGamesAndSavesReport(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.Init(ctx))

	eng := &scriptedEngine{ticks: 210}
	report, err := newRunner(t, eng, store, nil).Run(ctx, Plan{Games: 3, OpponentRace: model.RaceProtoss, Seed: 1})
	require.NoError(t, err)
	require.Len(t, report.Games, 3)
	require.False(t, report.Interrupted)
	require.Equal(t, model.WinLoss{Wins: 2, Losses: 1}, report.WinLoss["Protoss"])
	for _, game := range report.Games {
		require.Len(t, game.Fitness, 3)
	}

	saved, ok, err := store.GetSessionReport(ctx, "session-test")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, saved.Games, 3)

	record, ok, err := store.GetWeights(ctx, model.WeightKey{Role: model.RoleAgent, Race: model.RaceProtoss})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 9, record.Windows)
}

func TestRunnerChecksInterruptBetweenGames(t *testing.T) {
	interrupt := &Interrupt{}
	eng := &scriptedEngine{ticks: 50, onStart: func(index int) {
		if index == 1 {
			interrupt.Trigger()
		}
	}}
	report, err := newRunner(t, eng, nil, interrupt).Run(context.Background(), Plan{Games: 5, OpponentRace: model.RaceTerran})
	require.NoError(t, err)
	require.Len(t, report.Games, 2, "the game in progress finishes before stopping")
	require.True(t, report.Interrupted)
}

func TestRunnerDrawsRandomOpponents(t *testing.T) {
	run := func() []model.Race {
		eng := &scriptedEngine{ticks: 1}
		_, err := newRunner(t, eng, nil, nil).Run(context.Background(), Plan{Games: 12, OpponentRace: model.RaceRandom, Seed: 9})
		require.NoError(t, err)
		races := make([]model.Race, 0, len(eng.specs))
		for _, spec := range eng.specs {
			require.True(t, spec.OpponentRace.Playable())
			require.Equal(t, model.RaceZerg, spec.OwnRace)
			races = append(races, spec.OpponentRace)
		}
		return races
	}
	first := run()
	require.Len(t, first, 12)
	require.Equal(t, first, run())
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := newRunner(t, &scriptedEngine{ticks: 10}, nil, nil).Run(ctx, Plan{Games: 2, OpponentRace: model.RaceZerg})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, report.Games)
}

func TestRunnerWithReplayEngine(t *testing.T) {
	dir := t.TempDir()
	rec, err := engine.CreateRecording(filepath.Join(dir, "terran.jsonl.zst"), engine.GameInfo{ID: "rec-1", OpponentRace: model.RaceTerran})
	require.NoError(t, err)
	for tick := 0; tick < 150; tick++ {
		require.NoError(t, rec.Write(model.Snapshot{Tick: tick, Units: []model.Unit{{Name: "Drone"}}, Enemies: []model.Unit{{Name: "SCV"}}}))
	}
	require.NoError(t, rec.Close(model.ResultVictory))

	report, err := newRunner(t, engine.NewReplay(dir, zerolog.Nop()), nil, nil).
		Run(context.Background(), Plan{Games: 2, OpponentRace: model.RaceTerran})
	require.NoError(t, err)
	require.Len(t, report.Games, 2)
	require.Equal(t, "rec-1", report.Games[0].GameID)
	require.Equal(t, model.WinLoss{Wins: 2}, report.WinLoss[stats.TotalKey])
}

func TestNewRunnerValidates(t *testing.T) {
	_, err := NewRunner(Config{Catalog: subagent.IdleCatalog(), Aggregator: stats.NewAggregator("s", time.Now(), 100)})
	require.Error(t, err)
}
