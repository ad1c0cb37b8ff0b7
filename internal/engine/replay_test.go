package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"overmind/internal/model"
)

func writeRecording(t *testing.T, path string, opponent model.Race, ticks int, result model.Result) {
	t.Helper()
	rec, err := CreateRecording(path, GameInfo{ID: filepath.Base(path), Map: "AbyssalReefLE", OwnRace: model.RaceZerg, OpponentRace: opponent})
	require.NoError(t, err)
	for tick := 0; tick < ticks; tick++ {
		require.NoError(t, rec.Write(model.Snapshot{
			Tick:     tick,
			Units:    []model.Unit{{Name: "Hatchery", AssignedHarvesters: 3}, {Name: "Drone"}},
			Minerals: float64(50 + tick),
		}))
	}
	require.NoError(t, rec.Close(result))
}

func drain(t *testing.T, game Game) []model.Snapshot {
	t.Helper()
	var out []model.Snapshot
	for {
		snapshot, ok, err := game.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, snapshot)
	}
}

func TestReplayPlaysRecordingsByOpponentRace(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, filepath.Join(dir, "a-terran.jsonl"), model.RaceTerran, 5, model.ResultVictory)
	writeRecording(t, filepath.Join(dir, "b-terran.jsonl.zst"), model.RaceTerran, 3, model.ResultDefeat)
	writeRecording(t, filepath.Join(dir, "c-protoss.jsonl"), model.RaceProtoss, 2, model.ResultTie)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	r := NewReplay(dir, zerolog.Nop())
	paths, err := r.Recordings(model.RaceTerran)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	game, err := r.Start(context.Background(), GameSpec{Index: 1, OpponentRace: model.RaceTerran})
	require.NoError(t, err)
	defer game.Close()
	require.Equal(t, "b-terran.jsonl.zst", game.Info().ID)
	require.Equal(t, model.ResultUndecided, game.Result())

	snapshots := drain(t, game)
	require.Len(t, snapshots, 3)
	require.Equal(t, 2, snapshots[2].Tick)
	require.Equal(t, 52.0, snapshots[2].Minerals)
	require.Equal(t, model.ResultDefeat, game.Result())

	again, err := r.Start(context.Background(), GameSpec{Index: 2, OpponentRace: model.RaceTerran})
	require.NoError(t, err)
	defer again.Close()
	require.Equal(t, "a-terran.jsonl", again.Info().ID)
	require.Len(t, drain(t, again), 5)
	require.Equal(t, model.ResultVictory, again.Result())
}

func TestReplayWithoutRecordingsForRace(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, filepath.Join(dir, "only-zerg.jsonl"), model.RaceZerg, 1, model.ResultVictory)
	_, err := NewReplay(dir, zerolog.Nop()).Start(context.Background(), GameSpec{OpponentRace: model.RaceTerran})
	require.Error(t, err)
}

func TestReplayRespectsCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, filepath.Join(dir, "z.jsonl"), model.RaceZerg, 4, model.ResultVictory)
	game, err := NewReplay(dir, zerolog.Nop()).Start(context.Background(), GameSpec{OpponentRace: model.RaceZerg})
	require.NoError(t, err)
	defer game.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = game.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecordingWithoutTrailerIsUndecided(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"id":"cut","opponent_race":"Protoss"}`+"\n"+`{"tick":0,"units":[]}`+"\n"), 0o644))

	game, err := NewReplay(filepath.Dir(path), zerolog.Nop()).Start(context.Background(), GameSpec{OpponentRace: model.RaceProtoss})
	require.NoError(t, err)
	defer game.Close()
	require.Len(t, drain(t, game), 1)
	require.Equal(t, model.ResultUndecided, game.Result())
}
