package storage

import (
	"context"
	"testing"

	"overmind/internal/model"
)

func sampleWeights(role model.Role, race model.Race) model.WeightRecord {
	return model.WeightRecord{
		Key:     model.WeightKey{Role: role, Race: race},
		Inputs:  2,
		Hidden:  1,
		Outputs: 1,
		Windows: 7,
		Weights: [][][]float64{{{0.1, -0.2, 0.3}}, {{1.5, 0.25}}},
	}
}

// exerciseStore runs the shared contract every backend must satisfy.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	key := model.WeightKey{Role: model.RoleAgent, Race: model.RaceZerg}
	if _, ok, err := store.GetWeights(ctx, key); err != nil || ok {
		t.Fatalf("expected absent weights, ok=%t err=%v", ok, err)
	}

	input := sampleWeights(model.RoleAgent, model.RaceZerg)
	if err := store.SaveWeights(ctx, input); err != nil {
		t.Fatalf("save weights: %v", err)
	}
	if err := store.SaveWeights(ctx, sampleWeights(model.RoleStrategy, model.RaceTerran)); err != nil {
		t.Fatalf("save weights: %v", err)
	}

	output, ok, err := store.GetWeights(ctx, key)
	if err != nil {
		t.Fatalf("get weights: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted weights")
	}
	if output.Windows != 7 || output.Inputs != 2 || output.Weights[1][0][0] != 1.5 {
		t.Fatalf("unexpected weights: %+v", output)
	}
	if output.SchemaVersion != CurrentSchemaVersion || output.CodecVersion != CurrentCodecVersion {
		t.Fatalf("expected stamped versions, got %+v", output.VersionedRecord)
	}

	input.Windows = 8
	if err := store.SaveWeights(ctx, input); err != nil {
		t.Fatalf("overwrite weights: %v", err)
	}
	output, _, _ = store.GetWeights(ctx, key)
	if output.Windows != 8 {
		t.Fatalf("expected overwrite, got windows=%d", output.Windows)
	}

	keys, err := store.ListWeights(ctx)
	if err != nil {
		t.Fatalf("list weights: %v", err)
	}
	if len(keys) != 2 || keys[0].Race != model.RaceTerran || keys[1] != key {
		t.Fatalf("unexpected keys: %+v", keys)
	}

	if err := store.DeleteWeights(ctx, key); err != nil {
		t.Fatalf("delete weights: %v", err)
	}
	if err := store.DeleteWeights(ctx, key); err != nil {
		t.Fatalf("delete absent weights: %v", err)
	}
	if _, ok, _ := store.GetWeights(ctx, key); ok {
		t.Fatal("expected deleted weights to be absent")
	}

	report := model.SessionReport{
		ID:      "session-1",
		Games:   []model.GameHistory{{GameID: "g1", OpponentRace: model.RaceProtoss, Result: model.ResultVictory}},
		WinLoss: map[string]model.WinLoss{"Protoss": {Wins: 1}},
	}
	if err := store.SaveSessionReport(ctx, report); err != nil {
		t.Fatalf("save report: %v", err)
	}
	loaded, ok, err := store.GetSessionReport(ctx, "session-1")
	if err != nil || !ok {
		t.Fatalf("get report: ok=%t err=%v", ok, err)
	}
	if len(loaded.Games) != 1 || loaded.WinLoss["Protoss"].Wins != 1 {
		t.Fatalf("unexpected report: %+v", loaded)
	}
	ids, err := store.ListSessionReports(ctx)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(ids) != 1 || ids[0] != "session-1" {
		t.Fatalf("unexpected report ids: %v", ids)
	}
	if _, ok, _ := store.GetSessionReport(ctx, "missing"); ok {
		t.Fatal("expected missing report to be absent")
	}
}

func TestMemoryStoreContract(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	exerciseStore(t, store)
}

func TestMemoryStoreRequiresInit(t *testing.T) {
	store := NewMemoryStore()
	if err := store.SaveWeights(context.Background(), sampleWeights(model.RoleAgent, model.RaceZerg)); err == nil {
		t.Fatal("expected save before init to fail")
	}
}

func TestMemoryStoreCopiesWeights(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	input := sampleWeights(model.RoleAgent, model.RaceZerg)
	if err := store.SaveWeights(ctx, input); err != nil {
		t.Fatalf("save: %v", err)
	}
	input.Weights[0][0][0] = 42
	output, _, _ := store.GetWeights(ctx, input.Key)
	if output.Weights[0][0][0] == 42 {
		t.Fatal("store aliased caller weights")
	}
}

func TestFileStoreContract(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	exerciseStore(t, store)
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first := NewFileStore(dir)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := first.SaveWeights(ctx, sampleWeights(model.RoleStrategy, model.RaceProtoss)); err != nil {
		t.Fatalf("save: %v", err)
	}

	second := NewFileStore(dir)
	if err := second.Init(ctx); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	record, ok, err := second.GetWeights(ctx, model.WeightKey{Role: model.RoleStrategy, Race: model.RaceProtoss})
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%t err=%v", ok, err)
	}
	if record.Weights[0][0][2] != 0.3 {
		t.Fatalf("unexpected weights after reopen: %+v", record.Weights)
	}
}

func TestFileStoreRejectsPathLikeReportID(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.SaveSessionReport(context.Background(), model.SessionReport{ID: "../escape"}); err == nil {
		t.Fatal("expected path-like id to be rejected")
	}
}
