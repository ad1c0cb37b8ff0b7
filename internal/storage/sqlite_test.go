//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"overmind/internal/model"
)

func TestSQLiteStoreContract(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "overmind.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	exerciseStore(t, store)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "overmind.db")

	first := NewSQLiteStore(path)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := first.SaveWeights(ctx, sampleWeights(model.RoleAgent, model.RaceZerg)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second := NewSQLiteStore(path)
	if err := second.Init(ctx); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() {
		_ = second.Close()
	})
	record, ok, err := second.GetWeights(ctx, model.WeightKey{Role: model.RoleAgent, Race: model.RaceZerg})
	if err != nil || !ok {
		t.Fatalf("get after reopen: ok=%t err=%v", ok, err)
	}
	if record.Windows != 7 {
		t.Fatalf("unexpected record after reopen: %+v", record)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "overmind.db"))
	if _, _, err := store.GetWeights(context.Background(), model.WeightKey{Role: model.RoleAgent, Race: model.RaceZerg}); err == nil {
		t.Fatal("expected uninitialized store error")
	}
}
