// Package engine is the port the session runner plays games through. An
// engine owns the game; the core only reads the snapshots it yields.
package engine

import (
	"context"

	"overmind/internal/model"
)

type GameSpec struct {
	Index        int
	OwnRace      model.Race
	OpponentRace model.Race
	Difficulty   model.Difficulty
}

type GameInfo struct {
	ID           string           `json:"id"`
	Map          string           `json:"map,omitempty"`
	OwnRace      model.Race       `json:"own_race"`
	OpponentRace model.Race       `json:"opponent_race"`
	Difficulty   model.Difficulty `json:"difficulty,omitempty"`
}

type Engine interface {
	Start(ctx context.Context, spec GameSpec) (Game, error)
}

// Game yields snapshots in tick order. Ticks need not be contiguous; the
// arbiter counts decision windows in snapshots delivered. Next returns
// ok=false once the game is over; Result is only meaningful after that.
type Game interface {
	Info() GameInfo
	Next(ctx context.Context) (model.Snapshot, bool, error)
	Result() model.Result
	Close() error
}
