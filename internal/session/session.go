// Package session plays a series of games, one arbiter per game, against a
// fixed or randomly drawn opponent race.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/rs/zerolog"

	"overmind/internal/arbiter"
	"overmind/internal/engine"
	"overmind/internal/model"
	"overmind/internal/stats"
	"overmind/internal/storage"
	"overmind/internal/subagent"
)

// Interrupt is a cooperative stop request. The runner finishes the game in
// progress and stops before starting the next one.
type Interrupt struct {
	flag atomic.Bool
}

func (i *Interrupt) Trigger() {
	i.flag.Store(true)
}

func (i *Interrupt) Triggered() bool {
	return i != nil && i.flag.Load()
}

type Plan struct {
	Games int
	// OpponentRace Random draws uniformly from the playable races per game.
	OpponentRace model.Race
	OwnRace      model.Race
	Difficulty   model.Difficulty
	Seed         int64

	WindowTicks  int
	Hidden       int
	LearningRate float64
}

type Config struct {
	Engine     engine.Engine
	Catalog    *subagent.Catalog
	Store      storage.Store
	Aggregator *stats.Aggregator
	Interrupt  *Interrupt
	Logger     zerolog.Logger
}

type Runner struct {
	cfg Config
}

func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Engine == nil {
		return nil, errors.New("session needs an engine")
	}
	if cfg.Catalog == nil {
		return nil, errors.New("session needs a sub-agent catalog")
	}
	if cfg.Aggregator == nil {
		return nil, errors.New("session needs an aggregator")
	}
	return &Runner{cfg: cfg}, nil
}

// Run plays plan.Games games and returns the session report. The report is
// also saved to the store when one is configured.
func (r *Runner) Run(ctx context.Context, plan Plan) (model.SessionReport, error) {
	if plan.Games <= 0 {
		return model.SessionReport{}, fmt.Errorf("games must be positive, got=%d", plan.Games)
	}
	if plan.OwnRace == model.RaceNone {
		plan.OwnRace = model.RaceZerg
	}
	if !plan.OwnRace.Playable() {
		return model.SessionReport{}, fmt.Errorf("own race must be concrete, got %s", plan.OwnRace)
	}
	rng := rand.New(rand.NewSource(plan.Seed))
	log := r.cfg.Logger

	var runErr error
	for i := 0; i < plan.Games; i++ {
		opponent := plan.OpponentRace
		if !opponent.Playable() {
			opponent = model.PlayableRaces[rng.Intn(len(model.PlayableRaces))]
		}
		history, err := r.playGame(ctx, plan, i, opponent)
		if err != nil {
			runErr = fmt.Errorf("game %d: %w", i, err)
			break
		}
		r.cfg.Aggregator.Add(history)
		log.Info().
			Int("game", i).
			Str("race", history.OpponentRace.String()).
			Str("result", string(history.Result)).
			Int("windows", len(history.Fitness)).
			Msg("game finished")

		if r.cfg.Interrupt.Triggered() && i+1 < plan.Games {
			log.Warn().Int("played", i+1).Int("planned", plan.Games).Msg("interrupt received, stopping session")
			r.cfg.Aggregator.MarkInterrupted()
			break
		}
	}

	report := r.cfg.Aggregator.Report()
	if r.cfg.Store != nil {
		if err := r.cfg.Store.SaveSessionReport(ctx, report); err != nil {
			log.Error().Err(err).Str("session", report.ID).Msg("save session report")
		}
	}
	return report, runErr
}

func (r *Runner) playGame(ctx context.Context, plan Plan, index int, opponent model.Race) (model.GameHistory, error) {
	game, err := r.cfg.Engine.Start(ctx, engine.GameSpec{
		Index:        index,
		OwnRace:      plan.OwnRace,
		OpponentRace: opponent,
		Difficulty:   plan.Difficulty,
	})
	if err != nil {
		return model.GameHistory{}, fmt.Errorf("start game: %w", err)
	}
	defer func() {
		if err := game.Close(); err != nil {
			r.cfg.Logger.Warn().Err(err).Msg("close game")
		}
	}()

	info := game.Info()
	if info.OpponentRace.Playable() {
		opponent = info.OpponentRace
	}
	ownRace := plan.OwnRace
	if info.OwnRace.Playable() {
		ownRace = info.OwnRace
	}
	difficulty := info.Difficulty
	if difficulty == "" {
		difficulty = plan.Difficulty
	}

	arbCfg := arbiter.Config{
		GameID:       info.ID,
		Index:        index,
		OwnRace:      ownRace,
		OpponentRace: opponent,
		Difficulty:   difficulty,
		WindowTicks:  plan.WindowTicks,
		Hidden:       plan.Hidden,
		LearningRate: plan.LearningRate,
		Seed:         plan.Seed + int64(index) + 1,
		Catalog:      r.cfg.Catalog,
		Logger:       r.cfg.Logger,
	}
	if r.cfg.Store != nil {
		arbCfg.Store = r.cfg.Store
	}
	arb, err := arbiter.New(arbCfg)
	if err != nil {
		return model.GameHistory{}, err
	}

	for {
		snapshot, ok, err := game.Next(ctx)
		if err != nil {
			return model.GameHistory{}, err
		}
		if !ok {
			break
		}
		if err := arb.Step(ctx, snapshot); err != nil {
			return model.GameHistory{}, err
		}
	}
	return arb.End(game.Result())
}
