// Package arbiter drives one game: it steps the active sub-agent every tick
// and, every decision window, scores the game, trains the selector pair on
// the last decision and picks the next sub-agent and strategy.
package arbiter

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"overmind/internal/features"
	"overmind/internal/fitness"
	"overmind/internal/model"
	"overmind/internal/outcome"
	"overmind/internal/selector"
	"overmind/internal/subagent"
)

var ErrTerminated = errors.New("arbiter terminated")

const DefaultWindowTicks = 100

type State int

const (
	StateUninitialized State = iota
	StateReady
	StateSelecting
	StateExecuting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateSelecting:
		return "selecting"
	case StateExecuting:
		return "executing"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Config struct {
	GameID       string
	Index        int
	OwnRace      model.Race
	OpponentRace model.Race
	Difficulty   model.Difficulty

	WindowTicks  int
	Hidden       int
	LearningRate float64
	Seed         int64

	Catalog *subagent.Catalog
	// Store may be nil, in which case weights are neither loaded nor saved.
	Store  selector.WeightStore
	Logger zerolog.Logger
}

type Arbiter struct {
	cfg   Config
	log   zerolog.Logger
	state State

	extractor *features.Extractor
	evaluator *fitness.Evaluator
	tracker   outcome.Tracker
	pair      *selector.Pair

	// steps counts Step calls; windows follow it, not the engine's tick
	// numbering, which may advance by more than one per call.
	steps   int
	history model.GameHistory
}

func New(cfg Config) (*Arbiter, error) {
	if cfg.Catalog == nil || cfg.Catalog.Len() == 0 {
		return nil, errors.New("arbiter needs a sub-agent catalog")
	}
	if !cfg.OwnRace.Playable() || !cfg.OpponentRace.Playable() {
		return nil, fmt.Errorf("races must be concrete: own=%s opponent=%s", cfg.OwnRace, cfg.OpponentRace)
	}
	if cfg.WindowTicks <= 0 {
		cfg.WindowTicks = DefaultWindowTicks
	}
	log := cfg.Logger.With().Str("game", cfg.GameID).Str("race", cfg.OpponentRace.String()).Logger()

	memory := features.NewOpponentMemory()
	evaluator, err := fitness.NewEvaluator(fitness.Config{
		OwnRace:      cfg.OwnRace,
		OpponentRace: cfg.OpponentRace,
		Memory:       memory,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}
	pair, err := selector.NewPair(selector.Options{
		Agents:       cfg.Catalog.Len(),
		Strategies:   len(subagent.Strategies()),
		Hidden:       cfg.Hidden,
		LearningRate: cfg.LearningRate,
		Seed:         cfg.Seed,
	})
	if err != nil {
		return nil, err
	}
	return &Arbiter{
		cfg:       cfg,
		log:       log,
		state:     StateUninitialized,
		extractor: features.NewExtractor(features.Config{Memory: memory, Logger: log}),
		evaluator: evaluator,
		pair:      pair,
		history: model.GameHistory{
			GameID:            cfg.GameID,
			Index:             cfg.Index,
			OpponentRace:      cfg.OpponentRace,
			Difficulty:        cfg.Difficulty,
			Result:            model.ResultUndecided,
			AgentFrequency:    make(map[string]int),
			StrategyFrequency: make(map[string]int),
		},
	}, nil
}

func (a *Arbiter) State() State {
	return a.state
}

// Current returns the active sub-agent and strategy. Before the first tick
// both are zero.
func (a *Arbiter) Current() (subagent.ID, subagent.Strategy) {
	agent, strategy := a.pair.Current()
	active, err := a.cfg.Catalog.At(agent)
	if err != nil {
		return 0, subagent.Strategy(strategy)
	}
	return active.ID(), subagent.Strategy(strategy)
}

// Step handles one engine tick.
func (a *Arbiter) Step(ctx context.Context, snapshot model.Snapshot) error {
	if a.state == StateTerminated {
		return ErrTerminated
	}
	if a.state == StateUninitialized {
		if err := a.initialize(ctx); err != nil {
			return fmt.Errorf("initialize arbiter: %w", err)
		}
	}
	window := a.steps%a.cfg.WindowTicks == 0
	a.steps++
	if window {
		a.state = StateSelecting
		if err := a.decide(ctx, snapshot); err != nil {
			return fmt.Errorf("decision window at tick %d: %w", snapshot.Tick, err)
		}
	}

	a.state = StateExecuting
	agentIndex, strategy := a.pair.Current()
	active, err := a.cfg.Catalog.At(agentIndex)
	if err != nil {
		return err
	}
	if err := active.Step(ctx, snapshot.Tick, subagent.Strategy(strategy)); err != nil {
		a.log.Warn().Err(err).Int("tick", snapshot.Tick).Str("agent", active.ID().String()).Msg("sub-agent step failed")
	}
	if snapshot.Tick+1 > a.history.Ticks {
		a.history.Ticks = snapshot.Tick + 1
	}
	return nil
}

func (a *Arbiter) initialize(ctx context.Context) error {
	featureLen, err := features.Len(a.cfg.OwnRace, a.cfg.OpponentRace)
	if err != nil {
		return err
	}
	if err := a.pair.Init(featureLen); err != nil {
		return err
	}
	if a.cfg.Store != nil {
		restored, err := a.pair.Load(ctx, a.cfg.Store, a.cfg.OpponentRace, a.log)
		if err != nil {
			return err
		}
		a.log.Info().Int("restored", restored).Int("windows", a.pair.Windows()).Msg("selector weights loaded")
	}
	agent, strategy := a.Current()
	a.log.Info().Int("features", featureLen).Str("agent", agent.String()).Str("strategy", strategy.String()).
		Msg("arbiter ready")
	a.state = StateReady
	return nil
}

func (a *Arbiter) decide(ctx context.Context, snapshot model.Snapshot) error {
	vector, err := a.extractor.Extract(snapshot, a.cfg.OwnRace, a.cfg.OpponentRace)
	if err != nil {
		return err
	}
	score := a.evaluator.Fitness(snapshot)
	label, change := a.tracker.Observe(score)

	if err := a.pair.Learn(label); err != nil {
		return err
	}
	if _, _, err := a.pair.Select(vector); err != nil {
		return err
	}
	if a.cfg.Store != nil {
		if err := a.pair.Save(ctx, a.cfg.Store, a.cfg.OpponentRace); err != nil {
			a.log.Error().Err(err).Int("tick", snapshot.Tick).Msg("persist selector weights")
		}
	}

	agent, strategy := a.Current()
	a.history.AgentFrequency[agent.String()]++
	a.history.StrategyFrequency[strategy.String()]++
	a.history.Fitness = append(a.history.Fitness, model.FitnessSample{Tick: snapshot.Tick, Fitness: score})

	a.log.Debug().
		Int("tick", snapshot.Tick).
		Float64("fitness", score).
		Float64("change_pct", change).
		Str("label", label.String()).
		Str("agent", agent.String()).
		Str("strategy", strategy.String()).
		Msg("decision window")
	return nil
}

// End stops the arbiter and returns what the game produced. Any later Step
// or End fails with ErrTerminated.
func (a *Arbiter) End(result model.Result) (model.GameHistory, error) {
	if a.state == StateTerminated {
		return model.GameHistory{}, ErrTerminated
	}
	a.state = StateTerminated
	a.history.Result = result
	a.log.Info().Str("result", string(result)).Int("windows", len(a.history.Fitness)).Msg("game ended")
	return a.history, nil
}
