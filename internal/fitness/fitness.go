// Package fitness scores relative standing as a weighted building and unit
// count of the own side minus the last known opponent side.
package fitness

import (
	"github.com/rs/zerolog"

	"overmind/internal/features"
	"overmind/internal/model"
	"overmind/internal/taxonomy"
)

type Config struct {
	OwnRace      model.Race
	OpponentRace model.Race
	Memory       *features.OpponentMemory
	Logger       zerolog.Logger
}

type Evaluator struct {
	own      *taxonomy.Taxonomy
	opponent *taxonomy.Taxonomy
	memory   *features.OpponentMemory
	log      zerolog.Logger
	reported map[string]struct{}
}

// Side is the per-bucket weighted breakdown of one player.
type Side struct {
	Buckets map[string]int `json:"buckets"`
	Total   int            `json:"total"`
}

type Score struct {
	Self        Side    `json:"self"`
	Opponent    Side    `json:"opponent"`
	IdleWorkers int     `json:"idle_workers"`
	Fitness     float64 `json:"fitness"`
}

func NewEvaluator(cfg Config) (*Evaluator, error) {
	own, err := taxonomy.For(cfg.OwnRace)
	if err != nil {
		return nil, err
	}
	opponent, err := taxonomy.For(cfg.OpponentRace)
	if err != nil {
		return nil, err
	}
	memory := cfg.Memory
	if memory == nil {
		memory = features.NewOpponentMemory()
	}
	return &Evaluator{
		own:      own,
		opponent: opponent,
		memory:   memory,
		log:      cfg.Logger,
		reported: make(map[string]struct{}),
	}, nil
}

// Fitness is (self weighted sum - idle workers) - opponent weighted sum.
func (e *Evaluator) Fitness(snapshot model.Snapshot) float64 {
	return e.Score(snapshot).Fitness
}

func (e *Evaluator) Score(snapshot model.Snapshot) Score {
	self := e.side(snapshot.Units, e.own, "self")
	opponent := e.side(e.memory.Observe(snapshot), e.opponent, "opponent")
	idle := features.Workers(snapshot.Units, e.own).Idle
	return Score{
		Self:        self,
		Opponent:    opponent,
		IdleWorkers: idle,
		Fitness:     float64(self.Total-idle) - float64(opponent.Total),
	}
}

func (e *Evaluator) side(units []model.Unit, tx *taxonomy.Taxonomy, label string) Side {
	out := Side{Buckets: make(map[string]int, len(taxonomy.Buckets()))}
	for _, unit := range units {
		bucket, skip, ok := tx.Classify(unit.Name)
		if !ok {
			e.reportUnknown(label, unit.Name)
			continue
		}
		if skip {
			continue
		}
		w := bucket.Weight()
		out.Buckets[bucket.String()] += w
		out.Total += w
	}
	return out
}

func (e *Evaluator) reportUnknown(side, name string) {
	key := side + "/" + name
	if _, done := e.reported[key]; done {
		return
	}
	e.reported[key] = struct{}{}
	e.log.Debug().Str("unit", name).Str("side", side).Msg("fitness name not covered, ignored")
}
