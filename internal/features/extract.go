// Package features turns a world snapshot into the fixed-length vector the
// selector networks consume.
package features

import (
	"fmt"

	"github.com/rs/zerolog"

	"overmind/internal/model"
	"overmind/internal/nn"
	"overmind/internal/taxonomy"
)

const (
	// CountDivisor normalizes every unit and worker count.
	CountDivisor = 200.0
	// ResourceDivisor normalizes mineral and vespene stockpiles.
	ResourceDivisor = 1000.0

	workerSplitLen = 4
	resourceLen    = 2
)

type Config struct {
	Memory *OpponentMemory
	Logger zerolog.Logger
}

type Extractor struct {
	memory   *OpponentMemory
	log      zerolog.Logger
	reported map[string]struct{}
}

func NewExtractor(cfg Config) *Extractor {
	memory := cfg.Memory
	if memory == nil {
		memory = NewOpponentMemory()
	}
	return &Extractor{
		memory:   memory,
		log:      cfg.Logger,
		reported: make(map[string]struct{}),
	}
}

// Len is the vector length for a race pairing; it does not depend on any
// snapshot.
func Len(own, opponent model.Race) (int, error) {
	ownTx, err := taxonomy.For(own)
	if err != nil {
		return 0, err
	}
	oppTx, err := taxonomy.For(opponent)
	if err != nil {
		return 0, err
	}
	return ownTx.Len() + workerSplitLen + resourceLen + oppTx.Len(), nil
}

// Extract builds own counts (worker split inserted after the worker category),
// then minerals and vespene, then opponent counts.
func (e *Extractor) Extract(snapshot model.Snapshot, own, opponent model.Race) ([]float64, error) {
	ownTx, err := taxonomy.For(own)
	if err != nil {
		return nil, fmt.Errorf("own race: %w", err)
	}
	oppTx, err := taxonomy.For(opponent)
	if err != nil {
		return nil, fmt.Errorf("opponent race: %w", err)
	}

	ownCounts, unknown := Breakdown(snapshot.Units, ownTx)
	e.reportUnknown(unknown, "self")
	workers := Workers(snapshot.Units, ownTx)

	split := ownTx.WorkerCategory() + 1
	owned := make([]float64, 0, len(ownCounts)+workerSplitLen)
	for _, c := range ownCounts[:split] {
		owned = append(owned, float64(c))
	}
	owned = append(owned,
		float64(workers.Idle),
		float64(workers.Mineral),
		float64(workers.Vespene),
		float64(workers.Other),
	)
	for _, c := range ownCounts[split:] {
		owned = append(owned, float64(c))
	}

	oppCounts, unknown := Breakdown(e.memory.Observe(snapshot), oppTx)
	e.reportUnknown(unknown, "opponent")
	opp := make([]float64, len(oppCounts))
	for i, c := range oppCounts {
		opp[i] = float64(c)
	}

	resources := []float64{snapshot.Minerals / ResourceDivisor, snapshot.Vespene / ResourceDivisor}
	return nn.Concat(nn.Divide(owned, CountDivisor), resources, nn.Divide(opp, CountDivisor)), nil
}

func (e *Extractor) reportUnknown(names []string, side string) {
	for _, name := range names {
		if _, done := e.reported[side+"/"+name]; done {
			continue
		}
		e.reported[side+"/"+name] = struct{}{}
		e.log.Debug().Str("unit", name).Str("side", side).Msg("unit name not in taxonomy, counted as rest")
	}
}

// Breakdown counts units per taxonomy category. Ignored names are skipped;
// unknown names land in the catch-all and are returned for logging.
func Breakdown(units []model.Unit, tx *taxonomy.Taxonomy) (counts []int, unknown []string) {
	counts = make([]int, tx.Len())
	for _, unit := range units {
		if tx.Ignored(unit.Name) {
			continue
		}
		idx, known := tx.Resolve(unit.Name)
		counts[idx]++
		if !known {
			unknown = append(unknown, unit.Name)
		}
	}
	return counts, unknown
}
