package fitness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"overmind/internal/features"
	"overmind/internal/model"
)

func named(names ...string) []model.Unit {
	out := make([]model.Unit, 0, len(names))
	for _, name := range names {
		out = append(out, model.Unit{Name: name})
	}
	return out
}

func newEvaluator(t *testing.T, opp model.Race) *Evaluator {
	t.Helper()
	e, err := NewEvaluator(Config{OwnRace: model.RaceZerg, OpponentRace: opp})
	require.NoError(t, err)
	return e
}

func TestFitnessWeights(t *testing.T) {
	e := newEvaluator(t, model.RaceTerran)
	snapshot := model.Snapshot{
		// spine 4 + pool 3 + evo 2 + hatchery 1 + lair 2 + hive 3 + 2 lings + 2 drones
		Units: append(named("SpineCrawler", "SpawningPool", "EvolutionChamber", "Hatchery", "Lair", "Hive", "Zergling", "Zergling", "Drone"),
			model.Unit{Name: "Drone", Idle: true}),
		// bunker 4 + barracks 2 + ebay 2 + ghost academy 3 + depot 1 + factory 2 + orbital 3 + marine 1 + scv 1
		Enemies: named("Bunker", "Barracks", "EngineeringBay", "GhostAcademy", "SupplyDepot", "Factory", "OrbitalCommand", "Marine", "SCV"),
	}
	score := e.Score(snapshot)
	require.Equal(t, 19, score.Self.Total)
	require.Equal(t, 19, score.Opponent.Total)
	require.Equal(t, 1, score.IdleWorkers)
	require.Equal(t, -1.0, score.Fitness)
	require.Equal(t, 4, score.Self.Buckets["defensive"])
	require.Equal(t, 2, score.Self.Buckets["worker"])
}

func TestFitnessIsDeterministic(t *testing.T) {
	snapshot := model.Snapshot{
		Units:   named("Hatchery", "Drone", "Drone", "Queen", "Larva", "CreepTumorBurrowed"),
		Enemies: named("Nexus", "Probe", "Zealot", "PhotonCannon"),
	}
	a := newEvaluator(t, model.RaceProtoss).Fitness(snapshot)
	b := newEvaluator(t, model.RaceProtoss).Fitness(snapshot)
	require.Equal(t, a, b)

	e := newEvaluator(t, model.RaceProtoss)
	require.Equal(t, e.Fitness(snapshot), e.Fitness(snapshot))
}

func TestFitnessIgnoresUnknownAndIgnoredNames(t *testing.T) {
	e := newEvaluator(t, model.RaceZerg)
	base := e.Fitness(model.Snapshot{Units: named("Drone")})
	with := e.Fitness(model.Snapshot{Units: named("Drone", "Zeratul", "Larva", "Egg", "BroodLordCocoon")})
	require.Equal(t, base, with)
}

func TestFitnessUsesLastKnownOpponent(t *testing.T) {
	memory := features.NewOpponentMemory()
	e, err := NewEvaluator(Config{OwnRace: model.RaceZerg, OpponentRace: model.RaceTerran, Memory: memory})
	require.NoError(t, err)

	seen := e.Fitness(model.Snapshot{Enemies: named("Bunker", "Marine")})
	require.Equal(t, -5.0, seen)
	gap := e.Fitness(model.Snapshot{})
	require.Equal(t, seen, gap)
}

func TestNewEvaluatorRejectsRandomRace(t *testing.T) {
	_, err := NewEvaluator(Config{OwnRace: model.RaceZerg, OpponentRace: model.RaceRandom})
	require.Error(t, err)
}
