// Package stats aggregates finished games into a session report and writes
// it out as JSON, CSV and plain-text curve artifacts.
package stats

import (
	"sync"
	"time"

	"overmind/internal/model"
)

// TotalKey is the report key that aggregates every opponent race.
const TotalKey = "Total"

type Aggregator struct {
	mu          sync.Mutex
	windowTicks int
	report      model.SessionReport
}

func NewAggregator(sessionID string, startedAt time.Time, windowTicks int) *Aggregator {
	if windowTicks <= 0 {
		windowTicks = 100
	}
	return &Aggregator{
		windowTicks: windowTicks,
		report: model.SessionReport{
			ID:        sessionID,
			StartedAt: startedAt.UTC().Format(time.RFC3339),
			WinLoss:   make(map[string]model.WinLoss),
			AgentFreq: make(map[string]map[string]int),
			StratFreq: make(map[string]map[string]int),
		},
	}
}

// Add records one finished game. Anything but a victory counts as a loss.
func (a *Aggregator) Add(game model.GameHistory) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.report.Games = append(a.report.Games, game)
	race := game.OpponentRace.String()
	for _, key := range []string{TotalKey, race} {
		wl := a.report.WinLoss[key]
		if game.Result == model.ResultVictory {
			wl.Wins++
		} else {
			wl.Losses++
		}
		a.report.WinLoss[key] = wl
		addCounts(a.report.AgentFreq, key, game.AgentFrequency)
		addCounts(a.report.StratFreq, key, game.StrategyFrequency)
	}
}

func addCounts(dst map[string]map[string]int, key string, counts map[string]int) {
	if dst[key] == nil {
		dst[key] = make(map[string]int)
	}
	for name, n := range counts {
		dst[key][name] += n
	}
}

func (a *Aggregator) MarkInterrupted() {
	a.mu.Lock()
	a.report.Interrupted = true
	a.mu.Unlock()
}

func (a *Aggregator) Games() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.report.Games)
}

// Report returns a copy of the session so far with averaged fitness curves
// per opponent race and in total.
func (a *Aggregator) Report() model.SessionReport {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := a.report
	out.Games = append([]model.GameHistory(nil), a.report.Games...)
	out.WinLoss = make(map[string]model.WinLoss, len(a.report.WinLoss))
	for k, v := range a.report.WinLoss {
		out.WinLoss[k] = v
	}
	out.AgentFreq = cloneCounts(a.report.AgentFreq)
	out.StratFreq = cloneCounts(a.report.StratFreq)
	out.Curves = Curves(out.Games, a.windowTicks)
	return out
}

// Curves averages fitness per window across games, keyed like WinLoss.
func Curves(games []model.GameHistory, windowTicks int) map[string][]model.CurvePoint {
	lists := groupFitness(games)
	if len(lists) == 0 {
		return nil
	}
	out := make(map[string][]model.CurvePoint, len(lists))
	for key, series := range lists {
		out[key] = AverageCurve(series, 0, windowTicks)
	}
	return out
}

func groupFitness(games []model.GameHistory) map[string][][]float64 {
	out := make(map[string][][]float64)
	for _, game := range games {
		values := fitnessValues(game.Fitness)
		out[TotalKey] = append(out[TotalKey], values)
		race := game.OpponentRace.String()
		out[race] = append(out[race], values)
	}
	return out
}

func cloneCounts(in map[string]map[string]int) map[string]map[string]int {
	out := make(map[string]map[string]int, len(in))
	for k, counts := range in {
		inner := make(map[string]int, len(counts))
		for name, n := range counts {
			inner[name] = n
		}
		out[k] = inner
	}
	return out
}
