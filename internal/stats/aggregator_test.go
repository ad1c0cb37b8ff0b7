package stats

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"overmind/internal/model"
)

func sampleGames() []model.GameHistory {
	return []model.GameHistory{
		{
			GameID:            "g0",
			Index:             0,
			OpponentRace:      model.RaceTerran,
			Result:            model.ResultVictory,
			Fitness:           []model.FitnessSample{{Tick: 0, Fitness: 2}, {Tick: 100, Fitness: 6}},
			AgentFrequency:    map[string]int{"Mutalisk": 2},
			StrategyFrequency: map[string]int{"HeavyAttack": 1, "LightDefense": 1},
		},
		{
			GameID:            "g1",
			Index:             1,
			OpponentRace:      model.RaceZerg,
			Result:            model.ResultTie,
			Fitness:           []model.FitnessSample{{Tick: 0, Fitness: 4}},
			AgentFrequency:    map[string]int{"SafeRoach": 1},
			StrategyFrequency: map[string]int{"HeavyAttack": 1},
		},
	}
}

func TestAggregatorCounts(t *testing.T) {
	agg := NewAggregator("session-1", time.Unix(0, 0), 100)
	for _, game := range sampleGames() {
		agg.Add(game)
	}
	report := agg.Report()

	if len(report.Games) != 2 || agg.Games() != 2 {
		t.Fatalf("expected 2 games, got %d", len(report.Games))
	}
	if got := report.WinLoss[TotalKey]; got.Wins != 1 || got.Losses != 1 {
		t.Fatalf("unexpected total win/loss: %+v", got)
	}
	if got := report.WinLoss["Zerg"]; got.Wins != 0 || got.Losses != 1 {
		t.Fatalf("tie must count as a loss: %+v", got)
	}
	if report.StratFreq[TotalKey]["HeavyAttack"] != 2 || report.StratFreq["Terran"]["HeavyAttack"] != 1 {
		t.Fatalf("unexpected strategy counts: %+v", report.StratFreq)
	}
	if report.AgentFreq["Zerg"]["SafeRoach"] != 1 {
		t.Fatalf("unexpected agent counts: %+v", report.AgentFreq)
	}

	total := report.Curves[TotalKey]
	if len(total) != 2 || total[0].Value != 3 || total[1].Value != 6 || total[1].Tick != 100 {
		t.Fatalf("unexpected total curve: %+v", total)
	}
	if report.StartedAt != "1970-01-01T00:00:00Z" {
		t.Fatalf("unexpected start time: %s", report.StartedAt)
	}
}

func TestAggregatorReportIsACopy(t *testing.T) {
	agg := NewAggregator("session-1", time.Now(), 100)
	agg.Add(sampleGames()[0])
	report := agg.Report()
	report.AgentFreq[TotalKey]["Mutalisk"] = 99
	if agg.Report().AgentFreq[TotalKey]["Mutalisk"] != 2 {
		t.Fatal("report aliased aggregator state")
	}
}

func TestWriteArtifacts(t *testing.T) {
	agg := NewAggregator("session-1", time.Now(), 100)
	for _, game := range sampleGames() {
		agg.Add(game)
	}
	agg.MarkInterrupted()
	base := t.TempDir()

	runDir, err := WriteArtifacts(base, agg.Report())
	if err != nil {
		t.Fatalf("write artifacts: %v", err)
	}
	for _, name := range []string{"session.json", "fitness.csv", "frequency.csv", "winloss.csv", "curves.dat"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}

	file, err := os.Open(filepath.Join(runDir, "fitness.csv"))
	if err != nil {
		t.Fatalf("open fitness.csv: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read fitness.csv: %v", err)
	}
	if len(rows) != 4 || rows[2][3] != "100" || rows[2][4] != "6" {
		t.Fatalf("unexpected fitness rows: %+v", rows)
	}

	curves, err := os.ReadFile(filepath.Join(runDir, "curves.dat"))
	if err != nil {
		t.Fatalf("read curves: %v", err)
	}
	if !strings.Contains(string(curves), "#Avg Fitness Vs Tick, Opponent:Terran Games:1") {
		t.Fatalf("missing terran curve header:\n%s", curves)
	}

	loaded, ok, err := ReadSessionReport(base, "session-1")
	if err != nil || !ok {
		t.Fatalf("read report: ok=%t err=%v", ok, err)
	}
	if !loaded.Interrupted || len(loaded.Games) != 2 {
		t.Fatalf("unexpected loaded report: %+v", loaded)
	}
}
