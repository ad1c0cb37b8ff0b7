package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"overmind/internal/model"
)

// WriteArtifacts writes the report under baseDir/<report id> and returns
// that directory:
//
//	session.json   the full report
//	fitness.csv    one row per decision window per game
//	frequency.csv  agent and strategy selection counts per race
//	winloss.csv    wins and losses per race
//	curves.dat     averaged fitness per window with spread, per race
func WriteArtifacts(baseDir string, report model.SessionReport) (string, error) {
	if report.ID == "" {
		return "", fmt.Errorf("session report id is required")
	}
	runDir := filepath.Join(baseDir, report.ID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "session.json"), report); err != nil {
		return "", err
	}
	if err := writeFitnessCSV(filepath.Join(runDir, "fitness.csv"), report.Games); err != nil {
		return "", err
	}
	if err := writeFrequencyCSV(filepath.Join(runDir, "frequency.csv"), report); err != nil {
		return "", err
	}
	if err := writeWinLossCSV(filepath.Join(runDir, "winloss.csv"), report.WinLoss); err != nil {
		return "", err
	}
	if err := writeCurves(filepath.Join(runDir, "curves.dat"), report); err != nil {
		return "", err
	}
	return runDir, nil
}

// ReadSessionReport loads session.json back from an artifact directory.
func ReadSessionReport(baseDir, id string) (model.SessionReport, bool, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, id, "session.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return model.SessionReport{}, false, nil
		}
		return model.SessionReport{}, false, err
	}
	var report model.SessionReport
	if err := json.Unmarshal(data, &report); err != nil {
		return model.SessionReport{}, false, err
	}
	return report, true, nil
}

func writeFitnessCSV(path string, games []model.GameHistory) error {
	return writeCSV(path, []string{"game_id", "game", "opponent_race", "tick", "fitness"}, func(w *csv.Writer) error {
		for _, game := range games {
			for _, sample := range game.Fitness {
				if err := w.Write([]string{
					game.GameID,
					strconv.Itoa(game.Index),
					game.OpponentRace.String(),
					strconv.Itoa(sample.Tick),
					strconv.FormatFloat(sample.Fitness, 'f', -1, 64),
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func writeFrequencyCSV(path string, report model.SessionReport) error {
	return writeCSV(path, []string{"scope", "kind", "name", "count"}, func(w *csv.Writer) error {
		for _, group := range []struct {
			kind   string
			counts map[string]map[string]int
		}{
			{kind: "agent", counts: report.AgentFreq},
			{kind: "strategy", counts: report.StratFreq},
		} {
			for _, scope := range sortedKeys(group.counts) {
				names := make([]string, 0, len(group.counts[scope]))
				for name := range group.counts[scope] {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					if err := w.Write([]string{scope, group.kind, name, strconv.Itoa(group.counts[scope][name])}); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

func writeWinLossCSV(path string, winLoss map[string]model.WinLoss) error {
	return writeCSV(path, []string{"scope", "wins", "losses"}, func(w *csv.Writer) error {
		for _, scope := range sortedKeys(winLoss) {
			wl := winLoss[scope]
			if err := w.Write([]string{scope, strconv.Itoa(wl.Wins), strconv.Itoa(wl.Losses)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCurves(path string, report model.SessionReport) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	lists := groupFitness(report.Games)
	for i, scope := range sortedKeys(lists) {
		if i > 0 {
			if _, err := fmt.Fprint(file, "\n\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(file, "#Avg Fitness Vs Tick, Opponent:%s Games:%d\n", scope, len(lists[scope])); err != nil {
			return err
		}
		points := report.Curves[scope]
		spread := CurveSpread(lists[scope])
		for j := 0; j < len(points) && j < len(spread); j++ {
			if _, err := fmt.Fprintf(file, "%d %g %g\n", points[j].Tick, points[j].Value, spread[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCSV(path string, header []string, rows func(*csv.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := rows(writer); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
