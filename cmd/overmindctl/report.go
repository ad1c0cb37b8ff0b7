package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"overmind/internal/config"
	"overmind/internal/model"
	"overmind/internal/stats"
	"overmind/internal/storage"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [session-id]",
		Short: "List session reports, or summarize one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.load(cmd, nil)
			if err != nil {
				return err
			}
			return openStore(cmd, cfg.Store, func(store storage.Store) error {
				if len(args) == 0 {
					return a.listReports(cmd, store)
				}
				report, ok, err := store.GetSessionReport(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					// Sessions played against a memory store only left artifacts.
					report, ok, err = stats.ReadSessionReport(cfg.Artifacts.Dir, args[0])
					if err != nil {
						return err
					}
				}
				if !ok {
					return fmt.Errorf("session report not found: %s", args[0])
				}
				a.printReport(report)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&a.opts.artifactsDir, "artifacts-dir", config.Default().Artifacts.Dir, "artifact directory searched when the store has no such report")
	return cmd
}

func (a *app) listReports(cmd *cobra.Command, store storage.Store) error {
	ids, err := store.ListSessionReports(cmd.Context())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.stdout, "no session reports stored")
		return nil
	}
	for _, id := range ids {
		report, ok, err := store.GetSessionReport(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("%s: %w", id, err)
		}
		if !ok {
			continue
		}
		total := report.WinLoss[stats.TotalKey]
		fmt.Fprintf(a.stdout, "%s  %-14s games=%d wins=%d losses=%d\n",
			id, startedAgo(report.StartedAt), len(report.Games), total.Wins, total.Losses)
	}
	return nil
}

func (a *app) printReport(report model.SessionReport) {
	printSessionSummary(a.stdout, report)
	fmt.Fprintf(a.stdout, "started %s\n", startedAgo(report.StartedAt))
	for _, key := range winLossKeys(report.WinLoss) {
		if agents := report.AgentFreq[key]; len(agents) > 0 {
			fmt.Fprintf(a.stdout, "agents vs %s: %s\n", key, formatCounts(agents))
		}
		if strategies := report.StratFreq[key]; len(strategies) > 0 {
			fmt.Fprintf(a.stdout, "strategies vs %s: %s\n", key, formatCounts(strategies))
		}
	}
	for _, key := range winLossKeys(report.WinLoss) {
		curve := report.Curves[key]
		if len(curve) == 0 {
			continue
		}
		last := curve[len(curve)-1]
		fmt.Fprintf(a.stdout, "fitness vs %s: %d windows, final avg %.2f at tick %s\n",
			key, len(curve), last.Value, humanize.Comma(int64(last.Tick)))
	}
}

func startedAgo(startedAt string) string {
	t, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return startedAt
	}
	return humanize.Time(t)
}

// formatCounts orders by count, then name.
func formatCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", name, counts[name])
	}
	return out
}
