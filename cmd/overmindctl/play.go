package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"overmind/internal/config"
	"overmind/internal/engine"
	"overmind/internal/model"
	"overmind/internal/session"
	"overmind/internal/stats"
	"overmind/internal/storage"
	"overmind/internal/subagent"
	"overmind/internal/transport/ws"
)

func newPlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a session against recorded games or a connected engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := a.load(cmd, nil)
			if err != nil {
				return err
			}
			return a.playSession(cmd.Context(), cfg, log)
		},
	}
	a.addSessionFlags(cmd)
	defaults := config.Default()
	cmd.Flags().StringVar(&a.opts.engineKind, "engine", defaults.Engine.Kind, "game source: replay|ws")
	cmd.Flags().StringVar(&a.opts.replayDir, "replay-dir", defaults.Engine.ReplayDir, "directory of recorded games for the replay engine")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept engine connections over a websocket and play a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := a.load(cmd, func(cfg *config.Config) { cfg.Engine.Kind = "ws" })
			if err != nil {
				return err
			}
			return a.playSession(cmd.Context(), cfg, log)
		},
	}
	a.addSessionFlags(cmd)
	return cmd
}

func (a *app) playSession(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	store, err := storage.NewStore(cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	var (
		eng     engine.Engine
		catalog *subagent.Catalog
	)
	switch cfg.Engine.Kind {
	case "replay":
		eng = engine.NewReplay(cfg.Engine.ReplayDir, log)
		catalog = subagent.IdleCatalog()
	case "ws":
		bridge := ws.NewBridge(ws.Config{
			ReadTimeout: cfg.Engine.ReadTimeout,
			RecordDir:   cfg.Engine.RecordDir,
			Logger:      log,
		})
		stop, err := a.serveBridge(cfg.Engine, bridge, log)
		if err != nil {
			return err
		}
		defer stop()
		eng = bridge
		catalog = subagent.DirectiveCatalog(bridge.Board())
	default:
		return fmt.Errorf("unsupported engine: %s", cfg.Engine.Kind)
	}

	aggregator := stats.NewAggregator(uuid.NewString(), time.Now(), cfg.Selector.WindowTicks)
	runner, err := session.NewRunner(session.Config{
		Engine:     eng,
		Catalog:    catalog,
		Store:      store,
		Aggregator: aggregator,
		Interrupt:  a.interrupt,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	report, runErr := runner.Run(ctx, session.Plan{
		Games:        cfg.Session.Games,
		OpponentRace: cfg.Session.OpponentRace,
		OwnRace:      cfg.Session.OwnRace,
		Difficulty:   cfg.Session.Difficulty,
		Seed:         cfg.Session.Seed,
		WindowTicks:  cfg.Selector.WindowTicks,
		Hidden:       cfg.Selector.Hidden,
		LearningRate: cfg.Selector.LearningRate,
	})
	if len(report.Games) == 0 {
		return runErr
	}
	runDir, err := stats.WriteArtifacts(cfg.Artifacts.Dir, report)
	if err != nil {
		return errors.Join(runErr, fmt.Errorf("write artifacts: %w", err))
	}
	printSessionSummary(a.stdout, report)
	fmt.Fprintf(a.stdout, "artifacts: %s\n", runDir)
	return runErr
}

// serveBridge exposes the bridge handler and returns a func that stops
// accepting games and shuts the listener down.
func (a *app) serveBridge(cfg config.EngineConfig, bridge *ws.Bridge, log zerolog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.Listen, err)
	}
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, bridge.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("engine bridge server stopped")
		}
	}()
	fmt.Fprintf(a.stdout, "waiting for engine on ws://%s%s\n", ln.Addr(), cfg.Path)

	return func() {
		_ = bridge.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("engine bridge shutdown")
		}
	}, nil
}

func printSessionSummary(w io.Writer, report model.SessionReport) {
	ticks := 0
	for _, game := range report.Games {
		ticks += game.Ticks
	}
	status := "complete"
	if report.Interrupted {
		status = "interrupted"
	}
	fmt.Fprintf(w, "session %s: %d games, %s ticks (%s)\n",
		report.ID, len(report.Games), humanize.Comma(int64(ticks)), status)
	for _, key := range winLossKeys(report.WinLoss) {
		wl := report.WinLoss[key]
		fmt.Fprintf(w, "  %-8s wins=%d losses=%d\n", key, wl.Wins, wl.Losses)
	}
}

// winLossKeys puts the total first, then races in name order.
func winLossKeys(winLoss map[string]model.WinLoss) []string {
	keys := make([]string, 0, len(winLoss))
	if _, ok := winLoss[stats.TotalKey]; ok {
		keys = append(keys, stats.TotalKey)
	}
	for _, race := range []model.Race{model.RaceProtoss, model.RaceTerran, model.RaceZerg} {
		if _, ok := winLoss[race.String()]; ok {
			keys = append(keys, race.String())
		}
	}
	return keys
}
