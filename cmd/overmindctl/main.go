package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"overmind/internal/config"
	"overmind/internal/logging"
	"overmind/internal/model"
	"overmind/internal/session"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := &session.Interrupt{}
	go watchSignals(ctx, cancel, interrupt)

	if err := run(ctx, os.Args[1:], os.Stdout, interrupt); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// watchSignals lets the game in progress finish on the first signal and
// cancels everything on the second.
func watchSignals(ctx context.Context, cancel context.CancelFunc, interrupt *session.Interrupt) {
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		fmt.Fprintln(os.Stderr, "interrupt received, finishing current game (repeat to abort)")
		interrupt.Trigger()
	case <-ctx.Done():
		return
	}
	select {
	case <-sigs:
		cancel()
	case <-ctx.Done():
	}
}

func run(ctx context.Context, args []string, stdout io.Writer, interrupt *session.Interrupt) error {
	root := newRootCmd(&app{stdout: stdout, stderr: os.Stderr, interrupt: interrupt})
	root.SetArgs(args)
	root.SetOut(stdout)
	return root.ExecuteContext(ctx)
}

type app struct {
	stdout    io.Writer
	stderr    io.Writer
	interrupt *session.Interrupt

	configPath string
	opts       options
}

// options holds flag values. Only flags the user actually set override the
// file and environment configuration.
type options struct {
	logLevel  string
	logPretty bool
	storeKind string
	storePath string

	games        int
	ownRace      string
	opponent     string
	difficulty   string
	seed         int64
	windowTicks  int
	hidden       int
	learningRate float64

	engineKind  string
	replayDir   string
	listen      string
	wsPath      string
	recordDir   string
	readTimeout time.Duration

	artifactsDir string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "overmindctl",
		Short:         "Adaptive sub-agent arbitration for a Zerg bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaults := config.Default()
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "optional YAML config path")
	flags.StringVar(&a.opts.logLevel, "log-level", defaults.Log.Level, "log level: trace|debug|info|warn|error|disabled")
	flags.BoolVar(&a.opts.logPretty, "log-pretty", defaults.Log.Pretty, "human-readable console logs")
	flags.StringVar(&a.opts.storeKind, "store", defaults.Store.Kind, "weight store backend: memory|file|sqlite")
	flags.StringVar(&a.opts.storePath, "store-path", defaults.Store.Path, "store directory (file) or database path (sqlite)")

	root.AddCommand(
		newPlayCmd(a),
		newServeCmd(a),
		newWeightsCmd(a),
		newReportCmd(a),
	)
	return root
}

func (a *app) addSessionFlags(cmd *cobra.Command) {
	defaults := config.Default()
	flags := cmd.Flags()
	flags.IntVar(&a.opts.games, "games", defaults.Session.Games, "number of games to play")
	flags.StringVar(&a.opts.ownRace, "own-race", defaults.Session.OwnRace.String(), "own race")
	flags.StringVar(&a.opts.opponent, "opponent", defaults.Session.OpponentRace.String(), "opponent race: terran|zerg|protoss|random")
	flags.StringVar(&a.opts.difficulty, "difficulty", string(defaults.Session.Difficulty), "built-in AI difficulty")
	flags.Int64Var(&a.opts.seed, "seed", defaults.Session.Seed, "rng seed")
	flags.IntVar(&a.opts.windowTicks, "window-ticks", defaults.Selector.WindowTicks, "ticks per decision window")
	flags.IntVar(&a.opts.hidden, "hidden", defaults.Selector.Hidden, "hidden units per selector network")
	flags.Float64Var(&a.opts.learningRate, "learning-rate", defaults.Selector.LearningRate, "selector learning rate")
	flags.StringVar(&a.opts.artifactsDir, "artifacts-dir", defaults.Artifacts.Dir, "session artifact directory")
	flags.StringVar(&a.opts.recordDir, "record-dir", defaults.Engine.RecordDir, "directory for live game recordings (empty disables)")
	flags.StringVar(&a.opts.listen, "listen", defaults.Engine.Listen, "engine bridge listen address")
	flags.StringVar(&a.opts.wsPath, "path", defaults.Engine.Path, "engine bridge websocket path")
	flags.DurationVar(&a.opts.readTimeout, "read-timeout", defaults.Engine.ReadTimeout, "per-message engine read timeout")
}

// load resolves defaults, the config file, OVERMIND_* variables and changed
// flags, in that order, and builds the logger.
func (a *app) load(cmd *cobra.Command, mutate func(*config.Config)) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, zerolog.Nop(), err
	}
	if err := a.opts.apply(cmd, &cfg); err != nil {
		return cfg, zerolog.Nop(), err
	}
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, zerolog.Nop(), fmt.Errorf("invalid configuration: %w", err)
	}
	// Validate accepted it, so only the spelling can change.
	cfg.Session.Difficulty, _ = model.ParseDifficulty(string(cfg.Session.Difficulty))
	log, err := logging.New(cfg.Log.Level, a.stderr, cfg.Log.Pretty)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, log, nil
}

func (o options) apply(cmd *cobra.Command, cfg *config.Config) error {
	set := cmd.Flags().Changed

	if set("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if set("log-pretty") {
		cfg.Log.Pretty = o.logPretty
	}
	if set("store") {
		cfg.Store.Kind = o.storeKind
	}
	if set("store-path") {
		cfg.Store.Path = o.storePath
	}
	if set("games") {
		cfg.Session.Games = o.games
	}
	if set("own-race") {
		race, err := model.ParseRace(o.ownRace)
		if err != nil {
			return err
		}
		cfg.Session.OwnRace = race
	}
	if set("opponent") {
		race, err := model.ParseRace(o.opponent)
		if err != nil {
			return err
		}
		cfg.Session.OpponentRace = race
	}
	if set("difficulty") {
		difficulty, err := model.ParseDifficulty(o.difficulty)
		if err != nil {
			return err
		}
		cfg.Session.Difficulty = difficulty
	}
	if set("seed") {
		cfg.Session.Seed = o.seed
	}
	if set("window-ticks") {
		cfg.Selector.WindowTicks = o.windowTicks
	}
	if set("hidden") {
		cfg.Selector.Hidden = o.hidden
	}
	if set("learning-rate") {
		cfg.Selector.LearningRate = o.learningRate
	}
	if set("engine") {
		cfg.Engine.Kind = o.engineKind
	}
	if set("replay-dir") {
		cfg.Engine.ReplayDir = o.replayDir
	}
	if set("listen") {
		cfg.Engine.Listen = o.listen
	}
	if set("path") {
		cfg.Engine.Path = o.wsPath
	}
	if set("record-dir") {
		cfg.Engine.RecordDir = o.recordDir
	}
	if set("read-timeout") {
		cfg.Engine.ReadTimeout = o.readTimeout
	}
	if set("artifacts-dir") {
		cfg.Artifacts.Dir = o.artifactsDir
	}
	return nil
}
