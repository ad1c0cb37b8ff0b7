package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"overmind/internal/config"
	"overmind/internal/model"
	"overmind/internal/storage"
)

func newWeightsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Inspect or reset persisted selector weights",
	}
	cmd.AddCommand(newWeightsListCmd(a), newWeightsShowCmd(a), newWeightsResetCmd(a))
	return cmd
}

func newWeightsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted weight records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(cmd, func(store storage.Store) error {
				keys, err := store.ListWeights(cmd.Context())
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					fmt.Fprintln(a.stdout, "no weights stored")
					return nil
				}
				for _, key := range keys {
					record, ok, err := store.GetWeights(cmd.Context(), key)
					if err != nil {
						return fmt.Errorf("%s: %w", key, err)
					}
					if !ok {
						continue
					}
					fmt.Fprintf(a.stdout, "%-18s shape=%dx%dx%d windows=%s params=%s\n",
						key, record.Inputs, record.Hidden, record.Outputs,
						humanize.Comma(int64(record.Windows)), humanize.Comma(int64(paramCount(record.Weights))))
				}
				return nil
			})
		},
	}
}

func newWeightsShowCmd(a *app) *cobra.Command {
	var role, race string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one weight record's shape and layer statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := parseWeightKey(role, race)
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(store storage.Store) error {
				record, ok, err := store.GetWeights(cmd.Context(), key)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no weights stored for %s", key)
				}
				fmt.Fprintf(a.stdout, "key=%s schema=%d codec=%d\n", record.Key, record.SchemaVersion, record.CodecVersion)
				fmt.Fprintf(a.stdout, "inputs=%d hidden=%d outputs=%d windows=%d\n",
					record.Inputs, record.Hidden, record.Outputs, record.Windows)
				for i, layer := range record.Weights {
					fanIn := 0
					if len(layer) > 0 {
						fanIn = len(layer[0])
					}
					lo, hi := weightRange(layer)
					fmt.Fprintf(a.stdout, "layer %d: %d neurons x %d weights min=%.4f max=%.4f\n", i, len(layer), fanIn, lo, hi)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", string(model.RoleAgent), "network role: agent|strategy")
	cmd.Flags().StringVar(&race, "race", "", "opponent race: terran|zerg|protoss")
	_ = cmd.MarkFlagRequired("race")
	return cmd
}

func newWeightsResetCmd(a *app) *cobra.Command {
	var role, race string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete persisted weights, optionally filtered by role and race",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := model.WeightKey{}
			if role != "" {
				parsed, err := parseRole(role)
				if err != nil {
					return err
				}
				filter.Role = parsed
			}
			if race != "" {
				parsed, err := parsePlayableRace(race)
				if err != nil {
					return err
				}
				filter.Race = parsed
			}
			return a.withStore(cmd, func(store storage.Store) error {
				keys, err := store.ListWeights(cmd.Context())
				if err != nil {
					return err
				}
				removed := 0
				for _, key := range keys {
					if filter.Role != "" && key.Role != filter.Role {
						continue
					}
					if filter.Race != model.RaceNone && key.Race != filter.Race {
						continue
					}
					if err := store.DeleteWeights(cmd.Context(), key); err != nil {
						return fmt.Errorf("%s: %w", key, err)
					}
					removed++
				}
				fmt.Fprintf(a.stdout, "removed %d weight records\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "only this role: agent|strategy")
	cmd.Flags().StringVar(&race, "race", "", "only this opponent race")
	return cmd
}

// withStore opens and initializes the configured store for one command.
func (a *app) withStore(cmd *cobra.Command, fn func(storage.Store) error) error {
	cfg, _, err := a.load(cmd, nil)
	if err != nil {
		return err
	}
	return openStore(cmd, cfg.Store, fn)
}

func openStore(cmd *cobra.Command, cfg config.StoreConfig, fn func(storage.Store) error) error {
	store, err := storage.NewStore(cfg.Kind, cfg.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()
	if err := store.Init(cmd.Context()); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	return fn(store)
}

func parseWeightKey(role, race string) (model.WeightKey, error) {
	parsedRole, err := parseRole(role)
	if err != nil {
		return model.WeightKey{}, err
	}
	parsedRace, err := parsePlayableRace(race)
	if err != nil {
		return model.WeightKey{}, err
	}
	return model.WeightKey{Role: parsedRole, Race: parsedRace}, nil
}

func parseRole(s string) (model.Role, error) {
	switch model.Role(s) {
	case model.RoleAgent, model.RoleStrategy:
		return model.Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q (want agent|strategy)", s)
	}
}

func parsePlayableRace(s string) (model.Race, error) {
	race, err := model.ParseRace(s)
	if err != nil {
		return model.RaceNone, err
	}
	if !race.Playable() {
		return model.RaceNone, fmt.Errorf("weights are stored per concrete race, got %s", race)
	}
	return race, nil
}

func paramCount(weights [][][]float64) int {
	n := 0
	for _, layer := range weights {
		for _, neuron := range layer {
			n += len(neuron)
		}
	}
	return n
}

func weightRange(layer [][]float64) (lo, hi float64) {
	first := true
	for _, neuron := range layer {
		for _, w := range neuron {
			if first || w < lo {
				lo = w
			}
			if first || w > hi {
				hi = w
			}
			first = false
		}
	}
	return lo, hi
}
