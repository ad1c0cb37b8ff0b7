package selector

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"overmind/internal/model"
)

// WeightStore is the slice of storage.Store the selector persists through.
type WeightStore interface {
	SaveWeights(ctx context.Context, record model.WeightRecord) error
	GetWeights(ctx context.Context, key model.WeightKey) (model.WeightRecord, bool, error)
}

// Records snapshots both networks keyed by opponent race.
func (p *Pair) Records(race model.Race) ([]model.WeightRecord, error) {
	if !p.Ready() {
		return nil, ErrNotInitialized
	}
	return []model.WeightRecord{
		record(model.RoleAgent, race, p.agent, p.windows),
		record(model.RoleStrategy, race, p.strategy, p.windows),
	}, nil
}

func record(role model.Role, race model.Race, n *Network, windows int) model.WeightRecord {
	return model.WeightRecord{
		Key:     model.WeightKey{Role: role, Race: race},
		Inputs:  n.Inputs(),
		Hidden:  n.Hidden(),
		Outputs: n.Outputs(),
		Windows: windows,
		Weights: n.Weights(),
	}
}

// Save writes both networks.
func (p *Pair) Save(ctx context.Context, store WeightStore, race model.Race) error {
	records, err := p.Records(race)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := store.SaveWeights(ctx, rec); err != nil {
			return fmt.Errorf("save %s weights: %w", rec.Key, err)
		}
	}
	return nil
}

// Load restores both networks for race. Missing records keep the fresh
// parameters; records whose shape no longer fits are logged and skipped.
// It reports how many networks were restored.
func (p *Pair) Load(ctx context.Context, store WeightStore, race model.Race, log zerolog.Logger) (int, error) {
	if !p.Ready() {
		return 0, ErrNotInitialized
	}
	restored := 0
	for _, target := range []struct {
		role model.Role
		net  *Network
	}{
		{role: model.RoleAgent, net: p.agent},
		{role: model.RoleStrategy, net: p.strategy},
	} {
		key := model.WeightKey{Role: target.role, Race: race}
		rec, ok, err := store.GetWeights(ctx, key)
		if err != nil {
			return restored, fmt.Errorf("load %s weights: %w", key, err)
		}
		if !ok {
			log.Debug().Str("key", key.String()).Msg("no stored weights, using fresh parameters")
			continue
		}
		if rec.Inputs != target.net.Inputs() || rec.Outputs != target.net.Outputs() || rec.Hidden != target.net.Hidden() {
			log.Warn().Str("key", key.String()).
				Int("inputs", rec.Inputs).Int("want_inputs", target.net.Inputs()).
				Int("outputs", rec.Outputs).Int("want_outputs", target.net.Outputs()).
				Msg("stored weights do not fit network, ignored")
			continue
		}
		if err := target.net.SetWeights(rec.Weights); err != nil {
			if errors.Is(err, ErrWeightShape) {
				log.Warn().Err(err).Str("key", key.String()).Msg("stored weights do not fit network, ignored")
				continue
			}
			return restored, err
		}
		if rec.Windows > p.windows {
			p.windows = rec.Windows
		}
		restored++
	}
	return restored, nil
}
