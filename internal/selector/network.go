// Package selector holds the two chained option-scoring networks and the
// single-step online trainer that adapts them once per decision window.
package selector

import (
	"errors"
	"fmt"
	"math/rand"

	deep "github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"

	"overmind/internal/nn"
)

var (
	ErrNotInitialized = errors.New("selector networks not initialized")
	ErrInputSize      = errors.New("selector input size mismatch")
	ErrWeightShape    = errors.New("selector weight shape mismatch")
)

const (
	DefaultHidden       = 100
	DefaultLearningRate = 0.01
)

type NetworkConfig struct {
	Inputs       int
	Hidden       int
	Outputs      int
	LearningRate float64
	// Rand draws the initial weights. Nil falls back to go-deep's global source.
	Rand *rand.Rand
}

// Network is a single-hidden-layer regressor producing one score per option.
type Network struct {
	cfg NetworkConfig
	net *deep.Neural
}

func NewNetwork(cfg NetworkConfig) (*Network, error) {
	if cfg.Inputs <= 0 || cfg.Outputs <= 0 {
		return nil, fmt.Errorf("network sizes must be positive: inputs=%d outputs=%d", cfg.Inputs, cfg.Outputs)
	}
	if cfg.Hidden <= 0 {
		cfg.Hidden = DefaultHidden
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = DefaultLearningRate
	}
	net := deep.NewNeural(&deep.Config{
		Inputs:     cfg.Inputs,
		Layout:     []int{cfg.Hidden, cfg.Outputs},
		Activation: deep.ActivationSigmoid,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(1.0, 0.0),
		Bias:       true,
	})
	if cfg.Rand != nil {
		weights := net.Weights()
		for _, layer := range weights {
			for _, neuron := range layer {
				for i := range neuron {
					neuron[i] = cfg.Rand.NormFloat64()
				}
			}
		}
		net.ApplyWeights(weights)
	}
	return &Network{cfg: cfg, net: net}, nil
}

func (n *Network) Inputs() int  { return n.cfg.Inputs }
func (n *Network) Hidden() int  { return n.cfg.Hidden }
func (n *Network) Outputs() int { return n.cfg.Outputs }

// Scores runs a forward pass.
func (n *Network) Scores(input []float64) ([]float64, error) {
	if len(input) != n.cfg.Inputs {
		return nil, fmt.Errorf("%w: got=%d want=%d", ErrInputSize, len(input), n.cfg.Inputs)
	}
	return n.net.Predict(input), nil
}

// Select returns the highest scoring option; the lowest index wins ties.
func (n *Network) Select(input []float64) (int, error) {
	scores, err := n.Scores(input)
	if err != nil {
		return 0, err
	}
	return nn.Argmax(scores)
}

// Train applies exactly one SGD step on a single example. The trainer is
// per call; a quiet trainer's stats printer never flushes.
func (n *Network) Train(input, target []float64) error {
	if len(input) != n.cfg.Inputs {
		return fmt.Errorf("%w: got=%d want=%d", ErrInputSize, len(input), n.cfg.Inputs)
	}
	if len(target) != n.cfg.Outputs {
		return fmt.Errorf("%w: target got=%d want=%d", ErrInputSize, len(target), n.cfg.Outputs)
	}
	trainer := training.NewTrainer(training.NewSGD(n.cfg.LearningRate, 0, 0, false), 0)
	trainer.Train(n.net, training.Examples{{Input: input, Response: target}}, nil, 1)
	return nil
}

// Weights returns a deep copy of the layer weights.
func (n *Network) Weights() [][][]float64 {
	return cloneWeights(n.net.Weights())
}

// SetWeights replaces all parameters. The shape must match exactly.
func (n *Network) SetWeights(weights [][][]float64) error {
	current := n.net.Weights()
	if len(weights) != len(current) {
		return fmt.Errorf("%w: layers got=%d want=%d", ErrWeightShape, len(weights), len(current))
	}
	for l := range current {
		if len(weights[l]) != len(current[l]) {
			return fmt.Errorf("%w: layer %d neurons got=%d want=%d", ErrWeightShape, l, len(weights[l]), len(current[l]))
		}
		for j := range current[l] {
			if len(weights[l][j]) != len(current[l][j]) {
				return fmt.Errorf("%w: layer %d neuron %d synapses got=%d want=%d",
					ErrWeightShape, l, j, len(weights[l][j]), len(current[l][j]))
			}
		}
	}
	n.net.ApplyWeights(cloneWeights(weights))
	return nil
}

func cloneWeights(in [][][]float64) [][][]float64 {
	out := make([][][]float64, len(in))
	for l := range in {
		out[l] = make([][]float64, len(in[l]))
		for j := range in[l] {
			out[l][j] = append([]float64(nil), in[l][j]...)
		}
	}
	return out
}
