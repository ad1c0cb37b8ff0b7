package selector

import (
	"fmt"
	"math/rand"

	"overmind/internal/nn"
	"overmind/internal/outcome"
)

type Options struct {
	Agents       int
	Strategies   int
	Hidden       int
	LearningRate float64
	Seed         int64
}

// Pair chains the agent network into the strategy network and keeps the
// lagged decision state one window of credit assignment needs.
type Pair struct {
	opts Options
	rng  *rand.Rand

	agent    *Network
	strategy *Network

	featureLen   int
	prevFeatures []float64
	curAgent     int
	prevAgent    int
	curStrategy  int
	prevStrategy int
	windows      int
}

func NewPair(opts Options) (*Pair, error) {
	if opts.Agents <= 0 || opts.Strategies <= 0 {
		return nil, fmt.Errorf("option counts must be positive: agents=%d strategies=%d", opts.Agents, opts.Strategies)
	}
	if opts.Hidden <= 0 {
		opts.Hidden = DefaultHidden
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = DefaultLearningRate
	}
	return &Pair{opts: opts, rng: rand.New(rand.NewSource(opts.Seed))}, nil
}

// Init builds both networks once the feature length is known. Previous
// features start zeroed and previous choices start at index 0; the current
// choices are drawn from the seeded source.
func (p *Pair) Init(featureLen int) error {
	if featureLen <= 0 {
		return fmt.Errorf("%w: feature length %d", ErrInputSize, featureLen)
	}
	agent, err := NewNetwork(NetworkConfig{
		Inputs:       featureLen + p.opts.Agents + p.opts.Strategies,
		Hidden:       p.opts.Hidden,
		Outputs:      p.opts.Agents,
		LearningRate: p.opts.LearningRate,
		Rand:         p.rng,
	})
	if err != nil {
		return fmt.Errorf("agent network: %w", err)
	}
	strategy, err := NewNetwork(NetworkConfig{
		Inputs:       featureLen + 2*p.opts.Agents + p.opts.Strategies,
		Hidden:       p.opts.Hidden,
		Outputs:      p.opts.Strategies,
		LearningRate: p.opts.LearningRate,
		Rand:         p.rng,
	})
	if err != nil {
		return fmt.Errorf("strategy network: %w", err)
	}
	p.agent = agent
	p.strategy = strategy
	p.featureLen = featureLen
	p.prevFeatures = make([]float64, featureLen)
	p.prevAgent = 0
	p.prevStrategy = 0
	p.curAgent = p.rng.Intn(p.opts.Agents)
	p.curStrategy = p.rng.Intn(p.opts.Strategies)
	p.windows = 0
	return nil
}

func (p *Pair) Ready() bool {
	return p.agent != nil && p.strategy != nil
}

func (p *Pair) AgentNetwork() *Network    { return p.agent }
func (p *Pair) StrategyNetwork() *Network { return p.strategy }
func (p *Pair) FeatureLen() int           { return p.featureLen }

// Current returns the active agent and strategy indices.
func (p *Pair) Current() (agent, strategy int) {
	return p.curAgent, p.curStrategy
}

// Previous returns the choices that were active before the last Select.
func (p *Pair) Previous() (agent, strategy int) {
	return p.prevAgent, p.prevStrategy
}

// Windows counts completed Learn steps since Init or the restored count.
func (p *Pair) Windows() int {
	return p.windows
}

// Learn runs one training step on each network, agent first. Inputs are the
// features and choices the last Select saw; targets are the choices it made.
func (p *Pair) Learn(label outcome.Label) error {
	if !p.Ready() {
		return ErrNotInitialized
	}
	prevAgent, err := nn.OneHot(p.opts.Agents, p.prevAgent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputSize, err)
	}
	prevStrategy, err := nn.OneHot(p.opts.Strategies, p.prevStrategy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputSize, err)
	}
	curAgent, err := nn.OneHot(p.opts.Agents, p.curAgent)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputSize, err)
	}

	agentTarget, err := Target(p.opts.Agents, p.curAgent, label)
	if err != nil {
		return err
	}
	if err := p.agent.Train(nn.Concat(p.prevFeatures, prevAgent, prevStrategy), agentTarget); err != nil {
		return fmt.Errorf("train agent network: %w", err)
	}

	strategyTarget, err := Target(p.opts.Strategies, p.curStrategy, label)
	if err != nil {
		return err
	}
	if err := p.strategy.Train(nn.Concat(p.prevFeatures, curAgent, prevAgent, prevStrategy), strategyTarget); err != nil {
		return fmt.Errorf("train strategy network: %w", err)
	}
	p.windows++
	return nil
}

// Select picks the next agent, then the next strategy given that agent, and
// shifts the current choices into the previous slot.
func (p *Pair) Select(features []float64) (agent, strategy int, err error) {
	if !p.Ready() {
		return 0, 0, ErrNotInitialized
	}
	if len(features) != p.featureLen {
		return 0, 0, fmt.Errorf("%w: features got=%d want=%d", ErrInputSize, len(features), p.featureLen)
	}
	curAgent, err := nn.OneHot(p.opts.Agents, p.curAgent)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInputSize, err)
	}
	curStrategy, err := nn.OneHot(p.opts.Strategies, p.curStrategy)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrInputSize, err)
	}

	nextAgent, err := p.agent.Select(nn.Concat(features, curAgent, curStrategy))
	if err != nil {
		return 0, 0, fmt.Errorf("select agent: %w", err)
	}
	predicted, err := nn.OneHot(p.opts.Agents, nextAgent)
	if err != nil {
		return 0, 0, err
	}
	nextStrategy, err := p.strategy.Select(nn.Concat(features, predicted, curAgent, curStrategy))
	if err != nil {
		return 0, 0, fmt.Errorf("select strategy: %w", err)
	}

	p.prevAgent, p.curAgent = p.curAgent, nextAgent
	p.prevStrategy, p.curStrategy = p.curStrategy, nextStrategy
	p.prevFeatures = append(p.prevFeatures[:0], features...)
	return nextAgent, nextStrategy, nil
}
