package subagent

import (
	"context"
	"fmt"
	"sync"
)

// Catalog is the ordered, session-constant menu of sub-agents. Index i of
// the agent network output selects Agents()[i].
type Catalog struct {
	agents []SubAgent
}

func NewCatalog(agents ...SubAgent) (*Catalog, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("catalog needs at least one sub-agent")
	}
	seen := make(map[ID]struct{}, len(agents))
	for i, agent := range agents {
		if agent == nil {
			return nil, fmt.Errorf("sub-agent %d is nil", i)
		}
		if _, dup := seen[agent.ID()]; dup {
			return nil, fmt.Errorf("duplicate sub-agent %s", agent.ID())
		}
		seen[agent.ID()] = struct{}{}
	}
	return &Catalog{agents: append([]SubAgent(nil), agents...)}, nil
}

// IdleCatalog registers a no-op module for every known ID.
func IdleCatalog() *Catalog {
	agents := make([]SubAgent, 0, idCount)
	for _, id := range IDs() {
		agents = append(agents, NewIdle(id))
	}
	return &Catalog{agents: agents}
}

func (c *Catalog) Len() int {
	return len(c.agents)
}

func (c *Catalog) At(index int) (SubAgent, error) {
	if index < 0 || index >= len(c.agents) {
		return nil, fmt.Errorf("sub-agent index out of range: index=%d size=%d", index, len(c.agents))
	}
	return c.agents[index], nil
}

// Names returns display names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.agents))
	for i, agent := range c.agents {
		out[i] = agent.ID().String()
	}
	return out
}

// Idle does nothing but count its steps.
type Idle struct {
	id ID

	mu    sync.Mutex
	steps int
}

func NewIdle(id ID) *Idle {
	return &Idle{id: id}
}

func (a *Idle) ID() ID { return a.id }

func (a *Idle) Step(_ context.Context, _ int, _ Strategy) error {
	a.mu.Lock()
	a.steps++
	a.mu.Unlock()
	return nil
}

func (a *Idle) Steps() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.steps
}
