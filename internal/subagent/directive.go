package subagent

import (
	"context"
	"sync"
)

// Directive is the choice a remote engine should act on.
type Directive struct {
	Tick     int    `json:"tick"`
	Agent    string `json:"agent"`
	Strategy string `json:"strategy"`
}

// DirectiveBoard holds the latest directive written by any Directive module.
type DirectiveBoard struct {
	mu     sync.Mutex
	latest Directive
	set    bool
}

func (b *DirectiveBoard) Latest() (Directive, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.set
}

func (b *DirectiveBoard) post(d Directive) {
	b.mu.Lock()
	b.latest = d
	b.set = true
	b.mu.Unlock()
}

// DirectiveAgent forwards its identity and the strategy onto a board instead
// of issuing commands itself; the remote engine runs the actual build.
type DirectiveAgent struct {
	id    ID
	board *DirectiveBoard
}

func NewDirectiveAgent(id ID, board *DirectiveBoard) *DirectiveAgent {
	return &DirectiveAgent{id: id, board: board}
}

func (a *DirectiveAgent) ID() ID { return a.id }

func (a *DirectiveAgent) Step(_ context.Context, tick int, strategy Strategy) error {
	a.board.post(Directive{Tick: tick, Agent: a.id.String(), Strategy: strategy.String()})
	return nil
}

// DirectiveCatalog registers a directive module for every known ID.
func DirectiveCatalog(board *DirectiveBoard) *Catalog {
	agents := make([]SubAgent, 0, idCount)
	for _, id := range IDs() {
		agents = append(agents, NewDirectiveAgent(id, board))
	}
	return &Catalog{agents: agents}
}
