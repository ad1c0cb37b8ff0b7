package features

import "overmind/internal/model"

// OpponentMemory remembers the last non-empty opponent sighting so a
// momentary vision gap never collapses the opponent side to zero.
type OpponentMemory struct {
	last []model.Unit
	seen bool
}

func NewOpponentMemory() *OpponentMemory {
	return &OpponentMemory{}
}

// Observe returns the opponent units to score for this snapshot: the visible
// ones when any are visible, otherwise the last non-empty sighting.
func (m *OpponentMemory) Observe(snapshot model.Snapshot) []model.Unit {
	if len(snapshot.Enemies) > 0 {
		m.last = append(m.last[:0], snapshot.Enemies...)
		m.seen = true
		return m.last
	}
	return m.last
}

// Seen reports whether any opponent unit has ever been visible.
func (m *OpponentMemory) Seen() bool {
	return m.seen
}

func (m *OpponentMemory) Reset() {
	m.last = nil
	m.seen = false
}
