package ws

import (
	"overmind/internal/model"
	"overmind/internal/subagent"
)

const (
	TypeHello     = "HELLO"
	TypeWelcome   = "WELCOME"
	TypeObs       = "OBS"
	TypeEnd       = "END"
	TypeDirective = "DIRECTIVE"

	ProtocolVersion = 1
)

// Message is the single envelope used in both directions. Which fields are
// set depends on Type.
type Message struct {
	Type            string `json:"type"`
	ProtocolVersion int    `json:"protocol_version,omitempty"`

	// HELLO / WELCOME
	GameID       string           `json:"game_id,omitempty"`
	Map          string           `json:"map,omitempty"`
	OwnRace      model.Race       `json:"own_race,omitempty"`
	OpponentRace model.Race       `json:"opponent_race,omitempty"`
	Difficulty   model.Difficulty `json:"difficulty,omitempty"`

	// OBS
	Snapshot *model.Snapshot `json:"snapshot,omitempty"`

	// END
	Result model.Result `json:"result,omitempty"`

	// DIRECTIVE
	Directive *subagent.Directive `json:"directive,omitempty"`
}
