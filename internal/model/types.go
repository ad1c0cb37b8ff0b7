package model

import (
	"fmt"
	"strings"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Race follows the engine's numbering so recorded games and live bridges agree.
type Race int

const (
	RaceNone    Race = 0
	RaceTerran  Race = 1
	RaceZerg    Race = 2
	RaceProtoss Race = 3
	RaceRandom  Race = 4
)

// PlayableRaces are the concrete races an opponent can resolve to.
var PlayableRaces = []Race{RaceTerran, RaceZerg, RaceProtoss}

func (r Race) String() string {
	switch r {
	case RaceTerran:
		return "Terran"
	case RaceZerg:
		return "Zerg"
	case RaceProtoss:
		return "Protoss"
	case RaceRandom:
		return "Random"
	default:
		return "None"
	}
}

// Playable reports whether r is a concrete race with a unit taxonomy.
func (r Race) Playable() bool {
	return r == RaceTerran || r == RaceZerg || r == RaceProtoss
}

func ParseRace(s string) (Race, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "terran", "t":
		return RaceTerran, nil
	case "zerg", "z":
		return RaceZerg, nil
	case "protoss", "p":
		return RaceProtoss, nil
	case "random", "r", "":
		return RaceRandom, nil
	case "none":
		return RaceNone, nil
	default:
		return RaceNone, fmt.Errorf("unknown race: %q (want terran|zerg|protoss|random)", s)
	}
}

func (r Race) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Race) UnmarshalText(text []byte) error {
	parsed, err := ParseRace(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type Difficulty string

const (
	DifficultyVeryEasy    Difficulty = "VeryEasy"
	DifficultyEasy        Difficulty = "Easy"
	DifficultyMedium      Difficulty = "Medium"
	DifficultyMediumHard  Difficulty = "MediumHard"
	DifficultyHard        Difficulty = "Hard"
	DifficultyHarder      Difficulty = "Harder"
	DifficultyVeryHard    Difficulty = "VeryHard"
	DifficultyCheatVision Difficulty = "CheatVision"
	DifficultyCheatMoney  Difficulty = "CheatMoney"
	DifficultyCheatInsane Difficulty = "CheatInsane"
)

var difficulties = []Difficulty{
	DifficultyVeryEasy, DifficultyEasy, DifficultyMedium, DifficultyMediumHard, DifficultyHard,
	DifficultyHarder, DifficultyVeryHard, DifficultyCheatVision, DifficultyCheatMoney, DifficultyCheatInsane,
}

// ParseDifficulty matches case-insensitively; empty means Medium.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DifficultyMedium, nil
	}
	for _, d := range difficulties {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty: %q", s)
}

type Result string

const (
	ResultVictory   Result = "Victory"
	ResultDefeat    Result = "Defeat"
	ResultTie       Result = "Tie"
	ResultUndecided Result = "Undecided"
)

// Unit is one entry of an engine unit list. Harvester fields are only
// meaningful on town halls and gas buildings.
type Unit struct {
	Name               string `json:"name"`
	Ready              bool   `json:"ready,omitempty"`
	Idle               bool   `json:"idle,omitempty"`
	AssignedHarvesters int    `json:"assigned_harvesters,omitempty"`
	IdealHarvesters    int    `json:"ideal_harvesters,omitempty"`
}

// Snapshot is the engine's read-only view of one tick.
type Snapshot struct {
	Tick      int     `json:"tick"`
	Units     []Unit  `json:"units"`
	Enemies   []Unit  `json:"enemies,omitempty"`
	Minerals  float64 `json:"minerals"`
	Vespene   float64 `json:"vespene"`
	SupplyCap int     `json:"supply_cap,omitempty"`
	SupplyUse int     `json:"supply_used,omitempty"`
}

type Role string

const (
	RoleAgent    Role = "agent"
	RoleStrategy Role = "strategy"
)

// WeightKey addresses one persisted selector network.
type WeightKey struct {
	Role Role `json:"role"`
	Race Race `json:"race"`
}

func (k WeightKey) String() string {
	return string(k.Role) + "/" + k.Race.String()
}

type WeightRecord struct {
	VersionedRecord
	Key     WeightKey     `json:"key"`
	Inputs  int           `json:"inputs"`
	Hidden  int           `json:"hidden"`
	Outputs int           `json:"outputs"`
	Windows int           `json:"windows"`
	Weights [][][]float64 `json:"weights"`
}

type FitnessSample struct {
	Tick    int     `json:"tick"`
	Fitness float64 `json:"fitness"`
}

// GameHistory is what a single game hands to the reporting side.
type GameHistory struct {
	GameID            string          `json:"game_id"`
	Index             int             `json:"index"`
	OpponentRace      Race            `json:"opponent_race"`
	Difficulty        Difficulty      `json:"difficulty,omitempty"`
	Result            Result          `json:"result"`
	Ticks             int             `json:"ticks"`
	Fitness           []FitnessSample `json:"fitness"`
	AgentFrequency    map[string]int  `json:"agent_frequency"`
	StrategyFrequency map[string]int  `json:"strategy_frequency"`
}

type WinLoss struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

type SessionReport struct {
	VersionedRecord
	ID          string                    `json:"id"`
	StartedAt   string                    `json:"started_at"`
	Interrupted bool                      `json:"interrupted,omitempty"`
	Games       []GameHistory             `json:"games"`
	WinLoss     map[string]WinLoss        `json:"win_loss"`
	AgentFreq   map[string]map[string]int `json:"agent_frequency"`
	StratFreq   map[string]map[string]int `json:"strategy_frequency"`
	Curves      map[string][]CurvePoint   `json:"curves,omitempty"`
}

// CurvePoint is one point on an averaged fitness curve.
type CurvePoint struct {
	Tick  int     `json:"tick"`
	Value float64 `json:"value"`
}
