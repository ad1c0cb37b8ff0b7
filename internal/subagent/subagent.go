// Package subagent enumerates the behavior modules the arbiter chooses
// between and the strategy parameter handed to them every tick.
package subagent

import (
	"context"
	"fmt"
	"strings"
)

type ID int

const (
	Mutalisk ID = iota
	ZerglingBanelingRush
	SafeRoach
	Dumb
	idCount
)

var idNames = [...]string{"Mutalisk", "ZerglingBanelingRush", "SafeRoach", "Dumb"}

func (id ID) String() string {
	if id < 0 || id >= idCount {
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return idNames[id]
}

// IDs lists every sub-agent in catalog order.
func IDs() []ID {
	out := make([]ID, 0, idCount)
	for id := ID(0); id < idCount; id++ {
		out = append(out, id)
	}
	return out
}

func ParseID(s string) (ID, error) {
	for id := ID(0); id < idCount; id++ {
		if strings.EqualFold(idNames[id], strings.TrimSpace(s)) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown sub-agent: %q", s)
}

type Strategy int

const (
	HeavyAttack Strategy = iota
	MediumAttack
	LightAttack
	HeavyScouting
	MediumScouting
	LightScouting
	HeavyDefense
	MediumDefense
	LightDefense
	HeavyHarass
	MediumHarass
	strategyCount
)

var strategyNames = [...]string{
	"HeavyAttack", "MediumAttack", "LightAttack",
	"HeavyScouting", "MediumScouting", "LightScouting",
	"HeavyDefense", "MediumDefense", "LightDefense",
	"HeavyHarass", "MediumHarass",
}

func (s Strategy) String() string {
	if s < 0 || s >= strategyCount {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

func Strategies() []Strategy {
	out := make([]Strategy, 0, strategyCount)
	for s := Strategy(0); s < strategyCount; s++ {
		out = append(out, s)
	}
	return out
}

func ParseStrategy(s string) (Strategy, error) {
	for st := Strategy(0); st < strategyCount; st++ {
		if strings.EqualFold(strategyNames[st], strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy: %q", s)
}

// SubAgent is one opaque behavior module. Step runs once per engine tick
// while the module is active; command failures stay inside the module.
type SubAgent interface {
	ID() ID
	Step(ctx context.Context, tick int, strategy Strategy) error
}
