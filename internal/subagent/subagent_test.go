package subagent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogSizes(t *testing.T) {
	require.Len(t, IDs(), 4)
	require.Len(t, Strategies(), 11)
	require.Equal(t, []string{"Mutalisk", "ZerglingBanelingRush", "SafeRoach", "Dumb"}, IdleCatalog().Names())
}

func TestDisplayNamesRoundTrip(t *testing.T) {
	for _, id := range IDs() {
		parsed, err := ParseID(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	}
	for _, s := range Strategies() {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		require.Equal(t, s, parsed)
	}
	_, err := ParseID("Zeratul")
	require.Error(t, err)
	require.Equal(t, "Strategy(42)", Strategy(42).String())
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog(NewIdle(Mutalisk), NewIdle(Mutalisk))
	require.Error(t, err)
	_, err = NewCatalog()
	require.Error(t, err)
}

func TestCatalogAt(t *testing.T) {
	c := IdleCatalog()
	agent, err := c.At(2)
	require.NoError(t, err)
	require.Equal(t, SafeRoach, agent.ID())
	_, err = c.At(4)
	require.Error(t, err)
}

func TestDirectiveAgentPostsChoice(t *testing.T) {
	board := &DirectiveBoard{}
	_, ok := board.Latest()
	require.False(t, ok)

	c := DirectiveCatalog(board)
	agent, err := c.At(1)
	require.NoError(t, err)
	require.NoError(t, agent.Step(context.Background(), 300, HeavyHarass))

	d, ok := board.Latest()
	require.True(t, ok)
	require.Equal(t, Directive{Tick: 300, Agent: "ZerglingBanelingRush", Strategy: "HeavyHarass"}, d)
}
