package engine

import (
	"heaps/classifier"
	"heaps/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, threshold, maxTurns int, texts ...string) *Engine {
	t.Helper()
	ops, err := game.ParseOperations(texts)
	require.NoError(t, err)
	c, err := classifier.New(game.Moves(ops), game.NewWinCondition(threshold))
	require.NoError(t, err)
	return LocalEngine([2]string{"Petya", "Vanya"}, c, maxTurns)
}

func sizes(turns []Turn) []int {
	path := []int{}
	for _, turn := range turns {
		path = append(path, turn.To)
	}
	return path
}

func TestRun(t *testing.T) {
	t.Run("second player wins from LoseIn1", func(t *testing.T) {
		e := newEngine(t, 29, 0, "+1", "*2")
		winner, turns, err := e.Run(14)
		require.NoError(t, err)
		require.Equal(t, "Vanya", winner)
		require.Equal(t, []int{15, 30}, sizes(turns), "Petya takes the first move on ties, Vanya doubles to win")
	})

	t.Run("first player wins on the second move from WinIn2", func(t *testing.T) {
		e := newEngine(t, 29, 0, "+1", "*2")
		winner, turns, err := e.Run(13)
		require.NoError(t, err)
		require.Equal(t, "Petya", winner)
		require.Equal(t, []int{14, 15, 30}, sizes(turns))
		require.Equal(t, classifier.LoseIn1, turns[0].Type)
		require.Equal(t, "+1", turns[0].Move.String())
	})

	t.Run("second player wins within two moves from LoseIn2", func(t *testing.T) {
		e := newEngine(t, 29, 0, "+1", "*2")
		winner, turns, err := e.Run(12)
		require.NoError(t, err)
		require.Equal(t, "Vanya", winner)
		require.LessOrEqual(t, len(turns), 4)
	})

	t.Run("stopping at the turn limit", func(t *testing.T) {
		e := newEngine(t, 10, 6, "+0")
		winner, turns, err := e.Run(1)
		require.NoError(t, err)
		require.Empty(t, winner)
		require.Len(t, turns, 6)
	})

	t.Run("rejecting a finished game", func(t *testing.T) {
		e := newEngine(t, 10, 0, "+1")
		_, _, err := e.Run(10)
		require.Error(t, err)
	})
}
