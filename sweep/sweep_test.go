package sweep

import (
	"heaps/analyzer"
	"heaps/classifier"
	"heaps/game"
	"heaps/metrics"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustOps(t *testing.T, texts ...string) []game.Operation {
	t.Helper()
	ops, err := game.ParseOperations(texts)
	require.NoError(t, err)
	return ops
}

func TestThresholds(t *testing.T) {
	games := Thresholds(mustOps(t, "+1", "*2"), 1, 3, nil)
	require.Len(t, games, 3)
	require.Equal(t, 1, games[0].Max, "Bound should never drop below 1")
	require.Equal(t, 2, games[2].Max)
	require.Equal(t, "+1 *2 >=3", games[2].String())
}

func TestRun(t *testing.T) {
	t.Run("sweeping matches sequential analysis", func(t *testing.T) {
		games := Thresholds(mustOps(t, "+1", "*2"), 20, 40, nil)
		results := Run(games, 4)
		require.Len(t, results, len(games))

		for i, result := range results {
			require.NoError(t, result.Err)
			require.Equal(t, games[i].Threshold, result.Game.Threshold, "Results should keep input order")

			sequential := Run(games[i:i+1], 1)[0]
			require.Equal(t, sequential.Answers, result.Answers, "game %s", result.Game)
		}
	})

	t.Run("known answers for +1 *2", func(t *testing.T) {
		results := Run(Thresholds(mustOps(t, "+1", "*2"), 29, 29, nil), 2)
		require.Equal(t, analyzer.Answers{FirstMove: []int{14}, SecondMove: []int{7, 13}, EitherMove: []int{12}}, results[0].Answers)
	})

	t.Run("failures stay with their game", func(t *testing.T) {
		games := []Game{
			{Operations: mustOps(t, "*3"), Threshold: math.MaxInt, Max: 2},
			{Operations: mustOps(t, "+1"), Threshold: 5, Max: 4},
			{Operations: nil, Threshold: 5, Max: 4},
		}
		results := Run(games, 0)

		require.ErrorIs(t, results[0].Err, game.ErrArithmeticOverflow)
		require.NoError(t, results[1].Err)
		require.Equal(t, []int{3}, results[1].Answers.FirstMove)
		require.ErrorIs(t, results[2].Err, game.ErrInvalidOperation)
	})
}

func TestRunKeepsCollectorsPerGame(t *testing.T) {
	options := func(threshold, max int) []classifier.Option {
		return []classifier.Option{classifier.WithMetrics(metrics.NewCollector())}
	}
	games := Thresholds(mustOps(t, "+1", "*2"), 20, 40, options)

	parallel := Run(games, 4)
	for i, result := range parallel {
		require.NoError(t, result.Err)
		sequential := Run(games[i:i+1], 1)[0]
		require.Equal(t, sequential.Report.Metric.Classifications, result.Report.Metric.Classifications,
			"game %s should count only its own classifications", result.Game)
		require.Equal(t, sequential.Report.Metric.Applications, result.Report.Metric.Applications)
	}
}

func TestRunBoundsDescent(t *testing.T) {
	// -1 walks downward, a horizon tied to the threshold keeps each game small
	options := func(threshold, max int) []classifier.Option {
		return []classifier.Option{classifier.WithHorizon(1-threshold, threshold)}
	}
	results := Run(Thresholds(mustOps(t, "+1", "-1"), 5, 8, options), 2)
	for _, result := range results {
		require.NoError(t, result.Err)
		require.Equal(t, []int{result.Game.Threshold - 1}, result.Report.Sizes(classifier.WinIn1))
	}
}
