package config

import (
	"heaps/analyzer"
	"heaps/game"
	"heaps/meta"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reading a full game", func(t *testing.T) {
		path := writeFile(t, "operations: [\"+1\", \"*2\"]\nthreshold: 29\nmax: 28\nhorizon:\n  min: 1\n  max: 100\n")
		g, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, Game{Operations: []string{"+1", "*2"}, Threshold: 29, Max: 28, Horizon: &Horizon{Min: 1, Max: 100}}, g)
		require.Len(t, g.Options(), 1)
	})

	t.Run("keeping defaults for missing fields", func(t *testing.T) {
		path := writeFile(t, "threshold: 50\n")
		g, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, []string{"+2", "+5", "*3"}, g.Operations)
		require.Equal(t, 50, g.Threshold)
		require.Equal(t, 400, g.Max)
		require.Len(t, g.Options(), 1, "A default horizon should always be set")
	})

	t.Run("rejecting malformed yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "threshold: [1"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("reporting a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidate(t *testing.T) {
	t.Run("accepting the defaults", func(t *testing.T) {
		ops, err := Default().Validate()
		require.NoError(t, err)
		require.Len(t, ops, 3)
	})

	t.Run("rejecting bad operations", func(t *testing.T) {
		g := Default()
		g.Operations = []string{"x5"}
		_, err := g.Validate()
		require.ErrorIs(t, err, game.ErrInvalidOperation)
	})

	t.Run("reporting an empty range as invalid", func(t *testing.T) {
		g := Default()
		g.Max = 0
		_, err := g.Validate()
		require.ErrorIs(t, err, analyzer.ErrInvalidRange)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejecting bad bounds", func(t *testing.T) {
		for _, mutate := range []func(*Game){
			func(g *Game) { g.Threshold = 0 },
			func(g *Game) { g.Max = 0 },
			func(g *Game) { g.Horizon = &Horizon{Min: 10, Max: 1} },
		} {
			g := Default()
			mutate(&g)
			_, err := g.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
		}
	})
}

func TestParseEnv(t *testing.T) {
	t.Setenv("HEAPS_GOROUTINES", "")
	require.NoError(t, os.Unsetenv("HEAPS_GOROUTINES"))
	e, err := ParseEnv()
	require.NoError(t, err)
	require.Zero(t, e.Goroutines, "Unset goroutines should defer to the sweep default")

	t.Setenv("HEAPS_LOG_LEVEL", "debug")
	t.Setenv("HEAPS_GOROUTINES", "3")

	e, err = ParseEnv()
	require.NoError(t, err)
	require.Equal(t, Env{LogLevel: "debug", Goroutines: 3, OutputDir: "results"}, e)

	t.Setenv("HEAPS_GOROUTINES", "many")
	_, err = ParseEnv()
	require.Error(t, err)
}

func TestDefaultHorizon(t *testing.T) {
	t.Run("covering the range and the threshold", func(t *testing.T) {
		h := Default().DefaultHorizon()
		require.Equal(t, Horizon{Min: 1 - meta.HORIZON_MARGIN, Max: 444 + meta.HORIZON_MARGIN}, h)
	})

	t.Run("saturating near the int limit", func(t *testing.T) {
		g := Game{Threshold: math.MaxInt, Max: 10}
		require.Equal(t, math.MaxInt, g.DefaultHorizon().Max)
	})

	t.Run("file horizon wins over the default", func(t *testing.T) {
		g := Default()
		g.Horizon = &Horizon{Min: 5, Max: 6}
		require.Len(t, g.Options(), 1)
	})
}
