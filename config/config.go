package config

import (
	"errors"
	"fmt"
	"heaps/analyzer"
	"heaps/classifier"
	"heaps/game"
	"heaps/meta"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Game describes one game as read from a YAML file:
//
//	operations: ["+2", "+5", "*3"]
//	threshold: 444
//	max: 400
//	horizon:
//	  min: 1
//	  max: 1000
type Game struct {
	Operations []string `yaml:"operations"`
	Threshold  int      `yaml:"threshold"`
	Max        int      `yaml:"max"`
	Horizon    *Horizon `yaml:"horizon,omitempty"`
}

type Horizon struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Env holds settings read from the environment. Goroutines of 0 leaves the
// choice to sweep.Run.
type Env struct {
	LogLevel   string `env:"HEAPS_LOG_LEVEL" envDefault:"info"`
	Goroutines int    `env:"HEAPS_GOROUTINES" envDefault:"0"`
	OutputDir  string `env:"HEAPS_OUTPUT_DIR" envDefault:"results"`
}

func Default() Game {
	return Game{
		Operations: append([]string(nil), meta.OPERATIONS...),
		Threshold:  meta.THRESHOLD,
		Max:        meta.MAX_SIZE,
	}
}

// Load reads a game file. Fields missing from the file keep their defaults.
func Load(path string) (Game, error) {
	g := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return g, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &g); err != nil {
		return g, fmt.Errorf("failed to parse config %s: %v: %w", path, err, ErrInvalidConfig)
	}
	return g, nil
}

// Validate parses the operations and checks the numeric bounds.
func (g Game) Validate() ([]game.Operation, error) {
	ops, err := game.ParseOperations(g.Operations)
	if err != nil {
		return nil, err
	}
	if g.Threshold < 1 {
		return nil, fmt.Errorf("threshold %d is below 1: %w", g.Threshold, ErrInvalidConfig)
	}
	if g.Max < 1 {
		return nil, fmt.Errorf("max %d is below 1: %w", g.Max, errors.Join(ErrInvalidConfig, analyzer.ErrInvalidRange))
	}
	if g.Horizon != nil && g.Horizon.Min > g.Horizon.Max {
		return nil, fmt.Errorf("horizon [%d, %d] is empty: %w", g.Horizon.Min, g.Horizon.Max, ErrInvalidConfig)
	}
	return ops, nil
}

// Options returns fresh classifier options on every call. Without a horizon
// in the file, expansion is limited to meta.HORIZON_MARGIN beyond the analyzed
// sizes and the threshold.
func (g Game) Options() []classifier.Option {
	h := g.DefaultHorizon()
	if g.Horizon != nil {
		h = *g.Horizon
	}
	return []classifier.Option{classifier.WithHorizon(h.Min, h.Max)}
}

func (g Game) DefaultHorizon() Horizon {
	upper := max(g.Threshold, g.Max)
	if upper > math.MaxInt-meta.HORIZON_MARGIN {
		upper = math.MaxInt
	} else {
		upper += meta.HORIZON_MARGIN
	}
	return Horizon{Min: min(1, g.Max) - meta.HORIZON_MARGIN, Max: upper}
}

func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
