package sweep

import (
	"fmt"
	"heaps/analyzer"
	"heaps/classifier"
	"heaps/game"
	"heaps/meta"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Game is one set of rules to analyze. Options is called once per analysis,
// so a collector created inside it belongs to that game alone.
type Game struct {
	Operations []game.Operation
	Threshold  int
	Max        int
	Options    func() []classifier.Option
}

// OptionsFunc builds the classifier options of one game in a sweep.
type OptionsFunc func(threshold, max int) []classifier.Option

func (g Game) String() string {
	parts := make([]string, 0, len(g.Operations)+1)
	for _, op := range g.Operations {
		parts = append(parts, op.String())
	}
	parts = append(parts, fmt.Sprintf(">=%d", g.Threshold))
	return strings.Join(parts, " ")
}

type Result struct {
	Game    Game
	Report  *analyzer.Report
	Answers analyzer.Answers
	Err     error
}

// Thresholds builds one game per threshold in [from, to], each analyzed up to
// one below its threshold. options may be nil.
func Thresholds(ops []game.Operation, from, to int, options OptionsFunc) []Game {
	games := []Game{}
	for threshold := from; threshold <= to; threshold++ {
		g := Game{
			Operations: ops,
			Threshold:  threshold,
			Max:        max(threshold-1, 1),
		}
		if options != nil {
			g.Options = func() []classifier.Option { return options(g.Threshold, g.Max) }
		}
		games = append(games, g)
	}
	return games
}

// Run analyzes games on a pool of goroutines, meta.GO_ROUTINES of them when
// goroutines is not positive. Every game gets its own classifier. Results are
// returned in the order of games.
func Run(games []Game, goroutines int) []Result {
	if goroutines < 1 {
		goroutines = meta.GO_ROUTINES
	}
	results := make([]Result, len(games))

	task := make(chan int, len(games))
	for i := range games {
		task <- i
	}
	close(task)

	log.Info().Msgf("sweeping %d games on %d goroutines...", len(games), goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for ith := range task {
				results[ith] = analyze(games[ith])
			}
		}()
	}

	wg.Wait()
	log.Info().Msgf("completed sweep of %d games", len(games))
	return results
}

func analyze(g Game) Result {
	result := Result{Game: g}
	var options []classifier.Option
	if g.Options != nil {
		options = g.Options()
	}
	c, err := classifier.New(game.Moves(g.Operations), game.NewWinCondition(g.Threshold), options...)
	if err != nil {
		result.Err = err
		return result
	}

	report, err := analyzer.New(c).Analyze(g.Max)
	if err != nil {
		log.Warn().Msgf("game %s failed: %v", g, err)
		result.Err = err
		return result
	}
	result.Report = report
	result.Answers = report.Answers()
	return result
}
