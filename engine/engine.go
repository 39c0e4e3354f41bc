package engine

import (
	"fmt"
	"heaps/classifier"
	"heaps/game"

	"github.com/rs/zerolog/log"
)

const MaxTurns = 500

// preference ranks successor categories for the player choosing a move:
// lower is better. Winning positions for the opponent come last.
var preference = map[classifier.StateType]int{
	classifier.Win:        0,
	classifier.LoseIn1:    1,
	classifier.LoseIn2:    2,
	classifier.Unresolved: 3,
	classifier.WinIn2:     4,
	classifier.WinIn1:     5,
}

type Turn struct {
	Player string
	From   int
	Move   game.Move
	To     int
	Type   classifier.StateType // Category of To, for the next player
}

// Engine plays a game between two players who both choose moves from the
// classifier's categories.
type Engine struct {
	Players    [2]string
	classifier *classifier.Classifier
	moves      []game.Move
	maxTurns   int
}

func LocalEngine(players [2]string, c *classifier.Classifier, maxTurns int) *Engine {
	if maxTurns <= 0 {
		maxTurns = MaxTurns
	}
	return &Engine{
		Players:    players,
		classifier: c,
		moves:      c.Moves(),
		maxTurns:   maxTurns,
	}
}

// Run plays from start until a player reaches a winning size or the turn limit
// is hit, in which case the winner is "".
func (e *Engine) Run(start int) (string, []Turn, error) {
	current, err := e.classifier.Classify(start)
	if err != nil {
		return "", nil, err
	}
	if current == classifier.Win {
		return "", nil, fmt.Errorf("starting size %d already meets the win condition", start)
	}

	log.Info().Msgf("player %s is starting at size %d (%s)", e.Players[0], start, current)

	turns := []Turn{}
	size := start
	for i := 0; i < e.maxTurns; i++ {
		player := e.Players[i%2]
		turn, err := e.choose(player, size)
		if err != nil {
			return "", turns, err
		}
		turns = append(turns, turn)
		log.Debug().Msgf("turn %d: %s plays %s from %d to %d (%s)", i+1, player, turn.Move, turn.From, turn.To, turn.Type)

		if turn.Type == classifier.Win {
			return player, turns, nil
		}
		size = turn.To
	}

	log.Info().Msgf("stopped after %d turns (no winner yet)", e.maxTurns)
	return "", turns, nil
}

// choose picks the successor ranked best for player, the first move on ties.
func (e *Engine) choose(player string, size int) (Turn, error) {
	best := Turn{}
	bestRank := -1
	for _, move := range e.moves {
		next, err := move.Apply(size)
		if err != nil {
			return Turn{}, err
		}
		t, err := e.classifier.Classify(next)
		if err != nil {
			return Turn{}, err
		}
		if rank := preference[t]; bestRank < 0 || rank < bestRank {
			best = Turn{Player: player, From: size, Move: move, To: next, Type: t}
			bestRank = rank
		}
	}
	return best, nil
}
