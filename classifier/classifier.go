package classifier

import (
	"fmt"
	"heaps/game"
	"heaps/meta"
	"heaps/metrics"
	"math"

	"github.com/rs/zerolog/log"
)

type Option func(c *Classifier)

type horizon struct {
	min, max int
}

// defaultHorizon bounds descent only. Growth needs no bound because the win
// condition stops it, and overflow is reported.
var defaultHorizon = horizon{min: 1 - meta.HORIZON_MARGIN, max: math.MaxInt}

// Classifier labels pile sizes by backward induction over the successors
// reachable with its moves. Results are cached for the lifetime of the
// classifier, which is tied to one set of moves and one win condition.
//
// A Classifier is not safe for concurrent use: the in-progress set of one
// request would make a concurrent request see false cycles.
type Classifier struct {
	moves      []game.Move
	rules      game.Rules
	horizon    horizon
	cache      map[int]StateType
	inProgress map[int]bool
	metrics    metrics.Collector
}

// frame is a size whose successors are still being classified.
type frame struct {
	size       int
	successors []int
	types      []StateType
	next       int
}

// WithHorizon stops expansion at sizes outside [min, max]: such sizes are
// Unresolved unless they already satisfy the win condition. Without it sizes
// below 1-meta.HORIZON_MARGIN are not expanded.
func WithHorizon(min, max int) Option {
	return func(c *Classifier) {
		if min <= max {
			c.horizon = horizon{min: min, max: max}
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(c *Classifier) {
		if collector != nil {
			c.metrics = collector
		}
	}
}

func New(moves []game.Move, rules game.Rules, options ...Option) (*Classifier, error) {
	if len(moves) == 0 {
		return nil, fmt.Errorf("classifier needs at least one move: %w", game.ErrInvalidOperation)
	}
	if rules == nil {
		return nil, fmt.Errorf("classifier needs a win condition: %w", game.ErrInvalidOperation)
	}

	c := &Classifier{ // Default values
		moves:      append([]game.Move(nil), moves...),
		rules:      rules,
		horizon:    defaultHorizon,
		cache:      make(map[int]StateType),
		inProgress: make(map[int]bool),
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(c)
	}
	c.metrics.Start()
	return c, nil
}

func (c *Classifier) Moves() []game.Move {
	return append([]game.Move(nil), c.moves...)
}

// Reset drops every cached classification.
func (c *Classifier) Reset() {
	c.cache = make(map[int]StateType)
	c.inProgress = make(map[int]bool)
	c.metrics.Start()
}

func (c *Classifier) Metric() metrics.ClassifyMetric {
	return c.metrics.Complete()
}

// Classify returns the category of size. Successors are explored depth first
// in move order with an explicit stack, so deep chains of moves do not grow
// the goroutine stack. A successor that is still being classified closes a
// cycle and is read as Unresolved.
//
// An overflowing move aborts the request with game.ErrArithmeticOverflow.
// Sizes completed before the failure stay cached, the sizes still in
// progress are discarded.
func (c *Classifier) Classify(size int) (StateType, error) {
	t, f, err := c.visit(size)
	if err != nil || f == nil {
		return t, err
	}

	stack := []*frame{f}
	for {
		top := stack[len(stack)-1]

		if top.next < len(top.successors) {
			t, f, err := c.visit(top.successors[top.next])
			if err != nil {
				c.abandon(stack)
				return Unresolved, err
			}
			if f != nil { // Descend, the slot is filled once f completes
				stack = append(stack, f)
				continue
			}
			top.types[top.next] = t
			top.next++
			continue
		}

		// All successors known
		result := decide(top.types)
		c.complete(top.size, result)
		delete(c.inProgress, top.size)
		stack = stack[:len(stack)-1]

		if len(stack) == 0 {
			return result, nil
		}
		parent := stack[len(stack)-1]
		parent.types[parent.next] = result
		parent.next++
	}
}

// visit resolves size immediately when it can, otherwise it marks size in
// progress and returns a frame to expand.
func (c *Classifier) visit(size int) (StateType, *frame, error) {
	if t, ok := c.cache[size]; ok {
		c.metrics.AddCacheHit()
		return t, nil, nil
	}

	if c.inProgress[size] {
		c.metrics.AddCycle()
		log.Trace().Msgf("cycle through size %d", size)
		return Unresolved, nil, nil
	}

	if c.rules.IsWin(size) {
		c.complete(size, Win)
		return Win, nil, nil
	}

	if size < c.horizon.min || size > c.horizon.max {
		c.metrics.AddHorizonCutoff()
		log.Trace().Msgf("size %d is beyond horizon [%d, %d]", size, c.horizon.min, c.horizon.max)
		c.complete(size, Unresolved)
		return Unresolved, nil, nil
	}

	successors := make([]int, len(c.moves))
	for i, move := range c.moves {
		next, err := move.Apply(size)
		c.metrics.AddApplication()
		if err != nil {
			log.Debug().Msgf("move %s from size %d failed: %v", move, size, err)
			return Unresolved, nil, fmt.Errorf("classifying size %d: %w", size, err)
		}
		successors[i] = next
	}

	c.inProgress[size] = true
	return Unresolved, &frame{
		size:       size,
		successors: successors,
		types:      make([]StateType, len(successors)),
	}, nil
}

func (c *Classifier) complete(size int, t StateType) {
	c.cache[size] = t
	c.metrics.AddClassification()
}

func (c *Classifier) abandon(stack []*frame) {
	for _, f := range stack {
		delete(c.inProgress, f.size)
	}
}
