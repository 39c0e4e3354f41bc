package analyzer

import (
	"fmt"
	"heaps/classifier"
	"heaps/metrics"
	"time"

	"golang.org/x/exp/slices"
)

// Report holds the sizes of an analyzed range grouped by category, each group
// in ascending order. A Report shares no memory with the classifier.
type Report struct {
	Max      int
	Duration time.Duration
	Metric   metrics.ClassifyMetric
	groups   map[classifier.StateType][]int
	types    []classifier.StateType // Indexed by size-1
}

func newReport(max int) *Report {
	return &Report{
		Max:    max,
		groups: make(map[classifier.StateType][]int, len(classifier.StateTypes)),
		types:  make([]classifier.StateType, 0, max),
	}
}

// add must be called with increasing sizes, which keeps every group sorted.
func (r *Report) add(size int, t classifier.StateType) {
	r.groups[t] = append(r.groups[t], size)
	r.types = append(r.types, t)
}

// Type returns the category of a size within [1, Max].
func (r *Report) Type(size int) (classifier.StateType, error) {
	if size < 1 || size > r.Max {
		return classifier.Unresolved, fmt.Errorf("size %d outside 1..%d: %w", size, r.Max, ErrInvalidRange)
	}
	return r.types[size-1], nil
}

// Sizes returns a copy of the ascending sizes of one category.
func (r *Report) Sizes(t classifier.StateType) []int {
	return slices.Clone(r.groups[t])
}

func (r *Report) Count(t classifier.StateType) int {
	return len(r.groups[t])
}

func (r *Report) Smallest(t classifier.StateType) (int, error) {
	sizes := r.groups[t]
	if len(sizes) == 0 {
		return 0, fmt.Errorf("no %s sizes in 1..%d: %w", t, r.Max, ErrNotFound)
	}
	return sizes[0], nil
}

func (r *Report) TwoSmallest(t classifier.StateType) ([2]int, error) {
	sizes := r.groups[t]
	if len(sizes) < 2 {
		return [2]int{}, fmt.Errorf("%d %s sizes in 1..%d, need two: %w", len(sizes), t, r.Max, ErrNotFound)
	}
	return [2]int{sizes[0], sizes[1]}, nil
}

func (r *Report) Largest(t classifier.StateType) (int, error) {
	sizes := r.groups[t]
	if len(sizes) == 0 {
		return 0, fmt.Errorf("no %s sizes in 1..%d: %w", t, r.Max, ErrNotFound)
	}
	return sizes[len(sizes)-1], nil
}

// Answers holds the three classic questions about a range. Each slice is
// empty when the question has no answer in the range.
type Answers struct {
	// Smallest size where the player moving first cannot win at once and every
	// move lets the opponent win with their first move.
	FirstMove []int
	// Two smallest sizes where the player moving first wins with their second
	// move but not their first.
	SecondMove []int
	// Largest size where the second player wins with their first or second
	// move but has no guaranteed first-move win.
	EitherMove []int
}

func (r *Report) Answers() Answers {
	var answers Answers
	if size, err := r.Smallest(classifier.LoseIn1); err == nil {
		answers.FirstMove = []int{size}
	}
	if sizes, err := r.TwoSmallest(classifier.WinIn2); err == nil {
		answers.SecondMove = sizes[:]
	}
	if size, err := r.Largest(classifier.LoseIn2); err == nil {
		answers.EitherMove = []int{size}
	}
	return answers
}

// Records flattens the report in ascending size order for export.
func (r *Report) Records() []metrics.ClassificationRecord {
	records := make([]metrics.ClassificationRecord, len(r.types))
	for i, t := range r.types {
		records[i] = metrics.ClassificationRecord{Size: i + 1, Type: t.String()}
	}
	return records
}
